package main

import (
	"fmt"
	"seodash/internal/seo"
	"seodash/internal/store"
	"strconv"
	"text/tabwriter"
)

const (
	keywordsResource  = "keywords"
	backlinksResource = "backlinks"
	auditsResource    = "audits"
	contentResource   = "content"
)

var scopedResources = []string{keywordsResource, backlinksResource, auditsResource, contentResource}

type KeywordsCmd struct {
	ListFlags
	Top int `short:"t" help:"Show only the N best ranked keywords of the page"`
}

func (cmd *KeywordsCmd) Run(g *Globals) error {
	project, err := requireProject(g)
	if err != nil {
		return err
	}

	q, err := cmd.query(g, keywordsResource, nil)
	if err != nil {
		return err
	}
	if err := g.Dash.Keywords.FetchAll(g.Ctx, q); err != nil {
		return failed("failed to list keywords", err)
	}

	keywords := g.Dash.Keywords.Records()
	if cmd.Top > 0 {
		keywords = seo.TopKeywords(keywords, cmd.Top)
	}
	if len(keywords) == 0 {
		fmt.Fprintf(g.Out, "No keywords tracked for %s.\n", project.Name)
		return nil
	}

	w := tabwriter.NewWriter(g.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KEYWORD\tPOSITION\tCHANGE\tVOLUME\tDIFFICULTY")
	fmt.Fprintln(w, "-------\t--------\t------\t------\t----------")
	for _, k := range keywords {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n",
			k.Phrase, formatPosition(k.Position), formatChange(k), store.FormatInt(k.Volume), k.Difficulty)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	m := seo.KeywordMovement(g.Dash.Keywords.Records())
	fmt.Fprintf(g.Out, "\n%d improved · %d declined · %d unchanged · %d new\n",
		m.Improved, m.Declined, m.Unchanged, m.New)
	fmt.Fprintln(g.Out, pageFooter(g.Dash.Keywords.Pagination(), "keywords"))
	return nil
}

func formatPosition(pos int) string {
	if pos <= 0 {
		return "-"
	}
	return strconv.Itoa(pos)
}

func formatChange(k seo.Keyword) string {
	if k.PreviousPosition == 0 && k.Position > 0 {
		return "new"
	}
	if k.PreviousPosition > 0 && k.Position == 0 {
		return "lost"
	}
	switch c := k.Change(); {
	case c > 0:
		return "+" + strconv.Itoa(c)
	case c < 0:
		return strconv.Itoa(c)
	default:
		return "0"
	}
}
