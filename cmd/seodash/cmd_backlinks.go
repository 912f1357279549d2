package main

import (
	"fmt"
	"seodash/internal/seo"
	"seodash/internal/store"
	"text/tabwriter"
)

type BacklinksCmd struct {
	ListFlags
	DoFollow bool `help:"Only dofollow links"`
}

func (cmd *BacklinksCmd) Run(g *Globals) error {
	project, err := requireProject(g)
	if err != nil {
		return err
	}

	q, err := cmd.query(g, backlinksResource, func(q *store.Query) {
		if cmd.DoFollow {
			*q = q.WithFilter("doFollow", "true")
		}
	})
	if err != nil {
		return err
	}
	if err := g.Dash.Backlinks.FetchAll(g.Ctx, q); err != nil {
		return failed("failed to list backlinks", err)
	}

	backlinks := g.Dash.Backlinks.Records()
	if len(backlinks) == 0 {
		fmt.Fprintf(g.Out, "No backlinks found for %s.\n", project.Name)
		return nil
	}

	w := tabwriter.NewWriter(g.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SOURCE\tANCHOR\tDR\tFOLLOW")
	fmt.Fprintln(w, "------\t------\t--\t------")
	for _, b := range backlinks {
		follow := "nofollow"
		if b.DoFollow {
			follow = "dofollow"
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", b.SourceURL, b.Anchor, b.DomainRating, follow)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	s := seo.BacklinkSummary(backlinks)
	fmt.Fprintf(g.Out, "\n%d referring domains · %d dofollow · avg DR %.1f\n", s.Domains, s.DoFollow, s.AvgDomainRating)
	fmt.Fprintln(g.Out, pageFooter(g.Dash.Backlinks.Pagination(), "backlinks"))
	return nil
}
