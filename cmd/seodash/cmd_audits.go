package main

import (
	"fmt"
	"seodash/internal/seo"
	"text/tabwriter"
)

type AuditsCmd struct {
	List  AuditsListCmd  `cmd:"" default:"withargs" aliases:"ls" help:"List audits"`
	Start AuditsStartCmd `cmd:"" name:"run" help:"Queue a new audit"`
}

type AuditsListCmd struct {
	ListFlags
}

func (cmd *AuditsListCmd) Run(g *Globals) error {
	project, err := requireProject(g)
	if err != nil {
		return err
	}

	q, err := cmd.query(g, auditsResource, nil)
	if err != nil {
		return err
	}
	if err := g.Dash.Audits.FetchAll(g.Ctx, q); err != nil {
		return failed("failed to list audits", err)
	}

	audits := g.Dash.Audits.Records()
	if len(audits) == 0 {
		fmt.Fprintf(g.Out, "No audits for %s yet.\n", project.Name)
		return nil
	}

	w := tabwriter.NewWriter(g.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTATUS\tSCORE\tISSUES\tSTARTED")
	fmt.Fprintln(w, "--\t------\t-----\t------\t-------")
	for _, a := range audits {
		score := "-"
		if a.Status == seo.AuditCompleted {
			score = fmt.Sprintf("%d", a.Score)
		}
		started := "-"
		if !a.StartedAt.IsZero() {
			started = a.StartedAt.Format("2006-01-02 15:04")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", a.ID, a.Status, score, a.Issues, started)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if health, ok := seo.AuditHealth(audits); ok {
		fmt.Fprintf(g.Out, "\nHealth: %.0f/100\n", health)
	}
	fmt.Fprintln(g.Out, pageFooter(g.Dash.Audits.Pagination(), "audits"))
	return nil
}

type AuditsStartCmd struct{}

func (cmd *AuditsStartCmd) Run(g *Globals) error {
	project, err := requireProject(g)
	if err != nil {
		return err
	}

	audit, err := g.Dash.Audits.Create(g.Ctx, map[string]string{"projectId": project.ID})
	if err != nil {
		return failed("failed to queue audit", err)
	}

	fmt.Fprintf(g.Out, "Queued audit %s for %s (%s)\n", audit.ID, project.Name, audit.Status)
	return nil
}
