package main

import (
	"fmt"
	"io"
	"seodash/internal/seo"
	"seodash/internal/store"
)

// OverviewCmd loads every store once and prints headline numbers. Stores
// that fail are reported below the summary; the rest is still shown.
type OverviewCmd struct{}

func (cmd *OverviewCmd) Run(g *Globals) error {
	d := g.Dash
	_ = d.Load(g.Ctx, store.Query{})

	project, hasProject := d.CurrentProject()
	if !hasProject && g.Session.Project() != "" {
		project, _ = d.UseProject(g.Ctx, g.Session.Project())
		_, hasProject = d.CurrentProject()
	}
	if hasProject {
		_ = d.LoadProject(g.Ctx, store.Query{})
	}

	fmt.Fprintln(g.Out, "Workspace")
	fmt.Fprintf(g.Out, "  Projects:   %s\n", store.FormatInt(d.Projects.Pagination().Total))
	active, inactive := seo.UserCounts(d.Users.Records())
	fmt.Fprintf(g.Out, "  Users:      %s (%d active, %d inactive)\n",
		store.FormatInt(d.Users.Pagination().Total), active, inactive)
	fmt.Fprintf(g.Out, "  Templates:  %s\n", store.FormatInt(d.Templates.Pagination().Total))

	if hasProject {
		writeProjectOverview(g.Out, d, project)
	} else {
		fmt.Fprintln(g.Out, "\nNo project selected.")
	}

	if errs := d.ActiveErrors(); len(errs) > 0 {
		fmt.Fprintln(g.Out, "\nProblems")
		for _, e := range errs {
			fmt.Fprintf(g.Out, "  %s: %s\n", e.Op, e.Message)
		}
	}
	return nil
}

func writeProjectOverview(out io.Writer, d *seo.Dashboard, project seo.Project) {
	fmt.Fprintf(out, "\n%s (%s)\n", project.Name, project.Domain)

	m := seo.KeywordMovement(d.Keywords.Records())
	fmt.Fprintf(out, "  Keywords:   %s (%d up, %d down, %d new)\n",
		store.FormatInt(d.Keywords.Pagination().Total), m.Improved, m.Declined, m.New)

	b := seo.BacklinkSummary(d.Backlinks.Records())
	fmt.Fprintf(out, "  Backlinks:  %s from %d domains\n", store.FormatInt(d.Backlinks.Pagination().Total), b.Domains)

	if health, ok := seo.AuditHealth(d.Audits.Records()); ok {
		fmt.Fprintf(out, "  Health:     %.0f/100\n", health)
	} else {
		fmt.Fprintln(out, "  Health:     no completed audits")
	}

	c := seo.CalendarMetrics(d.Content.Records())
	fmt.Fprintf(out, "  Content:    %d scheduled, %d published, %d drafts\n", c.Scheduled, c.Published, c.Drafts)
}
