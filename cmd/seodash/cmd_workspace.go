package main

import (
	"context"
	"fmt"
	"seodash/internal/seo"
	"seodash/internal/store"
	"text/tabwriter"
	"time"
)

const (
	templatesResource = "templates"
	usersResource     = "users"
)

type TemplatesCmd struct {
	ListFlags
	Category string `help:"Only templates in this category"`
}

func (cmd *TemplatesCmd) Run(g *Globals) error {
	q, err := cmd.query(g, templatesResource, func(q *store.Query) {
		if cmd.Category != "" {
			*q = q.WithFilter("category", cmd.Category)
		}
	})
	if err != nil {
		return err
	}
	if err := g.Dash.Templates.FetchAll(g.Ctx, q); err != nil {
		return failed("failed to list templates", err)
	}

	templates := g.Dash.Templates.Records()
	if len(templates) == 0 {
		fmt.Fprintln(g.Out, "No templates found.")
		return nil
	}

	w := tabwriter.NewWriter(g.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tCATEGORY\tUPDATED")
	fmt.Fprintln(w, "----\t--------\t-------")
	for _, t := range templates {
		updated := "-"
		if !t.UpdatedAt.IsZero() {
			updated = t.UpdatedAt.Format(time.DateOnly)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", t.Name, t.Category, updated)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(g.Out, pageFooter(g.Dash.Templates.Pagination(), "templates"))
	return nil
}

type UsersCmd struct {
	ListFlags
	Role string `help:"Only users with this role"`
}

func (cmd *UsersCmd) Run(g *Globals) error {
	q, err := cmd.query(g, usersResource, func(q *store.Query) {
		if cmd.Role != "" {
			*q = q.WithFilter("role", cmd.Role)
		}
	})
	if err != nil {
		return err
	}
	if err := g.Dash.Users.FetchAll(g.Ctx, q); err != nil {
		return failed("failed to list users", err)
	}

	users := g.Dash.Users.Records()
	if len(users) == 0 {
		fmt.Fprintln(g.Out, "No users found.")
		return nil
	}

	w := tabwriter.NewWriter(g.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tEMAIL\tROLE\tSTATUS")
	fmt.Fprintln(w, "----\t-----\t----\t------")
	for _, u := range users {
		status := "inactive"
		if u.Active {
			status = "active"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", u.Name, u.Email, u.Role, status)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	active, inactive := seo.UserCounts(users)
	fmt.Fprintf(g.Out, "\n%d active · %d inactive on this page\n", active, inactive)
	fmt.Fprintln(g.Out, pageFooter(g.Dash.Users.Pagination(), "users"))
	return nil
}

type HealthCmd struct {
	Timeout time.Duration `help:"How long to wait for the API" default:"5s"`
}

func (cmd *HealthCmd) Run(g *Globals) error {
	ctx, cancel := context.WithTimeout(g.Ctx, cmd.Timeout)
	defer cancel()

	if err := g.Ping(ctx); err != nil {
		return failed("API unreachable", err)
	}
	fmt.Fprintln(g.Out, "API reachable.")
	return nil
}
