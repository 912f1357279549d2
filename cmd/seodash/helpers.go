package main

import (
	"errors"
	"fmt"
	"io"
	"seodash/internal/seo"
	"seodash/internal/store"
	"strings"
)

// storeError reports a failed store operation with the message the store
// recorded for it, keeping the underlying error for errors.Is.
type storeError struct {
	action string
	err    error
}

func (e *storeError) Error() string {
	return e.action + ": " + store.Message(e.err)
}

func (e *storeError) Unwrap() error {
	return e.err
}

func failed(action string, err error) error {
	if err == nil {
		return nil
	}
	return &storeError{action: action, err: err}
}

type AmbiguousMatchError struct {
	Query   string
	Matches []seo.Project
}

func (e *AmbiguousMatchError) Error() string {
	return fmt.Sprintf("multiple projects match %q", e.Query)
}

func (e *AmbiguousMatchError) WriteMatches(w io.Writer) {
	fmt.Fprintln(w, "Multiple projects match. Please be more specific:")
	for _, p := range e.Matches {
		fmt.Fprintf(w, "  - %s (%s) %s\n", p.Name, p.Domain, p.ID)
	}
}

func handleFindError(w io.Writer, err error) bool {
	var ambErr *AmbiguousMatchError
	if errors.As(err, &ambErr) {
		ambErr.WriteMatches(w)
		return true
	}
	return false
}

const lookupLimit = 100

// findProject resolves query to one project by id, name or domain. Exact
// matches win over substring matches.
func findProject(g *Globals, query string) (seo.Project, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return seo.Project{}, errors.New("project query cannot be empty")
	}

	err := g.Dash.Projects.FetchAll(g.Ctx, store.Query{Search: q, Limit: lookupLimit})
	if err != nil {
		return seo.Project{}, failed("failed to search projects", err)
	}

	matches := matchProjects(g.Dash.Projects.Records(), q)
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		// The query may be an id the search endpoint does not index.
		if p, err := g.Dash.Projects.FetchOne(g.Ctx, q); err == nil {
			return p, nil
		}
		return seo.Project{}, fmt.Errorf("no project found matching: %s", q)
	default:
		return seo.Project{}, &AmbiguousMatchError{Query: q, Matches: matches}
	}
}

func matchProjects(projects []seo.Project, query string) []seo.Project {
	lower := strings.ToLower(query)
	var exact, partial []seo.Project
	for _, p := range projects {
		switch {
		case p.ID == query:
			return []seo.Project{p}
		case strings.EqualFold(p.Name, query) || strings.EqualFold(p.Domain, query):
			exact = append(exact, p)
		case strings.Contains(strings.ToLower(p.Name), lower) ||
			strings.Contains(strings.ToLower(p.Domain), lower):
			partial = append(partial, p)
		}
	}
	if len(exact) > 0 {
		return exact
	}
	return partial
}

// requireProject returns the current project, restoring the one saved in
// the session when this process has not selected one yet.
func requireProject(g *Globals) (seo.Project, error) {
	if p, ok := g.Dash.CurrentProject(); ok {
		return p, nil
	}
	id := g.Session.Project()
	if id == "" {
		return seo.Project{}, fmt.Errorf("%w: run 'seodash projects use <name>' first", seo.ErrNoProjectSelected)
	}
	p, err := g.Dash.UseProject(g.Ctx, id)
	if err != nil {
		return seo.Project{}, failed("failed to restore project "+id, err)
	}
	return p, nil
}

// ListFlags are shared by every list command. Unset flags fall back to the
// last query saved for the same resource.
type ListFlags struct {
	Search string `short:"s" help:"Search text"`
	Sort   string `help:"Sort field"`
	Order  string `help:"Sort order (asc, desc)"`
	Page   int    `short:"p" help:"Page number"`
	Limit  int    `short:"l" help:"Records per page"`
	Reset  bool   `help:"Forget the saved query for this list"`
}

func (f ListFlags) resolve(prev store.Query) store.Query {
	if f.Reset {
		prev = store.Query{}
	}

	next := prev
	if f.Search != "" {
		next.Search = f.Search
	}
	if f.Sort != "" {
		next.SortBy = f.Sort
	}
	if f.Order != "" {
		next.Order = store.SortOrder(f.Order)
	}
	if f.Limit > 0 {
		next.Limit = f.Limit
	}

	switch {
	case f.Page > 0:
		next.Page = f.Page
	case !next.SameFilters(prev):
		next.Page = 1
	}
	return next
}

// query resolves the flags against the session, applies extra and stores
// the result as the new saved query for resource.
func (f ListFlags) query(g *Globals, resource string, extra func(*store.Query)) (store.Query, error) {
	if f.Order != "" && f.Order != string(store.Ascending) && f.Order != string(store.Descending) {
		return store.Query{}, fmt.Errorf("invalid order %q: want asc or desc", f.Order)
	}

	prev := g.Session.Query(resource)
	next := f.resolve(prev)
	if extra != nil {
		extra(&next)
		if f.Page <= 0 && !next.SameFilters(prev) {
			next.Page = 1
		}
	}

	g.Session.SetQuery(resource, next)
	if err := g.Session.Save(); err != nil {
		return next, fmt.Errorf("failed to save session: %w", err)
	}
	return next, nil
}

func pageFooter(p store.Pagination, noun string) string {
	pages := max(p.TotalPages, 1)
	return fmt.Sprintf("Page %d of %d · %s %s", p.Page, pages, store.FormatInt(p.Total), noun)
}
