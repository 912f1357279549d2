package seo

import (
	"context"
	"errors"
	"seodash/internal/store"
	"sync"

	"golang.org/x/sync/errgroup"
)

var ErrNoProjectSelected = errors.New("no project selected")

type ResourceFunc func(path string) store.Transport

// Dashboard holds one store per entity type. Keyword, backlink, audit and
// content stores are scoped to the project chosen with UseProject, which is
// independent of the project store's own selection.
type Dashboard struct {
	Projects  *store.Remote[Project]
	Keywords  *store.Remote[Keyword]
	Backlinks *store.Remote[Backlink]
	Audits    *store.Remote[Audit]
	Content   *store.Remote[ContentItem]
	Templates *store.Remote[Template]
	Users     *store.Remote[User]

	mu    sync.RWMutex
	scope *Project
}

func NewDashboard(resources ResourceFunc, opts ...store.Option) *Dashboard {
	d := &Dashboard{}
	d.Projects = store.NewRemote[Project](store.Names{Singular: "Project", Plural: "Projects"}, resources("projects"), opts...)
	d.Templates = store.NewRemote[Template](store.Names{Singular: "Template", Plural: "Templates"}, resources("templates"), opts...)
	d.Users = store.NewRemote[User](store.Names{Singular: "User", Plural: "Users"}, resources("users"), opts...)

	d.Keywords = store.NewScopedRemote[Keyword](store.Names{Singular: "Keyword", Plural: "Keywords"}, d.scoped(resources, "keywords"), opts...)
	d.Backlinks = store.NewScopedRemote[Backlink](store.Names{Singular: "Backlink", Plural: "Backlinks"}, d.scoped(resources, "backlinks"), opts...)
	d.Audits = store.NewScopedRemote[Audit](store.Names{Singular: "Audit", Plural: "Audits"}, d.scoped(resources, "audits"), opts...)
	d.Content = store.NewScopedRemote[ContentItem](store.Names{Singular: "ContentItem", Plural: "ContentItems"}, d.scoped(resources, "content"), opts...)
	return d
}

func (d *Dashboard) scoped(resources ResourceFunc, sub string) func() (store.Transport, error) {
	return func() (store.Transport, error) {
		p, ok := d.CurrentProject()
		if !ok {
			return nil, ErrNoProjectSelected
		}
		return resources("projects/" + p.ID + "/" + sub), nil
	}
}

func (d *Dashboard) scopedStores() []interface{ Reset() } {
	return []interface{ Reset() }{d.Keywords, d.Backlinks, d.Audits, d.Content}
}

func (d *Dashboard) resetScoped() {
	for _, s := range d.scopedStores() {
		s.Reset()
	}
}

// UseProject loads the project with id and scopes the project stores to it.
// They are reset whenever the scope moves to a different project.
func (d *Dashboard) UseProject(ctx context.Context, id string) (Project, error) {
	p, err := d.Projects.FetchOne(ctx, id)
	if err != nil {
		return p, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.scope == nil || d.scope.ID != p.ID {
		d.resetScoped()
	}
	d.scope = &p
	return p, nil
}

func (d *Dashboard) LeaveProject() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.scope = nil
	d.Projects.ClearSelected()
	d.resetScoped()
}

// RemoveProject deletes the project and leaves it when it is the current
// scope.
func (d *Dashboard) RemoveProject(ctx context.Context, id string) error {
	if err := d.Projects.Remove(ctx, id); err != nil {
		return err
	}
	if p, ok := d.CurrentProject(); ok && p.ID == id {
		d.LeaveProject()
	}
	return nil
}

func (d *Dashboard) CurrentProject() (Project, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.scope == nil {
		return Project{}, false
	}
	return *d.scope, true
}

// Load fetches the unscoped collections concurrently. Each store records
// its own outcome; the first error is returned.
func (d *Dashboard) Load(ctx context.Context, q store.Query) error {
	var g errgroup.Group
	g.Go(func() error { return d.Projects.FetchAll(ctx, q) })
	g.Go(func() error { return d.Users.FetchAll(ctx, q) })
	g.Go(func() error { return d.Templates.FetchAll(ctx, q) })
	return g.Wait()
}

// LoadProject fetches every store scoped to the current project concurrently.
func (d *Dashboard) LoadProject(ctx context.Context, q store.Query) error {
	var g errgroup.Group
	g.Go(func() error { return d.Keywords.FetchAll(ctx, q) })
	g.Go(func() error { return d.Backlinks.FetchAll(ctx, q) })
	g.Go(func() error { return d.Audits.FetchAll(ctx, q) })
	g.Go(func() error { return d.Content.FetchAll(ctx, q) })
	return g.Wait()
}

func (d *Dashboard) Stores() []store.Stateful {
	return []store.Stateful{d.Projects, d.Keywords, d.Backlinks, d.Audits, d.Content, d.Templates, d.Users}
}

func (d *Dashboard) IsAnyLoading() bool {
	return store.IsAnyLoading(d.Stores()...)
}

func (d *Dashboard) ActiveErrors() []store.OpError {
	return store.ActiveErrors(d.Stores()...)
}

func (d *Dashboard) ClearErrors() {
	store.ClearAllErrors(d.Stores()...)
}
