package main

import (
	"errors"
	"fmt"
	"seodash/cmd/seodash/render"
	"seodash/internal/seo"
	"seodash/internal/store"
	"seodash/internal/ui"
	"strings"

	"github.com/charmbracelet/huh"
)

const projectsResource = "projects"

type ProjectsCmd struct {
	List   ProjectsListCmd   `cmd:"" default:"withargs" aliases:"ls" help:"List projects"`
	Show   ProjectsShowCmd   `cmd:"" help:"Show one project"`
	Create ProjectsCreateCmd `cmd:"" aliases:"new" help:"Create a project"`
	Edit   ProjectsEditCmd   `cmd:"" help:"Change a project"`
	Rm     ProjectsRmCmd     `cmd:"" aliases:"remove" help:"Delete a project"`
	Use    ProjectsUseCmd    `cmd:"" help:"Select the project other commands work on"`
}

type ProjectsListCmd struct {
	ListFlags
	Status string `help:"Only projects with this status (active, paused, archived)"`
	Names  bool   `short:"n" help:"Output only project names (one per line)"`
}

func (cmd *ProjectsListCmd) Run(g *Globals) error {
	q, err := cmd.query(g, projectsResource, func(q *store.Query) {
		if cmd.Status != "" {
			q.Status = cmd.Status
		}
	})
	if err != nil {
		return err
	}

	if err := g.Dash.Projects.FetchAll(g.Ctx, q); err != nil {
		return failed("failed to list projects", err)
	}
	projects := g.Dash.Projects.Records()

	if cmd.Names {
		for _, p := range projects {
			fmt.Fprintln(g.Out, p.Name)
		}
		return nil
	}

	view := render.ProjectListView{
		Items: make([]render.ProjectListItem, len(projects)),
	}
	if len(projects) > 0 {
		view.Footer = pageFooter(g.Dash.Projects.Pagination(), "projects")
	}
	current := g.Session.Project()
	for i, p := range projects {
		view.Items[i] = render.ProjectListItem{
			Name:      p.Name,
			Domain:    p.Domain,
			Status:    string(p.Status),
			Current:   p.ID == current,
			Timestamp: p.CreatedAt,
		}
	}

	fmt.Fprint(g.Out, g.Render.RenderProjectList(view))
	return nil
}

type ProjectsShowCmd struct {
	Name string `arg:"" help:"Project id, name or domain"`
}

func (cmd *ProjectsShowCmd) Run(g *Globals) error {
	project, err := findProject(g, cmd.Name)
	if err != nil {
		if handleFindError(g.Out, err) {
			return nil
		}
		return err
	}

	fmt.Fprintf(g.Out, "Name:    %s\n", project.Name)
	fmt.Fprintf(g.Out, "Domain:  %s\n", project.Domain)
	fmt.Fprintf(g.Out, "Status:  %s\n", project.Status)
	fmt.Fprintf(g.Out, "ID:      %s\n", project.ID)
	if !project.CreatedAt.IsZero() {
		fmt.Fprintf(g.Out, "Created: %s\n", project.CreatedAt.Format("2006-01-02 15:04"))
	}
	if project.ID == g.Session.Project() {
		fmt.Fprintln(g.Out, "Current: yes")
	}
	return nil
}

type ProjectsCreateCmd struct {
	Name   string `short:"n" help:"Project name"`
	Domain string `short:"d" help:"Domain to track"`
	Status string `help:"Initial status" default:"active"`
	Use    bool   `short:"u" help:"Select the project after creating it"`
}

func (cmd *ProjectsCreateCmd) Run(g *Globals) error {
	in := seo.ProjectInput{
		Name:   cmd.Name,
		Domain: cmd.Domain,
		Status: seo.ProjectStatus(cmd.Status),
	}

	if (strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Domain) == "") && g.Prompt != nil {
		if err := g.Prompt(&in); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return err
		}
	}

	if err := in.ValidateAndNormalize(); err != nil {
		return err
	}

	project, err := g.Dash.Projects.Create(g.Ctx, in)
	if err != nil {
		return failed("failed to create project", err)
	}

	if cmd.Use {
		if err := selectProject(g, project); err != nil {
			return err
		}
	}

	fmt.Fprint(g.Out, ui.RenderCreated(project))
	return nil
}

func promptProject(in *seo.ProjectInput) error {
	return ui.ProjectForm(in).Run()
}

type ProjectsEditCmd struct {
	Project string  `arg:"" help:"Project id, name or domain"`
	Name    *string `help:"New name"`
	Domain  *string `help:"New domain"`
	Status  *string `help:"New status (active, paused, archived)"`
}

func (cmd *ProjectsEditCmd) Run(g *Globals) error {
	patch := seo.ProjectPatch{Name: cmd.Name, Domain: cmd.Domain}
	if cmd.Status != nil {
		status := seo.ProjectStatus(*cmd.Status)
		patch.Status = &status
	}
	if patch.IsEmpty() {
		return errors.New("nothing to change: pass --name, --domain or --status")
	}
	if err := patch.ValidateAndNormalize(); err != nil {
		return err
	}

	project, err := findProject(g, cmd.Project)
	if err != nil {
		if handleFindError(g.Out, err) {
			return nil
		}
		return err
	}

	updated, err := g.Dash.Projects.Update(g.Ctx, project.ID, patch)
	if err != nil {
		return failed(fmt.Sprintf("failed to update project %q", project.Name), err)
	}

	fmt.Fprintf(g.Out, "Updated: %s (%s, %s)\n", updated.Name, updated.Domain, updated.Status)
	return nil
}

type ProjectsRmCmd struct {
	Project string `arg:"" help:"Project id, name or domain"`
}

func (cmd *ProjectsRmCmd) Run(g *Globals) error {
	project, err := findProject(g, cmd.Project)
	if err != nil {
		if handleFindError(g.Out, err) {
			return nil
		}
		return err
	}

	if err := g.Dash.RemoveProject(g.Ctx, project.ID); err != nil {
		return failed(fmt.Sprintf("failed to remove project %q", project.Name), err)
	}

	if g.Session.Project() == project.ID {
		g.Session.SetProject("")
		if err := g.Session.Save(); err != nil {
			return fmt.Errorf("failed to save session: %w", err)
		}
	}

	fmt.Fprintf(g.Out, "Removed: %s\n", project.Name)
	return nil
}

type ProjectsUseCmd struct {
	Project string `arg:"" optional:"" help:"Project id, name or domain"`
	Clear   bool   `help:"Clear the current project"`
}

func (cmd *ProjectsUseCmd) Run(g *Globals) error {
	if cmd.Clear {
		g.Dash.LeaveProject()
		g.Session.SetProject("")
		if err := g.Session.Save(); err != nil {
			return fmt.Errorf("failed to save session: %w", err)
		}
		fmt.Fprintln(g.Out, "No project selected.")
		return nil
	}

	if cmd.Project == "" {
		p, err := requireProject(g)
		if err != nil {
			return err
		}
		fmt.Fprintf(g.Out, "Using: %s (%s)\n", p.Name, p.Domain)
		return nil
	}

	project, err := findProject(g, cmd.Project)
	if err != nil {
		if handleFindError(g.Out, err) {
			return nil
		}
		return err
	}

	if err := selectProject(g, project); err != nil {
		return err
	}
	fmt.Fprintf(g.Out, "Using: %s (%s)\n", project.Name, project.Domain)
	return nil
}

// selectProject makes project current for this process and later ones.
// Saved list queries of the previous project no longer apply.
func selectProject(g *Globals, project seo.Project) error {
	if _, err := g.Dash.UseProject(g.Ctx, project.ID); err != nil {
		return failed(fmt.Sprintf("failed to select project %q", project.Name), err)
	}

	if g.Session.Project() != project.ID {
		for _, resource := range scopedResources {
			g.Session.ClearQuery(resource)
		}
	}
	g.Session.SetProject(project.ID)
	if err := g.Session.Save(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}
