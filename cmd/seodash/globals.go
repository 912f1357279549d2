package main

import (
	"context"
	"io"
	"seodash/cmd/seodash/render"
	"seodash/internal/seo"
	"seodash/internal/session"

	"github.com/charmbracelet/log"
)

type Globals struct {
	Ctx     context.Context
	Dash    *seo.Dashboard
	Session *session.Session
	Out     io.Writer
	Render  render.Renderer
	Log     *log.Logger
	Ping    func(ctx context.Context) error
	Prompt  func(in *seo.ProjectInput) error
}
