package main

import (
	"context"
	"fmt"
	"os"
	"seodash/cmd/seodash/render"
	"seodash/internal/api"
	"seodash/internal/config"
	"seodash/internal/logging"
	"seodash/internal/seo"
	"seodash/internal/session"
	"seodash/internal/store"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/x/term"
)

type CLI struct {
	Projects  ProjectsCmd  `cmd:"" aliases:"p" help:"Manage SEO projects"`
	Keywords  KeywordsCmd  `cmd:"" aliases:"k" help:"Keyword positions of the current project"`
	Backlinks BacklinksCmd `cmd:"" aliases:"b" help:"Backlinks of the current project"`
	Audits    AuditsCmd    `cmd:"" help:"Site audits of the current project"`
	Calendar  CalendarCmd  `cmd:"" aliases:"cal" help:"Content calendar of the current project"`
	Templates TemplatesCmd `cmd:"" aliases:"t" help:"Content templates"`
	Users     UsersCmd     `cmd:"" aliases:"u" help:"Workspace users"`
	Overview  OverviewCmd  `cmd:"" aliases:"o" help:"Summary of the workspace and current project"`
	Health    HealthCmd    `cmd:"" help:"Check that the API is reachable"`

	ConfigPath  string `name:"config" short:"c" help:"Path to config file"`
	SessionPath string `name:"session" help:"Path to session file"`
	Debug       bool   `help:"Log API traffic and store transitions"`
}

func (c *CLI) AfterApply(ctx *kong.Context) error {
	configPath := c.ConfigPath
	if configPath != "" {
		expanded, err := config.ExpandPath(configPath)
		if err != nil {
			return fmt.Errorf("invalid config path: %w", err)
		}
		configPath = expanded
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if c.Debug {
		cfg.Log.Level = "debug"
	}
	logger := logging.New(cfg.Log, os.Stderr)

	client, err := api.New(cfg.API, logger)
	if err != nil {
		return fmt.Errorf("failed to create api client: %w", err)
	}

	sessionPath := c.SessionPath
	if sessionPath == "" {
		sessionPath = config.DefaultSessionPath()
	}
	sess, err := session.New(sessionPath)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	if err := sess.Load(); err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}

	dash := seo.NewDashboard(
		func(path string) store.Transport { return client.Resource(path) },
		storeOptions(cfg.Store, logger)...,
	)

	globals := &Globals{
		Ctx:     context.Background(),
		Dash:    dash,
		Session: sess,
		Out:     os.Stdout,
		Render:  render.NewLipglossRendererAuto(os.Stdout),
		Log:     logger,
		Ping:    client.Ping,
	}
	if term.IsTerminal(os.Stdin.Fd()) {
		globals.Prompt = promptProject
	}
	ctx.Bind(globals)
	return nil
}

func storeOptions(cfg config.StoreConfig, logger *log.Logger) []store.Option {
	opts := []store.Option{
		store.WithLogger(logger),
		store.WithPageSize(cfg.PageSize),
	}
	if cfg.LatestOnly {
		opts = append(opts, store.WithLatestOnly())
	}
	if cfg.PageCacheSize > 0 {
		opts = append(opts, store.WithPageCache(cfg.PageCacheSize, cfg.PageCacheTTL))
	}
	if cfg.InsertAt == "end" {
		opts = append(opts, store.WithInsertAt(store.InsertAtEnd))
	}
	return opts
}

func main() {
	cli := CLI{}
	ctx := kong.Parse(&cli,
		kong.Name("seodash"),
		kong.Description("SEO analytics dashboard client"),
		kong.UsageOnError(),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
