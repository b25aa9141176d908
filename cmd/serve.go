package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nibzard/choretracker-go/internal/config"
	"github.com/nibzard/choretracker-go/internal/dummy"
	"github.com/nibzard/choretracker-go/internal/logging"
	"github.com/nibzard/choretracker-go/internal/server"
	"github.com/nibzard/choretracker-go/internal/ui"
)

// serveCommand serves a seeded dummy database over HTTP until ctx is done.
func serveCommand(ctx context.Context, cfg *config.Config, args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("choretracker serve", flag.ContinueOnError)
	fs.SetOutput(stderr)
	addr := fs.String("addr", cfg.ListenAddr, "Listen address")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	logger := logging.FromConfig(stderr, cfg.LogLevel, cfg.LogFormat, cfg.LogTimestamps, cfg.LogCaller)
	fixture, err := resolveFixture(cfg)
	if err != nil {
		return err
	}
	db, err := dummy.NewSeededDatabase(fixture, nil)
	if err != nil {
		return fmt.Errorf("seeding database: %w", err)
	}

	if !strings.EqualFold(cfg.LogLevel, "debug") {
		gin.SetMode(gin.ReleaseMode)
	}
	srv := server.New(db, server.Options{
		BasePath: strings.TrimSuffix(cfg.APIBase, "/"),
		Logger:   logger,
	})
	return srv.Run(ctx, *addr)
}

// tuiCommand launches the terminal UI.
func tuiCommand(ctx context.Context, cfg *config.Config, args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("choretracker tui", flag.ContinueOnError)
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	// Notifications are rendered by the UI, not printed.
	a, err := newApp(cfg, io.Discard, stderr)
	if err != nil {
		return err
	}
	return ui.Run(ctx, ui.Options{
		Store:    a.store,
		Commands: a.cmds,
		Interval: cfg.TimeReferenceInterval(),
	})
}
