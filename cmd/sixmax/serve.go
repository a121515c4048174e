package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/coder/quartz"

	"github.com/lox/sixmax/internal/server"
)

// ServeCmd runs the WebSocket server.
type ServeCmd struct {
	Table string `short:"t" help:"Table from the config file (default: first)"`
	Addr  string `short:"a" help:"Address to bind to (overrides config)"`
	Port  int    `short:"p" help:"Port to bind to (overrides config)"`
}

func (c *ServeCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	if c.Addr != "" {
		cfg.Server.Address = c.Addr
	}
	if c.Port != 0 {
		cfg.Server.Port = c.Port
	}

	logger := stderrLogger(cfg.Level())
	srv, err := server.New(cfg, c.Table, logger, quartz.NewReal())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		logger.Info("Shutting down server...")
	}()
	return srv.ListenAndServe(ctx)
}
