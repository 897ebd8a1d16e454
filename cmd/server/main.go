// Package main is the entry point for the Synapse API server, which serves
// the auth session and the study workspace (materials, flashcards, quizzes
// and mind maps) to the web client.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Sanjeev-Guntha/synapse/internal/config"
	"github.com/Sanjeev-Guntha/synapse/internal/platform/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Printf("synapse: %v", err)
		os.Exit(1)
	}
}

// run loads configuration, builds the application and serves until ctx ends.
func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}
	l.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"session_backend", cfg.Session.Backend,
		"generation_provider", cfg.Generation.Provider)

	app, err := newApplication(ctx, cfg, l)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	return app.Run(ctx)
}
