package main

import (
	"context"
	"errors"
	"os"

	"github.com/solvberg/holidaze/internal/api"
	"github.com/solvberg/holidaze/internal/session"
	"github.com/solvberg/holidaze/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	sessionPath := config.Session.Path
	if sessionPath == "" {
		path, err := session.DefaultPath()
		if err != nil {
			logger.Fatalf("unable to resolve session path: %v", err)
		}
		sessionPath = path
	}

	store, err := session.Open(sessionPath)
	if err != nil {
		logger.Fatalf("unable to open session store: %v", err)
	}

	runner := NewRunner(RunnerOpts{
		Config: config,
		Store:  store,
		Logger: logger,
	})

	app := &cli.Command{
		Name:     "holidaze",
		Usage:    "Browse, book and manage Holidaze venues from the terminal",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		if api.IsAuthRequired(err) {
			logger.Fatalf("authentication required: %v", err)
		}
		var apiErr *api.Error
		if errors.As(err, &apiErr) {
			logger.Fatalf("server rejected the request: %v", apiErr)
		}
		logger.Fatalf("application error: %v", err)
	}
}
