package main

import (
	"context"
	"database/sql"
	"errors"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/nkurelo/socialdash/internal/shared"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	// The database is optional until 'socialdash setup' has run; the token
	// keychain degrades to its session file store without it.
	var db *sql.DB
	if _, err := os.Stat(config.Database.Path); err == nil {
		if opened, err := shared.NewDatabase(config.Database.Path); err == nil {
			db = opened
			shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)
			defer db.Close()
		} else {
			logger.Warn("failed to open database, continuing without it", "error", err)
		}
	}

	runner := NewRunner(RunnerOpts{
		Config: config,
		DB:     db,
		Logger: logger,
	})

	app := &cli.Command{
		Name:     "socialdash",
		Usage:    "Terminal dashboard for your social media accounts",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		if errors.Is(err, shared.ErrNotAuthenticated) {
			logger.Error("not logged in, run 'socialdash auth login'")
			os.Exit(1)
		}
		logger.Fatalf("application error: %v", err)
	}
}
