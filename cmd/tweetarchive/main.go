// Package main is the entry point for the tweetarchive server and its
// maintenance commands.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"tweetarchive/internal/config"
	"tweetarchive/internal/logging"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "tweetarchive",
		Usage: "Bookmarked tweet archive API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "env-file",
				Usage:   "read environment variables from `FILE` before loading config",
				Value:   ".env",
				EnvVars: []string{"TWEETARCHIVE_ENV_FILE"},
			},
		},
		Before: func(c *cli.Context) error {
			return config.LoadDotEnv(c.String("env-file"))
		},
		Action: serveCommand,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP API (default)",
				Action: serveCommand,
			},
			{
				Name:   "migrate",
				Usage:  "Apply pending database migrations and exit",
				Action: migrateCommand,
			},
			{
				Name:   "sweep",
				Usage:  "Delete categories that no item uses",
				Action: sweepCommand,
			},
			{
				Name:   "categories",
				Usage:  "Print every category with its item count",
				Action: categoriesCommand,
			},
			{
				Name:      "hash-token",
				Usage:     "Print the bcrypt hash of an API token for API_TOKEN_HASH",
				ArgsUsage: "<token>",
				Action:    hashTokenCommand,
			},
		},
	}
}

// setup loads the configuration and installs the default logger. The
// returned closer flushes the log file, if any.
func setup() (*config.Config, io.Closer, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load configuration: %w", err)
	}

	logger, closer, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return nil, nil, fmt.Errorf("init logging: %w", err)
	}
	slog.SetDefault(logger)

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"rate_limit", cfg.RateLimitEnabled(),
		"write_auth", cfg.APITokenHash != "",
	)
	return cfg, closer, nil
}
