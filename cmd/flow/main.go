// Command flow serves commission form templates and price quotes, and
// offers terminal tools for filling and checking templates.
//
//	@title			Flow API
//	@version		1.0
//	@description	Commission order intake: form templates, validation, service catalog and pricing quotes.
//	@BasePath		/
package main

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/salmondarat/Flow-sub001/internal/config"
	"github.com/salmondarat/Flow-sub001/internal/logger"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}

	app := &cli.App{
		Name:  "flow",
		Usage: "Commission order forms and pricing",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to TOML config file",
				EnvVars: []string{"FLOW_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"LOG_LEVEL"},
			},
		},
		Before: func(c *cli.Context) error {
			cfg, err := config.Load(c.String("config"))
			if err != nil {
				return err
			}
			level := cfg.LogLevel
			if c.IsSet("log-level") {
				level = c.String("log-level")
			}
			logger.Setup(logger.ParseLevel(level))
			c.App.Metadata = map[string]any{"config": cfg}
			return nil
		},
		Commands: []*cli.Command{
			serveCommand(),
			migrateCommand(),
			quoteCommand(),
			fillCommand(),
			checkCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

// loadedConfig returns the file config read in Before.
func loadedConfig(c *cli.Context) config.File {
	if cfg, ok := c.App.Metadata["config"].(config.File); ok {
		return cfg
	}
	return config.Defaults()
}

func databaseURLFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "database-url",
		Aliases: []string{"d"},
		Usage:   "PostgreSQL connection URL",
		EnvVars: []string{"DATABASE_URL"},
	}
}

func templateFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "template",
		Aliases: []string{"t"},
		Usage:   "Template file (.yaml, .yml or .json); the built-in template when empty",
		EnvVars: []string{"FLOW_TEMPLATE"},
	}
}

// stringOr returns the flag value when set, otherwise fallback.
func stringOr(c *cli.Context, name, fallback string) string {
	if c.IsSet(name) {
		return c.String(name)
	}
	return fallback
}
