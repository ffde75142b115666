package cli

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/sonarlens/pkg/cli/config"
	"github.com/urfave/cli/v3"
)

// EnvFileVar names the variable that overrides the default .env location
const EnvFileVar = "SONARLENS_ENV_FILE"

// Run runs the CLI application
func Run(ctx context.Context, args []string) error {
	return run(ctx, args, os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if err := loadEnvFile(); err != nil {
		return err
	}

	var loggerCfg config.Logger

	app := &cli.Command{
		Name:      "sonarlens",
		Usage:     "Turn static-analysis findings into an LLM-written refactoring report",
		Version:   "0.1.0",
		Flags:     loggerCfg.Flags(),
		Writer:    stdout,
		ErrWriter: stderr,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			logger, err := loggerCfg.Configure(stderr)
			if err != nil {
				return nil, err
			}

			slog.SetDefault(logger)
			ctx = ctxlog.With(ctx, logger)
			return ctx, nil
		},
		Commands: []*cli.Command{
			cmdReport(),
			cmdAggregate(),
		},
	}

	if err := app.Run(ctx, args); err != nil {
		return goerr.Wrap(err, "CLI execution failed")
	}

	return nil
}

// loadEnvFile loads .env (or $SONARLENS_ENV_FILE) into the process environment.
// Variables already set are left untouched and a missing file is not an error.
func loadEnvFile() error {
	path := os.Getenv(EnvFileVar)
	if path == "" {
		path = ".env"
	}

	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return goerr.Wrap(err, "failed to load env file", goerr.V("path", path))
	}
	return nil
}
