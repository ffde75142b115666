package cli

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/sonarlens/pkg/cli/config"
	"github.com/secmon-lab/sonarlens/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdAggregate() *cli.Command {
	var analysisCfg config.Analysis

	return &cli.Command{
		Name:  "aggregate",
		Usage: "Print the issue aggregation as JSON without requesting a report",
		Flags: analysisCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			w := c.Root().Writer
			ctxlog.From(ctx).Debug("Aggregating analysis data", slog.Any("analysis", analysisCfg))

			agg, err := usecase.Aggregate(ctx, analysisCfg.Configure())
			if err != nil {
				return handleError(ctx, w, err)
			}

			enc := json.NewEncoder(w)
			enc.SetEscapeHTML(false)
			enc.SetIndent("", "  ")
			if err := enc.Encode(agg); err != nil {
				return handleError(ctx, w, goerr.Wrap(err, "failed to encode aggregation"))
			}
			return nil
		},
	}
}
