package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
	"github.com/secmon-lab/sonarlens/pkg/cli/config"
	"github.com/secmon-lab/sonarlens/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdReport() *cli.Command {
	var (
		analysisCfg config.Analysis
		claudeCfg   config.Claude
		slackCfg    config.Slack
	)

	flags := joinFlags(
		analysisCfg.Flags(),
		claudeCfg.Flags(),
		slackCfg.Flags(),
	)

	return &cli.Command{
		Name:  "report",
		Usage: "Aggregate analysis findings and write an LLM refactoring report",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			w := c.Root().Writer
			logger := ctxlog.From(ctx).With(slog.String("run_id", uuid.New().String()))
			ctx = ctxlog.With(ctx, logger)

			logger.Info("Starting report generation",
				slog.Any("analysis", analysisCfg),
				slog.Any("claude", claudeCfg),
				slog.Any("slack", slackCfg),
			)

			if err := slackCfg.Validate(); err != nil {
				return handleError(ctx, w, err)
			}

			spec, err := analysisCfg.ReportSpec()
			if err != nil {
				return handleError(ctx, w, err)
			}

			svc, err := claudeCfg.Configure(ctx, spec)
			if err != nil {
				return handleError(ctx, w, err)
			}

			var opts []usecase.ReportOption
			if notifier := slackCfg.ConfigureOptional(logger); notifier != nil {
				opts = append(opts, usecase.WithNotifier(notifier))
			}

			result, err := usecase.NewReport(analysisCfg.Configure(), svc, opts...).Run(ctx)
			if err != nil {
				return handleError(ctx, w, err)
			}

			fmt.Fprintf(w, "\nAnalysis complete! Report saved to: %s\n", result.Location)
			fmt.Fprintln(w, "The report includes:")
			fmt.Fprintln(w, "1. Pattern analysis of code issues")
			fmt.Fprintln(w, "2. Specific refactoring strategies")
			fmt.Fprintln(w, "3. Generated improvement suggestions")
			return nil
		},
	}
}
