package config

import (
	"context"
	"log/slog"
	"time"

	"github.com/secmon-lab/sonarlens/pkg/domain/model"
	"github.com/secmon-lab/sonarlens/pkg/service/llm"
	"github.com/urfave/cli/v3"
)

// Default completion settings
const (
	DefaultClaudeModel = "claude-sonnet-4-20250514"
	DefaultMaxTokens   = 4000
)

// Claude holds Anthropic Claude configuration
type Claude struct {
	APIKey    string
	Model     string
	MaxTokens int64
	Timeout   time.Duration
}

// Flags returns CLI flags for Claude configuration
func (c *Claude) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "anthropic-api-key",
			Usage:       "Anthropic API key",
			Category:    "Claude",
			Sources:     cli.EnvVars("ANTHROPIC_API_KEY"),
			Destination: &c.APIKey,
		},
		&cli.StringFlag{
			Name:        "model",
			Usage:       "Claude model used to write the report",
			Category:    "Claude",
			Value:       DefaultClaudeModel,
			Sources:     cli.EnvVars("SONARLENS_MODEL"),
			Destination: &c.Model,
		},
		&cli.Int64Flag{
			Name:        "max-tokens",
			Usage:       "Maximum number of tokens in the generated report",
			Category:    "Claude",
			Value:       DefaultMaxTokens,
			Sources:     cli.EnvVars("SONARLENS_MAX_TOKENS"),
			Destination: &c.MaxTokens,
		},
		&cli.DurationFlag{
			Name:        "request-timeout",
			Usage:       "HTTP timeout for the completion request (0 disables it)",
			Category:    "Claude",
			Value:       llm.DefaultRequestTimeout,
			Sources:     cli.EnvVars("SONARLENS_REQUEST_TIMEOUT"),
			Destination: &c.Timeout,
		},
	}
}

// LLMConfig copies the flag values into the requester configuration
func (c *Claude) LLMConfig() llm.Config {
	return llm.Config{
		APIKey:    c.APIKey,
		Model:     c.Model,
		MaxTokens: c.MaxTokens,
		Timeout:   c.Timeout,
	}
}

// Configure validates the configuration and creates the report service.
// Without an API key it fails with model.ErrTagMissingCredential and no client is created.
func (c *Claude) Configure(ctx context.Context, spec *model.ReportSpec) (*llm.ReportService, error) {
	return llm.NewReportService(ctx, c.LLMConfig(), llm.NewClaudeClient, llm.WithReportSpec(spec))
}

// LogValue returns structured log value
func (c Claude) LogValue() slog.Value {
	return c.LLMConfig().LogValue()
}
