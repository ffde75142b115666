package llm

import (
	"context"
	"log/slog"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/gollem/llm/claude"
	"github.com/secmon-lab/sonarlens/pkg/domain/model"
)

// DefaultRequestTimeout bounds one completion request. A full report of
// several thousand tokens is generated non-streaming and can take minutes.
const DefaultRequestTimeout = 10 * time.Minute

// Config holds everything the requester needs to reach the completion endpoint
type Config struct {
	APIKey    string
	Model     string
	MaxTokens int64
	Timeout   time.Duration // 0 disables the HTTP client timeout
}

// Validate validates the configuration. A missing API key is tagged ErrTagMissingCredential.
func (c Config) Validate() error {
	if c.APIKey == "" {
		return goerr.New("API key is not configured", goerr.T(model.ErrTagMissingCredential))
	}
	if c.Model == "" {
		return goerr.New("model is not configured", goerr.T(model.ErrTagInvalidConfig))
	}
	if c.MaxTokens <= 0 {
		return goerr.New("max tokens must be positive",
			goerr.T(model.ErrTagInvalidConfig),
			goerr.V("max_tokens", c.MaxTokens))
	}
	if c.Timeout < 0 {
		return goerr.New("timeout must not be negative",
			goerr.T(model.ErrTagInvalidConfig),
			goerr.V("timeout", c.Timeout))
	}
	return nil
}

// LogValue returns structured log value without the API key
func (c Config) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("has_api_key", c.APIKey != ""),
		slog.String("model", c.Model),
		slog.Int64("max_tokens", c.MaxTokens),
		slog.Duration("timeout", c.Timeout),
	)
}

// ClientFactory creates the LLM client for a validated Config
type ClientFactory func(ctx context.Context, cfg Config) (gollem.LLMClient, error)

// NewClaudeClient creates an Anthropic Claude client through gollem.
// gollem applies its own 30s HTTP timeout unless one is given, so cfg.Timeout is always passed.
func NewClaudeClient(ctx context.Context, cfg Config) (gollem.LLMClient, error) {
	client, err := claude.New(ctx, cfg.APIKey, claudeOptions(cfg)...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Claude client",
			goerr.V("model", cfg.Model))
	}
	return client, nil
}

func claudeOptions(cfg Config) []claude.Option {
	return []claude.Option{
		claude.WithModel(cfg.Model),
		claude.WithMaxTokens(cfg.MaxTokens),
		claude.WithTimeout(cfg.Timeout),
	}
}
