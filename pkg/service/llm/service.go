package llm

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"strings"
	"text/template"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/secmon-lab/sonarlens/pkg/domain/interfaces"
	"github.com/secmon-lab/sonarlens/pkg/domain/model"
)

// Error tags for categorization
var (
	ErrTagLLMRequest      = goerr.NewTag("llm_request")
	ErrTagEmptyResponse   = goerr.NewTag("empty_response")
	ErrTagTemplateFailure = goerr.NewTag("template_failure")
)

//go:embed templates/*.md
var templateFS embed.FS

var promptTemplate = template.Must(
	template.New("refactoring_report.md").
		Funcs(template.FuncMap{"add": func(a, b int) int { return a + b }}).
		ParseFS(templateFS, "templates/refactoring_report.md"),
)

// ReportService requests refactoring reports from the completion endpoint
type ReportService struct {
	llmClient gollem.LLMClient
	cfg       Config
	spec      *model.ReportSpec
	now       func() time.Time
}

var _ interfaces.ReportGenerator = (*ReportService)(nil)

// Option configures ReportService
type Option func(*ReportService)

// WithReportSpec overrides the report sections requested from the model
func WithReportSpec(spec *model.ReportSpec) Option {
	return func(s *ReportService) {
		if spec != nil {
			s.spec = spec
		}
	}
}

// WithClock replaces the clock used to stamp reports
func WithClock(now func() time.Time) Option {
	return func(s *ReportService) {
		s.now = now
	}
}

// NewReportService validates cfg and then creates the LLM client with factory.
// When cfg is invalid the factory is never called.
func NewReportService(ctx context.Context, cfg Config, factory ClientFactory, opts ...Option) (*ReportService, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client, err := factory(ctx, cfg)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create LLM client")
	}

	s := &ReportService{
		llmClient: client,
		cfg:       cfg,
		spec:      model.DefaultReportSpec(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// PromptTemplateData contains data for the refactoring report template
type PromptTemplateData struct {
	Patterns string
	Metrics  string
	Hotspots string
	Sections []string
	Format   string
}

// BuildPrompt renders the prompt that embeds the aggregation, metrics and hotspots
func (s *ReportService) BuildPrompt(agg *model.Aggregation, data *model.AnalysisData) (string, error) {
	if agg == nil {
		agg = model.Aggregate(nil)
	}
	if data == nil {
		data = &model.AnalysisData{}
	}

	patterns, err := marshalIndent(agg)
	if err != nil {
		return "", goerr.Wrap(err, "failed to encode pattern analysis",
			goerr.T(ErrTagTemplateFailure))
	}
	metrics, err := indentRaw(data.Metrics)
	if err != nil {
		return "", goerr.Wrap(err, "failed to encode metrics", goerr.T(ErrTagTemplateFailure))
	}
	hotspots, err := indentRaw(data.Hotspots)
	if err != nil {
		return "", goerr.Wrap(err, "failed to encode hotspots", goerr.T(ErrTagTemplateFailure))
	}

	var buf bytes.Buffer
	if err := promptTemplate.Execute(&buf, PromptTemplateData{
		Patterns: patterns,
		Metrics:  metrics,
		Hotspots: hotspots,
		Sections: s.spec.Sections,
		Format:   s.spec.Format,
	}); err != nil {
		return "", goerr.Wrap(err, "failed to execute report template",
			goerr.T(ErrTagTemplateFailure))
	}

	return buf.String(), nil
}

// GenerateReport sends a single completion request and returns its text as a Report.
// Nothing is retried; every failure is returned with an error tag.
func (s *ReportService) GenerateReport(ctx context.Context, agg *model.Aggregation, data *model.AnalysisData) (*model.Report, error) {
	prompt, err := s.BuildPrompt(agg, data)
	if err != nil {
		return nil, err
	}

	ctxlog.From(ctx).Debug("Requesting refactoring report",
		"model", s.cfg.Model,
		"prompt_bytes", len(prompt),
	)

	session, err := s.llmClient.NewSession(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create LLM session",
			goerr.T(ErrTagLLMRequest))
	}

	response, err := session.GenerateContent(ctx, gollem.Text(prompt))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to generate LLM response", apiErrorOptions(err)...)
	}

	if response == nil || strings.TrimSpace(strings.Join(response.Texts, "")) == "" {
		return nil, goerr.New("empty response from LLM",
			goerr.T(ErrTagEmptyResponse),
			goerr.V("response", response))
	}

	return &model.Report{
		ID:          model.NewReportID(),
		Content:     strings.Join(response.Texts, ""),
		Model:       s.cfg.Model,
		GeneratedAt: s.now(),
	}, nil
}

// apiErrorOptions attaches the raw API response when the failure came from the Anthropic API
func apiErrorOptions(err error) []goerr.Option {
	opts := []goerr.Option{goerr.T(ErrTagLLMRequest)}

	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		opts = append(opts,
			goerr.V("status_code", apiErr.StatusCode),
			goerr.V("response", string(apiErr.DumpResponse(true))),
		)
	}
	return opts
}

func marshalIndent(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

func indentRaw(raw json.RawMessage) (string, error) {
	if len(raw) == 0 {
		return "{}", nil
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return "", err
	}
	return buf.String(), nil
}
