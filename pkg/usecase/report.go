package usecase

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/sonarlens/pkg/domain/interfaces"
	"github.com/secmon-lab/sonarlens/pkg/domain/model"
)

// ReportResult is the outcome of a successful report run
type ReportResult struct {
	Report      *model.Report
	Location    string
	Aggregation *model.Aggregation
}

// Report runs the load, aggregate, request and write pipeline once
type Report struct {
	repo      interfaces.Repository
	generator interfaces.ReportGenerator
	notifier  interfaces.Notifier
}

// ReportOption configures Report
type ReportOption func(*Report)

// WithNotifier announces every written report through notifier
func WithNotifier(notifier interfaces.Notifier) ReportOption {
	return func(r *Report) {
		r.notifier = notifier
	}
}

// NewReport creates a new Report use case
func NewReport(repo interfaces.Repository, generator interfaces.ReportGenerator, opts ...ReportOption) *Report {
	r := &Report{
		repo:      repo,
		generator: generator,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run generates and stores one refactoring report. No report is written when
// the analysis data is missing or the completion request fails.
func (r *Report) Run(ctx context.Context) (*ReportResult, error) {
	logger := ctxlog.From(ctx)

	data, agg, err := loadAndAggregate(ctx, r.repo)
	if err != nil {
		return nil, err
	}

	logger.Info("Requesting refactoring report",
		"issues", agg.Total(),
		"files", len(agg.ByFile),
		"has_metrics", data.Metrics != nil,
		"has_hotspots", data.Hotspots != nil,
	)

	report, err := r.generator.GenerateReport(ctx, agg, data)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to generate report")
	}

	location, err := r.repo.SaveReport(ctx, report)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to save report",
			goerr.V("reportID", report.ID))
	}

	logger.Info("Report saved", "location", location, "reportID", report.ID)

	if r.notifier != nil {
		if err := r.notifier.NotifyReport(ctx, report, location, agg); err != nil {
			logger.Warn("Failed to send report notification", "error", err, "reportID", report.ID)
		}
	}

	return &ReportResult{
		Report:      report,
		Location:    location,
		Aggregation: agg,
	}, nil
}

// Aggregate loads the analysis data and returns its aggregation without contacting the LLM
func Aggregate(ctx context.Context, repo interfaces.Repository) (*model.Aggregation, error) {
	_, agg, err := loadAndAggregate(ctx, repo)
	return agg, err
}

func loadAndAggregate(ctx context.Context, repo interfaces.Repository) (*model.AnalysisData, *model.Aggregation, error) {
	data, err := repo.LoadAnalysis(ctx)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to load analysis data")
	}
	if data.IsEmpty() {
		return nil, nil, goerr.New("no analysis data found", goerr.T(model.ErrTagNoAnalysisData))
	}

	return data, model.Aggregate(data.IssueList()), nil
}
