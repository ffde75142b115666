package interfaces

import (
	"context"

	"github.com/secmon-lab/sonarlens/pkg/domain/model"
)

// ReportGenerator produces a refactoring report from aggregated analysis data.
// It makes exactly one completion request per call.
type ReportGenerator interface {
	GenerateReport(ctx context.Context, agg *model.Aggregation, data *model.AnalysisData) (*model.Report, error)
}
