package interfaces

import (
	"context"

	"github.com/secmon-lab/sonarlens/pkg/domain/model"
)

// Repository defines where scanner output is read from and where reports are written
type Repository interface {
	// LoadAnalysis loads whichever analysis inputs are present. Absent inputs are skipped.
	LoadAnalysis(ctx context.Context) (*model.AnalysisData, error)

	// SaveReport persists a generated report and returns its location
	SaveReport(ctx context.Context, report *model.Report) (string, error)
}
