package interfaces

import (
	"context"

	"github.com/secmon-lab/sonarlens/pkg/domain/model"
)

// Notifier announces a generated report to an external channel
type Notifier interface {
	NotifyReport(ctx context.Context, report *model.Report, location string, agg *model.Aggregation) error
}
