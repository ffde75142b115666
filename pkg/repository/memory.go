package repository

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/sonarlens/pkg/domain/interfaces"
	"github.com/secmon-lab/sonarlens/pkg/domain/model"
)

// Memory implements Repository interface with in-memory storage
type Memory struct {
	mu       sync.RWMutex
	analysis *model.AnalysisData
	reports  []*model.Report
}

var _ interfaces.Repository = (*Memory)(nil)

// NewMemory creates a new memory repository serving the given analysis data.
// A nil analysis behaves like an empty analysis directory.
func NewMemory(analysis *model.AnalysisData) *Memory {
	if analysis == nil {
		analysis = &model.AnalysisData{}
	}
	return &Memory{analysis: analysis}
}

// LoadAnalysis returns the analysis data given at construction
func (m *Memory) LoadAnalysis(ctx context.Context) (*model.AnalysisData, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	copied := *m.analysis
	return &copied, nil
}

// SaveReport stores a copy of the report
func (m *Memory) SaveReport(ctx context.Context, report *model.Report) (string, error) {
	if report == nil {
		return "", goerr.New("report is nil", goerr.T(model.ErrTagWriteReport))
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	copied := *report
	m.reports = append(m.reports, &copied)
	return "memory://" + report.FileName(), nil
}

// Reports returns the reports saved so far, oldest first
func (m *Memory) Reports() []*model.Report {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*model.Report, len(m.reports))
	copy(out, m.reports)
	return out
}
