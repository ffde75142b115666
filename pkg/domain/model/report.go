package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ReportID identifies one generated report
type ReportID string

// NewReportID returns a fresh random report ID
func NewReportID() ReportID {
	return ReportID(uuid.New().String())
}

// Report is the markdown text returned by the completion endpoint
type Report struct {
	ID          ReportID
	Content     string
	Model       string
	GeneratedAt time.Time
}

// FileName returns refactoring_report_<YYYYMMDD_HHMMSS>.md for the report's local generation time
func (r *Report) FileName() string {
	return fmt.Sprintf("refactoring_report_%s.md", r.GeneratedAt.Local().Format("20060102_150405"))
}
