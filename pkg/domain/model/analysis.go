package model

import "encoding/json"

// Analysis input file names inside the analysis directory
const (
	IssuesFileName   = "issues.json"
	MetricsFileName  = "metrics.json"
	HotspotsFileName = "hotspots.json"
)

// AnalysisData is the scanner output loaded from the analysis directory.
// A nil field means the corresponding file was absent.
type AnalysisData struct {
	Issues   *IssueReport
	Metrics  json.RawMessage
	Hotspots json.RawMessage
}

// IsEmpty reports whether none of the input files were present
func (d *AnalysisData) IsEmpty() bool {
	return d == nil || (d.Issues == nil && d.Metrics == nil && d.Hotspots == nil)
}

// IssueList returns the loaded issues, or nil when issues.json was absent
func (d *AnalysisData) IssueList() []Issue {
	if d == nil || d.Issues == nil {
		return nil
	}
	return d.Issues.Issues
}
