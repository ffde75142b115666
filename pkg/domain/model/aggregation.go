package model

// FileIssue is the per-issue entry recorded under its component in Aggregation.ByFile
type FileIssue struct {
	Type     string `json:"type"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

// Aggregation holds the frequency tables derived from a list of issues.
// Values are built once by Aggregate and must be treated as read-only.
type Aggregation struct {
	ByType     map[string]int         `json:"by_type"`
	BySeverity map[string]int         `json:"by_severity"`
	ByFile     map[string][]FileIssue `json:"by_file"`

	// First-occurrence order of the map keys above
	TypeOrder     []string `json:"-"`
	SeverityOrder []string `json:"-"`
	FileOrder     []string `json:"-"`
}

// Aggregate reduces issues into an Aggregation. Zero issues produce empty, non-nil maps.
func Aggregate(issues []Issue) *Aggregation {
	agg := &Aggregation{
		ByType:        make(map[string]int),
		BySeverity:    make(map[string]int),
		ByFile:        make(map[string][]FileIssue),
		TypeOrder:     []string{},
		SeverityOrder: []string{},
		FileOrder:     []string{},
	}

	for _, issue := range issues {
		if _, ok := agg.ByType[issue.Type]; !ok {
			agg.TypeOrder = append(agg.TypeOrder, issue.Type)
		}
		agg.ByType[issue.Type]++

		if _, ok := agg.BySeverity[issue.Severity]; !ok {
			agg.SeverityOrder = append(agg.SeverityOrder, issue.Severity)
		}
		agg.BySeverity[issue.Severity]++

		if _, ok := agg.ByFile[issue.Component]; !ok {
			agg.FileOrder = append(agg.FileOrder, issue.Component)
		}
		agg.ByFile[issue.Component] = append(agg.ByFile[issue.Component], FileIssue{
			Type:     issue.Type,
			Severity: issue.Severity,
			Message:  issue.Message,
		})
	}

	return agg
}

// Total returns the number of issues that were aggregated
func (a *Aggregation) Total() int {
	total := 0
	for _, n := range a.ByType {
		total += n
	}
	return total
}
