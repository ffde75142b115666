package model_test

import (
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/sonarlens/pkg/domain/model"
)

func TestParseIssueReport(t *testing.T) {
	t.Run("keeps present empty strings", func(t *testing.T) {
		report, err := model.ParseIssueReport([]byte(`{"issues":[{"type":"","severity":"MAJOR","component":"a.go","message":"m"}]}`))
		gt.NoError(t, err).Required()
		gt.A(t, report.Issues).Length(1)
		gt.Equal(t, report.Issues[0].Type, "")
		gt.Equal(t, report.Issues[0].Severity, "MAJOR")
	})

	t.Run("ignores unrelated scanner fields", func(t *testing.T) {
		report, err := model.ParseIssueReport([]byte(`{"total":1,"issues":[{"key":"AX1","rule":"go:S1192","line":12,"type":"CODE_SMELL","severity":"MINOR","component":"proj:main.go","message":"dup"}]}`))
		gt.NoError(t, err).Required()
		gt.Equal(t, report.Issues[0], model.Issue{
			Type:      "CODE_SMELL",
			Severity:  "MINOR",
			Component: "proj:main.go",
			Message:   "dup",
		})
	})

	t.Run("numeric and boolean fields are tallied as text", func(t *testing.T) {
		report, err := model.ParseIssueReport([]byte(`{"issues":[
			{"type":true,"severity":2,"component":"a.go","message":42},
			{"type":"BUG","severity":2.5,"component":"a.go"}
		]}`))
		gt.NoError(t, err).Required()
		gt.Equal(t, report.Issues[0], model.Issue{
			Type:      "true",
			Severity:  "2",
			Component: "a.go",
			Message:   "42",
		})

		agg := model.Aggregate(report.Issues)
		gt.Equal(t, agg.BySeverity, map[string]int{"2": 1, "2.5": 1})
		gt.Equal(t, agg.ByType, map[string]int{"true": 1, "BUG": 1})
	})

	t.Run("object field is an error", func(t *testing.T) {
		_, err := model.ParseIssueReport([]byte(`{"issues":[{"type":{"name":"BUG"}}]}`))
		gt.Error(t, err)
		gt.True(t, goerr.HasTag(err, model.ErrTagInvalidAnalysis))
	})

	t.Run("missing issues field yields empty list", func(t *testing.T) {
		report, err := model.ParseIssueReport([]byte(`{"total":0}`))
		gt.NoError(t, err).Required()
		gt.Equal(t, len(report.Issues), 0)
	})

	t.Run("non-list issues field is an error", func(t *testing.T) {
		_, err := model.ParseIssueReport([]byte(`{"issues":{"type":"BUG"}}`))
		gt.Error(t, err)
		gt.True(t, goerr.HasTag(err, model.ErrTagInvalidAnalysis))
	})

	t.Run("non-object issue record is an error", func(t *testing.T) {
		_, err := model.ParseIssueReport([]byte(`{"issues":["BUG"]}`))
		gt.Error(t, err)
	})

	t.Run("malformed JSON is an error", func(t *testing.T) {
		_, err := model.ParseIssueReport([]byte(`{"issues":[`))
		gt.Error(t, err)
		gt.True(t, goerr.HasTag(err, model.ErrTagInvalidAnalysis))
	})
}

func TestAnalysisData(t *testing.T) {
	t.Run("nil data is empty", func(t *testing.T) {
		var data *model.AnalysisData
		gt.True(t, data.IsEmpty())
		gt.Equal(t, len(data.IssueList()), 0)
	})

	t.Run("metrics only is not empty and has no issues", func(t *testing.T) {
		data := &model.AnalysisData{Metrics: []byte(`{"coverage":80}`)}
		gt.False(t, data.IsEmpty())
		gt.Equal(t, len(data.IssueList()), 0)

		agg := model.Aggregate(data.IssueList())
		gt.Equal(t, len(agg.ByType), 0)
		gt.Equal(t, len(agg.ByFile), 0)
	})
}
