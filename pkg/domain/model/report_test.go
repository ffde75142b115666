package model_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/sonarlens/pkg/domain/model"
)

func TestReportFileName(t *testing.T) {
	report := &model.Report{
		GeneratedAt: time.Date(2024, 3, 5, 7, 8, 9, 0, time.Local),
	}
	gt.Equal(t, report.FileName(), "refactoring_report_20240305_070809.md")
}

func TestNewReportID(t *testing.T) {
	a := model.NewReportID()
	b := model.NewReportID()
	gt.NotEqual(t, a, b)
	gt.NotEqual(t, a, model.ReportID(""))
}

func TestReportSpecValidate(t *testing.T) {
	t.Run("default spec is valid", func(t *testing.T) {
		spec := model.DefaultReportSpec()
		gt.NoError(t, spec.Validate())
		gt.A(t, spec.Sections).Length(5)
	})

	t.Run("error when no sections", func(t *testing.T) {
		spec := model.ReportSpec{}
		gt.Error(t, spec.Validate())
	})

	t.Run("error when a section is blank", func(t *testing.T) {
		spec := model.ReportSpec{Sections: []string{"Summary", "  "}}
		gt.Error(t, spec.Validate())
	})
}
