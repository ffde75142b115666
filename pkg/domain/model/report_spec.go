package model

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// ReportSpec describes what the generated report must contain
type ReportSpec struct {
	Sections []string `yaml:"sections"` // Required report sections, in order
	Format   string   `yaml:"format"`   // Formatting instruction appended to the prompt
}

// DefaultReportSpec returns the sections requested when no report configuration is given
func DefaultReportSpec() *ReportSpec {
	return &ReportSpec{
		Sections: []string{
			"An executive summary of the code quality",
			"Detailed analysis of patterns found in the code",
			"Specific refactoring recommendations for each major issue type",
			"Prioritized list of improvements",
			"Code examples or templates for fixing common issues found",
		},
		Format: "Format the response in clean markdown with proper sections, code blocks, and bullet points.",
	}
}

// Validate validates the report spec
func (s *ReportSpec) Validate() error {
	if len(s.Sections) == 0 {
		return goerr.New("at least one report section is required",
			goerr.T(ErrTagInvalidConfig))
	}
	for i, section := range s.Sections {
		if strings.TrimSpace(section) == "" {
			return goerr.New("report section must not be empty",
				goerr.T(ErrTagInvalidConfig),
				goerr.V("index", i))
		}
	}
	return nil
}
