package model

import "github.com/m-mizutani/goerr/v2"

// Error tags shared across layers. The CLI decides how to present an error by its tag.
var (
	ErrTagMissingCredential = goerr.NewTag("missing_credential")
	ErrTagNoAnalysisData    = goerr.NewTag("no_analysis_data")
	ErrTagInvalidAnalysis   = goerr.NewTag("invalid_analysis")
	ErrTagInvalidConfig     = goerr.NewTag("invalid_config")
	ErrTagWriteReport       = goerr.NewTag("write_report")
)
