package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/sonarlens/pkg/domain/model"
	"github.com/secmon-lab/sonarlens/pkg/service/llm"
	"github.com/secmon-lab/sonarlens/pkg/utils/apperr"
)

// Fixed user-facing messages
const (
	msgMissingCredential = "Error: ANTHROPIC_API_KEY not found in environment or .env file"
	msgNoAnalysisData    = "Error: No analysis data found"
)

// handleError prints a human-readable message for err by its tag, logs it, and returns it
func handleError(ctx context.Context, w io.Writer, err error) error {
	apperr.Handle(ctx, err)

	switch {
	case goerr.HasTag(err, model.ErrTagMissingCredential):
		fmt.Fprintln(w, msgMissingCredential)

	case goerr.HasTag(err, model.ErrTagNoAnalysisData):
		fmt.Fprintln(w, msgNoAnalysisData)

	case goerr.HasTag(err, llm.ErrTagLLMRequest),
		goerr.HasTag(err, llm.ErrTagEmptyResponse),
		goerr.HasTag(err, model.ErrTagWriteReport):
		fmt.Fprintf(w, "Error generating report: %s\n", err.Error())
		if resp, ok := goerr.Values(err)["response"]; ok {
			fmt.Fprintf(w, "API Response: %v\n", resp)
		}

	default:
		fmt.Fprintf(w, "Error: %s\n", err.Error())
	}

	return err
}
