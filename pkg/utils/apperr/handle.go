package apperr

import (
	"context"

	"github.com/m-mizutani/ctxlog"
)

// Handle logs err with its goerr context values. A nil err is ignored.
func Handle(ctx context.Context, err error) {
	if err == nil {
		return
	}
	logger := ctxlog.From(ctx)
	logger.Error("application error", "error", err)
}
