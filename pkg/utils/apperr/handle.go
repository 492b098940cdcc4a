package apperr

import (
	"context"

	"github.com/m-mizutani/ctxlog"
)

// Handle logs an error on the non-propagating paths, such as a failed
// dataset load where the prior dataset stays active
func Handle(ctx context.Context, err error) {
	ctxlog.From(ctx).Error("application error", "error", err)
}
