package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/uptrace/bun"
)

// queryLogger logs every statement at debug level and failures at warn
type queryLogger struct {
	logger *slog.Logger
}

var _ bun.QueryHook = (*queryLogger)(nil)

func (h *queryLogger) BeforeQuery(ctx context.Context, _ *bun.QueryEvent) context.Context {
	return ctx
}

func (h *queryLogger) AfterQuery(ctx context.Context, event *bun.QueryEvent) {
	attrs := []slog.Attr{
		slog.String("query", event.Query),
		slog.Duration("duration", time.Since(event.StartTime)),
	}
	if event.Err != nil && !errors.Is(event.Err, sql.ErrNoRows) {
		attrs = append(attrs, slog.String("error", event.Err.Error()))
		h.logger.LogAttrs(ctx, slog.LevelWarn, "sql query failed", attrs...)
		return
	}
	h.logger.LogAttrs(ctx, slog.LevelDebug, "sql query", attrs...)
}
