// Package log provides slog handlers.
package log

import (
	"context"
	"log/slog"

	"github.com/cuff-app/cuff/internal/middleware"
)

// ContextHandler adds values from the [context.Context] to the [slog.Record]. It has to use the same
// attribute keys as the Gin [middleware.RequestLogger] so we can find logs created by the
// middleware and the [slog.Logger] context aware methods. Not every use of the logger happens within
// an HTTP request so it needs to be ok with keys not being set in the [context.Context].
type ContextHandler struct {
	slog.Handler
}

func New(handler slog.Handler) *ContextHandler {
	return &ContextHandler{
		Handler: handler,
	}
}

func (rh *ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if id, ok := middleware.GetCorrelationID(ctx); ok {
		r.AddAttrs(slog.String(middleware.RequestLoggerKeyCorrelationID, id))
	}

	return rh.Handler.Handle(ctx, r)
}

func (rh *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return New(rh.Handler.WithAttrs(attrs))
}

func (rh *ContextHandler) WithGroup(name string) slog.Handler {
	return New(rh.Handler.WithGroup(name))
}
