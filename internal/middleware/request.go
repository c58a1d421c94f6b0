package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CorrelationIDHeader is read from incoming requests and echoed on every response.
const CorrelationIDHeader = "X-Correlation-ID"

// RequestLoggerKeyCorrelationID is the log attribute key of the correlation ID. The slog handler
// in internal/log uses it as well so request and service logs of one request share the id.
const RequestLoggerKeyCorrelationID = "id"

type correlationIDKey struct{}

// CorrelationID tags every request with an id. A valid UUID sent in [CorrelationIDHeader] is
// kept so clients can correlate their own logs, anything else is replaced.
func CorrelationID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(CorrelationIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}

		c.Request = c.Request.WithContext(NewContextWithCorrelationID(c.Request.Context(), id))
		c.Header(CorrelationIDHeader, id)
		c.Next()
	}
}

func NewContextWithCorrelationID(ctx context.Context, correlationID string) context.Context {
	return context.WithValue(ctx, correlationIDKey{}, correlationID)
}

// GetCorrelationID returns the id set by [CorrelationID], if any.
func GetCorrelationID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(correlationIDKey{}).(string)
	return id, ok
}

// RequestLogger logs every processed request. Successful requests to one of the quietRoutes, like
// health probes, aren't logged.
func RequestLogger(logger *slog.Logger, quietRoutes ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := c.Writer.Status()
		level := levelOf(status)
		if level == slog.LevelInfo && slices.Contains(quietRoutes, c.FullPath()) {
			return
		}

		attributes := []slog.Attr{requestAttribute(c, start), responseAttribute(c, start)}
		if level > slog.LevelInfo {
			attributes = append(attributes, slog.String("error", c.Errors.String()))
		}
		logger.LogAttrs(c.Request.Context(), level, "Processed HTTP request", attributes...)
	}
}

func levelOf(status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	}
	return slog.LevelInfo
}

func requestAttribute(c *gin.Context, start time.Time) slog.Attr {
	params := make(map[string]string, len(c.Params))
	for _, param := range c.Params {
		params[param.Key] = param.Value
	}

	return slog.Group("request",
		slog.Time("time", start),
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.String("route", c.FullPath()),
		slog.String("query", c.Request.URL.RawQuery),
		slog.Any("params", params),
		slog.String("userAgent", c.Request.UserAgent()),
		slog.String("ip", c.ClientIP()),
	)
}

func responseAttribute(c *gin.Context, start time.Time) slog.Attr {
	end := time.Now()
	return slog.Group("response",
		slog.Time("time", end),
		slog.Duration("latency", end.Sub(start)),
		slog.Int("status", c.Writer.Status()),
		slog.Int("size", c.Writer.Size()),
	)
}
