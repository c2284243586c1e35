package server

import (
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/rshade/solarsizer/internal/logging"
	"github.com/rshade/solarsizer/internal/observability"
)

const (
	headerRequestID = "X-Request-Id"
	requestIDKey    = "requestId"
)

// requestID attaches a request ID to the response header and to the request
// context, where it doubles as the trace ID and carries a scoped logger.
func requestID(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(headerRequestID)
		if id == "" {
			id = ulid.Make().String()
		}
		c.Set(requestIDKey, id)
		c.Writer.Header().Set(headerRequestID, id)

		ctx := logging.ContextWithTraceID(c.Request.Context(), id)
		ctx = logger.With().Str("request_id", id).Logger().WithContext(ctx)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequestIDFromContext fetches the request ID stored by the request ID middleware.
func RequestIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	return c.GetString(requestIDKey)
}

// accessLog emits one structured entry per request and counts it.
func accessLog(metrics *observability.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		if metrics != nil {
			metrics.HTTPRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
		}

		ctx := c.Request.Context()
		logging.FromContext(ctx).Info().
			Ctx(ctx).
			Str("component", "server").
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Msg("request complete")
	}
}

// recovery turns a panic into a 500 with the standard error body.
func recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				ctx := c.Request.Context()
				logging.FromContext(ctx).Error().
					Ctx(ctx).
					Str("component", "server").
					Interface("panic", rec).
					Str("stack", string(debug.Stack())).
					Msg("recovered from panic")
				respondError(c, http.StatusInternalServerError, codeInternal, "unexpected server error")
			}
		}()
		c.Next()
	}
}
