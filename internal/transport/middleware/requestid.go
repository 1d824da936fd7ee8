package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"cashbox/pkg/logger"
)

// TraceIDHeader is honored on requests and echoed on every response.
const TraceIDHeader = "X-Trace-ID"

type traceIDKey struct{}

// RequestID assigns each request a trace ID and scopes the context logger
// to it. Downstream middleware logs through logger.From, so every line
// emitted for a request carries the same traceID.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get(TraceIDHeader)
		if traceID == "" {
			traceID = uuid.NewString()
		}

		ctx := context.WithValue(r.Context(), traceIDKey{}, traceID)
		ctx = logger.With(ctx, "traceID", traceID)

		w.Header().Set(TraceIDHeader, traceID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// TraceID returns the trace ID assigned by RequestID, or "" outside of it.
func TraceID(ctx context.Context) string {
	if id, ok := ctx.Value(traceIDKey{}).(string); ok {
		return id
	}
	return ""
}
