package middleware

import (
	"log/slog"
	"net/http"

	"github.com/Sanjeev-Guntha/synapse/internal/api/shared"
	"github.com/Sanjeev-Guntha/synapse/internal/platform/logger"
)

// TraceMiddleware adds a trace ID to the request context and a logger
// carrying it. Apply it before any handler that logs.
func TraceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := shared.SetTraceID(r.Context())
		traceID := shared.GetTraceID(ctx)

		log := logger.FromContext(ctx).With(slog.String("trace_id", traceID))
		ctx = logger.WithLogger(ctx, log)

		log.Debug("request started",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote_addr", r.RemoteAddr))

		w.Header().Set("X-Trace-ID", traceID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
