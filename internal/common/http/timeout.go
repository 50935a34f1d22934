package http

import (
	"context"
	"net/http"
	"time"
)

// RequestTimeoutMiddleware bounds each request's context. Handlers and the
// storage backends below them see the deadline through ctx.
func RequestTimeoutMiddleware(timeout time.Duration) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
