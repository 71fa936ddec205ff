package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"docporter/internal/httputil"
)

// Recovery converts a handler panic into a logged 500 with the service's
// error body, so one bad request cannot take the process down.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				recovered := recover()
				if recovered == nil {
					return
				}

				logger.Error("request panicked",
					"method", r.Method,
					"path", r.URL.Path,
					"panic", recovered,
					"stack", string(debug.Stack()),
				)
				httputil.RespondError(w, http.StatusInternalServerError,
					"Something went wrong while handling the request")
			}()

			next.ServeHTTP(w, r)
		})
	}
}
