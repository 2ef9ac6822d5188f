package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/heartmarshall/megamarket-backend/pkg/ctxutil"
)

// Error bodies written by middleware match the catalog API error shape.
const (
	internalErrorBody   = `{"code":500,"message":"Internal Server Error"}`
	tooManyRequestsBody = `{"code":429,"message":"Too Many Requests"}`
)

func writeErrorBody(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(body)) //nolint:errcheck
}

// Recovery returns middleware that recovers from panics, logs the error
// with a stack trace, and responds with 500 Internal Server Error.
func Recovery(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					if err == http.ErrAbortHandler {
						panic(err)
					}
					logger.ErrorContext(r.Context(), "panic recovered",
						slog.Any("error", err),
						slog.String("stack", string(debug.Stack())),
						slog.String("method", r.Method),
						slog.String("path", r.URL.Path),
						slog.String(ctxutil.RequestIDKey, ctxutil.RequestIDFromCtx(r.Context())),
					)
					writeErrorBody(w, http.StatusInternalServerError, internalErrorBody)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
