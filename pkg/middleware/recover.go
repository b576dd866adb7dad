package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/JaimeStill/notewise/pkg/handlers"
)

// Recover converts a handler panic into a 500 JSON response and logs the
// panic value with its stack. http.ErrAbortHandler is re-raised.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				v := recover()
				if v == nil {
					return
				}
				if v == http.ErrAbortHandler {
					panic(v)
				}

				logger.Error(
					"handler panic",
					"id", w.Header().Get(RequestIDHeader),
					"uri", r.URL.RequestURI(),
					"panic", fmt.Sprint(v),
					"stack", string(debug.Stack()),
				)

				handlers.RespondJSON(w, http.StatusInternalServerError, map[string]string{
					"error": http.StatusText(http.StatusInternalServerError),
				})
			}()

			next.ServeHTTP(w, r)
		})
	}
}
