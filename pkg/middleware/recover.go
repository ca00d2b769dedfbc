package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/hydroline/hydroline/pkg/logger"
	"github.com/hydroline/hydroline/pkg/response"
)

// Recovery converts panics in downstream handlers into a 500 response and
// logs the stack trace. http.ErrAbortHandler is re-raised so aborted
// connections keep net/http's behaviour.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				logger.WithCtx(r.Context()).Error("panic recovered",
					"panic", rec,
					"path", r.URL.Path,
					"stack", string(debug.Stack()),
				)
				response.Error(w, http.StatusInternalServerError, "Internal server error")
			}
		}()

		next.ServeHTTP(w, r)
	})
}
