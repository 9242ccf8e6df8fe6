// Package requesttime pins one "now" per request so every timestamp a
// command writes (periods, events, audit) agrees.
package requesttime

import (
	"net/http"
	"time"

	"preservation/pkg/requestcontext"
)

func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithTime(r.Context(), time.Now().UTC())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
