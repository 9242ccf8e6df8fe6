// Package request assigns every request an ID, reusing a caller-supplied
// X-Request-ID when present.
package request

import (
	"net/http"

	"github.com/google/uuid"

	"preservation/pkg/requestcontext"
)

const HeaderRequestID = "X-Request-ID"

const maxRequestIDLen = 128

func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(HeaderRequestID)
		if requestID == "" || len(requestID) > maxRequestIDLen {
			requestID = uuid.NewString()
		}
		w.Header().Set(HeaderRequestID, requestID)
		ctx := requestcontext.WithRequestID(r.Context(), requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
