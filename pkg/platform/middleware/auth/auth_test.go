package auth

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	id "preservation/pkg/domain"
	"preservation/pkg/requestcontext"
)

type stubValidator struct {
	claims *JWTClaims
	err    error
}

func (v stubValidator) ValidateToken(string) (*JWTClaims, error) { return v.claims, v.err }

func TestRequireAuth(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	person := uuid.New()

	var seen id.PersonID
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = requestcontext.PersonID(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name      string
		header    string
		validator stubValidator
		want      int
	}{
		{"valid token", "Bearer t", stubValidator{claims: &JWTClaims{PersonID: person.String()}}, http.StatusOK},
		{"missing header", "", stubValidator{}, http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", stubValidator{}, http.StatusUnauthorized},
		{"invalid token", "Bearer t", stubValidator{err: errors.New("bad")}, http.StatusUnauthorized},
		{"token without person", "Bearer t", stubValidator{claims: &JWTClaims{PersonID: "nope"}}, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = id.PersonID{}
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			RequireAuth(tt.validator, logger)(next).ServeHTTP(w, r)

			assert.Equal(t, tt.want, w.Code)
			if tt.want == http.StatusOK {
				assert.Equal(t, id.PersonID(person), seen)
			} else {
				assert.True(t, seen.IsNil())
			}
		})
	}
}
