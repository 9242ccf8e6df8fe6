package httptransport

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"preservation/internal/preservation/handler"
	"preservation/internal/preservation/handler/mocks"
	id "preservation/pkg/domain"
	"preservation/pkg/platform/middleware/auth"
	"preservation/pkg/platform/middleware/request"
	"preservation/pkg/requestcontext"
	"preservation/pkg/testutil"
)

type staticValidator struct{ personID string }

func (v staticValidator) ValidateToken(token string) (*auth.JWTClaims, error) {
	if token != "good" {
		return nil, errors.New("bad token")
	}
	return &auth.JWTClaims{PersonID: v.personID}, nil
}

func newTestRouter(t *testing.T, checks map[string]HealthCheck) (http.Handler, *mocks.MockService, id.PersonID) {
	t.Helper()
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockService(ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	person := id.PersonID(uuid.New())

	router := NewRouter(RouterDeps{
		Handler:    handler.New(svc, logger),
		Validator:  staticValidator{personID: person.String()},
		Logger:     logger,
		AdminToken: "admin-secret",
		Checks:     checks,
	})
	return router, svc, person
}

func TestRouter(t *testing.T) {
	t.Run("health endpoints are public", func(t *testing.T) {
		router, _, _ := newTestRouter(t, map[string]HealthCheck{
			"postgres": func(context.Context) error { return nil },
		})
		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/health/ready"))
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.NotEmpty(t, rr.Header().Get(request.HeaderRequestID))
	})

	t.Run("failing dependency is not ready", func(t *testing.T) {
		router, _, _ := newTestRouter(t, map[string]HealthCheck{
			"redis": func(context.Context) error { return errors.New("down") },
		})
		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/health/ready"))
		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
		assert.Contains(t, rr.Body.String(), `"redis":"fail"`)
	})

	t.Run("api requires a bearer token", func(t *testing.T) {
		router, _, _ := newTestRouter(t, nil)
		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/tags/"+id.NewTagID().String()))
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("authenticated person reaches the service", func(t *testing.T) {
		router, svc, person := newTestRouter(t, nil)
		tagID := id.NewTagID()
		svc.EXPECT().Preserve(gomock.Any(), tagID).DoAndReturn(func(ctx context.Context, _ id.TagID) error {
			assert.Equal(t, person, requestcontext.PersonID(ctx))
			assert.False(t, requestcontext.Now(ctx).IsZero())
			return nil
		})

		req := testutil.NewRequest(t, http.MethodPost, "/tags/"+tagID.String()+"/preserve")
		req.Header.Set("Authorization", "Bearer good")
		rr := testutil.DoRequest(router, req)
		assert.Equal(t, http.StatusNoContent, rr.Code)
	})

	t.Run("admin routes need the admin token", func(t *testing.T) {
		router, svc, _ := newTestRouter(t, nil)
		path := "/admin/projects/" + uuid.NewString() + "/due-index/rebuild"

		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodPost, path))
		assert.Equal(t, http.StatusUnauthorized, rr.Code)

		svc.EXPECT().RebuildDueIndex(gomock.Any(), gomock.Any()).Return(3, nil)
		req := testutil.NewRequest(t, http.MethodPost, path)
		req.Header.Set("X-Admin-Token", "admin-secret")
		rr = testutil.DoRequest(router, req)
		assert.Equal(t, http.StatusOK, rr.Code)
	})
}
