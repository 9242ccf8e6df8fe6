package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"preservation/internal/platform/metrics"
	"preservation/internal/preservation/handler"
	"preservation/pkg/platform/httputil"
	"preservation/pkg/platform/middleware/admin"
	"preservation/pkg/platform/middleware/auth"
	"preservation/pkg/platform/middleware/metadata"
	"preservation/pkg/platform/middleware/ratelimit"
	"preservation/pkg/platform/middleware/request"
	"preservation/pkg/platform/middleware/requesttime"
)

const requestTimeout = 30 * time.Second

// HealthCheck reports whether one dependency is usable.
type HealthCheck func(ctx context.Context) error

// RouterDeps are the collaborators the router wires together.
type RouterDeps struct {
	Handler        *handler.Handler
	Validator      auth.JWTValidator
	Limiter        *ratelimit.Limiter
	Metrics        *metrics.Metrics
	Logger         *slog.Logger
	AllowedOrigins []string
	AdminToken     string
	Checks         map[string]HealthCheck
}

// NewRouter builds the public API: health checks and metrics are open, the
// preservation API requires a bearer token, and maintenance routes require
// the admin token.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(request.RequestID)
	r.Use(metadata.ClientMetadata)
	r.Use(requesttime.Middleware)
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware)
	}
	if len(deps.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   deps.AllowedOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
			AllowedHeaders:   []string{"Authorization", "Content-Type", request.HeaderRequestID},
			ExposedHeaders:   []string{request.HeaderRequestID},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/health/ready", readiness(deps.Checks))
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(requestTimeout))
		r.Use(auth.RequireAuth(deps.Validator, deps.Logger))
		if deps.Limiter != nil {
			r.Use(deps.Limiter.Writes)
		}
		deps.Handler.Register(r)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(admin.RequireAdminToken(deps.AdminToken, deps.Logger))
		deps.Handler.RegisterAdmin(r)
	})

	return r
}

func readiness(checks map[string]HealthCheck) http.HandlerFunc {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		status := http.StatusOK
		results := make(map[string]string, len(names))
		for _, name := range names {
			if err := checks[name](ctx); err != nil {
				results[name] = "fail"
				status = http.StatusServiceUnavailable
				continue
			}
			results[name] = "ok"
		}
		httputil.WriteJSON(w, status, map[string]any{"checks": results})
	}
}
