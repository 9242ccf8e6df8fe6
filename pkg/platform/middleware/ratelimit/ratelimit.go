// Package ratelimit throttles write requests per acting person.
package ratelimit

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"

	"preservation/pkg/requestcontext"
)

const (
	maxTrackedClients = 10_000
	idleTTL           = 10 * time.Minute
)

// Observer is notified of every rejected request.
type Observer interface {
	IncrementRateLimited()
}

// Limiter keeps one token bucket per person (or client IP for anonymous
// callers). Idle buckets expire from the LRU.
type Limiter struct {
	limiters *expirable.LRU[string, *rate.Limiter]
	limit    rate.Limit
	burst    int
	observer Observer
	logger   *slog.Logger
}

// New allows perMinute writes per caller with the given burst. perMinute <= 0
// disables limiting.
func New(perMinute, burst int, observer Observer, logger *slog.Logger) *Limiter {
	if burst <= 0 {
		burst = 1
	}
	limit := rate.Inf
	if perMinute > 0 {
		limit = rate.Limit(float64(perMinute) / 60)
	}
	return &Limiter{
		limiters: expirable.NewLRU[string, *rate.Limiter](maxTrackedClients, nil, idleTTL),
		limit:    limit,
		burst:    burst,
		observer: observer,
		logger:   logger,
	}
}

func (l *Limiter) limiterFor(key string) *rate.Limiter {
	if lim, ok := l.limiters.Get(key); ok {
		return lim
	}
	lim := rate.NewLimiter(l.limit, l.burst)
	l.limiters.Add(key, lim)
	return lim
}

// Writes applies the limit to mutating methods only.
func (l *Limiter) Writes(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet || r.Method == http.MethodHead || r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}
		ctx := r.Context()
		key := requestcontext.ClientIP(ctx)
		if person := requestcontext.PersonID(ctx); !person.IsNil() {
			key = person.String()
		}
		if !l.limiterFor(key).Allow() {
			if l.observer != nil {
				l.observer.IncrementRateLimited()
			}
			if l.logger != nil {
				l.logger.WarnContext(ctx, "write rate limit exceeded",
					"key", key,
					"request_id", requestcontext.RequestID(ctx),
				)
			}
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", "60")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":"rate_limited","error_description":"too many write requests"}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}
