package http

import (
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/AlibekovAA/todo-rpc/internal/common/constants"
	"github.com/AlibekovAA/todo-rpc/internal/common/httpmetrics"
	"github.com/AlibekovAA/todo-rpc/internal/observability/metrics"
)

type RateLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.RWMutex
	rate     rate.Limit
	burst    int
	cleanup  *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
}

func NewRateLimiter(requestsPerSecond float64, burst int) *RateLimiter {
	rl := &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		rate:     rate.Limit(requestsPerSecond),
		burst:    burst,
		cleanup:  time.NewTicker(constants.RateLimitCleanupInterval),
		done:     make(chan struct{}),
	}

	go rl.cleanupLimiters()

	return rl
}

func (rl *RateLimiter) cleanupLimiters() {
	for {
		select {
		case <-rl.done:
			return
		case <-rl.cleanup.C:
			rl.mu.Lock()
			for key, limiter := range rl.limiters {
				// A full bucket means the client has been idle.
				if limiter.Tokens() >= float64(rl.burst) {
					delete(rl.limiters, key)
				}
			}
			rl.mu.Unlock()
		}
	}
}

// Stop releases the cleanup goroutine.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() {
		rl.cleanup.Stop()
		close(rl.done)
	})
}

func (rl *RateLimiter) getLimiter(key string) *rate.Limiter {
	rl.mu.RLock()
	limiter, exists := rl.limiters[key]
	rl.mu.RUnlock()

	if !exists {
		rl.mu.Lock()
		limiter, exists = rl.limiters[key]
		if !exists {
			limiter = rate.NewLimiter(rl.rate, rl.burst)
			rl.limiters[key] = limiter
		}
		rl.mu.Unlock()
	}

	return limiter
}

func (rl *RateLimiter) Allow(key string) bool {
	return rl.getLimiter(key).Allow()
}

func (rl *RateLimiter) Middleware() func(http.Handler) http.Handler {
	return limitWith(rl, "general")
}

func limitWith(rl *RateLimiter, limiterType string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !rl.Allow(GetClientIP(r)) {
				metrics.RateLimitBlocked.WithLabelValues(httpmetrics.Route(r), limiterType).Inc()
				WriteErrorEnvelope(w, http.StatusTooManyRequests, CodeTooManyRequests, "rate limit exceeded", nil, TraceIDFromContext(r.Context()))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RPCRateLimiter applies the general limit to every call and an additional,
// stricter limit to POST requests, which carry mutations.
type RPCRateLimiter struct {
	generalLimiter  *RateLimiter
	mutationLimiter *RateLimiter
}

func NewRPCRateLimiter(rps float64, burst int, mutationRPS float64, mutationBurst int) *RPCRateLimiter {
	return &RPCRateLimiter{
		generalLimiter:  NewRateLimiter(rps, burst),
		mutationLimiter: NewRateLimiter(mutationRPS, mutationBurst),
	}
}

func (l *RPCRateLimiter) Middleware() func(http.Handler) http.Handler {
	general := limitWith(l.generalLimiter, "general")
	mutation := limitWith(l.mutationLimiter, "mutation")

	return func(next http.Handler) http.Handler {
		guarded := general(next)
		guardedMutation := general(mutation(next))
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodPost {
				guardedMutation.ServeHTTP(w, r)
				return
			}
			guarded.ServeHTTP(w, r)
		})
	}
}

func (l *RPCRateLimiter) Stop() {
	l.generalLimiter.Stop()
	l.mutationLimiter.Stop()
}
