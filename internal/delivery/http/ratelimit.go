package storefront_http

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	httpresponse "github.com/tumbleweedd/pineapple_store/storefront_service/internal/lib/http"
	"github.com/tumbleweedd/pineapple_store/storefront_service/pkg/logger"
	"golang.org/x/time/rate"
)

const (
	maxTrackedClients = 10_000
	idleClientTTL     = 10 * time.Minute
)

// RateLimiter keeps one token bucket per client address.
type RateLimiter struct {
	log logger.Logger

	mu       sync.Mutex
	limiters *expirable.LRU[string, *rate.Limiter]
	rate     rate.Limit
	burst    int
}

// NewRateLimiter returns nil when requestsPerSecond is not positive, which disables limiting.
func NewRateLimiter(log logger.Logger, requestsPerSecond float64, burst int) *RateLimiter {
	if requestsPerSecond <= 0 {
		return nil
	}
	if burst <= 0 {
		burst = 1
	}

	return &RateLimiter{
		log:      log,
		limiters: expirable.NewLRU[string, *rate.Limiter](maxTrackedClients, nil, idleClientTTL),
		rate:     rate.Limit(requestsPerSecond),
		burst:    burst,
	}
}

func (rl *RateLimiter) limiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	limiter, ok := rl.limiters.Get(key)
	if !ok {
		limiter = rate.NewLimiter(rl.rate, rl.burst)
		rl.limiters.Add(key, limiter)
	}

	return limiter
}

func (rl *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := clientKey(r)

		if !rl.limiter(key).Allow() {
			rl.log.WarnContext(r.Context(), "rate limit exceeded",
				logger.String("client", key),
				logger.String("path", r.URL.Path),
			)
			httpresponse.Error(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
