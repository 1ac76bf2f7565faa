package api

import (
	"net/http"
	"sync"

	"shareit/internal/config"

	"golang.org/x/time/rate"
)

// rateLimiter ограничивает частоту запросов на клиента. Ключом служит
// идентификатор пользователя из заголовка, для анонимных запросов — адрес.
type rateLimiter struct {
	limiters sync.Map
	cfg      config.APIRateLimitConfig
}

func newRateLimiter(cfg config.APIRateLimitConfig) *rateLimiter {
	return &rateLimiter{cfg: cfg}
}

func (l *rateLimiter) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.cfg.Enabled || l.cfg.RPS <= 0 {
			next.ServeHTTP(w, r)
			return
		}

		key := r.Header.Get(userIDHeader)
		if key == "" {
			key = clientAddr(r)
		}

		if !l.getLimiter(key).Allow() {
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (l *rateLimiter) getLimiter(key string) *rate.Limiter {
	if v, ok := l.limiters.Load(key); ok {
		if lim, ok := v.(*rate.Limiter); ok {
			return lim
		}
	}

	burst := l.cfg.Burst
	if burst <= 0 {
		burst = 5
	}

	lim := rate.NewLimiter(rate.Limit(l.cfg.RPS), burst)
	actual, loaded := l.limiters.LoadOrStore(key, lim)
	if loaded {
		if actualLim, ok := actual.(*rate.Limiter); ok {
			return actualLim
		}
	}
	return lim
}
