package http

import (
	"context"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/allisson/examvault/internal/httputil"
)

const (
	// limiterCleanupInterval is how often stale limiters are scanned.
	limiterCleanupInterval = 5 * time.Minute
	// limiterIdleTTL is how long a limiter may go unused before it is dropped.
	limiterIdleTTL = time.Hour
)

// rateLimiterStore holds per-client rate limiters with automatic cleanup.
type rateLimiterStore struct {
	limiters  sync.Map // map[string]*rateLimiterEntry
	perMinute int
	now       func() time.Time
}

// rateLimiterEntry holds a rate limiter and last access time for cleanup.
type rateLimiterEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
	mu         sync.Mutex
}

func newRateLimiterStore(perMinute int) *rateLimiterStore {
	return &rateLimiterStore{
		perMinute: max(perMinute, 1),
		now:       time.Now,
	}
}

// RateLimitMiddleware enforces per-client-IP rate limiting for one scope.
//
// Each scope (upload, download, general) owns an independent store, so a client draining its
// upload bucket still has its general budget. The bucket refills at perMinute tokens per
// minute with a burst of perMinute. The cleanup goroutine stops when ctx is done.
//
// Returns:
//   - 429 Too Many Requests: Rate limit exceeded (includes Retry-After header)
//   - Continues: Request allowed within rate limit
func RateLimitMiddleware(ctx context.Context, scope string, perMinute int, logger *slog.Logger) gin.HandlerFunc {
	store := newRateLimiterStore(perMinute)

	go store.cleanupStale(ctx, limiterCleanupInterval)

	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		limiter := store.getLimiter(clientIP)

		if !limiter.Allow() {
			reservation := limiter.Reserve()
			retryAfter := int(math.Ceil(reservation.Delay().Seconds()))
			reservation.Cancel()

			logger.Debug("rate limit exceeded",
				slog.String("scope", scope),
				slog.String("client_ip", clientIP),
				slog.Int("retry_after", retryAfter))

			httputil.HandleRateLimitedGin(c, retryAfter)
			return
		}

		c.Next()
	}
}

// getLimiter retrieves or creates a rate limiter for a client.
func (s *rateLimiterStore) getLimiter(key string) *rate.Limiter {
	if val, ok := s.limiters.Load(key); ok {
		entry := val.(*rateLimiterEntry)
		entry.mu.Lock()
		entry.lastAccess = s.now()
		entry.mu.Unlock()
		return entry.limiter
	}

	entry := &rateLimiterEntry{
		limiter:    rate.NewLimiter(rate.Every(time.Minute/time.Duration(s.perMinute)), s.perMinute),
		lastAccess: s.now(),
	}

	// Two first requests may race; both must share whichever entry wins.
	actual, _ := s.limiters.LoadOrStore(key, entry)
	return actual.(*rateLimiterEntry).limiter
}

// cleanupStale removes rate limiters that haven't been accessed recently.
func (s *rateLimiterStore) cleanupStale(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.removeIdle(s.now().Add(-limiterIdleTTL))
		}
	}
}

// removeIdle drops every limiter last used before threshold.
func (s *rateLimiterStore) removeIdle(threshold time.Time) {
	s.limiters.Range(func(key, value interface{}) bool {
		entry := value.(*rateLimiterEntry)
		entry.mu.Lock()
		shouldDelete := entry.lastAccess.Before(threshold)
		entry.mu.Unlock()

		if shouldDelete {
			s.limiters.Delete(key)
		}
		return true
	})
}
