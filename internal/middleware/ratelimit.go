package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"whatshouldiread/internal/logging"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// IPRateLimiter manages per-IP rate limiting
type IPRateLimiter struct {
	limiters sync.Map
	rate     rate.Limit
	burst    int
}

// NewIPRateLimiter creates a new IP-based rate limiter
func NewIPRateLimiter(r rate.Limit, burst int) *IPRateLimiter {
	return &IPRateLimiter{
		rate:  r,
		burst: burst,
	}
}

// GetLimiter returns the rate limiter for a given IP
func (l *IPRateLimiter) GetLimiter(ip string) *rate.Limiter {
	if limiter, ok := l.limiters.Load(ip); ok {
		return limiter.(*rate.Limiter)
	}
	limiter, _ := l.limiters.LoadOrStore(ip, rate.NewLimiter(l.rate, l.burst))
	return limiter.(*rate.Limiter)
}

// DailyQuota manages global daily request quota
type DailyQuota struct {
	count   int64
	limit   int64
	resetAt time.Time
	mu      sync.Mutex
}

// NewDailyQuota creates a new daily quota manager; a limit <= 0 disables the quota
func NewDailyQuota(limit int64) *DailyQuota {
	return &DailyQuota{
		limit:   limit,
		resetAt: nextMidnightPT(),
	}
}

// Allow checks if a request is allowed and increments the counter
func (q *DailyQuota) Allow() bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	// Check if we need to reset
	if time.Now().After(q.resetAt) {
		logging.Component("RateLimit").Info().Int64("previous_count", q.count).Msg("daily quota reset")
		q.count = 0
		q.resetAt = nextMidnightPT()
	}

	if q.limit > 0 && q.count >= q.limit {
		return false
	}
	q.count++
	return true
}

// Remaining returns the remaining quota, or -1 when the quota is unlimited
func (q *DailyQuota) Remaining() int64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.limit <= 0 {
		return -1
	}
	return q.limit - q.count
}

// ResetAt returns when the quota resets
func (q *DailyQuota) ResetAt() time.Time {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.resetAt
}

// Count returns the current count
func (q *DailyQuota) Count() int64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.count
}

// nextMidnightPT returns the next midnight in Pacific Time (Gemini API quota reset time)
func nextMidnightPT() time.Time {
	loc, err := time.LoadLocation("America/Los_Angeles")
	if err != nil {
		// Fallback to UTC if timezone not found
		loc = time.UTC
	}
	now := time.Now().In(loc)
	return time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, loc)
}

// RateLimitMiddleware creates a Gin middleware for rate limiting.
// The per-IP limiter runs first so throttled requests never consume the shared daily quota.
func RateLimitMiddleware(ipLimiter *IPRateLimiter, quota *DailyQuota) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !ipLimiter.GetLimiter(c.ClientIP()).Allow() {
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":      "Too many requests. Please slow down.",
				"code":       "RATE_LIMITED",
				"retryAfter": 1,
			})
			return
		}

		if !quota.Allow() {
			logging.Component("RateLimit").Warn().Int64("count", quota.Count()).Msg("daily quota exhausted")
			retryAfter := int(time.Until(quota.ResetAt()).Seconds()) + 1
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":      "Daily recommendation quota reached. Please come back tomorrow.",
				"code":       "DAILY_QUOTA_EXCEEDED",
				"retryAfter": retryAfter,
			})
			return
		}

		c.Next()
	}
}
