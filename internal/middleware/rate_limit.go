package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/nutrichef/nutrichef/backend/internal/model"
)

// RateLimitConfig defines configuration for rate limiting
type RateLimitConfig struct {
	// Window is the fixed time window for rate limiting
	Window time.Duration
	// Limit is the maximum number of requests allowed in the window
	Limit int
	// KeyPrefix namespaces counter keys per route group
	KeyPrefix string
}

// CounterStore increments a fixed-window counter and reports the count and
// the time the current window resets. Implementations own their own state so
// the limiter itself can be handed a shared (Redis) store for multi-instance
// deployments without touching call sites.
type CounterStore interface {
	Incr(ctx context.Context, key string, window time.Duration) (count int, reset time.Time, err error)
}

// MemoryStore is a process-local CounterStore. Correctness is per-instance
// only, which matches the single-process deployment model.
type MemoryStore struct {
	mu        sync.Mutex
	counters  map[string]*windowCounter
	lastSweep time.Time
}

type windowCounter struct {
	start time.Time
	count int
}

// NewMemoryStore creates an in-memory counter store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{counters: make(map[string]*windowCounter)}
}

// Incr bumps the counter for key in the current fixed window
func (m *MemoryStore) Incr(_ context.Context, key string, window time.Duration) (int, time.Time, error) {
	windowStart := time.Now().Truncate(window)

	m.mu.Lock()
	defer m.mu.Unlock()

	// Once per window, drop counters for clients that stopped sending
	// traffic so the map does not grow with every IP ever seen
	if m.lastSweep.Before(windowStart) {
		for k, c := range m.counters {
			if c.start.Before(windowStart) {
				delete(m.counters, k)
			}
		}
		m.lastSweep = windowStart
	}

	wc, ok := m.counters[key]
	if !ok || !wc.start.Equal(windowStart) {
		wc = &windowCounter{start: windowStart}
		m.counters[key] = wc
	}
	wc.count++

	return wc.count, windowStart.Add(window), nil
}

// RedisStore is a CounterStore backed by Redis, for deployments with more
// than one API instance behind a load balancer.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a Redis-backed counter store
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Incr bumps the counter for key in the current fixed window
func (r *RedisStore) Incr(ctx context.Context, key string, window time.Duration) (int, time.Time, error) {
	windowStart := time.Now().Truncate(window)
	redisKey := fmt.Sprintf("%s:%d", key, windowStart.Unix())

	pipe := r.client.Pipeline()
	incrCmd := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, window)

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, time.Time{}, err
	}

	return int(incrCmd.Val()), windowStart.Add(window), nil
}

// RateLimiter enforces a fixed-window request ceiling per client key
type RateLimiter struct {
	store  CounterStore
	config RateLimitConfig
}

// NewRateLimiter creates a new rate limiter instance
func NewRateLimiter(store CounterStore, config RateLimitConfig) *RateLimiter {
	return &RateLimiter{store: store, config: config}
}

// Middleware returns a Gin middleware that enforces the limit, keyed by
// client IP. Requests whose authenticated identity carries the admin role
// bypass the counter entirely.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextRole) == model.RoleAdmin {
			c.Next()
			return
		}

		key := fmt.Sprintf("%s:%s", rl.config.KeyPrefix, c.ClientIP())
		count, reset, err := rl.store.Incr(c.Request.Context(), key, rl.config.Window)
		if err != nil {
			// A broken counter store should not take the API down
			c.Header("X-RateLimit-Error", "rate limit check failed")
			c.Next()
			return
		}

		remaining := rl.config.Limit - count
		if remaining < 0 {
			remaining = 0
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.config.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(reset.Unix(), 10))

		if count > rl.config.Limit {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"success":     false,
				"message":     fmt.Sprintf("You have exceeded the rate limit of %d requests per %v", rl.config.Limit, rl.config.Window),
				"retry_after": int(time.Until(reset).Seconds()),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// NewAPIRateLimiter limits general API traffic to 100 requests per 15 minutes
func NewAPIRateLimiter(store CounterStore) *RateLimiter {
	return NewRateLimiter(store, RateLimitConfig{
		Window:    15 * time.Minute,
		Limit:     100,
		KeyPrefix: "rate_limit:api",
	})
}

// NewGenerationRateLimiter limits recipe generation to 10 requests per 15
// minutes, since every request fans out to the LLM provider
func NewGenerationRateLimiter(store CounterStore) *RateLimiter {
	return NewRateLimiter(store, RateLimitConfig{
		Window:    15 * time.Minute,
		Limit:     10,
		KeyPrefix: "rate_limit:generate",
	})
}
