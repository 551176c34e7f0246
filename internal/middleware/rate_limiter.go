package middleware

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"catalogo/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const msgDemasiadas = "Demasiadas solicitudes. Intente nuevamente en un momento."

// RateLimiter returns a fixed-window rate limiter keyed by client IP.
// With a Redis client the counters are shared between instances; without one,
// or whenever Redis fails, counting falls back to process memory.
func RateLimiter(rdb *redis.Client, limit int, window time.Duration) gin.HandlerFunc {
	mem := newMemoryCounter(window)

	return func(c *gin.Context) {
		ip := c.ClientIP()

		var (
			count     int64
			windowEnd time.Time
			err       error
		)
		if rdb != nil {
			count, windowEnd, err = redisIncr(c.Request.Context(), rdb, ip, window)
			if err != nil {
				log.Warn().Err(err).Msg("rate limiter: redis no disponible, usando memoria")
			}
		}
		if rdb == nil || err != nil {
			count, windowEnd = mem.incr(ip, time.Now())
		}

		if count > int64(limit) {
			retry := time.Until(windowEnd).Round(time.Second)
			if retry < time.Second {
				retry = time.Second
			}
			c.Header("Retry-After", strconv.Itoa(int(retry.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.Envelope{Message: msgDemasiadas})
			return
		}
		c.Next()
	}
}

// redisIncr counts one hit in the current window. The key expires with the
// window, so no purge is needed on the Redis side.
func redisIncr(ctx context.Context, rdb *redis.Client, ip string, window time.Duration) (int64, time.Time, error) {
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()

	key := "catalogo:ratelimit:" + ip
	var incr *redis.IntCmd
	var ttl *redis.DurationCmd
	_, err := rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.ExpireNX(ctx, key, window)
		ttl = pipe.PTTL(ctx, key)
		return nil
	})
	if err != nil {
		return 0, time.Time{}, err
	}
	return incr.Val(), time.Now().Add(ttl.Val()), nil
}

// ── In-memory fallback ────────────────────────────────────────────────────────

// rateEntry tracks request counts per IP within a window.
type rateEntry struct {
	count     int64
	windowEnd time.Time
}

type memoryCounter struct {
	window    time.Duration
	mu        sync.Mutex
	entries   map[string]*rateEntry
	nextPurge time.Time
}

func newMemoryCounter(window time.Duration) *memoryCounter {
	return &memoryCounter{window: window, entries: make(map[string]*rateEntry)}
}

func (m *memoryCounter) incr(ip string, now time.Time) (int64, time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if now.After(m.nextPurge) {
		m.purgeExpired(now)
		m.nextPurge = now.Add(purgeInterval)
	}

	entry, ok := m.entries[ip]
	if !ok || now.After(entry.windowEnd) {
		entry = &rateEntry{windowEnd: now.Add(m.window)}
		m.entries[ip] = entry
	}
	entry.count++
	return entry.count, entry.windowEnd
}

const purgeInterval = 5 * time.Minute

// purgeExpired removes expired entries so IPs that never return do not
// accumulate. It runs on the request path at most once per purgeInterval,
// so the limiter owns no goroutine. Caller holds m.mu.
func (m *memoryCounter) purgeExpired(now time.Time) {
	purged := 0
	for ip, entry := range m.entries {
		if now.After(entry.windowEnd) {
			delete(m.entries, ip)
			purged++
		}
	}
	if purged > 0 {
		log.Debug().
			Int("entries_purged", purged).
			Int("entries_remaining", len(m.entries)).
			Msg("rate limiter map purged")
	}
}
