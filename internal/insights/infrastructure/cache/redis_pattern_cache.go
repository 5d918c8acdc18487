package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker/v2"

	"github.com/ascendhq/ascend/internal/insights/domain"
)

// DefaultPatternTTL bounds how stale a cached pattern may get before the
// next suggestion triggers a rebuild.
const DefaultPatternTTL = 15 * time.Minute

// RedisPatternCache caches rebuilt productivity patterns in Redis. Cache
// traffic runs behind a circuit breaker so a degraded Redis degrades to
// plain rebuilds instead of slowing every suggestion down.
type RedisPatternCache struct {
	client  *redis.Client
	source  domain.PatternProvider
	breaker *gobreaker.CircuitBreaker[[]byte]
	ttl     time.Duration
	logger  *slog.Logger
}

func NewRedisPatternCache(
	client *redis.Client,
	source domain.PatternProvider,
	ttl time.Duration,
	logger *slog.Logger,
) *RedisPatternCache {
	if ttl <= 0 {
		ttl = DefaultPatternTTL
	}

	return &RedisPatternCache{
		client:  client,
		source:  source,
		breaker: newCacheBreaker(logger),
		ttl:     ttl,
		logger:  logger,
	}
}

// newCacheBreaker builds the circuit breaker guarding Redis traffic. A
// cache miss is the cache working as intended, so redis.Nil counts as a
// success; only real transport failures may trip the breaker.
func newCacheBreaker(logger *slog.Logger) *gobreaker.CircuitBreaker[[]byte] {
	if logger == nil {
		logger = slog.Default()
	}
	return gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:    "pattern-cache",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, redis.Nil)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info("circuit breaker state changed",
				"cache", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	})
}

// PatternFor returns the cached pattern for the user, rebuilding and
// re-caching on a miss. Cache failures fall through to the source.
func (c *RedisPatternCache) PatternFor(ctx context.Context, userID uuid.UUID) (*domain.ProductivityPattern, error) {
	key := c.key(userID)

	data, err := c.breaker.Execute(func() ([]byte, error) {
		return c.client.Get(ctx, key).Bytes()
	})
	if err == nil {
		pattern := &domain.ProductivityPattern{}
		if jsonErr := json.Unmarshal(data, pattern); jsonErr == nil {
			return pattern, nil
		}
		// Corrupt entry: rebuild and overwrite below.
	} else if err != redis.Nil && err != gobreaker.ErrOpenState {
		c.logger.Warn("pattern cache read failed",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()),
		)
	}

	pattern, err := c.source.PatternFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	if data, jsonErr := json.Marshal(pattern); jsonErr == nil {
		if _, setErr := c.breaker.Execute(func() ([]byte, error) {
			return nil, c.client.Set(ctx, key, data, c.ttl).Err()
		}); setErr != nil && setErr != gobreaker.ErrOpenState {
			c.logger.Warn("pattern cache write failed",
				slog.String("user_id", userID.String()),
				slog.String("error", setErr.Error()),
			)
		}
	}

	return pattern, nil
}

// Invalidate drops the cached pattern so the next read rebuilds it. Used
// after new completions are recorded.
func (c *RedisPatternCache) Invalidate(ctx context.Context, userID uuid.UUID) {
	if _, err := c.breaker.Execute(func() ([]byte, error) {
		return nil, c.client.Del(ctx, c.key(userID)).Err()
	}); err != nil && err != gobreaker.ErrOpenState {
		c.logger.Warn("pattern cache invalidation failed",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()),
		)
	}
}

func (c *RedisPatternCache) key(userID uuid.UUID) string {
	return fmt.Sprintf("ascend:pattern:%s", userID)
}
