package infra

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"time"

	"github.com/Alvarezzzzz/charlotte-seguridad/internal/model"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	gobreaker "github.com/sony/gobreaker/v2"
)

const restauranteCacheKey = "seguridad:restaurante:config"

// RestauranteCache is a read-through cache of the geofence config.
// A nil *RestauranteCache or nil client disables caching; redis failures
// are never returned to callers, they just fall back to the store.
type RestauranteCache struct {
	rdb redis.Cmdable
	ttl time.Duration
	cb  *gobreaker.CircuitBreaker[[]byte]
	// set while an invalidation has not reached redis; the cached entry
	// is then bypassed until a later Del succeeds
	stale atomic.Bool
}

func NewRestauranteCache(rdb *redis.Client, ttl time.Duration) *RestauranteCache {
	if rdb == nil {
		return nil
	}
	return newRestauranteCache(rdb, ttl)
}

func newRestauranteCache(rdb redis.Cmdable, ttl time.Duration) *RestauranteCache {
	cb := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        "redis-restaurante",
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).
				Msg("circuit breaker state change")
		},
	})
	return &RestauranteCache{rdb: rdb, ttl: ttl, cb: cb}
}

// Get returns the cached config, or false on miss or error.
func (c *RestauranteCache) Get(ctx context.Context) (*model.Restaurante, bool) {
	if c == nil {
		return nil, false
	}
	if !c.reconcile(ctx) {
		CacheRequestsTotal.WithLabelValues("restaurante", "stale").Inc()
		return nil, false
	}
	raw, err := c.cb.Execute(func() ([]byte, error) {
		b, err := c.rdb.Get(ctx, restauranteCacheKey).Bytes()
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return b, err
	})
	if err != nil {
		CacheRequestsTotal.WithLabelValues("restaurante", "error").Inc()
		log.Debug().Err(err).Msg("restaurante cache get failed")
		return nil, false
	}
	if raw == nil {
		CacheRequestsTotal.WithLabelValues("restaurante", "miss").Inc()
		return nil, false
	}
	var r model.Restaurante
	if err := json.Unmarshal(raw, &r); err != nil {
		CacheRequestsTotal.WithLabelValues("restaurante", "error").Inc()
		return nil, false
	}
	CacheRequestsTotal.WithLabelValues("restaurante", "hit").Inc()
	return &r, true
}

func (c *RestauranteCache) Set(ctx context.Context, r *model.Restaurante) {
	if c == nil || r == nil || !c.reconcile(ctx) {
		return
	}
	b, err := json.Marshal(r)
	if err != nil {
		return
	}
	_, err = c.cb.Execute(func() ([]byte, error) {
		return nil, c.rdb.Set(ctx, restauranteCacheKey, b, c.ttl).Err()
	})
	if err != nil {
		log.Debug().Err(err).Msg("restaurante cache set failed")
	}
}

// Invalidate drops the cached config after any restaurant mutation. When
// redis cannot be reached the cache stays bypassed until the Del goes through.
func (c *RestauranteCache) Invalidate(ctx context.Context) {
	if c == nil {
		return
	}
	if err := c.del(ctx); err != nil {
		c.stale.Store(true)
		log.Warn().Err(err).Msg("restaurante cache invalidation failed")
	}
}

// reconcile retries a pending invalidation and reports whether the cache
// may be used.
func (c *RestauranteCache) reconcile(ctx context.Context) bool {
	if !c.stale.Load() {
		return true
	}
	if err := c.del(ctx); err != nil {
		return false
	}
	c.stale.Store(false)
	return true
}

func (c *RestauranteCache) del(ctx context.Context) error {
	_, err := c.cb.Execute(func() ([]byte, error) {
		return nil, c.rdb.Del(ctx, restauranteCacheKey).Err()
	})
	return err
}
