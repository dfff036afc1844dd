// Package cache provides a generation-keyed JSON cache with a Redis implementation.
// Invalidate bumps the generation, which orphans every entry written before it;
// orphaned entries expire through their TTL.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"

	"github.com/JaimeStill/callqa/pkg/lifecycle"
)

var lookups = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "callqa_cache_lookups_total",
		Help: "Cache lookups partitioned by result (hit, miss, error).",
	},
	[]string{"result"},
)

// Key is a cache key pinned to the generation current when it was looked up.
// Writing through a Key from before an Invalidate lands in the orphaned
// generation, so a value computed from pre-update rows is never read back.
type Key struct {
	Name       string
	Generation int64
}

// System stores JSON-encoded values under string keys.
type System interface {
	// Get decodes the value stored at name into dest and reports whether it
	// was found. The returned Key is the one to Set on a miss.
	Get(ctx context.Context, name string, dest any) (Key, bool, error)
	// Set stores value under key for the configured TTL.
	Set(ctx context.Context, key Key, value any) error
	// Invalidate discards every entry written so far.
	Invalidate(ctx context.Context) error
	// Start registers startup and shutdown hooks with the lifecycle coordinator.
	Start(lc *lifecycle.Coordinator) error
}

type redisCache struct {
	client      *redis.Client
	prefix      string
	ttl         time.Duration
	connTimeout time.Duration
	logger      *slog.Logger
}

// New creates a cache system from cfg. A disabled config yields a cache that
// never stores anything.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	if !cfg.Enabled {
		return Noop(), nil
	}

	opt, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	if cfg.DB != 0 {
		opt.DB = cfg.DB
	}

	return &redisCache{
		client:      redis.NewClient(opt),
		prefix:      cfg.Prefix,
		ttl:         cfg.TTLDuration(),
		connTimeout: cfg.ConnTimeoutDuration(),
		logger:      logger.With("system", "cache"),
	}, nil
}

func (c *redisCache) Start(lc *lifecycle.Coordinator) error {
	c.logger.Info("starting cache connection")

	lc.Probe("cache", func(ctx context.Context) error {
		return c.client.Ping(ctx).Err()
	})

	lc.OnStartup(func() {
		bo := backoff.NewExponentialBackOff()
		bo.MaxElapsedTime = 6 * c.connTimeout

		op := func() error {
			ctx, cancel := context.WithTimeout(lc.Context(), c.connTimeout)
			defer cancel()
			return c.client.Ping(ctx).Err()
		}

		if err := backoff.Retry(op, backoff.WithContext(bo, lc.Context())); err != nil {
			c.logger.Error("cache ping failed", "error", err)
			return
		}

		c.logger.Info("cache connection established")
	})

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		if err := c.client.Close(); err != nil {
			c.logger.Error("cache close failed", "error", err)
			return
		}
		c.logger.Info("cache connection closed")
	})

	return nil
}

func (c *redisCache) Get(ctx context.Context, name string, dest any) (Key, bool, error) {
	gen, err := c.client.Get(ctx, c.generationKey()).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		lookups.WithLabelValues("error").Inc()
		return Key{}, false, fmt.Errorf("cache generation: %w", err)
	}
	key := Key{Name: name, Generation: gen}

	data, err := c.client.Get(ctx, c.storageKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		lookups.WithLabelValues("miss").Inc()
		return key, false, nil
	}
	if err != nil {
		lookups.WithLabelValues("error").Inc()
		return key, false, fmt.Errorf("cache get %s: %w", name, err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		lookups.WithLabelValues("error").Inc()
		return key, false, fmt.Errorf("cache decode %s: %w", name, err)
	}

	lookups.WithLabelValues("hit").Inc()
	return key, true, nil
}

func (c *redisCache) Set(ctx context.Context, key Key, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", key.Name, err)
	}

	if err := c.client.Set(ctx, c.storageKey(key), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", key.Name, err)
	}
	return nil
}

func (c *redisCache) Invalidate(ctx context.Context) error {
	if err := c.client.Incr(ctx, c.generationKey()).Err(); err != nil {
		return fmt.Errorf("cache invalidate: %w", err)
	}
	return nil
}

func (c *redisCache) generationKey() string {
	return c.prefix + ":generation"
}

func (c *redisCache) storageKey(key Key) string {
	return fmt.Sprintf("%s:g%d:%s", c.prefix, key.Generation, key.Name)
}
