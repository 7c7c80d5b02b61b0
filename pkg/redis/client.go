package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/eurenemendes/ecofeira-backend/pkg/config"
	"github.com/eurenemendes/ecofeira-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

const (
	keyNamespace     = "ef"
	comparisonPrefix = "comparison"
	catalogPrefix    = "catalog"
)

// ErrCacheMiss is returned when a cached value does not exist.
var ErrCacheMiss = errors.New("cache miss")

type cmdable interface {
	Ping(context.Context) *redis.StatusCmd
	Set(context.Context, string, any, time.Duration) *redis.StatusCmd
	Get(context.Context, string) *redis.StringCmd
	Del(context.Context, ...string) *redis.IntCmd
	Incr(context.Context, string) *redis.IntCmd
}

// Client wraps the redis connection helpers needed by the storefront.
type Client struct {
	store cmdable
	raw   *redis.Client
}

// Pinger exposes the health-check surface.
type Pinger interface {
	Ping(context.Context) error
}

// ComparisonCache exposes the minimal operations the comparison service needs.
type ComparisonCache interface {
	GetComparison(ctx context.Context, sessionID string) (string, error)
	SetComparison(ctx context.Context, sessionID, payload string, ttl time.Duration) error
	InvalidateComparison(ctx context.Context, sessionID string) error
	CatalogVersion(ctx context.Context) (int64, error)
}

// New bootstraps a Redis client with pooling/timeouts and verifies connectivity.
func New(ctx context.Context, cfg config.RedisConfig, logg *logger.Logger) (*Client, error) {
	opts, err := optionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	raw := redis.NewClient(opts)
	if err := raw.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	if logg != nil {
		logg.Info(ctx, "redis connection established")
	}
	return &Client{store: raw, raw: raw}, nil
}

// NewFromStore builds a client around an existing command surface (tests).
func NewFromStore(store cmdable) *Client {
	return &Client{store: store}
}

func optionsFromConfig(cfg config.RedisConfig) (*redis.Options, error) {
	if strings.TrimSpace(cfg.URL) == "" {
		return nil, fmt.Errorf("redis URL is required")
	}
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	if cfg.Password != "" {
		opts.Password = cfg.Password
	}
	if cfg.DB > 0 {
		opts.DB = cfg.DB
	}
	if cfg.PoolSize > 0 {
		opts.PoolSize = cfg.PoolSize
	}
	if cfg.MinIdleConns > 0 {
		opts.MinIdleConns = cfg.MinIdleConns
	}
	if cfg.DialTimeout > 0 {
		opts.DialTimeout = cfg.DialTimeout
	}
	if cfg.ReadTimeout > 0 {
		opts.ReadTimeout = cfg.ReadTimeout
	}
	if cfg.WriteTimeout > 0 {
		opts.WriteTimeout = cfg.WriteTimeout
	}
	return opts, nil
}

// Ping verifies connectivity.
func (c *Client) Ping(ctx context.Context) error {
	return c.store.Ping(ctx).Err()
}

// Close releases the underlying pool.
func (c *Client) Close() error {
	if c.raw == nil {
		return nil
	}
	return c.raw.Close()
}

func key(parts ...string) string {
	return keyNamespace + ":" + strings.Join(parts, ":")
}

// GetComparison returns the cached comparison payload for a session.
func (c *Client) GetComparison(ctx context.Context, sessionID string) (string, error) {
	val, err := c.store.Get(ctx, key(comparisonPrefix, sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrCacheMiss
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

// SetComparison caches the comparison payload for a session.
func (c *Client) SetComparison(ctx context.Context, sessionID, payload string, ttl time.Duration) error {
	return c.store.Set(ctx, key(comparisonPrefix, sessionID), payload, ttl).Err()
}

// InvalidateComparison drops the cached comparison after a list mutation.
func (c *Client) InvalidateComparison(ctx context.Context, sessionID string) error {
	return c.store.Del(ctx, key(comparisonPrefix, sessionID)).Err()
}

// BumpCatalogVersion increments the catalog version counter after an import.
func (c *Client) BumpCatalogVersion(ctx context.Context) (int64, error) {
	return c.store.Incr(ctx, key(catalogPrefix, "version")).Result()
}

// CatalogVersion returns the current catalog version counter. A catalog that
// has never been imported reads as version zero.
func (c *Client) CatalogVersion(ctx context.Context) (int64, error) {
	val, err := c.store.Get(ctx, key(catalogPrefix, "version")).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	version, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse catalog version %q: %w", val, err)
	}
	return version, nil
}
