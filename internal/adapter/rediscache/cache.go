// Package rediscache is a Redis-backed cache for computed insights. Entries
// are namespaced by a per-user version counter; bumping the counter makes
// every older entry of that user unreachable.
package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/heartmarshall/healthtrack-backend/internal/config"
	"github.com/heartmarshall/healthtrack-backend/internal/metrics"
)

// NewClient creates a Redis client from config and verifies the connection.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}

// noVersion is returned by Get when the version counter is unreadable; Set
// ignores it.
const noVersion int64 = -1

// Cache stores JSON-encoded values per user. Redis failures are logged and
// reported as misses; they never fail the caller.
type Cache struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
	log    *slog.Logger
}

// New creates a cache over rdb. Keys are prefixed with prefix and expire
// after ttl.
func New(rdb *redis.Client, prefix string, ttl time.Duration, log *slog.Logger) *Cache {
	return &Cache{
		rdb:    rdb,
		prefix: prefix,
		ttl:    ttl,
		log:    log.With("adapter", "rediscache"),
	}
}

// Get loads the value stored under key into dst and reports whether it was
// found. The returned version must be passed to Set when the caller stores a
// value computed after this miss.
func (c *Cache) Get(ctx context.Context, userID uuid.UUID, key string, dst any) (int64, bool) {
	ver, err := c.version(ctx, userID)
	if err != nil {
		c.fail(ctx, "get version", userID, err)
		return noVersion, false
	}

	raw, err := c.rdb.Get(ctx, c.entryKey(userID, ver, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.RecordCacheLookup("miss")
		return ver, false
	}
	if err != nil {
		c.fail(ctx, "get", userID, err)
		return ver, false
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		c.fail(ctx, "decode", userID, err)
		return ver, false
	}
	metrics.RecordCacheLookup("hit")
	return ver, true
}

// Set stores value under key for version ver of userID. A value computed
// before an Invalidate lands under the old version and is never read.
func (c *Cache) Set(ctx context.Context, userID uuid.UUID, ver int64, key string, value any) {
	if ver < 0 {
		return
	}

	raw, err := json.Marshal(value)
	if err != nil {
		c.fail(ctx, "encode", userID, err)
		return
	}
	if err := c.rdb.Set(ctx, c.entryKey(userID, ver, key), raw, c.ttl).Err(); err != nil {
		c.fail(ctx, "set", userID, err)
	}
}

// Invalidate drops every cached value of userID.
func (c *Cache) Invalidate(ctx context.Context, userID uuid.UUID) {
	if err := c.rdb.Incr(ctx, c.versionKey(userID)).Err(); err != nil {
		c.fail(ctx, "invalidate", userID, err)
	}
}

// Ping checks the connection.
func (c *Cache) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

func (c *Cache) version(ctx context.Context, userID uuid.UUID) (int64, error) {
	ver, err := c.rdb.Get(ctx, c.versionKey(userID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return ver, err
}

func (c *Cache) versionKey(userID uuid.UUID) string {
	return fmt.Sprintf("%s:insights:%s:ver", c.prefix, userID)
}

func (c *Cache) entryKey(userID uuid.UUID, ver int64, key string) string {
	return fmt.Sprintf("%s:insights:%s:v%d:%s", c.prefix, userID, ver, key)
}

func (c *Cache) fail(ctx context.Context, op string, userID uuid.UUID, err error) {
	metrics.RecordCacheLookup("error")
	c.log.WarnContext(ctx, "insights cache "+op+" failed",
		slog.String("user_id", userID.String()),
		slog.String("error", err.Error()),
	)
}
