package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/piresc/pickups/internal/pkg/constants"
	"github.com/piresc/pickups/internal/pkg/database"
	"github.com/piresc/pickups/internal/pkg/logger"
	"github.com/piresc/pickups/internal/pkg/models"
	nrpkg "github.com/piresc/pickups/internal/pkg/newrelic"
	"github.com/piresc/pickups/services/pickups"
)

// RedisCache shares snapshots between replicas serving the same dataset version
type RedisCache struct {
	redisClient *database.RedisClient
	ttl         time.Duration
}

// NewRedisCache creates a Redis snapshot cache with cfg.Cache.TTL expiry
func NewRedisCache(cfg *models.Config, redisClient *database.RedisClient) *RedisCache {
	return &RedisCache{
		redisClient: redisClient,
		ttl:         time.Duration(cfg.Cache.TTL) * time.Second,
	}
}

// Get returns the cached snapshot or pickups.ErrCacheMiss
func (c *RedisCache) Get(ctx context.Context, version string, hour int) (*models.HourSnapshot, error) {
	key := fmt.Sprintf(constants.KeySnapshot, version, hour)

	var data string
	err := nrpkg.WithDatastoreSegment(ctx, newrelic.DatastoreRedis, "snapshots", "GET", func() error {
		var err error
		data, err = c.redisClient.Get(ctx, key)
		return err
	})
	if errors.Is(err, redis.Nil) {
		return nil, pickups.ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot from redis: %w", err)
	}

	var snapshot models.HourSnapshot
	if err := json.Unmarshal([]byte(data), &snapshot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	return &snapshot, nil
}

// Set stores a snapshot as JSON
func (c *RedisCache) Set(ctx context.Context, version string, hour int, snapshot *models.HourSnapshot) error {
	key := fmt.Sprintf(constants.KeySnapshot, version, hour)

	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	err = nrpkg.WithDatastoreSegment(ctx, newrelic.DatastoreRedis, "snapshots", "SET", func() error {
		return c.redisClient.Set(ctx, key, data, c.ttl)
	})
	if err != nil {
		return fmt.Errorf("failed to store snapshot in redis: %w", err)
	}
	return nil
}

// Purge deletes every hour cached for version. Snapshots of other versions,
// possibly still served by other replicas, are kept until their TTL.
func (c *RedisCache) Purge(ctx context.Context, version string) error {
	pattern := fmt.Sprintf(constants.KeySnapshotPattern, version)

	var deleted int64
	err := nrpkg.WithDatastoreSegment(ctx, newrelic.DatastoreRedis, "snapshots", "DEL", func() error {
		var err error
		deleted, err = c.redisClient.DeleteMatching(ctx, pattern)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to purge snapshots: %w", err)
	}

	logger.Debug("Purged cached snapshots", logger.Version(version), logger.Int("keys", int(deleted)))
	return nil
}
