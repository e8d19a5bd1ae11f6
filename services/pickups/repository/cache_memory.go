package repository

import (
	"context"
	"sync"

	"github.com/piresc/pickups/internal/pkg/models"
	"github.com/piresc/pickups/services/pickups"
)

// MemoryCache memoizes snapshots of the latest dataset version in process
type MemoryCache struct {
	mu        sync.RWMutex
	version   string
	snapshots map[int]*models.HourSnapshot
	// purged versions; writes for them come from requests still holding a
	// replaced dataset and are dropped
	retired map[string]struct{}
}

// NewMemoryCache creates an empty in-process snapshot cache
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		snapshots: make(map[int]*models.HourSnapshot),
		retired:   make(map[string]struct{}),
	}
}

// Get returns the cached snapshot or pickups.ErrCacheMiss
func (c *MemoryCache) Get(ctx context.Context, version string, hour int) (*models.HourSnapshot, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if version != c.version {
		return nil, pickups.ErrCacheMiss
	}
	snap, ok := c.snapshots[hour]
	if !ok {
		return nil, pickups.ErrCacheMiss
	}
	return snap, nil
}

// Set stores a snapshot. A new version drops everything cached for the old
// one. Writes for a purged version are ignored.
func (c *MemoryCache) Set(ctx context.Context, version string, hour int, snapshot *models.HourSnapshot) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.retired[version]; ok {
		return nil
	}
	if version != c.version {
		c.version = version
		c.snapshots = make(map[int]*models.HourSnapshot)
	}
	c.snapshots[hour] = snapshot
	return nil
}

// Purge retires version and drops its snapshots if it is the cached one
func (c *MemoryCache) Purge(ctx context.Context, version string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.retired[version] = struct{}{}
	if version == c.version {
		c.version = ""
		c.snapshots = make(map[int]*models.HourSnapshot)
	}
	return nil
}
