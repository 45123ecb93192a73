package auth

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru"

	"github.com/haguru/bugtracker/internal/interfaces"
	"github.com/haguru/bugtracker/internal/metrics"
	"github.com/haguru/bugtracker/internal/models"
)

const DefaultRoleCacheSize = 128

// RoleCache memoizes role lookups. Unknown roles are not cached.
type RoleCache struct {
	repo    interfaces.RoleRepository
	cache   *lru.Cache
	metrics interfaces.Metrics
}

func NewRoleCache(repo interfaces.RoleRepository, size int, m interfaces.Metrics) (*RoleCache, error) {
	if repo == nil {
		return nil, fmt.Errorf("role repository cannot be nil")
	}
	if size <= 0 {
		size = DefaultRoleCacheSize
	}
	cache, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("failed to create role cache: %w", err)
	}
	return &RoleCache{repo: repo, cache: cache, metrics: m}, nil
}

// GetRole returns the named role or nil when it does not exist.
func (c *RoleCache) GetRole(ctx context.Context, name string) (*models.Role, error) {
	if cached, ok := c.cache.Get(name); ok {
		c.record(metrics.CacheHit)
		return cached.(*models.Role), nil
	}
	c.record(metrics.CacheMiss)

	role, err := c.repo.GetRoleByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if role != nil {
		c.cache.Add(name, role)
	}
	return role, nil
}

func (c *RoleCache) record(result string) {
	if c.metrics != nil {
		c.metrics.IncCounterVec(metrics.RoleCacheLookups, result)
	}
}
