package repository

import (
	"context"
	"sync/atomic"

	"github.com/cinetick/cinetick/internal/domain"
)

type roleSnapshot struct {
	byId   map[int]domain.Role
	byName map[string]domain.Role
}

// RoleCache serves the role reference table from an immutable in-process
// snapshot. The table changes only through administrative action, so reads
// never hit the database; Reload swaps the snapshot wholesale.
type RoleCache struct {
	repo     domain.RoleRepository
	snapshot atomic.Pointer[roleSnapshot]
}

func NewRoleCache(ctx context.Context, repo domain.RoleRepository) (*RoleCache, error) {
	cache := &RoleCache{repo: repo}

	err := cache.Reload(ctx)
	if err != nil {
		return nil, err
	}

	return cache, nil
}

func (c *RoleCache) Reload(ctx context.Context) error {
	roles, err := c.repo.GetAll(ctx)
	if err != nil {
		return err
	}

	snapshot := &roleSnapshot{
		byId:   make(map[int]domain.Role, len(roles)),
		byName: make(map[string]domain.Role, len(roles)),
	}

	for _, role := range roles {
		snapshot.byId[role.ID] = role
		snapshot.byName[role.Name] = role
	}

	c.snapshot.Store(snapshot)

	return nil
}

func (c *RoleCache) ById(id int) (domain.Role, bool) {
	role, ok := c.snapshot.Load().byId[id]
	return role, ok
}

func (c *RoleCache) ByName(name string) (domain.Role, bool) {
	role, ok := c.snapshot.Load().byName[name]
	return role, ok
}
