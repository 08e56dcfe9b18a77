// Package cache provides a TTL read-through layer over the project store.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/arlett/prodboard/internal/domain/project"
)

// Store is the project persistence surface the cache wraps. It matches
// the sqlite repository: read queries plus the mutations that must
// invalidate cached lists.
type Store interface {
	project.Repository
	UpsertAll(ctx context.Context, projects []project.Project) error
}

type entry struct {
	projects []project.Project
	storedAt time.Time
}

// Projects caches the two list queries for a fixed TTL. Point reads and
// writes go straight through; writes drop the cached lists so the next
// read reflects them.
type Projects struct {
	inner Store
	ttl   time.Duration

	mu          sync.Mutex
	activeEntry *entry
	allEntry    *entry

	now func() time.Time
}

// NewProjects wraps store with a ttl-bounded list cache.
func NewProjects(store Store, ttl time.Duration) *Projects {
	return &Projects{
		inner: store,
		ttl:   ttl,
		now:   time.Now,
	}
}

func (c *Projects) ListActive(ctx context.Context) ([]project.Project, error) {
	c.mu.Lock()
	if c.activeEntry != nil && c.now().Sub(c.activeEntry.storedAt) < c.ttl {
		projects := c.activeEntry.projects
		c.mu.Unlock()
		return projects, nil
	}
	c.mu.Unlock()

	projects, err := c.inner.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.activeEntry = &entry{projects: projects, storedAt: c.now()}
	c.mu.Unlock()
	return projects, nil
}

func (c *Projects) ListAll(ctx context.Context) ([]project.Project, error) {
	c.mu.Lock()
	if c.allEntry != nil && c.now().Sub(c.allEntry.storedAt) < c.ttl {
		projects := c.allEntry.projects
		c.mu.Unlock()
		return projects, nil
	}
	c.mu.Unlock()

	projects, err := c.inner.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.allEntry = &entry{projects: projects, storedAt: c.now()}
	c.mu.Unlock()
	return projects, nil
}

func (c *Projects) Get(ctx context.Context, id string) (*project.Project, error) {
	return c.inner.Get(ctx, id)
}

func (c *Projects) SetState(ctx context.Context, id string, state project.LifecycleState) error {
	if err := c.inner.SetState(ctx, id, state); err != nil {
		return err
	}
	c.invalidate()
	return nil
}

func (c *Projects) UpsertAll(ctx context.Context, projects []project.Project) error {
	if err := c.inner.UpsertAll(ctx, projects); err != nil {
		return err
	}
	c.invalidate()
	return nil
}

func (c *Projects) invalidate() {
	c.mu.Lock()
	c.activeEntry = nil
	c.allEntry = nil
	c.mu.Unlock()
}
