package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/arlett/prodboard/internal/domain/project"
)

// fakeStore counts calls so tests can observe cache hits.
type fakeStore struct {
	active      []project.Project
	all         []project.Project
	err         error
	activeCalls int
	allCalls    int
	stateCalls  int
	upsertCalls int
}

func (f *fakeStore) ListActive(ctx context.Context) ([]project.Project, error) {
	f.activeCalls++
	return f.active, f.err
}

func (f *fakeStore) ListAll(ctx context.Context) ([]project.Project, error) {
	f.allCalls++
	return f.all, f.err
}

func (f *fakeStore) Get(ctx context.Context, id string) (*project.Project, error) {
	for i := range f.all {
		if f.all[i].ID == id {
			return &f.all[i], nil
		}
	}
	return nil, project.ErrNotFound
}

func (f *fakeStore) SetState(ctx context.Context, id string, state project.LifecycleState) error {
	f.stateCalls++
	return f.err
}

func (f *fakeStore) UpsertAll(ctx context.Context, projects []project.Project) error {
	f.upsertCalls++
	return f.err
}

func newTestCache(inner *fakeStore, ttl time.Duration) (*Projects, *time.Time) {
	c := NewProjects(inner, ttl)
	clock := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return clock }
	return c, &clock
}

func TestCacheServesWithinTTL(t *testing.T) {
	inner := &fakeStore{active: []project.Project{{ID: "p1"}}}
	c, _ := newTestCache(inner, 30*time.Second)
	ctx := context.Background()

	for range 3 {
		list, err := c.ListActive(ctx)
		require.NoError(t, err)
		require.Len(t, list, 1)
	}
	require.Equal(t, 1, inner.activeCalls)
}

func TestCacheExpires(t *testing.T) {
	inner := &fakeStore{active: []project.Project{{ID: "p1"}}}
	c, clock := newTestCache(inner, 30*time.Second)
	ctx := context.Background()

	_, err := c.ListActive(ctx)
	require.NoError(t, err)

	*clock = clock.Add(31 * time.Second)
	_, err = c.ListActive(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, inner.activeCalls)
}

func TestCacheListsAreIndependent(t *testing.T) {
	inner := &fakeStore{
		active: []project.Project{{ID: "p1"}},
		all:    []project.Project{{ID: "p1"}, {ID: "p2"}},
	}
	c, _ := newTestCache(inner, 30*time.Second)
	ctx := context.Background()

	_, err := c.ListActive(ctx)
	require.NoError(t, err)
	all, err := c.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, 1, inner.activeCalls)
	require.Equal(t, 1, inner.allCalls)
}

func TestCacheWritesInvalidate(t *testing.T) {
	inner := &fakeStore{active: []project.Project{{ID: "p1"}}}
	c, _ := newTestCache(inner, time.Hour)
	ctx := context.Background()

	_, err := c.ListActive(ctx)
	require.NoError(t, err)

	require.NoError(t, c.SetState(ctx, "p1", project.StateClosed))
	_, err = c.ListActive(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, inner.activeCalls)

	require.NoError(t, c.UpsertAll(ctx, nil))
	_, err = c.ListActive(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, inner.activeCalls)
}

func TestCacheDoesNotCacheErrors(t *testing.T) {
	inner := &fakeStore{err: errors.New("db locked")}
	c, _ := newTestCache(inner, time.Hour)
	ctx := context.Background()

	_, err := c.ListActive(ctx)
	require.Error(t, err)
	_, err = c.ListActive(ctx)
	require.Error(t, err)
	require.Equal(t, 2, inner.activeCalls)
}

func TestCacheGetPassesThrough(t *testing.T) {
	inner := &fakeStore{all: []project.Project{{ID: "p1"}}}
	c, _ := newTestCache(inner, time.Hour)

	got, err := c.Get(context.Background(), "p1")
	require.NoError(t, err)
	require.Equal(t, "p1", got.ID)

	_, err = c.Get(context.Background(), "missing")
	require.ErrorIs(t, err, project.ErrNotFound)
}
