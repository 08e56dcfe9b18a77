// Package mocks provides testify mocks for the domain interfaces.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/arlett/prodboard/internal/domain/mirror"
	"github.com/arlett/prodboard/internal/domain/project"
)

// ProjectRepository is a mock for project.Repository.
type ProjectRepository struct {
	mock.Mock
}

func (m *ProjectRepository) ListActive(ctx context.Context) ([]project.Project, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]project.Project); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) ListAll(ctx context.Context) ([]project.Project, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]project.Project); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) Get(ctx context.Context, id string) (*project.Project, error) {
	args := m.Called(ctx, id)
	if p, ok := args.Get(0).(*project.Project); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) SetState(ctx context.Context, id string, state project.LifecycleState) error {
	args := m.Called(ctx, id, state)
	return args.Error(0)
}

// SourceCloser is a mock for project.SourceCloser.
type SourceCloser struct {
	mock.Mock
}

func (m *SourceCloser) MarkClosed(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Source is a mock for mirror.Source.
type Source struct {
	mock.Mock
}

func (m *Source) FetchProjects(ctx context.Context) ([]project.Project, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]project.Project); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// Store is a mock for mirror.Store.
type Store struct {
	mock.Mock
}

func (m *Store) UpsertAll(ctx context.Context, projects []project.Project) error {
	args := m.Called(ctx, projects)
	return args.Error(0)
}

// LogStore is a mock for mirror.LogStore.
type LogStore struct {
	mock.Mock
}

func (m *LogStore) Record(ctx context.Context, entry *mirror.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *LogStore) LastSuccess(ctx context.Context) (*time.Time, error) {
	args := m.Called(ctx)
	if t, ok := args.Get(0).(*time.Time); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}
