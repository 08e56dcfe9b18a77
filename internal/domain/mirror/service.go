package mirror

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Service runs sync cycles from the external source into the store.
type Service struct {
	source Source
	store  Store
	log    LogStore
	logger *slog.Logger
}

// NewService creates a new mirror service.
func NewService(source Source, store Store, log LogStore, logger *slog.Logger) *Service {
	return &Service{source: source, store: store, log: log, logger: logger}
}

// Run executes one full sync cycle. The attempt is always recorded;
// a failure to write the log entry never masks the sync error.
func (s *Service) Run(ctx context.Context) (*Result, error) {
	start := time.Now()

	projects, err := s.source.FetchProjects(ctx)
	if err != nil {
		return s.fail(ctx, start, fmt.Errorf("fetching projects: %w", err))
	}

	if err := s.store.UpsertAll(ctx, projects); err != nil {
		return s.fail(ctx, start, fmt.Errorf("storing projects: %w", err))
	}

	res := &Result{
		Success:     true,
		TotalSynced: len(projects),
		DurationMs:  time.Since(start).Milliseconds(),
	}
	s.record(ctx, &Entry{
		ID:            uuid.NewString(),
		TotalProjects: len(projects),
		Success:       true,
		DurationMs:    res.DurationMs,
		CompletedAt:   time.Now(),
	})
	s.logger.Info("sync completed", "projects", len(projects), "duration_ms", res.DurationMs)
	return res, nil
}

// LastSyncedAt returns the completion time of the most recent
// successful cycle, or nil when none has succeeded yet.
func (s *Service) LastSyncedAt(ctx context.Context) (*time.Time, error) {
	return s.log.LastSuccess(ctx)
}

func (s *Service) fail(ctx context.Context, start time.Time, err error) (*Result, error) {
	res := &Result{
		DurationMs: time.Since(start).Milliseconds(),
		Error:      err.Error(),
	}
	s.record(ctx, &Entry{
		ID:          uuid.NewString(),
		Success:     false,
		Error:       err.Error(),
		DurationMs:  res.DurationMs,
		CompletedAt: time.Now(),
	})
	s.logger.Error("sync failed", "error", err)
	return res, err
}

func (s *Service) record(ctx context.Context, entry *Entry) {
	if err := s.log.Record(ctx, entry); err != nil {
		s.logger.Error("recording sync attempt", "error", err)
	}
}
