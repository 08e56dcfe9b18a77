package project

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Service handles project list and close operations.
type Service struct {
	repo   Repository
	closer SourceCloser
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a new project service. closer may be nil when no
// external source should be written on close.
func NewService(repo Repository, closer SourceCloser, logger *slog.Logger) *Service {
	return &Service{repo: repo, closer: closer, logger: logger, now: time.Now}
}

// ListActive returns the active projects classified by reference date,
// newest first.
func (s *Service) ListActive(ctx context.Context) ([]Classified, error) {
	projects, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	return ClassifyAll(projects, ByReferenceDate, s.now()), nil
}

// Close transitions a project to the closed state. The external source
// is updated first; the local row only changes after that succeeds.
func (s *Service) Close(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrInvalidInput
	}

	if _, err := s.repo.Get(ctx, id); err != nil {
		return err
	}

	if s.closer != nil {
		if err := s.closer.MarkClosed(ctx, id); err != nil {
			return fmt.Errorf("closing project upstream: %w", err)
		}
	}

	if err := s.repo.SetState(ctx, id, StateClosed); err != nil {
		return fmt.Errorf("closing project: %w", err)
	}

	s.logger.Info("project closed", "id", id)
	return nil
}
