package people

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/arlett/prodboard/internal/domain/project"
)

// Service derives the person directory from the active project set.
type Service struct {
	repo   project.Repository
	logger *slog.Logger
}

// NewService creates a new people service.
func NewService(repo project.Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// List returns every designer and editor on an active project.
func (s *Service) List(ctx context.Context) ([]Person, error) {
	projects, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing people: %w", err)
	}
	return Directory(projects), nil
}
