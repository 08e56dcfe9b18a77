package stats

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/arlett/prodboard/internal/domain/project"
)

// Service computes the dashboard statistics views.
type Service struct {
	repo   project.Repository
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a new stats service.
func NewService(repo project.Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger, now: time.Now}
}

// Current summarizes the active projects, classified by reference
// date, under the current-period policy.
func (s *Service) Current(ctx context.Context) (*Summary, error) {
	projects, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading current stats: %w", err)
	}

	classified := project.ClassifyAll(projects, project.ByReferenceDate, s.now())
	sum := Aggregate(classified, CurrentPolicy)
	return &sum, nil
}

// Annual summarizes the full year: every lifecycle state participates
// and expired records stay in the buckets. Rows missing a reference
// date, a name or an editor are audit-incomplete and skipped.
func (s *Service) Annual(ctx context.Context) (*Summary, error) {
	projects, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading annual stats: %w", err)
	}

	complete := make([]project.Project, 0, len(projects))
	for _, p := range projects {
		if auditComplete(&p) {
			complete = append(complete, p)
		}
	}

	classified := project.ClassifyAll(complete, project.ByReferenceDate, s.now())
	sum := Aggregate(classified, AnnualPolicy)
	return &sum, nil
}

func auditComplete(p *project.Project) bool {
	return p.ReferenceDate != "" && p.Name != "" && len(p.Editors) > 0
}

// Personal returns one person's active projects, classified by
// work-period end, with their role label and personal stats. A person
// holding both roles on a project is reported as its designer.
func (s *Service) Personal(ctx context.Context, person string) (*PersonalView, error) {
	if strings.TrimSpace(person) == "" {
		return nil, project.ErrInvalidInput
	}

	projects, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading personal view: %w", err)
	}

	now := s.now()
	personal := make([]PersonalProject, 0)
	for _, p := range projects {
		role, ok := roleOn(&p, person)
		if !ok {
			continue
		}
		status, days := project.Classify(p.Deadline(project.ByWorkPeriodEnd), now)
		personal = append(personal, PersonalProject{
			Classified: project.Classified{Project: p, TimeStatus: status, DaysRemaining: days},
			Role:       role,
		})
	}

	return &PersonalView{
		Person:   person,
		Projects: personal,
		Stats:    PersonalSummary(personal),
	}, nil
}

func roleOn(p *project.Project, person string) (string, bool) {
	if slices.Contains(p.Designers, person) {
		return project.RoleDesigner, true
	}
	if slices.Contains(p.Editors, person) {
		return project.RoleEditor, true
	}
	return "", false
}
