package stats_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/arlett/prodboard/internal/domain/project"
	"github.com/arlett/prodboard/internal/domain/stats"
)

var now = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func day(offset int) string {
	return now.AddDate(0, 0, offset).Format(time.RFC3339)
}

func classified(p project.Project) project.Classified {
	status, days := project.Classify(p.Deadline(project.ByReferenceDate), now)
	return project.Classified{Project: p, TimeStatus: status, DaysRemaining: days}
}

func TestAggregateCurrentDropsExpired(t *testing.T) {
	projects := []project.Classified{
		classified(project.Project{ID: "a", NotificationStatus: "sent", Types: []string{"book"}, ReferenceDate: day(2)}),
		classified(project.Project{ID: "b", NotificationStatus: "pending", Types: []string{"book", "cover"}, ReferenceDate: day(10)}),
		classified(project.Project{ID: "c", NotificationStatus: "sent", ReferenceDate: day(-400)}),
	}

	s := stats.Aggregate(projects, stats.CurrentPolicy)

	require.Equal(t, 2, s.Total)
	require.Equal(t, 3, s.TotalWithExpired)
	require.Equal(t, 1, s.TimeStats.Expired)
	require.Equal(t, 1, s.TimeStats.Urgent)
	require.Equal(t, 1, s.TimeStats.OnTime)
	require.Nil(t, s.StateStats)

	// Dropped expired records leave every per-record tally.
	require.Equal(t, 1, s.StatusStats["sent"])
	require.Equal(t, 1, s.StatusStats["pending"])
	require.Equal(t, 2, s.TypeStats["book"])
	require.Equal(t, 1, s.TypeStats["cover"])
}

func TestAggregateBucketInvariant(t *testing.T) {
	projects := []project.Classified{
		classified(project.Project{ID: "a", ReferenceDate: day(-400)}),
		classified(project.Project{ID: "b", ReferenceDate: day(-2)}),
		classified(project.Project{ID: "c", ReferenceDate: day(1)}),
		classified(project.Project{ID: "d", ReferenceDate: day(6)}),
		classified(project.Project{ID: "e", ReferenceDate: day(30)}),
		classified(project.Project{ID: "f"}),
	}

	for _, pol := range []stats.Policy{stats.CurrentPolicy, stats.AnnualPolicy} {
		s := stats.Aggregate(projects, pol)
		sum := s.TimeStats.Overdue + s.TimeStats.Urgent + s.TimeStats.Warning +
			s.TimeStats.OnTime + s.TimeStats.NoDeadline + s.TimeStats.Expired
		require.Equal(t, s.TotalWithExpired, sum)
	}
}

func TestAggregateCurrentExcludesFinished(t *testing.T) {
	projects := []project.Classified{
		classified(project.Project{ID: "a", State: project.StateInProgress, ReferenceDate: day(2)}),
		classified(project.Project{ID: "b", State: project.StateCompleted, ReferenceDate: day(2)}),
		classified(project.Project{ID: "c", State: project.StateClosed, ReferenceDate: day(2)}),
	}

	s := stats.Aggregate(projects, stats.CurrentPolicy)
	require.Equal(t, 1, s.Total)
	require.Equal(t, 1, s.TotalWithExpired)
}

func TestAggregateAnnualKeepsEverything(t *testing.T) {
	projects := []project.Classified{
		classified(project.Project{ID: "a", State: project.StateInProgress, ReferenceDate: day(2)}),
		classified(project.Project{ID: "b", State: project.StateCompleted, ReferenceDate: day(-400)}),
		classified(project.Project{ID: "c", State: project.StateClosed}),
		classified(project.Project{ID: "d", ReferenceDate: day(5)}),
	}

	s := stats.Aggregate(projects, stats.AnnualPolicy)

	require.Equal(t, 4, s.Total)
	require.Equal(t, 4, s.TotalWithExpired)
	require.Equal(t, 1, s.TimeStats.Expired)

	require.Equal(t, map[string]int{
		"in-progress": 2,
		"completed":   1,
		"closed":      1,
	}, s.StateStats)
}

func TestAggregateStateBreakdownDefaultsEmptyState(t *testing.T) {
	projects := []project.Classified{
		classified(project.Project{ID: "a"}),
	}

	s := stats.Aggregate(projects, stats.AnnualPolicy)
	require.Equal(t, map[string]int{"in-progress": 1}, s.StateStats)
}

func TestAggregateWorkload(t *testing.T) {
	projects := []project.Classified{
		classified(project.Project{
			ID: "a", Designers: []string{"ana"}, Editors: []string{"ben"},
			ReferenceDate: day(-2),
		}),
		classified(project.Project{
			ID: "b", Designers: []string{"ana", "kim"}, Editors: []string{"ben"},
			ReferenceDate: day(1),
		}),
		classified(project.Project{
			ID: "c", Designers: []string{"kim"}, Editors: []string{"ana"},
			ReferenceDate: day(20),
		}),
	}

	s := stats.Aggregate(projects, stats.CurrentPolicy)

	ana := s.DesignerWorkload["ana"]
	require.Equal(t, 2, ana.Total)
	require.Equal(t, 1, ana.Overdue)
	require.Equal(t, 1, ana.Urgent)

	// The same person appears in both maps when they hold both roles.
	require.Equal(t, 1, s.EditorWorkload["ana"].Total)
	require.Equal(t, 2, s.EditorWorkload["ben"].Total)
	require.Equal(t, 2, s.DesignerWorkload["kim"].Total)
}

func TestAggregateAnnualWorkloadCountsExpiredAsOverdue(t *testing.T) {
	projects := []project.Classified{
		classified(project.Project{
			ID: "a", Designers: []string{"ana"}, State: project.StateCompleted,
			ReferenceDate: day(-400),
		}),
	}

	s := stats.Aggregate(projects, stats.AnnualPolicy)

	ana := s.DesignerWorkload["ana"]
	require.Equal(t, 1, ana.Total)
	require.Equal(t, 1, ana.Overdue)
	require.Equal(t, 1, ana.Completed)
}

func TestAggregateUnknownStatus(t *testing.T) {
	projects := []project.Classified{
		classified(project.Project{ID: "a", ReferenceDate: day(2)}),
	}

	s := stats.Aggregate(projects, stats.CurrentPolicy)
	require.Equal(t, 1, s.StatusStats["unknown"])
}

func TestPersonalSummary(t *testing.T) {
	mk := func(p project.Project, role string) stats.PersonalProject {
		status, days := project.Classify(p.Deadline(project.ByWorkPeriodEnd), now)
		return stats.PersonalProject{
			Classified: project.Classified{Project: p, TimeStatus: status, DaysRemaining: days},
			Role:       role,
		}
	}

	projects := []stats.PersonalProject{
		mk(project.Project{ID: "a", NotificationStatus: "sent", Types: []string{"book"},
			WorkPeriod: &project.DateRange{End: day(-1)}}, project.RoleDesigner),
		mk(project.Project{ID: "b", NotificationStatus: "sent",
			WorkPeriod: &project.DateRange{End: day(5)}}, project.RoleEditor),
		mk(project.Project{ID: "c",
			WorkPeriod: &project.DateRange{End: day(-500)}}, project.RoleDesigner),
		mk(project.Project{ID: "d"}, project.RoleDesigner),
	}

	p := stats.PersonalSummary(projects)

	require.Equal(t, 3, p.Total)
	require.Equal(t, 1, p.Expired)
	require.Equal(t, 1, p.Overdue)
	require.Equal(t, 1, p.Warning)
	require.Equal(t, 1, p.NoDeadline)
	require.Equal(t, 2, p.StatusStats["sent"])
	require.Equal(t, 1, p.StatusStats["unknown"])
	require.Equal(t, 1, p.TypeStats["book"])
	require.Equal(t, 2, p.RoleStats[project.RoleDesigner])
	require.Equal(t, 1, p.RoleStats[project.RoleEditor])
}
