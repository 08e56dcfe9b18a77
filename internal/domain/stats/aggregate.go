package stats

import "github.com/arlett/prodboard/internal/domain/project"

// defaultStatus labels projects whose notification status is absent.
const defaultStatus = "unknown"

// Policy controls which records participate in an aggregation pass.
type Policy struct {
	// IncludeFinished keeps completed and closed projects in the fold.
	IncludeFinished bool
	// IncludeExpired keeps expired projects in the buckets instead of
	// dropping them and tallying the dropped count separately.
	IncludeExpired bool
	// StateBreakdown adds per-lifecycle-state counts over the full
	// undropped input set.
	StateBreakdown bool
}

// CurrentPolicy drives the live dashboard views: only in-progress
// projects, expired records dropped but counted.
var CurrentPolicy = Policy{}

// AnnualPolicy drives the full-year audit: every lifecycle state and
// every expired record stays in.
var AnnualPolicy = Policy{IncludeFinished: true, IncludeExpired: true, StateBreakdown: true}

// Aggregate folds classified projects into a Summary under the given
// policy. The invariant sum(TimeStats buckets) + dropped-expired ==
// TotalWithExpired holds for any input.
func Aggregate(projects []project.Classified, pol Policy) Summary {
	s := Summary{
		StatusStats:      map[string]int{},
		TypeStats:        map[string]int{},
		DesignerWorkload: map[string]*Workload{},
		EditorWorkload:   map[string]*Workload{},
	}

	if pol.StateBreakdown {
		s.StateStats = map[string]int{}
		for _, p := range projects {
			state := p.State
			if state == "" {
				state = project.StateInProgress
			}
			s.StateStats[string(state)]++
		}
	}

	base := make([]project.Classified, 0, len(projects))
	for _, p := range projects {
		if pol.IncludeFinished || !p.Finished() {
			base = append(base, p)
		}
	}

	surviving := base
	if !pol.IncludeExpired {
		surviving = make([]project.Classified, 0, len(base))
		for _, p := range base {
			if p.TimeStatus == project.StatusExpired {
				s.TimeStats.Expired++
				continue
			}
			surviving = append(surviving, p)
		}
	}

	s.Total = len(surviving)
	s.TotalWithExpired = len(base)

	for _, p := range surviving {
		status := p.NotificationStatus
		if status == "" {
			status = defaultStatus
		}
		s.StatusStats[status]++

		for _, t := range p.Types {
			s.TypeStats[t]++
		}

		s.TimeStats.add(p.TimeStatus)

		for _, name := range p.Designers {
			tally(s.DesignerWorkload, name, p, pol)
		}
		for _, name := range p.Editors {
			tally(s.EditorWorkload, name, p, pol)
		}
	}

	return s
}

func tally(m map[string]*Workload, name string, p project.Classified, pol Policy) {
	w, ok := m[name]
	if !ok {
		w = &Workload{}
		m[name] = w
	}
	w.Total++

	if pol.IncludeFinished {
		switch p.State {
		case project.StateCompleted:
			w.Completed++
		case project.StateClosed:
			w.Closed++
		}
	}

	// Workload urgency follows the sign of the day count, so in the
	// annual view expired records land in a person's overdue tally.
	if p.DaysRemaining != nil && *p.DaysRemaining < 0 {
		w.Overdue++
	}
	if p.TimeStatus == project.StatusUrgent {
		w.Urgent++
	}
}

// PersonalSummary folds one person's classified projects. Expired
// projects stay in the caller's list but are dropped from every count
// except the expired tally.
func PersonalSummary(projects []PersonalProject) Personal {
	p := Personal{
		StatusStats: map[string]int{},
		TypeStats:   map[string]int{},
		RoleStats:   map[string]int{},
	}

	for _, proj := range projects {
		if proj.TimeStatus == project.StatusExpired {
			p.Expired++
			continue
		}
		p.Total++

		switch proj.TimeStatus {
		case project.StatusOverdue:
			p.Overdue++
		case project.StatusUrgent:
			p.Urgent++
		case project.StatusWarning:
			p.Warning++
		case project.StatusOnTime:
			p.OnTime++
		case project.StatusNoDeadline:
			p.NoDeadline++
		}

		status := proj.NotificationStatus
		if status == "" {
			status = defaultStatus
		}
		p.StatusStats[status]++

		for _, t := range proj.Types {
			p.TypeStats[t]++
		}
		p.RoleStats[proj.Role]++
	}

	return p
}
