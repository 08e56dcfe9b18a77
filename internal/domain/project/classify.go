package project

import (
	"math"
	"time"
)

// TimeStatus is the deadline-urgency bucket of a project.
type TimeStatus string

const (
	StatusExpired    TimeStatus = "expired"
	StatusOverdue    TimeStatus = "overdue"
	StatusUrgent     TimeStatus = "urgent"
	StatusWarning    TimeStatus = "warning"
	StatusOnTime     TimeStatus = "on-time"
	StatusNoDeadline TimeStatus = "no-deadline"
)

// DeadlineSource selects which date field a view treats as the
// deadline. The two sources are never mixed within one pass.
type DeadlineSource int

const (
	// ByReferenceDate drives the project list and the current and
	// annual statistics views.
	ByReferenceDate DeadlineSource = iota
	// ByWorkPeriodEnd drives the personal view.
	ByWorkPeriodEnd
)

// Projects overdue by strictly more than this many days are expired
// and excluded from current-period statistics.
const expiredAfterDays = 365

var dateLayouts = []string{time.RFC3339, "2006-01-02"}

// Classify buckets a raw deadline string relative to now. It is total:
// an empty or unparseable deadline yields StatusNoDeadline with a nil
// day count, never an error.
func Classify(deadline string, now time.Time) (TimeStatus, *int) {
	if deadline == "" {
		return StatusNoDeadline, nil
	}
	due, ok := parseDate(deadline)
	if !ok {
		return StatusNoDeadline, nil
	}

	days := int(math.Ceil(due.Sub(now).Hours() / 24))
	switch {
	case days < 0 && -days > expiredAfterDays:
		return StatusExpired, &days
	case days < 0:
		return StatusOverdue, &days
	case days <= 3:
		return StatusUrgent, &days
	case days <= 7:
		return StatusWarning, &days
	default:
		return StatusOnTime, &days
	}
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Deadline returns the raw date string the given source designates.
func (p *Project) Deadline(src DeadlineSource) string {
	if src == ByWorkPeriodEnd {
		if p.WorkPeriod == nil {
			return ""
		}
		return p.WorkPeriod.End
	}
	return p.ReferenceDate
}

// ClassifyAll tags every project with its bucket under one deadline
// source.
func ClassifyAll(projects []Project, src DeadlineSource, now time.Time) []Classified {
	out := make([]Classified, 0, len(projects))
	for _, p := range projects {
		status, days := Classify(p.Deadline(src), now)
		out = append(out, Classified{Project: p, TimeStatus: status, DaysRemaining: days})
	}
	return out
}
