package project

import "time"

// LifecycleState tracks where a project sits in its life, independent
// of deadline urgency.
type LifecycleState string

const (
	StateInProgress LifecycleState = "in-progress"
	StateCompleted  LifecycleState = "completed"
	StateClosed     LifecycleState = "closed"
)

// Role labels for project members.
const (
	RoleDesigner = "designer"
	RoleEditor   = "editor"
)

// DateRange is a raw start/end date pair as delivered by the source.
// Values stay strings; parsing happens at classification time.
type DateRange struct {
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
}

// Project is an immutable snapshot of one tracked project, replaced
// wholesale on every sync cycle.
type Project struct {
	ID                 string         `json:"id"`
	Name               string         `json:"name"`
	Types              []string       `json:"types"`
	Designers          []string       `json:"designers"`
	Editors            []string       `json:"editors"`
	NotificationStatus string         `json:"notificationStatus"`
	State              LifecycleState `json:"state"`
	WorkPeriod         *DateRange     `json:"workPeriod,omitempty"`
	ReferenceDate      string         `json:"referenceDate,omitempty"`
	Notes              string         `json:"notes,omitempty"`
	UnitName           string         `json:"unitName,omitempty"`
	SizeSpec           string         `json:"sizeSpec,omitempty"`
	ColorDraftDate     string         `json:"colorDraftDate,omitempty"`
	FilePath           string         `json:"filePath,omitempty"`
	LastUpdatedAt      time.Time      `json:"lastUpdatedAt"`
}

// Finished reports whether the project has left the active pipeline.
func (p *Project) Finished() bool {
	return p.State == StateCompleted || p.State == StateClosed
}

// Classified is a Project tagged with its deadline bucket. Derived,
// never persisted; recomputed relative to now on every read.
type Classified struct {
	Project
	TimeStatus    TimeStatus `json:"timeStatus"`
	DaysRemaining *int       `json:"daysRemaining"`
}
