package stats

import "github.com/arlett/prodboard/internal/domain/project"

// Workload tallies one person's assigned projects by urgency and, in
// the annual view, by finished lifecycle state.
type Workload struct {
	Total     int `json:"total"`
	Overdue   int `json:"overdue"`
	Urgent    int `json:"urgent"`
	Completed int `json:"completed,omitempty"`
	Closed    int `json:"closed,omitempty"`
}

// TimeBuckets counts projects per deadline bucket.
type TimeBuckets struct {
	Overdue    int `json:"overdue"`
	Urgent     int `json:"urgent"`
	Warning    int `json:"warning"`
	OnTime     int `json:"onTime"`
	NoDeadline int `json:"noDeadline"`
	Expired    int `json:"expired"`
}

func (b *TimeBuckets) add(status project.TimeStatus) {
	switch status {
	case project.StatusOverdue:
		b.Overdue++
	case project.StatusUrgent:
		b.Urgent++
	case project.StatusWarning:
		b.Warning++
	case project.StatusOnTime:
		b.OnTime++
	case project.StatusNoDeadline:
		b.NoDeadline++
	case project.StatusExpired:
		b.Expired++
	}
}

// Summary is a point-in-time aggregate over a set of classified
// projects, valid only for the instant it was computed.
type Summary struct {
	Total            int                  `json:"total"`
	TotalWithExpired int                  `json:"totalWithExpired,omitempty"`
	StateStats       map[string]int       `json:"stateStats,omitempty"`
	StatusStats      map[string]int       `json:"statusStats"`
	TypeStats        map[string]int       `json:"typeStats"`
	TimeStats        TimeBuckets          `json:"timeStats"`
	DesignerWorkload map[string]*Workload `json:"designerWorkload"`
	EditorWorkload   map[string]*Workload `json:"editorWorkload"`
}

// Personal is the stats block of the personal view.
type Personal struct {
	Total       int            `json:"total"`
	Overdue     int            `json:"overdue"`
	Urgent      int            `json:"urgent"`
	Warning     int            `json:"warning"`
	OnTime      int            `json:"onTime"`
	NoDeadline  int            `json:"noDeadline"`
	Expired     int            `json:"expired"`
	StatusStats map[string]int `json:"statusStats"`
	TypeStats   map[string]int `json:"typeStats"`
	RoleStats   map[string]int `json:"roleStats"`
}

// PersonalProject is a classified project carrying one person's role
// on it.
type PersonalProject struct {
	project.Classified
	Role string `json:"role"`
}

// PersonalView couples a person's project list with their stats.
type PersonalView struct {
	Person   string            `json:"person"`
	Projects []PersonalProject `json:"projects"`
	Stats    Personal          `json:"stats"`
}
