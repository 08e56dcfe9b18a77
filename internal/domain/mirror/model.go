package mirror

import "time"

// Entry is one recorded sync attempt.
type Entry struct {
	ID            string
	TotalProjects int
	Success       bool
	Error         string
	DurationMs    int64
	CompletedAt   time.Time
}

// Result is what a sync cycle reports to the caller.
type Result struct {
	Success     bool   `json:"success"`
	TotalSynced int    `json:"totalSynced"`
	DurationMs  int64  `json:"durationMs"`
	Error       string `json:"error,omitempty"`
}
