package mirror

import (
	"context"
	"time"

	"github.com/arlett/prodboard/internal/domain/project"
)

// Source yields the full project set from the external system.
type Source interface {
	FetchProjects(ctx context.Context) ([]project.Project, error)
}

// Store persists a sync cycle's batch atomically: either every record
// commits or none do.
type Store interface {
	UpsertAll(ctx context.Context, projects []project.Project) error
}

// LogStore records sync attempts as a fire-and-forget side channel.
type LogStore interface {
	Record(ctx context.Context, entry *Entry) error
	LastSuccess(ctx context.Context) (*time.Time, error)
}
