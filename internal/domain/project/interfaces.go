package project

import "context"

// Repository provides read access to the mirrored project table.
type Repository interface {
	// ListActive returns projects still in the pipeline (state neither
	// completed nor closed), newest first.
	ListActive(ctx context.Context) ([]Project, error)
	// ListAll returns every project regardless of lifecycle state.
	ListAll(ctx context.Context) ([]Project, error)
	Get(ctx context.Context, id string) (*Project, error)
	SetState(ctx context.Context, id string, state LifecycleState) error
}

// SourceCloser writes the closed state back to the external source of
// truth before the local mirror is touched.
type SourceCloser interface {
	MarkClosed(ctx context.Context, id string) error
}
