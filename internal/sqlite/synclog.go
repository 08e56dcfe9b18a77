package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/arlett/prodboard/internal/domain/mirror"
)

// SyncLogRepository implements mirror.LogStore over SQLite.
type SyncLogRepository struct {
	db *DB
}

// NewSyncLogRepository creates a new SyncLogRepository
func NewSyncLogRepository(db *DB) *SyncLogRepository {
	return &SyncLogRepository{db: db}
}

// Record stores one sync attempt.
func (r *SyncLogRepository) Record(ctx context.Context, entry *mirror.Entry) error {
	query := `
		INSERT INTO sync_logs (id, total_projects, success, error_message, duration_ms, completed_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		entry.ID,
		entry.TotalProjects,
		entry.Success,
		entry.Error,
		entry.DurationMs,
		entry.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record sync attempt: %w", err)
	}
	return nil
}

// LastSuccess returns the completion time of the most recent
// successful sync, or nil when none has succeeded yet.
func (r *SyncLogRepository) LastSuccess(ctx context.Context) (*time.Time, error) {
	query := `
		SELECT completed_at FROM sync_logs
		WHERE success = 1
		ORDER BY completed_at DESC
		LIMIT 1
	`

	var completed time.Time
	err := r.db.QueryRowContext(ctx, query).Scan(&completed)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get last sync time: %w", err)
	}
	return &completed, nil
}
