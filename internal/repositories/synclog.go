package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/nkurelo/socialdash/internal/models"
	"github.com/nkurelo/socialdash/internal/shared"
)

// SyncLogEntry records a mutating account action performed through the CLI.
type SyncLogEntry struct {
	ID        string
	Sequence  int
	AccountID string
	Platform  models.Platform
	Action    string // "sync", "disconnect" or "connect"
	Outcome   string // "ok", "failed" or "demo"
	CreatedAt time.Time
}

// SyncLogRepository persists [SyncLogEntry] rows for the history command.
type SyncLogRepository struct {
	db *sql.DB
}

// NewSyncLogRepository creates a new [SyncLogRepository] with the given database connection.
func NewSyncLogRepository(db *sql.DB) *SyncLogRepository {
	return &SyncLogRepository{db: db}
}

// Record inserts a new log entry with a generated ID and sequence.
func (r *SyncLogRepository) Record(entry *SyncLogEntry) error {
	sequence, err := NextSequence(r.db, "sync_log")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	entry.ID = shared.GenerateID()
	entry.Sequence = sequence
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO sync_log (id, sequence, account_id, platform, action, outcome, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query, entry.ID, entry.Sequence, entry.AccountID, string(entry.Platform), entry.Action, entry.Outcome, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert sync log entry: %w", err)
	}

	return nil
}

// Recent returns the most recent entries, newest first.
func (r *SyncLogRepository) Recent(limit int) ([]SyncLogEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, sequence, account_id, platform, action, outcome, created_at
		FROM sync_log
		ORDER BY sequence DESC
		LIMIT ?
	`

	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query sync log: %w", err)
	}
	defer rows.Close()

	var entries []SyncLogEntry
	for rows.Next() {
		var entry SyncLogEntry
		var platform string
		if err := rows.Scan(&entry.ID, &entry.Sequence, &entry.AccountID, &platform, &entry.Action, &entry.Outcome, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan sync log entry: %w", err)
		}
		entry.Platform = models.Platform(platform)
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sync log: %w", err)
	}

	return entries, nil
}
