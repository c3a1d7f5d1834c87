package repositories

import (
	"database/sql"
	"fmt"
	"time"
)

// CredentialRepository persists opaque credential strings keyed by name.
// The dashboard stores exactly one: the bearer token.
type CredentialRepository struct {
	db *sql.DB
}

// NewCredentialRepository creates a new [CredentialRepository] with the given database connection.
func NewCredentialRepository(db *sql.DB) *CredentialRepository {
	return &CredentialRepository{db: db}
}

// Get retrieves a credential value by key. Returns sql.ErrNoRows when absent.
func (r *CredentialRepository) Get(key string) (string, error) {
	var value string
	err := r.db.QueryRow("SELECT value FROM credentials WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", err
	}
	if err != nil {
		return "", fmt.Errorf("failed to query credential: %w", err)
	}
	return value, nil
}

// Put inserts or replaces a credential value.
func (r *CredentialRepository) Put(key, value string) error {
	query := `
		INSERT INTO credentials (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`
	if _, err := r.db.Exec(query, key, value, time.Now()); err != nil {
		return fmt.Errorf("failed to store credential: %w", err)
	}
	return nil
}

// Delete removes a credential by key. Deleting an absent key is not an error.
func (r *CredentialRepository) Delete(key string) error {
	if _, err := r.db.Exec("DELETE FROM credentials WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to delete credential: %w", err)
	}
	return nil
}
