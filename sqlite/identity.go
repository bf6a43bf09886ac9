package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/fwojciec/markdownizer"
)

// userIDKey is the settings key holding the user ID.
const userIDKey = "user_id"

// Compile-time interface verification.
var _ markdownizer.IdentityStore = (*IdentityStore)(nil)

// IdentityStore implements markdownizer.IdentityStore on the settings table.
// It is the per-machine copy of the user ID.
type IdentityStore struct {
	db *DB
}

// NewIdentityStore creates a new IdentityStore.
func NewIdentityStore(db *DB) *IdentityStore {
	return &IdentityStore{db: db}
}

// UserID returns the stored user ID.
func (s *IdentityStore) UserID(ctx context.Context) (string, error) {
	var id string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, userIDKey).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", markdownizer.Errorf(markdownizer.ENOTFOUND, "user ID not found")
	}
	if err != nil {
		return "", err
	}
	return id, nil
}

// SetUserID stores id, replacing any previous value.
func (s *IdentityStore) SetUserID(ctx context.Context, id string) error {
	if id == "" {
		return markdownizer.Errorf(markdownizer.EINVALID, "user ID required")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO settings (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, userIDKey, id, time.Now().UTC().Format(time.RFC3339))
	return err
}
