package settingsstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// The server keeps a single settings row; there is one shared user.
const defaultRowID = "default"

// Repository handles server-side persistence of user settings.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new settings repository.
func NewRepository(d *sql.DB) *Repository {
	return &Repository{db: d}
}

// PreferredLanguage returns the stored language, falling back to fallback
// when no row exists yet.
func (r *Repository) PreferredLanguage(ctx context.Context, fallback string) (string, error) {
	var language string
	err := r.db.QueryRowContext(ctx,
		`SELECT preferred_language FROM user_settings WHERE id = ?`, defaultRowID).Scan(&language)
	if err == sql.ErrNoRows {
		return fallback, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read settings: %w", err)
	}
	return language, nil
}

// SetPreferredLanguage upserts the stored language.
func (r *Repository) SetPreferredLanguage(ctx context.Context, language string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO user_settings (id, preferred_language, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET preferred_language = excluded.preferred_language, updated_at = excluded.updated_at`,
		defaultRowID, language, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to update settings: %w", err)
	}
	return nil
}
