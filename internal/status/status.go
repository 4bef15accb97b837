package status

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Check is a client heartbeat record.
type Check struct {
	ID         string `json:"id"`
	ClientName string `json:"client_name"`
	Timestamp  string `json:"timestamp"`
}

// Repository handles persistence of status checks.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new status-check repository.
func NewRepository(d *sql.DB) *Repository {
	return &Repository{db: d}
}

// Create records a status check for clientName and returns it with its
// server-assigned id and timestamp.
func (r *Repository) Create(ctx context.Context, clientName string) (*Check, error) {
	now := time.Now().UTC()
	check := Check{
		ID:         uuid.NewString(),
		ClientName: clientName,
		Timestamp:  now.Format(time.RFC3339),
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO status_checks (id, client_name, timestamp) VALUES (?, ?, ?)`,
		check.ID, check.ClientName, now)
	if err != nil {
		return nil, fmt.Errorf("failed to insert status check: %w", err)
	}
	return &check, nil
}

// List returns the most recent status checks, newest first, capped at limit.
func (r *Repository) List(ctx context.Context, limit int) ([]Check, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, client_name, timestamp FROM status_checks ORDER BY timestamp DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list status checks: %w", err)
	}
	defer rows.Close()

	var checks []Check
	for rows.Next() {
		var check Check
		var ts time.Time
		if err := rows.Scan(&check.ID, &check.ClientName, &ts); err != nil {
			return nil, fmt.Errorf("failed to scan status check: %w", err)
		}
		check.Timestamp = ts.UTC().Format(time.RFC3339)
		checks = append(checks, check)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate status checks: %w", err)
	}
	return checks, nil
}
