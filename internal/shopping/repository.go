package shopping

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Repository handles server-side persistence of shopping items.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new shopping item repository.
func NewRepository(d *sql.DB) *Repository {
	return &Repository{db: d}
}

// List returns every shopping item in insertion order.
func (r *Repository) List(ctx context.Context) ([]Item, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, added_at FROM shopping_items ORDER BY added_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list shopping items: %w", err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var item Item
		var addedAt time.Time
		if err := rows.Scan(&item.ID, &item.Name, &addedAt); err != nil {
			return nil, fmt.Errorf("failed to scan shopping item: %w", err)
		}
		item.AddedAt = addedAt.UTC().Format(time.RFC3339)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shopping items: %w", err)
	}
	return items, nil
}

// Insert creates a single item with a server-assigned id and timestamp.
func (r *Repository) Insert(ctx context.Context, name string) (*Item, error) {
	now := time.Now().UTC()
	item := Item{
		ID:      uuid.NewString(),
		Name:    name,
		AddedAt: now.Format(time.RFC3339),
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO shopping_items (id, name, added_at) VALUES (?, ?, ?)`,
		item.ID, item.Name, now)
	if err != nil {
		return nil, fmt.Errorf("failed to insert shopping item: %w", err)
	}
	return &item, nil
}

// BulkInsert creates one item per name inside a single transaction and
// returns the number inserted.
func (r *Repository) BulkInsert(ctx context.Context, names []string) (int, error) {
	if len(names) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	for _, name := range names {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO shopping_items (id, name, added_at) VALUES (?, ?, ?)`,
			uuid.NewString(), name, now)
		if err != nil {
			return 0, fmt.Errorf("failed to insert shopping item %q: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit bulk insert: %w", err)
	}
	return len(names), nil
}

// Delete removes one item by id. The second return value is false when the
// id did not exist.
func (r *Repository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM shopping_items WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete shopping item: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return affected > 0, nil
}

// DeleteAll removes every item and returns how many were removed.
func (r *Repository) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM shopping_items`)
	if err != nil {
		return 0, fmt.Errorf("failed to clear shopping items: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return affected, nil
}
