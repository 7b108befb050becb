package body

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository is a PostgreSQL implementation of Repository.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

var _ Repository = (*PostgresRepository)(nil)

// NewPostgresRepository creates a new PostgreSQL body repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func scanEntry(row pgx.CollectableRow) (*Entry, error) {
	var e Entry
	err := row.Scan(&e.ID, &e.UserID, &e.Date, &e.WeightKg, &e.WaistCm, &e.Notes, &e.CreatedAt)
	return &e, err
}

// List retrieves a page of a user's entries.
func (r *PostgresRepository) List(ctx context.Context, userID string, opts ListOptions) (*ListResult, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}

	query := `
		SELECT id, user_id, date, weight_kg, waist_cm, notes, created_at
		FROM body_entries
		WHERE user_id = $1
		  AND ($2 = '' OR (date, created_at, id) < (
			SELECT date, created_at, id FROM body_entries WHERE id = $2 AND user_id = $1
		  ))
		ORDER BY date DESC, created_at DESC, id DESC
		LIMIT $3
	`

	rows, err := r.pool.Query(ctx, query, userID, opts.Cursor, limit+1)
	if err != nil {
		return nil, err
	}
	items, err := pgx.CollectRows(rows, scanEntry)
	if err != nil {
		return nil, err
	}

	result := &ListResult{Items: items}
	if len(items) > limit {
		result.Items = items[:limit]
		result.NextCursor = items[limit-1].ID
	}
	return result, nil
}

// ListSince retrieves every entry dated on or after from.
func (r *PostgresRepository) ListSince(ctx context.Context, userID string, from time.Time) ([]*Entry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, date, weight_kg, waist_cm, notes, created_at
		FROM body_entries
		WHERE user_id = $1 AND date >= $2
		ORDER BY date DESC, created_at DESC, id DESC
	`, userID, from)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, scanEntry)
}

// Create stores a new entry.
func (r *PostgresRepository) Create(ctx context.Context, e *Entry) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO body_entries (id, user_id, date, weight_kg, waist_cm, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, e.ID, e.UserID, e.Date, e.WeightKg, e.WaistCm, e.Notes, e.CreatedAt)
	return err
}

// Delete removes an entry owned by userID.
func (r *PostgresRepository) Delete(ctx context.Context, userID, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM body_entries WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrEntryNotFound
	}
	return nil
}

// ReplaceAll swaps the user's entries for items inside a transaction.
func (r *PostgresRepository) ReplaceAll(ctx context.Context, userID string, items []*Entry) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM body_entries WHERE user_id = $1`, userID); err != nil {
			return fmt.Errorf("clear body entries: %w", err)
		}

		_, err := tx.CopyFrom(ctx,
			pgx.Identifier{"body_entries"},
			[]string{"id", "user_id", "date", "weight_kg", "waist_cm", "notes", "created_at"},
			pgx.CopyFromSlice(len(items), func(i int) ([]any, error) {
				e := items[i]
				return []any{e.ID, userID, e.Date, e.WeightKg, e.WaistCm, e.Notes, e.CreatedAt}, nil
			}),
		)
		if err != nil {
			return fmt.Errorf("copy body entries: %w", err)
		}
		return nil
	})
}
