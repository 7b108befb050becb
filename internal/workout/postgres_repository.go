package workout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const workoutColumns = `id, user_id, date, title, type, minutes, rpe, notes, created_at`

// PostgresRepository is a PostgreSQL implementation of Repository.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL workout repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func scanWorkout(row pgx.CollectableRow) (*Workout, error) {
	var (
		w   Workout
		typ string
	)
	if err := row.Scan(
		&w.ID,
		&w.UserID,
		&w.Date,
		&w.Title,
		&typ,
		&w.Minutes,
		&w.RPE,
		&w.Notes,
		&w.CreatedAt,
	); err != nil {
		return nil, err
	}
	w.Type = Type(typ)
	return &w, nil
}

// Get retrieves a workout owned by userID.
func (r *PostgresRepository) Get(ctx context.Context, userID, id string) (*Workout, error) {
	query := `SELECT ` + workoutColumns + ` FROM workouts WHERE id = $1 AND user_id = $2`

	rows, err := r.pool.Query(ctx, query, id, userID)
	if err != nil {
		return nil, err
	}
	w, err := pgx.CollectExactlyOneRow(rows, scanWorkout)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	return w, nil
}

// List retrieves a page of a user's workouts.
// The cursor is the ID of the last workout of the previous page.
func (r *PostgresRepository) List(ctx context.Context, userID string, opts ListOptions) (*ListResult, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	// Fetch one extra to determine if there are more results
	fetchLimit := limit + 1

	query := `
		SELECT ` + workoutColumns + `
		FROM workouts
		WHERE user_id = $1
		  AND ($2 = '' OR (date, created_at, id) < (
			SELECT date, created_at, id FROM workouts WHERE id = $2 AND user_id = $1
		  ))
		ORDER BY date DESC, created_at DESC, id DESC
		LIMIT $3
	`

	rows, err := r.pool.Query(ctx, query, userID, opts.Cursor, fetchLimit)
	if err != nil {
		return nil, err
	}
	items, err := pgx.CollectRows(rows, scanWorkout)
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

// ListSince retrieves every workout dated on or after from.
func (r *PostgresRepository) ListSince(ctx context.Context, userID string, from time.Time) ([]*Workout, error) {
	query := `
		SELECT ` + workoutColumns + `
		FROM workouts
		WHERE user_id = $1 AND date >= $2
		ORDER BY date DESC, created_at DESC, id DESC
	`

	rows, err := r.pool.Query(ctx, query, userID, from)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, scanWorkout)
}

// Create stores a new workout.
func (r *PostgresRepository) Create(ctx context.Context, w *Workout) error {
	query := `
		INSERT INTO workouts (` + workoutColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.pool.Exec(ctx, query,
		w.ID,
		w.UserID,
		w.Date,
		w.Title,
		string(w.Type),
		w.Minutes,
		w.RPE,
		w.Notes,
		w.CreatedAt,
	)
	return err
}

// Delete removes a workout owned by userID.
func (r *PostgresRepository) Delete(ctx context.Context, userID, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM workouts WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrWorkoutNotFound
	}
	return nil
}

// ReplaceAll swaps the user's history for items inside a transaction.
func (r *PostgresRepository) ReplaceAll(ctx context.Context, userID string, items []*Workout) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM workouts WHERE user_id = $1`, userID); err != nil {
			return fmt.Errorf("clear workouts: %w", err)
		}

		_, err := tx.CopyFrom(ctx,
			pgx.Identifier{"workouts"},
			[]string{"id", "user_id", "date", "title", "type", "minutes", "rpe", "notes", "created_at"},
			pgx.CopyFromSlice(len(items), func(i int) ([]any, error) {
				w := items[i]
				return []any{w.ID, userID, w.Date, w.Title, string(w.Type), w.Minutes, w.RPE, w.Notes, w.CreatedAt}, nil
			}),
		)
		if err != nil {
			return fmt.Errorf("copy workouts: %w", err)
		}
		return nil
	})
}

// Ensure PostgresRepository implements Repository interface.
var _ Repository = (*PostgresRepository)(nil)
