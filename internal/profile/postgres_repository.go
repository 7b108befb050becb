package profile

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fitplan/fitplan/internal/planner"
)

// PostgresRepository is a PostgreSQL implementation of Repository.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

var _ Repository = (*PostgresRepository)(nil)

// NewPostgresRepository creates a new PostgreSQL profile repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Get retrieves the profile of a user.
func (r *PostgresRepository) Get(ctx context.Context, userID string) (*Stored, error) {
	query := `
		SELECT
			user_id, name, sex, age, height_cm, weight_kg,
			goal, experience, days_per_week, session_minutes,
			equipment, activity_level, injuries, preferences,
			created_at, updated_at
		FROM profiles
		WHERE user_id = $1
	`

	var (
		s                                      Stored
		sex, goal, experience, equip, activity string
	)
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&s.UserID,
		&s.Profile.Name,
		&sex,
		&s.Profile.Age,
		&s.Profile.HeightCm,
		&s.Profile.WeightKg,
		&goal,
		&experience,
		&s.Profile.DaysPerWeek,
		&s.Profile.SessionMinutes,
		&equip,
		&activity,
		&s.Profile.Injuries,
		&s.Profile.Preferences,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	s.Profile.Sex = planner.Sex(sex)
	s.Profile.Goal = planner.Goal(goal)
	s.Profile.Experience = planner.Experience(experience)
	s.Profile.Equipment = planner.Equipment(equip)
	s.Profile.ActivityLevel = planner.ActivityLevel(activity)

	// Rows written by older versions may hold values outside today's enums.
	s.Profile = planner.Normalize(s.Profile.Raw())
	return &s, nil
}

// Upsert creates or replaces the profile of a user.
func (r *PostgresRepository) Upsert(ctx context.Context, s *Stored) error {
	query := `
		INSERT INTO profiles (
			user_id, name, sex, age, height_cm, weight_kg,
			goal, experience, days_per_week, session_minutes,
			equipment, activity_level, injuries, preferences,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (user_id) DO UPDATE SET
			name = EXCLUDED.name,
			sex = EXCLUDED.sex,
			age = EXCLUDED.age,
			height_cm = EXCLUDED.height_cm,
			weight_kg = EXCLUDED.weight_kg,
			goal = EXCLUDED.goal,
			experience = EXCLUDED.experience,
			days_per_week = EXCLUDED.days_per_week,
			session_minutes = EXCLUDED.session_minutes,
			equipment = EXCLUDED.equipment,
			activity_level = EXCLUDED.activity_level,
			injuries = EXCLUDED.injuries,
			preferences = EXCLUDED.preferences,
			updated_at = EXCLUDED.updated_at
		RETURNING created_at
	`

	p := s.Profile
	return r.pool.QueryRow(ctx, query,
		s.UserID,
		p.Name,
		string(p.Sex),
		p.Age,
		p.HeightCm,
		p.WeightKg,
		string(p.Goal),
		string(p.Experience),
		p.DaysPerWeek,
		p.SessionMinutes,
		string(p.Equipment),
		string(p.ActivityLevel),
		p.Injuries,
		p.Preferences,
		s.CreatedAt,
		s.UpdatedAt,
	).Scan(&s.CreatedAt)
}

// Delete removes the profile of a user.
func (r *PostgresRepository) Delete(ctx context.Context, userID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM profiles WHERE user_id = $1`, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrProfileNotFound
	}
	return nil
}

// ListUserIDs returns the IDs of users that have a profile.
func (r *PostgresRepository) ListUserIDs(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT user_id FROM profiles ORDER BY user_id`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}
