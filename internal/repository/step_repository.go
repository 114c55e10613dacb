package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/duel-labs/roadmap-service/internal/domain"
)

// StepRepository defines persistence access for roadmap steps.
type StepRepository interface {
	Create(ctx context.Context, step *domain.Step) error
	Update(ctx context.Context, step *domain.Step) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Step, error)
	ListByRoadmap(ctx context.Context, roadmapID string) ([]*domain.Step, error)
}

type stepRepository struct {
	pool *pgxpool.Pool
}

// NewStepRepository returns a Postgres-backed implementation.
func NewStepRepository(pool *pgxpool.Pool) StepRepository {
	return &stepRepository{pool: pool}
}

func (r *stepRepository) Create(ctx context.Context, step *domain.Step) error {
	const query = `
        INSERT INTO steps (roadmap_id, title, description, due_date)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		step.RoadmapID,
		step.Title,
		step.Description,
		step.DueDate,
	).Scan(&step.ID, &step.CreatedAt, &step.UpdatedAt)
}

func (r *stepRepository) Update(ctx context.Context, step *domain.Step) error {
	const query = `
        UPDATE steps SET title=$1, description=$2, due_date=$3, updated_at=NOW()
        WHERE id=$4`

	cmd, err := r.pool.Exec(ctx, query, step.Title, step.Description, step.DueDate, step.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *stepRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM steps WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *stepRepository) GetByID(ctx context.Context, id string) (*domain.Step, error) {
	const query = `
        SELECT id, roadmap_id, title, description, due_date, created_at, updated_at
        FROM steps WHERE id=$1`

	var step domain.Step
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&step.ID,
		&step.RoadmapID,
		&step.Title,
		&step.Description,
		&step.DueDate,
		&step.CreatedAt,
		&step.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &step, nil
}

func (r *stepRepository) ListByRoadmap(ctx context.Context, roadmapID string) ([]*domain.Step, error) {
	const query = `
        SELECT id, roadmap_id, title, description, due_date, created_at, updated_at
        FROM steps WHERE roadmap_id=$1
        ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query, roadmapID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var steps []*domain.Step
	for rows.Next() {
		var step domain.Step
		if err := rows.Scan(
			&step.ID,
			&step.RoadmapID,
			&step.Title,
			&step.Description,
			&step.DueDate,
			&step.CreatedAt,
			&step.UpdatedAt,
		); err != nil {
			return nil, err
		}
		steps = append(steps, &step)
	}
	return steps, rows.Err()
}
