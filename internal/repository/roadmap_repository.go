package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/duel-labs/roadmap-service/internal/domain"
)

// RoadmapRepository defines persistence access for roadmaps.
type RoadmapRepository interface {
	Create(ctx context.Context, roadmap *domain.Roadmap) error
	Update(ctx context.Context, roadmap *domain.Roadmap) error
	GetByID(ctx context.Context, id string) (*domain.Roadmap, error)
	ListPublic(ctx context.Context, limit, offset int) ([]*domain.Roadmap, error)
	ListByCreator(ctx context.Context, creatorID string) ([]*domain.Roadmap, error)
}

type roadmapRepository struct {
	pool *pgxpool.Pool
}

// NewRoadmapRepository returns a Postgres-backed implementation.
func NewRoadmapRepository(pool *pgxpool.Pool) RoadmapRepository {
	return &roadmapRepository{pool: pool}
}

const roadmapColumns = `id, creator_id, name, description, category, is_public, step_count, created_at, updated_at`

func (r *roadmapRepository) Create(ctx context.Context, roadmap *domain.Roadmap) error {
	const query = `
        INSERT INTO roadmaps (creator_id, name, description, category, is_public)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		roadmap.CreatorID,
		roadmap.Name,
		roadmap.Description,
		roadmap.Category,
		roadmap.IsPublic,
	).Scan(&roadmap.ID, &roadmap.CreatedAt, &roadmap.UpdatedAt)
}

func (r *roadmapRepository) Update(ctx context.Context, roadmap *domain.Roadmap) error {
	const query = `
        UPDATE roadmaps SET name=$1, description=$2, category=$3, is_public=$4, updated_at=NOW()
        WHERE id=$5`

	cmd, err := r.pool.Exec(ctx, query,
		roadmap.Name,
		roadmap.Description,
		roadmap.Category,
		roadmap.IsPublic,
		roadmap.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *roadmapRepository) GetByID(ctx context.Context, id string) (*domain.Roadmap, error) {
	query := `SELECT ` + roadmapColumns + ` FROM roadmaps WHERE id=$1`

	var roadmap domain.Roadmap
	if err := scanRoadmap(r.pool.QueryRow(ctx, query, id), &roadmap); err != nil {
		return nil, err
	}
	return &roadmap, nil
}

func (r *roadmapRepository) ListPublic(ctx context.Context, limit, offset int) ([]*domain.Roadmap, error) {
	query := `SELECT ` + roadmapColumns + `
        FROM roadmaps WHERE is_public=TRUE
        ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectRoadmaps(rows)
}

func (r *roadmapRepository) ListByCreator(ctx context.Context, creatorID string) ([]*domain.Roadmap, error) {
	query := `SELECT ` + roadmapColumns + `
        FROM roadmaps WHERE creator_id=$1
        ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, creatorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectRoadmaps(rows)
}

func scanRoadmap(row pgx.Row, roadmap *domain.Roadmap) error {
	return row.Scan(
		&roadmap.ID,
		&roadmap.CreatorID,
		&roadmap.Name,
		&roadmap.Description,
		&roadmap.Category,
		&roadmap.IsPublic,
		&roadmap.StepCount,
		&roadmap.CreatedAt,
		&roadmap.UpdatedAt,
	)
}

func collectRoadmaps(rows pgx.Rows) ([]*domain.Roadmap, error) {
	var roadmaps []*domain.Roadmap
	for rows.Next() {
		var roadmap domain.Roadmap
		if err := scanRoadmap(rows, &roadmap); err != nil {
			return nil, err
		}
		roadmaps = append(roadmaps, &roadmap)
	}
	return roadmaps, rows.Err()
}
