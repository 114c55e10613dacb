package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/duel-labs/roadmap-service/internal/domain"
)

// AlarmRepository defines persistence access for user alarms.
type AlarmRepository interface {
	Create(ctx context.Context, alarm *domain.Alarm) error
	ListByReceiver(ctx context.Context, receiverID string) ([]*domain.Alarm, error)
	MarkRead(ctx context.Context, id, receiverID string) error
}

type alarmRepository struct {
	pool *pgxpool.Pool
}

// NewAlarmRepository returns a Postgres-backed implementation.
func NewAlarmRepository(pool *pgxpool.Pool) AlarmRepository {
	return &alarmRepository{pool: pool}
}

func (r *alarmRepository) Create(ctx context.Context, alarm *domain.Alarm) error {
	const query = `
        INSERT INTO alarms (receiver_id, comment_id, content)
        VALUES ($1, $2, $3)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		alarm.ReceiverID,
		alarm.CommentID,
		alarm.Content,
	).Scan(&alarm.ID, &alarm.CreatedAt)
}

func (r *alarmRepository) ListByReceiver(ctx context.Context, receiverID string) ([]*domain.Alarm, error) {
	const query = `
        SELECT id, receiver_id, comment_id, content, is_read, created_at
        FROM alarms WHERE receiver_id=$1
        ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, receiverID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var alarms []*domain.Alarm
	for rows.Next() {
		var alarm domain.Alarm
		if err := rows.Scan(
			&alarm.ID,
			&alarm.ReceiverID,
			&alarm.CommentID,
			&alarm.Content,
			&alarm.IsRead,
			&alarm.CreatedAt,
		); err != nil {
			return nil, err
		}
		alarms = append(alarms, &alarm)
	}
	return alarms, rows.Err()
}

func (r *alarmRepository) MarkRead(ctx context.Context, id, receiverID string) error {
	cmd, err := r.pool.Exec(ctx,
		`UPDATE alarms SET is_read=TRUE WHERE id=$1 AND receiver_id=$2`, id, receiverID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
