package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"plataforma-pm/internal/domain"
)

type SendLogRepository interface {
	Create(ctx context.Context, log *domain.NotificationSendLog) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.NotificationSendLog, error)
	ListByCreator(ctx context.Context, creatorID uuid.UUID, params domain.ListParams) ([]domain.NotificationSendLog, error)
	Aggregate(ctx context.Context, orgID *uuid.UUID) (totalSent, totalTarget int64, err error)
}

type sendLogRepository struct {
	db *sqlx.DB
}

func NewSendLogRepository(db *sqlx.DB) SendLogRepository {
	return &sendLogRepository{db: db}
}

func (r *sendLogRepository) Create(ctx context.Context, log *domain.NotificationSendLog) error {
	query := `
		INSERT INTO notification_send_logs
			(id, creator_id, organization_id, title, message, kind, priority, link, target_type, target_count, sent_count, failed_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING sent_at`

	return r.db.QueryRowxContext(ctx, query,
		log.ID, log.CreatorID, log.OrganizationID, log.Title, log.Message,
		log.Kind, log.Priority, log.Link, log.TargetType,
		log.TargetCount, log.SentCount, log.FailedCount,
	).Scan(&log.SentAt)
}

func (r *sendLogRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.NotificationSendLog, error) {
	var log domain.NotificationSendLog
	query := `SELECT * FROM notification_send_logs WHERE id = $1`

	err := r.db.GetContext(ctx, &log, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &log, nil
}

func (r *sendLogRepository) ListByCreator(ctx context.Context, creatorID uuid.UUID, params domain.ListParams) ([]domain.NotificationSendLog, error) {
	params.Validate()

	var logs []domain.NotificationSendLog
	query := `
		SELECT * FROM notification_send_logs
		WHERE creator_id = $1
		ORDER BY sent_at DESC
		LIMIT $2 OFFSET $3`

	err := r.db.SelectContext(ctx, &logs, query, creatorID, params.Limit, params.Offset)
	return logs, err
}

func (r *sendLogRepository) Aggregate(ctx context.Context, orgID *uuid.UUID) (int64, int64, error) {
	row := struct {
		TotalSent   int64 `db:"total_sent"`
		TotalTarget int64 `db:"total_target"`
	}{}

	if orgID != nil {
		query := `
			SELECT COALESCE(SUM(sent_count), 0) AS total_sent, COALESCE(SUM(target_count), 0) AS total_target
			FROM notification_send_logs
			WHERE organization_id = $1`
		if err := r.db.GetContext(ctx, &row, query, *orgID); err != nil {
			return 0, 0, err
		}
		return row.TotalSent, row.TotalTarget, nil
	}

	query := `
		SELECT COALESCE(SUM(sent_count), 0) AS total_sent, COALESCE(SUM(target_count), 0) AS total_target
		FROM notification_send_logs`
	if err := r.db.GetContext(ctx, &row, query); err != nil {
		return 0, 0, err
	}
	return row.TotalSent, row.TotalTarget, nil
}
