package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"plataforma-pm/internal/domain"
)

type ScheduledNotificationRepository interface {
	Create(ctx context.Context, sn *domain.ScheduledNotification) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ScheduledNotification, error)
	ListByCreator(ctx context.Context, creatorID uuid.UUID, status domain.ScheduledStatus, params domain.ListParams) ([]domain.ScheduledNotification, error)
	ListDue(ctx context.Context, now time.Time, limit int) ([]domain.ScheduledNotification, error)
	Claim(ctx context.Context, id uuid.UUID) (bool, error)
	MarkSent(ctx context.Context, id uuid.UUID, sentAt time.Time) error
	MarkFailed(ctx context.Context, id uuid.UUID, reason string) error
	Update(ctx context.Context, id, creatorID uuid.UUID, input domain.UpdateScheduledInput) (bool, error)
	Cancel(ctx context.Context, id, creatorID uuid.UUID) (bool, error)
	CountPending(ctx context.Context, orgID *uuid.UUID) (int64, error)
}

type scheduledNotificationRepository struct {
	db *sqlx.DB
}

func NewScheduledNotificationRepository(db *sqlx.DB) ScheduledNotificationRepository {
	return &scheduledNotificationRepository{db: db}
}

func (r *scheduledNotificationRepository) Create(ctx context.Context, sn *domain.ScheduledNotification) error {
	query := `
		INSERT INTO scheduled_notifications
			(id, creator_id, organization_id, target_type, target_ids, title, message, kind, priority, link, scheduled_for, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		sn.ID, sn.CreatorID, sn.OrganizationID, sn.TargetType, sn.TargetIDs,
		sn.Title, sn.Message, sn.Kind, sn.Priority, sn.Link, sn.ScheduledFor, sn.Status,
	).Scan(&sn.CreatedAt, &sn.UpdatedAt)
}

func (r *scheduledNotificationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ScheduledNotification, error) {
	var sn domain.ScheduledNotification
	query := `SELECT * FROM scheduled_notifications WHERE id = $1`

	err := r.db.GetContext(ctx, &sn, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sn, nil
}

func (r *scheduledNotificationRepository) ListByCreator(ctx context.Context, creatorID uuid.UUID, status domain.ScheduledStatus, params domain.ListParams) ([]domain.ScheduledNotification, error) {
	params.Validate()

	var rows []domain.ScheduledNotification
	query := `
		SELECT * FROM scheduled_notifications
		WHERE creator_id = $1 AND status = $2
		ORDER BY scheduled_for DESC
		LIMIT $3 OFFSET $4`

	err := r.db.SelectContext(ctx, &rows, query, creatorID, status, params.Limit, params.Offset)
	return rows, err
}

func (r *scheduledNotificationRepository) ListDue(ctx context.Context, now time.Time, limit int) ([]domain.ScheduledNotification, error) {
	var rows []domain.ScheduledNotification
	query := `
		SELECT * FROM scheduled_notifications
		WHERE status = $1 AND scheduled_for <= $2
		ORDER BY scheduled_for ASC
		LIMIT $3`

	err := r.db.SelectContext(ctx, &rows, query, domain.StatusPending, now, limit)
	return rows, err
}

// Claim transitions a row from pending to processing. The conditional WHERE is
// the at-most-one-claim guarantee: of any number of concurrent processors,
// exactly one sees RowsAffected == 1.
func (r *scheduledNotificationRepository) Claim(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `
		UPDATE scheduled_notifications
		SET status = $2, updated_at = NOW()
		WHERE id = $1 AND status = $3`

	result, err := r.db.ExecContext(ctx, query, id, domain.StatusProcessing, domain.StatusPending)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	return affected > 0, err
}

func (r *scheduledNotificationRepository) MarkSent(ctx context.Context, id uuid.UUID, sentAt time.Time) error {
	query := `
		UPDATE scheduled_notifications
		SET status = $2, sent_at = $3, updated_at = NOW()
		WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query, id, domain.StatusSent, sentAt)
	return err
}

func (r *scheduledNotificationRepository) MarkFailed(ctx context.Context, id uuid.UUID, reason string) error {
	query := `
		UPDATE scheduled_notifications
		SET status = $2, failure_reason = $3, updated_at = NOW()
		WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query, id, domain.StatusFailed, reason)
	return err
}

func (r *scheduledNotificationRepository) Update(ctx context.Context, id, creatorID uuid.UUID, input domain.UpdateScheduledInput) (bool, error) {
	query := `
		UPDATE scheduled_notifications
		SET title = COALESCE($3, title),
			message = COALESCE($4, message),
			priority = COALESCE($5, priority),
			link = COALESCE($6, link),
			scheduled_for = COALESCE($7, scheduled_for),
			updated_at = NOW()
		WHERE id = $1 AND creator_id = $2 AND status = $8`

	result, err := r.db.ExecContext(ctx, query,
		id, creatorID, input.Title, input.Message, input.Priority, input.Link, input.ScheduledFor,
		domain.StatusPending,
	)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	return affected > 0, err
}

func (r *scheduledNotificationRepository) Cancel(ctx context.Context, id, creatorID uuid.UUID) (bool, error) {
	query := `
		UPDATE scheduled_notifications
		SET status = $3, updated_at = NOW()
		WHERE id = $1 AND creator_id = $2 AND status = $4`

	result, err := r.db.ExecContext(ctx, query, id, creatorID, domain.StatusCancelled, domain.StatusPending)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	return affected > 0, err
}

func (r *scheduledNotificationRepository) CountPending(ctx context.Context, orgID *uuid.UUID) (int64, error) {
	var count int64

	if orgID != nil {
		query := `SELECT COUNT(*) FROM scheduled_notifications WHERE status = $1 AND organization_id = $2`
		err := r.db.GetContext(ctx, &count, query, domain.StatusPending, *orgID)
		return count, err
	}

	query := `SELECT COUNT(*) FROM scheduled_notifications WHERE status = $1`
	err := r.db.GetContext(ctx, &count, query, domain.StatusPending)
	return count, err
}
