package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"plataforma-pm/internal/domain"
)

type DeliveryRepository interface {
	Create(ctx context.Context, delivery *domain.NotificationDelivery) error
	ListBySendLog(ctx context.Context, sendLogID uuid.UUID) ([]domain.NotificationDelivery, error)
	CountRead(ctx context.Context, sendLogID uuid.UUID) (int64, error)
	MarkRead(ctx context.Context, notificationID uuid.UUID) error
}

type deliveryRepository struct {
	db *sqlx.DB
}

func NewDeliveryRepository(db *sqlx.DB) DeliveryRepository {
	return &deliveryRepository{db: db}
}

func (r *deliveryRepository) Create(ctx context.Context, delivery *domain.NotificationDelivery) error {
	query := `
		INSERT INTO notification_deliveries (id, send_log_id, notification_id, user_id, failed, error_message)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING delivered_at`

	return r.db.QueryRowxContext(ctx, query,
		delivery.ID, delivery.SendLogID, delivery.NotificationID, delivery.UserID,
		delivery.Failed, delivery.ErrorMessage,
	).Scan(&delivery.DeliveredAt)
}

func (r *deliveryRepository) ListBySendLog(ctx context.Context, sendLogID uuid.UUID) ([]domain.NotificationDelivery, error) {
	var deliveries []domain.NotificationDelivery
	query := `
		SELECT * FROM notification_deliveries
		WHERE send_log_id = $1
		ORDER BY delivered_at ASC`

	err := r.db.SelectContext(ctx, &deliveries, query, sendLogID)
	return deliveries, err
}

func (r *deliveryRepository) CountRead(ctx context.Context, sendLogID uuid.UUID) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM notification_deliveries WHERE send_log_id = $1 AND read_at IS NOT NULL`
	err := r.db.GetContext(ctx, &count, query, sendLogID)
	return count, err
}

func (r *deliveryRepository) MarkRead(ctx context.Context, notificationID uuid.UUID) error {
	query := `
		UPDATE notification_deliveries
		SET read_at = NOW()
		WHERE notification_id = $1 AND read_at IS NULL`

	_, err := r.db.ExecContext(ctx, query, notificationID)
	return err
}
