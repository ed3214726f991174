package notification

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"

	"plataforma-pm/internal/domain"
	"plataforma-pm/internal/repository"
)

var ErrNotFound = errors.New("notification not found")

// Service is the recipient-facing inbox: listing, unread badge count, and the
// read flag, which only the recipient may flip.
type Service interface {
	List(ctx context.Context, userID uuid.UUID, unreadOnly bool, params domain.ListParams) ([]domain.Notification, int64, error)
	GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
	MarkAsRead(ctx context.Context, id, userID uuid.UUID) error
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) error
}

type service struct {
	notifRepo    repository.NotificationRepository
	deliveryRepo repository.DeliveryRepository
}

func NewService(notifRepo repository.NotificationRepository, deliveryRepo repository.DeliveryRepository) Service {
	return &service{
		notifRepo:    notifRepo,
		deliveryRepo: deliveryRepo,
	}
}

func (s *service) List(ctx context.Context, userID uuid.UUID, unreadOnly bool, params domain.ListParams) ([]domain.Notification, int64, error) {
	return s.notifRepo.ListByUser(ctx, userID, unreadOnly, params)
}

func (s *service) GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.notifRepo.CountUnread(ctx, userID)
}

// MarkAsRead flips the recipient's read flag and mirrors the instant onto the
// delivery audit row. The mirror is best effort; the inbox state is the truth.
func (s *service) MarkAsRead(ctx context.Context, id, userID uuid.UUID) error {
	marked, err := s.notifRepo.MarkAsRead(ctx, id, userID)
	if err != nil {
		return err
	}
	if !marked {
		return ErrNotFound
	}

	if err := s.deliveryRepo.MarkRead(ctx, id); err != nil {
		log.Printf("failed to stamp delivery read_at for notification %s: %v", id, err)
	}
	return nil
}

func (s *service) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	return s.notifRepo.MarkAllAsRead(ctx, userID)
}
