package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"plataforma-pm/internal/domain"
)

type DeliveryRepository struct {
	mock.Mock
}

func (m *DeliveryRepository) Create(ctx context.Context, delivery *domain.NotificationDelivery) error {
	args := m.Called(ctx, delivery)
	return args.Error(0)
}

func (m *DeliveryRepository) ListBySendLog(ctx context.Context, sendLogID uuid.UUID) ([]domain.NotificationDelivery, error) {
	args := m.Called(ctx, sendLogID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.NotificationDelivery), args.Error(1)
}

func (m *DeliveryRepository) CountRead(ctx context.Context, sendLogID uuid.UUID) (int64, error) {
	args := m.Called(ctx, sendLogID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *DeliveryRepository) MarkRead(ctx context.Context, notificationID uuid.UUID) error {
	args := m.Called(ctx, notificationID)
	return args.Error(0)
}
