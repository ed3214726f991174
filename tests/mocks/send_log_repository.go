package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"plataforma-pm/internal/domain"
)

type SendLogRepository struct {
	mock.Mock
}

func (m *SendLogRepository) Create(ctx context.Context, log *domain.NotificationSendLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *SendLogRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.NotificationSendLog, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.NotificationSendLog), args.Error(1)
}

func (m *SendLogRepository) ListByCreator(ctx context.Context, creatorID uuid.UUID, params domain.ListParams) ([]domain.NotificationSendLog, error) {
	args := m.Called(ctx, creatorID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.NotificationSendLog), args.Error(1)
}

func (m *SendLogRepository) Aggregate(ctx context.Context, orgID *uuid.UUID) (int64, int64, error) {
	args := m.Called(ctx, orgID)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}
