package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"plataforma-pm/internal/domain"
)

type ScheduledNotificationRepository struct {
	mock.Mock
}

func (m *ScheduledNotificationRepository) Create(ctx context.Context, sn *domain.ScheduledNotification) error {
	args := m.Called(ctx, sn)
	return args.Error(0)
}

func (m *ScheduledNotificationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ScheduledNotification, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ScheduledNotification), args.Error(1)
}

func (m *ScheduledNotificationRepository) ListByCreator(ctx context.Context, creatorID uuid.UUID, status domain.ScheduledStatus, params domain.ListParams) ([]domain.ScheduledNotification, error) {
	args := m.Called(ctx, creatorID, status, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ScheduledNotification), args.Error(1)
}

func (m *ScheduledNotificationRepository) ListDue(ctx context.Context, now time.Time, limit int) ([]domain.ScheduledNotification, error) {
	args := m.Called(ctx, now, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ScheduledNotification), args.Error(1)
}

func (m *ScheduledNotificationRepository) Claim(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *ScheduledNotificationRepository) MarkSent(ctx context.Context, id uuid.UUID, sentAt time.Time) error {
	args := m.Called(ctx, id, sentAt)
	return args.Error(0)
}

func (m *ScheduledNotificationRepository) MarkFailed(ctx context.Context, id uuid.UUID, reason string) error {
	args := m.Called(ctx, id, reason)
	return args.Error(0)
}

func (m *ScheduledNotificationRepository) Update(ctx context.Context, id, creatorID uuid.UUID, input domain.UpdateScheduledInput) (bool, error) {
	args := m.Called(ctx, id, creatorID, input)
	return args.Bool(0), args.Error(1)
}

func (m *ScheduledNotificationRepository) Cancel(ctx context.Context, id, creatorID uuid.UUID) (bool, error) {
	args := m.Called(ctx, id, creatorID)
	return args.Bool(0), args.Error(1)
}

func (m *ScheduledNotificationRepository) CountPending(ctx context.Context, orgID *uuid.UUID) (int64, error) {
	args := m.Called(ctx, orgID)
	return args.Get(0).(int64), args.Error(1)
}
