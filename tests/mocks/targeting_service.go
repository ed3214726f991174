package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"plataforma-pm/internal/domain"
)

type TargetingService struct {
	mock.Mock
}

func (m *TargetingService) Resolve(ctx context.Context, targetType domain.TargetType, targetIDs []string, orgID *uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, targetType, targetIDs, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *TargetingService) SearchUsers(ctx context.Context, orgID *uuid.UUID, query string, limit int) ([]domain.UserSummary, error) {
	args := m.Called(ctx, orgID, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UserSummary), args.Error(1)
}

func (m *TargetingService) SearchOrganizations(ctx context.Context, query string, limit int) ([]domain.Organization, error) {
	args := m.Called(ctx, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Organization), args.Error(1)
}
