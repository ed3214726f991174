package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"plataforma-pm/internal/domain"
)

type AuthzService struct {
	mock.Mock
}

func (m *AuthzService) Authorize(ctx context.Context, caller *domain.User, orgID *uuid.UUID, targetType domain.TargetType, targetIDs []string) error {
	args := m.Called(ctx, caller, orgID, targetType, targetIDs)
	return args.Error(0)
}

func (m *AuthzService) RequireOrgAdmin(ctx context.Context, caller *domain.User, orgID *uuid.UUID) error {
	args := m.Called(ctx, caller, orgID)
	return args.Error(0)
}
