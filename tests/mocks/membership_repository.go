package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"plataforma-pm/internal/domain"
)

type MembershipRepository struct {
	mock.Mock
}

func (m *MembershipRepository) GetRole(ctx context.Context, userID, orgID uuid.UUID) (*domain.OrgRole, error) {
	args := m.Called(ctx, userID, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OrgRole), args.Error(1)
}

func (m *MembershipRepository) ListUserIDsByOrg(ctx context.Context, orgID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MembershipRepository) ListUserIDsByOrgs(ctx context.Context, orgIDs []uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, orgIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MembershipRepository) ListUserIDsByRole(ctx context.Context, orgID uuid.UUID, role domain.OrgRole) ([]uuid.UUID, error) {
	args := m.Called(ctx, orgID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MembershipRepository) FilterMembers(ctx context.Context, orgID uuid.UUID, userIDs []uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, orgID, userIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}
