package targeting_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"plataforma-pm/internal/domain"
	"plataforma-pm/internal/service/targeting"
	"plataforma-pm/tests/mocks"
)

func TestResolve_UserTargets(t *testing.T) {
	mockUsers := new(mocks.UserRepository)
	mockOrgs := new(mocks.OrganizationRepository)
	mockMembership := new(mocks.MembershipRepository)
	svc := targeting.NewService(mockUsers, mockOrgs, mockMembership)

	ctx := context.Background()
	a := uuid.New()
	b := uuid.New()

	t.Run("DeduplicatesPreservingOrder", func(t *testing.T) {
		recipients, err := svc.Resolve(ctx, domain.TargetUser, []string{a.String(), b.String(), a.String()}, nil)
		assert.NoError(t, err)
		assert.Equal(t, []uuid.UUID{a, b}, recipients)
	})

	t.Run("SkipsUnparseableIDs", func(t *testing.T) {
		recipients, err := svc.Resolve(ctx, domain.TargetUser, []string{"garbage", a.String()}, nil)
		assert.NoError(t, err)
		assert.Equal(t, []uuid.UUID{a}, recipients)
	})

	t.Run("EmptyListIsEmptyAudience", func(t *testing.T) {
		recipients, err := svc.Resolve(ctx, domain.TargetUser, nil, nil)
		assert.NoError(t, err)
		assert.Empty(t, recipients)
	})
}

func TestResolve_Organization(t *testing.T) {
	mockUsers := new(mocks.UserRepository)
	mockOrgs := new(mocks.OrganizationRepository)
	mockMembership := new(mocks.MembershipRepository)
	svc := targeting.NewService(mockUsers, mockOrgs, mockMembership)

	ctx := context.Background()
	orgID := uuid.New()
	member := uuid.New()

	t.Run("ResolvesCurrentMembers", func(t *testing.T) {
		mockMembership.On("ListUserIDsByOrg", ctx, orgID).Return([]uuid.UUID{member, member}, nil).Once()

		recipients, err := svc.Resolve(ctx, domain.TargetOrganization, []string{orgID.String()}, nil)
		assert.NoError(t, err)
		assert.Equal(t, []uuid.UUID{member}, recipients)
		mockMembership.AssertExpectations(t)
	})

	t.Run("NoOrgIDYieldsEmpty", func(t *testing.T) {
		recipients, err := svc.Resolve(ctx, domain.TargetOrganization, nil, nil)
		assert.NoError(t, err)
		assert.Empty(t, recipients)
	})
}

func TestResolve_Role(t *testing.T) {
	mockUsers := new(mocks.UserRepository)
	mockOrgs := new(mocks.OrganizationRepository)
	mockMembership := new(mocks.MembershipRepository)
	svc := targeting.NewService(mockUsers, mockOrgs, mockMembership)

	ctx := context.Background()
	orgID := uuid.New()
	gestor := uuid.New()

	t.Run("ResolvesManagerialRoleInOrg", func(t *testing.T) {
		mockMembership.On("ListUserIDsByRole", ctx, orgID, domain.RoleGestor).Return([]uuid.UUID{gestor}, nil).Once()

		recipients, err := svc.Resolve(ctx, domain.TargetRole, nil, &orgID)
		assert.NoError(t, err)
		assert.Equal(t, []uuid.UUID{gestor}, recipients)
	})

	t.Run("RequiresOrgContext", func(t *testing.T) {
		_, err := svc.Resolve(ctx, domain.TargetRole, nil, nil)
		assert.ErrorIs(t, err, targeting.ErrOrgContextRequired)
	})
}

func TestResolve_MultiOrgAndAll(t *testing.T) {
	mockUsers := new(mocks.UserRepository)
	mockOrgs := new(mocks.OrganizationRepository)
	mockMembership := new(mocks.MembershipRepository)
	svc := targeting.NewService(mockUsers, mockOrgs, mockMembership)

	ctx := context.Background()
	org1 := uuid.New()
	org2 := uuid.New()
	shared := uuid.New()
	only2 := uuid.New()

	t.Run("MultiOrgUnionWithoutDuplicates", func(t *testing.T) {
		mockMembership.On("ListUserIDsByOrgs", ctx, []uuid.UUID{org1, org2}).
			Return([]uuid.UUID{shared, only2, shared}, nil).Once()

		recipients, err := svc.Resolve(ctx, domain.TargetMultiOrg, []string{org1.String(), org2.String()}, nil)
		assert.NoError(t, err)
		assert.Equal(t, []uuid.UUID{shared, only2}, recipients)
	})

	t.Run("AllActiveUsers", func(t *testing.T) {
		mockUsers.On("ListActiveIDs", ctx).Return([]uuid.UUID{shared, only2}, nil).Once()

		recipients, err := svc.Resolve(ctx, domain.TargetAll, nil, nil)
		assert.NoError(t, err)
		assert.Len(t, recipients, 2)
		mockUsers.AssertExpectations(t)
	})
}
