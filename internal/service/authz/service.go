package authz

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"plataforma-pm/internal/domain"
	"plataforma-pm/internal/repository"
)

var (
	ErrOrgContextRequired = errors.New("organization context required")
	ErrNotOrgAdmin        = errors.New("caller is not an organization admin")
	ErrTargetRestricted   = errors.New("only super admins can target all users or multiple organizations")
	ErrOrgMismatch        = errors.New("can only target your own organization")
	ErrInvalidTargetID    = errors.New("invalid target id")
)

// MembersOutsideOrgError lists the target user IDs that are not members of the
// caller's organization. The request is rejected as a whole; the valid subset
// is never admitted.
type MembersOutsideOrgError struct {
	UserIDs []string
}

func (e *MembersOutsideOrgError) Error() string {
	return fmt.Sprintf("target users are not members of your organization: %s", strings.Join(e.UserIDs, ", "))
}

// Service decides which target specs a caller may address. The same check runs
// for immediate sends and for creating or editing a scheduled notification; it
// validates the request, not the audience eventually resolved at send time.
type Service interface {
	Authorize(ctx context.Context, caller *domain.User, orgID *uuid.UUID, targetType domain.TargetType, targetIDs []string) error
	RequireOrgAdmin(ctx context.Context, caller *domain.User, orgID *uuid.UUID) error
}

type service struct {
	membershipRepo repository.MembershipRepository
}

func NewService(membershipRepo repository.MembershipRepository) Service {
	return &service{membershipRepo: membershipRepo}
}

// RequireOrgAdmin allows super admins unconditionally; everyone else must hold
// the secretario role in the supplied organization context.
func (s *service) RequireOrgAdmin(ctx context.Context, caller *domain.User, orgID *uuid.UUID) error {
	if caller.IsSuperAdmin() {
		return nil
	}

	if orgID == nil {
		return ErrOrgContextRequired
	}

	role, err := s.membershipRepo.GetRole(ctx, caller.ID, *orgID)
	if err != nil {
		return err
	}
	if role == nil || *role != domain.RoleSecretario {
		return ErrNotOrgAdmin
	}

	return nil
}

func (s *service) Authorize(ctx context.Context, caller *domain.User, orgID *uuid.UUID, targetType domain.TargetType, targetIDs []string) error {
	if caller.IsSuperAdmin() {
		return nil
	}

	if err := s.RequireOrgAdmin(ctx, caller, orgID); err != nil {
		return err
	}

	switch targetType {
	case domain.TargetAll, domain.TargetMultiOrg:
		return ErrTargetRestricted

	case domain.TargetOrganization:
		if len(targetIDs) != 1 || targetIDs[0] != orgID.String() {
			return ErrOrgMismatch
		}
		return nil

	case domain.TargetUser:
		return s.checkUserTargets(ctx, *orgID, targetIDs)

	case domain.TargetRole:
		// Scope is implicitly the caller's organization; the resolver
		// computes the member list itself.
		return nil

	default:
		return fmt.Errorf("%w: unknown target type %q", ErrInvalidTargetID, targetType)
	}
}

func (s *service) checkUserTargets(ctx context.Context, orgID uuid.UUID, targetIDs []string) error {
	userIDs := make([]uuid.UUID, 0, len(targetIDs))
	var invalid []string
	for _, raw := range targetIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			invalid = append(invalid, raw)
			continue
		}
		userIDs = append(userIDs, id)
	}

	if len(invalid) > 0 {
		return &MembersOutsideOrgError{UserIDs: invalid}
	}

	members, err := s.membershipRepo.FilterMembers(ctx, orgID, userIDs)
	if err != nil {
		return err
	}

	memberSet := make(map[uuid.UUID]struct{}, len(members))
	for _, id := range members {
		memberSet[id] = struct{}{}
	}

	var outside []string
	for _, id := range userIDs {
		if _, ok := memberSet[id]; !ok {
			outside = append(outside, id.String())
		}
	}
	if len(outside) > 0 {
		return &MembersOutsideOrgError{UserIDs: outside}
	}

	return nil
}
