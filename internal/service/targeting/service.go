package targeting

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"plataforma-pm/internal/domain"
	"plataforma-pm/internal/repository"
)

var ErrOrgContextRequired = errors.New("organization context required for role targeting")

// Service turns a target spec into the concrete recipient set. Resolution
// reads membership state at call time, so a scheduled broadcast picks up
// members added or removed after it was created. An empty result is a valid
// outcome, not an error.
type Service interface {
	Resolve(ctx context.Context, targetType domain.TargetType, targetIDs []string, orgID *uuid.UUID) ([]uuid.UUID, error)
	SearchUsers(ctx context.Context, orgID *uuid.UUID, query string, limit int) ([]domain.UserSummary, error)
	SearchOrganizations(ctx context.Context, query string, limit int) ([]domain.Organization, error)
}

type service struct {
	userRepo       repository.UserRepository
	orgRepo        repository.OrganizationRepository
	membershipRepo repository.MembershipRepository
}

func NewService(userRepo repository.UserRepository, orgRepo repository.OrganizationRepository, membershipRepo repository.MembershipRepository) Service {
	return &service{
		userRepo:       userRepo,
		orgRepo:        orgRepo,
		membershipRepo: membershipRepo,
	}
}

func (s *service) Resolve(ctx context.Context, targetType domain.TargetType, targetIDs []string, orgID *uuid.UUID) ([]uuid.UUID, error) {
	switch targetType {
	case domain.TargetUser:
		return dedupe(parseIDs(targetIDs)), nil

	case domain.TargetOrganization:
		if len(targetIDs) == 0 {
			return []uuid.UUID{}, nil
		}
		targetOrg, err := uuid.Parse(targetIDs[0])
		if err != nil {
			return nil, err
		}
		members, err := s.membershipRepo.ListUserIDsByOrg(ctx, targetOrg)
		if err != nil {
			return nil, err
		}
		return dedupe(members), nil

	case domain.TargetRole:
		if orgID == nil {
			return nil, ErrOrgContextRequired
		}
		members, err := s.membershipRepo.ListUserIDsByRole(ctx, *orgID, domain.RoleGestor)
		if err != nil {
			return nil, err
		}
		return dedupe(members), nil

	case domain.TargetMultiOrg:
		orgIDs := parseIDs(targetIDs)
		if len(orgIDs) == 0 {
			return []uuid.UUID{}, nil
		}
		members, err := s.membershipRepo.ListUserIDsByOrgs(ctx, orgIDs)
		if err != nil {
			return nil, err
		}
		return dedupe(members), nil

	case domain.TargetAll:
		ids, err := s.userRepo.ListActiveIDs(ctx)
		if err != nil {
			return nil, err
		}
		return dedupe(ids), nil

	default:
		return []uuid.UUID{}, nil
	}
}

// SearchUsers looks up candidate recipients by name or email. With an org
// context the search is scoped to that organization's members.
func (s *service) SearchUsers(ctx context.Context, orgID *uuid.UUID, query string, limit int) ([]domain.UserSummary, error) {
	if limit < 1 || limit > 50 {
		limit = 20
	}
	if orgID != nil {
		return s.userRepo.SearchInOrganization(ctx, *orgID, query, limit)
	}
	return s.userRepo.Search(ctx, query, limit)
}

func (s *service) SearchOrganizations(ctx context.Context, query string, limit int) ([]domain.Organization, error) {
	if limit < 1 || limit > 50 {
		limit = 20
	}
	return s.orgRepo.Search(ctx, query, limit)
}

func parseIDs(raw []string) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, r := range raw {
		if id, err := uuid.Parse(r); err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
