package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"plataforma-pm/internal/domain"
)

type MembershipRepository interface {
	GetRole(ctx context.Context, userID, orgID uuid.UUID) (*domain.OrgRole, error)
	ListUserIDsByOrg(ctx context.Context, orgID uuid.UUID) ([]uuid.UUID, error)
	ListUserIDsByOrgs(ctx context.Context, orgIDs []uuid.UUID) ([]uuid.UUID, error)
	ListUserIDsByRole(ctx context.Context, orgID uuid.UUID, role domain.OrgRole) ([]uuid.UUID, error)
	FilterMembers(ctx context.Context, orgID uuid.UUID, userIDs []uuid.UUID) ([]uuid.UUID, error)
}

type membershipRepository struct {
	db *sqlx.DB
}

func NewMembershipRepository(db *sqlx.DB) MembershipRepository {
	return &membershipRepository{db: db}
}

func (r *membershipRepository) GetRole(ctx context.Context, userID, orgID uuid.UUID) (*domain.OrgRole, error) {
	var role domain.OrgRole
	query := `SELECT role FROM memberships WHERE user_id = $1 AND organization_id = $2`

	err := r.db.GetContext(ctx, &role, query, userID, orgID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *membershipRepository) ListUserIDsByOrg(ctx context.Context, orgID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	query := `
		SELECT m.user_id FROM memberships m
		INNER JOIN users u ON u.id = m.user_id
		WHERE m.organization_id = $1 AND u.is_active = true AND u.deleted_at IS NULL`

	err := r.db.SelectContext(ctx, &ids, query, orgID)
	return ids, err
}

func (r *membershipRepository) ListUserIDsByOrgs(ctx context.Context, orgIDs []uuid.UUID) ([]uuid.UUID, error) {
	if len(orgIDs) == 0 {
		return []uuid.UUID{}, nil
	}

	ids := make([]string, len(orgIDs))
	for i, id := range orgIDs {
		ids[i] = id.String()
	}

	var userIDs []uuid.UUID
	query := `
		SELECT DISTINCT m.user_id FROM memberships m
		INNER JOIN users u ON u.id = m.user_id
		WHERE m.organization_id = ANY($1) AND u.is_active = true AND u.deleted_at IS NULL`

	err := r.db.SelectContext(ctx, &userIDs, query, pq.Array(ids))
	return userIDs, err
}

func (r *membershipRepository) ListUserIDsByRole(ctx context.Context, orgID uuid.UUID, role domain.OrgRole) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	query := `
		SELECT m.user_id FROM memberships m
		INNER JOIN users u ON u.id = m.user_id
		WHERE m.organization_id = $1 AND m.role = $2 AND u.is_active = true AND u.deleted_at IS NULL`

	err := r.db.SelectContext(ctx, &ids, query, orgID, role)
	return ids, err
}

func (r *membershipRepository) FilterMembers(ctx context.Context, orgID uuid.UUID, userIDs []uuid.UUID) ([]uuid.UUID, error) {
	if len(userIDs) == 0 {
		return []uuid.UUID{}, nil
	}

	ids := make([]string, len(userIDs))
	for i, id := range userIDs {
		ids[i] = id.String()
	}

	var members []uuid.UUID
	query := `
		SELECT user_id FROM memberships
		WHERE organization_id = $1 AND user_id = ANY($2)`

	err := r.db.SelectContext(ctx, &members, query, orgID, pq.Array(ids))
	return members, err
}
