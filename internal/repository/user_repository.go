package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"plataforma-pm/internal/domain"
)

type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ListActiveIDs(ctx context.Context) ([]uuid.UUID, error)
	Search(ctx context.Context, query string, limit int) ([]domain.UserSummary, error)
	SearchInOrganization(ctx context.Context, orgID uuid.UUID, query string, limit int) ([]domain.UserSummary, error)
}

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	query := `SELECT * FROM users WHERE id = $1 AND deleted_at IS NULL`

	err := r.db.GetContext(ctx, &user, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	query := `SELECT * FROM users WHERE email = $1 AND deleted_at IS NULL`

	err := r.db.GetContext(ctx, &user, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) ListActiveIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	query := `SELECT id FROM users WHERE is_active = true AND deleted_at IS NULL`

	err := r.db.SelectContext(ctx, &ids, query)
	return ids, err
}

func (r *userRepository) Search(ctx context.Context, query string, limit int) ([]domain.UserSummary, error) {
	var users []domain.UserSummary
	q := `
		SELECT id, full_name, email FROM users
		WHERE deleted_at IS NULL
		  AND (full_name ILIKE '%' || $1 || '%' OR email ILIKE '%' || $1 || '%')
		ORDER BY full_name
		LIMIT $2`

	err := r.db.SelectContext(ctx, &users, q, query, limit)
	return users, err
}

func (r *userRepository) SearchInOrganization(ctx context.Context, orgID uuid.UUID, query string, limit int) ([]domain.UserSummary, error) {
	var users []domain.UserSummary
	q := `
		SELECT u.id, u.full_name, u.email
		FROM users u
		INNER JOIN memberships m ON m.user_id = u.id
		WHERE m.organization_id = $1
		  AND u.deleted_at IS NULL
		  AND (u.full_name ILIKE '%' || $2 || '%' OR u.email ILIKE '%' || $2 || '%')
		ORDER BY u.full_name
		LIMIT $3`

	err := r.db.SelectContext(ctx, &users, q, orgID, query, limit)
	return users, err
}
