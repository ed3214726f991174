package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"plataforma-pm/internal/domain"
)

type OrganizationRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Organization, error)
	Search(ctx context.Context, query string, limit int) ([]domain.Organization, error)
}

type organizationRepository struct {
	db *sqlx.DB
}

func NewOrganizationRepository(db *sqlx.DB) OrganizationRepository {
	return &organizationRepository{db: db}
}

func (r *organizationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Organization, error) {
	var org domain.Organization
	query := `SELECT * FROM organizations WHERE id = $1`

	err := r.db.GetContext(ctx, &org, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &org, nil
}

func (r *organizationRepository) Search(ctx context.Context, query string, limit int) ([]domain.Organization, error) {
	var orgs []domain.Organization
	q := `
		SELECT * FROM organizations
		WHERE name ILIKE '%' || $1 || '%'
		ORDER BY name
		LIMIT $2`

	err := r.db.SelectContext(ctx, &orgs, q, query, limit)
	return orgs, err
}
