package domain

import (
	"time"

	"github.com/google/uuid"
)

type Organization struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Membership links a user to an organization with an org-scoped role.
type Membership struct {
	UserID         uuid.UUID `json:"user_id" db:"user_id"`
	OrganizationID uuid.UUID `json:"organization_id" db:"organization_id"`
	Role           OrgRole   `json:"role" db:"role"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

type OrgRole string

const (
	// RoleSecretario is the top org role; its holders may broadcast within the org.
	RoleSecretario OrgRole = "secretario"
	// RoleGestor is the managerial role that role-targeted broadcasts resolve to.
	RoleGestor OrgRole = "gestor"
	RoleViewer OrgRole = "viewer"
)

func (r OrgRole) IsValid() bool {
	switch r {
	case RoleSecretario, RoleGestor, RoleViewer:
		return true
	default:
		return false
	}
}
