package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"plataforma-pm/internal/domain"
	"plataforma-pm/internal/service/auth"
)

const (
	UserContextKey   = "user"
	UserIDContextKey = "user_id"
	OrgContextKey    = "org_id"
)

func AuthRequired(authService auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return Unauthorized("Missing authorization header")
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return Unauthorized("Invalid authorization header format")
		}

		claims, err := authService.ValidateAccessToken(parts[1])
		if err != nil {
			return Unauthorized("Invalid or expired token")
		}

		user, err := authService.GetUserByID(c.Context(), claims.UserID)
		if err != nil || user == nil {
			return Unauthorized("User not found")
		}

		c.Locals(UserContextKey, user)
		c.Locals(UserIDContextKey, user.ID)

		return c.Next()
	}
}

// OrgContext parses the optional orgId query parameter shared by the broadcast
// admin endpoints. The Authorization Guard decides whether an absent context
// is acceptable for the caller.
func OrgContext() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Query("orgId")
		if raw == "" {
			return c.Next()
		}

		orgID, err := uuid.Parse(raw)
		if err != nil {
			return BadRequest("Invalid orgId")
		}

		c.Locals(OrgContextKey, orgID)
		return c.Next()
	}
}

func RequireSuperAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := GetCurrentUser(c)
		if user == nil {
			return Unauthorized("User not found")
		}
		if !user.IsSuperAdmin() {
			return Forbidden("Super admin access required")
		}
		return c.Next()
	}
}

func GetCurrentUser(c *fiber.Ctx) *domain.User {
	user, ok := c.Locals(UserContextKey).(*domain.User)
	if !ok {
		return nil
	}
	return user
}

func GetCurrentUserID(c *fiber.Ctx) uuid.UUID {
	userID, ok := c.Locals(UserIDContextKey).(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return userID
}

func GetOrgContext(c *fiber.Ctx) *uuid.UUID {
	orgID, ok := c.Locals(OrgContextKey).(uuid.UUID)
	if !ok {
		return nil
	}
	return &orgID
}
