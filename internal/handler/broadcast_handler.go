package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"plataforma-pm/internal/domain"
	"plataforma-pm/internal/middleware"
	"plataforma-pm/internal/service/authz"
	"plataforma-pm/internal/service/broadcast"
	"plataforma-pm/internal/service/scheduler"
	"plataforma-pm/internal/service/stats"
	"plataforma-pm/internal/service/targeting"
)

type BroadcastHandler struct {
	broadcastService broadcast.Service
	schedulerService scheduler.Service
	statsService     stats.Service
	authzService     authz.Service
	targetingService targeting.Service
}

func NewBroadcastHandler(
	broadcastService broadcast.Service,
	schedulerService scheduler.Service,
	statsService stats.Service,
	authzService authz.Service,
	targetingService targeting.Service,
) *BroadcastHandler {
	return &BroadcastHandler{
		broadcastService: broadcastService,
		schedulerService: schedulerService,
		statsService:     statsService,
		authzService:     authzService,
		targetingService: targetingService,
	}
}

// mapBroadcastError translates service-level sentinels into HTTP errors.
// Anything unrecognized falls through to the global handler as a 500.
func mapBroadcastError(err error) error {
	var outside *authz.MembersOutsideOrgError
	switch {
	case errors.Is(err, broadcast.ErrInvalidInput):
		return middleware.BadRequest(err.Error())
	case errors.Is(err, authz.ErrOrgContextRequired),
		errors.Is(err, targeting.ErrOrgContextRequired):
		return middleware.BadRequest(err.Error())
	case errors.Is(err, authz.ErrInvalidTargetID):
		return middleware.BadRequest(err.Error())
	case errors.Is(err, authz.ErrNotOrgAdmin),
		errors.Is(err, authz.ErrTargetRestricted),
		errors.Is(err, authz.ErrOrgMismatch):
		return middleware.Forbidden(err.Error())
	case errors.As(err, &outside):
		return middleware.Forbidden(err.Error())
	case errors.Is(err, broadcast.ErrNotFound):
		return middleware.NotFound(err.Error())
	case errors.Is(err, broadcast.ErrNotCreator):
		return middleware.Forbidden(err.Error())
	case errors.Is(err, broadcast.ErrNotPending):
		return middleware.Conflict(err.Error())
	default:
		return err
	}
}

func (h *BroadcastHandler) Send(c *fiber.Ctx) error {
	caller := middleware.GetCurrentUser(c)
	if caller == nil {
		return middleware.Unauthorized("User not found")
	}

	var input domain.SendBroadcastInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	result, err := h.broadcastService.Send(c.Context(), caller, middleware.GetOrgContext(c), input)
	if err != nil {
		return mapBroadcastError(err)
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *BroadcastHandler) Schedule(c *fiber.Ctx) error {
	caller := middleware.GetCurrentUser(c)
	if caller == nil {
		return middleware.Unauthorized("User not found")
	}

	var input domain.ScheduleBroadcastInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	sn, err := h.broadcastService.Schedule(c.Context(), caller, middleware.GetOrgContext(c), input)
	if err != nil {
		return mapBroadcastError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(sn)
}

func (h *BroadcastHandler) ListScheduled(c *fiber.Ctx) error {
	params := domain.ListParams{
		Limit:  c.QueryInt("limit", 50),
		Offset: c.QueryInt("offset", 0),
	}
	status := domain.ScheduledStatus(c.Query("status"))

	items, err := h.broadcastService.ListScheduled(c.Context(), middleware.GetCurrentUserID(c), status, params)
	if err != nil {
		return mapBroadcastError(err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"scheduled_notifications": items,
		"count":                   len(items),
	})
}

func (h *BroadcastHandler) UpdateScheduled(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid scheduled notification ID")
	}

	var input domain.UpdateScheduledInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	if err := h.broadcastService.UpdateScheduled(c.Context(), id, middleware.GetCurrentUserID(c), input); err != nil {
		return mapBroadcastError(err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Scheduled notification updated",
	})
}

func (h *BroadcastHandler) CancelScheduled(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid scheduled notification ID")
	}

	if err := h.broadcastService.CancelScheduled(c.Context(), id, middleware.GetCurrentUserID(c)); err != nil {
		return mapBroadcastError(err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Scheduled notification cancelled",
	})
}

func (h *BroadcastHandler) SendHistory(c *fiber.Ctx) error {
	params := domain.ListParams{
		Limit:  c.QueryInt("limit", 50),
		Offset: c.QueryInt("offset", 0),
	}

	logs, err := h.broadcastService.SendHistory(c.Context(), middleware.GetCurrentUserID(c), params)
	if err != nil {
		return mapBroadcastError(err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"send_logs": logs,
		"count":     len(logs),
	})
}

func (h *BroadcastHandler) DeliveryStats(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid send log ID")
	}

	result, err := h.broadcastService.DeliveryStats(c.Context(), id)
	if err != nil {
		return mapBroadcastError(err)
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

// Summary reports scope-wide counters. Super admins without an org context get
// the platform-wide view; org admins always get their own organization's view.
func (h *BroadcastHandler) Summary(c *fiber.Ctx) error {
	caller := middleware.GetCurrentUser(c)
	if caller == nil {
		return middleware.Unauthorized("User not found")
	}
	orgID := middleware.GetOrgContext(c)

	if err := h.authzService.RequireOrgAdmin(c.Context(), caller, orgID); err != nil {
		return mapBroadcastError(err)
	}

	summary, err := h.statsService.Summary(c.Context(), orgID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(summary)
}

// ProcessNow drains due scheduled notifications on demand instead of waiting
// for the next periodic cycle. Safe to race that cycle; the per-row claim
// prevents double sends.
func (h *BroadcastHandler) ProcessNow(c *fiber.Ctx) error {
	result, err := h.schedulerService.ProcessDue(c.Context(), c.QueryInt("limit", 100))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

// SearchTargets powers the target picker: type=users searches people within
// the caller's scope, type=organizations searches orgs (super admin only).
func (h *BroadcastHandler) SearchTargets(c *fiber.Ctx) error {
	caller := middleware.GetCurrentUser(c)
	if caller == nil {
		return middleware.Unauthorized("User not found")
	}
	orgID := middleware.GetOrgContext(c)

	if err := h.authzService.RequireOrgAdmin(c.Context(), caller, orgID); err != nil {
		return mapBroadcastError(err)
	}

	query := c.Query("q")
	limit := c.QueryInt("limit", 20)

	switch c.Query("type", "users") {
	case "users":
		users, err := h.targetingService.SearchUsers(c.Context(), orgID, query, limit)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"users": users})

	case "organizations":
		if !caller.IsSuperAdmin() {
			return middleware.Forbidden("Super admin access required")
		}
		orgs, err := h.targetingService.SearchOrganizations(c.Context(), query, limit)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"organizations": orgs})

	default:
		return middleware.BadRequest("type must be users or organizations")
	}
}
