package handler

import (
	"github.com/gofiber/fiber/v2"

	"plataforma-pm/internal/service/audit"
)

type AuditHandler struct {
	auditService audit.Service
}

func NewAuditHandler(auditService audit.Service) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

func (h *AuditHandler) GetRecentActivities(c *fiber.Ctx) error {
	activities, err := h.auditService.GetRecentActivities(c.Context(), c.QueryInt("limit", 20))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"activities": activities,
	})
}
