package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/leads-service/internal/api/dto"
	"github.com/spec-kit/leads-service/internal/service"
	apperrors "github.com/spec-kit/leads-service/pkg/util"
)

// StatusHandler serves the root greeting and client pings.
type StatusHandler struct {
	service *service.StatusService
}

// NewStatusHandler constructs handler.
func NewStatusHandler(statusService *service.StatusService) *StatusHandler {
	return &StatusHandler{service: statusService}
}

// Root GET /api/.
func (h *StatusHandler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "Hello World"})
}

// Create POST /api/status.
func (h *StatusHandler) Create(c *fiber.Ctx) error {
	var req dto.StatusCheckRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	check, err := h.service.Record(c.UserContext(), service.StatusCheckRequest{ClientName: req.ClientName})
	if err != nil {
		return err
	}
	return c.JSON(dto.StatusCheck{ID: check.ID, ClientName: check.ClientName, Timestamp: check.Timestamp})
}

// List GET /api/status.
func (h *StatusHandler) List(c *fiber.Ctx) error {
	checks, err := h.service.List(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.StatusCheck, 0, len(checks))
	for _, check := range checks {
		items = append(items, dto.StatusCheck{ID: check.ID, ClientName: check.ClientName, Timestamp: check.Timestamp})
	}
	return c.JSON(items)
}
