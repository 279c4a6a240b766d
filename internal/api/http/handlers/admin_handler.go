package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/leads-service/internal/api/dto"
	"github.com/spec-kit/leads-service/internal/domain"
	"github.com/spec-kit/leads-service/internal/repository"
	"github.com/spec-kit/leads-service/internal/service"
	apperrors "github.com/spec-kit/leads-service/pkg/util"
)

// AdminHandler serves the admin lead endpoints.
type AdminHandler struct {
	service *service.AdminService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(adminService *service.AdminService) *AdminHandler {
	return &AdminHandler{service: adminService}
}

// Login POST /api/admin/login.
func (h *AdminHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.service.Login(req.Username, req.Password); err != nil {
		return err
	}
	return c.JSON(dto.LoginResponse{Success: true, Message: "Login successful", Username: req.Username})
}

// ListQuotes GET /api/admin/quotes.
func (h *AdminHandler) ListQuotes(c *fiber.Ctx) error {
	filter, err := parseLeadFilter(c)
	if err != nil {
		return err
	}
	leads, err := h.service.ListLeads(c.UserContext(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.Lead, 0, len(leads))
	for _, l := range leads {
		items = append(items, leadView(l))
	}
	return c.JSON(items)
}

// UpdateQuoteStatus PATCH /api/admin/quotes/:id/status.
func (h *AdminHandler) UpdateQuoteStatus(c *fiber.Ctx) error {
	var req dto.StatusUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.service.UpdateLeadStatus(c.UserContext(), c.Params("id"), domain.LeadStatus(req.Status)); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Success: true, Message: "Status updated"})
}

// DeleteQuote DELETE /api/admin/quotes/:id.
func (h *AdminHandler) DeleteQuote(c *fiber.Ctx) error {
	if err := h.service.DeleteLead(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Success: true, Message: "Quote deleted"})
}

func parseLeadFilter(c *fiber.Ctx) (repository.LeadFilter, error) {
	var filter repository.LeadFilter
	if raw := c.Query("status"); raw != "" {
		status := domain.LeadStatus(raw)
		filter.Status = &status
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			return filter, apperrors.NewValidationError("invalid limit", map[string]any{"limit": raw})
		}
		filter.Limit = limit
	}
	return filter, nil
}
