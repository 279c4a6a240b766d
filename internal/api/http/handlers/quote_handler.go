package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/leads-service/internal/api/dto"
	"github.com/spec-kit/leads-service/internal/service"
	apperrors "github.com/spec-kit/leads-service/pkg/util"
)

// QuoteHandler accepts public quote submissions.
type QuoteHandler struct {
	service *service.QuoteService
}

// NewQuoteHandler constructs handler.
func NewQuoteHandler(quoteService *service.QuoteService) *QuoteHandler {
	return &QuoteHandler{service: quoteService}
}

// Submit POST /api/quote.
func (h *QuoteHandler) Submit(c *fiber.Ctx) error {
	var req dto.QuoteRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	lead, err := h.service.Submit(c.UserContext(), service.QuoteRequest{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Message: req.Message,
	}, service.ClientInfo{
		RemoteAddr:   c.IP(),
		ForwardedFor: c.Get(fiber.HeaderXForwardedFor),
		UserAgent:    c.Get(fiber.HeaderUserAgent),
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.QuoteResponse{
		Success: true,
		Message: service.QuoteAcceptedMessage,
		QuoteID: lead.ID,
	})
}
