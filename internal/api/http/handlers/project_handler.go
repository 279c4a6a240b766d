package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/leads-service/internal/api/dto"
	"github.com/spec-kit/leads-service/internal/service"
	apperrors "github.com/spec-kit/leads-service/pkg/util"
)

// ProjectHandler serves public and admin project endpoints.
type ProjectHandler struct {
	service *service.ProjectService
}

// NewProjectHandler constructs handler.
func NewProjectHandler(projectService *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{service: projectService}
}

// ListPublic GET /api/projects.
func (h *ProjectHandler) ListPublic(c *fiber.Ctx) error {
	projects, err := h.service.ListPublic(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(projectViews(projects))
}

// ListAll GET /api/admin/projects.
func (h *ProjectHandler) ListAll(c *fiber.Ctx) error {
	projects, err := h.service.ListAll(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(projectViews(projects))
}

// Create POST /api/admin/projects.
func (h *ProjectHandler) Create(c *fiber.Ctx) error {
	req, err := parseProjectRequest(c)
	if err != nil {
		return err
	}
	project, err := h.service.Create(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.JSON(dto.ProjectResponse{Success: true, Project: projectView(*project)})
}

// Update PUT /api/admin/projects/:id.
func (h *ProjectHandler) Update(c *fiber.Ctx) error {
	req, err := parseProjectRequest(c)
	if err != nil {
		return err
	}
	if err := h.service.Update(c.UserContext(), c.Params("id"), req); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Success: true, Message: "Project updated"})
}

// Delete DELETE /api/admin/projects/:id.
func (h *ProjectHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Success: true, Message: "Project deleted"})
}

func parseProjectRequest(c *fiber.Ctx) (service.ProjectRequest, error) {
	var req dto.ProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return service.ProjectRequest{}, apperrors.NewValidationError("invalid payload", nil)
	}
	return service.ProjectRequest{
		Title:       req.Title,
		Description: req.Description,
		Tech:        req.Tech,
		Image:       req.Image,
		Link:        req.Link,
	}, nil
}
