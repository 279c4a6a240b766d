package service

import (
	"context"
	"strings"
	"time"

	"github.com/spec-kit/leads-service/internal/docstore"
	"github.com/spec-kit/leads-service/internal/domain"
	"github.com/spec-kit/leads-service/internal/repository"
)

const projectResource = "project"

// ProjectRequest carries the editable fields of a project.
type ProjectRequest struct {
	Title       string   `validate:"required"`
	Description string   `validate:"required"`
	Tech        []string `validate:"dive,required"`
	Image       string
	Link        *string
}

// ProjectService manages the portfolio.
type ProjectService struct {
	projects repository.ProjectRepository
	now      func() time.Time
}

// NewProjectService constructs the service.
func NewProjectService(projects repository.ProjectRepository) *ProjectService {
	return &ProjectService{projects: projects, now: time.Now}
}

// ListPublic returns projects in store order.
func (s *ProjectService) ListPublic(ctx context.Context) ([]domain.Project, error) {
	return s.list(ctx, false)
}

// ListAll returns projects newest first.
func (s *ProjectService) ListAll(ctx context.Context) ([]domain.Project, error) {
	return s.list(ctx, true)
}

func (s *ProjectService) list(ctx context.Context, newestFirst bool) ([]domain.Project, error) {
	projects, err := docstore.Collect(s.projects.List(ctx, newestFirst))
	if err != nil {
		return nil, storeError(projectResource, err)
	}
	if projects == nil {
		projects = []domain.Project{}
	}
	return projects, nil
}

// Create stores a new project.
func (s *ProjectService) Create(ctx context.Context, req ProjectRequest) (*domain.Project, error) {
	in, err := projectInput(req)
	if err != nil {
		return nil, err
	}
	project := domain.NewProject(in, s.now())
	if err := s.projects.Insert(ctx, project); err != nil {
		return nil, storeError(projectResource, err)
	}
	return &project, nil
}

// Update replaces every editable field of a project.
func (s *ProjectService) Update(ctx context.Context, id string, req ProjectRequest) error {
	in, err := projectInput(req)
	if err != nil {
		return err
	}
	return storeError(projectResource, s.projects.Replace(ctx, id, in))
}

// Delete removes a project.
func (s *ProjectService) Delete(ctx context.Context, id string) error {
	return storeError(projectResource, s.projects.Delete(ctx, id))
}

func projectInput(req ProjectRequest) (domain.ProjectInput, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	if err := validate.Struct(req); err != nil {
		return domain.ProjectInput{}, validationError(err)
	}
	return domain.ProjectInput{
		Title:       req.Title,
		Description: req.Description,
		Tech:        req.Tech,
		Image:       strings.TrimSpace(req.Image),
		Link:        req.Link,
	}, nil
}
