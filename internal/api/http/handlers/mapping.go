package handlers

import (
	"github.com/spec-kit/leads-service/internal/api/dto"
	"github.com/spec-kit/leads-service/internal/domain"
)

func leadView(l domain.Lead) dto.Lead {
	return dto.Lead{
		ID:        l.ID,
		Name:      l.Name,
		Email:     l.Email,
		Phone:     l.Phone,
		Message:   l.Message,
		IPAddress: l.IPAddress,
		Country:   l.Country,
		UserAgent: l.UserAgent,
		CreatedAt: l.CreatedAt,
		Status:    string(l.Status),
	}
}

func projectView(p domain.Project) dto.Project {
	tech := p.Tech
	if tech == nil {
		tech = []string{}
	}
	return dto.Project{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Tech:        tech,
		Image:       p.Image,
		Link:        p.Link,
		CreatedAt:   p.CreatedAt,
	}
}

func projectViews(projects []domain.Project) []dto.Project {
	items := make([]dto.Project, 0, len(projects))
	for _, p := range projects {
		items = append(items, projectView(p))
	}
	return items
}
