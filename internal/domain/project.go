package domain

import (
	"time"

	"github.com/google/uuid"
)

// Project is a portfolio entry shown on the public site.
type Project struct {
	ID          string
	Title       string
	Description string
	Tech        []string
	Image       string
	Link        *string
	CreatedAt   time.Time
}

// ProjectInput holds the replaceable fields of a project.
type ProjectInput struct {
	Title       string
	Description string
	Tech        []string
	Image       string
	Link        *string
}

// NewProject assigns identity and creation time to input.
func NewProject(in ProjectInput, now time.Time) Project {
	p := Project{ID: uuid.NewString(), CreatedAt: now.UTC().Truncate(time.Microsecond)}
	p.Apply(in)
	return p
}

// Apply replaces every mutable field with the values from in.
func (p *Project) Apply(in ProjectInput) {
	p.Title = in.Title
	p.Description = in.Description
	p.Tech = append([]string{}, in.Tech...)
	p.Image = in.Image
	p.Link = OptionalString(derefString(in.Link))
}
