package repository

import (
	"context"
	"iter"

	"github.com/spec-kit/leads-service/internal/docstore"
	"github.com/spec-kit/leads-service/internal/domain"
)

// ProjectRepository persists portfolio projects.
type ProjectRepository interface {
	Insert(ctx context.Context, project domain.Project) error
	// List yields projects newest first when newestFirst is set, otherwise in store order.
	List(ctx context.Context, newestFirst bool) iter.Seq2[domain.Project, error]
	Replace(ctx context.Context, id string, in domain.ProjectInput) error
	Delete(ctx context.Context, id string) error
}

type projectRepository struct {
	projects docstore.Collection
}

// NewProjectRepository returns a document-store backed implementation.
func NewProjectRepository(store docstore.Store) ProjectRepository {
	return &projectRepository{projects: store.Collection(ProjectsCollection)}
}

func (r *projectRepository) Insert(ctx context.Context, project domain.Project) error {
	doc := projectFields(project)
	doc["id"] = project.ID
	doc["created_at"] = docstore.FormatTimestamp(project.CreatedAt)
	return r.projects.Insert(ctx, doc)
}

func (r *projectRepository) List(ctx context.Context, newestFirst bool) iter.Seq2[domain.Project, error] {
	q := docstore.Query{Limit: DefaultListLimit}
	if newestFirst {
		q.SortField = "created_at"
		q.SortDesc = true
	}
	return func(yield func(domain.Project, error) bool) {
		for doc, err := range r.projects.Find(ctx, q) {
			if err != nil {
				yield(domain.Project{}, err)
				return
			}
			project, err := projectFromDocument(doc)
			if !yield(project, err) || err != nil {
				return
			}
		}
	}
}

func (r *projectRepository) Replace(ctx context.Context, id string, in domain.ProjectInput) error {
	var p domain.Project
	p.Apply(in)
	return r.projects.SetFields(ctx, id, projectFields(p))
}

func (r *projectRepository) Delete(ctx context.Context, id string) error {
	return r.projects.Delete(ctx, id)
}

func projectFields(p domain.Project) docstore.Document {
	tech := p.Tech
	if tech == nil {
		tech = []string{}
	}
	return docstore.Document{
		"title":       p.Title,
		"description": p.Description,
		"tech":        tech,
		"image":       p.Image,
		"link":        optionalValue(p.Link),
	}
}

func projectFromDocument(doc docstore.Document) (domain.Project, error) {
	createdAt, err := timeField(doc, "created_at")
	if err != nil {
		return domain.Project{}, err
	}
	return domain.Project{
		ID:          stringField(doc, "id"),
		Title:       stringField(doc, "title"),
		Description: stringField(doc, "description"),
		Tech:        stringsField(doc, "tech"),
		Image:       stringField(doc, "image"),
		Link:        optionalField(doc, "link"),
		CreatedAt:   createdAt,
	}, nil
}
