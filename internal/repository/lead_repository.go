package repository

import (
	"context"
	"iter"

	"github.com/spec-kit/leads-service/internal/docstore"
	"github.com/spec-kit/leads-service/internal/domain"
)

// LeadFilter narrows an admin listing.
type LeadFilter struct {
	Status *domain.LeadStatus
	Limit  int
}

// LeadRepository persists quote requests. Missing leads surface as
// docstore.ErrNotFound, engine failures as docstore.ErrUnavailable.
type LeadRepository interface {
	Insert(ctx context.Context, lead domain.Lead) error
	// List yields leads newest first.
	List(ctx context.Context, filter LeadFilter) iter.Seq2[domain.Lead, error]
	UpdateStatus(ctx context.Context, id string, status domain.LeadStatus) error
	Delete(ctx context.Context, id string) error
}

type leadRepository struct {
	quotes docstore.Collection
}

// NewLeadRepository returns a document-store backed implementation.
func NewLeadRepository(store docstore.Store) LeadRepository {
	return &leadRepository{quotes: store.Collection(QuotesCollection)}
}

func (r *leadRepository) Insert(ctx context.Context, lead domain.Lead) error {
	return r.quotes.Insert(ctx, leadDocument(lead))
}

func (r *leadRepository) List(ctx context.Context, filter LeadFilter) iter.Seq2[domain.Lead, error] {
	q := docstore.Query{SortField: "created_at", SortDesc: true, Limit: listLimit(filter.Limit)}
	if filter.Status != nil {
		q.Filter = map[string]string{"status": string(*filter.Status)}
	}
	return func(yield func(domain.Lead, error) bool) {
		for doc, err := range r.quotes.Find(ctx, q) {
			if err != nil {
				yield(domain.Lead{}, err)
				return
			}
			lead, err := leadFromDocument(doc)
			if !yield(lead, err) || err != nil {
				return
			}
		}
	}
}

func (r *leadRepository) UpdateStatus(ctx context.Context, id string, status domain.LeadStatus) error {
	return r.quotes.SetFields(ctx, id, docstore.Document{"status": string(status)})
}

func (r *leadRepository) Delete(ctx context.Context, id string) error {
	return r.quotes.Delete(ctx, id)
}

func leadDocument(lead domain.Lead) docstore.Document {
	return docstore.Document{
		"id":         lead.ID,
		"name":       lead.Name,
		"email":      lead.Email,
		"phone":      optionalValue(lead.Phone),
		"message":    lead.Message,
		"ip_address": optionalValue(lead.IPAddress),
		"country":    optionalValue(lead.Country),
		"user_agent": optionalValue(lead.UserAgent),
		"created_at": docstore.FormatTimestamp(lead.CreatedAt),
		"status":     string(lead.Status),
	}
}

func leadFromDocument(doc docstore.Document) (domain.Lead, error) {
	createdAt, err := timeField(doc, "created_at")
	if err != nil {
		return domain.Lead{}, err
	}
	status := domain.LeadStatus(stringField(doc, "status"))
	if status == "" {
		status = domain.LeadStatusNew
	}
	return domain.Lead{
		ID:        stringField(doc, "id"),
		Name:      stringField(doc, "name"),
		Email:     stringField(doc, "email"),
		Phone:     optionalField(doc, "phone"),
		Message:   stringField(doc, "message"),
		IPAddress: optionalField(doc, "ip_address"),
		Country:   optionalField(doc, "country"),
		UserAgent: optionalField(doc, "user_agent"),
		CreatedAt: createdAt,
		Status:    status,
	}, nil
}
