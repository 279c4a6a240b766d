package repository

import (
	"context"

	"github.com/spec-kit/leads-service/internal/docstore"
	"github.com/spec-kit/leads-service/internal/domain"
)

// StatusCheckRepository stores client pings.
type StatusCheckRepository interface {
	Insert(ctx context.Context, check domain.StatusCheck) error
	List(ctx context.Context) ([]domain.StatusCheck, error)
}

type statusCheckRepository struct {
	checks docstore.Collection
}

// NewStatusCheckRepository returns a document-store backed implementation.
func NewStatusCheckRepository(store docstore.Store) StatusCheckRepository {
	return &statusCheckRepository{checks: store.Collection(StatusChecksCollection)}
}

func (r *statusCheckRepository) Insert(ctx context.Context, check domain.StatusCheck) error {
	return r.checks.Insert(ctx, docstore.Document{
		"id":          check.ID,
		"client_name": check.ClientName,
		"timestamp":   docstore.FormatTimestamp(check.Timestamp),
	})
}

func (r *statusCheckRepository) List(ctx context.Context) ([]domain.StatusCheck, error) {
	docs, err := docstore.Collect(r.checks.Find(ctx, docstore.Query{Limit: DefaultListLimit}))
	if err != nil {
		return nil, err
	}
	checks := make([]domain.StatusCheck, 0, len(docs))
	for _, doc := range docs {
		ts, err := timeField(doc, "timestamp")
		if err != nil {
			return nil, err
		}
		checks = append(checks, domain.StatusCheck{
			ID:         stringField(doc, "id"),
			ClientName: stringField(doc, "client_name"),
			Timestamp:  ts,
		})
	}
	return checks, nil
}
