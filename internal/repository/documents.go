package repository

import (
	"fmt"
	"time"

	"github.com/spec-kit/leads-service/internal/docstore"
)

// Collection names.
const (
	QuotesCollection       = "quotes"
	ProjectsCollection     = "projects"
	StatusChecksCollection = "status_checks"
)

// DefaultListLimit caps listings that do not ask for less.
const DefaultListLimit = 1000

func listLimit(limit int) int {
	if limit <= 0 || limit > DefaultListLimit {
		return DefaultListLimit
	}
	return limit
}

func optionalValue(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

func stringField(doc docstore.Document, key string) string {
	switch v := doc[key].(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

func optionalField(doc docstore.Document, key string) *string {
	switch v := doc[key].(type) {
	case nil:
		return nil
	case *string:
		return v
	default:
		s := stringField(doc, key)
		return &s
	}
}

func stringsField(doc docstore.Document, key string) []string {
	switch v := doc[key].(type) {
	case []string:
		return append([]string{}, v...)
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, fmt.Sprint(item))
		}
		return out
	default:
		return []string{}
	}
}

func timeField(doc docstore.Document, key string) (time.Time, error) {
	t, err := docstore.RehydrateTime(doc[key])
	if err != nil {
		id, _ := doc.ID()
		return time.Time{}, fmt.Errorf("document %s field %s: %w", id, key, err)
	}
	return t, nil
}
