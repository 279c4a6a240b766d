// Package docstore is a small key-document store over interchangeable engines.
//
// Documents are JSON-shaped maps keyed by an application-generated "id" field.
// Every backend reports a missing document as ErrNotFound and any engine failure
// as an error matching ErrUnavailable.
package docstore

import (
	"context"
	"errors"
	"iter"
)

// IDField is the document key every collection indexes on.
const IDField = "id"

var (
	// ErrNotFound is returned when an update or delete matched no document.
	ErrNotFound = errors.New("docstore: document not found")
	// ErrUnavailable marks failures of the underlying engine.
	ErrUnavailable = errors.New("docstore: storage unavailable")
	// ErrInvalidDocument is returned for documents without a string id.
	ErrInvalidDocument = errors.New("docstore: document id missing")
)

// Document is a single stored record.
type Document map[string]any

// ID returns the document key.
func (d Document) ID() (string, bool) {
	id, ok := d[IDField].(string)
	return id, ok && id != ""
}

// Query narrows and orders a Find.
type Query struct {
	// Filter matches top-level fields by their string value.
	Filter    map[string]string
	SortField string
	SortDesc  bool
	// Limit caps the number of documents; zero or less means no cap.
	Limit int
}

// Collection is a named set of documents.
type Collection interface {
	Insert(ctx context.Context, doc Document) error
	// Find yields documents lazily; iteration stops at the first error.
	Find(ctx context.Context, q Query) iter.Seq2[Document, error]
	// SetFields merges fields into the document with the given id.
	SetFields(ctx context.Context, id string, fields Document) error
	Delete(ctx context.Context, id string) error
}

// Store hands out collections over one engine connection.
type Store interface {
	Collection(name string) Collection
	Ping(ctx context.Context) error
}

type engineError struct {
	op  string
	err error
}

func (e *engineError) Error() string {
	return "docstore: " + e.op + ": " + e.err.Error()
}

func (e *engineError) Unwrap() []error {
	return []error{ErrUnavailable, e.err}
}

func unavailable(op string, err error) error {
	if err == nil {
		return nil
	}
	return &engineError{op: op, err: err}
}

// Collect drains seq into a slice.
func Collect[T any](seq iter.Seq2[T, error]) ([]T, error) {
	var out []T
	for item, err := range seq {
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

func checkFields(fields Document) error {
	if _, ok := fields[IDField]; ok {
		return errors.New("docstore: id is immutable")
	}
	return nil
}
