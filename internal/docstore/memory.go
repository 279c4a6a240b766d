package docstore

import (
	"context"
	"iter"
	"maps"
	"sync"
)

// MemoryStore keeps documents in process. Values are stored as given, so
// timestamps stay structured.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]*memoryCollection
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string]*memoryCollection)}
}

// Collection returns the named collection, creating it on first use.
func (s *MemoryStore) Collection(name string) Collection {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.collections[name]
	if !ok {
		c = &memoryCollection{docs: make(map[string]Document)}
		s.collections[name] = c
	}
	return c
}

// Ping always succeeds.
func (s *MemoryStore) Ping(context.Context) error {
	return nil
}

type memoryCollection struct {
	mu    sync.RWMutex
	order []string
	docs  map[string]Document
}

func (c *memoryCollection) Insert(_ context.Context, doc Document) error {
	id, ok := doc.ID()
	if !ok {
		return ErrInvalidDocument
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.docs[id]; !exists {
		c.order = append(c.order, id)
	}
	c.docs[id] = maps.Clone(doc)
	return nil
}

func (c *memoryCollection) Find(ctx context.Context, q Query) iter.Seq2[Document, error] {
	return func(yield func(Document, error) bool) {
		if err := ctx.Err(); err != nil {
			yield(nil, unavailable("find", err))
			return
		}
		c.mu.RLock()
		snapshot := make([]Document, 0, len(c.order))
		for _, id := range c.order {
			snapshot = append(snapshot, maps.Clone(c.docs[id]))
		}
		c.mu.RUnlock()

		for _, doc := range applyQuery(snapshot, q) {
			if !yield(doc, nil) {
				return
			}
		}
	}
}

func (c *memoryCollection) SetFields(_ context.Context, id string, fields Document) error {
	if err := checkFields(fields); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	doc, ok := c.docs[id]
	if !ok {
		return ErrNotFound
	}
	updated := maps.Clone(doc)
	maps.Copy(updated, fields)
	c.docs[id] = updated
	return nil
}

func (c *memoryCollection) Delete(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.docs[id]; !ok {
		return ErrNotFound
	}
	delete(c.docs, id)
	for i, existing := range c.order {
		if existing == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return nil
}
