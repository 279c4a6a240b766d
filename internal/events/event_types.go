package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/leads-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventQuoteCreated EventType = "quote_created"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	EntityID  string      `json:"entity_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// QuoteCreatedPayload carries the persisted lead.
type QuoteCreatedPayload struct {
	Lead domain.Lead `json:"lead"`
}

// NewQuoteCreated builds the event published after a lead is stored.
func NewQuoteCreated(lead domain.Lead) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      EventQuoteCreated,
		EntityID:  lead.ID,
		Timestamp: time.Now().UTC(),
		Payload:   QuoteCreatedPayload{Lead: lead},
	}
}
