package domain

import (
	"time"

	"github.com/google/uuid"
)

// StatusCheck records a client ping.
type StatusCheck struct {
	ID         string
	ClientName string
	Timestamp  time.Time
}

// NewStatusCheck stamps a ping from clientName.
func NewStatusCheck(clientName string, now time.Time) StatusCheck {
	return StatusCheck{ID: uuid.NewString(), ClientName: clientName, Timestamp: now.UTC().Truncate(time.Microsecond)}
}
