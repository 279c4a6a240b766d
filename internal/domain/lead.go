package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Unknown is the sentinel substituted when derived data is unavailable.
const Unknown = "Unknown"

// LeadStatus enumerates the admin workflow states of a lead.
type LeadStatus string

const (
	LeadStatusNew        LeadStatus = "new"
	LeadStatusInProgress LeadStatus = "in_progress"
	LeadStatusCompleted  LeadStatus = "completed"
)

// Valid reports whether s is one of the known statuses.
func (s LeadStatus) Valid() bool {
	switch s {
	case LeadStatusNew, LeadStatusInProgress, LeadStatusCompleted:
		return true
	}
	return false
}

// Lead is a persisted quote request. ID and CreatedAt are assigned once by NewLead.
type Lead struct {
	ID        string
	Name      string
	Email     string
	Phone     *string
	Message   string
	IPAddress *string
	Country   *string
	UserAgent *string
	CreatedAt time.Time
	Status    LeadStatus
}

// LeadInput carries the validated and enriched fields of a new lead.
type LeadInput struct {
	Name      string
	Email     string
	Phone     *string
	Message   string
	IPAddress *string
	Country   string
	UserAgent string
}

// NewLead builds a lead with a fresh identifier, UTC creation time and status new.
// Country and user agent fall back to Unknown here so readers never have to.
func NewLead(in LeadInput, now time.Time) Lead {
	return Lead{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Email:     in.Email,
		Phone:     OptionalString(derefString(in.Phone)),
		Message:   in.Message,
		IPAddress: OptionalString(derefString(in.IPAddress)),
		Country:   StringOrUnknown(in.Country),
		UserAgent: StringOrUnknown(in.UserAgent),
		CreatedAt: now.UTC().Truncate(time.Microsecond),
		Status:    LeadStatusNew,
	}
}

// OptionalString returns nil for blank input.
func OptionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// StringOrUnknown returns a pointer to s, or to Unknown when s is blank.
func StringOrUnknown(s string) *string {
	if p := OptionalString(s); p != nil {
		return p
	}
	v := Unknown
	return &v
}

func derefString(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
