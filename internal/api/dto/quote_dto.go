package dto

import "time"

// QuoteRequest is the public submission payload.
type QuoteRequest struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   *string `json:"phone"`
	Message string  `json:"message"`
}

// QuoteResponse acknowledges a stored submission.
type QuoteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	QuoteID string `json:"quote_id"`
}

// Lead is the admin view of a stored quote.
type Lead struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone"`
	Message   string    `json:"message"`
	IPAddress *string   `json:"ip_address"`
	Country   *string   `json:"country"`
	UserAgent *string   `json:"user_agent"`
	CreatedAt time.Time `json:"created_at"`
	Status    string    `json:"status"`
}
