package dto

import "time"

// ProjectRequest creates or replaces a project.
type ProjectRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tech        []string `json:"tech"`
	Image       string   `json:"image"`
	Link        *string  `json:"link"`
}

// Project is the public representation of a portfolio entry.
type Project struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Tech        []string  `json:"tech"`
	Image       string    `json:"image"`
	Link        *string   `json:"link"`
	CreatedAt   time.Time `json:"created_at"`
}

// ProjectResponse wraps a created project.
type ProjectResponse struct {
	Success bool    `json:"success"`
	Project Project `json:"project"`
}
