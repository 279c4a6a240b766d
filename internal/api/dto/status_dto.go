package dto

import "time"

// StatusCheckRequest is a client ping.
type StatusCheckRequest struct {
	ClientName string `json:"client_name"`
}

// StatusCheck is a stored ping.
type StatusCheck struct {
	ID         string    `json:"id"`
	ClientName string    `json:"client_name"`
	Timestamp  time.Time `json:"timestamp"`
}
