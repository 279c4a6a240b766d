package dto

// LoginRequest carries admin credentials in the body.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse reports a successful credential check.
type LoginResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	Username string `json:"username"`
}

// StatusUpdateRequest changes a lead's workflow status.
type StatusUpdateRequest struct {
	Status string `json:"status"`
}

// MessageResponse is the generic success envelope.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
