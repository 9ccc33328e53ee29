package models

type ErrorResponse struct {
	Error            string       `json:"error"`
	Message          string       `json:"message,omitempty"`
	ValidationIssues []FieldIssue `json:"validationIssues,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type OrderStatusResponse struct {
	ID     string      `json:"id"`
	Status OrderStatus `json:"status"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
