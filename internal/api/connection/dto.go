package connection

import "time"

type SaveConnectionRequest struct {
	URL       string `json:"url" validate:"required,url"`
	APIKey    string `json:"api_key" validate:"required"`
	APISecret string `json:"api_secret" validate:"required"`
	IsActive  bool   `json:"is_active"`
}

type TestConnectionRequest struct {
	URL       string `json:"url" validate:"required,url"`
	APIKey    string `json:"api_key" validate:"required"`
	APISecret string `json:"api_secret" validate:"required"`
}

type TestConnectionResponse struct {
	Success bool   `json:"success"`
	User    string `json:"user,omitempty"`
	Message string `json:"message,omitempty"`
}

// ConnectionResponse never carries the API secret back to clients.
type ConnectionResponse struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	URL           string    `json:"url"`
	APIKey        string    `json:"api_key"`
	IsActive      bool      `json:"is_active"`
	LastConnected time.Time `json:"last_connected"`
}
