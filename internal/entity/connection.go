package entity

import "time"

// ErpConnection holds the credentials for one user's ERPNext instance. The
// interpreter reads it before dispatching any backend call; commands issued
// without an active connection resolve to a fixed "not connected" response.
type ErpConnection struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	URL           string    `json:"url"`
	APIKey        string    `json:"api_key"`
	APISecret     string    `json:"api_secret"`
	IsActive      bool      `json:"is_active"`
	LastConnected time.Time `json:"last_connected"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
