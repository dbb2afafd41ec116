package entity

import "time"

type CommandStatus string

const (
	CommandStatusPending CommandStatus = "pending"
	CommandStatusSuccess CommandStatus = "success"
	CommandStatusError   CommandStatus = "error"
)

// CommandHistory is the append-only log of processed voice commands. A record
// is created with status pending and updated exactly once to its terminal
// status; it is never deleted by the interpreter.
type CommandHistory struct {
	ID        string                 `json:"id"`
	UserID    string                 `json:"user_id"`
	Command   string                 `json:"command"`
	Response  string                 `json:"response"`
	Status    CommandStatus          `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Metadata  map[string]interface{} `json:"metadata"`
}

type QuickCommand struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	CommandText string    `json:"command_text"`
	Icon        string    `json:"icon"`
	SortOrder   int       `json:"sort_order"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
