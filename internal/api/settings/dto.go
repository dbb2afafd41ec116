package settings

import "time"

// UpdateSettingsRequest carries partial updates. Pointer fields distinguish
// "leave unchanged" from an explicit zero value.
type UpdateSettingsRequest struct {
	WakeWord            *string `json:"wake_word,omitempty" validate:"omitempty,min=1,max=50"`
	Sensitivity         *int    `json:"sensitivity,omitempty" validate:"omitempty,min=1,max=10"`
	VoiceResponse       *bool   `json:"voice_response,omitempty"`
	ContinuousListening *bool   `json:"continuous_listening,omitempty"`
	VoiceLanguage       *string `json:"voice_language,omitempty" validate:"omitempty,min=2,max=16"`
}

type SettingsResponse struct {
	ID                  string    `json:"id"`
	UserID              string    `json:"user_id"`
	WakeWord            string    `json:"wake_word"`
	Sensitivity         int       `json:"sensitivity"`
	VoiceResponse       bool      `json:"voice_response"`
	ContinuousListening bool      `json:"continuous_listening"`
	VoiceLanguage       string    `json:"voice_language"`
	UpdatedAt           time.Time `json:"updated_at"`
}
