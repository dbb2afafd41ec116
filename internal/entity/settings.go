package entity

import "time"

type VoiceSettings struct {
	ID                  string    `json:"id"`
	UserID              string    `json:"user_id"`
	WakeWord            string    `json:"wake_word"`
	Sensitivity         int       `json:"sensitivity"`
	VoiceResponse       bool      `json:"voice_response"`
	ContinuousListening bool      `json:"continuous_listening"`
	VoiceLanguage       string    `json:"voice_language"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// DefaultVoiceSettings are applied when a user has never saved settings.
func DefaultVoiceSettings(userID string) VoiceSettings {
	return VoiceSettings{
		UserID:              userID,
		WakeWord:            "Hey ERP",
		Sensitivity:         7,
		VoiceResponse:       true,
		ContinuousListening: false,
		VoiceLanguage:       "en-US",
	}
}
