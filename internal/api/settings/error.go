package settings

import "VoiceERP/pkg/response"

var (
	ErrSettingsNotFound   = response.NewError(404, "voice settings not found")
	ErrInvalidSensitivity = response.NewError(400, "sensitivity must be between 1 and 10")
)
