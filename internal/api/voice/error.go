package voice

import "VoiceERP/pkg/response"

var (
	ErrCommandInFlight      = response.NewError(409, "a command is already being processed")
	ErrEmptyCommand         = response.NewError(400, "command text is required")
	ErrCommandNotFound      = response.NewError(404, "command not found")
	ErrQuickCommandNotFound = response.NewError(404, "quick command not found")
	ErrInvalidAudioFile     = response.NewError(400, "invalid audio file")
	ErrTranscriptionFail    = response.NewError(500, "failed to transcribe audio")
	ErrSessionClosed        = response.NewError(410, "voice session closed")
)
