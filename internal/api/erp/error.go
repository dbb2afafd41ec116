package erp

import "VoiceERP/pkg/response"

var (
	ErrNotConnected     = response.NewError(400, "no active ERP connection")
	ErrUnknownQueryKind = response.NewError(400, "unknown query kind")
)
