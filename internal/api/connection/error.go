package connection

import "VoiceERP/pkg/response"

var (
	ErrConnectionNotFound = response.NewError(404, "ERP connection not found")
	ErrConnectionInactive = response.NewError(400, "ERP connection is not active")
	ErrConnectionFailed   = response.NewError(400, "failed to connect to ERPNext API")
)
