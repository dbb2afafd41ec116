package erp

import (
	"VoiceERP/pkg/erpnext"
	"encoding/json"
)

const (
	QueryKindGetList = "get_list"
	QueryKindGetDoc  = "get_doc"
)

type QueryRequest struct {
	Kind    string           `json:"kind" validate:"required,oneof=get_list get_doc"`
	Doctype string           `json:"doctype" validate:"required"`
	Name    string           `json:"name,omitempty"`
	Filters []erpnext.Filter `json:"filters,omitempty"`
	Fields  []string         `json:"fields,omitempty"`
}

type QueryResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

type CreateRequest struct {
	Doctype string                 `json:"doctype" validate:"required"`
	Doc     map[string]interface{} `json:"doc" validate:"required"`
}

type CreateResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Doc     json.RawMessage `json:"doc"`
}
