package voice

import (
	"VoiceERP/internal/entity"
	"VoiceERP/pkg/nlp"
)

type ProcessCommandRequest struct {
	Command string `json:"command" validate:"required,min=1,max=500"`
}

// CommandResult is the outcome of one interpreted command. Conversational
// failures (missing slot, nothing found, not connected) are success results
// whose Response explains the problem; only backend faults carry the error
// status.
type CommandResult struct {
	ID         string               `json:"id"`
	Command    string               `json:"command"`
	Intent     nlp.Intent           `json:"intent"`
	Response   string               `json:"response"`
	Status     entity.CommandStatus `json:"status"`
	NavigateTo string               `json:"navigate_to,omitempty"`
}

type QuickCommandRequest struct {
	CommandText string `json:"command_text" validate:"required,min=1,max=200"`
	Icon        string `json:"icon"`
	SortOrder   int    `json:"sort_order"`
}

type TranscribeRequest struct {
	Language string `json:"language"`
}

type TranscribeResponse struct {
	Transcript string `json:"transcript"`
}

// StreamEvent is one inbound message on the voice websocket. The client
// relays its speech engine's lifecycle: start/stop requests, interim and
// final transcripts, the end of input, engine errors, or explicit typed
// submissions.
type StreamEvent struct {
	Type  string `json:"type"` // start | stop | transcript | end | error | submit
	Text  string `json:"text,omitempty"`
	Final bool   `json:"final,omitempty"`
	Code  string `json:"code,omitempty"`
}

// StreamPush is one outbound message: session state changes, results, and
// listen/stop/speak instructions for the client's speech engine.
type StreamPush struct {
	Type       string         `json:"type"` // state | result | listen | stop | speak | error
	State      string         `json:"state,omitempty"`
	Text       string         `json:"text,omitempty"`
	Result     *CommandResult `json:"result,omitempty"`
	Message    string         `json:"message,omitempty"`
	NavigateTo string         `json:"navigate_to,omitempty"`
}
