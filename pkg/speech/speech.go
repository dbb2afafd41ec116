package speech

import "context"

// ErrorCode mirrors the failure causes a speech engine can report. Each one
// maps to a distinct user-facing message when it aborts a session.
type ErrorCode string

const (
	ErrorNoSpeech     ErrorCode = "no-speech"
	ErrorAudioCapture ErrorCode = "audio-capture"
	ErrorNotAllowed   ErrorCode = "not-allowed"
	ErrorNetwork      ErrorCode = "network"
	ErrorUnsupported  ErrorCode = "unsupported"
)

// Events are the callbacks a recognizer fires while listening. OnResult is
// invoked for interim and final transcripts, OnEnd once when input stops,
// OnError for unrecoverable engine failures.
type Events struct {
	OnResult func(transcript string, final bool)
	OnEnd    func()
	OnError  func(code ErrorCode, message string)
}

// IRecognizer is the narrow surface the session state machine consumes. The
// concrete engine lives on the client (browser speech APIs relayed over the
// transcript stream) or server-side via the OpenAI adapter.
type IRecognizer interface {
	Start() error
	Stop()
}

type ISynthesizer interface {
	Speak(ctx context.Context, text string) error
}
