package speech

import (
	"context"
	"sync"
)

// ScriptedRecognizer is a deterministic recognizer for tests and local runs.
// Tests drive it by calling the Emit methods; events are delivered
// synchronously on the caller's goroutine.
type ScriptedRecognizer struct {
	mu      sync.Mutex
	events  Events
	started bool
}

func NewScriptedRecognizer(events Events) *ScriptedRecognizer {
	return &ScriptedRecognizer{events: events}
}

func (r *ScriptedRecognizer) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.started = true
	return nil
}

func (r *ScriptedRecognizer) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.started = false
}

func (r *ScriptedRecognizer) Listening() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.started
}

func (r *ScriptedRecognizer) EmitResult(transcript string, final bool) {
	if r.events.OnResult != nil {
		r.events.OnResult(transcript, final)
	}
}

func (r *ScriptedRecognizer) EmitEnd() {
	if r.events.OnEnd != nil {
		r.events.OnEnd()
	}
}

func (r *ScriptedRecognizer) EmitError(code ErrorCode, message string) {
	if r.events.OnError != nil {
		r.events.OnError(code, message)
	}
}

// RecordingSynthesizer captures spoken responses instead of producing audio.
type RecordingSynthesizer struct {
	mu     sync.Mutex
	Spoken []string
}

func (s *RecordingSynthesizer) Speak(_ context.Context, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Spoken = append(s.Spoken, text)
	return nil
}

func (s *RecordingSynthesizer) Last() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.Spoken) == 0 {
		return ""
	}
	return s.Spoken[len(s.Spoken)-1]
}
