package voiceService

import (
	"VoiceERP/internal/api/voice"
	"VoiceERP/internal/entity"
	"VoiceERP/pkg/speech"
	"context"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

type SessionState string

const (
	StateInactive   SessionState = "inactive"
	StateListening  SessionState = "listening"
	StateProcessing SessionState = "processing"
	StateResult     SessionState = "result"
)

const processTimeout = 30 * time.Second

// Session is the per-client voice state machine:
//
//	inactive -> listening -> processing -> result -> inactive (or listening
//	again in continuous mode).
//
// All transitions happen under mu; command interpretation runs on its own
// goroutine and re-acquires the lock to publish its result. A generation
// counter discards results that finish after the session moved on.
type Session struct {
	mu  sync.Mutex
	svc *voiceService

	userID     string
	state      SessionState
	transcript string
	generation uint64
	closed     bool

	settings    entity.VoiceSettings
	recognizer  speech.IRecognizer
	synthesizer speech.ISynthesizer
	notify      func(voice.StreamPush)

	resultDelay time.Duration
	resetTimer  *time.Timer
}

// OpenSession resolves the user's voice settings and hands back an idle
// session bound to the given speech endpoints.
func (s *voiceService) OpenSession(ctx context.Context, userID string, recognizer speech.IRecognizer, synthesizer speech.ISynthesizer, notify func(voice.StreamPush)) (*Session, error) {
	resolved, err := s.settings.ResolveSettings(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &Session{
		svc:         s,
		userID:      userID,
		state:       StateInactive,
		settings:    resolved,
		recognizer:  recognizer,
		synthesizer: synthesizer,
		notify:      notify,
		resultDelay: s.resultDelay,
	}, nil
}

func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// StartListening arms the recognizer. Starting an already listening session
// is a no-op; starting while a command is processing is rejected.
func (s *Session) StartListening() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return voice.ErrSessionClosed
	}

	switch s.state {
	case StateListening:
		return nil
	case StateProcessing:
		return voice.ErrCommandInFlight
	}

	s.cancelResetLocked()
	s.transcript = ""
	s.setStateLocked(StateListening)

	return s.recognizer.Start()
}

// StopListening tells the recognizer to stop; the transcript collected so
// far is processed when the engine reports end of input.
func (s *Session) StopListening() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.state != StateListening {
		return
	}

	s.recognizer.Stop()
}

// HandleTranscript feeds recognized speech into the session. While idle in
// continuous mode, hearing the wake word rearms the session with a fresh
// transcript.
func (s *Session) HandleTranscript(text string, final bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	switch s.state {
	case StateInactive:
		if !s.settings.ContinuousListening {
			return
		}
		wakeWord := strings.ToLower(s.settings.WakeWord)
		if wakeWord != "" && strings.Contains(strings.ToLower(text), wakeWord) {
			s.transcript = ""
			s.setStateLocked(StateListening)
		}
	case StateListening:
		s.transcript = text
		s.push(voice.StreamPush{Type: "transcript", Text: text})
	}
}

// HandleEnd fires when the speech engine stops delivering input. An empty
// transcript drops back to inactive; otherwise interpretation starts.
func (s *Session) HandleEnd() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.state != StateListening {
		return
	}

	command := strings.TrimSpace(s.transcript)
	if command == "" {
		s.setStateLocked(StateInactive)
		return
	}

	s.setStateLocked(StateProcessing)
	generation := s.generation

	go s.process(command, generation)
}

// Submit short-circuits the recognizer for typed commands: it runs the text
// through the same processing path a final transcript would take.
func (s *Session) Submit(command string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return voice.ErrSessionClosed
	}
	if s.state == StateProcessing {
		return voice.ErrCommandInFlight
	}

	command = strings.TrimSpace(command)
	if command == "" {
		return voice.ErrEmptyCommand
	}

	s.cancelResetLocked()
	s.setStateLocked(StateProcessing)
	generation := s.generation

	go s.process(command, generation)
	return nil
}

// HandleError aborts the session with a spoken explanation for the failure.
func (s *Session) HandleError(code speech.ErrorCode, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	s.svc.log.WithFields(logrus.Fields{
		"user_id": s.userID,
		"code":    string(code),
		"message": message,
	}).Warn("Speech recognition error")

	s.generation++
	s.cancelResetLocked()
	s.recognizer.Stop()
	s.push(voice.StreamPush{Type: "error", Message: errorMessage(code)})
	s.setStateLocked(StateInactive)
}

// Close tears the session down; in-flight results are discarded.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	s.closed = true
	s.generation++
	s.cancelResetLocked()
	s.recognizer.Stop()
}

func (s *Session) process(command string, generation uint64) {
	ctx, cancel := context.WithTimeout(context.Background(), processTimeout)
	defer cancel()

	result, err := s.svc.ProcessCommand(ctx, s.userID, command)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.generation != generation || s.state != StateProcessing {
		return
	}

	if err != nil {
		s.push(voice.StreamPush{Type: "error", Message: err.Error()})
		s.setStateLocked(StateInactive)
		return
	}

	s.setStateLocked(StateResult)
	s.push(voice.StreamPush{
		Type:       "result",
		Result:     &result,
		NavigateTo: result.NavigateTo,
	})

	if s.settings.VoiceResponse && s.synthesizer != nil {
		text := result.Response
		go func() {
			speakCtx, speakCancel := context.WithTimeout(context.Background(), processTimeout)
			defer speakCancel()
			if err := s.synthesizer.Speak(speakCtx, text); err != nil {
				s.svc.log.WithFields(logrus.Fields{
					"user_id": s.userID,
					"error":   err.Error(),
				}).Warn("Voice response synthesis failed")
			}
		}()
	}

	s.resetTimer = time.AfterFunc(s.resultDelay, s.finishResult)
}

// finishResult leaves the result display window: continuous sessions rearm
// the recognizer, others go idle.
func (s *Session) finishResult() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.state != StateResult {
		return
	}

	if s.settings.ContinuousListening {
		s.transcript = ""
		s.setStateLocked(StateListening)
		if err := s.recognizer.Start(); err != nil {
			s.svc.log.WithFields(logrus.Fields{
				"user_id": s.userID,
				"error":   err.Error(),
			}).Warn("Failed to rearm recognizer")
			s.setStateLocked(StateInactive)
		}
		return
	}

	s.setStateLocked(StateInactive)
}

func (s *Session) setStateLocked(state SessionState) {
	s.state = state
	s.push(voice.StreamPush{Type: "state", State: string(state)})
}

func (s *Session) cancelResetLocked() {
	if s.resetTimer != nil {
		s.resetTimer.Stop()
		s.resetTimer = nil
	}
}

func (s *Session) push(event voice.StreamPush) {
	if s.notify != nil {
		s.notify(event)
	}
}

func errorMessage(code speech.ErrorCode) string {
	switch code {
	case speech.ErrorNoSpeech:
		return "No speech was detected. Please try again."
	case speech.ErrorAudioCapture:
		return "No microphone was found. Please check your microphone settings."
	case speech.ErrorNotAllowed:
		return "Microphone access was denied. Please allow microphone access to use voice commands."
	case speech.ErrorNetwork:
		return "A network error interrupted speech recognition. Please try again."
	default:
		return "Speech recognition is not available. Please type your command instead."
	}
}
