package voiceService

import (
	"VoiceERP/internal/api/voice"
	"VoiceERP/pkg/speech"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pushCollector struct {
	mu     sync.Mutex
	pushes []voice.StreamPush
}

func (p *pushCollector) collect(push voice.StreamPush) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pushes = append(p.pushes, push)
}

func (p *pushCollector) lastResult() *voice.CommandResult {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := len(p.pushes) - 1; i >= 0; i-- {
		if p.pushes[i].Type == "result" {
			return p.pushes[i].Result
		}
	}
	return nil
}

func (p *pushCollector) lastError() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := len(p.pushes) - 1; i >= 0; i-- {
		if p.pushes[i].Type == "error" {
			return p.pushes[i].Message
		}
	}
	return ""
}

func newTestSession(t *testing.T, f *fixture) (*Session, *speech.ScriptedRecognizer, *speech.RecordingSynthesizer, *pushCollector) {
	t.Helper()

	recognizer := speech.NewScriptedRecognizer(speech.Events{})
	synthesizer := &speech.RecordingSynthesizer{}
	collector := &pushCollector{}

	session, err := f.svc.OpenSession(context.Background(), testUserID, recognizer, synthesizer, collector.collect)
	require.NoError(t, err)
	t.Cleanup(session.Close)

	return session, recognizer, synthesizer, collector
}

func TestSessionStartListening(t *testing.T) {
	f := newFixture(activeTestConnection(), &fakeErpClient{}, WithResultDelay(10*time.Millisecond))
	session, recognizer, _, _ := newTestSession(t, f)

	require.NoError(t, session.StartListening())
	assert.Equal(t, StateListening, session.State())
	assert.True(t, recognizer.Listening())

	// A second start while listening is a no-op, not an error.
	require.NoError(t, session.StartListening())
	assert.Equal(t, StateListening, session.State())
}

func TestSessionEmptyTranscriptGoesInactive(t *testing.T) {
	f := newFixture(activeTestConnection(), &fakeErpClient{}, WithResultDelay(10*time.Millisecond))
	session, _, _, _ := newTestSession(t, f)

	require.NoError(t, session.StartListening())
	session.HandleEnd()

	assert.Equal(t, StateInactive, session.State())
}

func TestSessionFullCommandFlow(t *testing.T) {
	f := newFixture(activeTestConnection(), &fakeErpClient{}, WithResultDelay(20*time.Millisecond))
	session, _, synthesizer, collector := newTestSession(t, f)

	require.NoError(t, session.StartListening())
	session.HandleTranscript("help", true)
	session.HandleEnd()

	require.Eventually(t, func() bool {
		return collector.lastResult() != nil
	}, time.Second, 5*time.Millisecond)

	result := collector.lastResult()
	assert.Equal(t, msgHelp, result.Response)

	// VoiceResponse defaults on, so the result is spoken.
	require.Eventually(t, func() bool {
		return synthesizer.Last() == msgHelp
	}, time.Second, 5*time.Millisecond)

	// After the display window a non-continuous session goes idle.
	require.Eventually(t, func() bool {
		return session.State() == StateInactive
	}, time.Second, 5*time.Millisecond)
}

func TestSessionRejectsStartWhileProcessing(t *testing.T) {
	erp := &fakeErpClient{delay: 200 * time.Millisecond}
	f := newFixture(activeTestConnection(), erp, WithResultDelay(10*time.Millisecond))
	session, _, _, _ := newTestSession(t, f)

	require.NoError(t, session.StartListening())
	session.HandleTranscript("show open orders", true)
	session.HandleEnd()

	require.Equal(t, StateProcessing, session.State())
	assert.ErrorIs(t, session.StartListening(), voice.ErrCommandInFlight)
}

func TestSessionWakeWordRearm(t *testing.T) {
	f := newFixture(activeTestConnection(), &fakeErpClient{}, WithResultDelay(10*time.Millisecond))
	f.settings.settings.ContinuousListening = true
	session, _, _, _ := newTestSession(t, f)

	assert.Equal(t, StateInactive, session.State())

	// Unrelated chatter while idle stays idle.
	session.HandleTranscript("just talking to myself", false)
	assert.Equal(t, StateInactive, session.State())

	// Hearing the wake word rearms with a fresh transcript.
	session.HandleTranscript("okay hey erp listen up", false)
	assert.Equal(t, StateListening, session.State())

	session.HandleEnd()
	assert.Equal(t, StateInactive, session.State(), "wake word itself must not be processed as a command")
}

func TestSessionContinuousModeRearmsAfterResult(t *testing.T) {
	f := newFixture(activeTestConnection(), &fakeErpClient{}, WithResultDelay(10*time.Millisecond))
	f.settings.settings.ContinuousListening = true
	session, recognizer, _, collector := newTestSession(t, f)

	require.NoError(t, session.StartListening())
	session.HandleTranscript("help", true)
	session.HandleEnd()

	require.Eventually(t, func() bool {
		return collector.lastResult() != nil
	}, time.Second, 5*time.Millisecond)

	require.Eventually(t, func() bool {
		return session.State() == StateListening
	}, time.Second, 5*time.Millisecond)
	assert.True(t, recognizer.Listening())
}

func TestSessionSubmitTypedCommand(t *testing.T) {
	f := newFixture(activeTestConnection(), &fakeErpClient{}, WithResultDelay(10*time.Millisecond))
	session, _, _, collector := newTestSession(t, f)

	require.NoError(t, session.Submit("help"))

	require.Eventually(t, func() bool {
		return collector.lastResult() != nil
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, msgHelp, collector.lastResult().Response)

	assert.ErrorIs(t, session.Submit("   "), voice.ErrEmptyCommand)
}

func TestSessionSpeechErrorAborts(t *testing.T) {
	f := newFixture(activeTestConnection(), &fakeErpClient{}, WithResultDelay(10*time.Millisecond))
	session, _, _, collector := newTestSession(t, f)

	require.NoError(t, session.StartListening())
	session.HandleError(speech.ErrorNotAllowed, "permission denied")

	assert.Equal(t, StateInactive, session.State())
	assert.Equal(t, "Microphone access was denied. Please allow microphone access to use voice commands.", collector.lastError())
}

func TestSessionCloseDiscardsInFlightResult(t *testing.T) {
	erp := &fakeErpClient{delay: 100 * time.Millisecond}
	f := newFixture(activeTestConnection(), erp, WithResultDelay(10*time.Millisecond))
	session, _, _, collector := newTestSession(t, f)

	require.NoError(t, session.StartListening())
	session.HandleTranscript("show open orders", true)
	session.HandleEnd()
	session.Close()

	time.Sleep(200 * time.Millisecond)
	assert.Nil(t, collector.lastResult(), "a closed session must not publish results")
}

func TestSessionDrivenByRecognizerEvents(t *testing.T) {
	f := newFixture(activeTestConnection(), &fakeErpClient{}, WithResultDelay(10*time.Millisecond))

	var (
		mu      sync.Mutex
		session *Session
	)
	current := func() *Session {
		mu.Lock()
		defer mu.Unlock()
		return session
	}

	recognizer := speech.NewScriptedRecognizer(speech.Events{
		OnResult: func(transcript string, final bool) { current().HandleTranscript(transcript, final) },
		OnEnd:    func() { current().HandleEnd() },
		OnError:  func(code speech.ErrorCode, message string) { current().HandleError(code, message) },
	})
	synthesizer := &speech.RecordingSynthesizer{}
	collector := &pushCollector{}

	opened, err := f.svc.OpenSession(context.Background(), testUserID, recognizer, synthesizer, collector.collect)
	require.NoError(t, err)
	t.Cleanup(opened.Close)
	mu.Lock()
	session = opened
	mu.Unlock()

	require.NoError(t, opened.StartListening())
	recognizer.EmitResult("help", true)
	recognizer.EmitEnd()

	require.Eventually(t, func() bool {
		return collector.lastResult() != nil
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, msgHelp, collector.lastResult().Response)

	require.Eventually(t, func() bool {
		return opened.State() == StateInactive
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, opened.StartListening())
	recognizer.EmitError(speech.ErrorNetwork, "connection dropped")

	assert.Equal(t, StateInactive, opened.State())
	assert.False(t, recognizer.Listening())
	assert.Equal(t, "A network error interrupted speech recognition. Please try again.", collector.lastError())
}
