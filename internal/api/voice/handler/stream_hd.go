package voiceHandler

import (
	"VoiceERP/internal/api/voice"
	"VoiceERP/internal/entity"
	jwtPkg "VoiceERP/pkg/jwt"
	"VoiceERP/pkg/log"
	"VoiceERP/pkg/speech"
	"context"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// wsRecognizer relays recognizer control to the client: the browser runs the
// actual speech engine and streams transcripts back over the socket.
type wsRecognizer struct {
	send func(voice.StreamPush)
}

func (r *wsRecognizer) Start() error {
	r.send(voice.StreamPush{Type: "listen"})
	return nil
}

func (r *wsRecognizer) Stop() {
	r.send(voice.StreamPush{Type: "stop"})
}

// wsSynthesizer asks the client to speak a response with its own TTS engine.
type wsSynthesizer struct {
	send func(voice.StreamPush)
}

func (s *wsSynthesizer) Speak(_ context.Context, text string) error {
	s.send(voice.StreamPush{Type: "speak", Text: text})
	return nil
}

// Stream runs one live voice session over a websocket. Inbound events drive
// the session state machine; pushes flow back on the same connection,
// serialized by a write mutex since session callbacks fire from several
// goroutines.
func (h *VoiceHandler) Stream(conn *websocket.Conn) {
	defer conn.Close()

	userData, ok := conn.Locals(jwtPkg.UserLoginDataKey).(entity.UserLoginData)
	if !ok || userData.ID == "" {
		_ = conn.WriteJSON(voice.StreamPush{Type: "error", Message: "Unauthorized"})
		return
	}

	sessionID := uuid.NewString()

	h.log.WithFields(log.Fields{
		"session_id": sessionID,
		"user_id":    userData.ID,
	}).Info("Voice session connected")

	var writeMu sync.Mutex
	send := func(push voice.StreamPush) {
		writeMu.Lock()
		defer writeMu.Unlock()
		if err := conn.WriteJSON(push); err != nil {
			h.log.WithFields(log.Fields{
				"session_id": sessionID,
				"user_id":    userData.ID,
				"error":      err.Error(),
			}).Debug("Websocket write failed")
		}
	}

	openCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	session, err := h.voiceService.OpenSession(openCtx, userData.ID,
		&wsRecognizer{send: send}, &wsSynthesizer{send: send}, send)
	cancel()
	if err != nil {
		h.log.WithFields(log.Fields{
			"session_id": sessionID,
			"user_id":    userData.ID,
			"error":      err.Error(),
		}).Error("Failed to open voice session")
		_ = conn.WriteJSON(voice.StreamPush{Type: "error", Message: "Failed to open voice session"})
		return
	}
	defer session.Close()

	send(voice.StreamPush{Type: "state", State: string(session.State())})

	for {
		var event voice.StreamEvent
		if err := conn.ReadJSON(&event); err != nil {
			return
		}

		switch event.Type {
		case "start":
			if err := session.StartListening(); err != nil {
				send(voice.StreamPush{Type: "error", Message: err.Error()})
			}
		case "stop":
			session.StopListening()
		case "transcript":
			session.HandleTranscript(event.Text, event.Final)
		case "end":
			session.HandleEnd()
		case "error":
			session.HandleError(speech.ErrorCode(event.Code), event.Text)
		case "submit":
			if err := session.Submit(event.Text); err != nil {
				send(voice.StreamPush{Type: "error", Message: err.Error()})
			}
		default:
			send(voice.StreamPush{Type: "error", Message: "unknown event type"})
		}
	}
}
