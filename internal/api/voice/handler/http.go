package voiceHandler

import (
	voiceService "VoiceERP/internal/api/voice/service"
	"VoiceERP/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"
)

type VoiceHandler struct {
	log          *logrus.Logger
	validator    *validator.Validate
	middleware   middleware.Middleware
	voiceService voiceService.IVoiceService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	vs voiceService.IVoiceService,
) *VoiceHandler {
	return &VoiceHandler{
		log:          log,
		validator:    validate,
		middleware:   middleware,
		voiceService: vs,
	}
}

func (h *VoiceHandler) Start(srv fiber.Router) {
	voice := srv.Group("/voice")

	voice.Use(h.middleware.NewSessionMiddleware)

	// Text command processing
	voice.Post("/command", h.ProcessCommand)
	voice.Post("/transcribe", h.Transcribe)

	// Command history
	voice.Get("/history", h.GetHistory)
	voice.Get("/history/:id", h.GetCommand)

	// Quick command shortcuts
	voice.Get("/quick-commands", h.ListQuickCommands)
	voice.Post("/quick-commands", h.CreateQuickCommand)
	voice.Put("/quick-commands/:id", h.UpdateQuickCommand)
	voice.Delete("/quick-commands/:id", h.DeleteQuickCommand)

	// Live voice session over websocket
	voice.Use("/stream", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	voice.Get("/stream", websocket.New(h.Stream))
}
