package settingsHandler

import (
	settingsService "VoiceERP/internal/api/settings/service"
	"VoiceERP/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type SettingsHandler struct {
	log             *logrus.Logger
	validator       *validator.Validate
	middleware      middleware.Middleware
	settingsService settingsService.ISettingsService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	ss settingsService.ISettingsService,
) *SettingsHandler {
	return &SettingsHandler{
		log:             log,
		validator:       validate,
		middleware:      middleware,
		settingsService: ss,
	}
}

func (h *SettingsHandler) Start(srv fiber.Router) {
	st := srv.Group("/settings")

	st.Use(h.middleware.NewSessionMiddleware)

	st.Get("/", h.GetSettings)
	st.Patch("/", h.UpdateSettings)
}
