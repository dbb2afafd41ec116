package connectionHandler

import (
	connectionService "VoiceERP/internal/api/connection/service"
	"VoiceERP/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type ConnectionHandler struct {
	log               *logrus.Logger
	validator         *validator.Validate
	middleware        middleware.Middleware
	connectionService connectionService.IConnectionService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	cs connectionService.IConnectionService,
) *ConnectionHandler {
	return &ConnectionHandler{
		log:               log,
		validator:         validate,
		middleware:        middleware,
		connectionService: cs,
	}
}

func (h *ConnectionHandler) Start(srv fiber.Router) {
	conn := srv.Group("/connection")

	conn.Use(h.middleware.NewSessionMiddleware)

	conn.Get("/", h.GetConnection)
	conn.Post("/", h.SaveConnection)
	conn.Post("/test", h.TestConnection)
}
