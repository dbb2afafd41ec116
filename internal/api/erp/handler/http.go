package erpHandler

import (
	erpService "VoiceERP/internal/api/erp/service"
	"VoiceERP/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type ErpHandler struct {
	log        *logrus.Logger
	validator  *validator.Validate
	middleware middleware.Middleware
	erpService erpService.IErpService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	es erpService.IErpService,
) *ErpHandler {
	return &ErpHandler{
		log:        log,
		validator:  validate,
		middleware: middleware,
		erpService: es,
	}
}

func (h *ErpHandler) Start(srv fiber.Router) {
	erpGroup := srv.Group("/erp")

	erpGroup.Use(h.middleware.NewSessionMiddleware)

	erpGroup.Post("/query", h.Query)
	erpGroup.Post("/create", h.Create)
}
