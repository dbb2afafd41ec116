package config

import (
	"VoiceERP/database/postgres"
	connectionHandler "VoiceERP/internal/api/connection/handler"
	connectionRepository "VoiceERP/internal/api/connection/repository"
	connectionService "VoiceERP/internal/api/connection/service"
	erpHandler "VoiceERP/internal/api/erp/handler"
	erpService "VoiceERP/internal/api/erp/service"
	settingsHandler "VoiceERP/internal/api/settings/handler"
	settingsRepository "VoiceERP/internal/api/settings/repository"
	settingsService "VoiceERP/internal/api/settings/service"
	voiceHandler "VoiceERP/internal/api/voice/handler"
	voiceRepository "VoiceERP/internal/api/voice/repository"
	voiceService "VoiceERP/internal/api/voice/service"
	"VoiceERP/internal/bootstrap"
	"VoiceERP/internal/entity"
	"VoiceERP/internal/middleware"
	"VoiceERP/pkg/bcrypt"
	"VoiceERP/pkg/erpnext"
	"VoiceERP/pkg/redis"
	"VoiceERP/pkg/speech"
	"VoiceERP/pkg/utils"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type ServerOption func(*Server) error

type Server struct {
	engine      *fiber.App
	db          *sqlx.DB
	log         *logrus.Logger
	middleware  middleware.Middleware
	validator   *validator.Validate
	utils       utils.IUtils
	bcryptUtils bcrypt.IBcrypt
	redisServer redis.IRedis
	transcriber speech.ITranscriber
	erpFactory  func(baseURL, apiKey, apiSecret string) erpnext.IClient
	defaultUser entity.UserLoginData
	handlers    []handler
}

type handler interface {
	Start(srv fiber.Router)
}

func NewServer(options ...ServerOption) (*Server, error) {
	server := &Server{}

	for _, option := range options {
		if err := option(server); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if server.engine == nil {
		return nil, fmt.Errorf("fiber app is required")
	}
	if server.log == nil {
		return nil, fmt.Errorf("logger is required")
	}

	return server, nil
}

func WithFiber(fiberApp *fiber.App) ServerOption {
	return func(s *Server) error {
		s.engine = fiberApp
		return nil
	}
}

func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) error {
		s.log = logger
		return nil
	}
}

func WithValidator(validator *validator.Validate) ServerOption {
	return func(s *Server) error {
		s.validator = validator
		return nil
	}
}

func WithDatabase() ServerOption {
	return func(s *Server) error {
		db, err := postgres.New()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to connect to database: %v", err)
			}
			return fmt.Errorf("failed to create database connection: %w", err)
		}
		s.db = db
		return nil
	}
}

func WithRedisServer(redisServer redis.IRedis) ServerOption {
	return func(s *Server) error {
		s.redisServer = redisServer
		return nil
	}
}

func WithUtils() ServerOption {
	return func(s *Server) error {
		s.utils = utils.New()
		return nil
	}
}

func WithBcryptUtils() ServerOption {
	return func(s *Server) error {
		s.bcryptUtils = bcrypt.New()
		return nil
	}
}

// WithDefaultUser seeds the operator account and binds it as the fallback
// identity for unauthenticated requests. Requires database, bcrypt and utils.
func WithDefaultUser() ServerOption {
	return func(s *Server) error {
		if s.db == nil || s.bcryptUtils == nil || s.utils == nil {
			return fmt.Errorf("database, bcrypt and utils must be initialized before the default user")
		}
		user, err := bootstrap.EnsureDefaultUser(s.db, s.log, s.bcryptUtils, s.utils)
		if err != nil {
			return fmt.Errorf("failed to ensure default user: %w", err)
		}
		s.defaultUser = user
		return nil
	}
}

func WithMiddleware() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before middleware")
		}
		s.middleware = middleware.New(s.log, s.defaultUser)
		return nil
	}
}

// WithErpClientFactory installs the ERPNext client constructor. The default
// builds a real HTTP client against the saved connection.
func WithErpClientFactory() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before the ERP client factory")
		}
		log := s.log
		s.erpFactory = func(baseURL, apiKey, apiSecret string) erpnext.IClient {
			return erpnext.New(baseURL, apiKey, apiSecret, log)
		}
		return nil
	}
}

// WithTranscriber wires server-side audio transcription. Optional; without
// it the transcribe endpoint reports the feature as unavailable.
func WithTranscriber() ServerOption {
	return func(s *Server) error {
		transcriber, err := speech.NewOpenAI()
		if err != nil {
			return fmt.Errorf("failed to create speech adapter: %w", err)
		}
		s.transcriber = transcriber
		return nil
	}
}

func (s *Server) RegisterHandler() {
	// Connection Domain
	connRepo := connectionRepository.New(s.db, s.log)
	connServices := connectionService.New(s.log, connRepo, connectionService.ErpClientFactory(s.erpFactory), s.utils)
	connHandlers := connectionHandler.New(s.log, s.validator, s.middleware, connServices)

	// Settings Domain
	settingsRepo := settingsRepository.New(s.db, s.log)
	settingsServices := settingsService.New(s.log, settingsRepo, s.redisServer, s.utils)
	settingsHandlers := settingsHandler.New(s.log, s.validator, s.middleware, settingsServices)

	// ERP Proxy Domain
	erpServices := erpService.New(s.log, connRepo, erpService.ErpClientFactory(s.erpFactory))
	erpHandlers := erpHandler.New(s.log, s.validator, s.middleware, erpServices)

	// Voice Domain
	voiceRepo := voiceRepository.New(s.db, s.log)
	var voiceOpts []voiceService.Option
	if s.transcriber != nil {
		voiceOpts = append(voiceOpts, voiceService.WithTranscriber(s.transcriber))
	}
	voiceServices := voiceService.New(s.log, voiceRepo, connRepo, settingsServices,
		voiceService.ErpClientFactory(s.erpFactory), s.utils, voiceOpts...)
	voiceHandlers := voiceHandler.New(s.log, s.validator, s.middleware, voiceServices)

	s.setupHealthCheck()
	s.handlers = append(s.handlers, connHandlers, settingsHandlers, erpHandlers, voiceHandlers)
}

func (s *Server) Run() error {
	router := s.engine.Group("/api/v1")
	s.engine.Use(s.middleware.NewRequestIDMiddleware())

	for _, h := range s.handlers {
		h.Start(router)
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "3000"
	}

	return s.engine.Listen(fmt.Sprintf(":%s", port))
}

func (s *Server) setupHealthCheck() {
	s.engine.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"message": "Server is Healthy!",
		})
	})
}
