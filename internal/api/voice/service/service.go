package voiceService

import (
	connectionRepository "VoiceERP/internal/api/connection/repository"
	settingsService "VoiceERP/internal/api/settings/service"
	"VoiceERP/internal/api/voice"
	voiceRepository "VoiceERP/internal/api/voice/repository"
	"VoiceERP/internal/entity"
	"VoiceERP/pkg/erpnext"
	"VoiceERP/pkg/speech"
	"VoiceERP/pkg/utils"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

// ErpClientFactory builds an ERPNext client from saved credentials. Tests
// substitute a fake to exercise the interpreter without a live instance.
type ErpClientFactory func(baseURL, apiKey, apiSecret string) erpnext.IClient

type IVoiceService interface {
	ProcessCommand(ctx context.Context, userID string, command string) (voice.CommandResult, error)

	GetHistory(ctx context.Context, userID string, limit int) ([]entity.CommandHistory, error)
	GetCommandByID(ctx context.Context, id string) (entity.CommandHistory, error)

	ListQuickCommands(ctx context.Context, userID string) ([]entity.QuickCommand, error)
	CreateQuickCommand(ctx context.Context, userID string, req voice.QuickCommandRequest) (entity.QuickCommand, error)
	UpdateQuickCommand(ctx context.Context, userID string, id string, req voice.QuickCommandRequest) (entity.QuickCommand, error)
	DeleteQuickCommand(ctx context.Context, userID string, id string) error

	Transcribe(ctx context.Context, filename string, audio io.Reader, language string) (string, error)

	OpenSession(ctx context.Context, userID string, recognizer speech.IRecognizer, synthesizer speech.ISynthesizer, notify func(voice.StreamPush)) (*Session, error)
}

type voiceService struct {
	log            *logrus.Logger
	voiceRepo      voiceRepository.Repository
	connectionRepo connectionRepository.Repository
	settings       settingsService.ISettingsService
	erpFactory     ErpClientFactory
	utils          utils.IUtils
	transcriber    speech.ITranscriber
	resultDelay    time.Duration
}

// DefaultResultDelay is how long a session shows a result before it rearms
// or goes idle.
const DefaultResultDelay = 5 * time.Second

type Option func(*voiceService)

// WithResultDelay shortens or lengthens the result display window.
func WithResultDelay(d time.Duration) Option {
	return func(s *voiceService) {
		s.resultDelay = d
	}
}

func WithTranscriber(t speech.ITranscriber) Option {
	return func(s *voiceService) {
		s.transcriber = t
	}
}

func New(
	log *logrus.Logger,
	voiceRepo voiceRepository.Repository,
	connectionRepo connectionRepository.Repository,
	settings settingsService.ISettingsService,
	erpFactory ErpClientFactory,
	utils utils.IUtils,
	opts ...Option,
) IVoiceService {
	s := &voiceService{
		log:            log,
		voiceRepo:      voiceRepo,
		connectionRepo: connectionRepo,
		settings:       settings,
		erpFactory:     erpFactory,
		utils:          utils,
		resultDelay:    DefaultResultDelay,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}
