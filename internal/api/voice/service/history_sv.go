package voiceService

import (
	"VoiceERP/internal/api/voice"
	"VoiceERP/internal/entity"
	contextPkg "VoiceERP/pkg/context"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

const defaultHistoryLimit = 50

func (s *voiceService) GetHistory(ctx context.Context, userID string, limit int) ([]entity.CommandHistory, error) {
	if limit <= 0 || limit > 200 {
		limit = defaultHistoryLimit
	}

	repoClient, err := s.voiceRepo.NewClient(false)
	if err != nil {
		return nil, err
	}

	return repoClient.Commands.GetCommandsByUserID(ctx, userID, limit)
}

func (s *voiceService) GetCommandByID(ctx context.Context, id string) (entity.CommandHistory, error) {
	repoClient, err := s.voiceRepo.NewClient(false)
	if err != nil {
		return entity.CommandHistory{}, err
	}

	return repoClient.Commands.GetCommandByID(ctx, id)
}

func (s *voiceService) ListQuickCommands(ctx context.Context, userID string) ([]entity.QuickCommand, error) {
	repoClient, err := s.voiceRepo.NewClient(false)
	if err != nil {
		return nil, err
	}

	return repoClient.QuickCommands.GetQuickCommandsByUserID(ctx, userID)
}

func (s *voiceService) CreateQuickCommand(ctx context.Context, userID string, req voice.QuickCommandRequest) (entity.QuickCommand, error) {
	requestID := contextPkg.GetRequestID(ctx)

	id, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate quick command id")
		return entity.QuickCommand{}, err
	}

	repoClient, err := s.voiceRepo.NewClient(false)
	if err != nil {
		return entity.QuickCommand{}, err
	}

	now := time.Now()
	cmd := entity.QuickCommand{
		ID:          id,
		UserID:      userID,
		CommandText: req.CommandText,
		Icon:        req.Icon,
		SortOrder:   req.SortOrder,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := repoClient.QuickCommands.CreateQuickCommand(ctx, cmd); err != nil {
		return entity.QuickCommand{}, err
	}

	return cmd, nil
}

func (s *voiceService) UpdateQuickCommand(ctx context.Context, userID string, id string, req voice.QuickCommandRequest) (entity.QuickCommand, error) {
	repoClient, err := s.voiceRepo.NewClient(false)
	if err != nil {
		return entity.QuickCommand{}, err
	}

	cmd := entity.QuickCommand{
		ID:          id,
		UserID:      userID,
		CommandText: req.CommandText,
		Icon:        req.Icon,
		SortOrder:   req.SortOrder,
		UpdatedAt:   time.Now(),
	}

	return repoClient.QuickCommands.UpdateQuickCommand(ctx, cmd)
}

func (s *voiceService) DeleteQuickCommand(ctx context.Context, userID string, id string) error {
	repoClient, err := s.voiceRepo.NewClient(false)
	if err != nil {
		return err
	}

	return repoClient.QuickCommands.DeleteQuickCommand(ctx, userID, id)
}

// Transcribe converts an uploaded audio clip to text via the configured
// speech adapter.
func (s *voiceService) Transcribe(ctx context.Context, filename string, audio io.Reader, language string) (string, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if s.transcriber == nil {
		return "", voice.ErrTranscriptionFail
	}

	transcript, err := s.transcriber.Transcribe(ctx, filename, audio, language)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Audio transcription failed")
		return "", voice.ErrTranscriptionFail
	}

	return transcript, nil
}
