package settingsService

import (
	"VoiceERP/internal/api/settings"
	"VoiceERP/internal/entity"
	contextPkg "VoiceERP/pkg/context"
	redisPkg "VoiceERP/pkg/redis"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

const settingsCacheTTL = 10 * time.Minute

func settingsCacheKey(userID string) string {
	return fmt.Sprintf("voice_settings:%s", userID)
}

// ResolveSettings returns the user's saved settings, falling back to defaults
// when none exist. The voice session reads through here on every start, so
// hits are served from Redis.
func (s *settingsService) ResolveSettings(ctx context.Context, userID string) (entity.VoiceSettings, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if s.redis != nil {
		if payload, err := s.redis.GetJSON(ctx, settingsCacheKey(userID)); err == nil {
			var cached entity.VoiceSettings
			if err := json.Unmarshal(payload, &cached); err == nil {
				return cached, nil
			}
		} else if !errors.Is(err, redisPkg.ErrCacheMiss) {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Warn("Settings cache read failed")
		}
	}

	repoClient, err := s.settingsRepo.NewClient(false)
	if err != nil {
		return entity.VoiceSettings{}, err
	}

	saved, err := repoClient.Settings.GetSettingsByUserID(ctx, userID)
	switch {
	case err == nil:
	case errors.Is(err, settings.ErrSettingsNotFound):
		saved = entity.DefaultVoiceSettings(userID)
	default:
		return entity.VoiceSettings{}, err
	}

	s.cacheSettings(ctx, requestID, saved)
	return saved, nil
}

func (s *settingsService) GetSettings(ctx context.Context, userID string) (settings.SettingsResponse, error) {
	resolved, err := s.ResolveSettings(ctx, userID)
	if err != nil {
		return settings.SettingsResponse{}, err
	}
	return makeSettingsResponse(resolved), nil
}

func (s *settingsService) UpdateSettings(ctx context.Context, userID string, req settings.UpdateSettingsRequest) (settings.SettingsResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repoClient, err := s.settingsRepo.NewClient(false)
	if err != nil {
		return settings.SettingsResponse{}, err
	}

	current, err := repoClient.Settings.GetSettingsByUserID(ctx, userID)
	exists := true
	switch {
	case err == nil:
	case errors.Is(err, settings.ErrSettingsNotFound):
		current = entity.DefaultVoiceSettings(userID)
		exists = false
	default:
		return settings.SettingsResponse{}, err
	}

	applyUpdate(&current, req)

	if current.Sensitivity < 1 || current.Sensitivity > 10 {
		return settings.SettingsResponse{}, settings.ErrInvalidSensitivity
	}

	now := time.Now()
	current.UpdatedAt = now

	if exists {
		if err := repoClient.Settings.UpdateSettings(ctx, current); err != nil {
			return settings.SettingsResponse{}, err
		}
	} else {
		id, err := s.utils.NewULIDFromTimestamp(now)
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Error("Failed to generate settings id")
			return settings.SettingsResponse{}, err
		}
		current.ID = id
		current.CreatedAt = now

		if err := repoClient.Settings.CreateSettings(ctx, current); err != nil {
			return settings.SettingsResponse{}, err
		}
	}

	if s.redis != nil {
		if err := s.redis.Delete(ctx, settingsCacheKey(userID)); err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Warn("Settings cache invalidation failed")
		}
	}

	return makeSettingsResponse(current), nil
}

func (s *settingsService) cacheSettings(ctx context.Context, requestID string, saved entity.VoiceSettings) {
	if s.redis == nil {
		return
	}

	payload, err := json.Marshal(saved)
	if err != nil {
		return
	}

	if err := s.redis.SetJSON(ctx, settingsCacheKey(saved.UserID), payload, settingsCacheTTL); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Settings cache write failed")
	}
}

func applyUpdate(current *entity.VoiceSettings, req settings.UpdateSettingsRequest) {
	if req.WakeWord != nil {
		current.WakeWord = *req.WakeWord
	}
	if req.Sensitivity != nil {
		current.Sensitivity = *req.Sensitivity
	}
	if req.VoiceResponse != nil {
		current.VoiceResponse = *req.VoiceResponse
	}
	if req.ContinuousListening != nil {
		current.ContinuousListening = *req.ContinuousListening
	}
	if req.VoiceLanguage != nil {
		current.VoiceLanguage = *req.VoiceLanguage
	}
}

func makeSettingsResponse(s entity.VoiceSettings) settings.SettingsResponse {
	return settings.SettingsResponse{
		ID:                  s.ID,
		UserID:              s.UserID,
		WakeWord:            s.WakeWord,
		Sensitivity:         s.Sensitivity,
		VoiceResponse:       s.VoiceResponse,
		ContinuousListening: s.ContinuousListening,
		VoiceLanguage:       s.VoiceLanguage,
		UpdatedAt:           s.UpdatedAt,
	}
}
