package settingsService

import (
	"VoiceERP/internal/api/settings"
	settingsRepository "VoiceERP/internal/api/settings/repository"
	"VoiceERP/internal/entity"
	redisPkg "VoiceERP/pkg/redis"
	"VoiceERP/pkg/utils"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type ISettingsService interface {
	GetSettings(ctx context.Context, userID string) (settings.SettingsResponse, error)
	UpdateSettings(ctx context.Context, userID string, req settings.UpdateSettingsRequest) (settings.SettingsResponse, error)
	ResolveSettings(ctx context.Context, userID string) (entity.VoiceSettings, error)
}

type settingsService struct {
	log          *logrus.Logger
	settingsRepo settingsRepository.Repository
	redis        redisPkg.IRedis
	utils        utils.IUtils
}

func New(
	log *logrus.Logger,
	settingsRepo settingsRepository.Repository,
	redis redisPkg.IRedis,
	utils utils.IUtils,
) ISettingsService {
	return &settingsService{
		log:          log,
		settingsRepo: settingsRepo,
		redis:        redis,
		utils:        utils,
	}
}
