package settingsRepository

import (
	"VoiceERP/internal/api/settings"
	"VoiceERP/internal/entity"
	contextPkg "VoiceERP/pkg/context"
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type VoiceSettingsDB struct {
	ID                  sql.NullString `db:"id"`
	UserID              sql.NullString `db:"user_id"`
	WakeWord            sql.NullString `db:"wake_word"`
	Sensitivity         sql.NullInt64  `db:"sensitivity"`
	VoiceResponse       sql.NullBool   `db:"voice_response"`
	ContinuousListening sql.NullBool   `db:"continuous_listening"`
	VoiceLanguage       sql.NullString `db:"voice_language"`
	CreatedAt           time.Time      `db:"created_at"`
	UpdatedAt           time.Time      `db:"updated_at"`
}

func (r *settingsRepository) CreateSettings(ctx context.Context, s entity.VoiceSettings) error {
	requestID := contextPkg.GetRequestID(ctx)

	argsKV := map[string]interface{}{
		"id":                   s.ID,
		"user_id":              s.UserID,
		"wake_word":            s.WakeWord,
		"sensitivity":          s.Sensitivity,
		"voice_response":       s.VoiceResponse,
		"continuous_listening": s.ContinuousListening,
		"voice_language":       s.VoiceLanguage,
		"created_at":           s.CreatedAt,
		"updated_at":           s.UpdatedAt,
	}

	query, args, err := sqlx.Named(queryCreateSettings, argsKV)
	if err != nil {
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating voice settings")
		return err
	}

	return nil
}

func (r *settingsRepository) GetSettingsByUserID(ctx context.Context, userID string) (entity.VoiceSettings, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var settingsDB VoiceSettingsDB

	argsKV := map[string]interface{}{"user_id": userID}

	query, args, err := sqlx.Named(queryGetSettingsByUserID, argsKV)
	if err != nil {
		return entity.VoiceSettings{}, err
	}
	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(ctx, query, args...).StructScan(&settingsDB); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.VoiceSettings{}, settings.ErrSettingsNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetSettingsByUserID execution err")
		return entity.VoiceSettings{}, err
	}

	return r.makeSettings(settingsDB), nil
}

func (r *settingsRepository) UpdateSettings(ctx context.Context, s entity.VoiceSettings) error {
	requestID := contextPkg.GetRequestID(ctx)

	argsKV := map[string]interface{}{
		"user_id":              s.UserID,
		"wake_word":            s.WakeWord,
		"sensitivity":          s.Sensitivity,
		"voice_response":       s.VoiceResponse,
		"continuous_listening": s.ContinuousListening,
		"voice_language":       s.VoiceLanguage,
		"updated_at":           time.Now(),
	}

	query, args, err := sqlx.Named(queryUpdateSettings, argsKV)
	if err != nil {
		return err
	}
	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpdateSettings execution err")
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return settings.ErrSettingsNotFound
	}

	return nil
}

func (r *settingsRepository) makeSettings(settingsDB VoiceSettingsDB) entity.VoiceSettings {
	return entity.VoiceSettings{
		ID:                  settingsDB.ID.String,
		UserID:              settingsDB.UserID.String,
		WakeWord:            settingsDB.WakeWord.String,
		Sensitivity:         int(settingsDB.Sensitivity.Int64),
		VoiceResponse:       settingsDB.VoiceResponse.Bool,
		ContinuousListening: settingsDB.ContinuousListening.Bool,
		VoiceLanguage:       settingsDB.VoiceLanguage.String,
		CreatedAt:           settingsDB.CreatedAt,
		UpdatedAt:           settingsDB.UpdatedAt,
	}
}
