package settingsRepository

const (
	queryCreateSettings = `
		INSERT INTO voice_settings (
			id, user_id, wake_word, sensitivity, voice_response,
			continuous_listening, voice_language, created_at, updated_at
		) VALUES (
			:id, :user_id, :wake_word, :sensitivity, :voice_response,
			:continuous_listening, :voice_language, :created_at, :updated_at
		)
	`

	queryGetSettingsByUserID = `
		SELECT
			id, user_id, wake_word, sensitivity, voice_response,
			continuous_listening, voice_language, created_at, updated_at
		FROM voice_settings
		WHERE user_id = :user_id
	`

	queryUpdateSettings = `
		UPDATE voice_settings
		SET
			wake_word = :wake_word,
			sensitivity = :sensitivity,
			voice_response = :voice_response,
			continuous_listening = :continuous_listening,
			voice_language = :voice_language,
			updated_at = :updated_at
		WHERE user_id = :user_id
	`
)
