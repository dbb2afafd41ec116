package voiceRepository

const (
	queryCreateCommand = `
		INSERT INTO command_history (
			id, user_id, command, response, status, metadata, timestamp
		) VALUES (
			:id, :user_id, :command, :response, :status, :metadata, :timestamp
		)
	`

	queryUpdateCommandOutcome = `
		UPDATE command_history
		SET
			status = :status,
			response = :response
		WHERE id = :id AND status = 'pending'
	`

	queryGetCommandByID = `
		SELECT
			id, user_id, command, response, status, metadata, timestamp
		FROM command_history
		WHERE id = :id
	`

	queryGetCommandsByUserID = `
		SELECT
			id, user_id, command, response, status, metadata, timestamp
		FROM command_history
		WHERE user_id = :user_id
		ORDER BY timestamp DESC
		LIMIT :limit
	`

	queryCreateQuickCommand = `
		INSERT INTO quick_commands (
			id, user_id, command_text, icon, sort_order, created_at, updated_at
		) VALUES (
			:id, :user_id, :command_text, :icon, :sort_order, :created_at, :updated_at
		)
	`

	queryGetQuickCommandsByUserID = `
		SELECT
			id, user_id, command_text, icon, sort_order, created_at, updated_at
		FROM quick_commands
		WHERE user_id = :user_id
		ORDER BY sort_order ASC, created_at ASC
	`

	queryUpdateQuickCommand = `
		UPDATE quick_commands
		SET
			command_text = :command_text,
			icon = :icon,
			sort_order = :sort_order,
			updated_at = :updated_at
		WHERE id = :id AND user_id = :user_id
		RETURNING created_at
	`

	queryDeleteQuickCommand = `
		DELETE FROM quick_commands
		WHERE id = :id AND user_id = :user_id
	`
)
