package connectionRepository

const (
	queryCreateConnection = `
		INSERT INTO erp_connections (
			id, user_id, url, api_key, api_secret, is_active,
			last_connected, created_at, updated_at
		) VALUES (
			:id, :user_id, :url, :api_key, :api_secret, :is_active,
			:last_connected, :created_at, :updated_at
		)
	`

	queryGetConnectionByUserID = `
		SELECT
			id, user_id, url, api_key, api_secret, is_active,
			last_connected, created_at, updated_at
		FROM erp_connections
		WHERE user_id = :user_id
		ORDER BY updated_at DESC
		LIMIT 1
	`

	queryUpdateConnection = `
		UPDATE erp_connections
		SET
			url = :url,
			api_key = :api_key,
			api_secret = :api_secret,
			is_active = :is_active,
			updated_at = :updated_at
		WHERE id = :id
	`

	queryTouchLastConnected = `
		UPDATE erp_connections
		SET last_connected = :last_connected
		WHERE id = :id
	`
)
