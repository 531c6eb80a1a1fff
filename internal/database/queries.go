package database

// Migration bookkeeping
const (
	createMigrationsTableSQL = `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			id SERIAL PRIMARY KEY,
			migration_name VARCHAR(255) NOT NULL UNIQUE,
			applied_at TIMESTAMPTZ DEFAULT NOW()
		)`

	selectAppliedMigrationsSQL = `SELECT migration_name FROM schema_migrations`

	recordMigrationSQL = `INSERT INTO schema_migrations (migration_name) VALUES ($1)`
)

// Notification ledger queries
const (
	UpsertDeliveryAttemptSQL = `
		INSERT INTO notification_deliveries (message_id, channel, recipient, transaction_id, status, attempts, last_error)
		VALUES ($1, $2, $3, $4, $5, 1, $6)
		ON CONFLICT (message_id, channel) DO UPDATE SET
			status = EXCLUDED.status,
			attempts = notification_deliveries.attempts + 1,
			last_error = EXCLUDED.last_error,
			updated_at = NOW()
		RETURNING attempts`

	GetDeliveryStatusSQL = `
		SELECT status, attempts
		FROM notification_deliveries
		WHERE message_id = $1 AND channel = $2`
)
