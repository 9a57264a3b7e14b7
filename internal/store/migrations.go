package store

// runMigrations executes all database migrations.
func (s *Store) runMigrations() error {
	migrations := []string{
		// Sessions table - one row per monitoring run
		`CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			camera_id INTEGER NOT NULL DEFAULT 0,
			started_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			ended_at DATETIME
		)`,

		// Alerts table - confirmed posture events raised by the debouncer
		`CREATE TABLE IF NOT EXISTS alerts (
			id TEXT PRIMARY KEY,
			session_id TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
			type TEXT NOT NULL CHECK(type IN ('sit_confirmed', 'fall_detected')),
			label TEXT NOT NULL,
			detected_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			acknowledged INTEGER NOT NULL DEFAULT 0
		)`,

		// Responders table - alert-type to plugin bindings
		`CREATE TABLE IF NOT EXISTS responders (
			id TEXT PRIMARY KEY,
			alert_type TEXT NOT NULL CHECK(alert_type IN ('sit_confirmed', 'fall_detected')),
			plugin_name TEXT NOT NULL,
			action_name TEXT NOT NULL,
			config TEXT NOT NULL DEFAULT '{}',
			enabled INTEGER NOT NULL DEFAULT 1,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		// Settings table - application settings as key-value pairs
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,

		// Indexes for better query performance
		`CREATE INDEX IF NOT EXISTS idx_alerts_session_id ON alerts(session_id)`,
		`CREATE INDEX IF NOT EXISTS idx_alerts_type ON alerts(type)`,
		`CREATE INDEX IF NOT EXISTS idx_responders_alert_type ON responders(alert_type)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}
