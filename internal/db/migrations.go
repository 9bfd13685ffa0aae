package db

import "fmt"

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS resources (
			id         TEXT PRIMARY KEY,
			title      TEXT NOT NULL,
			position   INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS events (
			seq         INTEGER PRIMARY KEY AUTOINCREMENT,
			id          TEXT NOT NULL UNIQUE,
			title       TEXT NOT NULL DEFAULT '',
			start_value TEXT NOT NULL,
			end_value   TEXT,
			resource_id TEXT REFERENCES resources(id),
			color       TEXT NOT NULL DEFAULT '',
			start_day   TEXT NOT NULL,
			end_day     TEXT NOT NULL,
			created_at  DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX IF NOT EXISTS idx_events_days ON events(start_day, end_day);
		CREATE INDEX IF NOT EXISTS idx_events_resource ON events(resource_id);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating calendar tables: %w", err)
	}

	return nil
}
