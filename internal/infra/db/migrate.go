package db

import (
	"database/sql"
)

// MigrateUp creates the schema if it does not exist.
// Statements are idempotent so the migration can run on every startup.
func MigrateUp(db *sql.DB) error {
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS users (
    id            SERIAL PRIMARY KEY,
    email         VARCHAR(254) NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    role          VARCHAR(20) NOT NULL DEFAULT 'member',
    plan          VARCHAR(20) NOT NULL DEFAULT 'free',
    created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
)`); err != nil {
		return err
	}

	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS content_items (
    id           SERIAL PRIMARY KEY,
    user_id      INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    title        VARCHAR(200) NOT NULL,
    description  TEXT NOT NULL DEFAULT '',
    platform     VARCHAR(20) NOT NULL,
    status       VARCHAR(20) NOT NULL DEFAULT 'draft',
    scheduled_at TIMESTAMPTZ NOT NULL,
    created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
)`); err != nil {
		return err
	}

	indexes := []string{
		// Calendar and list queries order by scheduled_at within a user.
		`CREATE INDEX IF NOT EXISTS idx_content_items_user_scheduled ON content_items(user_id, scheduled_at)`,
		// The publisher worker scans for due scheduled items.
		`CREATE INDEX IF NOT EXISTS idx_content_items_status_scheduled ON content_items(status, scheduled_at) WHERE status = 'scheduled'`,
		// Analytics group by platform and status per user.
		`CREATE INDEX IF NOT EXISTS idx_content_items_user_platform ON content_items(user_id, platform)`,
		`CREATE INDEX IF NOT EXISTS idx_content_items_user_status ON content_items(user_id, status)`,
	}
	for _, idx := range indexes {
		if _, err := db.Exec(idx); err != nil {
			return err
		}
	}

	// Enum constraints. Errors are ignored when the constraints already exist.
	_, _ = db.Exec(`
DO $$
BEGIN
    IF NOT EXISTS (
        SELECT 1 FROM pg_constraint
        WHERE conname = 'chk_content_platform'
    ) THEN
        ALTER TABLE content_items ADD CONSTRAINT chk_content_platform
        CHECK (platform IN ('social', 'email', 'blog'));
    END IF;
    IF NOT EXISTS (
        SELECT 1 FROM pg_constraint
        WHERE conname = 'chk_content_status'
    ) THEN
        ALTER TABLE content_items ADD CONSTRAINT chk_content_status
        CHECK (status IN ('draft', 'scheduled', 'posted'));
    END IF;
END $$;
`)

	return nil
}

// MigrateDown rolls back the database schema.
// Use with caution: this will delete all data in the affected tables.
func MigrateDown(db *sql.DB) error {
	dropStatements := []string{
		`DROP TABLE IF EXISTS content_items CASCADE`,
		`DROP TABLE IF EXISTS users CASCADE`,
	}

	for _, stmt := range dropStatements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}
