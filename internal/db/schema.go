package db

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema.
const schema = `
CREATE TABLE IF NOT EXISTS items (
    id          INTEGER PRIMARY KEY,
    owner_id    INTEGER NOT NULL,
    name        TEXT NOT NULL,
    name_norm   TEXT NOT NULL,
    category    TEXT NOT NULL DEFAULT '',
    last_worn   TEXT,
    last_washed TEXT,
    worn_count  INTEGER NOT NULL DEFAULT 0,
    created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_items_owner_name_norm
    ON items(owner_id, name_norm);

CREATE TABLE IF NOT EXISTS preferences (
    owner_id           INTEGER PRIMARY KEY,
    notify_enabled     INTEGER NOT NULL DEFAULT 0,
    notify_hour        INTEGER NOT NULL DEFAULT 9,
    notify_minute      INTEGER NOT NULL DEFAULT 0,
    timezone           TEXT NOT NULL DEFAULT '',
    last_reminder_date TEXT NOT NULL DEFAULT ''
);
`

// EnsureSchema creates all tables and indexes if they don't already exist.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
