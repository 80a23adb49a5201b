package db

import (
	"database/sql"
	"fmt"
)

// columnMigrations are additive column migrations applied in order after
// schema creation. Databases created before a column existed gain it here;
// fresh databases already have every column from the schema, so each step
// is a no-op for them. Append new migrations at the end, never edit or
// reorder existing ones.
var columnMigrations = []struct {
	table      string
	column     string
	definition string
}{
	// Migration 1: per-user timezones. Earlier deployments evaluated every
	// reminder in the server's zone; rows from then keep '' and fall back
	// to the configured default zone.
	{"preferences", "timezone", "TEXT NOT NULL DEFAULT ''"},

	// Migration 2: the once-per-day reminder guard.
	{"preferences", "last_reminder_date", "TEXT NOT NULL DEFAULT ''"},
}

// Migrate creates the schema and applies the additive column migrations.
func Migrate(db *sql.DB) error {
	if err := EnsureSchema(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	for i, m := range columnMigrations {
		exists, err := hasColumn(db, m.table, m.column)
		if err != nil {
			return fmt.Errorf("running migration %d: %w", i+1, err)
		}
		if exists {
			continue
		}
		stmt := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", m.table, m.column, m.definition)
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("running migration %d: %w", i+1, err)
		}
	}

	return nil
}

// hasColumn reports whether the table already has the named column.
func hasColumn(db *sql.DB, table, column string) (bool, error) {
	rows, err := db.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return false, fmt.Errorf("reading table info for %s: %w", table, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			cid, notNull, pk int
			name, typ        string
			dflt             sql.NullString
		)
		if err := rows.Scan(&cid, &name, &typ, &notNull, &dflt, &pk); err != nil {
			return false, fmt.Errorf("scanning table info: %w", err)
		}
		if name == column {
			return true, nil
		}
	}
	return false, rows.Err()
}
