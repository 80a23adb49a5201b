package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/erazemk/garderoba/internal/model"
)

// EnsurePreference returns the owner's preference row, creating it from def
// on first contact. Uses INSERT OR IGNORE + re-SELECT to avoid a TOCTOU
// race between two concurrent first messages from the same user.
func EnsurePreference(ctx context.Context, db *sql.DB, def model.Preference) (*model.Preference, error) {
	_, err := db.ExecContext(ctx,
		`INSERT OR IGNORE INTO preferences (owner_id, notify_enabled, notify_hour, notify_minute, timezone)
		 VALUES (?, ?, ?, ?, ?)`,
		def.OwnerID, def.NotifyEnabled, def.NotifyHour, def.NotifyMinute, def.Timezone,
	)
	if err != nil {
		return nil, fmt.Errorf("creating preference: %w", err)
	}

	// Always read back (either our insert or the existing row).
	pref, err := GetPreference(ctx, db, def.OwnerID)
	if err != nil {
		return nil, err
	}
	if pref == nil {
		return nil, fmt.Errorf("reading back preference for owner %d: no row", def.OwnerID)
	}
	return pref, nil
}

// GetPreference returns the owner's preference row, or (nil, nil) when the
// user has never interacted with the bot.
func GetPreference(ctx context.Context, db *sql.DB, ownerID int64) (*model.Preference, error) {
	p := &model.Preference{}
	err := db.QueryRowContext(ctx,
		`SELECT owner_id, notify_enabled, notify_hour, notify_minute, timezone, last_reminder_date
		 FROM preferences WHERE owner_id = ?`, ownerID,
	).Scan(&p.OwnerID, &p.NotifyEnabled, &p.NotifyHour, &p.NotifyMinute, &p.Timezone, &p.LastReminderDate)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting preference: %w", err)
	}
	return p, nil
}

// ListNotifiable returns the preferences of every user with the daily
// reminder enabled.
func ListNotifiable(ctx context.Context, db *sql.DB) ([]model.Preference, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT owner_id, notify_enabled, notify_hour, notify_minute, timezone, last_reminder_date
		 FROM preferences WHERE notify_enabled = 1 ORDER BY owner_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing notifiable preferences: %w", err)
	}
	defer rows.Close()

	var prefs []model.Preference
	for rows.Next() {
		var p model.Preference
		if err := rows.Scan(&p.OwnerID, &p.NotifyEnabled, &p.NotifyHour, &p.NotifyMinute, &p.Timezone, &p.LastReminderDate); err != nil {
			return nil, fmt.Errorf("scanning preference: %w", err)
		}
		prefs = append(prefs, p)
	}
	return prefs, rows.Err()
}

// SetNotifyEnabled toggles the daily reminder for the owner.
func SetNotifyEnabled(ctx context.Context, db *sql.DB, ownerID int64, enabled bool) error {
	_, err := db.ExecContext(ctx,
		`UPDATE preferences SET notify_enabled = ? WHERE owner_id = ?`,
		enabled, ownerID,
	)
	if err != nil {
		return fmt.Errorf("setting notify_enabled: %w", err)
	}
	return nil
}

// SetNotifyTime sets the owner's local reminder time. It also enables the
// reminder, since setting a time expresses the intent to receive one.
func SetNotifyTime(ctx context.Context, db *sql.DB, ownerID int64, hour, minute int) error {
	_, err := db.ExecContext(ctx,
		`UPDATE preferences SET notify_hour = ?, notify_minute = ?, notify_enabled = 1 WHERE owner_id = ?`,
		hour, minute, ownerID,
	)
	if err != nil {
		return fmt.Errorf("setting notify time: %w", err)
	}
	return nil
}

// SetTimezone records the owner's IANA timezone name. Validation happens at
// the command layer; unrecognized stored names fall back to the default
// zone at evaluation time.
func SetTimezone(ctx context.Context, db *sql.DB, ownerID int64, zone string) error {
	_, err := db.ExecContext(ctx,
		`UPDATE preferences SET timezone = ? WHERE owner_id = ?`,
		zone, ownerID,
	)
	if err != nil {
		return fmt.Errorf("setting timezone: %w", err)
	}
	return nil
}

// MarkReminderSent stamps the once-per-day guard with the owner's local
// calendar date.
func MarkReminderSent(ctx context.Context, db *sql.DB, ownerID int64, date string) error {
	_, err := db.ExecContext(ctx,
		`UPDATE preferences SET last_reminder_date = ? WHERE owner_id = ?`,
		date, ownerID,
	)
	if err != nil {
		return fmt.Errorf("marking reminder sent: %w", err)
	}
	return nil
}
