package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/erazemk/garderoba/internal/model"
)

// ErrDuplicateName is returned by CreateItem when the owner already has an
// item with the same name, compared case-insensitively.
var ErrDuplicateName = errors.New("an item with this name already exists")

// NormalizeName returns the canonical form of an item name used for
// case-insensitive matching and ordering: lower-cased, with surrounding
// whitespace removed and inner runs of whitespace collapsed. Normalizing in
// Go keeps the comparison Unicode-aware, which SQLite's NOCASE is not.
func NormalizeName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

// CreateItem creates a clothing item for the given owner.
func CreateItem(ctx context.Context, db *sql.DB, ownerID int64, name, category string) (*model.Item, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO items (owner_id, name, name_norm, category) VALUES (?, ?, ?, ?)`,
		ownerID, name, NormalizeName(name), category,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("creating item %q: %w", name, ErrDuplicateName)
		}
		return nil, fmt.Errorf("creating item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting item id: %w", err)
	}

	return GetItem(ctx, db, id)
}

// GetItem returns an item by ID.
func GetItem(ctx context.Context, db *sql.DB, id int64) (*model.Item, error) {
	item := &model.Item{}
	var worn, washed sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT id, owner_id, name, category, last_worn, last_washed, worn_count, created_at
		 FROM items WHERE id = ?`, id,
	).Scan(&item.ID, &item.OwnerID, &item.Name, &item.Category, &worn, &washed, &item.WornCount, &item.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	if item.LastWorn, err = parseStamp(worn); err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	if item.LastWashed, err = parseStamp(washed); err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	return item, nil
}

// FindItemByName returns the owner's item whose name matches the given one
// case-insensitively, or (nil, nil) when no such item exists.
func FindItemByName(ctx context.Context, db *sql.DB, ownerID int64, name string) (*model.Item, error) {
	item := &model.Item{}
	var worn, washed sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT id, owner_id, name, category, last_worn, last_washed, worn_count, created_at
		 FROM items WHERE owner_id = ? AND name_norm = ?`,
		ownerID, NormalizeName(name),
	).Scan(&item.ID, &item.OwnerID, &item.Name, &item.Category, &worn, &washed, &item.WornCount, &item.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding item by name: %w", err)
	}
	if item.LastWorn, err = parseStamp(worn); err != nil {
		return nil, fmt.Errorf("finding item by name: %w", err)
	}
	if item.LastWashed, err = parseStamp(washed); err != nil {
		return nil, fmt.Errorf("finding item by name: %w", err)
	}
	return item, nil
}

// ListItems returns all of the owner's items in case-insensitive name order.
func ListItems(ctx context.Context, db *sql.DB, ownerID int64) ([]model.Item, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, owner_id, name, category, last_worn, last_washed, worn_count, created_at
		 FROM items WHERE owner_id = ? ORDER BY name_norm`, ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		var item model.Item
		var worn, washed sql.NullString
		if err := rows.Scan(&item.ID, &item.OwnerID, &item.Name, &item.Category, &worn, &washed, &item.WornCount, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		if item.LastWorn, err = parseStamp(worn); err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		if item.LastWashed, err = parseStamp(washed); err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// CountItems returns how many items the owner has registered.
func CountItems(ctx context.Context, db *sql.DB, ownerID int64) (int, error) {
	var n int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM items WHERE owner_id = ?`, ownerID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting items: %w", err)
	}
	return n, nil
}

// RecordWear marks a wear event: sets the wear timestamp and increments the
// wear count in one atomic update.
func RecordWear(ctx context.Context, db *sql.DB, itemID int64, t time.Time) error {
	_, err := db.ExecContext(ctx,
		`UPDATE items SET last_worn = ?, worn_count = worn_count + 1 WHERE id = ?`,
		formatStamp(t), itemID,
	)
	if err != nil {
		return fmt.Errorf("recording wear: %w", err)
	}
	return nil
}

// RecordWash marks a wash event: sets the wash timestamp and resets the
// wear count, regardless of prior state.
func RecordWash(ctx context.Context, db *sql.DB, itemID int64, t time.Time) error {
	_, err := db.ExecContext(ctx,
		`UPDATE items SET last_washed = ?, worn_count = 0 WHERE id = ?`,
		formatStamp(t), itemID,
	)
	if err != nil {
		return fmt.Errorf("recording wash: %w", err)
	}
	return nil
}

// isUniqueViolation reports whether err is a SQLite UNIQUE constraint
// violation. The driver exposes no sentinel for it, but the message text
// is stable.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// parseStamp converts a stored RFC 3339 timestamp into a *time.Time, with
// NULL and empty mapping to nil ("never").
func parseStamp(s sql.NullString) (*time.Time, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, s.String)
	if err != nil {
		return nil, fmt.Errorf("parsing timestamp %q: %w", s.String, err)
	}
	return &t, nil
}

// formatStamp converts a timestamp to its stored RFC 3339 UTC form.
func formatStamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
