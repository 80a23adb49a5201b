package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/erazemk/garderoba/internal/dialog"
	"github.com/erazemk/garderoba/internal/store"
)

// collectName is the first add-flow step: any non-empty text becomes the
// candidate item name.
func (e *Engine) collectName(ctx context.Context, userID int64, text string) error {
	if text == "" {
		return e.send(ctx, userID, "The name can't be empty. What is the item called?")
	}

	e.sessions.Set(userID, dialog.Session{State: dialog.AwaitingCategory, Name: text})
	return e.send(ctx, userID, "What category is it? (e.g. t-shirt, jeans, socks)")
}

// collectCategory is the second add-flow step: it commits the new item. A
// duplicate name gets a direct rejection and the dialog ends either way.
func (e *Engine) collectCategory(ctx context.Context, userID int64, name, text string) error {
	if text == "" {
		return e.send(ctx, userID, "The category can't be empty. What category is it?")
	}

	item, err := store.CreateItem(ctx, e.db, userID, name, text)
	if errors.Is(err, store.ErrDuplicateName) {
		e.sessions.Clear(userID)
		return e.send(ctx, userID, fmt.Sprintf("You already have an item called %q.", name))
	}
	if err != nil {
		// The dialog stays open so the user can try again.
		return err
	}

	e.sessions.Clear(userID)
	return e.send(ctx, userID, fmt.Sprintf("✅ Added %q (%s).", item.Name, item.Category))
}

// resolveTarget handles a reply to the wear or wash menu. The reply must
// match an offered item name exactly (case-sensitively); anything else
// re-prompts without changing state, and "cancel" in any casing ends the
// dialog with no mutation.
func (e *Engine) resolveTarget(ctx context.Context, userID int64, state dialog.State, text string) error {
	if strings.EqualFold(text, "Cancel") {
		e.sessions.Clear(userID)
		return e.send(ctx, userID, "Cancelled.")
	}

	item, err := store.FindItemByName(ctx, e.db, userID, text)
	if err != nil {
		return err
	}
	if item == nil || item.Name != text {
		names, err := e.itemNames(ctx, userID)
		if err != nil {
			return err
		}
		return e.sendMenu(ctx, userID, `That item isn't on the list. Pick one from the keyboard or press "Cancel".`, names)
	}

	now := e.now()
	if state == dialog.AwaitingWearTarget {
		if err := store.RecordWear(ctx, e.db, item.ID, now); err != nil {
			return err
		}
		e.sessions.Clear(userID)
		return e.send(ctx, userID, fmt.Sprintf("🧥 Got it, you wore %q today.", item.Name))
	}

	if err := store.RecordWash(ctx, e.db, item.ID, now); err != nil {
		return err
	}
	e.sessions.Clear(userID)
	return e.send(ctx, userID, fmt.Sprintf("🧼 %q is clean again.", item.Name))
}
