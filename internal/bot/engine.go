// Package bot implements the conversation engine: slash commands, the
// multi-step add/wear/wash dialogs, and the status overview. It talks to
// the chat network only through the Sender interface, so tests can drive
// it with plain function calls.
package bot

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/erazemk/garderoba/internal/config"
	"github.com/erazemk/garderoba/internal/dialog"
	"github.com/erazemk/garderoba/internal/model"
	"github.com/erazemk/garderoba/internal/store"
)

// Sender delivers outbound messages. A non-nil choices slice asks the
// transport to offer exactly those replies plus a cancel option; nil
// choices sends a plain message and clears any pending menu.
type Sender interface {
	Send(ctx context.Context, userID int64, text string, choices []string) error
}

// Engine handles every inbound message. One message per user is processed
// at a time (the transport serializes updates); different users may be
// handled concurrently.
type Engine struct {
	db       *sql.DB
	cfg      *config.Config
	sessions *dialog.Sessions
	sender   Sender

	now func() time.Time // swapped out in tests
}

// New creates a conversation engine.
func New(db *sql.DB, cfg *config.Config, sessions *dialog.Sessions, sender Sender) *Engine {
	return &Engine{
		db:       db,
		cfg:      cfg,
		sessions: sessions,
		sender:   sender,
		now:      time.Now,
	}
}

// HandleCommand dispatches a slash command. Commands dispatch regardless of
// any pending dialog; only /add, /wear and /wash replace it.
func (e *Engine) HandleCommand(ctx context.Context, userID int64, command, args string) error {
	switch command {
	case "start":
		return e.handleStart(ctx, userID)
	case "add":
		return e.handleAdd(ctx, userID)
	case "wear":
		return e.beginSelection(ctx, userID, dialog.AwaitingWearTarget)
	case "wash":
		return e.beginSelection(ctx, userID, dialog.AwaitingWashTarget)
	case "status":
		return e.handleStatus(ctx, userID)
	case "remind":
		return e.handleRemind(ctx, userID, args)
	case "timezone":
		return e.handleTimezone(ctx, userID, args)
	default:
		return e.send(ctx, userID, "Unknown command. Try /add, /wear, /wash, /status, /remind or /timezone.")
	}
}

// HandleText dispatches a free-text message on the user's dialog state.
// With no dialog pending the text is deliberately ignored.
func (e *Engine) HandleText(ctx context.Context, userID int64, text string) error {
	text = strings.TrimSpace(text)
	sess := e.sessions.Get(userID)

	switch sess.State {
	case dialog.AwaitingName:
		return e.collectName(ctx, userID, text)
	case dialog.AwaitingCategory:
		return e.collectCategory(ctx, userID, sess.Name, text)
	case dialog.AwaitingWearTarget, dialog.AwaitingWashTarget:
		return e.resolveTarget(ctx, userID, sess.State, text)
	default:
		return nil
	}
}

func (e *Engine) send(ctx context.Context, userID int64, text string) error {
	return e.sender.Send(ctx, userID, text, nil)
}

func (e *Engine) sendMenu(ctx context.Context, userID int64, text string, choices []string) error {
	return e.sender.Send(ctx, userID, text, choices)
}

// itemNames returns the user's item names in display order, for building
// selection menus.
func (e *Engine) itemNames(ctx context.Context, userID int64) ([]string, error) {
	items, err := store.ListItems(ctx, e.db, userID)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(items))
	for i, item := range items {
		names[i] = item.Name
	}
	return names, nil
}

// zoneName is the timezone shown to the user: their own, or the default
// they inherit when none is set.
func (e *Engine) zoneName(pref *model.Preference) string {
	if pref.Timezone != "" {
		return pref.Timezone
	}
	return e.cfg.DefaultZone.String()
}
