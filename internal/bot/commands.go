package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/erazemk/garderoba/internal/dialog"
	"github.com/erazemk/garderoba/internal/model"
	"github.com/erazemk/garderoba/internal/store"
)

func (e *Engine) handleStart(ctx context.Context, userID int64) error {
	if _, err := store.EnsurePreference(ctx, e.db, e.cfg.DefaultPreference(userID)); err != nil {
		return err
	}

	n, err := store.CountItems(ctx, e.db, userID)
	if err != nil {
		return err
	}

	var b strings.Builder
	b.WriteString("Hi! I keep track of your clothes and their washes.\n\n")
	b.WriteString("Commands:\n")
	b.WriteString("• /add — register a piece of clothing\n")
	b.WriteString("• /wear — mark an item as worn\n")
	b.WriteString("• /wash — mark an item as washed\n")
	b.WriteString("• /status — overview of all your items\n")
	b.WriteString("• /remind — daily reminder settings\n")
	b.WriteString("• /timezone — set your timezone\n")

	switch n {
	case 0:
		b.WriteString("\nNo items yet — start with /add.")
	case 1:
		b.WriteString("\nYou have 1 item tracked.")
	default:
		fmt.Fprintf(&b, "\nYou have %d items tracked.", n)
	}

	return e.send(ctx, userID, b.String())
}

func (e *Engine) handleAdd(ctx context.Context, userID int64) error {
	e.sessions.Set(userID, dialog.Session{State: dialog.AwaitingName})
	return e.send(ctx, userID, "What is the item called?")
}

// beginSelection starts the wear or wash dialog: it offers the user's item
// names as a constrained menu and arms the matching target state.
func (e *Engine) beginSelection(ctx context.Context, userID int64, state dialog.State) error {
	names, err := e.itemNames(ctx, userID)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		e.sessions.Clear(userID)
		return e.send(ctx, userID, "No items yet. Add one with /add.")
	}

	e.sessions.Set(userID, dialog.Session{State: state})

	prompt := "Which item did you wear?"
	if state == dialog.AwaitingWashTarget {
		prompt = "Which item did you wash?"
	}
	return e.sendMenu(ctx, userID, prompt, names)
}

func (e *Engine) handleStatus(ctx context.Context, userID int64) error {
	items, err := store.ListItems(ctx, e.db, userID)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return e.send(ctx, userID, "No items yet. Add one with /add.")
	}
	return e.send(ctx, userID, renderStatus(items, e.now()))
}

func (e *Engine) handleRemind(ctx context.Context, userID int64, args string) error {
	pref, err := store.EnsurePreference(ctx, e.db, e.cfg.DefaultPreference(userID))
	if err != nil {
		return err
	}

	args = strings.TrimSpace(args)
	switch {
	case args == "":
		state := "off"
		if pref.NotifyEnabled {
			state = "on"
		}
		return e.send(ctx, userID, fmt.Sprintf(
			"Daily reminder is %s, set for %s (%s).\nUse /remind on, /remind off or /remind HH:MM.",
			state, pref.NotifyTime(), e.zoneName(pref)))

	case strings.EqualFold(args, "on"):
		if err := store.SetNotifyEnabled(ctx, e.db, userID, true); err != nil {
			return err
		}
		return e.send(ctx, userID, fmt.Sprintf(
			"Daily reminder enabled for %s (%s).", pref.NotifyTime(), e.zoneName(pref)))

	case strings.EqualFold(args, "off"):
		if err := store.SetNotifyEnabled(ctx, e.db, userID, false); err != nil {
			return err
		}
		return e.send(ctx, userID, "Daily reminder disabled.")

	default:
		hour, minute, err := model.ParseClock(args)
		if err != nil {
			return e.send(ctx, userID, "I didn't get that time. Use /remind HH:MM (24-hour), /remind on or /remind off.")
		}
		if err := store.SetNotifyTime(ctx, e.db, userID, hour, minute); err != nil {
			return err
		}
		return e.send(ctx, userID, fmt.Sprintf(
			"Daily reminder set for %s (%s).", model.FormatClock(hour, minute), e.zoneName(pref)))
	}
}

func (e *Engine) handleTimezone(ctx context.Context, userID int64, args string) error {
	pref, err := store.EnsurePreference(ctx, e.db, e.cfg.DefaultPreference(userID))
	if err != nil {
		return err
	}

	args = strings.TrimSpace(args)
	if args == "" {
		return e.send(ctx, userID, fmt.Sprintf(
			"Your timezone is %s.\nChange it with an IANA name, e.g. /timezone Europe/Ljubljana.",
			e.zoneName(pref)))
	}

	if _, err := model.LoadZone(args); err != nil {
		return e.send(ctx, userID, "I don't know that timezone. Use an IANA name like Europe/Ljubljana or UTC.")
	}
	if err := store.SetTimezone(ctx, e.db, userID, args); err != nil {
		return err
	}
	return e.send(ctx, userID, fmt.Sprintf("Timezone set to %s.", args))
}

// renderStatus builds the /status overview: one block per item with its
// wear facts and every warning that applies.
func renderStatus(items []model.Item, now time.Time) string {
	var b strings.Builder
	for i, item := range items {
		if i > 0 {
			b.WriteString("\n\n")
		}

		if item.Category != "" {
			fmt.Fprintf(&b, "👕 %s (%s)\n", item.Name, item.Category)
		} else {
			fmt.Fprintf(&b, "👕 %s\n", item.Name)
		}
		fmt.Fprintf(&b, "• Wears since last wash: %d\n", item.WornCount)
		fmt.Fprintf(&b, "• Last worn: %s\n", formatDay(item.LastWorn))
		fmt.Fprintf(&b, "• Last washed: %s", formatDay(item.LastWashed))

		s := item.Status(now)
		if s.NeedsWashSoft {
			b.WriteString("\n❗ Time to wash it (heavy use)")
		}
		if s.NeedsWashDue {
			b.WriteString("\n❗ Wash overdue (worn over a week ago)")
		}
		if s.Stale {
			b.WriteString("\n💤 Untouched for a month")
		}
	}
	return b.String()
}

// formatDay renders a stored timestamp as a UTC calendar date, or "never".
func formatDay(t *time.Time) string {
	if t == nil {
		return "never"
	}
	return t.UTC().Format("2006-01-02")
}
