// Package reminder runs the daily reminder loop: on every tick it checks
// which opted-in users' local clocks have reached their configured reminder
// time and sends at most one aggregated nudge per user per local day.
package reminder

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/erazemk/garderoba/internal/config"
	"github.com/erazemk/garderoba/internal/model"
	"github.com/erazemk/garderoba/internal/store"
)

// Sender delivers an outbound reminder message to a user. It is the same
// shape as the bot engine's sender, so one transport adapter serves both.
type Sender interface {
	Send(ctx context.Context, userID int64, text string, choices []string) error
}

// Scheduler evaluates reminder times on a fixed tick. Users are processed
// sequentially within a tick; a failure for one user is logged and never
// stops the others.
type Scheduler struct {
	db     *sql.DB
	cfg    *config.Config
	sender Sender

	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	mu      sync.Mutex
	running bool
}

// NewScheduler creates a reminder scheduler. The tick interval comes from
// the configuration and must be at most a minute, or exact-minute matching
// would skip reminder times.
func NewScheduler(db *sql.DB, cfg *config.Config, sender Sender) *Scheduler {
	return &Scheduler{db: db, cfg: cfg, sender: sender}
}

// Start begins the reminder loop in a background goroutine.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return
	}

	s.ctx, s.cancel = context.WithCancel(context.Background())
	s.running = true

	s.wg.Add(1)
	go s.run()

	slog.Info("reminder scheduler started", "interval", s.cfg.TickInterval)
}

// Stop cancels the reminder loop and waits for it to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.cancel()
	s.running = false
	s.mu.Unlock()

	s.wg.Wait()
	slog.Info("reminder scheduler stopped")
}

func (s *Scheduler) run() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.cfg.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case now := <-ticker.C:
			s.runOnce(s.ctx, now)
		case <-s.ctx.Done():
			return
		}
	}
}

// runOnce evaluates a single tick. Now is injected so tests can pin the
// clock. Errors never escape: each user is evaluated independently and the
// tick always runs to the end of the user list.
func (s *Scheduler) runOnce(ctx context.Context, now time.Time) {
	prefs, err := store.ListNotifiable(ctx, s.db)
	if err != nil {
		slog.Error("listing notifiable users failed", "error", err)
		return
	}

	for _, pref := range prefs {
		if err := s.remind(ctx, &pref, now); err != nil {
			slog.Error("reminder failed", "user", pref.OwnerID, "error", err)
		}
	}
}

// remind evaluates one user at one instant and sends their daily reminder
// if it is due right now.
func (s *Scheduler) remind(ctx context.Context, pref *model.Preference, now time.Time) error {
	local := now.In(pref.Location(s.cfg.DefaultZone))
	today := local.Format("2006-01-02")

	// At most one reminder per local calendar day.
	if pref.LastReminderDate == today {
		return nil
	}

	// Exact-minute match. A minute missed while the process was down is
	// skipped, not retried later in the day.
	if local.Hour() != pref.NotifyHour || local.Minute() != pref.NotifyMinute {
		return nil
	}

	items, err := store.ListItems(ctx, s.db, pref.OwnerID)
	if err != nil {
		return err
	}

	// Stamp the guard before the delivery attempt: a failed send burns the
	// day rather than risking a duplicate, and a day with nothing to report
	// is not re-evaluated on every following tick.
	if err := store.MarkReminderSent(ctx, s.db, pref.OwnerID, today); err != nil {
		return err
	}

	text := renderReminder(items, now)
	if text == "" {
		return nil
	}
	if err := s.sender.Send(ctx, pref.OwnerID, text, nil); err != nil {
		return fmt.Errorf("delivering reminder: %w", err)
	}
	return nil
}

// renderReminder aggregates every wash-due and stale item into a single
// message, or returns "" when nothing needs attention.
func renderReminder(items []model.Item, now time.Time) string {
	var due, stale []string
	for _, item := range items {
		status := item.Status(now)
		if status.NeedsWashDue {
			due = append(due, item.Name)
		}
		if status.Stale {
			stale = append(stale, item.Name)
		}
	}
	if len(due) == 0 && len(stale) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("🔔 Daily closet check:")
	if len(due) > 0 {
		fmt.Fprintf(&b, "\n🧺 Time to wash: %s", strings.Join(due, ", "))
	}
	if len(stale) > 0 {
		fmt.Fprintf(&b, "\n💤 Not worn in a while: %s", strings.Join(stale, ", "))
	}
	return b.String()
}
