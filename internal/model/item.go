package model

import "time"

// Thresholds for the derived wear signals.
const (
	// WearThreshold is how many wears since the last wash suggest a wash.
	WearThreshold = 3

	// WashDueAfter is how long a worn, unwashed item may sit before a wash
	// is overdue.
	WashDueAfter = 7 * 24 * time.Hour

	// StaleAfter is how long an item may go without any wear or wash
	// activity before it counts as forgotten.
	StaleAfter = 30 * 24 * time.Hour
)

// Item is a single piece of clothing tracked for one user.
type Item struct {
	ID         int64
	OwnerID    int64
	Name       string
	Category   string
	LastWorn   *time.Time // nil = never worn
	LastWashed *time.Time // nil = never washed
	WornCount  int
	CreatedAt  time.Time
}

// Status holds the wear signals derived from an item's timestamps and wear
// count at a given instant. The signals are independent and may co-occur;
// they are recomputed on every read, never stored.
type Status struct {
	Clean         bool // never worn, or washed at or after the last wear
	NeedsWashSoft bool // worn WearThreshold or more times since the last wash
	NeedsWashDue  bool // worn since the last wash, and that wear is WashDueAfter old
	Stale         bool // no wear or wash activity for StaleAfter
}

// Status derives the item's wear signals at the given time. Every wear or
// wash event is always a valid transition, so there is no error path here.
func (i *Item) Status(now time.Time) Status {
	var s Status

	s.Clean = i.LastWorn == nil || (i.LastWashed != nil && !i.LastWashed.Before(*i.LastWorn))
	s.NeedsWashSoft = i.WornCount >= WearThreshold
	s.NeedsWashDue = !s.Clean && now.Sub(*i.LastWorn) >= WashDueAfter

	if last := i.LastActivity(); last != nil && now.Sub(*last) >= StaleAfter {
		s.Stale = true
	}

	return s
}

// LastActivity returns the more recent of the item's wear and wash
// timestamps, or nil if the item has never been worn or washed.
func (i *Item) LastActivity() *time.Time {
	switch {
	case i.LastWorn == nil:
		return i.LastWashed
	case i.LastWashed == nil:
		return i.LastWorn
	case i.LastWashed.After(*i.LastWorn):
		return i.LastWashed
	default:
		return i.LastWorn
	}
}
