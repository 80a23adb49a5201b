package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidTime reports a reminder time that is not a 24-hour HH:MM value.
var ErrInvalidTime = errors.New("invalid time")

// ErrInvalidTimezone reports an unrecognized IANA timezone name.
var ErrInvalidTimezone = errors.New("invalid timezone")

// Preference holds one user's reminder settings. A row is created lazily on
// the user's first interaction and never deleted.
type Preference struct {
	OwnerID          int64
	NotifyEnabled    bool
	NotifyHour       int
	NotifyMinute     int
	Timezone         string // IANA zone name, "" = use the configured default
	LastReminderDate string // local date (YYYY-MM-DD) of the last reminder, "" = never
}

// NotifyTime renders the configured reminder time as HH:MM.
func (p *Preference) NotifyTime() string {
	return FormatClock(p.NotifyHour, p.NotifyMinute)
}

// Location resolves the preference's timezone, falling back to def when the
// zone is unset or unrecognized. Bad zone names are tolerated here so that a
// stale preference row can never break reminder evaluation.
func (p *Preference) Location(def *time.Location) *time.Location {
	if p.Timezone == "" {
		return def
	}
	loc, err := time.LoadLocation(p.Timezone)
	if err != nil {
		return def
	}
	return loc
}

// ParseClock parses a 24-hour wall-clock time such as "9:30" or "21:05".
func ParseClock(s string) (hour, minute int, err error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}

	hour, herr := strconv.Atoi(hh)
	minute, merr := strconv.Atoi(mm)
	if herr != nil || merr != nil || hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}

	return hour, minute, nil
}

// FormatClock renders a wall-clock time as zero-padded HH:MM.
func FormatClock(hour, minute int) string {
	return fmt.Sprintf("%02d:%02d", hour, minute)
}

// LoadZone resolves an IANA timezone name, mapping unknown names to
// ErrInvalidTimezone.
func LoadZone(name string) (*time.Location, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimezone, name)
	}
	return loc, nil
}
