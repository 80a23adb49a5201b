package model

import (
	"errors"
	"testing"
	"time"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		in     string
		hour   int
		minute int
		ok     bool
	}{
		{"09:30", 9, 30, true},
		{"9:30", 9, 30, true},
		{"00:00", 0, 0, true},
		{"23:59", 23, 59, true},
		{" 8:05 ", 8, 5, true},
		{"24:00", 0, 0, false},
		{"12:60", 0, 0, false},
		{"-1:30", 0, 0, false},
		{"noon", 0, 0, false},
		{"1230", 0, 0, false},
		{"12:3a", 0, 0, false},
		{"", 0, 0, false},
	}

	for _, tt := range tests {
		hour, minute, err := ParseClock(tt.in)
		if !tt.ok {
			if err == nil {
				t.Errorf("ParseClock(%q) = %d:%d, want error", tt.in, hour, minute)
			} else if !errors.Is(err, ErrInvalidTime) {
				t.Errorf("ParseClock(%q): error %v is not ErrInvalidTime", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseClock(%q): unexpected error: %v", tt.in, err)
			continue
		}
		if hour != tt.hour || minute != tt.minute {
			t.Errorf("ParseClock(%q) = %d:%d, want %d:%d", tt.in, hour, minute, tt.hour, tt.minute)
		}
	}
}

func TestFormatClock(t *testing.T) {
	if got := FormatClock(7, 5); got != "07:05" {
		t.Errorf("FormatClock(7, 5) = %q, want \"07:05\"", got)
	}
	if got := FormatClock(23, 59); got != "23:59" {
		t.Errorf("FormatClock(23, 59) = %q, want \"23:59\"", got)
	}
}

func TestPreferenceLocation(t *testing.T) {
	def := time.FixedZone("default", 3600)

	p := &Preference{Timezone: "UTC"}
	if got := p.Location(def); got != time.UTC {
		t.Errorf("Location with UTC zone = %v, want UTC", got)
	}

	p = &Preference{Timezone: "Mars/Olympus"}
	if got := p.Location(def); got != def {
		t.Errorf("Location with unknown zone = %v, want the default", got)
	}

	p = &Preference{}
	if got := p.Location(def); got != def {
		t.Errorf("Location with empty zone = %v, want the default", got)
	}
}

func TestLoadZone(t *testing.T) {
	if _, err := LoadZone("UTC"); err != nil {
		t.Errorf("LoadZone(UTC): %v", err)
	}
	if _, err := LoadZone("Mars/Olympus"); !errors.Is(err, ErrInvalidTimezone) {
		t.Errorf("LoadZone(Mars/Olympus) = %v, want ErrInvalidTimezone", err)
	}
}

func TestNotifyTime(t *testing.T) {
	p := &Preference{NotifyHour: 9, NotifyMinute: 0}
	if got := p.NotifyTime(); got != "09:00" {
		t.Errorf("NotifyTime = %q, want \"09:00\"", got)
	}
}
