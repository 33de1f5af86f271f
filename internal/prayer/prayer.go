// Package prayer holds the five daily prayers of one day and decides which
// of them comes next.
package prayer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// The five canonical daily prayers.
const (
	Fajr    = "Fajr"
	Dhuhr   = "Dhuhr"
	Asr     = "Asr"
	Maghrib = "Maghrib"
	Isha    = "Isha"
)

// Names lists the prayers in day order.
var Names = []string{Fajr, Dhuhr, Asr, Maghrib, Isha}

// ShortNames maps prayer names to single-character abbreviations.
var ShortNames = map[string]string{
	Fajr:    "F",
	Dhuhr:   "D",
	Asr:     "A",
	Maghrib: "M",
	Isha:    "I",
}

// ErrInvalidClock is returned for time-of-day strings that are not HH:MM[:SS].
var ErrInvalidClock = errors.New("invalid clock time")

// Times holds the five time-of-day strings of one day, as delivered by the
// source ("05:00" or "05:00 (EET)").
type Times struct {
	Fajr    string `json:"fajr"`
	Dhuhr   string `json:"dhuhr"`
	Asr     string `json:"asr"`
	Maghrib string `json:"maghrib"`
	Isha    string `json:"isha"`
}

// Get returns the raw time string for a prayer name.
func (t Times) Get(name string) (string, bool) {
	switch name {
	case Fajr:
		return t.Fajr, true
	case Dhuhr:
		return t.Dhuhr, true
	case Asr:
		return t.Asr, true
	case Maghrib:
		return t.Maghrib, true
	case Isha:
		return t.Isha, true
	default:
		return "", false
	}
}

// Lookup resolves a prayer name case-insensitively to its canonical form.
func Lookup(name string) (string, bool) {
	for _, n := range Names {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return n, true
		}
	}
	return "", false
}

// Normalize validates a time-of-day string and returns it as zero-padded
// "HH:MM". A trailing zone annotation like " (BST)" and seconds are dropped.
func Normalize(raw string) (string, error) {
	h, m, err := parseClock(raw)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%02d:%02d", h, m), nil
}

// Clock formats t as the "HH:MM" string used for comparisons.
func Clock(t time.Time) string {
	return t.Format("15:04")
}

// Next returns the name of the next prayer at now.
//
// Times are compared as zero-padded "HH:MM" strings, so lexical order is
// chronological order. A prayer whose time equals the current minute is not
// next. After Isha the next prayer is Fajr. Entries that fail to normalize
// are skipped.
func Next(times Times, now time.Time) string {
	cur := Clock(now)
	for _, name := range Names {
		raw, _ := times.Get(name)
		c, err := Normalize(raw)
		if err != nil {
			continue
		}
		if c > cur {
			return name
		}
	}
	return Fajr
}

// Current returns the latest prayer whose time has been reached at now, or
// "" before Fajr.
func Current(times Times, now time.Time) string {
	cur := Clock(now)
	current := ""
	for _, name := range Names {
		raw, _ := times.Get(name)
		c, err := Normalize(raw)
		if err != nil {
			continue
		}
		if c <= cur {
			current = name
		}
	}
	return current
}

// Until returns the time left until the named prayer. A prayer whose time
// has already passed today is taken to be tomorrow at the same clock time.
func Until(times Times, name string, now time.Time) (time.Duration, error) {
	raw, ok := times.Get(name)
	if !ok {
		return 0, fmt.Errorf("unknown prayer name: %s", name)
	}
	h, m, err := parseClock(raw)
	if err != nil {
		return 0, fmt.Errorf("time for %s: %w", name, err)
	}

	at := time.Date(now.Year(), now.Month(), now.Day(), h, m, 0, 0, now.Location())
	if !at.After(now) {
		at = at.AddDate(0, 0, 1)
	}
	return at.Sub(now), nil
}

// FormatRemaining formats a duration as "Xh Ym" or "Ym" if less than an hour.
func FormatRemaining(d time.Duration) string {
	if d < 0 {
		return "0m"
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60

	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}

// parseClock parses "H:MM", "HH:MM" or "HH:MM:SS", optionally followed by a
// space and an annotation.
func parseClock(raw string) (hour, minute int, err error) {
	s := strings.TrimSpace(raw)
	if idx := strings.IndexByte(s, ' '); idx != -1 {
		s = s[:idx]
	}

	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidClock, raw)
	}

	limits := []int{23, 59, 59}
	values := make([]int, len(parts))
	for i, p := range parts {
		if len(p) == 0 || len(p) > 2 {
			return 0, 0, fmt.Errorf("%w: %q", ErrInvalidClock, raw)
		}
		v, err := strconv.Atoi(p)
		if err != nil || v < 0 || v > limits[i] {
			return 0, 0, fmt.Errorf("%w: %q", ErrInvalidClock, raw)
		}
		values[i] = v
	}

	return values[0], values[1], nil
}
