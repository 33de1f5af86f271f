// Package view holds the state of the prayer schedule screen and derives
// everything the screen shows from it.
package view

import (
	"time"

	"github.com/smokyabdulrahman/sakeena/internal/locale"
	"github.com/smokyabdulrahman/sakeena/internal/prayer"
	"github.com/smokyabdulrahman/sakeena/internal/source"
)

// ScheduleDays is the number of days shown in the schedule table.
const ScheduleDays = 30

// State is owned by a single goroutine; it is not safe for concurrent use.
type State struct {
	Locale     locale.Locale
	TwentyFour bool

	Now      time.Time
	Location string
	Place    source.Place
	Today    *prayer.Day
	Month    []prayer.Day
	Next     string
	Loading  bool

	seq  int
	zone *time.Location
}

// New creates the state shown before anything has been fetched.
func New(loc locale.Locale, twentyFour bool, now time.Time) *State {
	return &State{
		Locale:     loc,
		TwentyFour: twentyFour,
		Now:        now,
		Loading:    true,
	}
}

// Begin marks the start of a load and returns its sequence number. Results
// of any earlier load are ignored from now on.
func (s *State) Begin() int {
	s.seq++
	s.Loading = true
	return s.seq
}

// Seq returns the sequence number of the latest load.
func (s *State) Seq() int { return s.seq }

// Apply merges the outcome of a load. It reports false and leaves the state
// untouched when r belongs to a superseded load.
func (s *State) Apply(r Result) bool {
	if r.Seq != s.seq {
		return false
	}
	s.Loading = false

	if r.Today != nil {
		d := *r.Today
		s.Today = &d
		s.Place = r.Place
		s.zone = nil
		if d.Timezone != "" {
			if z, err := time.LoadLocation(d.Timezone); err == nil {
				s.zone = z
			}
		}
	}
	if r.Label != "" {
		s.Location = r.Label
	}
	if r.Month != nil {
		month := r.Month
		if len(month) > ScheduleDays {
			month = month[:ScheduleDays]
		}
		s.Month = append([]prayer.Day(nil), month...)
	}

	s.Tick(s.Now)
	return true
}

// Tick advances the clock and re-evaluates the next prayer. The clock is
// shown in the timezone of the fetched place when one is known.
func (s *State) Tick(now time.Time) {
	if s.zone != nil {
		now = now.In(s.zone)
	}
	s.Now = now
	if s.Today == nil {
		s.Next = ""
		return
	}
	s.Next = prayer.Next(s.Today.Times, now)
}

// ToggleLocale switches the display language and returns the new one.
func (s *State) ToggleLocale() locale.Locale {
	s.Locale = s.Locale.Toggle()
	return s.Locale
}

// Ramadan reports whether today's Hijri month is Ramadan.
func (s *State) Ramadan() bool {
	return s.Today != nil && s.Today.Ramadan()
}

// LocationLabel returns the location line. The unresolved marker is shown
// translated; everything else only gets the locale's numerals.
func (s *State) LocationLabel() string {
	switch s.Location {
	case "":
		return s.Locale.Text(locale.Loading)
	case UnresolvedLocation:
		return s.Locale.Text(locale.UnresolvedLocation)
	default:
		return s.Locale.Digits(s.Location)
	}
}

// ClockLabel returns the live clock.
func (s *State) ClockLabel() string {
	return s.Locale.FormatClock(s.Now, s.TwentyFour)
}

// GregorianLabel returns today's civil date, or "" before the first load.
func (s *State) GregorianLabel() string {
	if s.Today == nil {
		return ""
	}
	return s.Locale.FormatGregorian(s.Today.Date.Gregorian)
}

// HijriLabel returns today's Hijri date, or "" before the first load.
func (s *State) HijriLabel() string {
	if s.Today == nil {
		return ""
	}
	return s.Locale.FormatHijri(s.Today.Date.Hijri)
}

// Card is one prayer of today's card grid.
type Card struct {
	Name  string
	Label string
	Time  string
	Next  bool
}

// Cards returns today's five prayers in day order.
func (s *State) Cards() []Card {
	if s.Today == nil {
		return nil
	}
	cards := make([]Card, 0, len(prayer.Names))
	for _, name := range prayer.Names {
		raw, _ := s.Today.Times.Get(name)
		cards = append(cards, Card{
			Name:  name,
			Label: s.Locale.PrayerName(name),
			Time:  s.Locale.FormatTimeOr(raw, s.TwentyFour, raw),
			Next:  name == s.Next,
		})
	}
	return cards
}

// Row is one day of the schedule table.
type Row struct {
	Gregorian string
	Hijri     string
	Times     []string
	Today     bool
}

// Rows returns the schedule table. A row is marked as today when its civil
// date matches the clock.
func (s *State) Rows() []Row {
	today := s.Now.Format("02-01-2006")
	rows := make([]Row, 0, len(s.Month))
	for _, d := range s.Month {
		times := make([]string, 0, len(prayer.Names))
		for _, name := range prayer.Names {
			raw, _ := d.Times.Get(name)
			times = append(times, s.Locale.FormatTimeOr(raw, s.TwentyFour, raw))
		}
		rows = append(rows, Row{
			Gregorian: s.Locale.FormatGregorian(d.Date.Gregorian),
			Hijri:     s.Locale.FormatHijri(d.Date.Hijri),
			Times:     times,
			Today:     d.Date.Gregorian.Date == today,
		})
	}
	return rows
}

// Headers returns the schedule table headings.
func (s *State) Headers() []string {
	headers := []string{
		s.Locale.Text(locale.GregorianDate),
		s.Locale.Text(locale.HijriDate),
	}
	for _, name := range prayer.Names {
		headers = append(headers, s.Locale.PrayerName(name))
	}
	return headers
}

// Upcoming returns the next prayer with its localized time and the time
// left until it. ok is false before the first load.
func (s *State) Upcoming() (u prayer.Upcoming, ok bool) {
	if s.Today == nil || s.Next == "" {
		return prayer.Upcoming{}, false
	}
	raw, _ := s.Today.Times.Get(s.Next)
	u = prayer.Upcoming{
		Name:  s.Next,
		Label: s.Locale.PrayerName(s.Next),
		Time:  s.Locale.FormatTimeOr(raw, s.TwentyFour, raw),
	}
	if d, err := prayer.Until(s.Today.Times, s.Next, s.Now); err == nil {
		u.Remaining = d
	}
	return u, true
}
