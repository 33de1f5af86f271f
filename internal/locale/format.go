package locale

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/smokyabdulrahman/sakeena/internal/prayer"
)

var monthsEn = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

var monthsAr = [12]string{
	"يناير", "فبراير", "مارس", "أبريل", "مايو", "يونيو",
	"يوليو", "أغسطس", "سبتمبر", "أكتوبر", "نوفمبر", "ديسمبر",
}

var prayerNamesAr = map[string]string{
	prayer.Fajr:    "الفجر",
	prayer.Dhuhr:   "الظهر",
	prayer.Asr:     "العصر",
	prayer.Maghrib: "المغرب",
	prayer.Isha:    "العشاء",
}

// Meridiem returns the AM/PM marker for a 24-hour clock hour.
func (l Locale) Meridiem(hour int) string {
	pm := hour >= 12
	switch {
	case l == Arabic && pm:
		return "م"
	case l == Arabic:
		return "ص"
	case pm:
		return "PM"
	default:
		return "AM"
	}
}

// FormatTime renders a stored "HH:MM[:SS]" string as "h:MM AM" (seconds
// dropped). With twentyFour set it renders "HH:MM" instead.
func (l Locale) FormatTime(clock string, twentyFour bool) (string, error) {
	norm, err := prayer.Normalize(clock)
	if err != nil {
		return "", err
	}
	if twentyFour {
		return l.Digits(norm), nil
	}

	hour, _ := strconv.Atoi(norm[:2])
	h12 := hour % 12
	if h12 == 0 {
		h12 = 12
	}
	s := fmt.Sprintf("%d:%s %s", h12, norm[3:], l.Meridiem(hour))
	return l.Digits(s), nil
}

// FormatTimeOr is FormatTime that returns fallback for unparsable input.
func (l Locale) FormatTimeOr(clock string, twentyFour bool, fallback string) string {
	s, err := l.FormatTime(clock, twentyFour)
	if err != nil {
		return fallback
	}
	return s
}

// FormatClock renders the live clock as "hh:mm:ss AM", keeping seconds.
func (l Locale) FormatClock(t time.Time, twentyFour bool) string {
	if twentyFour {
		return l.Digits(t.Format("15:04:05"))
	}
	h12 := t.Hour() % 12
	if h12 == 0 {
		h12 = 12
	}
	s := fmt.Sprintf("%02d:%02d:%02d %s", h12, t.Minute(), t.Second(), l.Meridiem(t.Hour()))
	return l.Digits(s)
}

// MonthName returns the Gregorian month name for a month number 1..12, or
// "" when out of range.
func (l Locale) MonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	if l == Arabic {
		return monthsAr[month-1]
	}
	return monthsEn[month-1]
}

// FormatGregorian renders "<day> <month> <year>". The English month name
// from the source is preferred; the table covers missing names and Arabic.
func (l Locale) FormatGregorian(g prayer.Gregorian) string {
	name := l.MonthName(g.Month)
	if l == English && g.MonthName != "" {
		name = g.MonthName
	}
	return l.Digits(joinDate(g.Day, name, g.Year))
}

// FormatHijri renders "<day> <month> <year>" with the source's month name
// for the locale.
func (l Locale) FormatHijri(h prayer.Hijri) string {
	name := h.MonthEn
	if l == Arabic && h.MonthAr != "" {
		name = h.MonthAr
	}
	return l.Digits(joinDate(h.Day, name, h.Year))
}

// PrayerName returns the display name of a canonical prayer name.
func (l Locale) PrayerName(name string) string {
	if l == Arabic {
		if ar, ok := prayerNamesAr[name]; ok {
			return ar
		}
	}
	return name
}

func joinDate(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}
