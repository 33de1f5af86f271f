package prayer

import (
	"errors"
	"testing"
	"time"

	"github.com/smokyabdulrahman/sakeena/internal/api"
)

// sampleTimes is the day used throughout the scenarios.
func sampleTimes() Times {
	return Times{
		Fajr:    "05:00",
		Dhuhr:   "12:15",
		Asr:     "15:45",
		Maghrib: "18:10",
		Isha:    "19:40",
	}
}

func at(hour, min, sec int) time.Time {
	return time.Date(2025, 3, 1, hour, min, sec, 0, time.UTC)
}

// ---------------------------------------------------------------------------
// Normalize
// ---------------------------------------------------------------------------

func TestNormalize(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{"simple HH:MM", "15:02", "15:02", false},
		{"midnight", "00:00", "00:00", false},
		{"single digit hour", "5:07", "05:07", false},
		{"with seconds", "05:07:30", "05:07", false},
		{"with timezone suffix", "15:02 (BST)", "15:02", false},
		{"with spaces and suffix", "  05:17  (EET) ", "05:17", false},
		{"invalid format", "bad", "", true},
		{"empty string", "", "", true},
		{"missing minute", "15:", "", true},
		{"non-numeric", "ab:cd", "", true},
		{"hour out of range", "24:00", "", true},
		{"minute out of range", "12:60", "", true},
		{"too many digits", "005:00", "", true},
		{"negative", "-1:00", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Normalize(%q) expected error, got %q", tt.raw, got)
				}
				if !errors.Is(err, ErrInvalidClock) {
					t.Errorf("Normalize(%q) error %v should wrap ErrInvalidClock", tt.raw, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Normalize(%q) unexpected error: %v", tt.raw, err)
			}
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestClock_ZeroPadded(t *testing.T) {
	if got := Clock(at(7, 5, 59)); got != "07:05" {
		t.Errorf("Clock = %q, want %q", got, "07:05")
	}
}

// ---------------------------------------------------------------------------
// Next
// ---------------------------------------------------------------------------

func TestNext_Scenarios(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want string
	}{
		{"after dhuhr", at(13, 0, 0), Asr},
		{"after isha", at(20, 0, 0), Fajr},
		{"before fajr", at(3, 0, 0), Fajr},
		{"just after midnight", at(0, 0, 0), Fajr},
		{"one minute before fajr", at(4, 59, 59), Fajr},
		{"exactly fajr", at(5, 0, 0), Dhuhr},
		{"exactly fajr ignores seconds", at(5, 0, 45), Dhuhr},
		{"exactly isha", at(19, 40, 0), Fajr},
		{"between asr and maghrib", at(16, 0, 0), Maghrib},
		{"between maghrib and isha", at(18, 30, 0), Isha},
		{"late night", at(23, 59, 59), Fajr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Next(sampleTimes(), tt.now); got != tt.want {
				t.Errorf("Next at %s = %s, want %s", tt.now.Format("15:04:05"), got, tt.want)
			}
		})
	}
}

// TestNext_EveryMinute checks the interval property over a whole day:
// for prayer[i] <= t < prayer[i+1] the next prayer is prayer[i+1], and
// before Fajr or from Isha on it is Fajr.
func TestNext_EveryMinute(t *testing.T) {
	times := sampleTimes()
	bounds := []int{5 * 60, 12*60 + 15, 15*60 + 45, 18*60 + 10, 19*60 + 40}

	for minute := 0; minute < 24*60; minute++ {
		now := at(minute/60, minute%60, 0)

		want := Fajr
		for i, b := range bounds {
			if minute < b {
				want = Names[i]
				break
			}
		}

		if got := Next(times, now); got != want {
			t.Fatalf("Next at %s = %s, want %s", now.Format("15:04"), got, want)
		}
	}
}

func TestNext_TimezoneSuffixes(t *testing.T) {
	times := Times{
		Fajr:    "05:00 (EET)",
		Dhuhr:   "12:15 (EET)",
		Asr:     "15:45 (EET)",
		Maghrib: "18:10 (EET)",
		Isha:    "19:40 (EET)",
	}
	if got := Next(times, at(13, 0, 0)); got != Asr {
		t.Errorf("Next = %s, want Asr", got)
	}
}

func TestNext_UnpaddedHourIsNormalized(t *testing.T) {
	// Raw lexical comparison would put "5:00" after "13:00".
	times := sampleTimes()
	times.Fajr = "5:00"

	if got := Next(times, at(4, 0, 0)); got != Fajr {
		t.Errorf("Next = %s, want Fajr", got)
	}
	if got := Next(times, at(13, 0, 0)); got != Asr {
		t.Errorf("Next = %s, want Asr", got)
	}
}

func TestNext_SkipsInvalidEntries(t *testing.T) {
	times := sampleTimes()
	times.Asr = "garbage"

	if got := Next(times, at(13, 0, 0)); got != Maghrib {
		t.Errorf("Next = %s, want Maghrib", got)
	}
}

func TestNext_AllInvalidFallsBackToFajr(t *testing.T) {
	if got := Next(Times{}, at(13, 0, 0)); got != Fajr {
		t.Errorf("Next = %s, want Fajr", got)
	}
}

// ---------------------------------------------------------------------------
// Current
// ---------------------------------------------------------------------------

func TestCurrent(t *testing.T) {
	tests := []struct {
		now  time.Time
		want string
	}{
		{at(3, 0, 0), ""},
		{at(5, 0, 0), Fajr},
		{at(13, 0, 0), Dhuhr},
		{at(19, 40, 0), Isha},
		{at(23, 0, 0), Isha},
	}

	for _, tt := range tests {
		if got := Current(sampleTimes(), tt.now); got != tt.want {
			t.Errorf("Current at %s = %q, want %q", tt.now.Format("15:04"), got, tt.want)
		}
	}
}

// ---------------------------------------------------------------------------
// Until
// ---------------------------------------------------------------------------

func TestUntil_SameDay(t *testing.T) {
	d, err := Until(sampleTimes(), Asr, at(13, 30, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := 2*time.Hour + 15*time.Minute; d != want {
		t.Errorf("Until = %v, want %v", d, want)
	}
}

func TestUntil_RollsOverToTomorrow(t *testing.T) {
	d, err := Until(sampleTimes(), Fajr, at(20, 0, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := 9 * time.Hour; d != want {
		t.Errorf("Until = %v, want %v", d, want)
	}
}

func TestUntil_Errors(t *testing.T) {
	if _, err := Until(sampleTimes(), "Tahajjud", at(1, 0, 0)); err == nil {
		t.Error("expected error for unknown prayer")
	}

	times := sampleTimes()
	times.Isha = "??"
	if _, err := Until(times, Isha, at(1, 0, 0)); !errors.Is(err, ErrInvalidClock) {
		t.Errorf("expected ErrInvalidClock, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// FormatRemaining
// ---------------------------------------------------------------------------

func TestFormatRemaining(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{2*time.Hour + 15*time.Minute, "2h 15m"},
		{time.Hour, "1h 0m"},
		{45 * time.Minute, "45m"},
		{30 * time.Second, "0m"},
		{0, "0m"},
		{-5 * time.Minute, "0m"},
	}

	for _, tt := range tests {
		if got := FormatRemaining(tt.d); got != tt.want {
			t.Errorf("FormatRemaining(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

// ---------------------------------------------------------------------------
// Lookup, Day
// ---------------------------------------------------------------------------

func TestLookup(t *testing.T) {
	if got, ok := Lookup(" maghrib "); !ok || got != Maghrib {
		t.Errorf("Lookup(maghrib) = %q, %v", got, ok)
	}
	if _, ok := Lookup("Sunrise"); ok {
		t.Error("Sunrise is not one of the five prayers")
	}
}

func TestShortNames_AllPrayers(t *testing.T) {
	for _, name := range Names {
		if ShortNames[name] == "" {
			t.Errorf("missing short name for %s", name)
		}
	}
}

func TestFromAPI(t *testing.T) {
	d := api.Data{
		Timings: api.Timings{Fajr: "05:00", Sunrise: "06:20", Dhuhr: "12:15", Asr: "15:45", Maghrib: "18:10", Isha: "19:40"},
		Date: api.DateInfo{
			Gregorian: api.GregorianDate{
				Date: "01-03-2025", Day: "01", Year: "2025",
				Weekday: api.Names{En: "Saturday"},
				Month:   api.GregorianMonth{Number: 3, En: "March"},
			},
			Hijri: api.HijriDate{
				Date: "01-09-1446", Day: "01", Year: "1446",
				Month: api.HijriMonth{Number: 9, En: "Ramaḍān", Ar: "رَمَضان"},
			},
		},
		Meta: api.Meta{Timezone: "Africa/Cairo"},
	}

	day := FromAPI(d)
	if day.Times != sampleTimes() {
		t.Errorf("Times = %+v", day.Times)
	}
	if day.Date.Gregorian.Month != 3 || day.Date.Gregorian.MonthName != "March" || day.Date.Gregorian.Weekday != "Saturday" {
		t.Errorf("Gregorian = %+v", day.Date.Gregorian)
	}
	if day.Date.Hijri.MonthAr != "رَمَضان" || day.Date.Hijri.Month != 9 {
		t.Errorf("Hijri = %+v", day.Date.Hijri)
	}
	if day.Timezone != "Africa/Cairo" {
		t.Errorf("Timezone = %q", day.Timezone)
	}
	if !day.Ramadan() {
		t.Error("Hijri month 9 should be Ramadan")
	}
}

func TestRamadan(t *testing.T) {
	for month := 1; month <= 12; month++ {
		d := Day{Date: DateInfo{Hijri: Hijri{Month: month}}}
		if got, want := d.Ramadan(), month == 9; got != want {
			t.Errorf("Ramadan() for month %d = %v, want %v", month, got, want)
		}
	}
}

func TestFromCalendar_Limit(t *testing.T) {
	data := make([]api.Data, 31)
	for i := range data {
		data[i].Date.Gregorian.Day = string(rune('0' + i%10))
	}

	if got := FromCalendar(data, 30); len(got) != 30 {
		t.Errorf("len = %d, want 30", len(got))
	}
	if got := FromCalendar(data[:28], 30); len(got) != 28 {
		t.Errorf("len = %d, want 28", len(got))
	}
	if got := FromCalendar(data, 0); len(got) != 31 {
		t.Errorf("len = %d, want 31", len(got))
	}
}
