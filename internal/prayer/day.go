package prayer

import (
	"github.com/smokyabdulrahman/sakeena/internal/api"
)

// Gregorian is the civil date of a Day.
type Gregorian struct {
	Date      string `json:"date"` // "DD-MM-YYYY"
	Day       string `json:"day"`
	Weekday   string `json:"weekday"`
	Month     int    `json:"month"`
	MonthName string `json:"month_name"`
	Year      string `json:"year"`
}

// Hijri is the Islamic calendar date of a Day. Month names come from the
// source in both languages.
type Hijri struct {
	Date    string `json:"date"`
	Day     string `json:"day"`
	Month   int    `json:"month"`
	MonthEn string `json:"month_en"`
	MonthAr string `json:"month_ar"`
	Year    string `json:"year"`
}

// DateInfo pairs the two calendars. Both describe the same day and are not
// cross-checked.
type DateInfo struct {
	Gregorian Gregorian `json:"gregorian"`
	Hijri     Hijri     `json:"hijri"`
}

// Day is the unit of the schedule: one date and its five prayer times.
type Day struct {
	Date     DateInfo `json:"date"`
	Times    Times    `json:"timings"`
	Timezone string   `json:"timezone,omitempty"`
}

// RamadanMonth is the Hijri month number of Ramadan.
const RamadanMonth = 9

// Ramadan reports whether the day falls in Ramadan.
func (d Day) Ramadan() bool {
	return d.Date.Hijri.Month == RamadanMonth
}

// FromAPI converts one API record into a Day.
func FromAPI(d api.Data) Day {
	g := d.Date.Gregorian
	h := d.Date.Hijri
	return Day{
		Date: DateInfo{
			Gregorian: Gregorian{
				Date:      g.Date,
				Day:       g.Day,
				Weekday:   g.Weekday.En,
				Month:     g.Month.Number,
				MonthName: g.Month.En,
				Year:      g.Year,
			},
			Hijri: Hijri{
				Date:    h.Date,
				Day:     h.Day,
				Month:   h.Month.Number,
				MonthEn: h.Month.En,
				MonthAr: h.Month.Ar,
				Year:    h.Year,
			},
		},
		Times: Times{
			Fajr:    d.Timings.Fajr,
			Dhuhr:   d.Timings.Dhuhr,
			Asr:     d.Timings.Asr,
			Maghrib: d.Timings.Maghrib,
			Isha:    d.Timings.Isha,
		},
		Timezone: d.Meta.Timezone,
	}
}

// FromCalendar converts a month of API records, keeping at most limit days.
// A limit <= 0 keeps all of them.
func FromCalendar(data []api.Data, limit int) []Day {
	if limit > 0 && len(data) > limit {
		data = data[:limit]
	}
	days := make([]Day, 0, len(data))
	for _, d := range data {
		days = append(days, FromAPI(d))
	}
	return days
}
