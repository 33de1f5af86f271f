package api

// Response is the envelope of the single-day endpoints
// (/timings and /timingsByCity).
type Response struct {
	Code   int    `json:"code"`
	Status string `json:"status"`
	Data   Data   `json:"data"`
}

// CalendarResponse is the envelope of the month endpoints
// (/calendar and /calendarByCity). Data holds one entry per day.
type CalendarResponse struct {
	Code   int    `json:"code"`
	Status string `json:"status"`
	Data   []Data `json:"data"`
}

// Data is one day of prayer timings with its dates and request metadata.
type Data struct {
	Timings Timings  `json:"timings"`
	Date    DateInfo `json:"date"`
	Meta    Meta     `json:"meta"`
}

// Timings contains the day's times as "HH:MM" strings. The API may append a
// zone annotation like " (EET)"; callers normalize before comparing.
type Timings struct {
	Fajr     string `json:"Fajr"`
	Sunrise  string `json:"Sunrise"`
	Dhuhr    string `json:"Dhuhr"`
	Asr      string `json:"Asr"`
	Sunset   string `json:"Sunset"`
	Maghrib  string `json:"Maghrib"`
	Isha     string `json:"Isha"`
	Imsak    string `json:"Imsak"`
	Midnight string `json:"Midnight"`
}

// DateInfo carries the Gregorian and Hijri representation of the same day.
type DateInfo struct {
	Readable  string        `json:"readable"`
	Timestamp string        `json:"timestamp"`
	Hijri     HijriDate     `json:"hijri"`
	Gregorian GregorianDate `json:"gregorian"`
}

// HijriDate is the Islamic calendar date.
type HijriDate struct {
	Date    string     `json:"date"` // "DD-MM-YYYY"
	Day     string     `json:"day"`
	Weekday Names      `json:"weekday"`
	Month   HijriMonth `json:"month"`
	Year    string     `json:"year"`
}

// HijriMonth names the month in both locales.
type HijriMonth struct {
	Number int    `json:"number"`
	En     string `json:"en"`
	Ar     string `json:"ar"`
}

// GregorianDate is the civil calendar date.
type GregorianDate struct {
	Date    string         `json:"date"` // "DD-MM-YYYY"
	Day     string         `json:"day"`
	Weekday Names          `json:"weekday"`
	Month   GregorianMonth `json:"month"`
	Year    string         `json:"year"`
}

// GregorianMonth carries the month number and its English name.
type GregorianMonth struct {
	Number int    `json:"number"`
	En     string `json:"en"`
}

// Names is a bilingual label. The Gregorian weekday only has "en".
type Names struct {
	En string `json:"en"`
	Ar string `json:"ar,omitempty"`
}

// Meta describes how the times were computed.
type Meta struct {
	Latitude  float64    `json:"latitude"`
	Longitude float64    `json:"longitude"`
	Timezone  string     `json:"timezone"`
	Method    MethodInfo `json:"method"`
	School    string     `json:"school"`
}

// MethodInfo identifies the calculation method used.
type MethodInfo struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
