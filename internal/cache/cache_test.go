package cache

import (
	"sync"
	"testing"
	"time"

	"github.com/smokyabdulrahman/sakeena/internal/api"
	"github.com/smokyabdulrahman/sakeena/internal/geo"
)

func sampleAPIResponse() *api.Response {
	return &api.Response{
		Code:   200,
		Status: "OK",
		Data: api.Data{
			Timings: api.Timings{Fajr: "05:00", Dhuhr: "12:15", Asr: "15:45", Maghrib: "18:10", Isha: "19:40"},
			Meta:    api.Meta{Timezone: "Africa/Cairo"},
		},
	}
}

var cairo = Key{City: "Cairo", Country: "Egypt", Method: 5, School: -1}

func TestTimings_RoundTrip(t *testing.T) {
	c := New()
	date := time.Date(2025, 3, 1, 13, 0, 0, 0, time.UTC)

	if got := c.LoadTimings(date, cairo); got != nil {
		t.Fatalf("empty cache returned %+v", got)
	}

	c.SaveTimings(date, cairo, sampleAPIResponse())

	// Any time on the same day hits.
	got := c.LoadTimings(date.Add(-10*time.Hour), cairo)
	if got == nil {
		t.Fatal("expected cache hit")
	}
	if got.Data.Timings.Asr != "15:45" {
		t.Errorf("Asr = %q, want 15:45", got.Data.Timings.Asr)
	}
}

func TestTimings_KeyedByParameters(t *testing.T) {
	c := New()
	date := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	c.SaveTimings(date, cairo, sampleAPIResponse())

	tests := []struct {
		name string
		date time.Time
		key  Key
	}{
		{"other day", date.AddDate(0, 0, 1), cairo},
		{"other city", date, Key{City: "Alexandria", Country: "Egypt", Method: 5, School: -1}},
		{"other method", date, Key{City: "Cairo", Country: "Egypt", Method: 4, School: -1}},
		{"other school", date, Key{City: "Cairo", Country: "Egypt", Method: 5, School: 1}},
		{"coordinates", date, Key{Lat: 30.04, Lon: 31.24, Method: 5, School: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.LoadTimings(tt.date, tt.key); got != nil {
				t.Errorf("expected miss, got hit")
			}
		})
	}
}

func TestCalendar_RoundTrip(t *testing.T) {
	c := New()
	resp := &api.CalendarResponse{Code: 200, Data: make([]api.Data, 31)}

	c.SaveCalendar(2025, 3, cairo, resp)

	if got := c.LoadCalendar(2025, 3, cairo); got == nil || len(got.Data) != 31 {
		t.Fatalf("expected 31-day hit, got %+v", got)
	}
	if got := c.LoadCalendar(2025, 4, cairo); got != nil {
		t.Error("other month should miss")
	}
}

func TestForget_DropsOnlyThatPlace(t *testing.T) {
	c := New()
	date := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	alex := Key{City: "Alexandria", Country: "Egypt", Method: 5, School: -1}

	c.SaveTimings(date, cairo, sampleAPIResponse())
	c.SaveCalendar(2025, 3, cairo, &api.CalendarResponse{Code: 200})
	c.SaveTimings(date, alex, sampleAPIResponse())

	c.Forget(cairo)

	if c.LoadTimings(date, cairo) != nil || c.LoadCalendar(2025, 3, cairo) != nil {
		t.Error("Forget kept Cairo entries")
	}
	if c.LoadTimings(date, alex) == nil {
		t.Error("Forget dropped another place")
	}
	if c.Len() != 1 {
		t.Errorf("Len = %d, want 1", c.Len())
	}
}

func TestSaveNil_Ignored(t *testing.T) {
	c := New()
	c.SaveTimings(time.Now(), cairo, nil)
	c.SaveCalendar(2025, 3, cairo, nil)
	c.SaveGeo(nil)

	if c.Len() != 0 {
		t.Errorf("Len = %d, want 0", c.Len())
	}
	if c.LoadGeo() != nil {
		t.Error("LoadGeo should be nil")
	}
}

func TestGeo_RoundTripIsCopied(t *testing.T) {
	c := New()
	loc := &geo.Location{Latitude: 30.04, Longitude: 31.24, City: "Cairo"}
	c.SaveGeo(loc)
	loc.City = "mutated"

	got := c.LoadGeo()
	if got == nil || got.City != "Cairo" {
		t.Fatalf("LoadGeo = %+v, want Cairo", got)
	}
	got.City = "again"
	if c.LoadGeo().City != "Cairo" {
		t.Error("LoadGeo should return a copy")
	}
}

func TestHashKey_Deterministic(t *testing.T) {
	a := hashKey("2025-03-01", cairo)
	b := hashKey("2025-03-01", cairo)
	if a != b {
		t.Errorf("hashKey not deterministic: %q vs %q", a, b)
	}
	if len(a) != 16 {
		t.Errorf("hashKey length = %d, want 16", len(a))
	}
}

func TestConcurrentAccess(t *testing.T) {
	c := New()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			date := time.Date(2025, 3, 1+i%5, 0, 0, 0, 0, time.UTC)
			c.SaveTimings(date, cairo, sampleAPIResponse())
			_ = c.LoadTimings(date, cairo)
		}(i)
	}
	wg.Wait()

	if c.Len() != 5 {
		t.Errorf("Len = %d, want 5", c.Len())
	}
}
