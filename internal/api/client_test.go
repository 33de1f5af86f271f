package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// sampleData returns one day as the Al Adhan API reports it for Cairo.
func sampleData(day int) Data {
	return Data{
		Timings: Timings{
			Fajr:    "05:00 (EET)",
			Sunrise: "06:25 (EET)",
			Dhuhr:   "12:15 (EET)",
			Asr:     "15:45 (EET)",
			Sunset:  "18:05 (EET)",
			Maghrib: "18:10 (EET)",
			Isha:    "19:40 (EET)",
		},
		Date: DateInfo{
			Readable: "01 Mar 2025",
			Gregorian: GregorianDate{
				Date:    fmt.Sprintf("%02d-03-2025", day),
				Day:     fmt.Sprintf("%02d", day),
				Weekday: Names{En: "Saturday"},
				Month:   GregorianMonth{Number: 3, En: "March"},
				Year:    "2025",
			},
			Hijri: HijriDate{
				Date:  "01-09-1446",
				Day:   "01",
				Month: HijriMonth{Number: 9, En: "Ramaḍān", Ar: "رَمَضان"},
				Year:  "1446",
			},
		},
		Meta: Meta{
			Latitude:  30.0444,
			Longitude: 31.2357,
			Timezone:  "Africa/Cairo",
			Method:    MethodInfo{ID: 5, Name: "Egyptian General Authority of Survey"},
		},
	}
}

func sampleResponse() Response {
	return Response{Code: 200, Status: "OK", Data: sampleData(1)}
}

func sampleCalendarResponse(days int) CalendarResponse {
	resp := CalendarResponse{Code: 200, Status: "OK"}
	for d := 1; d <= days; d++ {
		resp.Data = append(resp.Data, sampleData(d))
	}
	return resp
}

func newTestClient(url string) *Client {
	c := NewClient(zerolog.Nop())
	c.BaseURL = url
	return c
}

func TestNewClient(t *testing.T) {
	c := NewClient(zerolog.Nop())
	if c.BaseURL != defaultBaseURL {
		t.Errorf("BaseURL = %q, want %q", c.BaseURL, defaultBaseURL)
	}
	if c.Method != DefaultMethod {
		t.Errorf("Method = %d, want %d", c.Method, DefaultMethod)
	}
	if c.School != -1 {
		t.Errorf("School = %d, want -1", c.School)
	}
}

func TestFetchByCoordinates_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/timings/01-03-2025" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("latitude") != "30.0444" {
			t.Errorf("latitude = %q, want %q", q.Get("latitude"), "30.0444")
		}
		if q.Get("longitude") != "31.2357" {
			t.Errorf("longitude = %q, want %q", q.Get("longitude"), "31.2357")
		}
		if q.Get("method") != "5" {
			t.Errorf("method = %q, want %q", q.Get("method"), "5")
		}
		if q.Has("school") {
			t.Errorf("school should not be set, got %q", q.Get("school"))
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(sampleResponse())
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	date := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	got, err := c.FetchByCoordinates(context.Background(), date, 30.0444, 31.2357)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Data.Timings.Fajr != "05:00 (EET)" {
		t.Errorf("Fajr = %q, want %q", got.Data.Timings.Fajr, "05:00 (EET)")
	}
	if got.Data.Date.Hijri.Month.Number != 9 {
		t.Errorf("Hijri month = %d, want 9", got.Data.Date.Hijri.Month.Number)
	}
	if got.Data.Date.Hijri.Month.Ar != "رَمَضان" {
		t.Errorf("Hijri month ar = %q", got.Data.Date.Hijri.Month.Ar)
	}
}

func TestFetchByCoordinates_MethodAndSchool(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("method") != "4" {
			t.Errorf("method = %q, want %q", q.Get("method"), "4")
		}
		if q.Get("school") != "1" {
			t.Errorf("school = %q, want %q", q.Get("school"), "1")
		}
		json.NewEncoder(w).Encode(sampleResponse())
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	c.Method = 4
	c.School = 1

	if _, err := c.FetchByCoordinates(context.Background(), time.Now(), 1, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestFetchByCoordinates_NoMethod(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Has("method") {
			t.Errorf("method should not be set, got %q", r.URL.Query().Get("method"))
		}
		json.NewEncoder(w).Encode(sampleResponse())
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	c.Method = -1

	if _, err := c.FetchByCoordinates(context.Background(), time.Now(), 1, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestFetchByCity_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/timingsByCity/") {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("city") != "Cairo" {
			t.Errorf("city = %q, want %q", q.Get("city"), "Cairo")
		}
		if q.Get("country") != "Egypt" {
			t.Errorf("country = %q, want %q", q.Get("country"), "Egypt")
		}
		json.NewEncoder(w).Encode(sampleResponse())
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	got, err := c.FetchByCity(context.Background(), time.Now(), "Cairo", "Egypt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Data.Meta.Timezone != "Africa/Cairo" {
		t.Errorf("Timezone = %q, want %q", got.Data.Meta.Timezone, "Africa/Cairo")
	}
}

func TestFetchByCity_CityWithSpaces(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("city"); got != "New York" {
			t.Errorf("city = %q, want %q", got, "New York")
		}
		json.NewEncoder(w).Encode(sampleResponse())
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	if _, err := c.FetchByCity(context.Background(), time.Now(), "New York", "United States"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestFetch_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad city", http.StatusBadRequest)
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	_, err := c.FetchByCity(context.Background(), time.Now(), "Atlantis", "Nowhere")
	if err == nil {
		t.Fatal("expected error for HTTP 400, got nil")
	}
	if !errors.Is(err, ErrStatus) {
		t.Errorf("error %v should wrap ErrStatus", err)
	}
	if !strings.Contains(err.Error(), "400") {
		t.Errorf("error should mention status code, got: %v", err)
	}
}

func TestFetch_InvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{not json"))
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	_, err := c.FetchByCoordinates(context.Background(), time.Now(), 1, 2)
	if err == nil {
		t.Fatal("expected decode error, got nil")
	}
	if !strings.Contains(err.Error(), "decode") {
		t.Errorf("error should mention decode, got: %v", err)
	}
}

func TestFetch_APIErrorCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(Response{Code: 400, Status: "Bad Request"})
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	_, err := c.FetchByCoordinates(context.Background(), time.Now(), 1, 2)
	if !errors.Is(err, ErrStatus) {
		t.Fatalf("expected ErrStatus, got %v", err)
	}
	if !strings.Contains(err.Error(), "Bad Request") {
		t.Errorf("error should include API status, got: %v", err)
	}
}

func TestFetch_ConnectionRefused(t *testing.T) {
	c := newTestClient("http://127.0.0.1:1")
	if _, err := c.FetchByCoordinates(context.Background(), time.Now(), 1, 2); err == nil {
		t.Fatal("expected connection error, got nil")
	}
}

func TestFetch_ContextCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(sampleResponse())
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := newTestClient(server.URL)
	_, err := c.FetchByCity(ctx, time.Now(), "Cairo", "Egypt")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestFetchCalendarByCoordinates_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/calendar" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("month") != "3" || q.Get("year") != "2025" {
			t.Errorf("month/year = %q/%q, want 3/2025", q.Get("month"), q.Get("year"))
		}
		if q.Get("latitude") == "" || q.Get("longitude") == "" {
			t.Error("missing coordinates")
		}
		json.NewEncoder(w).Encode(sampleCalendarResponse(31))
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	got, err := c.FetchCalendarByCoordinates(context.Background(), 2025, 3, 30.0444, 31.2357)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Data) != 31 {
		t.Errorf("days = %d, want 31", len(got.Data))
	}
}

func TestFetchCalendarByCity_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/calendarByCity" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("city") != "Cairo" || q.Get("country") != "Egypt" {
			t.Errorf("city/country = %q/%q", q.Get("city"), q.Get("country"))
		}
		if q.Get("method") != "5" {
			t.Errorf("method = %q, want 5", q.Get("method"))
		}
		json.NewEncoder(w).Encode(sampleCalendarResponse(28))
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	got, err := c.FetchCalendarByCity(context.Background(), 2025, 2, "Cairo", "Egypt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Data) != 28 {
		t.Errorf("days = %d, want 28", len(got.Data))
	}
}

func TestFetchCalendar_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	if _, err := c.FetchCalendarByCity(context.Background(), 2025, 3, "Cairo", "Egypt"); !errors.Is(err, ErrStatus) {
		t.Errorf("expected ErrStatus, got %v", err)
	}
}
