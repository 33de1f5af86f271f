// Package source turns Al Adhan API responses into prayer days, memoizing
// them for the rest of the session.
package source

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/smokyabdulrahman/sakeena/internal/api"
	"github.com/smokyabdulrahman/sakeena/internal/cache"
	"github.com/smokyabdulrahman/sakeena/internal/geo"
	"github.com/smokyabdulrahman/sakeena/internal/prayer"
)

// Place identifies where times are fetched for: either coordinates or a
// city and country.
type Place struct {
	City    string  `json:"city,omitempty"`
	Country string  `json:"country,omitempty"`
	Lat     float64 `json:"latitude,omitempty"`
	Lon     float64 `json:"longitude,omitempty"`
	ByCity  bool    `json:"-"`
}

// CityPlace returns a place resolved by name.
func CityPlace(city, country string) Place {
	return Place{City: city, Country: country, ByCity: true}
}

// CoordinatePlace returns a place resolved by coordinates.
func CoordinatePlace(lat, lon float64) Place {
	return Place{Lat: lat, Lon: lon}
}

// Label renders the place the way it is shown to the user: "City, Country"
// or "lat, lon" with two decimals.
func (p Place) Label() string {
	if p.ByCity {
		return fmt.Sprintf("%s, %s", p.City, p.Country)
	}
	return fmt.Sprintf("%.2f, %.2f", p.Lat, p.Lon)
}

// Source fetches prayer days from the API through the session cache.
type Source struct {
	client *api.Client
	cache  *cache.Cache
	log    zerolog.Logger

	// Now returns the reference date for "today". Overridable in tests.
	Now func() time.Time
}

// New creates a Source. A nil cache disables memoization.
func New(client *api.Client, c *cache.Cache, log zerolog.Logger) *Source {
	return &Source{
		client: client,
		cache:  c,
		log:    log.With().Str("component", "source").Logger(),
		Now:    time.Now,
	}
}

func (s *Source) key(p Place) cache.Key {
	k := cache.Key{Method: s.client.Method, School: s.client.School}
	if p.ByCity {
		k.City, k.Country = p.City, p.Country
	} else {
		k.Lat, k.Lon = p.Lat, p.Lon
	}
	return k
}

// TimingsByCoordinates returns today's prayer day for a latitude/longitude.
func (s *Source) TimingsByCoordinates(ctx context.Context, lat, lon float64) (prayer.Day, error) {
	return s.Today(ctx, CoordinatePlace(lat, lon))
}

// TimingsByCity returns today's prayer day for a city and country.
func (s *Source) TimingsByCity(ctx context.Context, city, country string) (prayer.Day, error) {
	return s.Today(ctx, CityPlace(city, country))
}

// Today returns today's prayer day for p. "Today" is the date at the
// place: when the record fetched for the local date reports a timezone in
// which the date is different, the day at the place is fetched instead.
func (s *Source) Today(ctx context.Context, p Place) (prayer.Day, error) {
	now := s.Now()
	d, err := s.timings(ctx, p, now)
	if err != nil {
		return prayer.Day{}, err
	}

	if d.Timezone == "" {
		return d, nil
	}
	loc, err := time.LoadLocation(d.Timezone)
	if err != nil {
		s.log.Debug().Err(err).Str("timezone", d.Timezone).Msg("unknown timezone, keeping local date")
		return d, nil
	}
	there := now.In(loc)
	if there.Format(dateLayout) == d.Date.Gregorian.Date {
		return d, nil
	}

	s.log.Debug().Str("place", p.Label()).Str("date", there.Format(dateLayout)).Msg("place is on another date")
	return s.timings(ctx, p, there)
}

// dateLayout matches the Gregorian date of API records.
const dateLayout = "02-01-2006"

func (s *Source) timings(ctx context.Context, p Place, date time.Time) (prayer.Day, error) {
	k := s.key(p)

	if s.cache != nil {
		if resp := s.cache.LoadTimings(date, k); resp != nil {
			s.log.Debug().Str("place", p.Label()).Msg("timings from cache")
			return prayer.FromAPI(resp.Data), nil
		}
	}

	var (
		resp *api.Response
		err  error
	)
	if p.ByCity {
		resp, err = s.client.FetchByCity(ctx, date, p.City, p.Country)
	} else {
		resp, err = s.client.FetchByCoordinates(ctx, date, p.Lat, p.Lon)
	}
	if err != nil {
		return prayer.Day{}, fmt.Errorf("fetching timings for %s: %w", p.Label(), err)
	}

	if s.cache != nil {
		s.cache.SaveTimings(date, k, resp)
	}
	return prayer.FromAPI(resp.Data), nil
}

// Forget drops the days and months memoized for p, so the next request
// reaches the API.
func (s *Source) Forget(p Place) {
	if s.cache != nil {
		s.cache.Forget(s.key(p))
	}
}

// MonthCalendar returns every day of the Gregorian month for p, in the
// order the API delivers them (up to 31 entries).
func (s *Source) MonthCalendar(ctx context.Context, p Place, month time.Month, year int) ([]prayer.Day, error) {
	k := s.key(p)
	m := int(month)

	if s.cache != nil {
		if resp := s.cache.LoadCalendar(year, m, k); resp != nil {
			s.log.Debug().Str("place", p.Label()).Int("month", m).Int("year", year).Msg("calendar from cache")
			return prayer.FromCalendar(resp.Data, 0), nil
		}
	}

	var (
		resp *api.CalendarResponse
		err  error
	)
	if p.ByCity {
		resp, err = s.client.FetchCalendarByCity(ctx, year, m, p.City, p.Country)
	} else {
		resp, err = s.client.FetchCalendarByCoordinates(ctx, year, m, p.Lat, p.Lon)
	}
	if err != nil {
		return nil, fmt.Errorf("fetching calendar %04d-%02d for %s: %w", year, m, p.Label(), err)
	}

	if s.cache != nil {
		s.cache.SaveCalendar(year, m, k, resp)
	}
	return prayer.FromCalendar(resp.Data, 0), nil
}

// Locator finds the user's approximate position.
type Locator func(ctx context.Context) (*geo.Location, error)

// CachedLocator wraps detect so that a position found once is reused for
// the rest of the session. Failures are not remembered.
func CachedLocator(c *cache.Cache, detect Locator) Locator {
	return func(ctx context.Context) (*geo.Location, error) {
		if loc := c.LoadGeo(); loc != nil {
			return loc, nil
		}
		loc, err := detect(ctx)
		if err != nil {
			return nil, err
		}
		c.SaveGeo(loc)
		return loc, nil
	}
}
