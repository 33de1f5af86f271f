package view

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/smokyabdulrahman/sakeena/internal/prayer"
	"github.com/smokyabdulrahman/sakeena/internal/source"
)

// Fallback place used when the user's position cannot be used.
const (
	DefaultCity    = "Cairo"
	DefaultCountry = "Egypt"
)

// UnresolvedLocation is stored as the location label when a city search
// fails. It is kept in English and translated on display.
const UnresolvedLocation = "Unable to fetch location"

// ErrUnresolved is returned in a Result when a city could not be resolved.
var ErrUnresolved = errors.New("unable to fetch location")

// Fetcher supplies prayer days.
type Fetcher interface {
	TimingsByCoordinates(ctx context.Context, lat, lon float64) (prayer.Day, error)
	TimingsByCity(ctx context.Context, city, country string) (prayer.Day, error)
	MonthCalendar(ctx context.Context, p source.Place, month time.Month, year int) ([]prayer.Day, error)
	// Forget drops anything memoized for p.
	Forget(p source.Place)
}

// Result is the outcome of one load. Nil fields leave the matching state
// untouched when applied.
type Result struct {
	Seq   int
	Place source.Place
	Label string
	Today *prayer.Day
	Month []prayer.Day
	Err   error
}

// Loader runs the fetch sequences behind the screen: start-up, city search
// and refresh. Fetches inside one load are sequential.
type Loader struct {
	Fetcher Fetcher
	Locate  source.Locator
	Log     zerolog.Logger
	// Now is used for the month of the calendar when today's record does
	// not carry one.
	Now func() time.Time
}

// NewLoader creates a loader.
func NewLoader(f Fetcher, locate source.Locator, log zerolog.Logger) *Loader {
	return &Loader{
		Fetcher: f,
		Locate:  locate,
		Log:     log.With().Str("component", "loader").Logger(),
		Now:     time.Now,
	}
}

// Initial resolves the place to show at start-up. A configured place wins;
// otherwise the user's position is located. If locating or fetching by
// coordinates fails, the default city is used instead.
func (l *Loader) Initial(ctx context.Context, seq int, configured *source.Place) Result {
	if configured != nil && configured.ByCity {
		return l.Search(ctx, seq, configured.City, configured.Country)
	}

	var lat, lon float64
	if configured != nil {
		lat, lon = configured.Lat, configured.Lon
	} else {
		if l.Locate == nil {
			return l.fallback(ctx, seq)
		}
		loc, err := l.Locate(ctx)
		if err != nil {
			l.Log.Warn().Err(err).Msg("geolocation failed, using default location")
			return l.fallback(ctx, seq)
		}
		lat, lon = loc.Latitude, loc.Longitude
	}

	r, err := l.coordinates(ctx, seq, lat, lon)
	if err != nil {
		l.Log.Warn().Err(err).Float64("lat", lat).Float64("lon", lon).Msg("fetch by coordinates failed, using default location")
		return l.fallback(ctx, seq)
	}
	return r
}

// Search fetches a city. On failure the label becomes UnresolvedLocation
// and previously shown times stay in place.
func (l *Loader) Search(ctx context.Context, seq int, city, country string) Result {
	r, err := l.city(ctx, seq, city, country)
	if err != nil {
		l.Log.Warn().Err(err).Str("city", city).Str("country", country).Msg("fetch by city failed")
		return Result{
			Seq:   seq,
			Label: UnresolvedLocation,
			Err:   fmt.Errorf("%w: %s: %v", ErrUnresolved, source.CityPlace(city, country).Label(), err),
		}
	}
	return r
}

// Refresh fetches the given place again, bypassing anything memoized for
// it. On failure the Result carries only Err, so what is shown stays.
func (l *Loader) Refresh(ctx context.Context, seq int, p source.Place) Result {
	l.Fetcher.Forget(p)

	var (
		r   Result
		err error
	)
	if p.ByCity {
		r, err = l.city(ctx, seq, p.City, p.Country)
	} else {
		r, err = l.coordinates(ctx, seq, p.Lat, p.Lon)
	}
	if err != nil {
		l.Log.Warn().Err(err).Str("place", p.Label()).Msg("refresh failed")
		return Result{Seq: seq, Err: err}
	}
	return r
}

func (l *Loader) fallback(ctx context.Context, seq int) Result {
	return l.Search(ctx, seq, DefaultCity, DefaultCountry)
}

func (l *Loader) city(ctx context.Context, seq int, city, country string) (Result, error) {
	place := source.CityPlace(city, country)

	today, err := l.Fetcher.TimingsByCity(ctx, city, country)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Seq:   seq,
		Place: place,
		Label: place.Label(),
		Today: &today,
		Month: l.month(ctx, place, today),
	}, nil
}

func (l *Loader) coordinates(ctx context.Context, seq int, lat, lon float64) (Result, error) {
	place := source.CoordinatePlace(lat, lon)

	today, err := l.Fetcher.TimingsByCoordinates(ctx, lat, lon)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Seq:   seq,
		Place: place,
		Label: place.Label(),
		Today: &today,
		Month: l.month(ctx, place, today),
	}, nil
}

// month fetches the calendar of today's month. Failures are logged and
// yield nil so the schedule keeps what it had.
func (l *Loader) month(ctx context.Context, p source.Place, today prayer.Day) []prayer.Day {
	month, year := l.monthOf(today)
	days, err := l.Fetcher.MonthCalendar(ctx, p, month, year)
	if err != nil {
		l.Log.Warn().Err(err).Int("month", int(month)).Int("year", year).Msg("fetch month calendar failed")
		return nil
	}
	if days == nil {
		days = []prayer.Day{}
	}
	return days
}

func (l *Loader) monthOf(d prayer.Day) (time.Month, int) {
	g := d.Date.Gregorian
	if year, err := strconv.Atoi(g.Year); err == nil && g.Month >= 1 && g.Month <= 12 {
		return time.Month(g.Month), year
	}
	now := l.Now()
	return now.Month(), now.Year()
}
