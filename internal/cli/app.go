package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/smokyabdulrahman/sakeena/internal/api"
	"github.com/smokyabdulrahman/sakeena/internal/cache"
	"github.com/smokyabdulrahman/sakeena/internal/config"
	"github.com/smokyabdulrahman/sakeena/internal/geo"
	"github.com/smokyabdulrahman/sakeena/internal/source"
	"github.com/smokyabdulrahman/sakeena/internal/view"
)

// apiBaseURL overrides the API endpoint when set. Used by tests.
var apiBaseURL string

// fetchTimeout bounds a non-interactive command.
const fetchTimeout = 30 * time.Second

// configuredPlace returns the place the settings ask for, or nil when the
// user's position should be located.
func configuredPlace(cfg *config.Config) (*source.Place, error) {
	switch {
	case cfg.Latitude != 0 || cfg.Longitude != 0:
		p := source.CoordinatePlace(cfg.Latitude, cfg.Longitude)
		return &p, nil
	case cfg.City != "":
		if cfg.Country == "" {
			return nil, fmt.Errorf("--country is required when using --city")
		}
		p := source.CityPlace(cfg.City, cfg.Country)
		return &p, nil
	default:
		return nil, nil
	}
}

// newLoader wires the API client, the session cache and geolocation.
func newLoader(cfg *config.Config) *view.Loader {
	client := api.NewClient(logger)
	if apiBaseURL != "" {
		client.BaseURL = apiBaseURL
	}
	client.Method = cfg.MethodOrDefault(api.DefaultMethod)
	client.School = cfg.SchoolOrDefault(-1)

	c := cache.New()
	src := source.New(client, c, logger)

	var locate source.Locator = geo.DetectLocation
	if FlagNoGeo {
		locate = geo.Disabled
	}
	return view.NewLoader(src, source.CachedLocator(c, locate), logger)
}

// loadState runs the start-up load once, for the non-interactive commands.
// Unlike the interactive screen it fails when no times could be fetched.
func loadState(ctx context.Context, cfg *config.Config) (*view.State, error) {
	place, err := configuredPlace(cfg)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	s := view.New(cfg.Locale(), cfg.TwentyFour(), time.Now())
	r := newLoader(cfg).Initial(ctx, s.Begin(), place)
	s.Apply(r)

	if s.Today == nil {
		if r.Err != nil {
			return nil, r.Err
		}
		return nil, view.ErrUnresolved
	}
	return s, nil
}
