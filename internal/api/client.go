// Package api talks to the Al Adhan prayer times API.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"
)

const defaultBaseURL = "https://api.aladhan.com/v1"

// DefaultMethod is the Egyptian General Authority of Survey.
const DefaultMethod = 5

// ErrStatus is returned when the API answers with a non-success status,
// either at the HTTP layer or in the response envelope.
var ErrStatus = errors.New("api returned non-success status")

// Client communicates with the Al Adhan API.
type Client struct {
	httpClient *http.Client
	log        zerolog.Logger

	// BaseURL is the API base URL. Exported for testing with httptest.
	BaseURL string
	// Method is the calculation method sent with every request.
	// A negative value lets the API pick one.
	Method int
	// School is the juristic school (0=Shafi, 1=Hanafi). Negative omits it.
	School int
}

// NewClient creates a client with the default method and a 10s timeout.
func NewClient(log zerolog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		log:     log.With().Str("component", "api").Logger(),
		BaseURL: defaultBaseURL,
		Method:  DefaultMethod,
		School:  -1,
	}
}

// FetchByCoordinates fetches one day of timings for a latitude/longitude.
func (c *Client) FetchByCoordinates(ctx context.Context, date time.Time, lat, lon float64) (*Response, error) {
	endpoint := fmt.Sprintf("%s/timings/%s", c.BaseURL, date.Format("02-01-2006"))

	params := c.params()
	params.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))

	var resp Response
	if err := c.get(ctx, endpoint, params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// FetchByCity fetches one day of timings for a city and country.
func (c *Client) FetchByCity(ctx context.Context, date time.Time, city, country string) (*Response, error) {
	endpoint := fmt.Sprintf("%s/timingsByCity/%s", c.BaseURL, date.Format("02-01-2006"))

	params := c.params()
	params.Set("city", city)
	params.Set("country", country)

	var resp Response
	if err := c.get(ctx, endpoint, params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// FetchCalendarByCoordinates fetches a whole Gregorian month for a latitude/longitude.
func (c *Client) FetchCalendarByCoordinates(ctx context.Context, year, month int, lat, lon float64) (*CalendarResponse, error) {
	params := c.params()
	params.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("month", strconv.Itoa(month))
	params.Set("year", strconv.Itoa(year))

	var resp CalendarResponse
	if err := c.get(ctx, c.BaseURL+"/calendar", params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// FetchCalendarByCity fetches a whole Gregorian month for a city and country.
func (c *Client) FetchCalendarByCity(ctx context.Context, year, month int, city, country string) (*CalendarResponse, error) {
	params := c.params()
	params.Set("city", city)
	params.Set("country", country)
	params.Set("month", strconv.Itoa(month))
	params.Set("year", strconv.Itoa(year))

	var resp CalendarResponse
	if err := c.get(ctx, c.BaseURL+"/calendarByCity", params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) params() url.Values {
	params := url.Values{}
	if c.Method >= 0 {
		params.Set("method", strconv.Itoa(c.Method))
	}
	if c.School >= 0 {
		params.Set("school", strconv.Itoa(c.School))
	}
	return params
}

// envelope is implemented by both response types so the API-level status
// can be checked after decoding.
type envelope interface {
	status() (int, string)
}

func (r *Response) status() (int, string)         { return r.Code, r.Status }
func (r *CalendarResponse) status() (int, string) { return r.Code, r.Status }

// get issues the request and decodes the body into out.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out envelope) error {
	reqURL := endpoint + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("building API request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	c.log.Debug().
		Str("url", reqURL).
		Int("status", resp.StatusCode).
		Dur("took", time.Since(start)).
		Msg("api request")

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: http %d: %s", ErrStatus, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode API response: %w", err)
	}

	if code, status := out.status(); code != http.StatusOK {
		return fmt.Errorf("%w: code=%d status=%s", ErrStatus, code, status)
	}

	return nil
}
