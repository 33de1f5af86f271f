// Package cache memoizes API responses for the lifetime of the process.
//
// Nothing is written to disk: a new run starts empty. Re-submitting a place
// that was already resolved in this session is answered from memory.
package cache

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"github.com/smokyabdulrahman/sakeena/internal/api"
	"github.com/smokyabdulrahman/sakeena/internal/geo"
)

// Key holds the request parameters that affect the returned times.
type Key struct {
	Lat, Lon      float64
	City, Country string
	Method        int
	School        int
}

// Cache is safe for concurrent use.
type Cache struct {
	mu        sync.Mutex
	timings   map[string]*api.Response
	calendars map[string]*api.CalendarResponse
	geo       *geo.Location

	// entries lists the hashes saved per request parameters, for Forget.
	entries map[string][]string
}

// New creates an empty cache.
func New() *Cache {
	return &Cache{
		timings:   make(map[string]*api.Response),
		calendars: make(map[string]*api.CalendarResponse),
		entries:   make(map[string][]string),
	}
}

// hashKey builds a deterministic hash from the scope (a day or a month)
// and the request parameters.
func hashKey(scope string, k Key) string {
	raw := fmt.Sprintf("%s|%.6f|%.6f|%s|%s|%d|%d", scope, k.Lat, k.Lon, k.City, k.Country, k.Method, k.School)
	h := sha256.Sum256([]byte(raw))
	return fmt.Sprintf("%x", h[:8])
}

// LoadTimings returns the memoized day response, or nil.
func (c *Cache) LoadTimings(date time.Time, k Key) *api.Response {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.timings[hashKey(date.Format("2006-01-02"), k)]
}

// SaveTimings memoizes a day response.
func (c *Cache) SaveTimings(date time.Time, k Key, resp *api.Response) {
	if resp == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	h := hashKey(date.Format("2006-01-02"), k)
	c.timings[h] = resp
	c.track(k, h)
}

// LoadCalendar returns the memoized month response, or nil.
func (c *Cache) LoadCalendar(year, month int, k Key) *api.CalendarResponse {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calendars[hashKey(fmt.Sprintf("%04d-%02d", year, month), k)]
}

// SaveCalendar memoizes a month response.
func (c *Cache) SaveCalendar(year, month int, k Key, resp *api.CalendarResponse) {
	if resp == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	h := hashKey(fmt.Sprintf("%04d-%02d", year, month), k)
	c.calendars[h] = resp
	c.track(k, h)
}

// Forget drops every day and month response memoized for k.
func (c *Cache) Forget(k Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	owner := hashKey("", k)
	for _, h := range c.entries[owner] {
		delete(c.timings, h)
		delete(c.calendars, h)
	}
	delete(c.entries, owner)
}

// track must be called with c.mu held.
func (c *Cache) track(k Key, h string) {
	owner := hashKey("", k)
	c.entries[owner] = append(c.entries[owner], h)
}

// LoadGeo returns the location detected earlier in this session, or nil.
func (c *Cache) LoadGeo() *geo.Location {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.geo == nil {
		return nil
	}
	loc := *c.geo
	return &loc
}

// SaveGeo remembers a detected location.
func (c *Cache) SaveGeo(loc *geo.Location) {
	if loc == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	saved := *loc
	c.geo = &saved
}

// Len returns the number of memoized API responses.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.timings) + len(c.calendars)
}
