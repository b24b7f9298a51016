package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/arsh246/weather-app/internal/config"
	"github.com/arsh246/weather-app/internal/errs"
)

// Location is a geocoded point.
type Location struct {
	Latitude  float64
	Longitude float64
}

// GeocodeClient resolves city names to coordinates (and back) via the
// OpenWeather geocoding API.
type GeocodeClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewGeocodeClient(cfg config.ProviderConfig) *GeocodeClient {
	return &GeocodeClient{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: cfg.Timeout},
	}
}

type geocodeEntry struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// Locate returns the coordinates of a city. Zero results map to ErrNotFound.
func (c *GeocodeClient) Locate(ctx context.Context, city string) (Location, error) {
	if city == "" {
		return Location{}, fmt.Errorf("%w: empty city", errs.ErrInvalid)
	}
	q := url.Values{}
	q.Set("q", city)
	q.Set("limit", "1")

	entries, err := c.fetch(ctx, "/direct", q)
	if err != nil {
		return Location{}, err
	}
	return Location{Latitude: entries[0].Lat, Longitude: entries[0].Lon}, nil
}

// Reverse returns the nearest city name for a coordinate pair.
func (c *GeocodeClient) Reverse(ctx context.Context, lat, lon float64) (string, error) {
	q := url.Values{}
	q.Set("lat", fmt.Sprintf("%f", lat))
	q.Set("lon", fmt.Sprintf("%f", lon))
	q.Set("limit", "1")

	entries, err := c.fetch(ctx, "/reverse", q)
	if err != nil {
		return "", err
	}
	return entries[0].Name, nil
}

func (c *GeocodeClient) fetch(ctx context.Context, path string, q url.Values) ([]geocodeEntry, error) {
	q.Set("appid", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrUpstream, err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: geocode request: %v", errs.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: geocode provider returned %d", errs.ErrUpstream, resp.StatusCode)
	}

	var entries []geocodeEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("%w: decode geocode response: %v", errs.ErrUpstream, err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: no geocoding result", errs.ErrNotFound)
	}
	return entries, nil
}
