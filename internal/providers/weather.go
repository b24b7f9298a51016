// Package providers wraps the external HTTP APIs the enrichment pipeline
// depends on. Each client maps upstream failures onto the errs sentinels and
// does nothing else: no retries, no caching.
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

// Weather is the normalized current-weather payload.
type Weather struct {
	City        string
	Temperature float64
	Description string
	Humidity    int
	WindSpeed   float64
}

// WeatherClient fetches current weather from the OpenWeather API.
type WeatherClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewWeatherClient(cfg config.ProviderConfig) *WeatherClient {
	return &WeatherClient{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: cfg.Timeout},
	}
}

type openWeatherResponse struct {
	Name string `json:"name"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
}

// Current returns the weather for a city name. An upstream 404 means the city
// is unknown.
func (c *WeatherClient) Current(ctx context.Context, city string) (Weather, error) {
	if city == "" {
		return Weather{}, fmt.Errorf("%w: empty city", errs.ErrInvalid)
	}
	q := url.Values{}
	q.Set("q", city)
	return c.fetch(ctx, q)
}

// CurrentByCoords returns the weather at the given coordinates.
func (c *WeatherClient) CurrentByCoords(ctx context.Context, lat, lon float64) (Weather, error) {
	q := url.Values{}
	q.Set("lat", fmt.Sprintf("%f", lat))
	q.Set("lon", fmt.Sprintf("%f", lon))
	return c.fetch(ctx, q)
}

func (c *WeatherClient) fetch(ctx context.Context, q url.Values) (Weather, error) {
	q.Set("appid", c.apiKey)
	q.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/weather?"+q.Encode(), nil)
	if err != nil {
		return Weather{}, fmt.Errorf("%w: %v", errs.ErrUpstream, err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return Weather{}, fmt.Errorf("%w: weather request: %v", errs.ErrUpstream, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return Weather{}, fmt.Errorf("%w: city unknown to weather provider", errs.ErrNotFound)
	case resp.StatusCode != http.StatusOK:
		return Weather{}, fmt.Errorf("%w: weather provider returned %d", errs.ErrUpstream, resp.StatusCode)
	}

	var body openWeatherResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Weather{}, fmt.Errorf("%w: decode weather response: %v", errs.ErrUpstream, err)
	}
	if len(body.Weather) == 0 {
		return Weather{}, fmt.Errorf("%w: weather response missing conditions", errs.ErrUpstream)
	}

	return Weather{
		City:        body.Name,
		Temperature: body.Main.Temp,
		Description: body.Weather[0].Description,
		Humidity:    body.Main.Humidity,
		WindSpeed:   body.Wind.Speed,
	}, nil
}
