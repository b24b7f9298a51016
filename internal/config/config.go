package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
)

type (
	// Config holds every runtime setting, read from the environment.
	Config struct {
		LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
		PrettyLog bool   `env:"PRETTY_LOG" envDefault:"false"`

		Server   ServerConfig   `envPrefix:"HTTP_"`
		Mongo    MongoConfig    `envPrefix:"MONGO_"`
		Identity IdentityConfig `envPrefix:"IDENTITY_"`
		Weather  ProviderConfig `envPrefix:"OPENWEATHER_"`
		Geocode  ProviderConfig `envPrefix:"GEOCODE_"`
		Videos   ProviderConfig `envPrefix:"YOUTUBE_"`

		// AllowPartial keeps a search usable when geocoding or video search
		// fails: coordinates/videos are left empty instead of failing the
		// whole request. Off by default; every response then carries all
		// three field groups or none.
		AllowPartial bool `env:"ALLOW_PARTIAL_ENRICHMENT" envDefault:"false"`

		// StoreBackend selects the history store: "mongo" or "memory".
		StoreBackend string `env:"STORE_BACKEND" envDefault:"mongo"`
	}

	ServerConfig struct {
		Port            string        `env:"PORT" envDefault:"8080"`
		ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`
		AllowedOrigins  []string      `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
	}

	MongoConfig struct {
		URI            string        `env:"URI"`
		DBName         string        `env:"DB_NAME" envDefault:"weatherapp"`
		ConnectTimeout time.Duration `env:"CONNECT_TIMEOUT" envDefault:"10s"`
	}

	IdentityConfig struct {
		// KeyData is the Firebase service account JSON, passed inline.
		KeyData string `env:"KEY_DATA"`
		// WebAPIKey is the Firebase Web API key used for password sign-in.
		WebAPIKey string `env:"WEB_API_KEY"`
		// BaseURL of the identity-toolkit REST endpoint; overridable for tests.
		BaseURL string `env:"BASE_URL" envDefault:"https://identitytoolkit.googleapis.com/v1"`
	}

	ProviderConfig struct {
		BaseURL string        `env:"BASE_URL"`
		APIKey  string        `env:"API_KEY"`
		Timeout time.Duration `env:"TIMEOUT" envDefault:"10s"`
	}
)

// Defaults applied when a provider base URL is left unset.
const (
	DefaultWeatherBaseURL = "https://api.openweathermap.org/data/2.5"
	DefaultGeocodeBaseURL = "https://api.openweathermap.org/geo/1.0"
	DefaultVideosBaseURL  = "https://www.googleapis.com/youtube/v3"
)

// Load parses the environment into a Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if cfg.Weather.BaseURL == "" {
		cfg.Weather.BaseURL = DefaultWeatherBaseURL
	}
	if cfg.Geocode.BaseURL == "" {
		cfg.Geocode.BaseURL = DefaultGeocodeBaseURL
	}
	if cfg.Videos.BaseURL == "" {
		cfg.Videos.BaseURL = DefaultVideosBaseURL
	}
	// The geocoding API shares the OpenWeather key unless given its own.
	if cfg.Geocode.APIKey == "" {
		cfg.Geocode.APIKey = cfg.Weather.APIKey
	}
	return cfg, nil
}
