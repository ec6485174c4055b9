package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Weather  WeatherConfig  `yaml:"weather"`
	Spotify  SpotifyConfig  `yaml:"spotify"`
	Playlist PlaylistConfig `yaml:"playlist"`
	Mappings MappingsConfig `yaml:"mappings"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address         string          `yaml:"address"`
	ReadTimeout     time.Duration   `yaml:"readTimeout"`
	WriteTimeout    time.Duration   `yaml:"writeTimeout"`
	ShutdownTimeout time.Duration   `yaml:"shutdownTimeout"`
	CORSOrigins     []string        `yaml:"corsOrigins"`
	DebugRoutes     bool            `yaml:"debugRoutes"`
	RateLimit       RateLimitConfig `yaml:"rateLimit"`
	Retry           RetryConfig     `yaml:"retry"`
}

// RateLimitConfig drives the per client request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// RetryConfig configures best-effort retries for idempotent requests.
type RetryConfig struct {
	Enabled     bool          `yaml:"enabled"`
	MaxAttempts int           `yaml:"maxAttempts"`
	BaseBackoff time.Duration `yaml:"baseBackoff"`
	Exclude     []string      `yaml:"exclude"`
}

// WeatherConfig contains OpenWeatherMap settings.
type WeatherConfig struct {
	APIKey  string        `yaml:"apiKey"`
	BaseURL string        `yaml:"baseUrl"`
	Timeout time.Duration `yaml:"timeout"`
}

// SpotifyConfig contains accounts service and Web API settings.
type SpotifyConfig struct {
	ClientID          string        `yaml:"clientId"`
	ClientSecret      string        `yaml:"clientSecret"`
	TokenURL          string        `yaml:"tokenUrl"`
	APIBaseURL        string        `yaml:"apiBaseUrl"`
	Market            string        `yaml:"market"`
	SearchLimit       int           `yaml:"searchLimit"`
	CategoryLimit     int           `yaml:"categoryLimit"`
	AuthTimeout       time.Duration `yaml:"authTimeout"`
	SearchTimeout     time.Duration `yaml:"searchTimeout"`
	RequestsPerSecond float64       `yaml:"requestsPerSecond"`
}

// PlaylistConfig tunes the playlist resolution cascade.
type PlaylistConfig struct {
	ParallelQueries bool `yaml:"parallelQueries"`
}

// MappingsConfig selects and configures the mood mapping store.
type MappingsConfig struct {
	Seed     bool           `yaml:"seed"`
	Postgres PostgresConfig `yaml:"postgres"`
	Valkey   ValkeyConfig   `yaml:"valkey"`
}

// PostgresConfig contains DSN and pooling settings.
type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	MaxConns int32  `yaml:"maxConns"`
	MinConns int32  `yaml:"minConns"`
}

// ValkeyConfig contains connection information for the hash backed store.
type ValkeyConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
	Prefix  string `yaml:"prefix"`
}

// Load reads configuration from an optional .env file, a YAML file and environment variables.
func Load() (*Config, error) {
	// A missing .env file is the normal case outside local development.
	_ = godotenv.Load()

	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	setString(&cfg.HTTP.Address, "HTTP_ADDRESS")
	if v := os.Getenv("PORT"); v != "" && os.Getenv("HTTP_ADDRESS") == "" {
		cfg.HTTP.Address = ":" + v
	}
	if v := os.Getenv("HTTP_CORS_ORIGINS"); v != "" {
		cfg.HTTP.CORSOrigins = splitList(v)
	}
	setBool(&cfg.HTTP.DebugRoutes, "HTTP_DEBUG_ROUTES")
	setBool(&cfg.HTTP.RateLimit.Enabled, "HTTP_RATE_LIMIT_ENABLED")
	setInt(&cfg.HTTP.RateLimit.RequestsPerMinute, "HTTP_RATE_LIMIT_RPM")
	setInt(&cfg.HTTP.RateLimit.Burst, "HTTP_RATE_LIMIT_BURST")
	setBool(&cfg.HTTP.Retry.Enabled, "HTTP_RETRY_ENABLED")
	setInt(&cfg.HTTP.Retry.MaxAttempts, "HTTP_RETRY_MAX_ATTEMPTS")
	setDuration(&cfg.HTTP.Retry.BaseBackoff, "HTTP_RETRY_BASE_BACKOFF")

	setString(&cfg.Weather.APIKey, "OPENWEATHER_API_KEY")
	setString(&cfg.Weather.BaseURL, "OPENWEATHER_BASE_URL")
	setDuration(&cfg.Weather.Timeout, "OPENWEATHER_TIMEOUT")

	setString(&cfg.Spotify.ClientID, "SPOTIFY_CLIENT_ID")
	setString(&cfg.Spotify.ClientSecret, "SPOTIFY_CLIENT_SECRET")
	setString(&cfg.Spotify.TokenURL, "SPOTIFY_TOKEN_URL")
	setString(&cfg.Spotify.APIBaseURL, "SPOTIFY_API_BASE_URL")
	setString(&cfg.Spotify.Market, "SPOTIFY_MARKET")
	setDuration(&cfg.Spotify.AuthTimeout, "SPOTIFY_AUTH_TIMEOUT")
	setDuration(&cfg.Spotify.SearchTimeout, "SPOTIFY_SEARCH_TIMEOUT")
	if v := os.Getenv("SPOTIFY_REQUESTS_PER_SECOND"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Spotify.RequestsPerSecond = parsed
		}
	}

	setBool(&cfg.Playlist.ParallelQueries, "PLAYLIST_PARALLEL_QUERIES")

	setBool(&cfg.Mappings.Seed, "MAPPINGS_SEED")
	setString(&cfg.Mappings.Postgres.DSN, "MAPPINGS_POSTGRES_DSN")
	if v := os.Getenv("MAPPINGS_POSTGRES_MAX_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Mappings.Postgres.MaxConns = int32(parsed)
		}
	}
	setBool(&cfg.Mappings.Valkey.Enabled, "MAPPINGS_VALKEY_ENABLED")
	setString(&cfg.Mappings.Valkey.Addr, "MAPPINGS_VALKEY_ADDR")
	setString(&cfg.Mappings.Valkey.Prefix, "MAPPINGS_VALKEY_PREFIX")
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v == "1" || strings.EqualFold(v, "true")
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			*dst = parsed
		}
	}
}

func setDuration(dst *time.Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			*dst = parsed
		}
	}
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:         ":3000",
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			DebugRoutes:     true,
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 60,
				Burst:             20,
			},
			Retry: RetryConfig{
				Enabled:     true,
				MaxAttempts: 2,
				BaseBackoff: 150 * time.Millisecond,
				Exclude: []string{
					"/healthz",
					"/metrics",
				},
			},
		},
		Weather: WeatherConfig{
			BaseURL: "https://api.openweathermap.org/data/2.5/weather",
			Timeout: 10 * time.Second,
		},
		Spotify: SpotifyConfig{
			TokenURL:          "https://accounts.spotify.com/api/token",
			APIBaseURL:        "https://api.spotify.com",
			Market:            "US",
			SearchLimit:       20,
			CategoryLimit:     10,
			AuthTimeout:       10 * time.Second,
			SearchTimeout:     10 * time.Second,
			RequestsPerSecond: 10,
		},
		Mappings: MappingsConfig{
			Seed: true,
			Postgres: PostgresConfig{
				MaxConns: 4,
			},
			Valkey: ValkeyConfig{
				Prefix: "weatherbeats",
			},
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	if c.HTTP.Retry.Enabled {
		if c.HTTP.Retry.MaxAttempts <= 0 {
			return errors.New("http.retry.maxAttempts must be positive")
		}
		if c.HTTP.Retry.BaseBackoff < 0 {
			return errors.New("http.retry.baseBackoff cannot be negative")
		}
	}
	if strings.TrimSpace(c.Weather.BaseURL) == "" {
		return errors.New("weather.baseUrl cannot be empty")
	}
	if c.Weather.Timeout <= 0 {
		return errors.New("weather.timeout must be positive")
	}
	if strings.TrimSpace(c.Spotify.TokenURL) == "" {
		return errors.New("spotify.tokenUrl cannot be empty")
	}
	if strings.TrimSpace(c.Spotify.APIBaseURL) == "" {
		return errors.New("spotify.apiBaseUrl cannot be empty")
	}
	if c.Spotify.SearchLimit <= 0 || c.Spotify.SearchLimit > 50 {
		return errors.New("spotify.searchLimit must be between 1 and 50")
	}
	if c.Spotify.CategoryLimit <= 0 || c.Spotify.CategoryLimit > 50 {
		return errors.New("spotify.categoryLimit must be between 1 and 50")
	}
	if c.Spotify.AuthTimeout <= 0 || c.Spotify.SearchTimeout <= 0 {
		return errors.New("spotify timeouts must be positive")
	}
	if c.Spotify.RequestsPerSecond <= 0 {
		return errors.New("spotify.requestsPerSecond must be positive")
	}
	if c.Mappings.Valkey.Enabled && strings.TrimSpace(c.Mappings.Valkey.Addr) == "" {
		return errors.New("mappings.valkey.addr cannot be empty when valkey is enabled")
	}
	return nil
}
