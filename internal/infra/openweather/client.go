package openweather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/yanqian/weather-beats/internal/domain/weather"
	"github.com/yanqian/weather-beats/pkg/metrics"
	"github.com/yanqian/weather-beats/pkg/resilience"
)

const defaultBaseURL = "https://api.openweathermap.org/data/2.5/weather"

// Client fetches current conditions from OpenWeatherMap.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[weather.Reading]
	logger     *slog.Logger
}

// NewClient builds an API client. A zero timeout defaults to 10 seconds.
func NewClient(apiKey, baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	endpoint := strings.TrimSpace(baseURL)
	if endpoint == "" {
		endpoint = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	logger = logger.With("component", "openweather.client")
	return &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(endpoint, "/"),
		httpClient: &http.Client{Timeout: timeout},
		breaker:    resilience.NewBreaker[weather.Reading]("openweather", resilience.BreakerSettings{}, logger),
		logger:     logger,
	}
}

// Fetch retrieves current conditions for a coordinate pair. Temperatures are in Kelvin.
func (c *Client) Fetch(ctx context.Context, lat, lon float64) (weather.Reading, error) {
	if strings.TrimSpace(c.apiKey) == "" {
		return weather.Reading{}, errors.New("openweather api key is not configured")
	}
	start := time.Now()
	defer metrics.ObserveUpstream("openweather", "current", start)

	return c.breaker.Execute(func() (weather.Reading, error) {
		return c.fetch(ctx, lat, lon)
	})
}

func (c *Client) fetch(ctx context.Context, lat, lon float64) (weather.Reading, error) {
	values := url.Values{}
	values.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	values.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	values.Set("appid", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+values.Encode(), nil)
	if err != nil {
		return weather.Reading{}, fmt.Errorf("build weather request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return weather.Reading{}, fmt.Errorf("weather request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return weather.Reading{}, fmt.Errorf("weather request error: status=%d body=%s", resp.StatusCode, string(payload))
	}

	var payload apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.Reading{}, fmt.Errorf("decode weather response: %w", err)
	}
	if len(payload.Weather) == 0 {
		return weather.Reading{}, errors.New("decode weather response: no weather conditions")
	}

	return weather.Reading{
		Condition:       payload.Weather[0].Main,
		Description:     payload.Weather[0].Description,
		City:            payload.Name,
		TempKelvin:      payload.Main.Temp,
		FeelsLikeKelvin: payload.Main.FeelsLike,
		Humidity:        payload.Main.Humidity,
	}, nil
}

type apiResponse struct {
	Name    string `json:"name"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  float64 `json:"humidity"`
	} `json:"main"`
}

var _ weather.Provider = (*Client)(nil)
