package spotify

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
	"golang.org/x/time/rate"

	"github.com/yanqian/weather-beats/internal/domain/playlist"
	apperrors "github.com/yanqian/weather-beats/pkg/errors"
	"github.com/yanqian/weather-beats/pkg/metrics"
	"github.com/yanqian/weather-beats/pkg/resilience"
)

const defaultAPIBaseURL = "https://api.spotify.com"

// CatalogConfig tunes the Web API client.
type CatalogConfig struct {
	BaseURL           string
	SearchTimeout     time.Duration
	RequestsPerSecond float64
}

// Catalog queries the Spotify Web API for playlists.
type Catalog struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	search     *gobreaker.CircuitBreaker[[]playlist.Entry]
	browse     *gobreaker.CircuitBreaker[[]playlist.Entry]
	logger     *slog.Logger
}

// statusError is a non-2xx answer from the Web API.
type statusError struct {
	status int
	body   string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("spotify api error: status=%d body=%s", e.status, e.body)
}

// NewCatalog builds a Web API client with an outbound limiter and per-endpoint breakers.
func NewCatalog(cfg CatalogConfig, logger *slog.Logger) *Catalog {
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		base = defaultAPIBaseURL
	}
	timeout := cfg.SearchTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 10
	}
	logger = logger.With("component", "spotify.catalog")

	// 4xx answers are caller errors and do not trip the breakers.
	settings := resilience.BreakerSettings{
		ShouldTrip: func(err error) bool {
			var se *statusError
			if errors.As(err, &se) {
				return se.status == http.StatusTooManyRequests || se.status >= 500
			}
			return !errors.Is(err, context.Canceled)
		},
	}
	return &Catalog{
		baseURL:    strings.TrimRight(base, "/"),
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Limit(rps), int(rps)+1),
		search:     resilience.NewBreaker[[]playlist.Entry]("spotify-search", settings, logger),
		browse:     resilience.NewBreaker[[]playlist.Entry]("spotify-category", settings, logger),
		logger:     logger,
	}
}

// SearchPlaylists runs a playlist search. Null items in the answer come back as zero entries.
func (c *Catalog) SearchPlaylists(ctx context.Context, token string, req playlist.SearchRequest) ([]playlist.Entry, error) {
	values := url.Values{}
	values.Set("q", req.Query)
	values.Set("type", "playlist")
	values.Set("limit", strconv.Itoa(req.Limit))
	if req.Market != "" {
		values.Set("market", req.Market)
	}
	endpoint := c.baseURL + "/v1/search?" + values.Encode()

	return c.execute(ctx, c.search, "search", endpoint, token)
}

// CategoryPlaylists lists the playlists of a browse category.
func (c *Catalog) CategoryPlaylists(ctx context.Context, token string, req playlist.CategoryRequest) ([]playlist.Entry, error) {
	values := url.Values{}
	values.Set("limit", strconv.Itoa(req.Limit))
	if req.Country != "" {
		values.Set("country", req.Country)
	}
	endpoint := fmt.Sprintf("%s/v1/browse/categories/%s/playlists?%s", c.baseURL, url.PathEscape(req.CategoryID), values.Encode())

	return c.execute(ctx, c.browse, "category", endpoint, token)
}

func (c *Catalog) execute(ctx context.Context, cb *gobreaker.CircuitBreaker[[]playlist.Entry], op, endpoint, token string) ([]playlist.Entry, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeTransport, "spotify rate limit wait aborted", err)
	}

	start := time.Now()
	defer metrics.ObserveUpstream("spotify", op, start)

	entries, err := cb.Execute(func() ([]playlist.Entry, error) {
		return c.fetch(ctx, endpoint, token)
	})
	if err != nil {
		if resilience.IsRejected(err) {
			c.logger.Warn("spotify request rejected by breaker", "operation", op)
		}
		return nil, apperrors.Wrap(apperrors.CodeTransport, "spotify "+op+" request failed", err)
	}
	return entries, nil
}

func (c *Catalog) fetch(ctx context.Context, endpoint, token string) ([]playlist.Entry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build spotify request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("spotify request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, &statusError{status: resp.StatusCode, body: string(payload)}
	}

	var payload playlistsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode spotify response: %w", err)
	}
	return payload.entries(), nil
}

type playlistsResponse struct {
	Playlists struct {
		Items []*playlistItem `json:"items"`
	} `json:"playlists"`
}

type playlistItem struct {
	Name  string `json:"name"`
	Owner *struct {
		DisplayName string `json:"display_name"`
	} `json:"owner"`
	ExternalURLs struct {
		Spotify string `json:"spotify"`
	} `json:"external_urls"`
}

func (r playlistsResponse) entries() []playlist.Entry {
	out := make([]playlist.Entry, 0, len(r.Playlists.Items))
	for _, item := range r.Playlists.Items {
		if item == nil {
			out = append(out, playlist.Entry{})
			continue
		}
		entry := playlist.Entry{Name: item.Name, URL: item.ExternalURLs.Spotify}
		if item.Owner != nil {
			entry.Owner = item.Owner.DisplayName
		}
		out = append(out, entry)
	}
	return out
}

var _ playlist.Catalog = (*Catalog)(nil)
