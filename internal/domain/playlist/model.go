package playlist

import (
	"context"
	"strings"
)

const (
	// DefaultURL is returned when the catalog cannot be reached at all.
	DefaultURL = "https://open.spotify.com/"
	// FeaturedURL is returned when every search strategy came back empty.
	FeaturedURL = "https://open.spotify.com/browse/featured"
)

// Stage identifies which step of the cascade produced a URL.
type Stage string

const (
	StageSearch   Stage = "search"
	StageCategory Stage = "category"
	StageFeatured Stage = "featured"
	StageDefault  Stage = "default"
)

// Entry is a playlist candidate returned by the catalog.
type Entry struct {
	Name  string
	Owner string
	URL   string
}

func (e Entry) validForSearch() bool {
	return strings.TrimSpace(e.Name) != "" && strings.TrimSpace(e.Owner) != "" && strings.TrimSpace(e.URL) != ""
}

func (e Entry) validForCategory() bool {
	return strings.TrimSpace(e.Name) != "" && strings.TrimSpace(e.URL) != ""
}

// SearchRequest describes a playlist search call.
type SearchRequest struct {
	Query  string
	Limit  int
	Market string
}

// CategoryRequest describes a category browse call.
type CategoryRequest struct {
	CategoryID string
	Limit      int
	Country    string
}

// TokenSource yields bearer tokens for catalog calls.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Catalog is the external playlist catalog.
type Catalog interface {
	SearchPlaylists(ctx context.Context, token string, req SearchRequest) ([]Entry, error)
	CategoryPlaylists(ctx context.Context, token string, req CategoryRequest) ([]Entry, error)
}

// Config tunes the resolution cascade.
type Config struct {
	Market          string
	SearchLimit     int
	CategoryLimit   int
	Country         string
	ParallelQueries bool
}

func (c Config) withDefaults() Config {
	if c.Market == "" {
		c.Market = "US"
	}
	if c.Country == "" {
		c.Country = "US"
	}
	if c.SearchLimit <= 0 {
		c.SearchLimit = 20
	}
	if c.CategoryLimit <= 0 {
		c.CategoryLimit = 10
	}
	return c
}
