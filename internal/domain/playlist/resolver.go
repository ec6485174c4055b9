package playlist

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/yanqian/weather-beats/pkg/metrics"
)

var (
	relevantExclusions = []string{"instrumental", "chill out", "sleep"}
	generalExclusions  = []string{"instrumental", "ambient", "sleep", "meditation"}
)

// Resolver turns a genre into a playlist URL. It always returns a usable URL.
type Resolver interface {
	Resolve(ctx context.Context, genre string) string
}

type resolver struct {
	cfg     Config
	tokens  TokenSource
	catalog Catalog
	logger  *slog.Logger
}

// NewResolver wires the cascade over a token source and a catalog.
func NewResolver(cfg Config, tokens TokenSource, catalog Catalog, logger *slog.Logger) Resolver {
	return &resolver{
		cfg:     cfg.withDefaults(),
		tokens:  tokens,
		catalog: catalog,
		logger:  logger.With("component", "playlist.resolver"),
	}
}

func (r *resolver) Resolve(ctx context.Context, genre string) (url string) {
	genre = strings.TrimSpace(genre)
	stage := StageDefault
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("playlist resolution panicked", "genre", genre, "panic", fmt.Sprint(rec))
			url, stage = DefaultURL, StageDefault
		}
		metrics.PlaylistResolutions.WithLabelValues(string(stage)).Inc()
		r.logger.Info("playlist resolved", "genre", genre, "stage", stage, "url", url)
	}()

	url, stage = r.resolve(ctx, genre)
	return url
}

func (r *resolver) resolve(ctx context.Context, genre string) (string, Stage) {
	if genre == "" {
		return FeaturedURL, StageFeatured
	}

	token, err := r.tokens.Token(ctx)
	if err != nil {
		r.logger.Error("playlist token fetch failed", "genre", genre, "error", err)
		return DefaultURL, StageDefault
	}

	if entry, ok := r.searchStage(ctx, token, genre); ok {
		return entry.URL, StageSearch
	}

	r.logger.Warn("no valid playlists found, trying category", "genre", genre)
	if entry, ok := r.categoryStage(ctx, genre); ok {
		return entry.URL, StageCategory
	}
	return FeaturedURL, StageFeatured
}

// searchQueries lists the search strategies in priority order.
func searchQueries(genre string) []string {
	return []string{
		genre,
		genre + " music",
		genre + " playlist",
		"best of " + genre,
		genre + " hits",
	}
}

func (r *resolver) searchStage(ctx context.Context, token, genre string) (Entry, bool) {
	queries := searchQueries(genre)
	genreLower := strings.ToLower(genre)

	if r.cfg.ParallelQueries {
		results := make([][]Entry, len(queries))
		panics := make([]any, len(queries))
		var wg sync.WaitGroup
		for i, query := range queries {
			wg.Add(1)
			go func(i int, query string) {
				defer wg.Done()
				defer func() {
					panics[i] = recover()
				}()
				results[i] = r.search(ctx, token, query)
			}(i, query)
		}
		wg.Wait()
		// Re-raise on the calling goroutine so Resolve degrades the same way as in sequential mode.
		for _, p := range panics {
			if p != nil {
				panic(p)
			}
		}
		for i, entries := range results {
			if entry, ok := selectCandidate(entries, genreLower); ok {
				r.logger.Debug("playlist selected", "query", queries[i], "name", entry.Name, "owner", entry.Owner)
				return entry, true
			}
		}
		return Entry{}, false
	}

	for _, query := range queries {
		if entry, ok := selectCandidate(r.search(ctx, token, query), genreLower); ok {
			r.logger.Debug("playlist selected", "query", query, "name", entry.Name, "owner", entry.Owner)
			return entry, true
		}
	}
	return Entry{}, false
}

// search runs a single query. Failures count as an empty result.
func (r *resolver) search(ctx context.Context, token, query string) []Entry {
	entries, err := r.catalog.SearchPlaylists(ctx, token, SearchRequest{
		Query:  query,
		Limit:  r.cfg.SearchLimit,
		Market: r.cfg.Market,
	})
	if err != nil {
		r.logger.Warn("playlist search query failed", "query", query, "error", err)
		return nil
	}
	r.logger.Debug("playlist search query", "query", query, "results", len(entries))
	return entries
}

func (r *resolver) categoryStage(ctx context.Context, genre string) (Entry, bool) {
	categoryID, ok := CategoryFor(genre)
	if !ok {
		return Entry{}, false
	}
	token, err := r.tokens.Token(ctx)
	if err != nil {
		r.logger.Error("category token fetch failed", "category", categoryID, "error", err)
		return Entry{}, false
	}
	entries, err := r.catalog.CategoryPlaylists(ctx, token, CategoryRequest{
		CategoryID: categoryID,
		Limit:      r.cfg.CategoryLimit,
		Country:    r.cfg.Country,
	})
	if err != nil {
		r.logger.Warn("category playlists failed", "category", categoryID, "error", err)
		return Entry{}, false
	}
	for _, entry := range entries {
		if entry.validForCategory() {
			return entry, true
		}
	}
	return Entry{}, false
}

// selectCandidate picks the most relevant valid entry, preferring names that mention the genre.
func selectCandidate(entries []Entry, genreLower string) (Entry, bool) {
	valid := make([]Entry, 0, len(entries))
	for _, entry := range entries {
		if entry.validForSearch() {
			valid = append(valid, entry)
		}
	}
	if len(valid) == 0 {
		return Entry{}, false
	}

	for _, entry := range valid {
		name := strings.ToLower(entry.Name)
		if strings.Contains(name, genreLower) && !containsAny(name, relevantExclusions) {
			return entry, true
		}
	}
	for _, entry := range valid {
		if !containsAny(strings.ToLower(entry.Name), generalExclusions) {
			return entry, true
		}
	}
	return valid[0], true
}

func containsAny(s string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(s, term) {
			return true
		}
	}
	return false
}
