package playlist

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveReturnsFirstRelevantSearchResult(t *testing.T) {
	catalog := &stubCatalog{
		search: map[string][]Entry{
			"jazz": {
				{Name: "Smooth Instrumental Jazz", Owner: "a", URL: "https://x/1"},
				{Name: "Morning Coffee", Owner: "b", URL: "https://x/2"},
				{Name: "Jazz Classics", Owner: "c", URL: "https://x/3"},
			},
		},
	}
	got := newResolverUnderTest(&stubTokens{token: "t"}, catalog, Config{}).Resolve(context.Background(), "jazz")
	require.Equal(t, "https://x/3", got)
	require.Equal(t, []string{"jazz"}, catalog.queries())
	require.Equal(t, "t", catalog.lastToken)
	require.Equal(t, SearchRequest{Query: "jazz", Limit: 20, Market: "US"}, catalog.lastSearch)
}

func TestResolveQueryOrderFallsToSecondQuery(t *testing.T) {
	catalog := &stubCatalog{
		search: map[string][]Entry{
			"rock":       {{Name: "Rock", Owner: "", URL: "https://x/invalid"}},
			"rock music": {{Name: "Rock Anthems", Owner: "b", URL: "https://x/second"}},
			"rock hits":  {{Name: "Rock Hits", Owner: "c", URL: "https://x/fifth"}},
		},
		category: map[string][]Entry{
			"rock": {{Name: "Category Rock", URL: "https://x/category"}},
		},
	}
	got := newResolverUnderTest(&stubTokens{token: "t"}, catalog, Config{}).Resolve(context.Background(), "rock")
	require.Equal(t, "https://x/second", got)
	require.Equal(t, []string{"rock", "rock music"}, catalog.queries())
	require.Zero(t, catalog.categoryCalls)
}

func TestResolveTieBreakPrefersFirstWithoutExcludedTerms(t *testing.T) {
	catalog := &stubCatalog{
		search: map[string][]Entry{
			"melancholy": {
				{Name: "Deep Sleep Sounds", Owner: "a", URL: "https://x/sleep"},
				{Name: "Rainy Evening", Owner: "b", URL: "https://x/first"},
				{Name: "Quiet Nights", Owner: "c", URL: "https://x/later"},
			},
		},
	}
	got := newResolverUnderTest(&stubTokens{token: "t"}, catalog, Config{}).Resolve(context.Background(), "melancholy")
	require.Equal(t, "https://x/first", got)
}

func TestResolveFallsBackToFirstValidCandidate(t *testing.T) {
	catalog := &stubCatalog{
		search: map[string][]Entry{
			"meditation": {
				{Name: "", Owner: "a", URL: "https://x/noname"},
				{Name: "Meditation for Sleep", Owner: "a", URL: "https://x/first"},
				{Name: "Ambient Instrumental Meditation", Owner: "b", URL: "https://x/second"},
			},
		},
	}
	got := newResolverUnderTest(&stubTokens{token: "t"}, catalog, Config{}).Resolve(context.Background(), "meditation")
	require.Equal(t, "https://x/first", got)
}

func TestResolveQueryErrorsAreSkipped(t *testing.T) {
	catalog := &stubCatalog{
		searchErr: map[string]error{
			"pop":       errors.New("timeout"),
			"pop music": errors.New("status 502"),
		},
		search: map[string][]Entry{
			"pop playlist": {{Name: "Pop Rising", Owner: "spotify", URL: "https://x/pop"}},
		},
	}
	got := newResolverUnderTest(&stubTokens{token: "t"}, catalog, Config{}).Resolve(context.Background(), "pop")
	require.Equal(t, "https://x/pop", got)
	require.Equal(t, []string{"pop", "pop music", "pop playlist"}, catalog.queries())
}

func TestResolveCategoryFallback(t *testing.T) {
	catalog := &stubCatalog{
		category: map[string][]Entry{
			"indie_alt": {
				{Name: "", URL: "https://x/noname"},
				{Name: "Indie Mix", URL: "https://x/indie"},
			},
		},
	}
	got := newResolverUnderTest(&stubTokens{token: "t"}, catalog, Config{}).Resolve(context.Background(), "Indie Folk")
	require.Equal(t, "https://x/indie", got)
	require.Len(t, catalog.queries(), 5)
	require.Equal(t, CategoryRequest{CategoryID: "indie_alt", Limit: 10, Country: "US"}, catalog.lastCategory)
}

func TestResolveCategoryEntriesNeedNoOwner(t *testing.T) {
	catalog := &stubCatalog{
		category: map[string][]Entry{"chill": {{Name: "Lo-Fi Beats", URL: "https://x/lofi"}}},
	}
	got := newResolverUnderTest(&stubTokens{token: "t"}, catalog, Config{}).Resolve(context.Background(), "lo-fi")
	require.Equal(t, "https://x/lofi", got)
}

func TestResolveExhaustionReturnsFeatured(t *testing.T) {
	catalog := &stubCatalog{}
	got := newResolverUnderTest(&stubTokens{token: "t"}, catalog, Config{}).Resolve(context.Background(), "rain sounds")
	require.Equal(t, FeaturedURL, got)
	require.Equal(t, []string{"rain sounds", "rain sounds music", "rain sounds playlist", "best of rain sounds", "rain sounds hits"}, catalog.queries())
	require.Zero(t, catalog.categoryCalls)
}

func TestResolveCategoryErrorReturnsFeatured(t *testing.T) {
	catalog := &stubCatalog{categoryErr: errors.New("status 404")}
	got := newResolverUnderTest(&stubTokens{token: "t"}, catalog, Config{}).Resolve(context.Background(), "metal")
	require.Equal(t, FeaturedURL, got)
	require.Equal(t, 1, catalog.categoryCalls)
}

func TestResolveAuthFailureReturnsDefault(t *testing.T) {
	tokens := &stubTokens{err: errors.New("auth down")}
	catalog := &stubCatalog{}
	got := newResolverUnderTest(tokens, catalog, Config{}).Resolve(context.Background(), "pop")
	require.Equal(t, DefaultURL, got)
	require.Empty(t, catalog.queries())
}

func TestResolveCategoryTokenFailureReturnsFeatured(t *testing.T) {
	tokens := &stubTokens{token: "t", failAfter: 1}
	got := newResolverUnderTest(tokens, &stubCatalog{}, Config{}).Resolve(context.Background(), "jazz")
	require.Equal(t, FeaturedURL, got)
}

func TestResolvePanicDegradesToDefault(t *testing.T) {
	catalog := &stubCatalog{panicOn: "pop"}
	got := newResolverUnderTest(&stubTokens{token: "t"}, catalog, Config{}).Resolve(context.Background(), "pop")
	require.Equal(t, DefaultURL, got)
}

func TestResolveParallelPanicDegradesToDefault(t *testing.T) {
	catalog := &stubCatalog{panicOn: "pop music"}
	got := newResolverUnderTest(&stubTokens{token: "t"}, catalog, Config{ParallelQueries: true}).Resolve(context.Background(), "pop")
	require.Equal(t, DefaultURL, got)
}

func TestResolveBlankGenre(t *testing.T) {
	catalog := &stubCatalog{}
	got := newResolverUnderTest(&stubTokens{token: "t"}, catalog, Config{}).Resolve(context.Background(), "   ")
	require.Equal(t, FeaturedURL, got)
	require.Empty(t, catalog.queries())
}

func TestResolveParallelKeepsQueryRank(t *testing.T) {
	catalog := &stubCatalog{
		search: map[string][]Entry{
			"folk playlist": {{Name: "Folk Playlist", Owner: "c", URL: "https://x/third"}},
			"folk hits":     {{Name: "Folk Hits", Owner: "e", URL: "https://x/fifth"}},
			"folk music":    {{Name: "Folk Music", Owner: "", URL: "https://x/invalid"}},
		},
	}
	got := newResolverUnderTest(&stubTokens{token: "t"}, catalog, Config{ParallelQueries: true}).Resolve(context.Background(), "folk")
	require.Equal(t, "https://x/third", got)
	require.Len(t, catalog.queries(), 5)
}

func TestCategoryFor(t *testing.T) {
	id, ok := CategoryFor("Hip Hop")
	require.True(t, ok)
	require.Equal(t, "hiphop", id)

	id, ok = CategoryFor("R&B")
	require.True(t, ok)
	require.Equal(t, "rnb", id)

	_, ok = CategoryFor("sad songs")
	require.False(t, ok)
}

func TestSelectCandidateSkipsInvalid(t *testing.T) {
	_, ok := selectCandidate([]Entry{
		{Name: "No URL", Owner: "a"},
		{Name: "No Owner", URL: "https://x"},
		{Owner: "a", URL: "https://x"},
	}, "pop")
	require.False(t, ok)
}

func newResolverUnderTest(tokens TokenSource, catalog Catalog, cfg Config) Resolver {
	return NewResolver(cfg, tokens, catalog, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

type stubTokens struct {
	mu        sync.Mutex
	token     string
	err       error
	calls     int
	failAfter int
}

func (s *stubTokens) Token(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	if s.failAfter > 0 && s.calls > s.failAfter {
		return "", errors.New("token expired and refresh failed")
	}
	return s.token, nil
}

type stubCatalog struct {
	mu            sync.Mutex
	search        map[string][]Entry
	searchErr     map[string]error
	category      map[string][]Entry
	categoryErr   error
	panicOn       string
	seen          []string
	categoryCalls int
	lastToken     string
	lastSearch    SearchRequest
	lastCategory  CategoryRequest
}

func (s *stubCatalog) SearchPlaylists(ctx context.Context, token string, req SearchRequest) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if req.Query == s.panicOn {
		panic("decoder blew up")
	}
	s.seen = append(s.seen, req.Query)
	s.lastToken = token
	s.lastSearch = req
	if err := s.searchErr[req.Query]; err != nil {
		return nil, err
	}
	return s.search[req.Query], nil
}

func (s *stubCatalog) CategoryPlaylists(ctx context.Context, token string, req CategoryRequest) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categoryCalls++
	s.lastCategory = req
	if s.categoryErr != nil {
		return nil, s.categoryErr
	}
	return s.category[req.CategoryID], nil
}

func (s *stubCatalog) queries() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.seen...)
}
