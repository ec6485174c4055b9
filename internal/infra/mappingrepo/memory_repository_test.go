package mappingrepo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/weather-beats/internal/domain/mapping"
)

func TestMemoryRepositoryFirstMatchWins(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, mapping.Mapping{WeatherCondition: "Rain", Mood: "Happy", SuggestedGenre: "jazz"}))
	require.NoError(t, repo.Insert(ctx, mapping.Mapping{WeatherCondition: "Rain", Mood: "Happy", SuggestedGenre: "blues"}))

	m, found, err := repo.Find(ctx, "Rain", "Happy")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "jazz", m.SuggestedGenre)

	_, found, err = repo.Find(ctx, "rain", "Happy")
	require.NoError(t, err)
	require.False(t, found, "lookups are case sensitive")

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(2), count)
}

func TestMemoryRepositoryListIsCopy(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	require.NoError(t, repo.Insert(ctx, mapping.Mapping{WeatherCondition: "Snow", Mood: "Calm", SuggestedGenre: "winter chill"}))

	items, err := repo.List(ctx)
	require.NoError(t, err)
	items[0].SuggestedGenre = "mutated"

	again, err := repo.List(ctx)
	require.NoError(t, err)
	require.Equal(t, "winter chill", again[0].SuggestedGenre)
}

func TestFieldForEscapesSeparator(t *testing.T) {
	require.Equal(t, "Rain|Happy", fieldFor("Rain", "Happy"))
	require.NotEqual(t, fieldFor("a|b", "c"), fieldFor("a", "b|c"))
}
