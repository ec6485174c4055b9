package beats

import (
	"context"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/yanqian/weather-beats/internal/domain/clothing"
	"github.com/yanqian/weather-beats/internal/domain/playlist"
	"github.com/yanqian/weather-beats/internal/domain/weather"
	apperrors "github.com/yanqian/weather-beats/pkg/errors"
)

// Service resolves a location and mood into weather, music and clothing advice.
type Service interface {
	Recommend(ctx context.Context, req Request) (Response, error)
}

// GenreLookup resolves the genre for a weather condition and mood.
type GenreLookup interface {
	Genre(ctx context.Context, condition, mood string) (string, error)
}

type service struct {
	provider weather.Provider
	genres   GenreLookup
	playlist playlist.Resolver
	logger   *slog.Logger
}

// NewService wires up the orchestrator.
func NewService(provider weather.Provider, genres GenreLookup, resolver playlist.Resolver, logger *slog.Logger) Service {
	return &service{
		provider: provider,
		genres:   genres,
		playlist: resolver,
		logger:   logger.With("component", "beats.service"),
	}
}

func (s *service) Recommend(ctx context.Context, req Request) (Response, error) {
	lat, lon, mood, err := validate(req)
	if err != nil {
		return Response{}, err
	}
	s.logger.Info("fetching weather", "lat", lat, "lon", lon, "mood", mood)

	reading, err := s.provider.Fetch(ctx, lat, lon)
	if err != nil {
		return Response{}, apperrors.Wrap(apperrors.CodeWeather, "failed to fetch weather", err)
	}
	obs := weather.Observe(reading)
	s.logger.Info("weather fetched",
		"condition", obs.Condition,
		"city", obs.City,
		"celsius", obs.Temperature.Celsius(),
		"feels_like_celsius", obs.FeelsLike.Celsius(),
	)

	genre, err := s.genres.Genre(ctx, obs.Condition, mood)
	if err != nil {
		return Response{}, err
	}

	var (
		wg          sync.WaitGroup
		playlistURL string
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		playlistURL = s.playlist.Resolve(ctx, genre)
	}()
	outfit := clothing.Recommend(obs.Condition, float64(obs.Temperature.Celsius()))
	wg.Wait()

	if playlistURL == "" {
		playlistURL = playlist.FeaturedURL
	}

	return Response{
		Weather: Weather{
			Condition:   obs.Condition,
			Description: obs.Description,
			City:        obs.City,
			Temperature: Temperature{
				Celsius:    obs.Temperature.Celsius(),
				Fahrenheit: obs.Temperature.Fahrenheit(),
				FeelsLike: FeelsLike{
					Celsius:    obs.FeelsLike.Celsius(),
					Fahrenheit: obs.FeelsLike.Fahrenheit(),
				},
			},
			Humidity: obs.Humidity,
		},
		Music: Music{
			SuggestedGenre: genre,
			PlaylistURL:    playlistURL,
		},
		Clothing: outfit,
	}, nil
}

func validate(req Request) (float64, float64, string, error) {
	rawLat := strings.TrimSpace(req.Lat)
	rawLon := strings.TrimSpace(req.Lon)
	mood := strings.TrimSpace(req.Mood)
	if rawLat == "" || rawLon == "" || mood == "" {
		return 0, 0, "", apperrors.Wrap(apperrors.CodeInvalidInput, "Latitude, longitude, and mood are required.", nil)
	}
	lat, err := strconv.ParseFloat(rawLat, 64)
	if err != nil || math.IsNaN(lat) || lat < -90 || lat > 90 {
		return 0, 0, "", apperrors.Wrap(apperrors.CodeInvalidInput, "Latitude must be a number between -90 and 90.", err)
	}
	lon, err := strconv.ParseFloat(rawLon, 64)
	if err != nil || math.IsNaN(lon) || lon < -180 || lon > 180 {
		return 0, 0, "", apperrors.Wrap(apperrors.CodeInvalidInput, "Longitude must be a number between -180 and 180.", err)
	}
	return lat, lon, mood, nil
}
