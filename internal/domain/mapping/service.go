package mapping

import (
	"context"
	"log/slog"
	"strings"

	apperrors "github.com/yanqian/weather-beats/pkg/errors"
)

// Service manages weather/mood to genre mappings.
type Service interface {
	Genre(ctx context.Context, condition, mood string) (string, error)
	Add(ctx context.Context, m Mapping) (Mapping, error)
	List(ctx context.Context) ([]Mapping, error)
	Seed(ctx context.Context) (int, error)
}

type service struct {
	store  Store
	logger *slog.Logger
}

// NewService wires up the mapping domain.
func NewService(store Store, logger *slog.Logger) Service {
	return &service{
		store:  store,
		logger: logger.With("component", "mapping.service"),
	}
}

func (s *service) Genre(ctx context.Context, condition, mood string) (string, error) {
	m, found, err := s.store.Find(ctx, condition, mood)
	if err != nil {
		return "", apperrors.Wrap(apperrors.CodeStore, "mapping lookup failed", err)
	}
	if !found || strings.TrimSpace(m.SuggestedGenre) == "" {
		s.logger.Info("no mapping found, using default genre", "condition", condition, "mood", mood, "genre", DefaultGenre)
		return DefaultGenre, nil
	}
	s.logger.Info("mapping found", "condition", condition, "mood", mood, "genre", m.SuggestedGenre)
	return m.SuggestedGenre, nil
}

func (s *service) Add(ctx context.Context, m Mapping) (Mapping, error) {
	m = Mapping{
		WeatherCondition: strings.TrimSpace(m.WeatherCondition),
		Mood:             strings.TrimSpace(m.Mood),
		SuggestedGenre:   strings.TrimSpace(m.SuggestedGenre),
	}
	if m.WeatherCondition == "" || m.Mood == "" || m.SuggestedGenre == "" {
		return Mapping{}, apperrors.Wrap(apperrors.CodeInvalidInput, "All fields are required", nil)
	}
	if err := s.store.Insert(ctx, m); err != nil {
		return Mapping{}, apperrors.Wrap(apperrors.CodeStore, "failed to save mapping", err)
	}
	return m, nil
}

func (s *service) List(ctx context.Context) ([]Mapping, error) {
	items, err := s.store.List(ctx)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeStore, "failed to list mappings", err)
	}
	if items == nil {
		items = []Mapping{}
	}
	return items, nil
}

// Seed inserts SampleMappings when the store is empty and reports how many were added.
func (s *service) Seed(ctx context.Context) (int, error) {
	count, err := s.store.Count(ctx)
	if err != nil {
		return 0, apperrors.Wrap(apperrors.CodeStore, "failed to count mappings", err)
	}
	if count > 0 {
		s.logger.Info("existing mood mappings found", "count", count)
		return 0, nil
	}
	for _, m := range SampleMappings {
		if err := s.store.Insert(ctx, m); err != nil {
			return 0, apperrors.Wrap(apperrors.CodeStore, "failed to seed mappings", err)
		}
	}
	s.logger.Info("seeded sample mood mappings", "count", len(SampleMappings))
	return len(SampleMappings), nil
}
