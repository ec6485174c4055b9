package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/weather-beats/internal/bootstrap"
	"github.com/yanqian/weather-beats/internal/domain/beats"
	"github.com/yanqian/weather-beats/internal/domain/credential"
	"github.com/yanqian/weather-beats/internal/domain/mapping"
	"github.com/yanqian/weather-beats/internal/domain/playlist"
	"github.com/yanqian/weather-beats/internal/infra/config"
	"github.com/yanqian/weather-beats/internal/infra/mappingrepo"
	"github.com/yanqian/weather-beats/internal/infra/openweather"
	"github.com/yanqian/weather-beats/internal/infra/spotify"
)

func provideWeatherClient(cfg *config.Config, logger *slog.Logger) *openweather.Client {
	if strings.TrimSpace(cfg.Weather.APIKey) == "" {
		logger.Warn("openweather api key not set, weather requests will fail")
	}
	return openweather.NewClient(cfg.Weather.APIKey, cfg.Weather.BaseURL, cfg.Weather.Timeout, logger)
}

func provideSpotifyCredentials(cfg *config.Config) credential.Credentials {
	return credential.Credentials{
		ClientID:     cfg.Spotify.ClientID,
		ClientSecret: cfg.Spotify.ClientSecret,
	}
}

func provideSpotifyAuthenticator(cfg *config.Config, logger *slog.Logger) *spotify.Authenticator {
	return spotify.NewAuthenticator(cfg.Spotify.TokenURL, cfg.Spotify.AuthTimeout, logger)
}

func provideSpotifyCatalog(cfg *config.Config, logger *slog.Logger) *spotify.Catalog {
	return spotify.NewCatalog(spotify.CatalogConfig{
		BaseURL:           cfg.Spotify.APIBaseURL,
		SearchTimeout:     cfg.Spotify.SearchTimeout,
		RequestsPerSecond: cfg.Spotify.RequestsPerSecond,
	}, logger)
}

func providePlaylistConfig(cfg *config.Config) playlist.Config {
	return playlist.Config{
		Market:          cfg.Spotify.Market,
		Country:         cfg.Spotify.Market,
		SearchLimit:     cfg.Spotify.SearchLimit,
		CategoryLimit:   cfg.Spotify.CategoryLimit,
		ParallelQueries: cfg.Playlist.ParallelQueries,
	}
}

func provideGenreLookup(svc mapping.Service) beats.GenreLookup {
	return svc
}

func provideSeeder(svc mapping.Service) bootstrap.Seeder {
	return svc
}

// provideMappingStore prefers Postgres, then Valkey, and falls back to memory.
func provideMappingStore(cfg *config.Config, logger *slog.Logger) mapping.Store {
	if store, ok := providePostgresMappingStore(cfg, logger); ok {
		return store
	}
	if store, ok := provideValkeyMappingStore(cfg, logger); ok {
		return store
	}
	logger.Info("using in-memory mapping store")
	return mappingrepo.NewMemoryRepository()
}

func providePostgresMappingStore(cfg *config.Config, logger *slog.Logger) (mapping.Store, bool) {
	dsn := strings.TrimSpace(cfg.Mappings.Postgres.DSN)
	if dsn == "" {
		return nil, false
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("invalid postgres dsn, skipping postgres mapping store", "error", err)
		return nil, false
	}
	if cfg.Mappings.Postgres.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Mappings.Postgres.MaxConns
	}
	if cfg.Mappings.Postgres.MinConns > 0 {
		poolConfig.MinConns = cfg.Mappings.Postgres.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, skipping postgres mapping store", "error", err)
		return nil, false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed, skipping postgres mapping store", "error", err)
		pool.Close()
		return nil, false
	}
	repo := mappingrepo.NewPostgresRepository(pool)
	if err := repo.EnsureSchema(ctx); err != nil {
		logger.Error("failed to ensure mapping schema, skipping postgres mapping store", "error", err)
		pool.Close()
		return nil, false
	}
	logger.Info("postgres mapping store enabled")
	return repo, true
}

func provideValkeyMappingStore(cfg *config.Config, logger *slog.Logger) (mapping.Store, bool) {
	if !cfg.Mappings.Valkey.Enabled {
		return nil, false
	}
	opt, err := buildValkeyOptions(cfg.Mappings.Valkey.Addr)
	if err != nil {
		logger.Error("invalid valkey configuration, skipping valkey mapping store", "error", err)
		return nil, false
	}
	client, err := valkey.NewClient(opt)
	if err != nil {
		logger.Error("failed to create valkey client, skipping valkey mapping store", "error", err)
		return nil, false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		logger.Error("valkey ping failed, skipping valkey mapping store", "error", err)
		client.Close()
		return nil, false
	}
	logger.Info("valkey mapping store enabled", "addr", cfg.Mappings.Valkey.Addr)
	return mappingrepo.NewValkeyRepository(client, cfg.Mappings.Valkey.Prefix), true
}

func buildValkeyOptions(addr string) (valkey.ClientOption, error) {
	if strings.Contains(addr, "://") {
		return valkey.ParseURL(addr)
	}
	return valkey.ClientOption{InitAddress: []string{addr}}, nil
}
