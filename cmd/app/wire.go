//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/weather-beats/internal/bootstrap"
	"github.com/yanqian/weather-beats/internal/domain/beats"
	"github.com/yanqian/weather-beats/internal/domain/credential"
	"github.com/yanqian/weather-beats/internal/domain/mapping"
	"github.com/yanqian/weather-beats/internal/domain/playlist"
	"github.com/yanqian/weather-beats/internal/domain/weather"
	"github.com/yanqian/weather-beats/internal/infra/config"
	"github.com/yanqian/weather-beats/internal/infra/openweather"
	"github.com/yanqian/weather-beats/internal/infra/spotify"
	httpiface "github.com/yanqian/weather-beats/internal/interface/http"
	"github.com/yanqian/weather-beats/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideWeatherClient,
		provideSpotifyCredentials,
		provideSpotifyAuthenticator,
		provideSpotifyCatalog,
		providePlaylistConfig,
		provideMappingStore,
		provideGenreLookup,
		provideSeeder,
		credential.NewCache,
		mapping.NewService,
		playlist.NewResolver,
		beats.NewService,
		wire.Bind(new(weather.Provider), new(*openweather.Client)),
		wire.Bind(new(credential.Authenticator), new(*spotify.Authenticator)),
		wire.Bind(new(playlist.TokenSource), new(*credential.Cache)),
		wire.Bind(new(playlist.Catalog), new(*spotify.Catalog)),
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
