package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/yanqian/weather-beats/internal/infra/config"
)

// Seeder populates the mapping store on start-up.
type Seeder interface {
	Seed(ctx context.Context) (int, error)
}

// App encapsulates the HTTP server lifecycle.
type App struct {
	cfg    *config.Config
	logger *slog.Logger
	server *http.Server
	seeder Seeder
}

// NewApp is used by Wire to build the runnable app.
func NewApp(cfg *config.Config, logger *slog.Logger, server *http.Server, seeder Seeder) *App {
	return &App{cfg: cfg, logger: logger.With("component", "bootstrap"), server: server, seeder: seeder}
}

// Run seeds sample mappings, starts the HTTP server and blocks until shutdown.
func (a *App) Run(ctx context.Context) error {
	a.seed(ctx)

	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("http server starting", "address", a.server.Addr, "debug_routes", a.cfg.HTTP.DebugRoutes)
		if err := a.server.ListenAndServe(); err != nil {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		timeout := a.cfg.HTTP.ShutdownTimeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		a.logger.Info("shutdown signal received")
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// seed failures are logged and never stop the server.
func (a *App) seed(ctx context.Context) {
	if !a.cfg.Mappings.Seed || a.seeder == nil {
		return
	}
	seedCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	added, err := a.seeder.Seed(seedCtx)
	if err != nil {
		a.logger.Error("failed to seed mood mappings", "error", err)
		return
	}
	a.logger.Info("mood mappings ready", "seeded", added)
}
