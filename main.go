package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/fakhrymubarak/geo-weather-api/internal/config"
	"github.com/fakhrymubarak/geo-weather-api/internal/handler"
	"github.com/fakhrymubarak/geo-weather-api/internal/repository"
	"github.com/fakhrymubarak/geo-weather-api/internal/service"
	"github.com/fakhrymubarak/geo-weather-api/internal/tracing"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := config.NewLogger(cfg.Log)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatalw("server stopped", "error", err)
	}
}

func run(ctx context.Context, cfg config.Config, logger *zap.SugaredLogger) error {
	shutdownTracing, err := tracing.InitProvider(ctx, cfg.Tracing)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Warnw("failed to shut down tracer provider", "error", err)
		}
	}()

	if cfg.OpenWeatherMap.APIKey == "" {
		logger.Warn("OPENWEATHERMAP_API_KEY is not set, weather requests will be rejected upstream")
	}

	srv := newServer(cfg, logger)

	serverErr := make(chan error, 1)
	go func() {
		logger.Infow("starting server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newServer wires repositories, services and handlers into an http.Server for cfg.
func newServer(cfg config.Config, logger *zap.SugaredLogger) *http.Server {
	client := repository.NewHTTPClient(cfg.Upstream.Timeout)
	weatherRepo := repository.NewWeatherRepository(client, cfg.OpenWeatherMap)
	ipRepo := repository.NewIPLocationRepository(client, cfg.IPAPI)

	locations := service.NewLocationService(ipRepo, weatherRepo, logger)
	weather := service.NewWeatherService(weatherRepo, logger)

	h := handler.NewHandler(locations, weather, logger)

	return &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           handler.NewRouter(h, logger),
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}
}
