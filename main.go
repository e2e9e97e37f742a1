package main

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/xaitan80/cricfanzz/internal/config"
	dbpkg "github.com/xaitan80/cricfanzz/internal/db"
	"github.com/xaitan80/cricfanzz/internal/logging"
	"github.com/xaitan80/cricfanzz/internal/matches"
	"github.com/xaitan80/cricfanzz/internal/weather"
)

//go:embed web/*
var webFS embed.FS

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logger, err := logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	if err := run(cfg, logger); err != nil {
		logger.Fatal().Err(err).Msg("cricfanzz stopped")
	}
}

// backend is the storage opened for one process lifetime.
type backend struct {
	matches matches.Gateway
	weather weather.Store
	close   func(context.Context) error
}

func openBackend(ctx context.Context, cfg config.Config) (*backend, error) {
	switch cfg.Store.Driver {
	case config.DriverSQLite:
		gdb, err := dbpkg.OpenSQLite(cfg.SQLite.Path)
		if err != nil {
			return nil, err
		}
		if err := dbpkg.Migrate(gdb); err != nil {
			_ = dbpkg.CloseSQLite(gdb)
			return nil, fmt.Errorf("migrate: %w", err)
		}
		return &backend{
			matches: matches.NewRepo(gdb),
			weather: weather.NewGormStore(gdb),
			close:   func(context.Context) error { return dbpkg.CloseSQLite(gdb) },
		}, nil

	case config.DriverMongo:
		client, err := dbpkg.OpenMongo(ctx, cfg.Mongo.URI, cfg.Store.Timeout)
		if err != nil {
			return nil, err
		}
		mdb := client.Database(cfg.Mongo.Database)
		repo := matches.NewMongoRepo(mdb.Collection(matches.Collection))

		ictx, cancel := context.WithTimeout(ctx, cfg.Store.Timeout)
		defer cancel()
		if err := repo.EnsureIndexes(ictx); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, err
		}
		return &backend{
			matches: repo,
			weather: weather.NewMongoStore(mdb.Collection(weather.Collection)),
			close:   client.Disconnect,
		}, nil
	}
	return nil, fmt.Errorf("%w, got %q", config.ErrUnknownDriver, cfg.Store.Driver)
}

func newProvider(cfg config.WeatherConfig) weather.Provider {
	if cfg.Provider == config.ProviderOpenWeather {
		return weather.NewOpenWeather(cfg.OpenWeatherKey, cfg.Timeout)
	}
	return weather.NewVisualCrossing(cfg.VisualCrossingKey, cfg.Timeout)
}

func newRouter(cfg config.Config, logger zerolog.Logger, b *backend) (*gin.Engine, error) {
	if cfg.Log.Level != "debug" && cfg.Log.Level != "trace" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), logging.Middleware(logger))
	if err := r.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}

	matches.RegisterRoutes(r, b.matches, matches.RouteConfig{
		MaxLimit:     cfg.HTTP.MaxLimit,
		StoreTimeout: cfg.Store.Timeout,
	})
	weather.RegisterRoutes(r, weather.NewService(newProvider(cfg.Weather), b.weather, cfg.Store.Timeout))

	r.GET("/", func(c *gin.Context) {
		f, err := webFS.ReadFile("web/index.html")
		if err != nil {
			c.String(http.StatusInternalServerError, "missing index")
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", f)
	})
	return r, nil
}

func run(cfg config.Config, logger zerolog.Logger) error {
	ctx := context.Background()
	b, err := openBackend(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.Store.Driver, err)
	}
	defer func() {
		cctx, cancel := context.WithTimeout(context.Background(), cfg.Store.Timeout)
		defer cancel()
		if err := b.close(cctx); err != nil {
			logger.Error().Err(err).Msg("close store")
		}
	}()

	r, err := newRouter(cfg, logger, b)
	if err != nil {
		return err
	}
	handler := cors.Handler(cors.Options{
		AllowedOrigins: cfg.HTTP.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", logging.RequestIDHeader},
		ExposedHeaders: []string{"Content-Disposition", logging.RequestIDHeader},
		MaxAge:         300,
	})(r)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	serverErrors := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.Addr).Str("store", cfg.Store.Driver).Msg("listening")
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
	case sig := <-shutdown:
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(sctx); err != nil {
			_ = srv.Close()
			return fmt.Errorf("graceful shutdown: %w", err)
		}
	}
	logger.Info().Msg("shutdown complete")
	return nil
}
