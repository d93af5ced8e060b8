package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	"trip-planner-service/internal/adapters/cache"
	"trip-planner-service/internal/adapters/events"
	"trip-planner-service/internal/adapters/repositories"
	"trip-planner-service/internal/adapters/routing"
	"trip-planner-service/internal/api"
	"trip-planner-service/internal/config"
	"trip-planner-service/internal/platform/db"
	"trip-planner-service/internal/platform/metrics"
	"trip-planner-service/internal/platform/obs"

	"github.com/rs/zerolog/log"
)

// main is the application composition root.
// It wires concrete adapters (SQL, ORS, NATS) behind ports and starts the HTTP server.
func main() {
	obs.NewLogger("info", os.Stdout)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	obs.NewLogger(cfg.LogLevel, os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, dialect, err := db.Connect(cfg.DatabaseURL, cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer conn.Close()

	if err := repositories.InitSchema(ctx, conn); err != nil {
		log.Fatal().Err(err).Msg("init schema")
	}

	// ORS provider uses persistent caches to avoid repeated geocode/directions calls.
	var (
		routeCache   *cache.RouteCache
		geocodeCache *cache.GeocodeCache
		tripRepo     *repositories.TripRepository
	)
	switch dialect {
	case db.Postgres:
		routeCache = cache.NewPostgresRouteCache(conn)
		geocodeCache = cache.NewPostgresGeocodeCache(conn)
		tripRepo = repositories.NewPostgresTripRepository(conn)
	default:
		routeCache = cache.NewSqliteRouteCache(conn)
		geocodeCache = cache.NewSqliteGeocodeCache(conn)
		tripRepo = repositories.NewSqliteTripRepository(conn)
	}

	if cfg.GeocodeSeedPath != "" {
		n, err := repositories.SeedGeocodeCacheFromJSON(ctx, geocodeCache, cfg.GeocodeSeedPath)
		if err != nil {
			log.Fatal().Err(err).Msg("seed geocode cache")
		}
		log.Info().Int("entries", n).Str("path", cfg.GeocodeSeedPath).Msg("geocode cache seeded")
	}

	collector := metrics.NewCollector()

	provider, err := routing.NewORSRouteProvider(
		cfg.ORSAPIKey, cfg.ORSBaseURL, cfg.ORSProfile,
		routeCache, geocodeCache, collector,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("create route provider")
	}
	provider.SetGeocodeCountry(cfg.GeocodeCountry)

	deps := api.Dependencies{
		Provider:       provider,
		Searcher:       provider,
		Metrics:        collector,
		MetricsHandler: collector.Handler(),
	}

	if cfg.PersistTrips {
		deps.Repo = tripRepo
	}

	if cfg.NATSURL != "" {
		publisher, err := events.NewNATSPublisher(cfg.NATSURL, collector)
		if err != nil {
			log.Fatal().Err(err).Msg("connect nats")
		}
		defer publisher.Close()
		deps.Publisher = publisher
	}

	// Timeouts are tuned for cold-cache planning (two geocodes and two directions calls).
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           api.NewRouter(deps),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("server shutdown")
		}
	}()

	log.Info().
		Str("addr", srv.Addr).
		Str("db", dialect.String()).
		Bool("persist_trips", cfg.PersistTrips).
		Bool("nats", cfg.NATSURL != "").
		Msg("server listening")

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
