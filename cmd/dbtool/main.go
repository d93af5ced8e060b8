package main

import (
	"context"
	"os"
	"trip-planner-service/internal/adapters/cache"
	"trip-planner-service/internal/adapters/repositories"
	"trip-planner-service/internal/config"
	"trip-planner-service/internal/platform/db"
	"trip-planner-service/internal/platform/obs"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// dbtool prepares the database: creates the schema and optionally primes
// the geocode cache. It does not need an ORS key.
func main() {
	envErr := godotenv.Load()
	obs.NewLogger(config.Get("LOG_LEVEL", "info"), os.Stdout)
	if envErr != nil {
		log.Info().Msg("No .env file found (using environment variables)")
	}

	conn, dialect, err := db.Connect(config.Get("DATABASE_URL", ""), config.Get("DB_PATH", "data/app.db"))
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer conn.Close()

	ctx := context.Background()

	log.Info().Str("db", dialect.String()).Msg("Initializing database schema...")
	if err := repositories.InitSchema(ctx, conn); err != nil {
		log.Fatal().Err(err).Msg("schema initialization failed")
	}
	log.Info().Msg("Schema ready.")

	seedPath := config.Get("GEOCODE_SEED_PATH", "")
	if seedPath == "" {
		return
	}

	log.Info().Str("path", seedPath).Msg("Seeding geocode cache...")
	geocodes := cache.NewSqliteGeocodeCache(conn)
	if dialect == db.Postgres {
		geocodes = cache.NewPostgresGeocodeCache(conn)
	}
	n, err := repositories.SeedGeocodeCacheFromJSON(ctx, geocodes, seedPath)
	if err != nil {
		log.Fatal().Err(err).Msg("seeding failed")
	}
	log.Info().Int("entries", n).Msg("Seeding complete.")
}
