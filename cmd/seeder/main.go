package main

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"hoteldir/internal/adapters/observability"
	"hoteldir/internal/app"
	"hoteldir/internal/shared"
	mysqlrepo "hoteldir/internal/storage/mysql"
)

// Seeds the role/permission tables and the bootstrap admin account.
// Idempotent; safe to run on every deploy.
func main() {
	cfg := shared.Load()
	log.Logger = observability.NewLogger(cfg.AppEnv)

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	repo := mysqlrepo.New(db)
	if err := repo.SeedAuth(ctx); err != nil {
		log.Fatal().Err(err).Msg("seeding roles and permissions failed")
	}
	log.Info().Msg("roles and permissions seeded")

	if ok, err := repo.HasAdmin(ctx); err != nil {
		log.Fatal().Err(err).Msg("admin lookup failed")
	} else if ok {
		log.Info().Msg("admin account already present")
		return
	}

	users := app.NewUserService(repo)
	admin, created, err := users.EnsureAdmin(ctx, "admin", "admin123", "admin@hotel.com")
	if err != nil {
		log.Fatal().Err(err).Msg("bootstrap admin failed")
	}
	if created {
		log.Warn().Str("username", admin.Username).
			Msg("bootstrap admin created with the default password; change it after first login")
	}
}
