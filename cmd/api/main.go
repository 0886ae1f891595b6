package main

import (
	"database/sql"
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	authad "hoteldir/internal/adapters/auth"
	server "hoteldir/internal/adapters/http_server"
	"hoteldir/internal/adapters/observability"
	redisad "hoteldir/internal/adapters/redis"
	"hoteldir/internal/app"
	"hoteldir/internal/shared"
	mysqlrepo "hoteldir/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	// db
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("database connection ok")

	// deps
	repo := mysqlrepo.New(db)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	tokens, err := authad.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		log.Fatal().Err(err).Msg("token manager init failed")
	}

	handlers := server.NewHandlers(server.HandlersConfig{
		AppEnv:     cfg.AppEnv,
		Tokens:     tokens,
		Authz:      app.NewAuthorizer(repo, cache, cfg.CacheTTL),
		Auth:       app.NewAuthService(repo, tokens),
		Hotels:     app.NewHotelService(repo, cache, cfg.CacheTTL),
		Reviews:    app.NewReviewService(repo),
		Users:      app.NewUserService(repo),
		LoginRPS:   cfg.LoginRPS,
		LoginBurst: cfg.LoginBurst,
	})

	// http
	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	handlers.MountHandlers(srv)

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
