package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"reisegruppen/auth"
	"reisegruppen/config"
	"reisegruppen/db"
	"reisegruppen/destinations"
	"reisegruppen/groups"
	"reisegruppen/live"
	"reisegruppen/middleware"
	"reisegruppen/observability"
	"reisegruppen/offers"
	"reisegruppen/profile"
	"reisegruppen/ratelim"
	"reisegruppen/rdx"
	"reisegruppen/routes"
	"reisegruppen/seed"
	"reisegruppen/users"

	"github.com/rs/cors"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const maxBodyBytes = 10 << 20

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	logger := observability.NewLogger(cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		log.Fatal().Err(err).Msg("connect mongodb")
	}
	defer func() {
		if err := database.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("disconnect mongodb")
		}
	}()
	log.Info().Str("database", cfg.MongoDatabase).Msg("mongodb connected")

	if len(os.Args) > 1 && os.Args[1] == "seed" {
		if _, err := seed.Run(ctx, database); err != nil {
			log.Fatal().Err(err).Msg("seed database")
		}
		return
	}

	if err := database.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("ensure indexes")
	}

	redis := rdx.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	defer redis.Close()
	if err := redis.Ping(ctx); err != nil {
		// revocation checks fail open and the cache is bypassed until redis is back
		log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unavailable")
	}

	hub := live.NewHub(cfg.CORSOrigins)

	secret := []byte(cfg.JWTSecret)
	userStore := users.NewMongoStore(database.Users)
	router := routes.New(&routes.Deps{
		Auth:         middleware.NewAuthenticator(secret, redis),
		Limiter:      ratelim.NewRateLimiter(cfg.RateLimitPerMinute),
		Offers:       offers.NewHandler(offers.NewMongoStore(database.Offers), cfg.Development()),
		Users:        auth.NewHandler(userStore, auth.NewTokenIssuer(secret, cfg.JWTTTL), redis, cfg.Development()),
		Profile:      profile.NewHandler(userStore, cfg.Development()),
		Destinations: destinations.NewHandler(destinations.NewMongoStore(database.Destinations), redis, cfg.CacheTTL, cfg.Development()),
		Groups:       groups.NewHandler(groups.NewMongoStore(database.Groups), hub, cfg.Development()),
		Metrics:      observability.MetricsHandler(observability.NewRegistry()),
		AdminUIDir:   cfg.AdminUIDir,
	})

	// apply middleware: request id → logging → security headers → body limit → CORS → router
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
	}).Handler(router)

	handler := middleware.RequestID(
		middleware.Logging(logger)(
			middleware.SecurityHeaders(
				middleware.BodyLimit(maxBodyBytes)(corsHandler))))

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadTimeout:       7 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		hub.Run(gctx)
		return nil
	})
	g.Go(func() error {
		log.Info().Str("addr", server.Addr).Str("env", cfg.AppEnv).Msg("server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutdown signal received; shutting down gracefully")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
		return
	}
	log.Info().Msg("server stopped cleanly")
}
