package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/todo-api/services/todo-service/internal/config"
	"github.com/vasapolrittideah/todo-api/services/todo-service/internal/handler"
	"github.com/vasapolrittideah/todo-api/services/todo-service/internal/repository"
	"github.com/vasapolrittideah/todo-api/services/todo-service/internal/router"
	"github.com/vasapolrittideah/todo-api/services/todo-service/internal/usecase"
	"github.com/vasapolrittideah/todo-api/shared/auth"
	"github.com/vasapolrittideah/todo-api/shared/database"
	"github.com/vasapolrittideah/todo-api/shared/discovery"
	"github.com/vasapolrittideah/todo-api/shared/logger"
	"github.com/vasapolrittideah/todo-api/shared/middleware"
	"github.com/vasapolrittideah/todo-api/shared/security"
	"github.com/vasapolrittideah/todo-api/shared/validation"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLogger := zerolog.New(os.Stderr).With().Timestamp().Logger()
		bootLogger.Fatal().Err(err).Msg("failed to load config")
	}

	log := logger.New(logger.Config{
		Level:      cfg.LogLevel,
		Production: cfg.IsProduction(),
		Service:    cfg.Consul.ServiceName,
	})

	if cfg.Token.Secret == "" {
		log.Warn().Msg("JWT_SECRET is not set; register, login and protected routes will fail")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mongoClient, err := database.NewMongoClient(ctx, cfg.Mongo.URI)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongo")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("failed to disconnect from mongo")
		}
	}()

	db := mongoClient.Database(cfg.Mongo.Database)
	userRepo := repository.NewUserMongoRepository(ctx, log, db)
	todoRepo := repository.NewTodoMongoRepository(ctx, log, db)

	hasher, err := security.NewHasher(security.Config{
		Algorithm:  cfg.Password.Algorithm,
		BcryptCost: cfg.Password.BcryptCost,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create password hasher")
	}

	validator, err := validation.New()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create validator")
	}

	jwtAuth := auth.NewJWTAuthenticator(cfg.Token.Issuer, cfg.Token.Issuer)
	cookies := auth.NewCookieConfig(cfg.IsProduction())

	authUsecase := usecase.NewAuthUsecase(userRepo, hasher, &jwtAuth, cfg.Token)
	todoUsecase := usecase.NewTodoUsecase(todoRepo)

	h := router.New(router.Dependencies{
		AuthHandler:    handler.NewAuthHTTPHandler(authUsecase, validator, cookies, log),
		TodoHandler:    handler.NewTodoHTTPHandler(todoUsecase, log),
		SessionGate:    middleware.NewSessionGate(&jwtAuth, cfg.Token.Secret, cookies, log),
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Logger:         log,
	})

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Server.Port),
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	if cfg.Consul.Addr != "" {
		registrar, err := discovery.NewRegistrar(cfg.Consul.Addr, log)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create consul registrar")
		}

		if err := registrar.Register(discovery.Registration{
			ServiceName: cfg.Consul.ServiceName,
			Host:        cfg.Consul.ServiceHost,
			Port:        cfg.Server.Port,
			HealthPath:  "/healthz",
		}); err != nil {
			log.Error().Err(err).Msg("failed to register with consul")
		}
		defer func() {
			if err := registrar.Deregister(); err != nil {
				log.Error().Err(err).Msg("failed to deregister from consul")
			}
		}()
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("todo service listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("http server failed")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http server shutdown failed")
	}
}
