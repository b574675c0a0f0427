package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/nlitvinov/go-task-api/internal/auth"
	"github.com/nlitvinov/go-task-api/internal/config"
	v1 "github.com/nlitvinov/go-task-api/internal/delivery/http/v1"
	"github.com/nlitvinov/go-task-api/internal/services"
	"github.com/nlitvinov/go-task-api/internal/storage"
	"github.com/nlitvinov/go-task-api/internal/storage/postgres"
	"github.com/nlitvinov/go-task-api/internal/storage/rediscache"
)

func MustListenAndServeHTTP() {
	cfg := config.Global()
	if cfg.Env != config.EnvLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	httpCfg := cfg.HTTP

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	registerRoutes(router)

	server := &http.Server{
		Addr:    net.JoinHostPort(httpCfg.Host, httpCfg.Port),
		Handler: router,
	}

	go func() {
		globalLogger.Info().
			Str("host", httpCfg.Host).
			Str("port", httpCfg.Port).
			Msg("setting up http server")
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			globalLogger.Error().
				Err(err).
				Msg("failed to listen and serve http")
			panic(err)
		}
	}()

	// Wait for the interrupt signal to gracefully
	// shut down the server with a timeout.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	globalLogger.Info().
		Msg("shutting down http server")

	ctx, cancel := context.WithTimeout(context.Background(), httpCfg.ShutdownTimeout)
	defer cancel()

	err := server.Shutdown(ctx)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to shutdown http server")
		panic(err)
	}
	globalLogger.Info().Msg("shut down http server")
}

func registerRoutes(router gin.IRouter) {
	cfg := config.Global()

	var taskStore storage.TaskStore = postgres.NewTaskStore(globalLogger, globalPostgresPool)
	userStore := postgres.NewUserStore(globalLogger, globalPostgresPool)

	var cachePinger v1.Pinger
	if globalRedisClient != nil {
		taskStore = rediscache.NewTaskStore(
			globalLogger,
			globalRedisClient,
			taskStore,
			cfg.Redis.CacheTTL,
		)
		cachePinger = v1.PingerFunc(func(ctx context.Context) error {
			return globalRedisClient.Ping(ctx).Err()
		})
	}

	codec := newTokenCodec(cfg.Auth)
	taskService := services.NewTaskService(globalLogger, taskStore)
	authService := services.NewAuthService(globalLogger, userStore, codec)

	handler := v1.New(
		globalLogger,
		taskService,
		authService,
		cfg.Env,
		globalPostgresPool,
		cachePinger,
	)
	v1.RegisterRoutes(router, handler, cfg.Auth.Required)
}

func newTokenCodec(cfg config.AuthConfig) auth.TokenCodec {
	if cfg.TokenScheme == config.TokenSchemeLegacy {
		return auth.NewLegacyCodec(cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	}
	return auth.NewJWTCodec(
		cfg.Issuer,
		[]byte(cfg.SigningKey),
		cfg.AccessTokenTTL,
		cfg.RefreshTokenTTL,
	)
}
