package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/vaxcare/vaxcare-backend/config"
	"github.com/vaxcare/vaxcare-backend/internal/auth"
	"github.com/vaxcare/vaxcare-backend/internal/health"
	"github.com/vaxcare/vaxcare-backend/internal/infrastructure/postgres"
	ctxlog "github.com/vaxcare/vaxcare-backend/internal/log"
	"github.com/vaxcare/vaxcare-backend/internal/metrics"
	httptransport "github.com/vaxcare/vaxcare-backend/internal/transport/http"
	"github.com/vaxcare/vaxcare-backend/internal/transport/http/handler"
	"github.com/vaxcare/vaxcare-backend/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := newLogger(cfg.Env, cfg.SlogLevel())

	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		stop()
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	hasher := auth.NewHasher(cfg.BcryptCost)
	tokens := auth.NewTokenService(
		[]byte(cfg.JWTAccessSecret),
		[]byte(cfg.JWTRefreshSecret),
		cfg.JWTAccessTTL,
		cfg.JWTRefreshTTL,
	)

	userRepo := postgres.NewUserRepository(pool)
	profileRepo := postgres.NewProfileRepository(pool)
	childRepo := postgres.NewChildRepository(pool)
	vaccineRepo := postgres.NewVaccineRepository(pool)
	driveRepo := postgres.NewDriveRepository(pool)
	notificationRepo := postgres.NewNotificationRepository(pool)

	authUsecase := usecase.NewAuthUsecase(userRepo, hasher, tokens)
	profileUsecase := usecase.NewProfileUsecase(profileRepo)
	childUsecase := usecase.NewChildUsecase(childRepo, vaccineRepo)
	vaccineUsecase := usecase.NewVaccineUsecase(vaccineRepo, childRepo)
	driveUsecase := usecase.NewDriveUsecase(driveRepo)
	notificationUsecase := usecase.NewNotificationUsecase(notificationRepo)

	handlers := httptransport.Handlers{
		Auth:         handler.NewAuthHandler(authUsecase, logger),
		Profile:      handler.NewProfileHandler(profileUsecase, logger),
		Child:        handler.NewChildHandler(childUsecase, logger),
		Vaccine:      handler.NewVaccineHandler(vaccineUsecase, logger),
		Drive:        handler.NewDriveHandler(driveUsecase, logger),
		Notification: handler.NewNotificationHandler(notificationUsecase, logger),
	}

	metrics.Register()
	checker := health.NewChecker(pool, logger, prometheus.DefaultRegisterer)

	srv := http.Server{
		Addr:    ":" + cfg.Port,
		Handler: httptransport.NewRouter(logger, tokens, handlers, checker),
	}

	metricsSrv := metrics.NewServer(":"+cfg.MetricsPort, checker)

	go func() {
		logger.Info("server started", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	go func() {
		logger.Info("metrics server started", "port", cfg.MetricsPort)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "error", err)
		}
	}()

	<-ctx.Done()
	stop()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown", "error", err)
	}
}

func newLogger(env string, level slog.Level) *slog.Logger {
	var inner slog.Handler
	if env == "local" {
		inner = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	} else {
		inner = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})
	}
	return slog.New(ctxlog.NewContextHandler(inner))
}
