package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/auth"
	"github.com/BruksfildServices01/barber-booking/internal/cache"
	"github.com/BruksfildServices01/barber-booking/internal/catalog"
	"github.com/BruksfildServices01/barber-booking/internal/config"
	dbpkg "github.com/BruksfildServices01/barber-booking/internal/db"
	infraRepo "github.com/BruksfildServices01/barber-booking/internal/infra/repository"
	"github.com/BruksfildServices01/barber-booking/internal/logger"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/routes"
	"github.com/BruksfildServices01/barber-booking/internal/scheduler"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
	"github.com/BruksfildServices01/barber-booking/internal/validators"
)

func schedulingPolicy(cfg *config.Config) (scheduler.Policy, error) {
	mode, err := scheduler.ParseConflictMode(cfg.Scheduling.ConflictMode)
	if err != nil {
		return scheduler.Policy{}, err
	}

	return scheduler.Policy{
		Mode:                  mode,
		Buffer:                time.Duration(cfg.Scheduling.ConflictBufferMinutes) * time.Minute,
		RequireEndWithinHours: cfg.Scheduling.RequireEndWithinHours,
	}, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	logger.Init(cfg)

	if !timezone.IsValid(cfg.Timezone) {
		log.Warn().Str("timezone", cfg.Timezone).Msg("unknown shop timezone, falling back to default")
	}

	policy, err := schedulingPolicy(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid scheduling config")
	}

	// ======================================================
	// INFRA
	// ======================================================
	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}
	if err := dbpkg.Migrate(db, policy.Mode); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate")
	}

	var catalogCache catalog.Cache
	if cfg.Redis.Addr != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		client, err := cache.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		cancel()
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, catalog cache disabled")
		} else {
			defer client.Close()
			catalogCache = cache.NewRedisCache(client)
			log.Info().Str("addr", cfg.Redis.Addr).Msg("redis connected")
		}
	}

	if err := validators.Register(); err != nil {
		log.Fatal().Err(err).Msg("failed to register validators")
	}

	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)

	auditDispatcher := audit.NewDispatcher(audit.New(db), audit.DefaultQueueSize)
	defer auditDispatcher.Close()

	deps := routes.Deps{
		Appointments: appointmentRepo,
		Accounts:     infraRepo.NewAccountGormRepository(db),
		Ratings:      infraRepo.NewRatingGormRepository(db),
		Catalog:      catalog.New(infraRepo.NewCatalogGormRepository(db), catalogCache, cfg.CacheTTL()),
		Scheduler:    scheduler.New(appointmentRepo, policy, timezone.Location(cfg.Timezone)),
		Tokens:       auth.NewTokens(cfg.JWTSecret, cfg.TokenTTL()),
		Audit:        auditDispatcher,
	}

	// ======================================================
	// HTTP
	// ======================================================
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.CORSMiddleware(),
	)

	routes.RegisterRoutes(r, deps)

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr()).Msg("server running")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}
}
