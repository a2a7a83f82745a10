package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"reliableteam-site/config"
	_ "reliableteam-site/docs" // Important for Swagger
	v1 "reliableteam-site/internal/delivery/http/v1"
	"reliableteam-site/internal/delivery/http/web"
	"reliableteam-site/internal/domain"
	"reliableteam-site/internal/repository/memory"
	"reliableteam-site/internal/repository/postgres"
	"reliableteam-site/internal/site"
	"reliableteam-site/internal/usecase"
	"reliableteam-site/pkg/database"
	"reliableteam-site/pkg/email"
	"reliableteam-site/pkg/logger"
	"reliableteam-site/pkg/redis"
	"reliableteam-site/pkg/validation"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"
)

// @title           ReliableTeam.ai Site API
// @version         1.0
// @description     Landing page and inquiry intake for ReliableTeam.ai.
// @host            localhost:8080
// @BasePath        /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting ReliableTeam.ai site", "port", cfg.Port)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	probes := map[string]usecase.Probe{}

	// 3. Setup Storage
	var inquiryRepo domain.InquiryRepository
	if cfg.DBUrl != "" {
		dbPool, err := database.NewPostgresConnection(ctx, cfg.DBUrl)
		if err != nil {
			logger.Log.Error("Failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer dbPool.Close()

		if err := postgres.EnsureSchema(ctx, dbPool); err != nil {
			logger.Log.Error("Failed to prepare inquiry table", "error", err)
			os.Exit(1)
		}
		inquiryRepo = postgres.NewInquiryRepository(dbPool)
		probes["database"] = pingProbe(dbPool)
	} else {
		inquiryRepo, err = memory.NewInquiryRepository()
		if err != nil {
			logger.Log.Error("Failed to create in-memory store", "error", err)
			os.Exit(1)
		}
	}

	// 4. Setup Redis (optional, rate limiting falls back to memory)
	if err := redis.Initialize(ctx, redis.Config{URL: cfg.UpstashRedisURL, Password: cfg.UpstashRedisPassword}); err != nil {
		if !errors.Is(err, redis.ErrNotConfigured) {
			logger.Log.Warn("Redis unavailable, using in-memory rate limiting", "error", err)
		}
	} else {
		defer redis.Close()
		probes["redis"] = redis.HealthCheck
	}

	// 5. Setup Email Service
	emailService := email.NewEmailService(cfg)
	if !emailService.IsConfigured() {
		logger.Log.Warn("Email service not fully configured - inquiries will be stored without staff notification")
	}

	// 6. Setup UseCases
	inquiryUC := usecase.NewInquiryUsecase(inquiryRepo, emailService, validation.New())
	healthUC := usecase.NewHealthUsecase(probes)

	// 7. Setup Landing Page
	content, err := site.Load()
	if err != nil {
		logger.Log.Error("Failed to load page content", "error", err)
		os.Exit(1)
	}
	page, err := web.NewPage(content, cfg.TemplateDir)
	if err != nil {
		logger.Log.Error("Failed to load page templates", "error", err)
		os.Exit(1)
	}

	// 8. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		InquiryUC: inquiryUC,
		HealthUC:  healthUC,
		Page:      page,
		Config:    cfg,
	})

	// 9. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// Graceful Shutdown
	g.Go(func() error {
		<-gctx.Done()
		logger.Log.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Log.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}

	logger.Log.Info("Server exiting")
}

func pingProbe(pool *pgxpool.Pool) usecase.Probe {
	return func(ctx context.Context) error {
		return pool.Ping(ctx)
	}
}
