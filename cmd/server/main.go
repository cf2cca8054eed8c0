package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jemis-lakhani/points-go-backend/internal/domain/repository"
	"github.com/jemis-lakhani/points-go-backend/internal/infrastructure/config"
	"github.com/jemis-lakhani/points-go-backend/internal/infrastructure/persistence"
	"github.com/jemis-lakhani/points-go-backend/internal/interface/cache"
	"github.com/jemis-lakhani/points-go-backend/internal/interface/handler"
	"github.com/jemis-lakhani/points-go-backend/internal/interface/provider"
	mongoRepo "github.com/jemis-lakhani/points-go-backend/internal/interface/repository"
	"github.com/jemis-lakhani/points-go-backend/internal/usecase"
	"github.com/jemis-lakhani/points-go-backend/pkg/logger"
	"github.com/jemis-lakhani/points-go-backend/pkg/metrics"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	log := logger.NewLogger(cfg.LogLevel)
	defer log.Sync()
	log.Info("Starting Points Flight Tracker")

	if cfg.AviationAPIKey == "" {
		log.Warn("AVIATION_API_KEY is not set; detail lookups will fail")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// MongoDB is the record store and the single source of truth.
	log.Info("Connecting to MongoDB")
	mongoClient, db, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "error", err)
	}
	flightRepo := mongoRepo.NewMongoFlightRepository(db)

	// Postgres reference data is optional; without it detail responses
	// echo the raw carrier code.
	var airlineRepo repository.AirlineRepository
	if cfg.PostgresDSN != "" {
		gormDB, err := gorm.Open(postgres.Open(cfg.PostgresDSN), &gorm.Config{})
		if err != nil {
			log.Fatal("Failed to connect to PostgreSQL", "error", err)
		}
		airlineRepo = mongoRepo.NewGormAirlineRepository(gormDB)
	} else {
		log.Info("POSTGRES_DSN not set, airline name resolution disabled")
	}

	// Redis caching of detail lookups is optional as well.
	var detailCache repository.DetailCache
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatal("Failed to connect to Redis", "error", err)
		}
		detailCache = cache.NewRedisDetailCache(redisClient, cfg.DetailCacheTTL)
	} else {
		log.Info("REDIS_ADDR not set, detail caching disabled")
	}

	m := metrics.NewMetrics("points")

	scheduleProvider := provider.NewAviationClient(cfg.AviationBaseURL, cfg.AviationAPIKey, cfg.AviationTimeout, log)
	flightService := usecase.NewFlightService(flightRepo, log, m)
	detailService := usecase.NewDetailService(scheduleProvider, airlineRepo, detailCache, log, m)

	flightHandler := handler.NewFlightHandler(flightService, detailService, log)
	router := handler.NewRouter(flightHandler, log)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	cancel()

	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		log.Error("MongoDB disconnect error", "error", err)
	}

	log.Info("Points Flight Tracker stopped")
}
