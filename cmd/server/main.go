package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"patroltrack-service/internal/infrastructure/config"
	"patroltrack-service/internal/infrastructure/persistence"
	"patroltrack-service/internal/interface/httpapi"
	patrolRepo "patroltrack-service/internal/interface/repository"
	"patroltrack-service/internal/usecase"
	"patroltrack-service/pkg/logger"
	"patroltrack-service/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// Create logger
	log := logger.NewLogger()
	log.Info("Starting Patroltrack Service")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up PostgreSQL connection
	log.Info("Connecting to PostgreSQL")
	gormDB, err := persistence.NewPostgresDB(cfg.PostgresURI)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", "error", err)
	}

	if err := patrolRepo.Migrate(gormDB); err != nil {
		log.Fatal("Failed to migrate database", "error", err)
	}

	// Set up MongoDB connection for the worker location cache
	log.Info("Connecting to MongoDB")
	mongoClient, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoUser, cfg.MongoPassword)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "error", err)
	}
	mongoDB := persistence.GetDatabase(mongoClient, cfg.MongoDB)

	// Set up repositories
	assignmentRepository := patrolRepo.NewGormAssignmentRepository(gormDB)
	availabilityRepository := patrolRepo.NewGormAvailabilityRepository(gormDB)
	sessionRepository := patrolRepo.NewGormPatrolSessionRepository(gormDB)
	visitRepository := patrolRepo.NewGormCheckpointVisitRepository(gormDB)
	locationRepository := patrolRepo.NewMongoWorkerLocationRepository(mongoDB)
	transactor := patrolRepo.NewGormTransactor(gormDB)

	// Set up metrics and usecases
	m := metrics.NewMetrics(cfg.MetricsNamespace)

	registry := usecase.NewAssignmentRegistry(assignmentRepository, availabilityRepository, transactor, m, log, cfg.ScheduleOffset)
	engine := usecase.NewPatrolEngine(assignmentRepository, sessionRepository, transactor, m, log)
	tracker := usecase.NewCheckpointTracker(visitRepository, transactor, m, log)
	locations := usecase.NewLocationTracker(locationRepository, log)

	// Set up HTTP server
	handler := httpapi.NewHandler(registry, engine, tracker, locations, log)

	mux := http.NewServeMux()
	handler.Register(mux)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Healthy"))
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
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

	// Disconnect from MongoDB
	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		log.Error("MongoDB disconnect error", "error", err)
	}

	log.Info("Patroltrack Service stopped")
}
