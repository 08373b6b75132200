package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/poeconomics/fundbank-backend/internal/api"
	"github.com/poeconomics/fundbank-backend/internal/config"
	"github.com/poeconomics/fundbank-backend/internal/database"
	"github.com/poeconomics/fundbank-backend/internal/repository"
	"github.com/poeconomics/fundbank-backend/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	log.Printf("Connected to database: %s", cfg.Database.Path)

	// Apply pending migrations
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Create repositories
	transactionRepo := repository.NewTransactionRepository(db)
	navRepo := repository.NewNavRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	settingRepo := repository.NewSettingRepository(db)
	snapshotRepo := repository.NewSnapshotRepository(db)

	// Create services. All mutations share one write lock.
	writeLock := service.NewWriteLock()
	systemService := service.NewSystemService(db)
	auditService := service.NewAuditService(auditRepo)
	authService, err := service.NewAuthService(cfg.Admin, cfg.Session, auditService)
	if err != nil {
		log.Fatalf("Failed to initialize auth service: %v", err)
	}
	transactionService := service.NewTransactionService(
		transactionRepo,
		auditService,
		writeLock,
	)
	navService := service.NewNavService(
		navRepo,
		auditService,
		writeLock,
		cfg.Fund.StartDate,
	)
	settingsService := service.NewSettingsService(
		settingRepo,
		auditService,
		writeLock,
		cfg.Fund.DefaultWithdrawFee,
		cfg.Fund.DefaultProfitFee,
	)
	fundService := service.NewFundService(
		transactionService,
		navService,
		settingsService,
	)
	backupService := service.NewBackupService(
		transactionService,
		navService,
		auditService,
	)
	snapshotService := service.NewSnapshotService(
		fundService,
		snapshotRepo,
		auditService,
	)

	// Schedule valuation snapshot materialization
	var scheduler *cron.Cron
	if cfg.Snapshot.Enabled {
		scheduler = cron.New()
		if _, err := scheduler.AddFunc(cfg.Snapshot.CronSpec, snapshotService.RunScheduled); err != nil {
			log.Fatalf("Failed to schedule snapshot job: %v", err)
		}
		scheduler.Start()
		log.Printf("Snapshot scheduler running (%s)", cfg.Snapshot.CronSpec)
	}

	// Create router
	router := api.NewRouter(
		systemService,
		authService,
		fundService,
		transactionService,
		navService,
		settingsService,
		auditService,
		backupService,
		snapshotService,
		cfg,
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	if scheduler != nil {
		<-scheduler.Stop().Done()
	}

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
