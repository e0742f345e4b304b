package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"github.com/fleetnexa/fleetnexa-server/internal/api"
	"github.com/fleetnexa/fleetnexa-server/internal/config"
	"github.com/fleetnexa/fleetnexa-server/internal/logger"
	"github.com/fleetnexa/fleetnexa-server/internal/repository/postgres"
	"github.com/fleetnexa/fleetnexa-server/internal/security"
	"github.com/fleetnexa/fleetnexa-server/internal/service"
	"github.com/fleetnexa/fleetnexa-server/internal/storage"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)

	if err := run(cfg); err != nil {
		logger.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	store := postgres.NewStore(db)
	tokens := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)

	localStore, err := storage.NewLocalStorage(cfg.Storage.UploadDir, cfg.Storage.BaseURL)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	emailSvc := service.NewEmailService(cfg.SendGrid)
	authSvc := service.NewAuthService(store.TenantRepository, store.UserRepository, tokens)
	tenantSvc := service.NewTenantService(store.TenantRepository, store.VehicleRepository)
	vehicleSvc := service.NewVehicleService(store.VehicleRepository)
	customerSvc := service.NewCustomerService(store.CustomerRepository)
	bookingSvc := service.NewBookingService(store.BookingRepository, store.VehicleRepository, store.CustomerRepository, store.TenantRepository, store.NotificationRepository, emailSvc)
	ledgerSvc := service.NewLedgerService(store.LedgerRepository, store.BookingRepository, store.CustomerRepository, store.VehicleRepository)
	statsSvc := service.NewStatsService(store.StatsRepository, store.TenantRepository, store.BookingRepository, store.CustomerRepository, store.LedgerRepository)
	documentSvc := service.NewDocumentService(store.BookingRepository, store.TenantRepository, store.CustomerRepository, store.VehicleRepository, store.LedgerRepository, localStore)
	noteSvc := service.NewNotificationService(store.NotificationRepository)

	server := api.NewServer(authSvc, tenantSvc, vehicleSvc, customerSvc,
		bookingSvc, ledgerSvc, statsSvc, documentSvc, noteSvc)
	router := api.NewRouter(server, tokens)

	httpServer := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		logger.Info("shutting down", "signal", sig.String())
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down cleanly: %w", err)
	}

	logger.Info("server stopped")
	return nil
}
