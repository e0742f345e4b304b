package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"github.com/fleetnexa/fleetnexa-server/internal/config"
	"github.com/fleetnexa/fleetnexa-server/internal/jobs"
	"github.com/fleetnexa/fleetnexa-server/internal/logger"
	"github.com/fleetnexa/fleetnexa-server/internal/repository/postgres"
	"github.com/fleetnexa/fleetnexa-server/internal/scheduler"
	"github.com/fleetnexa/fleetnexa-server/internal/service"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to configuration file")
	runOnce := flag.Bool("run-once", false, "run all jobs once and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)

	if err := run(cfg, *runOnce); err != nil {
		logger.Error("cronjob exited with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, runOnce bool) error {
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	store := postgres.NewStore(db)
	emailSvc := service.NewEmailService(cfg.SendGrid)
	statsSvc := service.NewStatsService(store.StatsRepository, store.TenantRepository, store.BookingRepository, store.CustomerRepository, store.LedgerRepository)

	statsJob := jobs.NewStatsRecomputeJob(statsSvc)
	overdueJob := jobs.NewOverdueRentalsJob(store.BookingRepository, store.CustomerRepository, store.VehicleRepository, store.UserRepository, store.NotificationRepository, emailSvc)

	if runOnce {
		jobs.RunWithRecovery(context.Background(), statsJob)
		jobs.RunWithRecovery(context.Background(), overdueJob)
		return nil
	}

	sched := scheduler.New()
	if err := sched.Register(cfg.Scheduler.RecomputeStats, statsJob); err != nil {
		return err
	}
	if err := sched.Register(cfg.Scheduler.NotifyOverdueActive, overdueJob); err != nil {
		return err
	}
	sched.Start()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info("shutting down", "signal", sig.String())

	sched.Stop()
	return nil
}
