package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/frahmantamala/campus-parking/internal/core/events"
	driverPostgres "github.com/frahmantamala/campus-parking/internal/driver/postgres"
	"github.com/frahmantamala/campus-parking/internal/permit"
	permitPostgres "github.com/frahmantamala/campus-parking/internal/permit/postgres"
	vehiclePostgres "github.com/frahmantamala/campus-parking/internal/vehicle/postgres"
	"github.com/frahmantamala/campus-parking/pkg/logger"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Start background workers",
	Long:  `Start and manage background workers like the permit expiry sweep and the event bus.`,
}

// Expiry sweep worker command
var expiryWorkerCmd = &cobra.Command{
	Use:   "expiry",
	Short: "Start the permit expiry sweep",
	Long:  `Run the cron-scheduled sweep that reports permits expiring within the configured window`,
	Run: func(cmd *cobra.Command, args []string) {
		startExpiryWorker()
	},
}

// Event Bus worker command
var eventWorkerCmd = &cobra.Command{
	Use:   "events",
	Short: "Start event bus worker",
	Long:  `Start the event bus `,
	Run: func(cmd *cobra.Command, args []string) {
		startEventWorker()
	},
}

var expiryWindowDays int

func startExpiryWorker() {
	config, err := loadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	appLogger := logger.LoggerWrapper()

	db, err := initDB(config.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	gormDB, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: db.DB}), &gorm.Config{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize gorm: %v\n", err)
		os.Exit(1)
	}

	windowDays := config.Jobs.ExpiryWindowDays
	if expiryWindowDays > 0 {
		windowDays = expiryWindowDays
	}

	permitRepo := permitPostgres.NewPermitRepository(gormDB)
	driverRepo := driverPostgres.NewDriverRepository(gormDB)
	vehicleRepo := vehiclePostgres.NewVehicleRepository(gormDB)
	permitService := permit.NewService(permitRepo, driverRepo, vehicleRepo, nil, appLogger)

	sweep := func() {
		rows, err := permitService.ExpiringWithin(windowDays)
		if err != nil {
			appLogger.Error("expiry sweep failed", "error", err)
			return
		}

		appLogger.Info("expiry sweep complete", "window_days", windowDays, "expiring_rows", len(rows))
		for _, p := range rows {
			appLogger.Warn("permit expiring soon",
				"permit_id", p.PermitID,
				"driver_id", p.DriverID,
				"expiration_date", p.ExpirationDate.Format(permit.DateLayout),
				"expiration_time", p.ExpirationTime)
		}
	}

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(config.Jobs.ExpirySweepSchedule, sweep); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid expiry sweep schedule %q: %v\n", config.Jobs.ExpirySweepSchedule, err)
		os.Exit(1)
	}

	appLogger.Info("expiry worker starting",
		"schedule", config.Jobs.ExpirySweepSchedule,
		"window_days", windowDays)

	// one sweep on startup so deploys do not wait for the next cron tick
	sweep()
	scheduler.Start()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigChan
	appLogger.Info("received signal, shutting down expiry worker", "signal", sig)

	ctx := scheduler.Stop()
	select {
	case <-ctx.Done():
		appLogger.Info("expiry worker shutdown complete")
	case <-time.After(30 * time.Second):
		appLogger.Warn("shutdown timeout reached, forcing exit")
	}
}

func startEventWorker() {
	_, err := loadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	appLogger := logger.LoggerWrapper()

	eventBus := events.NewEventBus(appLogger)

	for _, eventType := range []string{events.EventTypePermitIssued, events.EventTypeCitationCreated} {
		eventBus.Subscribe(eventType, func(ctx context.Context, event events.Event) error {
			appLogger.Info("received event",
				"event_id", event.EventID(),
				"event_type", event.EventType(),
				"payload", event.Payload())
			return nil
		})
	}

	appLogger.Info("event bus worker started. Waiting for events...")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigChan
	appLogger.Info("received signal, shutting down event bus", "signal", sig)
	appLogger.Info("event bus shutdown complete")
}

func init() {
	expiryWorkerCmd.Flags().IntVar(&expiryWindowDays, "window-days", 0, "Days ahead to report expiring permits (overrides config)")

	workerCmd.AddCommand(expiryWorkerCmd)
	workerCmd.AddCommand(eventWorkerCmd)

	rootCmd.AddCommand(workerCmd)
}
