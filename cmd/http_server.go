package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/frahmantamala/campus-parking/internal"
	"github.com/frahmantamala/campus-parking/internal/citation"
	citationPostgres "github.com/frahmantamala/campus-parking/internal/citation/postgres"
	"github.com/frahmantamala/campus-parking/internal/core/events"
	"github.com/frahmantamala/campus-parking/internal/driver"
	driverPostgres "github.com/frahmantamala/campus-parking/internal/driver/postgres"
	"github.com/frahmantamala/campus-parking/internal/parking"
	parkingPostgres "github.com/frahmantamala/campus-parking/internal/parking/postgres"
	"github.com/frahmantamala/campus-parking/internal/permit"
	permitPostgres "github.com/frahmantamala/campus-parking/internal/permit/postgres"
	"github.com/frahmantamala/campus-parking/internal/transport"
	"github.com/frahmantamala/campus-parking/internal/transport/rest"
	"github.com/frahmantamala/campus-parking/internal/vehicle"
	vehiclePostgres "github.com/frahmantamala/campus-parking/internal/vehicle/postgres"
	"github.com/frahmantamala/campus-parking/pkg/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config *internal.Config
	DB     *sqlx.DB
	GormDB *gorm.DB
	Router *chi.Mux
	Logger *slog.Logger

	DriverHandler   *driver.Handler
	VehicleHandler  *vehicle.Handler
	ParkingHandler  *parking.Handler
	PermitHandler   *permit.Handler
	CitationHandler *citation.Handler
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	rest.RegisterAllRoutes(
		deps.Router,
		deps.DB.DB,
		deps.DriverHandler,
		deps.VehicleHandler,
		deps.ParkingHandler,
		deps.PermitHandler,
		deps.CitationHandler,
		deps.Logger,
	)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(os.Getenv("APP_ENV"))
	appLogger := logger.LoggerWrapper()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: db.DB}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gorm: %w", err)
	}

	bus := events.NewEventBus(appLogger)
	registerEventHandlers(bus, appLogger)

	baseHandler := transport.NewBaseHandler(appLogger)

	driverRepo := driverPostgres.NewDriverRepository(gormDB)
	vehicleRepo := vehiclePostgres.NewVehicleRepository(gormDB)
	parkingRepo := parkingPostgres.NewParkingRepository(gormDB)
	permitRepo := permitPostgres.NewPermitRepository(gormDB)
	citationRepo := citationPostgres.NewCitationRepository(gormDB)

	driverService := driver.NewService(driverRepo, permitRepo, appLogger)
	vehicleService := vehicle.NewService(vehicleRepo, permitRepo, appLogger)
	parkingService := parking.NewService(parkingRepo, appLogger)
	permitService := permit.NewService(permitRepo, driverRepo, vehicleRepo, bus, appLogger)
	citationService := citation.NewService(citationRepo, vehicleRepo, permitRepo, parkingRepo, bus, appLogger)

	return &Dependencies{
		Config: config,
		DB:     db,
		GormDB: gormDB,
		Router: chi.NewRouter(),
		Logger: appLogger,

		DriverHandler:   driver.NewHandler(baseHandler, driverService),
		VehicleHandler:  vehicle.NewHandler(baseHandler, vehicleService),
		ParkingHandler:  parking.NewHandler(baseHandler, parkingService),
		PermitHandler:   permit.NewHandler(baseHandler, permitService),
		CitationHandler: citation.NewHandler(baseHandler, citationService),
	}, nil
}

// registerEventHandlers wires the in-process subscribers; both events are
// log-only for now.
func registerEventHandlers(bus *events.EventBus, appLogger *slog.Logger) {
	bus.Subscribe(events.EventTypePermitIssued, func(ctx context.Context, event events.Event) error {
		appLogger.Info("permit issued event", "event_id", event.EventID(), "payload", event.Payload())
		return nil
	})
	bus.Subscribe(events.EventTypeCitationCreated, func(ctx context.Context, event events.Event) error {
		appLogger.Info("citation created event", "event_id", event.EventID(), "payload", event.Payload())
		return nil
	})
}

// initDB initializes the database connection
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driverName = "pgx"

	dbConn, err := sqlx.Connect(driverName, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	// verify connection; close underlying *sql.DB on failure
	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
