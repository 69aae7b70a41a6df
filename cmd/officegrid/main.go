// OfficeGrid Core - Facility Management Platform
//
// This is the main entry point for the OfficeGrid Core application:
// parking, meeting rooms, office climate, automation rules, and the
// energy savings ledger behind one HTTP API.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	_ "github.com/officegrid/officegrid-core/migrations"

	"github.com/officegrid/officegrid-core/internal/api"
	"github.com/officegrid/officegrid-core/internal/audit"
	"github.com/officegrid/officegrid-core/internal/auth"
	"github.com/officegrid/officegrid-core/internal/automation"
	"github.com/officegrid/officegrid-core/internal/climate"
	"github.com/officegrid/officegrid-core/internal/energy"
	"github.com/officegrid/officegrid-core/internal/events"
	"github.com/officegrid/officegrid-core/internal/infrastructure/config"
	"github.com/officegrid/officegrid-core/internal/infrastructure/database"
	"github.com/officegrid/officegrid-core/internal/infrastructure/influxdb"
	"github.com/officegrid/officegrid-core/internal/infrastructure/logging"
	"github.com/officegrid/officegrid-core/internal/infrastructure/mqtt"
	"github.com/officegrid/officegrid-core/internal/metrics"
	"github.com/officegrid/officegrid-core/internal/parking"
	"github.com/officegrid/officegrid-core/internal/rooms"
	"github.com/officegrid/officegrid-core/internal/wellness"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

func main() {
	// Create a context that cancels on interrupt signals (Ctrl+C, SIGTERM)
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
func run(ctx context.Context) error { //nolint:gocognit,gocyclo // wiring: every subsystem is initialised here in dependency order
	// Load .env if present; real environment variables win.
	//nolint:errcheck // A missing .env file is the normal case
	godotenv.Load()

	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting OfficeGrid Core",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	// Load configuration
	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)
	log.Info("logger initialised",
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
	)

	// Open database
	db, err := database.Open(database.Config{
		Path:        cfg.Database.Path,
		WALMode:     cfg.Database.WALMode,
		BusyTimeout: cfg.Database.BusyTimeout,
	})
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		log.Info("closing database")
		if closeErr := db.Close(); closeErr != nil {
			log.Error("error closing database", "error", closeErr)
		}
	}()
	log.Info("database connected", "path", cfg.Database.Path)

	// Run migrations
	if migrateErr := db.Migrate(ctx); migrateErr != nil {
		return fmt.Errorf("running migrations: %w", migrateErr)
	}
	log.Info("database migrations complete")

	// Facility event bus: every subsystem publishes here, the rule
	// engine and WebSocket relay consume.
	bus := events.NewBus(log)

	// Parking state machine
	machine := parking.NewMachine(parking.NewSQLiteRepository(db.DB), bus, log)
	if provErr := machine.Provision(ctx, cfg.Parking.SpotCount); provErr != nil {
		return fmt.Errorf("provisioning parking spots: %w", provErr)
	}
	if loadErr := machine.Load(ctx); loadErr != nil {
		return fmt.Errorf("loading parking spots: %w", loadErr)
	}
	log.Info("parking initialised", "spots", len(machine.List()))

	// Room booking scheduler
	maxBooking := time.Duration(cfg.Rooms.MaxBookingMinutes) * time.Minute
	scheduler := rooms.NewScheduler(rooms.NewSQLiteRepository(db.DB), maxBooking, log)

	// Connect to MQTT broker (optional; the core functions without it)
	var mqttClient *mqtt.Client
	var commander *mqtt.Commander
	if cfg.MQTT.Enabled {
		mqttClient, err = mqtt.Connect(cfg.MQTT)
		if err != nil {
			return fmt.Errorf("connecting to MQTT: %w", err)
		}
		defer func() {
			log.Info("disconnecting from MQTT")
			if closeErr := mqttClient.Close(); closeErr != nil {
				log.Error("error closing MQTT", "error", closeErr)
			}
		}()
		log.Info("MQTT connected",
			"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
			"client_id", cfg.MQTT.Broker.ClientID,
		)

		mqttClient.SetOnConnect(func() {
			log.Info("MQTT reconnected")
		})
		mqttClient.SetOnDisconnect(func(discErr error) {
			log.Warn("MQTT disconnected", "error", discErr)
		})

		qos := byte(cfg.MQTT.QoS)
		commander = mqtt.NewCommander(mqttClient, qos)

		// Motion sensors feed the facility bus
		if subErr := mqtt.SubscribeMotion(mqttClient, bus, qos); subErr != nil {
			return fmt.Errorf("subscribing to motion sensors: %w", subErr)
		}

		// Mirror facility events to MQTT for external observers
		bus.Subscribe(func(_ context.Context, ev events.Event) {
			payload, marshalErr := json.Marshal(ev)
			if marshalErr != nil {
				return
			}
			topic := mqtt.Topics{}.CoreEvent(string(ev.Type))
			if pubErr := mqttClient.Publish(topic, payload, qos, false); pubErr != nil {
				log.Debug("event mirror publish failed", "topic", topic, "error", pubErr)
			}
		})
	} else {
		log.Info("MQTT disabled")
	}

	// Climate controller. The commander is nil when MQTT is off;
	// setpoint changes still persist, they just reach no hardware.
	var controller *climate.Controller
	if commander != nil {
		controller = climate.NewController(climate.NewSQLiteRepository(db.DB), commander, log)
	} else {
		controller = climate.NewController(climate.NewSQLiteRepository(db.DB), nil, log)
	}
	if loadErr := controller.Load(ctx); loadErr != nil {
		return fmt.Errorf("loading climate state: %w", loadErr)
	}

	// Connect to InfluxDB (optional)
	var influxClient *influxdb.Client
	var exporter energy.Exporter
	if cfg.InfluxDB.Enabled {
		influxClient, err = influxdb.Connect(cfg.InfluxDB)
		if err != nil {
			return fmt.Errorf("connecting to InfluxDB: %w", err)
		}
		defer func() {
			log.Info("closing InfluxDB connection")
			if closeErr := influxClient.Close(); closeErr != nil {
				log.Error("error closing InfluxDB", "error", closeErr)
			}
		}()
		log.Info("InfluxDB connected",
			"url", cfg.InfluxDB.URL,
			"org", cfg.InfluxDB.Org,
			"bucket", cfg.InfluxDB.Bucket,
		)

		influxClient.SetOnError(func(writeErr error) {
			log.Error("InfluxDB write error", "error", writeErr)
		})

		exporter = influxdb.NewSavingsExporter(influxClient)
	} else {
		log.Info("InfluxDB disabled")
	}

	// Energy savings ledger
	ledger := energy.NewAccumulator(energy.NewSQLiteRepository(db.DB), exporter, log)
	if loadErr := ledger.Load(ctx); loadErr != nil {
		return fmt.Errorf("loading energy savings: %w", loadErr)
	}

	// Automation rule registry and engine
	registry := automation.NewRegistry(automation.NewSQLiteRepository(db.DB))
	registry.SetLogger(log)
	if refreshErr := registry.RefreshCache(ctx); refreshErr != nil {
		return fmt.Errorf("loading automation rules: %w", refreshErr)
	}
	log.Info("automation rules loaded", "rules", registry.GetRuleCount())

	metrics.Register()
	engine := automation.NewEngine(
		registry,
		climateActions{controller},
		parkingActions{machine},
		ledger,
		metrics.Engine{},
		log,
	)

	// Dispatch facility events through the rule engine
	bus.Subscribe(func(evCtx context.Context, ev events.Event) {
		engine.HandleEvent(evCtx, ev)
	})

	// Time-trigger scheduler
	ticker := automation.NewTicker(bus, cfg.Automation.TickInterval, log)
	go ticker.Run(ctx)

	// User accounts and authentication
	userRepo := auth.NewUserRepository(db.DB)
	seeded, seedErr := auth.SeedUsers(ctx, userRepo, log.Logger)
	if seedErr != nil {
		return fmt.Errorf("seeding users: %w", seedErr)
	}
	if seeded {
		log.Warn("default accounts created, change their passwords")
	}
	authSvc := auth.NewService(userRepo, bus, cfg.Security.JWT.Secret, cfg.Security.JWT.AccessTokenTTL, log)

	// Wellness check-ins and the admin audit trail
	wellSvc := wellness.NewService(wellness.NewSQLiteRepository(db.DB), log)
	auditRepo := audit.NewSQLiteRepository(db.DB)

	// HTTP API server
	server, err := api.New(api.Deps{
		Config:   cfg.API,
		WS:       cfg.WebSocket,
		Security: cfg.Security,
		Logger:   log,
		Parking:  machine,
		Rooms:    scheduler,
		Climate:  controller,
		Energy:   ledger,
		Rules:    registry,
		Engine:   engine,
		Auth:     authSvc,
		Wellness: wellSvc,
		Audit:    auditRepo,
		Bus:      bus,
		Version:  version,
	})
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}
	if startErr := server.Start(ctx); startErr != nil {
		return fmt.Errorf("starting API server: %w", startErr)
	}
	defer func() {
		if closeErr := server.Close(); closeErr != nil {
			log.Error("error closing API server", "error", closeErr)
		}
	}()
	log.Info("API server started", "host", cfg.API.Host, "port", cfg.API.Port)

	// Verify all connections are healthy
	if err := healthCheck(ctx, db, mqttClient, influxClient); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	log.Info("all health checks passed")

	log.Info("initialisation complete, waiting for shutdown signal")

	// Wait for shutdown signal
	<-ctx.Done()

	log.Info("shutdown signal received, cleaning up")

	// Deferred Close() calls run in reverse order:
	// 1. API server
	// 2. InfluxDB (if enabled)
	// 3. MQTT (if enabled)
	// 4. Database

	log.Info("OfficeGrid Core stopped")
	return nil
}

// climateActions adapts the climate controller to the rule engine's
// action interface.
type climateActions struct {
	c *climate.Controller
}

func (a climateActions) SetLights(ctx context.Context, on bool) error {
	_, err := a.c.SetLights(ctx, on)
	return err
}

func (a climateActions) HVACOff(ctx context.Context) error {
	_, err := a.c.SetMode(ctx, climate.ModeOff)
	return err
}

// parkingActions adapts the parking machine to the rule engine's
// action interface.
type parkingActions struct {
	m *parking.Machine
}

func (a parkingActions) Reserve(ctx context.Context, spotID int, owner string) error {
	_, err := a.m.Reserve(ctx, spotID, owner)
	return err
}

func (a parkingActions) Clear(ctx context.Context, spotID int) error {
	_, err := a.m.Clear(ctx, spotID)
	return err
}

// getConfigPath returns the configuration file path.
// Uses OFFICEGRID_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("OFFICEGRID_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}

// healthCheck verifies all infrastructure connections are healthy.
// The MQTT and InfluxDB clients may be nil when disabled.
func healthCheck(ctx context.Context, db *database.DB, mqttClient *mqtt.Client, influxClient *influxdb.Client) error {
	if err := db.HealthCheck(ctx); err != nil {
		return fmt.Errorf("database: %w", err)
	}

	if mqttClient != nil {
		if err := mqttClient.HealthCheck(ctx); err != nil {
			return fmt.Errorf("mqtt: %w", err)
		}
	}

	if influxClient != nil {
		if err := influxClient.HealthCheck(ctx); err != nil {
			return fmt.Errorf("influxdb: %w", err)
		}
	}

	return nil
}
