package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	"marketplace-bidding-service/internal/adapters/broadcaster"
	"marketplace-bidding-service/internal/adapters/db"
	"marketplace-bidding-service/internal/adapters/httpapi"
	"marketplace-bidding-service/internal/adapters/memory"
	"marketplace-bidding-service/internal/adapters/redis"
	"marketplace-bidding-service/internal/adapters/scheduler"
	"marketplace-bidding-service/internal/app"
	"marketplace-bidding-service/internal/config"
	"marketplace-bidding-service/internal/ports/outbound"
)

// storage bundles the persistence ports of the selected driver
type storage struct {
	projects   outbound.ProjectRepository
	bids       outbound.BidRepository
	transactor outbound.Transactor
	health     httpapi.HealthCheck
	close      func() error
}

func main() {
	flags := pflag.NewFlagSet("marketplace-service", pflag.ExitOnError)
	config.RegisterFlags(flags)
	_ = flags.Parse(os.Args[1:])

	cfg, err := config.LoadConfig(flags)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	initLogging(cfg)

	log.Info().Str("storage_driver", cfg.Storage.Driver).Msg("Starting marketplace bidding service...")

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := openStorage(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize storage")
	}
	defer func() {
		if err := store.close(); err != nil {
			log.Error().Err(err).Msg("Error closing storage")
		}
	}()

	if cfg.MigrateOnly {
		log.Info().Msg("Migrations applied, exiting")
		return
	}

	sinks := broadcaster.FanOut{broadcaster.NewLogSink(log.Logger)}
	var publisher *broadcaster.RedisPublisher
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(cfg.Redis)
		if err := redis.PingRedis(ctx, redisClient); err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		log.Info().Msg("Redis connection established")

		publisher = broadcaster.NewRedisPublisher(broadcaster.RedisPublisherParams{
			RedisClient: redisClient,
			Logger:      log.Logger,
		})
		sinks = append(sinks, publisher)
		log.Info().Msg("Redis event publisher initialized")
	}

	// Create business services
	locks := app.NewProjectLocks()
	ledger := app.NewBidLedger(app.BidLedgerParams{
		Projects:   store.projects,
		Bids:       store.bids,
		Transactor: store.transactor,
		Events:     sinks,
		Locks:      locks,
		Logger:     log.Logger,
	})
	lifecycle := app.NewProjectLifecycle(app.ProjectLifecycleParams{
		Projects:    store.projects,
		Bids:        store.bids,
		Transactor:  store.transactor,
		Ledger:      ledger,
		Events:      sinks,
		Locks:       locks,
		AwardWindow: cfg.Sweep.AwardWindow,
		Logger:      log.Logger,
	})

	log.Info().Msg("Business services initialized")

	sweeper := scheduler.NewDeadlineSweeper(scheduler.DeadlineSweeperParams{
		Service:  lifecycle,
		Interval: cfg.Sweep.Interval,
		Workers:  cfg.Sweep.Workers,
		Logger:   log.Logger,
	})
	sweeper.Start()
	log.Info().Msg("Deadline sweeper started")

	if cfg.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := httpapi.NewRouter(httpapi.RouterParams{
		Projects: lifecycle,
		Bids:     ledger,
		Auth:     httpapi.NewAuthenticator(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer),
		Health:   store.health,
		Logger:   log.Logger,
	})
	server := httpapi.NewServer(httpapi.ServerParams{
		Config: cfg.Server,
		Router: router,
		Logger: log.Logger,
	})

	go func() {
		if err := server.Start(); err != nil {
			log.Error().Err(err).Msg("Failed to start HTTP server")
			cancel()
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
	case <-ctx.Done():
		log.Info().Msg("Context cancelled")
	}

	// Graceful shutdown
	log.Info().Msg("Starting graceful shutdown...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error stopping HTTP server")
	}

	sweeper.Stop()
	log.Info().Msg("Deadline sweeper stopped")

	if publisher != nil {
		if err := publisher.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing Redis publisher")
		}
	}

	log.Info().Msg("Graceful shutdown completed")
}

func openStorage(ctx context.Context, cfg *config.Config) (*storage, error) {
	if cfg.Storage.Driver == config.DriverMemory {
		store := memory.NewStore()
		log.Warn().Msg("Using in-memory storage, data is lost on restart")
		return &storage{
			projects:   store.Projects(),
			bids:       store.Bids(),
			transactor: store,
			close:      func() error { return nil },
		}, nil
	}

	dbConn, err := db.NewConnection(ctx, cfg.Database, log.Logger)
	if err != nil {
		return nil, err
	}
	log.Info().Msg("Database connection established")

	if cfg.Database.AutoMigrate || cfg.MigrateOnly {
		if err := dbConn.Migrate(ctx); err != nil {
			_ = dbConn.Close()
			return nil, err
		}
	}

	repoFactory := db.NewRepositoryFactory(dbConn)
	return &storage{
		projects:   repoFactory.GetProjectRepository(),
		bids:       repoFactory.GetBidRepository(),
		transactor: repoFactory.GetTransactor(),
		health:     dbConn.Ping,
		close:      dbConn.Close,
	}, nil
}

func initLogging(cfg *config.Config) {
	// Set log level
	level, err := zerolog.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	// Set log format
	if cfg.Logging.Format == "json" {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	} else {
		// Console format for development
		output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
		log.Logger = zerolog.New(output).With().Timestamp().Logger()
	}

	zerolog.DefaultContextLogger = &log.Logger
}
