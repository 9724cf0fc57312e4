// API server entry point for molscope.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/molscope/molscope/internal/application/viewer"
	"github.com/molscope/molscope/internal/config"
	"github.com/molscope/molscope/internal/infrastructure/database/postgres"
	"github.com/molscope/molscope/internal/infrastructure/database/postgres/repositories"
	"github.com/molscope/molscope/internal/infrastructure/database/redis"
	"github.com/molscope/molscope/internal/infrastructure/examples"
	"github.com/molscope/molscope/internal/infrastructure/monitoring/logging"
	"github.com/molscope/molscope/internal/infrastructure/monitoring/prometheus"
	"github.com/molscope/molscope/internal/infrastructure/storage/minio"
	httpserver "github.com/molscope/molscope/internal/interfaces/http"
	"github.com/molscope/molscope/internal/interfaces/http/handlers"
	"github.com/molscope/molscope/internal/interfaces/http/middleware"
)

const defaultConfigPath = "configs/config.yaml"

func main() {
	configPath := flag.String("config", defaultConfigPath, "path to configuration file")
	httpPort := flag.Int("http-port", 0, "HTTP server port (overrides config)")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v, falling back to environment configuration\n", err)
		cfg, err = config.LoadFromEnv()
		if err != nil {
			fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
			os.Exit(1)
		}
	}
	if *httpPort > 0 {
		cfg.Server.Port = *httpPort
	}

	logger, err := logging.NewLogger(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fatal: failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	logger.Info("starting molscope API server",
		logging.String("version", config.Version),
		logging.Int("port", cfg.Server.Port),
	)

	if _, statErr := os.Stat(*configPath); statErr == nil {
		config.Watch(*configPath, func(_ *config.Config) {
			logger.Info("configuration file changed on disk, restart to apply",
				logging.String("path", *configPath))
		})
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	metrics := prometheus.NewMetrics()
	deps := viewer.Deps{
		Logger:  logger,
		Metrics: metrics,
	}
	var checkers []handlers.Checker

	// Persistence, cache, and blob storage are optional: the viewer works
	// without them, only history and caching degrade.
	if pg, err := postgres.NewConnection(ctx, cfg.Postgres, logger); err != nil {
		logger.Warn("postgres unavailable, upload history disabled", logging.Err(err))
	} else {
		defer pg.Close()
		if err := postgres.RunMigrations(cfg.Postgres.DSN(), cfg.Postgres.MigrationsPath, logger); err != nil {
			logger.Error("failed to run migrations", logging.Err(err))
			os.Exit(1)
		}
		deps.Uploads = repositories.NewUploadRepository(pg.Pool(), logger)
		checkers = append(checkers, pg)
	}

	if rdb, err := redis.NewClient(ctx, cfg.Redis, logger); err != nil {
		logger.Warn("redis unavailable, summary cache disabled", logging.Err(err))
	} else {
		defer rdb.Close()
		deps.Cache = redis.NewCache(rdb, logger,
			redis.WithPrefix(cfg.Redis.KeyPrefix),
			redis.WithDefaultTTL(cfg.Redis.DefaultTTL),
		)
		checkers = append(checkers, rdb)
	}

	if mo, err := minio.NewClient(ctx, cfg.MinIO, logger); err != nil {
		logger.Warn("object storage unavailable, blob persistence disabled", logging.Err(err))
	} else {
		deps.Blobs = minio.NewRepository(mo)
		checkers = append(checkers, mo)
	}

	library, err := examples.NewLibrary(ctx, cfg.Examples, logger)
	if err != nil {
		logger.Error("failed to initialize example library", logging.Err(err))
		os.Exit(1)
	}
	defer library.Close()
	deps.Examples = library

	svc := viewer.NewService(deps)

	router := httpserver.NewRouter(httpserver.RouterConfig{
		StructureHandler: handlers.NewStructureHandler(svc, logger, cfg.Server.MaxUploadSize),
		HealthHandler:    handlers.NewHealthHandler(config.Version, checkers...),
		Logger:           logger,
		Metrics:          metrics,
		Mode:             cfg.Server.Mode,
		CORS:             middleware.DefaultCORSConfig(),
	})
	srv := httpserver.NewServer(cfg.Server, router, logger)

	go func() {
		if err := srv.Start(); err != nil {
			logger.Error("http server error", logging.Err(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout(cfg))
	defer shutdownCancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("server shutdown error", logging.Err(err))
	}

	logger.Info("stopped")
}

func shutdownTimeout(cfg *config.Config) time.Duration {
	if cfg.Server.ShutdownTimeout > 0 {
		return cfg.Server.ShutdownTimeout
	}
	return 30 * time.Second
}

// loadConfig loads configuration from path, erroring when the file is
// absent so the caller can fall back to the environment.
func loadConfig(path string) (*config.Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}
	return config.Load(path)
}
