// Package main реализует точку входа службы заметок.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"

	notescache "github.com/avyukd/bobo-notes/internal/notes/adapters/cache"
	"github.com/avyukd/bobo-notes/internal/notes/adapters/grpc"
	notesHTTP "github.com/avyukd/bobo-notes/internal/notes/adapters/http"
	"github.com/avyukd/bobo-notes/internal/notes/adapters/postgres"
	"github.com/avyukd/bobo-notes/internal/notes/app"
	"github.com/avyukd/bobo-notes/internal/notes/config"
	"github.com/avyukd/bobo-notes/internal/notes/db"
	"github.com/avyukd/bobo-notes/internal/notes/ports/cache"
	"github.com/avyukd/bobo-notes/pkg/logger"
	"github.com/avyukd/bobo-notes/pkg/shutdown"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "NOTES_LOGGER_MODE"
	EnvLoggerLevel = "NOTES_LOGGER_LEVEL"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrInitDB               = "failed to initialize database"
	ErrCreateRedisClient    = "failed to create Redis client"
	ErrStartGRPC            = "failed to start gRPC server"
	ErrStartHTTPServer      = "failed to start HTTP server"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "note service started"
	LogServiceShutdownDone = "note service shutdown complete"
	LogClosingDB           = "closing database connections"
	LogClosingCache        = "closing note cache"
	LogStoppingGRPC        = "stopping gRPC server"
	LogStoppingHTTP        = "stopping HTTP server"
	LogInitRepo            = "initializing repositories"
	LogInitCache           = "initializing cache"
	LogCacheDisabled       = "note cache disabled"
	LogInitUseCases        = "initializing use cases"
	LogInitHTTPServer      = "initializing HTTP server"
	LogStartingHTTP        = "starting HTTP server"
	LogStartingGRPC        = "starting gRPC server"
)

func main() {
	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == "production" {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}

	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	var exitCode int

	func() {
		defer func() {
			if err := log.Sync(); err != nil {
				errMsg := err.Error()
				if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
					return
				}
				if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
					panic(writeErr)
				}
			}
		}()

		cfg, err := config.Load(ctx)
		if err != nil {
			log.Error(ctx, ErrLoadConfig, zap.Error(err))
			exitCode = 1
			return
		}

		finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
		if err != nil {
			log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
			exitCode = 1
			return
		}
		logger.SetGlobalLogger(finalLogger)
		log = finalLogger

		database, err := db.New(ctx, &cfg.Postgres)
		if err != nil {
			log.Error(ctx, ErrInitDB, zap.Error(err))
			exitCode = 1
			return
		}

		log.Info(ctx, LogServiceStarted,
			zap.String("environment", string(cfg.Logging.GetEnvironment())),
			zap.String("log_level", cfg.Logging.Level),
			zap.String("startup_time", time.Now().Format(time.RFC3339)))

		log.Info(ctx, LogInitRepo)
		repoFactory := postgres.NewRepositoryFactory(database.Pool())
		unitOfWork := postgres.NewUnitOfWork(database.Pool())

		log.Info(ctx, LogInitCache)
		var noteCache cache.NoteCache = notescache.NoopNoteCache{}
		if cfg.Redis.Enabled {
			redisCache, err := notescache.NewRedisNoteCache(ctx, &cfg.Redis)
			if err != nil {
				log.Error(ctx, ErrCreateRedisClient, zap.Error(err))
				database.Close(ctx)
				exitCode = 1
				return
			}
			noteCache = redisCache
		} else {
			log.Info(ctx, LogCacheDisabled)
		}

		log.Info(ctx, LogInitUseCases)
		services := notesHTTP.Services{
			Notes:     app.NewNoteUseCase(repoFactory.Notes(), noteCache),
			Drafts:    app.NewDraftUseCase(repoFactory.Drafts()),
			Tags:      app.NewTagUseCase(repoFactory.Tags(), repoFactory.Notes(), unitOfWork),
			Links:     app.NewLinkUseCase(repoFactory.Links(), repoFactory.Notes()),
			Organizer: app.NewOrganizeService(unitOfWork),
		}

		log.Info(ctx, LogInitHTTPServer)
		httpApp := notesHTTP.NewApp(fiber.Config{
			ReadTimeout:  cfg.HTTP.ReadTimeout,
			WriteTimeout: cfg.HTTP.WriteTimeout,
		}, services, cfg.HTTP.AllowedOrigins())

		var grpcServer *grpc.Server
		if cfg.GRPC.Enabled {
			log.Info(ctx, LogStartingGRPC)
			grpcServer = grpc.New(&cfg.GRPC)
			if err := grpcServer.Start(ctx); err != nil {
				log.Error(ctx, ErrStartGRPC, zap.Error(err))
				database.Close(ctx)
				exitCode = 1
				return
			}
		}

		log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))
		go func() {
			if err := httpApp.Listen(cfg.HTTP.GetAddress()); err != nil {
				log.Error(ctx, ErrStartHTTPServer, zap.Error(err))
			}
		}()

		// HTTP останавливается первым: кеш и пул нужны запросам, которые еще выполняются.
		shutdown.Wait(ctx, cfg.Shutdown.GetTimeout(),
			shutdown.Sequence(
				func(ctx context.Context) error {
					log.Info(ctx, LogStoppingHTTP)
					return httpApp.ShutdownWithContext(ctx)
				},
				func(ctx context.Context) error {
					log.Info(ctx, LogClosingCache)
					return noteCache.Close()
				},
				func(ctx context.Context) error {
					log.Info(ctx, LogClosingDB)
					database.Close(ctx)
					return nil
				},
			),
			func(ctx context.Context) error {
				if grpcServer != nil {
					log.Info(ctx, LogStoppingGRPC)
					grpcServer.Stop(ctx)
				}
				return nil
			},
		)

		log.Info(ctx, LogServiceShutdownDone)
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
