package internal

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"apt-sync-service/internal/adapters/govdata"
	logger_adapter "apt-sync-service/internal/adapters/logger"
	postgres_adapter "apt-sync-service/internal/adapters/postgres"
	"apt-sync-service/internal/adapters/rest"
	"apt-sync-service/internal/configs"
	"apt-sync-service/internal/core/port"
	"apt-sync-service/internal/core/usecase"
	fluentlogger "apt-sync-service/pkg/fluent_logger"
	"apt-sync-service/pkg/postgres"

	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/jackc/pgx/v5/pgxpool"
)

type App struct {
	config    *configs.AppConfig
	apiServer *rest.Server

	dbPool       *pgxpool.Pool
	logger       port.LoggerPort
	fluentClient *fluent.Fluent
}

func NewApp() (*App, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	var activeLoggers []port.LoggerPort

	slogCfg := logger_adapter.SlogConfig{
		Level:    parseLogLevel(appConfig.StdoutLogger.Level),
		IsJSON:   false,
		UseColor: true,
	}
	stdoutLogger := logger_adapter.NewSlogAdapter(slogCfg)
	activeLoggers = append(activeLoggers, stdoutLogger)

	var fluentClient *fluent.Fluent
	if appConfig.FluentBit.Enabled {
		fluentClient, err = fluentlogger.NewClient(fluentlogger.Config{
			Host:      appConfig.FluentBit.Host,
			Port:      appConfig.FluentBit.Port,
			TagPrefix: appConfig.AppName,
		})
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit client", err, nil)
			return nil, fmt.Errorf("failed to create fluentbit client: %w", err)
		}

		fluentAdapter, err := logger_adapter.NewFluentLoggerAdapter(fluentClient, parseLogLevel(appConfig.FluentBit.Level))
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit adapter", err, nil)
			fluentClient.Close()
			return nil, err
		}
		activeLoggers = append(activeLoggers, fluentAdapter)
	}

	multiLogger, err := logger_adapter.NewMultiloggerAdapter(activeLoggers...)
	if err != nil {
		return nil, fmt.Errorf("failed to create multi-logger: %w", err)
	}

	baseLogger := multiLogger.WithFields(port.Fields{
		"service_name": appConfig.AppName,
	})

	appLogger := baseLogger.WithFields(port.Fields{"component": "app"})
	appLogger.Info("Logger system initialized", port.Fields{
		"active_loggers": len(activeLoggers), "fluent_enabled": appConfig.FluentBit.Enabled,
	})

	dbPool, err := postgres.NewClient(context.Background(), postgres.Config{
		DatabaseURL: appConfig.Postgres.URL,
	})
	if err != nil {
		appLogger.Error("Failed to connect to PostgreSQL", err, nil)
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	appLogger.Info("PostgreSQL connection pool initialized", nil)

	storageAdapter := postgres_adapter.NewPostgresStorageAdapter(dbPool, appConfig.GovAPI.PageSize)

	govClient, err := govdata.NewClient(govdata.Config{
		BaseURL:            appConfig.GovAPI.BaseURL,
		ServiceKey:         appConfig.GovAPI.ServiceKey,
		Timeout:            appConfig.GovAPI.Timeout,
		MaxRetries:         appConfig.GovAPI.MaxRetries,
		RetryBackoff:       appConfig.GovAPI.RetryBackoff,
		MinRequestInterval: appConfig.GovAPI.MinRequestInterval,
		PageSize:           appConfig.GovAPI.PageSize,
	})
	if err != nil {
		appLogger.Error("Failed to create government API client", err, nil)
		dbPool.Close()
		return nil, fmt.Errorf("failed to create government API client: %w", err)
	}
	appLogger.Info("Government API client initialized", port.Fields{"base_url": appConfig.GovAPI.BaseURL})

	discoverUseCase := usecase.NewDiscoverComplexesUseCase(govClient, storageAdapter, appConfig.Sync.BatchSize)
	reconcileUseCase := usecase.NewReconcileComplexesUseCase(govClient, storageAdapter, appConfig.Sync.BatchSize)
	enrichUseCase := usecase.NewEnrichStaleComplexesUseCase(govClient, storageAdapter,
		appConfig.Sync.ChunkSize, appConfig.Sync.ChunkDelay, appConfig.Sync.StaleAfter)
	transactionsUseCase := usecase.NewSyncTransactionsUseCase(govClient, storageAdapter)
	feesUseCase := usecase.NewSyncManagementFeesUseCase(govClient, storageAdapter, storageAdapter)

	appLogger.Info("All use cases initialized", nil)

	apiHandlers := rest.NewSyncHandlers(discoverUseCase, reconcileUseCase, enrichUseCase, transactionsUseCase,
		feesUseCase, appConfig.Sync.DefaultMonths)
	apiServer := rest.NewServer(appConfig.Rest.Port, apiHandlers, baseLogger)

	application := &App{
		config:       appConfig,
		apiServer:    apiServer,
		dbPool:       dbPool,
		logger:       appLogger,
		fluentClient: fluentClient,
	}

	return application, nil
}

// Run starts all application components and manages their lifecycle.
func (a *App) Run() error {
	appCtx, cancelApp := context.WithCancel(context.Background())

	defer func() {
		a.logger.Info("Shutdown sequence initiated...", nil)

		if a.apiServer != nil {
			if err := a.apiServer.Stop(context.Background()); err != nil {
				a.logger.Error("Error during API server shutdown", err, nil)
			}
		}

		if a.dbPool != nil {
			a.dbPool.Close()
		}

		a.logger.Info("Application shut down gracefully.", nil)

		if a.fluentClient != nil {
			if err := a.fluentClient.Close(); err != nil {
				// Log to stdout, fluent may already be unreachable.
				fmt.Printf("ERROR: Error closing fluent client: %v\n", err)
			}
		}
	}()

	a.logger.Info("Application is starting...", nil)

	serverErrors := make(chan error, 1)
	go func() {
		a.logger.Info("Starting HTTP server...", port.Fields{"port": a.config.Rest.Port})
		if err := a.apiServer.Start(); err != nil && err != http.ErrServerClosed {
			serverErrors <- fmt.Errorf("failed to start HTTP server: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	a.logger.Info("Application running. Waiting for signals or server error...", nil)
	select {
	case receivedSignal := <-quit:
		a.logger.Warn("Received OS signal, shutting down...", port.Fields{"signal": receivedSignal.String()})
	case <-appCtx.Done():
		a.logger.Warn("Context was cancelled unexpectedly, shutting down...", nil)
	case err := <-serverErrors:
		a.logger.Error("HTTP server failed to start, shutting down", err, nil)
	}

	cancelApp()

	return nil
}

func parseLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		log.Printf("Warning: Unknown log level '%s'. Defaulting to 'info'.", levelStr)
		return slog.LevelInfo
	}
}
