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
	"sync"
	"syscall"

	logger_adapter "property-listing-service/internal/adapters/logger"
	"property-listing-service/internal/adapters/photostore"
	postgres_adapter "property-listing-service/internal/adapters/postgres"
	rabbitmq_adapter "property-listing-service/internal/adapters/rabbitmq"
	"property-listing-service/internal/adapters/rest"
	"property-listing-service/internal/configs"
	"property-listing-service/internal/core/port"
	"property-listing-service/internal/core/usecase"
	fluentlogger "property-listing-service/pkg/fluent_logger"
	"property-listing-service/pkg/postgres"
	"property-listing-service/pkg/rabbitmq/rabbitmq_common"
	"property-listing-service/pkg/rabbitmq/rabbitmq_producer"

	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/jackc/pgx/v5/pgxpool"
)

// App – структура приложения
type App struct {
	config       *configs.AppConfig
	dbPool       *pgxpool.Pool
	apiServer    *rest.Server
	fluentClient *fluent.Fluent
	logger       port.LoggerPort

	eventsPublisher port.ListingEventPublisherPort
}

// NewApp создает новый экземпляр приложения.
// Это "Composition Root", где все зависимости создаются и связываются.
func NewApp() (*App, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	// --- 1. ИНИЦИАЛИЗАЦИЯ ЛОГГЕРОВ ---
	var activeLoggers []port.LoggerPort

	slogCfg := logger_adapter.SlogConfig{
		Level:    parseLogLevel(appConfig.StdoutLogger.Level),
		IsJSON:   false, // текстовый формат
		UseColor: true,
	}
	stdoutLogger := logger_adapter.NewSlogAdapter(slogCfg)
	activeLoggers = append(activeLoggers, stdoutLogger)

	// Добавляем Fluent Bit логгер, если он включен в конфигурации
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

	// --- 2. СОЗДАЕМ БАЗОВЫЙ ЛОГГЕР ПРИЛОЖЕНИЯ С КОНТЕКСТОМ ---
	baseLogger := multiLogger.WithFields(port.Fields{
		"service_name": appConfig.AppName,
	})

	appLogger := baseLogger.WithFields(port.Fields{"component": "app"})
	appLogger.Info("Logger system initialized", port.Fields{
		"active_loggers": len(activeLoggers), "fluent_enabled": appConfig.FluentBit.Enabled,
	})

	// --- 3. НИЗКОУРОВНЕВЫЕ ЗАВИСИМОСТИ ---
	dbPool, err := postgres.NewClient(context.Background(), postgres.Config{DatabaseURL: appConfig.Database.URL})
	if err != nil {
		appLogger.Error("Failed to connect to PostgreSQL", err, nil)
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	appLogger.Info("Successfully connected to PostgreSQL pool!", nil)

	listingRepository, err := postgres_adapter.NewListingRepository(dbPool)
	if err != nil {
		appLogger.Error("Failed to create listing repository", err, nil)
		dbPool.Close()
		return nil, fmt.Errorf("failed to create listing repository: %w", err)
	}
	if err := listingRepository.EnsureSchema(context.Background()); err != nil {
		appLogger.Error("Failed to ensure listings schema", err, nil)
		dbPool.Close()
		return nil, fmt.Errorf("failed to ensure listings schema: %w", err)
	}
	appLogger.Info("Postgres listing repository initialized.", nil)

	photoStorage, err := photostore.NewDiskStorage(appConfig.Uploads.Dir, appConfig.Uploads.PublicPath)
	if err != nil {
		appLogger.Error("Failed to create photo storage", err, nil)
		dbPool.Close()
		return nil, fmt.Errorf("failed to create photo storage: %w", err)
	}
	appLogger.Info("Photo storage initialized.", port.Fields{"dir": appConfig.Uploads.Dir})

	// --- 4. ПУБЛИКАЦИЯ СОБЫТИЙ (опциональна) ---
	var eventsPublisher port.ListingEventPublisherPort = rabbitmq_adapter.NewNoopPublisher()
	if appConfig.Events.Enabled {
		producerLogger := baseLogger.WithFields(port.Fields{"component": "rabbitmq_producer"})
		pkgLoggerBridge := rabbitmq_adapter.NewPkgLoggerBridge(producerLogger)

		connManagerLogger := baseLogger.WithFields(port.Fields{"component": "rabbitmq_conn_manager"})
		connManagerBridge := rabbitmq_adapter.NewPkgLoggerBridge(connManagerLogger)
		connManager, err := rabbitmq_common.GetManager(appConfig.Events.RabbitMQURL, connManagerBridge)
		if err != nil {
			appLogger.Error("Failed to create connection manager", err, nil)
			dbPool.Close()
			return nil, fmt.Errorf("failed to create connection manager: %w", err)
		}
		appLogger.Info("RabbitMQ Connection Manager initialized.", nil)

		producerCfg := rabbitmq_producer.PublisherConfig{
			Config:                   rabbitmq_common.Config{URL: appConfig.Events.RabbitMQURL},
			ExchangeName:             appConfig.Events.ExchangeName,
			ExchangeType:             "topic",
			DurableExchange:          true,
			DeclareExchangeIfMissing: true,

			Logger: pkgLoggerBridge,
		}
		eventProducer, err := rabbitmq_producer.NewPublisher(producerCfg, connManager)
		if err != nil {
			appLogger.Error("Failed to create event producer", err, nil)
			dbPool.Close()
			return nil, fmt.Errorf("failed to create event producer: %w", err)
		}

		eventsPublisher, err = rabbitmq_adapter.NewListingEventsPublisher(eventProducer, baseLogger)
		if err != nil {
			appLogger.Error("Failed to create listing events publisher", err, nil)
			dbPool.Close()
			return nil, err
		}
		appLogger.Info("RabbitMQ Event Producer initialized.", nil)
	}

	// --- 5. USE CASES (ядро бизнес-логики) ---
	createListingUseCase := usecase.NewCreateListingUseCase(listingRepository, photoStorage, eventsPublisher)
	updateListingUseCase := usecase.NewUpdateListingUseCase(listingRepository, photoStorage, eventsPublisher)
	getListingUseCase := usecase.NewGetListingUseCase(listingRepository)
	listListingsUseCase := usecase.NewListListingsUseCase(listingRepository)
	deleteListingUseCase := usecase.NewDeleteListingUseCase(listingRepository, photoStorage, eventsPublisher)

	appLogger.Info("All use cases initialized.", nil)

	// --- 6. REST API Server ---
	listingHandler := rest.NewListingHandler(
		createListingUseCase,
		updateListingUseCase,
		getListingUseCase,
		listListingsUseCase,
		deleteListingUseCase,
	)

	apiServer := rest.NewServer(appConfig.Rest.PORT, listingHandler, photoStorage.Dir(), photoStorage.PublicPath(), baseLogger)
	appLogger.Info("REST API server configured.", nil)

	application := &App{
		config:          appConfig,
		dbPool:          dbPool,
		apiServer:       apiServer,
		eventsPublisher: eventsPublisher,

		fluentClient: fluentClient,
		logger:       appLogger,
	}

	return application, nil
}

// Run запускает все компоненты приложения и управляет их жизненным циклом.
func (a *App) Run() error {
	appCtx, cancelApp := context.WithCancel(context.Background())

	var wg sync.WaitGroup

	defer func() {
		a.logger.Info("Shutdown sequence initiated...", nil)

		a.logger.Info("Waiting for background processes to finish...", nil)
		wg.Wait()
		a.logger.Info("All background processes finished.", nil)

		if a.apiServer != nil {
			if err := a.apiServer.Stop(context.Background()); err != nil {
				a.logger.Error("Error during API server shutdown", err, nil)
			}
		}

		if a.eventsPublisher != nil {
			if err := a.eventsPublisher.Close(); err != nil {
				a.logger.Error("Error closing events publisher", err, nil)
			}
		}

		if a.dbPool != nil {
			a.dbPool.Close()
			a.logger.Info("PostgreSQL pool closed.", nil)
		}

		a.logger.Info("Application shut down gracefully.", nil)

		if a.fluentClient != nil {
			if err := a.fluentClient.Close(); err != nil {
				// Логируем в stdout, так как fluent может быть уже недоступен
				fmt.Printf("ERROR: Error closing fluent client: %v\n", err)
			}
		}
	}()

	a.logger.Info("Application is starting...", nil)

	errorsCh := make(chan error, 1)

	go func() {
		a.logger.Info("Starting HTTP server...", port.Fields{"port": a.config.Rest.PORT})
		if err := a.apiServer.Start(); err != nil && err != http.ErrServerClosed {
			errorsCh <- fmt.Errorf("failed to start HTTP server: %w", err)
		}
	}()

	// Ожидание сигнала на завершение или ошибки от одного из компонентов
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	a.logger.Info("Application running. Waiting for signals or server error...", nil)
	select {
	case receivedSignal := <-quit:
		a.logger.Warn("Received OS signal, shutting down...", port.Fields{"signal": receivedSignal.String()})
	case err := <-errorsCh:
		a.logger.Error("A critical component failed, shutting down", err, nil)
	case <-appCtx.Done():
		a.logger.Warn("Context was cancelled unexpectedly, shutting down...", nil)
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
