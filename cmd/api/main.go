package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/wms-platform/distribution-service/internal/api/handlers"
	"github.com/wms-platform/distribution-service/internal/application"
	"github.com/wms-platform/distribution-service/internal/domain"
	mongoRepo "github.com/wms-platform/distribution-service/internal/infrastructure/mongodb"
	"github.com/wms-platform/distribution-service/pkg/events"
	"github.com/wms-platform/distribution-service/pkg/kafka"
	"github.com/wms-platform/distribution-service/pkg/logging"
	"github.com/wms-platform/distribution-service/pkg/metrics"
	"github.com/wms-platform/distribution-service/pkg/middleware"
	"github.com/wms-platform/distribution-service/pkg/mongodb"
)

const serviceName = "distribution-service"

type instrumentedMongoClient interface {
	Collection(name string) *mongodb.InstrumentedCollection
	Close(context.Context) error
	HealthCheck(context.Context) error
}

type kafkaProducer interface {
	application.EventPublisher
	Close() error
}

var newInstrumentedMongoClient = func(ctx context.Context, cfg *mongodb.Config, m *metrics.Metrics, logger *logging.Logger) (instrumentedMongoClient, error) {
	client, err := mongodb.NewClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return mongodb.NewInstrumentedClient(client, m, logger), nil
}

var newKafkaProducer = func(cfg *kafka.Config, m *metrics.Metrics, logger *logging.Logger) kafkaProducer {
	return kafka.NewProductionProducer(cfg, m, logger)
}

var newRunRepository = func(client instrumentedMongoClient) domain.RunRepository {
	return mongoRepo.NewRunRepository(client.(*mongodb.InstrumentedClient))
}

var newConfigRepository = func(client instrumentedMongoClient) domain.ConfigRepository {
	return mongoRepo.NewConfigRepository(client.(*mongodb.InstrumentedClient))
}

var newMetrics = metrics.New

var startHTTPServer = func(srv *http.Server) error {
	return srv.ListenAndServe()
}

func main() {
	_ = godotenv.Load()

	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM)

	if err := run(context.Background(), signalCh); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, signalCh <-chan os.Signal) error {
	logConfig := logging.DefaultConfig(serviceName)
	logConfig.Level = logging.LogLevel(getEnv("LOG_LEVEL", "info"))
	logger := logging.New(logConfig)
	logger.SetDefault()

	logger.Info("Starting distribution-service API")

	config := loadConfig()

	metricsConfig := metrics.DefaultConfig(serviceName)
	m := newMetrics(metricsConfig)
	logger.Info("Metrics initialized")

	instrumentedMongo, err := newInstrumentedMongoClient(ctx, config.MongoDB, m, logger)
	if err != nil {
		logger.WithError(err).Error("Failed to connect to MongoDB")
		return err
	}
	defer instrumentedMongo.Close(ctx)
	logger.Info("Connected to MongoDB", "database", config.MongoDB.Database)

	producer := newKafkaProducer(config.Kafka, m, logger)
	defer producer.Close()
	logger.Info("Kafka producer initialized", "brokers", config.Kafka.Brokers)

	eventFactory := events.NewEventFactory(events.SourceDistribution)

	runRepo := newRunRepository(instrumentedMongo)
	configRepo := newConfigRepository(instrumentedMongo)

	distributionService := application.NewDistributionService(
		runRepo,
		configRepo,
		producer,
		eventFactory,
		logger.WithComponent("application"),
		m,
	)

	distributionHandler := handlers.NewDistributionHandler(distributionService, logger.WithComponent("api"))

	router := gin.New()

	middlewareConfig := middleware.DefaultConfig(serviceName, logger.Logger)
	middleware.Setup(router, middlewareConfig)
	router.Use(middleware.MetricsMiddleware(m))

	router.NoRoute(middleware.NoRoute())
	router.NoMethod(middleware.NoMethod())

	router.GET("/health", middleware.HealthCheck(serviceName))
	router.GET("/ready", middleware.ReadinessCheck(serviceName, func() error {
		return instrumentedMongo.HealthCheck(ctx)
	}))
	router.GET("/metrics", middleware.MetricsEndpoint(m))

	v1 := router.Group("/api/v1")
	{
		distribution := v1.Group("/distribution")
		{
			distribution.POST("/allocate", distributionHandler.Allocate)
			distribution.POST("/rebalance", distributionHandler.Rebalance)
			distribution.POST("/project", distributionHandler.Project)

			distribution.GET("/runs", distributionHandler.ListRuns)
			distribution.GET("/runs/:runId", distributionHandler.GetRun)

			distribution.POST("/configs", distributionHandler.SaveConfig)
			distribution.GET("/configs", distributionHandler.ListConfigs)
			distribution.GET("/configs/:name", distributionHandler.GetConfig)
			distribution.PUT("/configs/:name/yaml", distributionHandler.ImportConfigYAML)
			distribution.GET("/configs/:name/yaml", distributionHandler.ExportConfigYAML)
		}
	}

	srv := &http.Server{
		Addr:         config.ServerAddr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		if err := startHTTPServer(srv); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Error("Server error")
		}
	}()
	logger.Info("Server started", "addr", config.ServerAddr)

	<-signalCh
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Server forced to shutdown")
	}

	logger.Info("Server stopped")
	return nil
}

// Config holds application configuration
type Config struct {
	ServerAddr string
	MongoDB    *mongodb.Config
	Kafka      *kafka.Config
}

func loadConfig() *Config {
	mongoConfig := mongodb.DefaultConfig()
	mongoConfig.URI = getEnv("MONGODB_URI", mongoConfig.URI)
	mongoConfig.Database = getEnv("MONGODB_DATABASE", "distribution")

	kafkaConfig := kafka.DefaultConfig()
	kafkaConfig.Brokers = []string{getEnv("KAFKA_BROKERS", "localhost:9092")}
	kafkaConfig.ClientID = serviceName

	return &Config{
		ServerAddr: getEnv("SERVER_ADDR", ":8080"),
		MongoDB:    mongoConfig,
		Kafka:      kafkaConfig,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
