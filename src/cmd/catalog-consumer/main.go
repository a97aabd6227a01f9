package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"historyatlas/src/adapters/kafka/consumers"
	"historyatlas/src/helper/env"
	"historyatlas/src/infra/kafka"
	"historyatlas/src/infra/postgres"
	"historyatlas/src/infra/redis"
	"historyatlas/src/repositories"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

func main() {
	log.SetOutput(os.Stdout)
	log.Println("Starting Catalog Sync Consumer with Uber Fx...")

	app := fx.New(
		// Providers
		fx.Provide(
			newLogger,
			newSQLClient,
			newRedisClient,
			newKafkaClient,
			newCatalogRepository,
			newCachedCatalogRepository,
			newCatalogSyncConsumer,
		),

		// Invocations
		fx.Invoke(startConsumer),
	)

	// Start the application
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := app.Start(ctx); err != nil {
		log.Fatalf("Failed to start consumer application: %v", err)
	}

	// Wait for interrupt signal to gracefully shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	log.Println("Shutting down catalog sync consumer...")

	// Stop the application
	stopCtx, stopCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer stopCancel()

	if err := app.Stop(stopCtx); err != nil {
		log.Printf("Failed to stop application gracefully: %v", err)
	}

	log.Println("Catalog sync consumer shutdown complete")
}

func newLogger() *slog.Logger {
	logLevel := env.GetString("LOG_LEVEL", "info")
	var level slog.Level

	switch logLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	logger := slog.New(h)
	slog.SetDefault(logger)
	return logger
}

func newSQLClient(lc fx.Lifecycle) (*pgxpool.Pool, error) {
	pool, err := postgres.NewPostgresClient(context.Background(), postgres.Config{
		Host:            env.MustGetString("DB_HOST"),
		Port:            env.GetString("DB_PORT", "5432"),
		Database:        env.MustGetString("DB_NAME"),
		User:            env.MustGetString("DB_USER"),
		Password:        env.MustGetString("DB_PASSWORD"),
		MaxConnections:  env.GetInt("DB_MAX_POOL_CONNECTIONS", 10),
		SSLMode:         env.GetString("DB_SSLMODE", "disable"),
		ApplicationName: "historyatlas-catalog-consumer",
	})
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return postgres.EnsureSchema(ctx, pool)
		},
		OnStop: func(ctx context.Context) error {
			pool.Close()
			return nil
		},
	})

	return pool, nil
}

func newRedisClient(lc fx.Lifecycle) *redis.RedisClient {
	redisHosts := env.GetString("REDIS_HOSTS")
	if redisHosts == "" {
		return nil
	}

	redisPoolSize := env.GetInt("REDIS_POOL_SIZE", 10)
	redisDefaultTTLSeconds := env.GetInt("REDIS_DEFAULT_TTL_SECONDS", 120)
	redisDefaultTTL := time.Duration(redisDefaultTTLSeconds) * time.Second

	client := redis.NewRedisClient(redisHosts, redisPoolSize, redisDefaultTTL).WithPrefix("historyatlas:")

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})

	return client
}

func newKafkaClient(logger *slog.Logger) (*kafka.KafkaClient, error) {
	brokers := env.MustGetString("KAFKA_BROKERS")
	groupID := env.MustGetString("KAFKA_CATALOG_CONSUMER_GROUP_ID")
	batchSize := env.MustGetInt("KAFKA_BATCH_SIZE")

	return kafka.NewKafkaClient(logger, brokers, groupID, batchSize)
}

func newCatalogRepository(pool *pgxpool.Pool) *repositories.CatalogRepository {
	return repositories.NewCatalogRepository(pool)
}

func newCachedCatalogRepository(
	logger *slog.Logger,
	catalogRepository *repositories.CatalogRepository,
	redisClient *redis.RedisClient,
) *repositories.CachedCatalogRepository {
	var cache repositories.Cache
	if redisClient != nil {
		cache = redisClient
	}
	return repositories.NewCachedCatalogRepository(logger, catalogRepository, cache)
}

func newCatalogSyncConsumer(
	logger *slog.Logger,
	catalogRepository *repositories.CatalogRepository,
	cachedCatalogRepository *repositories.CachedCatalogRepository,
) *consumers.CatalogSyncConsumer {
	return consumers.NewCatalogSyncConsumer(logger, catalogRepository, cachedCatalogRepository)
}

func startConsumer(
	lc fx.Lifecycle,
	logger *slog.Logger,
	kafkaClient *kafka.KafkaClient,
	catalogConsumer *consumers.CatalogSyncConsumer,
) {
	consumerCtx, cancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			topic := env.GetString("KAFKA_CATALOG_TOPIC", "historyatlas.catalog")

			// Start consumer in background
			go func() {
				if err := catalogConsumer.Start(consumerCtx, kafkaClient, topic); err != nil {
					logger.Error("Consumer failed", "error", err)
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			cancel()

			logger.Info("Shutting down Kafka client...")
			if err := kafkaClient.Close(); err != nil {
				logger.Error("Failed to close Kafka client", "error", err)
				return err
			}
			logger.Info("Kafka client shut down gracefully")
			return nil
		},
	})
}
