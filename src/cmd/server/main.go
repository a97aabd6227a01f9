package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	httpadapter "historyatlas/src/adapters/http"
	"historyatlas/src/helper/env"
	"historyatlas/src/infra/kafka"
	"historyatlas/src/infra/postgres"
	"historyatlas/src/infra/redis"
	"historyatlas/src/repositories"
	"historyatlas/src/services/auth"
	"historyatlas/src/services/catalog"
	"historyatlas/src/services/events"
	"historyatlas/src/services/orders"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

func main() {
	// Configurar logger
	log.SetOutput(os.Stdout)
	log.Println("Starting API server with Uber Fx...")

	app := fx.New(
		// Providers
		fx.Provide(
			newLogger,
			newSQLClient,
			newRedisClient,
			newKafkaClient,
			newCatalogService,
			newAuthService,
			newOrderService,
			newServer,
		),

		// Invocations
		fx.Invoke(registerServerHooks),
	)

	// Start the application
	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	// Wait for app to exit gracefully
	<-app.Done()

	stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.Stop(stopCtx); err != nil {
		log.Printf("Failed to stop application gracefully: %v", err)
	}
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

// newSQLClient configures the pgxpool connection pool and applies the schema
func newSQLClient(lc fx.Lifecycle) (*pgxpool.Pool, error) {
	pool, err := postgres.NewPostgresClient(context.Background(), postgres.Config{
		Host:            env.MustGetString("DB_HOST"),
		Port:            env.GetString("DB_PORT", "5432"),
		Database:        env.MustGetString("DB_NAME"),
		User:            env.MustGetString("DB_USER"),
		Password:        env.MustGetString("DB_PASSWORD"),
		MaxConnections:  env.GetInt("DB_MAX_POOL_CONNECTIONS", 25),
		SSLMode:         env.GetString("DB_SSLMODE", "disable"),
		ApplicationName: "historyatlas-server",
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

// newRedisClient devolve nil quando REDIS_HOSTS não está definido: as leituras vão direto ao banco.
func newRedisClient(lc fx.Lifecycle, logger *slog.Logger) *redis.RedisClient {
	redisHosts := env.GetString("REDIS_HOSTS")
	if redisHosts == "" {
		logger.Warn("REDIS_HOSTS not set, catalog cache disabled")
		return nil
	}

	redisPoolSize := env.GetInt("REDIS_POOL_SIZE", 50)
	redisDefaultTTLSeconds := env.GetInt("REDIS_DEFAULT_TTL_SECONDS", 120)
	redisDefaultTTL := time.Duration(redisDefaultTTLSeconds) * time.Second

	client := redis.NewRedisClient(redisHosts, redisPoolSize, redisDefaultTTL).WithPrefix("historyatlas:")

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := client.HealthCheck(ctx); err != nil {
				logger.Warn("Redis unreachable at startup, reads will fall back to postgres", "error", err)
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})

	return client
}

// newKafkaClient devolve nil quando KAFKA_BROKERS não está definido: pedidos não publicam eventos.
func newKafkaClient(lc fx.Lifecycle, logger *slog.Logger) (*kafka.KafkaClient, error) {
	brokers := env.GetString("KAFKA_BROKERS")
	if brokers == "" {
		logger.Warn("KAFKA_BROKERS not set, order events disabled")
		return nil, nil
	}

	client, err := kafka.NewKafkaClient(logger, brokers, "", env.GetInt("KAFKA_BATCH_SIZE", 100))
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})

	return client, nil
}

func newCatalogService(
	logger *slog.Logger,
	pool *pgxpool.Pool,
	redisClient *redis.RedisClient,
) *catalog.CatalogService {
	// Interface nil explícita: um *RedisClient nil dentro da interface não seria nil.
	var cache repositories.Cache
	if redisClient != nil {
		cache = redisClient
	}

	catalogRepository := repositories.NewCatalogRepository(pool)
	cachedCatalogRepository := repositories.NewCachedCatalogRepository(logger, catalogRepository, cache)

	return catalog.NewCatalogService(cachedCatalogRepository)
}

func newAuthService(logger *slog.Logger, pool *pgxpool.Pool) (*auth.AuthService, error) {
	secret := env.MustGetString("JWT_SECRET")
	ttl := env.GetDuration("JWT_TTL", 7*24*time.Hour)

	tokenManager, err := auth.NewTokenManager(secret, ttl)
	if err != nil {
		return nil, err
	}

	return auth.NewAuthService(logger, repositories.NewUserRepository(pool), tokenManager, env.GetInt("BCRYPT_COST", 10)), nil
}

func newOrderService(
	logger *slog.Logger,
	pool *pgxpool.Pool,
	kafkaClient *kafka.KafkaClient,
) *orders.OrderService {
	var publisher orders.EventPublisher
	if kafkaClient != nil {
		topic := env.GetString("KAFKA_ORDER_EVENTS_TOPIC", "historyatlas.orders")
		publisher = events.NewDomainEventPublisher(logger, kafkaClient, topic)
	}

	return orders.NewOrderService(logger, repositories.NewOrderRepository(pool), publisher)
}

func newServer(
	logger *slog.Logger,
	catalogService *catalog.CatalogService,
	authService *auth.AuthService,
	orderService *orders.OrderService,
) *httpadapter.Server {
	config := httpadapter.ServerConfig{
		Port:           env.GetInt("SERVER_PORT", 5000),
		AllowedOrigins: env.GetStringSlice("CORS_ALLOWED_ORIGINS", "*"),
	}

	return httpadapter.NewServer(logger, config, catalogService, authService, orderService)
}

// registerServerHooks registers lifecycle hooks for the HTTP server
func registerServerHooks(lc fx.Lifecycle, shutdowner fx.Shutdowner, srv *httpadapter.Server) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			// Start server in a separate goroutine
			go func() {
				if err := srv.Start(); err != nil && err != http.ErrServerClosed {
					log.Printf("Server failed: %v", err)
					_ = shutdowner.Shutdown(fx.ExitCode(1))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			// Create timeout context for graceful shutdown
			shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()

			log.Println("Shutting down server...")
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Printf("Server forced to shutdown: %v", err)
				return err
			}
			log.Println("Server exited gracefully")
			return nil
		},
	})
}
