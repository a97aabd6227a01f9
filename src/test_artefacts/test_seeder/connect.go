package test_seeder

import (
	"context"

	"historyatlas/src/helper/env"
	"historyatlas/src/infra/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ConnectFromEnv abre o pool do banco de testes. Retorna false quando TEST_DB_HOST
// não está definido, para que as suítes possam pular os specs de banco.
func ConnectFromEnv() (*pgxpool.Pool, bool, error) {
	host := env.GetString("TEST_DB_HOST")
	if host == "" {
		return nil, false, nil
	}

	pool, err := postgres.NewPostgresClient(context.Background(), postgres.Config{
		Host:           host,
		Port:           env.GetString("TEST_DB_PORT", "5432"),
		Database:       env.GetString("TEST_DB_NAME", "historyatlas_test"),
		User:           env.GetString("TEST_DB_USER", "postgres"),
		Password:       env.GetString("TEST_DB_PASSWORD", "postgres"),
		MaxConnections: env.GetInt("TEST_DB_MAX_POOL_CONNECTIONS", 5),
	})
	if err != nil {
		return nil, true, err
	}

	return pool, true, nil
}
