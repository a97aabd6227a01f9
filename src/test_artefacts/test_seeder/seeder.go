package test_seeder

import (
	"context"
	"fmt"

	"historyatlas/src/infra/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
)

type TestSeeder struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) TestSeeder {
	return TestSeeder{pool: pool}
}

// Prepare garante o schema e deixa todas as tabelas vazias.
func (ts TestSeeder) Prepare(ctx context.Context) {
	if err := postgres.EnsureSchema(ctx, ts.pool); err != nil {
		panic(fmt.Sprintf("Seeder.Prepare failed: %v", err))
	}
	ts.TruncateTables(ctx)
}

func (ts TestSeeder) TruncateTables(ctx context.Context) {
	tables := []string{
		"orders",
		"users",
		"regions",
		"rulers",
		"battles",
		"people",
		"places",
		"products",
	}

	for _, table := range tables {
		_, err := ts.pool.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table))
		if err != nil {
			panic(fmt.Sprintf("Failed to truncate %s: %v", table, err))
		}
	}
}
