package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/jackc/pgtype"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolationCode = "23505"

// Config descreve a conexão com o banco do catálogo, usuários e pedidos.
type Config struct {
	Host            string
	Port            string
	Database        string
	User            string
	Password        string
	MaxConnections  int
	SSLMode         string
	ApplicationName string
}

func (c Config) connString() string {
	query := url.Values{}
	query.Set("sslmode", c.SSLMode)
	if c.SSLMode == "" {
		query.Set("sslmode", "disable")
	}
	if c.ApplicationName != "" {
		query.Set("application_name", c.ApplicationName)
	}

	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     net.JoinHostPort(c.Host, c.Port),
		Path:     "/" + c.Database,
		RawQuery: query.Encode(),
	}
	return dsn.String()
}

// NewPostgresClient abre o pool e valida a conexão com um ping.
func NewPostgresClient(ctx context.Context, cfg Config) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(cfg.connString())
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres config: %w", err)
	}

	if cfg.MaxConnections > 0 {
		config.MaxConns = int32(cfg.MaxConnections) //nolint:all
	}
	config.MinConns = 1
	config.MaxConnIdleTime = 5 * time.Minute
	config.MaxConnLifetime = 30 * time.Minute
	config.HealthCheckPeriod = 1 * time.Minute

	config.ConnConfig.RuntimeParams["timezone"] = "UTC"
	config.ConnConfig.RuntimeParams["statement_timeout"] = "30s"
	config.ConnConfig.RuntimeParams["idle_in_transaction_session_timeout"] = "60s"

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect postgres: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping postgres at %s: %w", cfg.Host, err)
	}

	return pool, nil
}

// NewNullString grava NULL para strings vazias (cidade e país são opcionais no cadastro).
func NewNullString(s string) pgtype.Text {
	status := pgtype.Present
	if s == "" {
		status = pgtype.Null
	}
	return pgtype.Text{String: s, Status: status}
}

// StringOrEmpty é o inverso de NewNullString na leitura.
func StringOrEmpty(t pgtype.Text) string {
	if t.Status != pgtype.Present {
		return ""
	}
	return t.String
}

func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

func IsNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows)
}
