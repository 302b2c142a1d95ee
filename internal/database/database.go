// Package database opens the Supabase Postgres connection used by the note store.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/XSAM/otelsql"
	_ "github.com/jackc/pgx/v5/stdlib"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"

	"notepilot/internal/config"
)

const pingTimeout = 5 * time.Second

var sqlOpen = sql.Open

// ErrIncompleteConfig is returned when neither a connection URL nor the
// host, user and database name are configured.
var ErrIncompleteConfig = errors.New("database: DATABASE_URL or DB_HOST, DB_USER and DB_NAME are required")

// BuildPostgresDSN returns the connection string for c. A configured URL is used
// as the base; otherwise the URL is assembled from the individual fields. Query
// parameters already present in the URL win over sslmode from config.
func BuildPostgresDSN(c config.DatabaseConfig) (string, error) {
	u, err := baseURL(c)
	if err != nil {
		return "", err
	}

	q := u.Query()
	if c.SSLMode != "" && q.Get("sslmode") == "" {
		q.Set("sslmode", c.SSLMode)
	}
	if c.TransactionPooler {
		// Supavisor transaction mode drops prepared statements between transactions
		q.Set("default_query_exec_mode", "simple_protocol")
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func baseURL(c config.DatabaseConfig) (*url.URL, error) {
	if c.URL != "" {
		u, err := url.Parse(c.URL)
		if err != nil {
			return nil, fmt.Errorf("parse DATABASE_URL: %w", err)
		}
		if u.Scheme != "postgres" && u.Scheme != "postgresql" {
			return nil, fmt.Errorf("parse DATABASE_URL: unsupported scheme %q", u.Scheme)
		}
		return u, nil
	}

	if c.Host == "" || c.User == "" || c.Name == "" {
		return nil, ErrIncompleteConfig
	}
	port := c.Port
	if port == "" {
		port = "5432"
	}
	u := &url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(c.Host, port),
		Path:   c.Name,
		User:   url.User(c.User),
	}
	if c.Password != "" {
		u.User = url.UserPassword(c.User, c.Password)
	}
	return u, nil
}

// NewPostgres opens the pool through the pgx stdlib driver wrapped in otelsql
// and pings it before returning.
func NewPostgres(ctx context.Context, c config.DatabaseConfig) (*sql.DB, error) {
	dsn, err := BuildPostgresDSN(c)
	if err != nil {
		return nil, err
	}

	driverName, err := otelsql.Register("pgx",
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL),
		// sqlcommenter prefixes would defeat the pooler's statement handling
		otelsql.WithSQLCommenter(!c.TransactionPooler),
		otelsql.WithSpanOptions(otelsql.SpanOptions{
			OmitConnResetSession: true,
			OmitRows:             true,
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("register otelsql: %w", err)
	}

	db, err := sqlOpen(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	configurePool(db, c)

	pctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(pctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

// configurePool applies the positive pool limits from c and leaves the rest at
// the database/sql defaults.
func configurePool(db *sql.DB, c config.DatabaseConfig) {
	if c.MaxOpenConns > 0 {
		db.SetMaxOpenConns(c.MaxOpenConns)
	}
	if c.MaxIdleConns > 0 {
		db.SetMaxIdleConns(c.MaxIdleConns)
	}
	if c.ConnMaxLifetimeSec > 0 {
		db.SetConnMaxLifetime(time.Duration(c.ConnMaxLifetimeSec) * time.Second)
	}
}

// HostOf returns the database host for log fields, whichever way it was configured.
func HostOf(c config.DatabaseConfig) string {
	if c.URL == "" {
		return c.Host
	}
	u, err := url.Parse(c.URL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
