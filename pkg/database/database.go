// Package database manages the SQL connection pool and its lifecycle.
// MySQL (go-sql-driver) and PostgreSQL (pgx stdlib) are supported through database/sql.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/JaimeStill/sales-lab/pkg/lifecycle"
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// ErrNotReady indicates the connection pool has not been verified yet.
var ErrNotReady = errors.New("database not ready")

// System provides access to the database connection pool.
type System interface {
	Connection() *sql.DB
	Dialect() Dialect
	Start(lc *lifecycle.Coordinator) error
}

type database struct {
	conn    *sql.DB
	dialect Dialect
	cfg     *Config
	logger  *slog.Logger
}

// New opens a connection pool for the configured driver. No connection is made
// until Start verifies connectivity.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	conn, err := sql.Open(cfg.Driver, cfg.Dsn())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	conn.SetMaxOpenConns(cfg.MaxOpenConns)
	conn.SetMaxIdleConns(cfg.MaxIdleConns)
	conn.SetConnMaxLifetime(cfg.ConnMaxLifetimeDuration())

	return &database{
		conn:    conn,
		dialect: cfg.Dialect(),
		cfg:     cfg,
		logger:  logger.With("system", "database"),
	}, nil
}

func (d *database) Connection() *sql.DB {
	return d.conn
}

func (d *database) Dialect() Dialect {
	return d.dialect
}

// Start pings the database within conn_timeout and registers pool shutdown.
func (d *database) Start(lc *lifecycle.Coordinator) error {
	d.logger.Info("starting database connection", "driver", d.cfg.Driver, "host", d.cfg.Host, "name", d.cfg.Name)

	pingCtx, cancel := context.WithTimeout(lc.Context(), d.cfg.ConnTimeoutDuration())
	defer cancel()

	if err := d.conn.PingContext(pingCtx); err != nil {
		return fmt.Errorf("%w: ping failed: %v", ErrNotReady, err)
	}

	d.logger.Info("database connection established")

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		d.logger.Info("closing database connection")

		if err := d.conn.Close(); err != nil {
			d.logger.Error("database close failed", "error", err)
		} else {
			d.logger.Info("database connection closed")
		}
	})

	return nil
}
