package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	defaultTimeout = 5 * time.Second
)

func init() {
	sqlx.BindDriver(DriverSQLite, sqlx.QUESTION)
}

// Config captures the settings for opening the relational store.
type Config struct {
	Driver       string
	URL          string
	MaxOpenConns int
	MaxIdleConns int
	Timeout      time.Duration
}

// Database wraps the sqlx handle together with the dialect it was opened for.
type Database struct {
	*sqlx.DB
	driver string
}

// Connect opens the pool and verifies connectivity with a ping. The sqlite
// driver is limited to a single connection so that ":memory:" databases are
// shared by every caller.
func Connect(ctx context.Context, cfg Config) (*Database, error) {
	driver := cfg.Driver
	if driver == "" {
		driver = DriverPostgres
	}
	if driver != DriverPostgres && driver != DriverSQLite {
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	db, err := sqlx.Open(driver, cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}

	if driver == DriverSQLite {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	} else {
		if cfg.MaxOpenConns > 0 {
			db.SetMaxOpenConns(cfg.MaxOpenConns)
		}
		if cfg.MaxIdleConns > 0 {
			db.SetMaxIdleConns(cfg.MaxIdleConns)
		}
		db.SetConnMaxLifetime(time.Hour)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s ping: %w", driver, err)
	}

	return &Database{DB: db, driver: driver}, nil
}

func (d *Database) Driver() string { return d.driver }

// Ping satisfies the readiness check.
func (d *Database) Ping(ctx context.Context) error { return d.PingContext(ctx) }

// Migrate creates the users and products tables if they do not exist.
func (d *Database) Migrate(ctx context.Context) error {
	stmts := postgresSchema
	if d.driver == DriverSQLite {
		stmts = sqliteSchema
	}
	for _, stmt := range stmts {
		if _, err := d.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		email VARCHAR(255) UNIQUE NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		role VARCHAR(20) NOT NULL CHECK (role IN ('customer', 'employee', 'admin')),
		created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id BIGSERIAL PRIMARY KEY,
		sku VARCHAR(100) UNIQUE NOT NULL,
		name VARCHAR(255) NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		price NUMERIC(12, 2) NOT NULL DEFAULT 0,
		category VARCHAR(100) NOT NULL DEFAULT 'Uncategorized',
		stock_quantity INTEGER NOT NULL DEFAULT 0 CHECK (stock_quantity >= 0)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_products_stock_quantity ON products(stock_quantity)`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		email TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL CHECK (role IN ('customer', 'employee', 'admin')),
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sku TEXT UNIQUE NOT NULL,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		price REAL NOT NULL DEFAULT 0,
		category TEXT NOT NULL DEFAULT 'Uncategorized',
		stock_quantity INTEGER NOT NULL DEFAULT 0 CHECK (stock_quantity >= 0)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_products_stock_quantity ON products(stock_quantity)`,
}
