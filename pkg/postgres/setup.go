// Package postgres provides the relational side of the query layer: a
// guarded GORM wrapper used by callers that combine document querysets with
// rows from relational tables. Its FindConcat helper runs several ORM
// queries and concatenates their results into one list.
package postgres

import (
	"context"
	"fmt"
	"sync"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Logger defines the interface for logging operations within the postgres
// package.

//go:generate mockgen -source=setup.go -destination=mock_logger.go -package=postgres
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
	Fatal(msg string, err error, fields ...map[string]interface{})
}

// Postgres is a thread-safe wrapper around gorm.DB. It guards access with a
// read-write mutex so the underlying connection can be replaced without
// racing in-flight queries.
type Postgres struct {
	Client *gorm.DB
	cfg    Config
	logger Logger
	mu     *sync.RWMutex
}

// NewPostgres creates a new Postgres instance with the provided configuration
// and Logger. If the initial connection fails, it logs a fatal error and
// terminates.
func NewPostgres(cfg Config, logger Logger) *Postgres {
	conn, err := connectToPostgres(logger, cfg)
	if err != nil {
		logger.Fatal("error in connecting to postgres", err, nil)
	}

	return &Postgres{
		Client: conn,
		cfg:    cfg,
		logger: logger,
		mu:     &sync.RWMutex{},
	}
}

// connectToPostgres opens the GORM connection and configures the pool from
// ConnectionDetails, falling back to the package defaults for zero values.
func connectToPostgres(logger Logger, cfg Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Connection.Host,
		cfg.Connection.Port,
		cfg.Connection.User,
		cfg.Connection.Password,
		cfg.Connection.DbName,
		cfg.Connection.SSLMode)

	database, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL database: %w", err)
	}

	instance, err := database.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get PostgreSQL database instance: %w", err)
	}

	details := cfg.ConnectionDetails
	if details.MaxOpenConns <= 0 {
		details.MaxOpenConns = defaultMaxOpenConns
	}
	if details.MaxIdleConns <= 0 {
		details.MaxIdleConns = defaultMaxIdleConns
	}
	if details.ConnMaxLifetime <= 0 {
		details.ConnMaxLifetime = defaultConnMaxLifetime
	}

	instance.SetMaxOpenConns(details.MaxOpenConns)
	instance.SetMaxIdleConns(details.MaxIdleConns)
	instance.SetConnMaxLifetime(details.ConnMaxLifetime)

	logger.Info("Successfully connected to PostgreSQL database", nil, nil)

	return database, nil
}

// HealthCheck pings the database with the given context to verify
// connectivity.
func (p *Postgres) HealthCheck(ctx context.Context) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.Client == nil {
		return fmt.Errorf("database client is not initialized")
	}

	db, err := p.Client.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance during health check: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed during health check: %w", err)
	}

	return nil
}

// Close closes the underlying connection pool.
func (p *Postgres) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.Client == nil {
		return nil
	}

	db, err := p.Client.DB()
	if err != nil {
		return err
	}
	return db.Close()
}
