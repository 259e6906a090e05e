package mongodb

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Logger defines the interface for logging operations within the mongodb
// package. It provides methods for different logging levels to track
// connection status, query execution and error handling.

//go:generate mockgen -source=setup.go -destination=mock_logger.go -package=mongodb
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
	Fatal(msg string, err error, fields ...map[string]interface{})
}

// Mongo is a thread-safe wrapper around mongo.Client that provides connection
// monitoring, automatic reconnection and validated query execution.
// All queries issued through it must travel inside a queryset.Queryset that
// has passed injection validation; see Execute.
type Mongo struct {
	Client  *mongo.Client
	cfg     Config
	logger  Logger
	metrics *Metrics

	mu              *sync.RWMutex
	shutdownSignal  chan struct{}
	retryChanSignal chan error

	closeRetryChanOnce sync.Once
	closeShutdownOnce  sync.Once
}

// NewMongo creates a new Mongo instance with the provided configuration and
// Logger. It establishes the initial connection and sets up the internal
// state for connection monitoring and recovery. If the initial connection
// fails, it logs a fatal error and terminates.
func NewMongo(cfg Config, logger Logger) *Mongo {
	client, err := connectToMongo(logger, cfg)
	if err != nil {
		logger.Fatal("error in connecting to mongodb after all retries", err, nil)
	}

	return &Mongo{
		Client:          client,
		cfg:             cfg,
		logger:          logger,
		mu:              &sync.RWMutex{},
		shutdownSignal:  make(chan struct{}),
		retryChanSignal: make(chan error, 1),
	}
}

// WithMetrics attaches execution metrics to the Mongo instance and returns it
// for chaining. Without metrics attached, Execute simply skips observation.
func (m *Mongo) WithMetrics(metrics *Metrics) *Mongo {
	m.metrics = metrics
	return m
}

// connectToMongo establishes a connection to MongoDB using the provided
// configuration. It builds the connection URI, applies the pool settings and
// verifies connectivity with a ping. Returns the connected client or an error.
func connectToMongo(logger Logger, cfg Config) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(connectionURI(cfg)).
		SetMaxPoolSize(cfg.ConnectionDetails.MaxPoolSize).
		SetMinPoolSize(cfg.ConnectionDetails.MinPoolSize)

	if cfg.ConnectionDetails.ConnectTimeout > 0 {
		opts = opts.SetConnectTimeout(cfg.ConnectionDetails.ConnectTimeout)
	}
	if cfg.ConnectionDetails.ServerSelectionTimeout > 0 {
		opts = opts.SetServerSelectionTimeout(cfg.ConnectionDetails.ServerSelectionTimeout)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	logger.Info("Successfully connected to MongoDB", nil, nil)

	return client, nil
}

// connectionURI assembles the mongodb:// URI from the connection section.
// Credentials are omitted entirely when no user is configured.
func connectionURI(cfg Config) string {
	address := fmt.Sprintf("%s:%s", cfg.Connection.Host, cfg.Connection.Port)

	if cfg.Connection.User == "" {
		return fmt.Sprintf("mongodb://%s", address)
	}

	authSource := cfg.Connection.AuthSource
	if authSource == "" {
		authSource = "admin"
	}

	return fmt.Sprintf("mongodb://%s:%s@%s/?authSource=%s",
		cfg.Connection.User,
		cfg.Connection.Password,
		address,
		authSource)
}

// RetryConnection continuously attempts to reconnect to MongoDB when notified
// of a connection failure. It operates as a goroutine that waits for signals
// on retryChanSignal before attempting reconnection. The function respects
// context cancellation and shutdown signals, ensuring graceful termination
// when requested.
//
// It implements two nested loops:
// - The outer loop waits for retry signals
// - The inner loop attempts reconnection until successful
func (m *Mongo) RetryConnection(ctx context.Context, logger Logger) {
outerLoop:
	for {
		select {
		case <-m.shutdownSignal:
			logger.Info("Stopping RetryConnection loop due to shutdown signal", nil, nil)
			return
		case <-ctx.Done():
			return
		case <-m.retryChanSignal:
		innerLoop:
			for {
				select {
				case <-m.shutdownSignal:
					return
				case <-ctx.Done():
					return
				default:
					newClient, err := connectToMongo(logger, m.cfg)
					if err != nil {
						logger.Error("Reconnection failed", err, nil)
						time.Sleep(time.Second)
						continue innerLoop
					}
					m.mu.Lock()
					old := m.Client
					m.Client = newClient
					m.mu.Unlock()
					if old != nil {
						_ = old.Disconnect(context.Background())
					}
					logger.Info("Reconnected to MongoDB", nil, nil)
					continue outerLoop
				}
			}
		}
	}
}

// MonitorConnection periodically checks the health of the MongoDB connection
// and triggers reconnection attempts when necessary. It runs as a goroutine
// that performs health checks at regular intervals (10 seconds) and signals
// the RetryConnection goroutine when a failure is detected.
//
// The function respects context cancellation and shutdown signals, ensuring
// proper resource cleanup and graceful termination when requested.
func (m *Mongo) MonitorConnection(ctx context.Context) {
	defer m.closeRetryChanOnce.Do(func() {
		close(m.retryChanSignal)
	})

	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-m.shutdownSignal:
			m.logger.Info("Stopping MonitorConnection loop due to shutdown signal", nil, nil)
			return
		case <-ticker.C:
			err := m.healthCheck()
			if err != nil {
				select {
				case m.retryChanSignal <- err:
				default:
				}
			}
		case <-ctx.Done():
			return
		}
	}
}

// healthCheck performs a health check on the MongoDB connection. It acquires
// a read lock to safely access the client, then pings the primary with a
// timeout of 5 seconds to verify connectivity.
//
// It returns nil if the deployment is reachable, or an error with details
// about the issue.
func (m *Mongo) healthCheck() error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.Client == nil {
		return fmt.Errorf("mongodb client is not initialized")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := m.Client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("mongodb ping failed during health check: %w", err)
	}

	return nil
}

// Shutdown signals the monitoring goroutines to stop and disconnects the
// client. It is safe to call more than once.
func (m *Mongo) Shutdown(ctx context.Context) error {
	m.closeShutdownOnce.Do(func() {
		close(m.shutdownSignal)
	})

	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.Client == nil {
		return nil
	}
	return m.Client.Disconnect(ctx)
}
