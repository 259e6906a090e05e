package postgres

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"database/sql"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

// Invoice is a sample model for testing the concatenation helper
type Invoice struct {
	gorm.Model
	Number string
	State  string
}

// PostgresContainer represents a Postgres container for testing
type PostgresContainer struct {
	testcontainers.Container
	Config Config
	Host   string
	Port   string
}

// setupPostgresContainer sets up a Postgres container for testing
func setupPostgresContainer(ctx context.Context) (*PostgresContainer, error) {
	req := testcontainers.ContainerRequest{
		Image: "postgres:15",
		Env: map[string]string{
			"POSTGRES_USER":     "testuser",
			"POSTGRES_PASSWORD": "testpass",
			"POSTGRES_DB":       "testdb",
		},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForLog("database system is ready to accept connections").WithStartupTimeout(30 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start postgres container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("failed to get host: %w", err)
	}

	mappedPort, err := container.MappedPort(ctx, "5432")
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("failed to get mapped port: %w", err)
	}

	if err := waitForPostgresReady(host, mappedPort.Port(), 30*time.Second); err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	cfg := Config{
		Connection: Connection{
			Host:     host,
			Port:     mappedPort.Port(),
			User:     "testuser",
			Password: "testpass",
			DbName:   "testdb",
			SSLMode:  "disable",
		},
	}

	return &PostgresContainer{
		Container: container,
		Config:    cfg,
		Host:      host,
		Port:      mappedPort.Port(),
	}, nil
}

// waitForPostgresReady polls until the database accepts real connections;
// the readiness log line can appear before the second (post-initdb) startup.
func waitForPostgresReady(host, port string, timeout time.Duration) error {
	dsn := fmt.Sprintf("host=%s port=%s user=testuser password=testpass dbname=testdb sslmode=disable", host, port)
	deadline := time.Now().Add(timeout)

	for time.Now().Before(deadline) {
		db, err := sql.Open("postgres", dsn)
		if err == nil {
			err = db.Ping()
			_ = db.Close()
			if err == nil {
				return nil
			}
		}
		time.Sleep(500 * time.Millisecond)
	}
	return fmt.Errorf("postgres not ready on %s:%s after %s", host, port, timeout)
}

func TestMain(m *testing.M) {
	code := m.Run()
	os.Exit(code)
}

func TestPostgresWithFXModule(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	container, err := setupPostgresContainer(ctx)
	require.NoError(t, err)
	defer func() {
		if err := container.Terminate(ctx); err != nil {
			t.Fatalf("failed to terminate container: %s", err)
		}
	}()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockLogger := NewMockLogger(ctrl)

	// Override Fatal to prevent test termination
	mockLogger.EXPECT().Fatal(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(msg string, err error, fields ...map[string]interface{}) {
			t.Logf("FATAL: %s, Error: %v", msg, err)
		}).AnyTimes()

	mockLogger.EXPECT().Info(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Error(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Debug(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Warn(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()

	var db *Postgres

	app := fxtest.New(t,
		fx.Provide(
			func() Config {
				return container.Config
			},
			func() Logger {
				return mockLogger
			},
		),
		FXModule,
		fx.Populate(&db),
	)

	err = app.Start(ctx)
	require.NoError(t, err)
	defer app.RequireStop()

	require.NotNil(t, db)
	require.NotNil(t, db.Client)

	require.NoError(t, db.Client.AutoMigrate(&Invoice{}))

	seed := []Invoice{
		{Number: "A-1", State: "open"},
		{Number: "A-2", State: "overdue"},
		{Number: "A-3", State: "paid"},
		{Number: "A-4", State: "open"},
	}
	for i := range seed {
		require.NoError(t, db.Create(ctx, &seed[i]))
	}

	t.Run("Find", func(t *testing.T) {
		var invoices []Invoice
		err := db.Find(ctx, &invoices, "state = ?", "open")
		require.NoError(t, err)
		assert.Len(t, invoices, 2)
	})

	t.Run("FindConcatPreservesConditionOrder", func(t *testing.T) {
		invoices, err := FindConcat[Invoice](ctx, db,
			Condition{Query: "state = ?", Args: []any{"paid"}},
			Condition{Query: "state = ?", Args: []any{"overdue"}},
		)
		require.NoError(t, err)
		require.Len(t, invoices, 2)
		assert.Equal(t, "A-3", invoices[0].Number)
		assert.Equal(t, "A-2", invoices[1].Number)
	})

	t.Run("FindConcatNoConditions", func(t *testing.T) {
		invoices, err := FindConcat[Invoice](ctx, db)
		require.NoError(t, err)
		assert.Empty(t, invoices)
		assert.NotNil(t, invoices)
	})
}
