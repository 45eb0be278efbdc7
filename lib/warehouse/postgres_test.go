package warehouse

import (
	"context"
	"fmt"
	devenv "interview-harvest/dev/env"
	"interview-harvest/lib/question"
	"io"
	"log"
	"strings"
	"testing"

	"github.com/mazen160/go-random"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// postgresConfig prefers a server described in dev/.state/postgres.json5
// and otherwise starts a throwaway container.
func postgresConfig(t testing.TB) Config {
	t.Helper()
	ctx := context.Background()

	existing, err := devenv.GetStateConfig[devenv.PostgresTestConfig]("postgres.json5")
	if err == nil && existing.DSN != "" {
		suffix, err := random.String(6)
		require.NoError(t, err)
		return Config{
			Driver:   DriverPostgres,
			DSN:      existing.DSN,
			Password: existing.Password,
			Table:    "harvest_test_" + strings.ToLower(suffix),
		}
	}

	// suppress logging
	testcontainers.Logger = log.New(io.Discard, "", 0)

	pg, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		Started: true,
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "harvest",
				"POSTGRES_PASSWORD": "harvest",
				"POSTGRES_DB":       "harvest",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
		},
	})
	if err != nil {
		t.Skipf("postgres container unavailable: %v", err)
	}
	t.Cleanup(func() {
		pg.Terminate(context.Background())
	})

	host, err := pg.Host(ctx)
	require.NoError(t, err)
	port, err := pg.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	return Config{
		Driver:   DriverPostgres,
		DSN:      fmt.Sprintf("postgres://harvest@%s:%s/harvest?sslmode=disable", host, port.Port()),
		Password: "harvest",
	}
}

func TestPostgresMergeInsert(t *testing.T) {
	if testing.Short() {
		t.Skip("requires postgres")
	}
	ctx := context.Background()

	store, err := Open(ctx, postgresConfig(t))
	require.NoError(t, err)
	defer func() {
		store.DB().Exec("DROP TABLE IF EXISTS " + store.Table())
		store.Close()
	}()
	require.NoError(t, store.Setup(ctx))

	batch := []question.Record{
		record("Acme", "Reverse a linked list"),
		record("Acme", "Design a rate limiter"),
	}
	inserted, err := store.MergeInsert(ctx, batch)
	require.NoError(t, err)
	require.Equal(t, int64(2), inserted)

	inserted, err = store.MergeInsert(ctx, batch)
	require.NoError(t, err)
	require.Equal(t, int64(0), inserted)

	rows, err := store.SearchCompany(ctx, "ACME", 20)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "2024-03-09 14:30:05", rows[0].DateCollected)
}
