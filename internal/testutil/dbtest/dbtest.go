// Package dbtest starts a throwaway PostgreSQL for repository tests.
package dbtest

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/udisondev/rptrunk/internal/db"
)

// PostgresImage is the server version the schema is tested against.
const PostgresImage = "postgres:16-alpine"

// SetupTestDB поднимает PostgreSQL в testcontainer, накатывает схему
// тем же db.RunMigrations, что и симулятор, и возвращает pool.
// Требует Docker; в режиме -short тест пропускается.
func SetupTestDB(tb testing.TB) *pgxpool.Pool {
	tb.Helper()
	if testing.Short() {
		tb.Skip("skipping PostgreSQL test in short mode")
	}
	ctx := context.Background()

	container, err := postgres.Run(ctx, PostgresImage,
		postgres.WithDatabase("rptrunk_test"),
		postgres.WithUsername("rptrunk"),
		postgres.WithPassword("rptrunk"),
		postgres.BasicWaitStrategies(),
	)
	require.NoError(tb, err, "starting %s", PostgresImage)
	tb.Cleanup(func() {
		if err := testcontainers.TerminateContainer(container); err != nil {
			tb.Logf("terminating postgres container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(tb, err, "container DSN")

	require.NoError(tb, db.RunMigrations(ctx, dsn), "applying migrations")

	database, err := db.New(ctx, dsn)
	require.NoError(tb, err, "connecting to %s", dsn)
	tb.Cleanup(database.Close)

	return database.Pool()
}
