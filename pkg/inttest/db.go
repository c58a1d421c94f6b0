package inttest

import (
	"io"
	"log/slog"
	"testing"

	"github.com/cuff-app/cuff/pkg/config"
	"github.com/cuff-app/cuff/pkg/storage"
	_ "github.com/lib/pq" // postgres driver
	"github.com/orlangure/gnomock"
	"github.com/orlangure/gnomock/preset/postgres"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const (
	dbUser     = "cuff"
	dbPassword = "cuff"
	dbName     = "test_cuff"
)

// SetupDB starts a throwaway PostgreSQL and returns a connection with the CUFF tables migrated.
func SetupDB(t *testing.T) *gorm.DB {
	t.Helper()

	container := startContainer(t, "PostgreSQL", postgres.Preset(
		postgres.WithUser(dbUser, dbPassword),
		postgres.WithDatabase(dbName),
	))

	db, err := storage.NewDatabase(slog.New(slog.NewTextHandler(io.Discard, nil)), config.Postgresql{
		Host:         container.Host,
		Port:         container.DefaultPort(),
		Username:     dbUser,
		Password:     dbPassword,
		DatabaseName: dbName,
	})
	require.NoError(t, err, "failed to migrate %s", dbName)
	return db
}

// startContainer starts preset and stops it once the test is done.
func startContainer(t *testing.T, name string, preset gnomock.Preset) *gnomock.Container {
	t.Helper()

	container, err := gnomock.Start(preset)
	require.NoError(t, err, "failed to start %s", name)
	t.Cleanup(func() {
		require.NoError(t, gnomock.Stop(container), "failed to stop %s", name)
	})
	return container
}
