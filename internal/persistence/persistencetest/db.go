// Package persistencetest opens a migrated postgres database for repository tests.
package persistencetest

import (
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"inkwell/internal/config"
	"inkwell/internal/persistence"
)

const envDatabaseURL = "INKWELL_TEST_DATABASE_URL"

// Open skips the test unless INKWELL_TEST_DATABASE_URL is set. The returned
// database is migrated and emptied.
func Open(t *testing.T) *persistence.DB {
	t.Helper()

	url := os.Getenv(envDatabaseURL)
	if url == "" {
		t.Skipf("Skipping test - %s is not set", envDatabaseURL)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	db := &persistence.DB{Logger: logger, Config: &config.Config{DatabaseURL: url}}
	require.NoError(t, db.Init(t.Context()))
	t.Cleanup(func() {
		db.Shutdown(t.Context()) //nolint:errcheck
	})

	migrator := &persistence.Migrator{Logger: logger, DB: db}
	require.NoError(t, migrator.Init(t.Context()))
	require.NoError(t, migrator.Up(t.Context()))

	require.NoError(t, db.WithContext(t.Context()).
		Exec("TRUNCATE users, posts, comments, activity_logs").Error)

	return db
}
