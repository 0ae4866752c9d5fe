package testutils

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-initiative/internal/sqlite"
)

// CreateTestSQLiteDB opens a migrated campaign database in a temp directory
func CreateTestSQLiteDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "campaign.db"))
	require.NoError(t, err, "failed to open sqlite database")

	t.Cleanup(func() {
		_ = db.Close()
	})

	return db
}
