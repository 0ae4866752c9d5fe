package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-initiative/internal/errors"
	"github.com/KirkDiggler/rpg-initiative/internal/sqlite"
)

func TestOpenAppliesMigrationsOnce(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "campaign.db")

	db, err := sqlite.Open(ctx, path)
	require.NoError(t, err)

	var tables int
	require.NoError(t, db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM sqlite_master WHERE type = 'table' AND name IN ('character_status_types', 'players', 'npcs')`,
	).Scan(&tables))
	require.Equal(t, 3, tables)
	require.NoError(t, db.Close())

	// Reopening must not re-run or fail on already applied files
	db, err = sqlite.Open(ctx, path)
	require.NoError(t, err)
	defer db.Close()

	var applied int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(1) FROM schema_migrations`).Scan(&applied))
	require.Equal(t, 1, applied)
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := sqlite.Open(context.Background(), " ")
	require.Error(t, err)
}

func TestOpenMissingPathIsInvalidArgument(t *testing.T) {
	_, err := sqlite.Open(context.Background(), "")
	require.Error(t, err)
	require.True(t, errors.IsInvalidArgument(err))
}

func TestOpenUnwritableDirectoryIsInternal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "nested", "campaign.db")

	_, err := sqlite.Open(context.Background(), path)
	require.Error(t, err)
	require.True(t, errors.IsInternal(err))
	require.Contains(t, err.Error(), "sqlite:")
}
