package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_CreatesSchema(t *testing.T) {
	d, err := OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = CloseSQLite(d) })

	require.NoError(t, Migrate(d))
	for _, table := range []string{"scorecards", "innings", "batter_lines", "bowler_lines", "weather_snapshots"} {
		assert.True(t, d.Migrator().HasTable(table), "table %s", table)
	}

	// Running again is a no-op.
	require.NoError(t, Migrate(d))
}
