package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/fwojciec/askweb"
	"github.com/fwojciec/askweb/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDB_Open(t *testing.T) {
	t.Parallel()

	t.Run("creates schema on first open", func(t *testing.T) {
		t.Parallel()

		db := sqlite.NewDB(":memory:")
		require.NoError(t, db.Open())
		defer db.Close()

		ctx := context.Background()
		var count int
		require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM history").Scan(&count))
		assert.Zero(t, count)

		version, err := db.SchemaVersion(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, version)
	})

	t.Run("returns error for invalid path", func(t *testing.T) {
		t.Parallel()

		db := sqlite.NewDB("/nonexistent/path/db.sqlite")
		require.Error(t, db.Open())
	})

	t.Run("enables WAL mode for file-based databases", func(t *testing.T) {
		t.Parallel()

		db := sqlite.NewDB(filepath.Join(t.TempDir(), "test.db"))
		require.NoError(t, db.Open())
		defer db.Close()

		var journalMode string
		require.NoError(t, db.QueryRowContext(context.Background(), "PRAGMA journal_mode").Scan(&journalMode))
		assert.Equal(t, "wal", journalMode)
	})

	t.Run("keeps records across reopen", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "test.db")
		ctx := context.Background()

		db := sqlite.NewDB(path)
		require.NoError(t, db.Open())
		record := &askweb.QueryRecord{Question: "still there?"}
		require.NoError(t, sqlite.NewHistoryService(db).CreateRecord(ctx, record))
		require.NoError(t, db.Close())

		db = sqlite.NewDB(path)
		require.NoError(t, db.Open())
		defer db.Close()

		found, err := sqlite.NewHistoryService(db).FindRecordByID(ctx, record.ID)
		require.NoError(t, err)
		assert.Equal(t, "still there?", found.Question)

		version, err := db.SchemaVersion(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, version)
	})

	t.Run("refuses a newer schema", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "test.db")

		db := sqlite.NewDB(path)
		require.NoError(t, db.Open())
		_, err := db.ExecContext(context.Background(), "PRAGMA user_version = 99")
		require.NoError(t, err)
		require.NoError(t, db.Close())

		err = sqlite.NewDB(path).Open()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "newer than this program supports")
	})
}
