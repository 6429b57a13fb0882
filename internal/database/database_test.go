package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDB_CreatesTables(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, teardown, err := InitDB(dbPath, "", "", "../../migrations")
	require.NoError(t, err, "InitDB should not return an error")
	defer teardown()

	tables := []string{
		"human_table",
		"club_table",
		"competition_table",
		"team_table",
		"player_table",
		"skillrating_table",
		"teammatch_table",
		"singlesmatch_table",
	}

	for _, table := range tables {
		var name string
		err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		require.NoError(t, err, "Querying for %s should not produce an error", table)
		assert.Equal(t, table, name, "The '%s' table should be created", table)
	}
}

func TestInitDB_IsIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	db, teardown, err := InitDB(dbPath, "", "", "../../migrations")
	require.NoError(t, err)
	_ = db
	teardown()

	// A second run over the same file applies no further migrations.
	db2, teardown2, err := InitDB(dbPath, "", "", "../../migrations")
	require.NoError(t, err)
	defer teardown2()

	var count int
	err = db2.QueryRow("SELECT COUNT(*) FROM singlesmatch_table").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}
