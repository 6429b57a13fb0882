package leaderboard_test

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/rhotertj/ndv-elo/internal/database"
	"github.com/rhotertj/ndv-elo/internal/leaderboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) (leaderboard.LeaderboardStore, *sql.DB, func()) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, dbTeardown, err := database.InitDB(dbPath, "", "", "../../migrations")
	require.NoError(t, err)

	store := leaderboard.New(db)
	return store, db, dbTeardown
}

// seedSeason inserts a competition where the conservative and mean orderings
// differ: Alex has the higher mean, Birgit the higher lower-bound estimate.
func seedSeason(t *testing.T, db *sql.DB) {
	t.Helper()

	stmts := []string{
		`INSERT INTO club_table (id, name) VALUES (1, 'DC Adler')`,
		`INSERT INTO human_table (id, name) VALUES ('H1', 'Alex Schmidt'), ('H2', 'Birgit Krause')`,
		`INSERT INTO player_table (id, human, club, association_id) VALUES
			(1, 'H1', 1, 'NDV-0001'),
			(2, 'H2', 1, 'NDV-0002')`,
		`INSERT INTO competition_table (id, name, association, year) VALUES
			(1, 'Dart Akademie', 'NDV', '2023-08-01'),
			(2, 'Dart Akademie', 'NDV', '2022-08-01')`,
		// Alex: mu 26, sigma 2 -> conservative 20. Birgit: mu 25, sigma 1 -> conservative 22.
		`INSERT INTO skillrating_table (player, competition, rating_mu, rating_sigma) VALUES
			(1, 1, 26, 2),
			(2, 1, 25, 1)`,
	}
	for _, stmt := range stmts {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}
}

func TestConservativeOrdering(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()
	seedSeason(t, db)

	entries, err := store.Conservative("Dart Akademie", "2023")
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "Birgit Krause", entries[0].PlayerName)
	assert.Equal(t, "Alex Schmidt", entries[1].PlayerName)
	assert.InDelta(t, 22.0, entries[0].Score, 1e-9)
	assert.InDelta(t, 20.0, entries[1].Score, 1e-9)
}

func TestByMeanOrdering(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()
	seedSeason(t, db)

	entries, err := store.ByMean("Dart Akademie", "2023")
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "Alex Schmidt", entries[0].PlayerName)
	assert.Equal(t, "Birgit Krause", entries[1].PlayerName)
	assert.InDelta(t, 26.0, entries[0].Score, 1e-9)
}

func TestCompetitionNameMatchIsCaseInsensitive(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()
	seedSeason(t, db)

	entries, err := store.Conservative("dart akademie", "2023")
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	entries, err = store.Conservative("DART AKADEMIE", "2023")
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestSeasonAnchorMatching(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()
	seedSeason(t, db)

	// All ratings are attached to the 2023 season.
	entries, err := store.Conservative("Dart Akademie", "2022")
	require.NoError(t, err)
	assert.Empty(t, entries)

	entries, err = store.Conservative("Dart Akademie", "2024")
	require.NoError(t, err)
	assert.Empty(t, entries)

	entries, err = store.Conservative("Dart Akademie", "2023")
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestEmptyResultIsNeverNil(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()
	seedSeason(t, db)

	entries, err := store.Conservative("No Such League", "2023")
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestAllTime(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()
	seedSeason(t, db)

	// Add an older, weaker rating for Alex; AllTime keeps the best one.
	_, err := db.Exec(`INSERT INTO skillrating_table (player, competition, rating_mu, rating_sigma) VALUES (1, 2, 15, 4)`)
	require.NoError(t, err)

	entries, err := store.AllTime()
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "Birgit Krause", entries[0].PlayerName)
	assert.InDelta(t, 20.0, entries[1].Score, 1e-9)
}
