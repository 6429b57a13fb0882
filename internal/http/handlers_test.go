package http

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rhotertj/ndv-elo/internal/config"
	"github.com/rhotertj/ndv-elo/internal/database"
	"github.com/rhotertj/ndv-elo/internal/leaderboard"
	"github.com/rhotertj/ndv-elo/internal/metrics"
	"github.com/rhotertj/ndv-elo/internal/player"
	"github.com/rhotertj/ndv-elo/internal/recommend"
	"github.com/rhotertj/ndv-elo/internal/web"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestServer initializes a new server backed by a temporary database.
func setupTestServer(t *testing.T) (*Server, *sql.DB, func()) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, dbTeardown, err := database.InitDB(dbPath, "", "", "../../migrations")
	require.NoError(t, err)

	playerStore := player.New(db)
	leaderboardStore := leaderboard.New(db)
	recommender := recommend.New(db, playerStore)

	reg := prometheus.NewRegistry()
	metricsSvc := metrics.NewService(reg)
	metricsHandler := metrics.NewMetricsHandler(reg)

	renderer, err := web.NewRenderer()
	require.NoError(t, err)

	server := NewServer(playerStore, leaderboardStore, recommender, metricsSvc, metricsHandler, config.Config{Port: "8080"}, renderer)
	return server, db, dbTeardown
}

func seedTestData(t *testing.T, db *sql.DB) {
	t.Helper()

	stmts := []string{
		`INSERT INTO club_table (id, name) VALUES (1, 'DC Adler'), (2, 'DC Falken')`,
		`INSERT INTO human_table (id, name) VALUES ('H1', 'Alex Schmidt'), ('H2', 'Birgit Krause')`,
		`INSERT INTO player_table (id, human, club, association_id) VALUES
			(1, 'H1', 1, 'NDV-0001'),
			(2, 'H2', 2, 'NDV-0002')`,
		`INSERT INTO competition_table (id, name, association, year) VALUES (1, 'Dart Akademie', 'NDV', '2023-08-01')`,
		`INSERT INTO skillrating_table (player, competition, rating_mu, rating_sigma) VALUES
			(1, 1, 26, 2),
			(2, 1, 25, 1)`,
		`INSERT INTO singlesmatch_table (id, home_player, away_player, result, match_number) VALUES (1, 1, 2, '3:1', 1)`,
	}
	for _, stmt := range stmts {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}
}

func TestIndexHandler(t *testing.T) {
	server, _, teardown := setupTestServer(t)
	defer teardown()

	req := httptest.NewRequest("GET", "/", nil)
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "query-input")
}

func TestHealthCheckHandler(t *testing.T) {
	server, _, teardown := setupTestServer(t)
	defer teardown()

	req := httptest.NewRequest("GET", "/health", nil)
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "OK!", rr.Body.String())
}

func TestLeaderboardHandler(t *testing.T) {
	server, db, teardown := setupTestServer(t)
	defer teardown()
	seedTestData(t, db)

	// Hyphens in the path stand in for spaces, matching is case-insensitive.
	req := httptest.NewRequest("GET", "/leaderboard/dart-akademie/2023", nil)
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "Leaderboard - dart akademie (2023)")
	// Conservative ordering: Birgit (22) before Alex (20).
	assert.Less(t, strings.Index(body, "Birgit Krause"), strings.Index(body, "Alex Schmidt"))
}

func TestLeaderboardHandlerMeanMode(t *testing.T) {
	server, db, teardown := setupTestServer(t)
	defer teardown()
	seedTestData(t, db)

	req := httptest.NewRequest("GET", "/leaderboard/Dart-Akademie/2023?mode=mean", nil)
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Less(t, strings.Index(body, "Alex Schmidt"), strings.Index(body, "Birgit Krause"))
}

func TestLeaderboardHandlerFailureMapsTo404(t *testing.T) {
	server, db, teardown := setupTestServer(t)
	defer teardown()

	require.NoError(t, db.Close())

	req := httptest.NewRequest("GET", "/leaderboard/dart-akademie/2023", nil)
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	var payload map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &payload))
	assert.NotEmpty(t, payload["error"])
}

func TestPlayerListHandler(t *testing.T) {
	server, db, teardown := setupTestServer(t)
	defer teardown()
	seedTestData(t, db)

	req := httptest.NewRequest("GET", "/players/", nil)
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Alex Schmidt")
	assert.Contains(t, rr.Body.String(), "Birgit Krause")
}

func TestPlayerListHandlerFailureMapsTo400(t *testing.T) {
	server, db, teardown := setupTestServer(t)
	defer teardown()

	require.NoError(t, db.Close())

	req := httptest.NewRequest("GET", "/players/", nil)
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)

	// The error path must short-circuit with a structured body.
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	var payload map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &payload))
	assert.NotEmpty(t, payload["error"])
}

func TestPlayerHandler(t *testing.T) {
	server, db, teardown := setupTestServer(t)
	defer teardown()
	seedTestData(t, db)

	req := httptest.NewRequest("GET", "/players/H1", nil)
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "Alex Schmidt")
	assert.Contains(t, body, "Dart Akademie")
	assert.Contains(t, body, "3:1")
}

func TestPlayerHandlerUnknownHuman(t *testing.T) {
	server, db, teardown := setupTestServer(t)
	defer teardown()
	seedTestData(t, db)

	// An unknown token renders an empty aggregate page, not an error.
	req := httptest.NewRequest("GET", "/players/nobody", nil)
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRecommendHandler(t *testing.T) {
	server, db, teardown := setupTestServer(t)
	defer teardown()
	seedTestData(t, db)

	req := httptest.NewRequest("GET", "/recommend?q=alex", nil)
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var suggestions []recommend.Suggestion
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &suggestions))
	require.Len(t, suggestions, 1)
	assert.Equal(t, "Alex Schmidt", suggestions[0].PlayerName)
	assert.Equal(t, "NDV-0001", suggestions[0].AssociationID)
	assert.Equal(t, "DC Adler", suggestions[0].ClubName)
}

func TestQueryPlayerHandler(t *testing.T) {
	server, db, teardown := setupTestServer(t)
	defer teardown()
	seedTestData(t, db)

	req := httptest.NewRequest("GET", "/query_player?q=Alex+Schmidt+(NDV-0001)+%7C+DC+Adler", nil)
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var result recommend.QueryResult
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
	require.Len(t, result.LastMatches, 1)
	assert.Contains(t, result.LastMatches[0], "3:1")
}

func TestQueryPlayerHandlerBadQuery(t *testing.T) {
	server, db, teardown := setupTestServer(t)
	defer teardown()
	seedTestData(t, db)

	req := httptest.NewRequest("GET", "/query_player?q=gibberish", nil)
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestStaticAssetsServed(t *testing.T) {
	server, _, teardown := setupTestServer(t)
	defer teardown()

	req := httptest.NewRequest("GET", "/static/script.js", nil)
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "selectRecommendation")
}

