package leaderboard

import (
	"database/sql"
	"fmt"

	"github.com/charmbracelet/log"
)

// New creates a new LeaderboardStore.
func New(db *sql.DB) LeaderboardStore {
	return &store{
		db: db,
	}
}

const (
	scoreConservative = "sr.rating_mu - 3 * sr.rating_sigma"
	scoreMean         = "sr.rating_mu"
)

func (s *store) Conservative(competition, season string) ([]Entry, error) {
	return s.seasonLeaderboard(scoreConservative, competition, season)
}

func (s *store) ByMean(competition, season string) ([]Entry, error) {
	return s.seasonLeaderboard(scoreMean, competition, season)
}

// seasonLeaderboard ranks all players of one competition season by the given
// score expression, descending. The competition name is matched
// case-insensitively and the season year against the canonical
// start-of-season anchor date. Tie order is whatever SQLite returns.
func (s *store) seasonLeaderboard(scoreExpr, competition, season string) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT h.name, cl.name, sr.rating_mu, sr.rating_sigma, ` + scoreExpr + ` AS score
		FROM player_table AS p
		JOIN human_table AS h ON p.human = h.id
		JOIN skillrating_table AS sr ON sr.player = p.id
		JOIN competition_table AS c ON c.id = sr.competition
		LEFT JOIN club_table AS cl ON p.club = cl.id
		WHERE lower(c.name) = lower(?) AND date(c.year) = date(? || '-08-01')
		ORDER BY score DESC`

	rows, err := s.db.Query(query, competition, season)
	if err != nil {
		log.Error("Failed to query leaderboard", "error", err, "competition", competition, "season", season)
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// AllTime ranks every human by their best conservative rating across all
// competitions they ever played in.
func (s *store) AllTime() ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT h.name, cl.name, sr.rating_mu, sr.rating_sigma, MAX(sr.rating_mu - 3 * sr.rating_sigma) AS score
		FROM player_table AS p
		JOIN human_table AS h ON p.human = h.id
		JOIN skillrating_table AS sr ON sr.player = p.id
		LEFT JOIN club_table AS cl ON p.club = cl.id
		GROUP BY h.id
		ORDER BY score DESC
	`)
	if err != nil {
		log.Error("Failed to query alltime leaderboard", "error", err)
		return nil, fmt.Errorf("failed to query alltime leaderboard: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// scanEntries drains a leaderboard result set. The result is never nil,
// an empty result set scans to an empty slice.
func scanEntries(rows *sql.Rows) ([]Entry, error) {
	entries := []Entry{}
	for rows.Next() {
		var e Entry
		var clubName sql.NullString
		if err := rows.Scan(&e.PlayerName, &clubName, &e.Mu, &e.Sigma, &e.Score); err != nil {
			log.Error("Failed to scan leaderboard row", "error", err)
			return nil, fmt.Errorf("failed to scan leaderboard entry: %w", err)
		}
		e.ClubName = clubName.String
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
