package recommend

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/rhotertj/ndv-elo/internal/player"
)

// MinQueryLen is the minimum number of characters before a query is
// answered with suggestions.
const MinQueryLen = 2

// DefaultLimit caps the number of suggestions returned for one query.
const DefaultLimit = 10

// New creates a new Recommender.
func New(db *sql.DB, players player.PlayerStore) Recommender {
	return &service{
		db:      db,
		players: players,
	}
}

// Suggest performs a case-insensitive fuzzy search over player names,
// association ids and club names. Queries shorter than MinQueryLen return
// an empty result without touching the database.
func (s *service) Suggest(q string, limit int) ([]Suggestion, error) {
	if len(q) < MinQueryLen {
		return []Suggestion{}, nil
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	pattern := "%" + q + "%"
	rows, err := s.db.Query(`
		SELECT DISTINCT h.name, p.association_id, cl.name
		FROM player_table AS p
		JOIN human_table AS h ON p.human = h.id
		LEFT JOIN club_table AS cl ON p.club = cl.id
		WHERE h.name LIKE ? COLLATE NOCASE
			OR p.association_id LIKE ? COLLATE NOCASE
			OR cl.name LIKE ? COLLATE NOCASE
		ORDER BY h.name
		LIMIT ?
	`, pattern, pattern, pattern, limit)
	if err != nil {
		log.Error("Failed to query suggestions", "error", err, "q", q)
		return nil, fmt.Errorf("failed to query suggestions: %w", err)
	}
	defer rows.Close()

	suggestions := []Suggestion{}
	for rows.Next() {
		var sg Suggestion
		var associationID, clubName sql.NullString
		if err := rows.Scan(&sg.PlayerName, &associationID, &clubName); err != nil {
			log.Error("Failed to scan suggestion row", "error", err)
			return nil, fmt.Errorf("failed to scan suggestion: %w", err)
		}
		sg.AssociationID = associationID.String
		sg.ClubName = clubName.String
		suggestions = append(suggestions, sg)
	}
	return suggestions, rows.Err()
}

// LastMatches resolves a selected suggestion back to a human and renders
// their most recent matches as display strings.
func (s *service) LastMatches(q string) (*QueryResult, error) {
	name, err := parseSuggestion(q)
	if err != nil {
		return nil, err
	}

	humanID, err := s.humanIDByName(name)
	if err != nil {
		return nil, err
	}

	agg, err := s.players.Aggregate(humanID)
	if err != nil {
		return nil, err
	}

	matches := agg.Matches
	if len(matches) > DefaultLimit {
		matches = matches[len(matches)-DefaultLimit:]
	}

	result := &QueryResult{LastMatches: []string{}}
	for _, m := range matches {
		result.LastMatches = append(result.LastMatches, formatMatch(m))
	}
	return result, nil
}

func (s *service) humanIDByName(name string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var humanID string
	err := s.db.QueryRow("SELECT id FROM human_table WHERE name = ? LIMIT 1", name).Scan(&humanID)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", fmt.Errorf("no player found for %q", name)
		}
		log.Error("Failed to resolve human by name", "error", err, "name", name)
		return "", fmt.Errorf("failed to resolve human: %w", err)
	}
	return humanID, nil
}

// parseSuggestion extracts the player name from a suggestion string of the
// form "Name (ASSOC) | Club".
func parseSuggestion(q string) (string, error) {
	if !strings.Contains(q, "|") {
		return "", fmt.Errorf("unsupported query %q", q)
	}
	name := q
	if idx := strings.LastIndex(name, "("); idx > 0 {
		name = name[:idx]
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("unsupported query %q", q)
	}
	return name, nil
}

func formatMatch(m player.MatchRecord) string {
	line := fmt.Sprintf("%s %s %s", m.HomePlayer, m.Result, m.AwayPlayer)
	if m.Date != "" {
		line = fmt.Sprintf("%s @ %s", line, m.Date)
	}
	return line
}
