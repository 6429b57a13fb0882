package player

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
)

// New creates a new PlayerStore.
func New(db *sql.DB) PlayerStore {
	return &store{
		db: db,
	}
}

// ResolveIdentities returns every player identity owned by the given human.
// An unknown human is not an error, it resolves to an empty slice.
func (s *store) ResolveIdentities(humanID string) ([]Identity, error) {
	if humanID == "" {
		return nil, fmt.Errorf("human id must not be empty")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT h.name, p.id, p.association_id, cl.name
		FROM player_table AS p
		JOIN human_table AS h ON p.human = h.id
		LEFT JOIN club_table AS cl ON p.club = cl.id
		WHERE p.human = ?
	`, humanID)
	if err != nil {
		log.Error("Failed to query player identities", "error", err, "humanID", humanID)
		return nil, fmt.Errorf("failed to resolve identities: %w", err)
	}
	defer rows.Close()

	identities := []Identity{}
	for rows.Next() {
		var ident Identity
		var associationID, clubName sql.NullString
		if err := rows.Scan(&ident.HumanName, &ident.PlayerID, &associationID, &clubName); err != nil {
			log.Error("Failed to scan identity row", "error", err, "humanID", humanID)
			return nil, fmt.Errorf("failed to scan identity: %w", err)
		}
		ident.AssociationID = associationID.String
		ident.ClubName = clubName.String
		identities = append(identities, ident)
	}
	return identities, rows.Err()
}

// ResolveRatings returns every skill rating attached to the given identities,
// one row per (identity, competition) combination.
func (s *store) ResolveRatings(identities []Identity) ([]RatingRecord, error) {
	// A query with zero placeholders must never reach the database.
	ids := distinctPlayerIDs(identities)
	if len(ids) == 0 {
		return []RatingRecord{}, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT sr.rating_mu, sr.rating_sigma, c.name
		FROM skillrating_table AS sr
		JOIN competition_table AS c ON sr.competition = c.id
		WHERE sr.player IN (` + buildQuestionMarks(len(ids)) + `)`

	rows, err := s.db.Query(query, toAnySlice(ids)...)
	if err != nil {
		log.Error("Failed to query skill ratings", "error", err)
		return nil, fmt.Errorf("failed to resolve ratings: %w", err)
	}
	defer rows.Close()

	ratings := []RatingRecord{}
	for rows.Next() {
		var r RatingRecord
		if err := rows.Scan(&r.Mu, &r.Sigma, &r.Competition); err != nil {
			log.Error("Failed to scan rating row", "error", err)
			return nil, fmt.Errorf("failed to scan rating: %w", err)
		}
		ratings = append(ratings, r)
	}
	return ratings, rows.Err()
}

// ResolveMatches returns every singles match in which any of the given
// identities took part, as home or away player. Each match appears at most
// once, even when both sides of it are in the identity set.
func (s *store) ResolveMatches(identities []Identity) ([]MatchRecord, error) {
	ids := distinctPlayerIDs(identities)
	if len(ids) == 0 {
		return []MatchRecord{}, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	// The placeholder set is shared between both sides of the OR, so the
	// bind arguments are the id list twice.
	marks := buildQuestionMarks(len(ids))
	query := `
		SELECT DISTINCT m.id, hh.name, ah.name, hc.name, ac.name, m.result, ht.rank, awt.rank, tm.date
		FROM singlesmatch_table AS m
		JOIN player_table AS hp ON m.home_player = hp.id
		JOIN player_table AS ap ON m.away_player = ap.id
		JOIN human_table AS hh ON hp.human = hh.id
		JOIN human_table AS ah ON ap.human = ah.id
		LEFT JOIN club_table AS hc ON hp.club = hc.id
		LEFT JOIN club_table AS ac ON ap.club = ac.id
		LEFT JOIN teammatch_table AS tm ON m.team_match = tm.id
		LEFT JOIN team_table AS ht ON tm.home_team = ht.id
		LEFT JOIN team_table AS awt ON tm.away_team = awt.id
		WHERE m.home_player IN (` + marks + `) OR m.away_player IN (` + marks + `)`

	args := append(toAnySlice(ids), toAnySlice(ids)...)
	rows, err := s.db.Query(query, args...)
	if err != nil {
		log.Error("Failed to query matches", "error", err)
		return nil, fmt.Errorf("failed to resolve matches: %w", err)
	}
	defer rows.Close()

	matches := []MatchRecord{}
	for rows.Next() {
		var m MatchRecord
		var homeClub, awayClub, result, homeRank, awayRank, date sql.NullString
		if err := rows.Scan(&m.MatchID, &m.HomePlayer, &m.AwayPlayer, &homeClub, &awayClub, &result, &homeRank, &awayRank, &date); err != nil {
			log.Error("Failed to scan match row", "error", err)
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		m.HomeClub = homeClub.String
		m.AwayClub = awayClub.String
		m.Result = result.String
		m.HomeTeamRank = homeRank.String
		m.AwayTeamRank = awayRank.String
		m.Date = date.String
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

// Aggregate assembles the combined view for one human. Identity resolution
// runs first; ratings and matches have no dependency on each other and are
// resolved concurrently. Any query failure aborts the whole aggregate.
func (s *store) Aggregate(humanID string) (*Aggregate, error) {
	identities, err := s.ResolveIdentities(humanID)
	if err != nil {
		return nil, err
	}

	agg := &Aggregate{
		Identities: identities,
		Ratings:    []RatingRecord{},
		Matches:    []MatchRecord{},
	}
	if len(identities) == 0 {
		// A human without player identities is a valid, empty aggregate.
		return agg, nil
	}

	var wg sync.WaitGroup
	var ratingsErr, matchesErr error

	wg.Add(2)
	go func() {
		defer wg.Done()
		agg.Ratings, ratingsErr = s.ResolveRatings(identities)
	}()
	go func() {
		defer wg.Done()
		agg.Matches, matchesErr = s.ResolveMatches(identities)
	}()
	wg.Wait()

	if ratingsErr != nil {
		return nil, ratingsErr
	}
	if matchesErr != nil {
		return nil, matchesErr
	}
	return agg, nil
}

// ListPlayers returns the full player listing, every player joined to its
// human and club.
func (s *store) ListPlayers() ([]Listing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT p.id, h.id, h.name, p.association_id, cl.name
		FROM player_table AS p
		JOIN human_table AS h ON p.human = h.id
		LEFT JOIN club_table AS cl ON p.club = cl.id
		ORDER BY h.name
	`)
	if err != nil {
		log.Error("Failed to query player listing", "error", err)
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	defer rows.Close()

	listings := []Listing{}
	for rows.Next() {
		var l Listing
		var associationID, clubName sql.NullString
		if err := rows.Scan(&l.PlayerID, &l.HumanID, &l.HumanName, &associationID, &clubName); err != nil {
			log.Error("Failed to scan listing row", "error", err)
			return nil, fmt.Errorf("failed to scan listing: %w", err)
		}
		l.AssociationID = associationID.String
		l.ClubName = clubName.String
		listings = append(listings, l)
	}
	return listings, rows.Err()
}

// distinctPlayerIDs extracts the distinct player ids from an identity set.
// Placeholders and bind arguments are both derived from this one slice.
func distinctPlayerIDs(identities []Identity) []int64 {
	seen := make(map[int64]struct{}, len(identities))
	ids := make([]int64, 0, len(identities))
	for _, ident := range identities {
		if _, ok := seen[ident.PlayerID]; ok {
			continue
		}
		seen[ident.PlayerID] = struct{}{}
		ids = append(ids, ident.PlayerID)
	}
	return ids
}

// buildQuestionMarks is a helper to generate placeholders for IN queries.
func buildQuestionMarks(n int) string {
	if n <= 0 {
		return ""
	}
	marks := "?"
	for i := 1; i < n; i++ {
		marks += ",?"
	}
	return marks
}

// toAnySlice converts a slice of a specific type to a slice of any.
func toAnySlice[T any](s []T) []any {
	a := make([]any, len(s))
	for i, v := range s {
		a[i] = v
	}
	return a
}
