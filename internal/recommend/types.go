package recommend

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/rhotertj/ndv-elo/internal/player"
)

// service answers search box queries against the league database.
type service struct {
	db      *sql.DB
	players player.PlayerStore
	mu      sync.RWMutex
}

// Suggestion is one autocomplete entry for the search box.
type Suggestion struct {
	PlayerName    string `json:"player_name"`
	AssociationID string `json:"association_id"`
	ClubName      string `json:"club_name"`
}

// String renders the suggestion the way the search box displays it. The
// "|" separator doubles as the query-type marker the UI dispatches on.
func (s Suggestion) String() string {
	return fmt.Sprintf("%s (%s) | %s", s.PlayerName, s.AssociationID, s.ClubName)
}

// QueryResult is the payload of a follow-up player query.
type QueryResult struct {
	LastMatches []string `json:"last_matches"`
}
