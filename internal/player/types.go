package player

import (
	"database/sql"
	"sync"
)

// store handles all database operations for player aggregation.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Identity is one competitive registration of a human within a club.
type Identity struct {
	HumanName     string `json:"human_name"`
	PlayerID      int64  `json:"player_id"`
	AssociationID string `json:"association_id"`
	ClubName      string `json:"club_name"`
}

// RatingRecord is a skill rating attached to one identity within one competition.
type RatingRecord struct {
	Mu          float64 `json:"rating_mu"`
	Sigma       float64 `json:"rating_sigma"`
	Competition string  `json:"competition"`
}

// MatchRecord describes a singles match from the perspective of both sides,
// including each side's team rank from the containing team match.
type MatchRecord struct {
	MatchID      int64  `json:"match_id"`
	HomePlayer   string `json:"home_player"`
	AwayPlayer   string `json:"away_player"`
	HomeClub     string `json:"home_club"`
	AwayClub     string `json:"away_club"`
	Result       string `json:"result"`
	HomeTeamRank string `json:"home_team_rank"`
	AwayTeamRank string `json:"away_team_rank"`
	Date         string `json:"date"`
}

// Aggregate is the combined view for one human: every identity they own,
// every rating attached to those identities and every match they played.
// The slices are never nil.
type Aggregate struct {
	Identities []Identity     `json:"player"`
	Ratings    []RatingRecord `json:"ratings"`
	Matches    []MatchRecord  `json:"matches"`
}

// Listing is one row of the full player listing, player joined to human.
type Listing struct {
	PlayerID      int64  `json:"player_id"`
	HumanID       string `json:"human_id"`
	HumanName     string `json:"human_name"`
	AssociationID string `json:"association_id"`
	ClubName      string `json:"club_name"`
}
