package leaderboard

import (
	"database/sql"
	"sync"
)

// store handles the leaderboard queries.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Entry is one ranked row of a leaderboard.
type Entry struct {
	PlayerName string  `json:"player_name"`
	ClubName   string  `json:"club_name"`
	Mu         float64 `json:"rating_mu"`
	Sigma      float64 `json:"rating_sigma"`
	Score      float64 `json:"score"`
}
