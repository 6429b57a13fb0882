package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/rhotertj/ndv-elo/internal/leaderboard"
	"github.com/rhotertj/ndv-elo/internal/player"
	"github.com/rhotertj/ndv-elo/internal/recommend"
)

// leaderboardView is the data passed to the leaderboard template.
type leaderboardView struct {
	Title   string
	Entries []leaderboard.Entry
}

// playerListView is the data passed to the player listing template.
type playerListView struct {
	Title   string
	Players []player.Listing
}

// playerView is the data passed to the player aggregate template.
type playerView struct {
	Title     string
	Aggregate *player.Aggregate
}

// indexView is the data passed to the search landing page template.
type indexView struct {
	Title string
}

func (s *Server) IndexHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.Renderer.Render(w, "index", indexView{Title: "NDV Elo"}); err != nil {
			log.Error("Failed to render index page", "error", err)
		}
	}
}

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

// LeaderboardHandler renders the ranked list for one competition season.
// Hyphens in the competition path segment stand in for spaces. The optional
// mode=mean query parameter switches from the conservative estimate to the
// raw rating mean.
func (s *Server) LeaderboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.Metrics.IncLeaderboardRequests()
		competition := strings.ReplaceAll(r.PathValue("competition"), "-", " ")
		season := r.PathValue("season")

		var entries []leaderboard.Entry
		var err error
		if r.URL.Query().Get("mode") == "mean" {
			entries, err = s.Leaderboard.ByMean(competition, season)
		} else {
			entries, err = s.Leaderboard.Conservative(competition, season)
		}
		if err != nil {
			log.Error("Failed to query leaderboard", "error", err, "competition", competition, "season", season)
			writeError(w, http.StatusNotFound, "leaderboard not available")
			return
		}

		view := leaderboardView{
			Title:   fmt.Sprintf("Leaderboard - %s (%s)", competition, season),
			Entries: entries,
		}
		if err := s.Renderer.Render(w, "leaderboard", view); err != nil {
			log.Error("Failed to render leaderboard", "error", err)
		}
	}
}

// AllTimeLeaderboardHandler renders the global leaderboard across all
// competitions.
func (s *Server) AllTimeLeaderboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.Metrics.IncLeaderboardRequests()
		entries, err := s.Leaderboard.AllTime()
		if err != nil {
			log.Error("Failed to query alltime leaderboard", "error", err)
			writeError(w, http.StatusNotFound, "leaderboard not available")
			return
		}

		view := leaderboardView{
			Title:   "Leaderboard - Alltime",
			Entries: entries,
		}
		if err := s.Renderer.Render(w, "leaderboard", view); err != nil {
			log.Error("Failed to render alltime leaderboard", "error", err)
		}
	}
}

// PlayerListHandler renders the full player listing.
func (s *Server) PlayerListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		players, err := s.Players.ListPlayers()
		if err != nil {
			log.Error("Failed to list players", "error", err)
			writeError(w, http.StatusBadRequest, "player listing not available")
			return
		}

		view := playerListView{
			Title:   "Player List",
			Players: players,
		}
		if err := s.Renderer.Render(w, "player_list", view); err != nil {
			log.Error("Failed to render player list", "error", err)
		}
	}
}

// PlayerHandler renders the aggregate view for one human: identities,
// ratings and matches.
func (s *Server) PlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.Metrics.IncAggregateRequests()
		token := r.PathValue("token")

		start := time.Now()
		agg, err := s.Players.Aggregate(token)
		if err != nil {
			log.Error("Failed to aggregate player", "error", err, "token", token)
			writeError(w, http.StatusBadRequest, "player not available")
			return
		}
		s.Metrics.ObserveAggregateDuration(time.Since(start).Seconds())

		title := token
		if len(agg.Identities) > 0 {
			title = agg.Identities[0].HumanName
		}
		view := playerView{
			Title:     title,
			Aggregate: agg,
		}
		if err := s.Renderer.Render(w, "player", view); err != nil {
			log.Error("Failed to render player", "error", err, "token", token)
		}
	}
}

// RecommendHandler answers search box queries with suggestion records.
func (s *Server) RecommendHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.Metrics.IncRecommendRequests()
		q := r.URL.Query().Get("q")

		suggestions, err := s.Recommender.Suggest(q, recommend.DefaultLimit)
		if err != nil {
			log.Error("Failed to fetch suggestions", "error", err, "q", q)
			writeError(w, http.StatusInternalServerError, "suggestions not available")
			return
		}
		writeJSON(w, suggestions)
	}
}

// QueryPlayerHandler resolves a selected suggestion to the player's last
// matches.
func (s *Server) QueryPlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("q")

		result, err := s.Recommender.LastMatches(q)
		if err != nil {
			log.Error("Failed to query player", "error", err, "q", q)
			writeError(w, http.StatusBadRequest, "player query not available")
			return
		}
		writeJSON(w, result)
	}
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]string{"error": msg}); err != nil {
		log.Error("Failed to encode error response", "error", err)
	}
}
