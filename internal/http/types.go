package http

import (
	"net/http"

	"github.com/rhotertj/ndv-elo/internal/config"
	"github.com/rhotertj/ndv-elo/internal/leaderboard"
	"github.com/rhotertj/ndv-elo/internal/metrics"
	"github.com/rhotertj/ndv-elo/internal/player"
	"github.com/rhotertj/ndv-elo/internal/recommend"
	"github.com/rhotertj/ndv-elo/internal/web"
)

type Server struct {
	Players        player.PlayerStore
	Leaderboard    leaderboard.LeaderboardStore
	Recommender    recommend.Recommender
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Renderer       *web.Renderer
	Router         *http.ServeMux
}
