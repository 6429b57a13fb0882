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

func NewServer(players player.PlayerStore, lb leaderboard.LeaderboardStore, recommender recommend.Recommender, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config, renderer *web.Renderer) *Server {
	server := &Server{
		Players:        players,
		Leaderboard:    lb,
		Recommender:    recommender,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Renderer:       renderer,
		Router:         http.NewServeMux(),
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("GET /{$}", Chain(s.IndexHandler(), paramsMiddleware))
	s.Router.Handle("GET /health", Chain(s.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("GET /leaderboard/{$}", Chain(s.AllTimeLeaderboardHandler(), paramsMiddleware))
	s.Router.Handle("GET /leaderboard/{competition}/{season}", Chain(s.LeaderboardHandler(), paramsMiddleware))
	s.Router.Handle("GET /players/{$}", Chain(s.PlayerListHandler(), paramsMiddleware))
	s.Router.Handle("GET /players/{token}", Chain(s.PlayerHandler(), paramsMiddleware))
	s.Router.Handle("GET /recommend", Chain(s.RecommendHandler(), paramsMiddleware))
	s.Router.Handle("GET /query_player", Chain(s.QueryPlayerHandler(), paramsMiddleware))
	s.Router.Handle("GET /static/", http.StripPrefix("/static/", web.StaticHandler()))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
