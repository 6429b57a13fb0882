package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		LeaderboardRequests: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ndv_leaderboard_requests_total",
			Help: "The total number of leaderboard page requests.",
		}),
		AggregateRequests: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ndv_player_aggregate_requests_total",
			Help: "The total number of player aggregate requests.",
		}),
		RecommendRequests: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ndv_recommend_requests_total",
			Help: "The total number of search suggestion requests.",
		}),
		AggregateDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "ndv_player_aggregate_duration_seconds",
			Help:    "The duration of assembling one player aggregate.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "ndv_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.LeaderboardRequests,
		s.AggregateRequests,
		s.RecommendRequests,
		s.AggregateDuration,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncLeaderboardRequests() {
	s.LeaderboardRequests.Inc()
}

func (s *Service) IncAggregateRequests() {
	s.AggregateRequests.Inc()
}

func (s *Service) IncRecommendRequests() {
	s.RecommendRequests.Inc()
}

func (s *Service) ObserveAggregateDuration(duration float64) {
	s.AggregateDuration.Observe(duration)
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
