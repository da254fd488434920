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
		RatingRecomputes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "padel_rating_recomputes_total",
			Help: "The total number of full rating replays.",
		}),
		MatchesRated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "padel_matches_rated_total",
			Help: "The total number of matches that moved ratings, summed over replays.",
		}),
		MatchesSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "padel_matches_skipped_total",
			Help: "The total number of invalid matches left out of replays.",
		}),
		RecomputeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "padel_rating_recompute_duration_seconds",
			Help:    "The duration of a full ranking snapshot rebuild.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		ImportRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "padel_playtomic_import_runs_total",
			Help: "The total number of times the Playtomic import has run.",
		}),
		SlackNotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "padel_slack_notifications_sent_total",
			Help: "The total number of Slack notifications successfully sent.",
		}),
		SlackNotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "padel_slack_notifications_failed_total",
			Help: "The total number of Slack notifications that failed to send.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "padel_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.RatingRecomputes,
		s.MatchesRated,
		s.MatchesSkipped,
		s.RecomputeDuration,
		s.ImportRuns,
		s.SlackNotifSent,
		s.SlackNotifFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncRatingRecomputes() {
	s.RatingRecomputes.Inc()
}

func (s *Service) AddMatchesRated(n int) {
	s.MatchesRated.Add(float64(n))
}

func (s *Service) AddMatchesSkipped(n int) {
	s.MatchesSkipped.Add(float64(n))
}

func (s *Service) ObserveRecomputeDuration(duration float64) {
	s.RecomputeDuration.Observe(duration)
}

func (s *Service) IncImportRuns() {
	s.ImportRuns.Inc()
}

func (s *Service) IncSlackNotifSent() {
	s.SlackNotifSent.Inc()
}

func (s *Service) IncSlackNotifFailed() {
	s.SlackNotifFailed.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
