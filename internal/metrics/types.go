package metrics

import "github.com/prometheus/client_golang/prometheus"

// Persisted counter keys.
const (
	KeyMatchesRecorded  = "matches_recorded"
	KeyMatchesImported  = "matches_imported"
	KeyRecapsSent       = "recaps_sent"
	KeyRoundsAnnounced  = "rounds_announced"
	KeySlashCommandsRun = "slash_commands_run"
)

// Service holds all the Prometheus metrics for the application.
type Service struct {
	RatingRecomputes   prometheus.Counter
	MatchesRated       prometheus.Counter
	MatchesSkipped     prometheus.Counter
	RecomputeDuration  prometheus.Histogram
	ImportRuns         prometheus.Counter
	SlackNotifSent     prometheus.Counter
	SlackNotifFailed   prometheus.Counter
	StartupTimeSeconds prometheus.Gauge
}
