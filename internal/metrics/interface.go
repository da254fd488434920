package metrics

// Metrics defines the interface for collecting application metrics.
type Metrics interface {
	IncRatingRecomputes()
	AddMatchesRated(n int)
	AddMatchesSkipped(n int)
	ObserveRecomputeDuration(duration float64)
	IncImportRuns()
	IncSlackNotifSent()
	IncSlackNotifFailed()
	SetStartupTime(duration float64)
}

// MetricsStore persists activity counters that survive restarts.
type MetricsStore interface {
	Increment(key string)
	GetAll() (map[string]int, error)
}
