package processor

import (
	"time"

	"github.com/SoMedNinja/padel-app-sub001/internal/metrics"
	"github.com/SoMedNinja/padel-app-sub001/internal/notifier"
	"github.com/SoMedNinja/padel-app-sub001/internal/playtomic"
	"github.com/SoMedNinja/padel-app-sub001/internal/pubsub"
)

// ImportWindow is how far back the Playtomic import looks.
const ImportWindow = 7 * 24 * time.Hour

// Processor reacts to club events: recorded matches, imports, recaps and tournament rounds.
type Processor struct {
	store     Store
	ranking   Ranking
	notifier  notifier.Notifier
	metrics   metrics.Metrics
	counters  metrics.MetricsStore
	pubsub    pubsub.PubSubClient
	playtomic playtomic.PlaytomicClient
	tenantID  string
	now       func() time.Time
}

// ImportSummary reports one Playtomic import run.
type ImportSummary struct {
	Fetched  int      `json:"fetched"`
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	MatchIDs []string `json:"match_ids"`
	DryRun   bool     `json:"dry_run"`
}
