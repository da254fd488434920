package processor

import (
	"context"
	"fmt"
	"time"

	"github.com/SoMedNinja/padel-app-sub001/internal/club"
	"github.com/SoMedNinja/padel-app-sub001/internal/metrics"
	"github.com/SoMedNinja/padel-app-sub001/internal/notifier"
	"github.com/SoMedNinja/padel-app-sub001/internal/playtomic"
	"github.com/SoMedNinja/padel-app-sub001/internal/pubsub"
	"github.com/SoMedNinja/padel-app-sub001/internal/tournament"
	"github.com/charmbracelet/log"
)

// Deps bundles the processor's collaborators.
type Deps struct {
	Store     Store
	Ranking   Ranking
	Notifier  notifier.Notifier
	Metrics   metrics.Metrics
	Counters  metrics.MetricsStore
	PubSub    pubsub.PubSubClient
	Playtomic playtomic.PlaytomicClient
	TenantID  string
	Now       func() time.Time
}

// New creates a new Processor.
func New(d Deps) *Processor {
	now := d.Now
	if now == nil {
		now = time.Now
	}
	return &Processor{
		store:     d.Store,
		ranking:   d.Ranking,
		notifier:  d.Notifier,
		metrics:   d.Metrics,
		counters:  d.Counters,
		pubsub:    d.PubSub,
		playtomic: d.Playtomic,
		tenantID:  d.TenantID,
		now:       now,
	}
}

// PublishMatchRecorded announces a write to the match history. Publishing failures
// are logged; the write itself already succeeded.
func (p *Processor) PublishMatchRecorded(action string, matchIDs ...string) {
	evt := pubsub.MatchRecorded{MatchIDs: matchIDs, Action: action, At: p.now()}
	if err := p.pubsub.SendMessage(pubsub.EventMatchRecorded, evt); err != nil {
		log.Error("Failed to publish match event, invalidating directly", "error", err, "action", action)
		p.ranking.Invalidate()
	}
}

// HandleMatchRecorded drops the ranking snapshot so the next read replays the new history.
func (p *Processor) HandleMatchRecorded(evt pubsub.MatchRecorded) {
	log.Info("Match history changed", "action", evt.Action, "matches", len(evt.MatchIDs))
	p.ranking.Invalidate()
	if evt.Action == pubsub.ActionCreated {
		for range evt.MatchIDs {
			p.counters.Increment(metrics.KeyMatchesRecorded)
		}
	}
}

// HandleEvent decodes and dispatches one encoded event.
func (p *Processor) HandleEvent(ctx context.Context, topic pubsub.EventType, data []byte) error {
	switch topic {
	case pubsub.EventMatchRecorded:
		var evt pubsub.MatchRecorded
		if err := p.pubsub.ProcessMessage(data, &evt); err != nil {
			return err
		}
		p.HandleMatchRecorded(evt)
	case pubsub.EventRecapRequested:
		var evt pubsub.RecapRequested
		if err := p.pubsub.ProcessMessage(data, &evt); err != nil {
			return err
		}
		return p.SendRecap(evt.Date, evt.DryRun)
	case pubsub.EventRoundProposed:
		var evt pubsub.RoundProposed
		if err := p.pubsub.ProcessMessage(data, &evt); err != nil {
			return err
		}
		_, err := p.AnnounceNextRound(evt.TournamentID, evt.DryRun)
		return err
	default:
		log.Warn("Unknown event", "topic", topic)
	}
	return nil
}

// ImportPlaytomic pulls recently played matches and upserts the ones that convert
// to club matches.
func (p *Processor) ImportPlaytomic(ctx context.Context, dryRun bool) (ImportSummary, error) {
	p.metrics.IncImportRuns()
	summary := ImportSummary{DryRun: dryRun}

	params := &playtomic.SearchMatchesParams{
		SportID:       "PADEL",
		HasPlayers:    true,
		Sort:          "start_date,DESC",
		FromStartDate: p.now().Add(-ImportWindow).UTC().Format("2006-01-02T15:04:05"),
	}
	if p.tenantID != "" {
		params.TenantIDs = []string{p.tenantID}
	}
	found, err := p.playtomic.GetMatches(ctx, params)
	if err != nil {
		return summary, fmt.Errorf("failed to search playtomic matches: %w", err)
	}
	summary.Fetched = len(found)

	profiles, err := p.store.ListProfiles()
	if err != nil {
		return summary, fmt.Errorf("failed to load profiles: %w", err)
	}
	idx := club.NewNameIndex(profiles)

	var matches []club.Match
	for _, s := range found {
		pm, err := p.playtomic.GetSpecificMatch(ctx, s.MatchID)
		if err != nil {
			log.Error("Failed to fetch playtomic match", "error", err, "match_id", s.MatchID)
			summary.Skipped++
			continue
		}
		m, err := playtomic.ToClubMatch(pm, idx)
		if err != nil {
			log.Debug("Skipping playtomic match", "match_id", s.MatchID, "reason", err)
			summary.Skipped++
			continue
		}
		matches = append(matches, m)
		summary.MatchIDs = append(summary.MatchIDs, m.ID)
	}
	summary.Imported = len(matches)

	if dryRun {
		log.Info("[Dry Run] Would import playtomic matches", "count", len(matches))
		return summary, nil
	}
	if len(matches) == 0 {
		log.Info("No playtomic matches to import", "fetched", summary.Fetched)
		return summary, nil
	}
	if err := p.store.UpsertMatches(matches); err != nil {
		return summary, fmt.Errorf("failed to store imported matches: %w", err)
	}
	for range matches {
		p.counters.Increment(metrics.KeyMatchesImported)
	}
	p.PublishMatchRecorded(pubsub.ActionImported, summary.MatchIDs...)
	log.Info("Imported playtomic matches", "imported", summary.Imported, "skipped", summary.Skipped)
	return summary, nil
}

// SendRecap posts the recap of date, or of the latest evening when date is empty.
// Evenings without rated matches are skipped silently.
func (p *Processor) SendRecap(date string, dryRun bool) error {
	recap, err := p.ranking.Recap(date)
	if err != nil {
		return fmt.Errorf("failed to build recap: %w", err)
	}
	if recap == nil {
		log.Info("No rated matches for recap", "date", date)
		return nil
	}
	highlight, err := p.ranking.Highlight()
	if err != nil {
		return fmt.Errorf("failed to find highlight: %w", err)
	}
	if err := p.notifier.SendRecap(recap, highlight, dryRun); err != nil {
		return err
	}
	if !dryRun {
		p.counters.Increment(metrics.KeyRecapsSent)
	}
	return nil
}

// AnnounceNextRound generates, stores and announces the next round of a tournament.
func (p *Processor) AnnounceNextRound(tournamentID string, dryRun bool) (*club.TournamentRound, error) {
	t, err := p.store.GetTournament(tournamentID)
	if err != nil {
		return nil, err
	}
	if t.Status == club.TournamentCompleted {
		return nil, fmt.Errorf("tournament %s is completed", t.ID)
	}
	rounds, err := p.store.ListRounds(t.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load rounds: %w", err)
	}
	suggestion := tournament.GetNextSuggestion(rounds, t.Participants, t.Format)
	if suggestion == nil {
		return nil, tournament.ErrNotEnoughPlayers
	}
	round := suggestion.Round(t.ID)

	if dryRun {
		log.Info("[Dry Run] Would add round", "tournament_id", t.ID, "round", round.RoundNumber)
	} else if err := p.store.AddRound(&round); err != nil {
		return nil, err
	}

	names, err := p.ranking.Names()
	if err != nil {
		log.Error("Failed to load names for announcement", "error", err)
		names = nil
	}
	if err := p.notifier.SendRoundAnnouncement(*t, round, names, dryRun); err != nil {
		log.Error("Failed to announce round", "error", err, "tournament_id", t.ID)
	} else if !dryRun {
		p.counters.Increment(metrics.KeyRoundsAnnounced)
	}
	return &round, nil
}
