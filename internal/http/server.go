package http

import (
	"net/http"

	"github.com/SoMedNinja/padel-app-sub001/internal/availability"
	"github.com/SoMedNinja/padel-app-sub001/internal/club"
	"github.com/SoMedNinja/padel-app-sub001/internal/config"
	"github.com/SoMedNinja/padel-app-sub001/internal/http/handlers"
	"github.com/SoMedNinja/padel-app-sub001/internal/metrics"
	"github.com/SoMedNinja/padel-app-sub001/internal/notifier"
	"github.com/SoMedNinja/padel-app-sub001/internal/processor"
	"github.com/SoMedNinja/padel-app-sub001/internal/pubsub"
	"github.com/SoMedNinja/padel-app-sub001/internal/ranking"
)

// Deps bundles everything the server routes to.
type Deps struct {
	Store          club.ClubStore
	Polls          availability.Store
	Rankings       *ranking.Service
	Counters       metrics.MetricsStore
	MetricsHandler http.Handler
	Cfg            config.Config
	Notifier       notifier.Notifier
	Processor      *processor.Processor
	PubSub         pubsub.PubSubClient
}

func NewServer(d Deps) *Server {
	server := &Server{
		Store:          d.Store,
		Polls:          d.Polls,
		Rankings:       d.Rankings,
		Counters:       d.Counters,
		MetricsHandler: d.MetricsHandler,
		Cfg:            d.Cfg,
		Notifier:       d.Notifier,
		Processor:      d.Processor,
		Router:         http.NewServeMux(),
		pubsub:         d.PubSub,
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// e.g. Chain(s.MyHandler(), paramsMiddleware, authMiddleware)
	api := func(pattern string, h http.Handler) {
		s.Router.Handle(pattern, Chain(h, paramsMiddleware))
	}
	slackCmd := func(pattern string, h http.Handler) {
		s.Router.Handle(pattern, Chain(h, paramsMiddleware, slackVerifier(s.Cfg.Slack.SigningSecret)))
	}

	if s.MetricsHandler != nil {
		s.Router.Handle("/metrics", s.MetricsHandler)
	}
	api("GET /health", handlers.HealthCheckHandler())
	api("GET /stats", handlers.StatsHandler(s.Counters))

	api("GET /api/leaderboard", handlers.LeaderboardHandler(s.Rankings))
	api("GET /api/players/{id}", handlers.PlayerHandler(s.Rankings))
	api("GET /api/players/{id}/elo.png", handlers.EloChartHandler(s.Rankings))
	api("GET /api/recap", handlers.RecapHandler(s.Rankings))
	api("GET /api/recap/dates", handlers.MatchDatesHandler(s.Rankings))
	api("GET /api/highlight", handlers.HighlightHandler(s.Rankings))
	api("GET /api/mvp", handlers.MonthlyMVPHandler(s.Rankings))
	api("GET /api/rotation", handlers.RotationHandler(s.Rankings))
	api("GET /export/leaderboard.xlsx", handlers.LeaderboardExportHandler(s.Rankings))

	api("GET /api/profiles", handlers.ListProfilesHandler(s.Store))
	api("PUT /api/profiles/{id}", handlers.UpsertProfileHandler(s.Store, s.Rankings))
	api("PATCH /api/profiles/{id}", handlers.RenameProfileHandler(s.Store, s.Rankings))
	api("DELETE /api/profiles/{id}", handlers.DeactivateProfileHandler(s.Store, s.Rankings))

	api("GET /api/matches", handlers.ListMatchesHandler(s.Store))
	api("POST /api/matches", handlers.CreateMatchHandler(s.Store, s.Processor))
	api("PUT /api/matches/{id}", handlers.UpdateMatchHandler(s.Store, s.Processor))
	api("DELETE /api/matches/{id}", handlers.DeleteMatchHandler(s.Store, s.Processor))

	api("GET /api/tournaments", handlers.ListTournamentsHandler(s.Store))
	api("POST /api/tournaments", handlers.CreateTournamentHandler(s.Store))
	api("GET /api/tournaments/{id}", handlers.GetTournamentHandler(s.Store))
	api("GET /api/tournaments/{id}/plan", handlers.PlanHandler(s.Store))
	api("POST /api/tournaments/{id}/next", handlers.NextRoundHandler(s.Processor))
	api("POST /api/tournaments/{id}/rounds/{round}/score", handlers.ScoreRoundHandler(s.Store))
	api("POST /api/tournaments/{id}/complete", handlers.CompleteTournamentHandler(s.Store, s.Processor))

	api("GET /api/polls", handlers.ListPollsHandler(s.Polls))
	api("POST /api/polls", handlers.CreatePollHandler(s.Polls))
	api("GET /api/polls/{id}", handlers.GetPollHandler(s.Polls))
	api("POST /api/polls/{id}/votes", handlers.VoteHandler(s.Polls))
	api("DELETE /api/polls/{id}/votes", handlers.VoteHandler(s.Polls))
	api("POST /api/polls/{id}/close", handlers.ClosePollHandler(s.Polls))
	api("POST /api/polls/{id}/propose", handlers.ProposeHandler(s.Polls, s.Rankings, s.Notifier))

	api("POST /import", handlers.ImportHandler(s.Processor))
	api("POST /notify/recap", handlers.SendRecapHandler(s.pubsub))
	api("POST /notify/leaderboard", handlers.SendLeaderboardHandler(s.Rankings, s.Notifier))

	api("POST /pubsub/match-recorded", handlers.PushHandler(pubsub.EventMatchRecorded, s.Processor))
	api("POST /pubsub/recap-requested", handlers.PushHandler(pubsub.EventRecapRequested, s.Processor))
	api("POST /pubsub/round-proposed", handlers.PushHandler(pubsub.EventRoundProposed, s.Processor))

	slackCmd("POST /slack/command/leaderboard", handlers.LeaderboardCommandHandler(s.Rankings, s.Notifier))
	slackCmd("POST /slack/command/player", handlers.PlayerCommandHandler(s.Rankings, s.Notifier))
	slackCmd("POST /slack/command/recap", handlers.RecapCommandHandler(s.Rankings, s.Notifier))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
