package pubsub

import (
	"time"

	"cloud.google.com/go/pubsub"
)

type client struct {
	client   *pubsub.Client
	teardown func()
}

// EventType represents the type of event/message sent via pubsub. It doubles as the topic name.
type EventType string

const (
	EventMatchRecorded  EventType = "match-recorded"
	EventRecapRequested EventType = "recap-requested"
	EventRoundProposed  EventType = "round-proposed"
)

// Match change kinds carried by EventMatchRecorded.
const (
	ActionCreated  = "created"
	ActionUpdated  = "updated"
	ActionDeleted  = "deleted"
	ActionImported = "imported"
)

// MatchRecorded is published after every write to the match history.
type MatchRecorded struct {
	MatchIDs []string  `msgpack:"match_ids"`
	Action   string    `msgpack:"action"`
	At       time.Time `msgpack:"at"`
}

// RecapRequested asks for the recap of one evening to be posted.
type RecapRequested struct {
	Date   string `msgpack:"date"`
	DryRun bool   `msgpack:"dry_run"`
}

// RoundProposed asks for the next tournament round to be generated and announced.
type RoundProposed struct {
	TournamentID string `msgpack:"tournament_id"`
	DryRun       bool   `msgpack:"dry_run"`
}
