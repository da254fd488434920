package availability

import (
	"database/sql"
	"errors"
	"sync"
	"time"

	"github.com/SoMedNinja/padel-app-sub001/internal/rotation"
)

// ErrNotEnoughPlayers is returned when no candidate day has a full court.
var ErrNotEnoughPlayers = errors.New("not enough players available")

// ErrPollClosed is returned when voting on a closed poll.
var ErrPollClosed = errors.New("poll is closed")

// MinPlayers is a full doubles court.
const MinPlayers = 4

// store handles database operations for availability polls.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// PollStatus tracks whether a poll still accepts votes.
type PollStatus string

const (
	PollOpen   PollStatus = "open"
	PollClosed PollStatus = "closed"
)

// Poll asks players which of a set of days they can play.
type Poll struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	CreatedBy string     `json:"created_by"`
	Status    PollStatus `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	Days      []Day      `json:"days"`
}

// Day is one candidate calendar day of a poll.
type Day struct {
	ID     string `json:"id"`
	PollID string `json:"poll_id"`
	Day    string `json:"day"` // YYYY-MM-DD
}

// Vote marks a player as available on a day.
type Vote struct {
	DayID     string    `json:"day_id"`
	PlayerID  string    `json:"player_id"`
	CreatedAt time.Time `json:"created_at"`
}

// DaySummary is one day's evaluated turnout.
type DaySummary struct {
	DayID  string   `json:"day_id"`
	Day    string   `json:"day"`
	Voters []string `json:"voters"`
	Count  int      `json:"count"`
}

// Proposal is a balanced set of games for the best day.
type Proposal struct {
	PollID   string            `json:"poll_id"`
	Day      string            `json:"day"`
	Voters   []string          `json:"voters"`
	Schedule rotation.Schedule `json:"schedule"`
}
