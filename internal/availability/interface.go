package availability

// Store persists polls, their candidate days and the raw votes.
type Store interface {
	// CreatePoll creates an open poll with one entry per distinct day.
	CreatePoll(title, createdBy string, days []string) (*Poll, error)
	GetPoll(id string) (*Poll, error)
	ListPolls() ([]Poll, error)
	ClosePoll(id string) error

	// CastVote is idempotent; RetractVote of a missing vote is a no-op.
	CastVote(pollID, day, playerID string) error
	RetractVote(pollID, day, playerID string) error
	ListVotes(pollID string) ([]Vote, error)
}
