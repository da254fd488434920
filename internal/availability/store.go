package availability

import (
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/SoMedNinja/padel-app-sub001/internal/club"
	"github.com/SoMedNinja/padel-app-sub001/internal/timeutil"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// NewStore creates a new availability store.
func NewStore(db *sql.DB) Store {
	return &store{
		db: db,
	}
}

// CreatePoll creates a poll and its candidate days in one transaction.
func (s *store) CreatePoll(title, createdBy string, days []string) (*Poll, error) {
	var clean []string
	for _, d := range days {
		if _, err := timeutil.ParseDay(d, time.UTC); err != nil {
			return nil, fmt.Errorf("invalid day %q: %w", d, err)
		}
		if !slices.Contains(clean, d) {
			clean = append(clean, d)
		}
	}
	if len(clean) == 0 {
		return nil, errors.New("a poll needs at least one day")
	}
	slices.Sort(clean)

	s.mu.Lock()
	defer s.mu.Unlock()

	poll := &Poll{
		ID:        uuid.NewString(),
		Title:     title,
		CreatedBy: createdBy,
		Status:    PollOpen,
		CreatedAt: time.Now(),
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO availability_polls (id, title, created_by, status, created_at) VALUES (?, ?, ?, ?, ?)`,
		poll.ID, poll.Title, poll.CreatedBy, string(poll.Status), poll.CreatedAt.UnixMilli())
	if err != nil {
		return nil, fmt.Errorf("failed to create poll: %w", err)
	}
	for _, d := range clean {
		day := Day{ID: uuid.NewString(), PollID: poll.ID, Day: d}
		if _, err := tx.Exec(`INSERT INTO availability_days (id, poll_id, day) VALUES (?, ?, ?)`, day.ID, day.PollID, day.Day); err != nil {
			return nil, fmt.Errorf("failed to add day %s: %w", d, err)
		}
		poll.Days = append(poll.Days, day)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit poll: %w", err)
	}

	log.Info("Created availability poll", "id", poll.ID, "title", title, "days", len(poll.Days))
	return poll, nil
}

// GetPoll retrieves a poll with its days, or club.ErrNotFound.
func (s *store) GetPoll(id string) (*Poll, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getPoll(id)
}

func (s *store) getPoll(id string) (*Poll, error) {
	var (
		poll      Poll
		status    string
		createdAt int64
	)
	err := s.db.QueryRow(`SELECT id, title, created_by, status, created_at FROM availability_polls WHERE id = ?`, id).
		Scan(&poll.ID, &poll.Title, &poll.CreatedBy, &status, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, club.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get poll: %w", err)
	}
	poll.Status = PollStatus(status)
	poll.CreatedAt = time.UnixMilli(createdAt)

	rows, err := s.db.Query(`SELECT id, poll_id, day FROM availability_days WHERE poll_id = ? ORDER BY day`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query poll days: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var d Day
		if err := rows.Scan(&d.ID, &d.PollID, &d.Day); err != nil {
			return nil, fmt.Errorf("failed to scan poll day: %w", err)
		}
		poll.Days = append(poll.Days, d)
	}
	return &poll, rows.Err()
}

// ListPolls returns all polls, newest first, without their days.
func (s *store) ListPolls() ([]Poll, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`SELECT id, title, created_by, status, created_at FROM availability_polls ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query polls: %w", err)
	}
	defer rows.Close()

	var polls []Poll
	for rows.Next() {
		var (
			p         Poll
			status    string
			createdAt int64
		)
		if err := rows.Scan(&p.ID, &p.Title, &p.CreatedBy, &status, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan poll: %w", err)
		}
		p.Status = PollStatus(status)
		p.CreatedAt = time.UnixMilli(createdAt)
		polls = append(polls, p)
	}
	return polls, rows.Err()
}

// ClosePoll stops a poll from accepting votes.
func (s *store) ClosePoll(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`UPDATE availability_polls SET status = ? WHERE id = ?`, string(PollClosed), id)
	if err != nil {
		return fmt.Errorf("failed to close poll: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return club.ErrNotFound
	}
	log.Info("Closed availability poll", "id", id)
	return nil
}

func (s *store) openDay(pollID, day string) (string, error) {
	poll, err := s.getPoll(pollID)
	if err != nil {
		return "", err
	}
	if poll.Status != PollOpen {
		return "", ErrPollClosed
	}
	for _, d := range poll.Days {
		if d.Day == day {
			return d.ID, nil
		}
	}
	return "", fmt.Errorf("day %s is not part of poll %s: %w", day, pollID, club.ErrNotFound)
}

// CastVote records that playerID can play on day.
func (s *store) CastVote(pollID, day, playerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dayID, err := s.openDay(pollID, day)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`INSERT INTO availability_votes (day_id, player_id, created_at) VALUES (?, ?, ?) ON CONFLICT(day_id, player_id) DO NOTHING`,
		dayID, playerID, time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to cast vote: %w", err)
	}
	log.Debug("Vote cast", "poll_id", pollID, "day", day, "player_id", playerID)
	return nil
}

// RetractVote removes playerID's vote for day.
func (s *store) RetractVote(pollID, day, playerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dayID, err := s.openDay(pollID, day)
	if err != nil {
		return err
	}
	if _, err := s.db.Exec(`DELETE FROM availability_votes WHERE day_id = ? AND player_id = ?`, dayID, playerID); err != nil {
		return fmt.Errorf("failed to retract vote: %w", err)
	}
	log.Debug("Vote retracted", "poll_id", pollID, "day", day, "player_id", playerID)
	return nil
}

// ListVotes returns every raw vote of a poll in casting order.
func (s *store) ListVotes(pollID string) ([]Vote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT v.day_id, v.player_id, v.created_at
		FROM availability_votes v
		JOIN availability_days d ON d.id = v.day_id
		WHERE d.poll_id = ?
		ORDER BY v.created_at, v.player_id
	`, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to query votes: %w", err)
	}
	defer rows.Close()

	var votes []Vote
	for rows.Next() {
		var (
			v         Vote
			createdAt int64
		)
		if err := rows.Scan(&v.DayID, &v.PlayerID, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan vote: %w", err)
		}
		v.CreatedAt = time.UnixMilli(createdAt)
		votes = append(votes, v)
	}
	return votes, rows.Err()
}
