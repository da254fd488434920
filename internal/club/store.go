package club

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// New creates a new ClubStore.
func New(db *sql.DB) ClubStore {
	return &store{
		db: db,
	}
}

type scanner interface{ Scan(...any) error }

// UpsertProfile inserts a profile or updates every field of an existing one.
func (s *store) UpsertProfile(profile Profile) error {
	return s.UpsertProfiles([]Profile{profile})
}

// UpsertProfiles writes all profiles in a single transaction.
func (s *store) UpsertProfiles(profiles []Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	stmt, err := tx.Prepare(`
		INSERT INTO profiles (id, name, avatar_url, is_admin, is_regular, is_approved, is_deleted, featured_badge_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			avatar_url = excluded.avatar_url,
			is_admin = excluded.is_admin,
			is_regular = excluded.is_regular,
			is_approved = excluded.is_approved,
			is_deleted = excluded.is_deleted,
			featured_badge_id = excluded.featured_badge_id;
	`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to prepare profile upsert: %w", err)
	}
	defer stmt.Close()

	for _, p := range profiles {
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		if _, err := stmt.Exec(p.ID, p.Name, p.AvatarURL, p.IsAdmin, p.IsRegular, p.IsApproved, p.IsDeleted, p.FeaturedBadgeID); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to upsert profile %s: %w", p.ID, err)
		}
	}
	return tx.Commit()
}

func (s *store) GetProfile(id string) (*Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`
		SELECT id, name, avatar_url, is_admin, is_regular, is_approved, is_deleted, featured_badge_id
		FROM profiles WHERE id = ?`, id)
	p, err := scanProfile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile %s: %w", id, err)
	}
	return p, nil
}

// ListProfiles returns every profile, deactivated ones included.
func (s *store) ListProfiles() ([]Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, name, avatar_url, is_admin, is_regular, is_approved, is_deleted, featured_badge_id
		FROM profiles ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	var profiles []Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			log.Error("Failed to scan profile row", "error", err)
			continue
		}
		profiles = append(profiles, *p)
	}
	return profiles, rows.Err()
}

func scanProfile(row scanner) (*Profile, error) {
	var p Profile
	var featured sql.NullString
	if err := row.Scan(&p.ID, &p.Name, &p.AvatarURL, &p.IsAdmin, &p.IsRegular, &p.IsApproved, &p.IsDeleted, &featured); err != nil {
		return nil, err
	}
	if featured.Valid {
		p.FeaturedBadgeID = &featured.String
	}
	return &p, nil
}

func (s *store) RenameProfile(id, name string) error {
	return s.execOne("UPDATE profiles SET name = ? WHERE id = ?", name, id)
}

// DeactivateProfile soft-deletes a profile. Its matches stay in the history.
func (s *store) DeactivateProfile(id string) error {
	return s.execOne("UPDATE profiles SET is_deleted = 1 WHERE id = ?", id)
}

// execOne runs a write that must touch exactly one row.
func (s *store) execOne(query string, args ...any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(query, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateMatch stores a new match, assigning an id and timestamp when missing.
func (s *store) CreateMatch(match *Match) error {
	if match.ID == "" {
		match.ID = uuid.NewString()
	}
	if match.CreatedAt.IsZero() {
		match.CreatedAt = time.Now()
	}
	if match.ScoreType == "" {
		match.ScoreType = ScoreTypeSets
	}
	return s.UpsertMatches([]Match{*match})
}

// UpsertMatches writes matches keyed by id, so re-importing the same match is a no-op.
func (s *store) UpsertMatches(matches []Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	stmt, err := tx.Prepare(`
		INSERT INTO matches (id, created_at, team1_json, team2_json, team1_score, team2_score, score_type, source_tournament_id, source_tournament_type)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			created_at = excluded.created_at,
			team1_json = excluded.team1_json,
			team2_json = excluded.team2_json,
			team1_score = excluded.team1_score,
			team2_score = excluded.team2_score,
			score_type = excluded.score_type,
			source_tournament_id = excluded.source_tournament_id,
			source_tournament_type = excluded.source_tournament_type;
	`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to prepare match upsert: %w", err)
	}
	defer stmt.Close()

	for _, m := range matches {
		args, err := matchArgs(m)
		if err != nil {
			tx.Rollback()
			return err
		}
		if _, err := stmt.Exec(args...); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to upsert match %s: %w", m.ID, err)
		}
	}
	return tx.Commit()
}

func matchArgs(m Match) ([]any, error) {
	team1, err := json.Marshal(m.Team1)
	if err != nil {
		return nil, fmt.Errorf("failed to encode team1 of match %s: %w", m.ID, err)
	}
	team2, err := json.Marshal(m.Team2)
	if err != nil {
		return nil, fmt.Errorf("failed to encode team2 of match %s: %w", m.ID, err)
	}
	scoreType := m.ScoreType
	if scoreType == "" {
		scoreType = ScoreTypeSets
	}
	return []any{
		m.ID,
		m.CreatedAt.UnixMilli(),
		string(team1),
		string(team2),
		nullInt(m.Team1Score),
		nullInt(m.Team2Score),
		scoreType,
		nullString(m.SourceTournamentID),
		nullString(string(m.SourceTournamentType)),
	}, nil
}

// UpdateMatch is the admin edit of an existing match.
func (s *store) UpdateMatch(match Match) error {
	args, err := matchArgs(match)
	if err != nil {
		return err
	}
	// Move the id from the front of the insert args to the WHERE clause.
	args = append(args[1:], args[0])
	return s.execOne(`
		UPDATE matches SET created_at = ?, team1_json = ?, team2_json = ?, team1_score = ?, team2_score = ?,
			score_type = ?, source_tournament_id = ?, source_tournament_type = ?
		WHERE id = ?`, args...)
}

func (s *store) DeleteMatch(id string) error {
	return s.execOne("DELETE FROM matches WHERE id = ?", id)
}

const matchColumns = `id, created_at, team1_json, team2_json, team1_score, team2_score, score_type, source_tournament_id, source_tournament_type`

func (s *store) GetMatch(id string) (*Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, err := scanMatch(s.db.QueryRow("SELECT "+matchColumns+" FROM matches WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get match %s: %w", id, err)
	}
	return m, nil
}

// ListMatches returns all matches in chronological order.
func (s *store) ListMatches() ([]Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT " + matchColumns + " FROM matches ORDER BY created_at, id")
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	defer rows.Close()

	var matches []Match
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			log.Error("Failed to scan match row", "error", err)
			continue
		}
		matches = append(matches, *m)
	}
	return matches, rows.Err()
}

func scanMatch(row scanner) (*Match, error) {
	var (
		m                      Match
		createdAt              int64
		team1JSON, team2JSON   string
		team1Score, team2Score sql.NullInt64
		sourceID, sourceType   sql.NullString
	)
	if err := row.Scan(&m.ID, &createdAt, &team1JSON, &team2JSON, &team1Score, &team2Score, &m.ScoreType, &sourceID, &sourceType); err != nil {
		return nil, err
	}
	m.CreatedAt = time.UnixMilli(createdAt).UTC()
	if err := json.Unmarshal([]byte(team1JSON), &m.Team1); err != nil {
		return nil, fmt.Errorf("failed to decode team1 of match %s: %w", m.ID, err)
	}
	if err := json.Unmarshal([]byte(team2JSON), &m.Team2); err != nil {
		return nil, fmt.Errorf("failed to decode team2 of match %s: %w", m.ID, err)
	}
	m.Team1Score = intPtr(team1Score)
	m.Team2Score = intPtr(team2Score)
	m.SourceTournamentID = sourceID.String
	m.SourceTournamentType = TournamentFormat(sourceType.String)
	return &m, nil
}

// CreateTournament stores a new tournament in draft state with a unique slug.
func (s *store) CreateTournament(t *Tournament) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	if t.Status == "" {
		t.Status = TournamentDraft
	}
	short := t.ID
	if len(short) > 8 {
		short = short[:8]
	}
	t.Slug = slug.Make(t.Name + " " + short)

	participants, err := json.Marshal(t.Participants)
	if err != nil {
		return fmt.Errorf("failed to encode participants: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	_, err = s.db.Exec(`
		INSERT INTO tournaments (id, name, slug, format, status, participants_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Name, t.Slug, t.Format, t.Status, string(participants), t.CreatedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to create tournament: %w", err)
	}
	return nil
}

const tournamentColumns = `id, name, slug, format, status, participants_json, created_at`

func (s *store) GetTournament(id string) (*Tournament, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, err := scanTournament(s.db.QueryRow("SELECT "+tournamentColumns+" FROM tournaments WHERE id = ? OR slug = ?", id, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tournament %s: %w", id, err)
	}
	return t, nil
}

func (s *store) ListTournaments() ([]Tournament, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT " + tournamentColumns + " FROM tournaments ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}
	defer rows.Close()

	var tournaments []Tournament
	for rows.Next() {
		t, err := scanTournament(rows)
		if err != nil {
			log.Error("Failed to scan tournament row", "error", err)
			continue
		}
		tournaments = append(tournaments, *t)
	}
	return tournaments, rows.Err()
}

func scanTournament(row scanner) (*Tournament, error) {
	var t Tournament
	var participants string
	var createdAt int64
	if err := row.Scan(&t.ID, &t.Name, &t.Slug, &t.Format, &t.Status, &participants, &createdAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(participants), &t.Participants); err != nil {
		return nil, fmt.Errorf("failed to decode participants of tournament %s: %w", t.ID, err)
	}
	t.CreatedAt = time.UnixMilli(createdAt).UTC()
	return &t, nil
}

// AddRound appends a round and moves a draft tournament to started.
func (s *store) AddRound(r *TournamentRound) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	team1, _ := json.Marshal(nonNil(r.Team1IDs))
	team2, _ := json.Marshal(nonNil(r.Team2IDs))
	resting, _ := json.Marshal(nonNil(r.RestingIDs))

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if r.RoundNumber == 0 {
		if err := tx.QueryRow("SELECT COALESCE(MAX(round_number), 0) + 1 FROM tournament_rounds WHERE tournament_id = ?", r.TournamentID).Scan(&r.RoundNumber); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to number round: %w", err)
		}
	}
	_, err = tx.Exec(`
		INSERT INTO tournament_rounds (id, tournament_id, round_number, mode, team1_json, team2_json, resting_json, team1_score, team2_score)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.TournamentID, r.RoundNumber, r.Mode, string(team1), string(team2), string(resting), nullInt(r.Team1Score), nullInt(r.Team2Score))
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to add round: %w", err)
	}
	if _, err := tx.Exec("UPDATE tournaments SET status = ? WHERE id = ? AND status = ?", TournamentStarted, r.TournamentID, TournamentDraft); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to start tournament: %w", err)
	}
	return tx.Commit()
}

// ScoreRound records a round's result. The round must belong to tournamentID.
func (s *store) ScoreRound(tournamentID, roundID string, team1Score, team2Score int) error {
	return s.execOne("UPDATE tournament_rounds SET team1_score = ?, team2_score = ? WHERE id = ? AND tournament_id = ?",
		team1Score, team2Score, roundID, tournamentID)
}

// ListRounds returns the rounds of a tournament ordered by round number.
func (s *store) ListRounds(tournamentID string) ([]TournamentRound, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, tournament_id, round_number, mode, team1_json, team2_json, resting_json, team1_score, team2_score
		FROM tournament_rounds WHERE tournament_id = ? ORDER BY round_number`, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list rounds: %w", err)
	}
	defer rows.Close()

	var rounds []TournamentRound
	for rows.Next() {
		var (
			r                      TournamentRound
			team1, team2, resting  string
			team1Score, team2Score sql.NullInt64
		)
		if err := rows.Scan(&r.ID, &r.TournamentID, &r.RoundNumber, &r.Mode, &team1, &team2, &resting, &team1Score, &team2Score); err != nil {
			log.Error("Failed to scan round row", "error", err)
			continue
		}
		if err := errors.Join(
			json.Unmarshal([]byte(team1), &r.Team1IDs),
			json.Unmarshal([]byte(team2), &r.Team2IDs),
			json.Unmarshal([]byte(resting), &r.RestingIDs),
		); err != nil {
			log.Error("Failed to decode round", "round_id", r.ID, "error", err)
			continue
		}
		r.Team1Score = intPtr(team1Score)
		r.Team2Score = intPtr(team2Score)
		rounds = append(rounds, r)
	}
	return rounds, rows.Err()
}

// CompleteTournament marks a tournament completed and replaces its results.
func (s *store) CompleteTournament(id string, results []TournamentResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	res, err := tx.Exec("UPDATE tournaments SET status = ? WHERE id = ?", TournamentCompleted, id)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to complete tournament: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		tx.Rollback()
		return ErrNotFound
	}
	if _, err := tx.Exec("DELETE FROM tournament_results WHERE tournament_id = ?", id); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to clear results: %w", err)
	}
	for _, r := range results {
		if _, err := tx.Exec("INSERT INTO tournament_results (tournament_id, format, player_id, rank) VALUES (?, ?, ?, ?)",
			id, r.Format, r.PlayerID, r.Rank); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert result for %s: %w", r.PlayerID, err)
		}
	}
	return tx.Commit()
}

func (s *store) ListTournamentResults() ([]TournamentResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT tournament_id, format, player_id, rank FROM tournament_results ORDER BY tournament_id, rank, player_id")
	if err != nil {
		return nil, fmt.Errorf("failed to list tournament results: %w", err)
	}
	defer rows.Close()

	var results []TournamentResult
	for rows.Next() {
		var r TournamentResult
		if err := rows.Scan(&r.TournamentID, &r.Format, &r.PlayerID, &r.Rank); err != nil {
			log.Error("Failed to scan tournament result row", "error", err)
			continue
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}

func nullString(v string) sql.NullString {
	return sql.NullString{String: v, Valid: v != ""}
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
