package club

// ClubStore defines the interface for interacting with the club's data.
type ClubStore interface {
	UpsertProfile(profile Profile) error
	UpsertProfiles(profiles []Profile) error
	GetProfile(id string) (*Profile, error)
	ListProfiles() ([]Profile, error)
	RenameProfile(id, name string) error
	DeactivateProfile(id string) error

	CreateMatch(match *Match) error
	UpsertMatches(matches []Match) error
	UpdateMatch(match Match) error
	DeleteMatch(id string) error
	GetMatch(id string) (*Match, error)
	ListMatches() ([]Match, error)

	CreateTournament(tournament *Tournament) error
	GetTournament(id string) (*Tournament, error)
	ListTournaments() ([]Tournament, error)
	AddRound(round *TournamentRound) error
	ScoreRound(tournamentID, roundID string, team1Score, team2Score int) error
	ListRounds(tournamentID string) ([]TournamentRound, error)
	CompleteTournament(id string, results []TournamentResult) error
	ListTournamentResults() ([]TournamentResult, error)
}
