package playtomic

// SearchMatchesParams filters the match search.
type SearchMatchesParams struct {
	SportID       string
	HasPlayers    bool
	Sort          string
	TenantIDs     []string
	FromStartDate string
}

// MatchSummary is one search hit.
type MatchSummary struct {
	MatchID string
	OwnerID *string
}

// PadelMatch is the part of a Playtomic match the importer reads.
type PadelMatch struct {
	MatchID         string
	OwnerID         string
	Start           int64
	End             int64
	CreatedAt       int64
	Status          string
	GameStatus      GameStatus
	Teams           []Team
	Results         []SetResult
	ResultsStatus   ResultsStatus
	ResourceName    string
	Tenant          Tenant
	CompetitionType CompetitionType
}

// CompetitionType is "COMPETITIVE" or "FRIENDLY". Both are rated the same once imported.
type CompetitionType string

const Competition CompetitionType = "COMPETITIVE"

// GameStatus and ResultsStatus are Playtomic's free-form states. Only a played match with
// confirmed results is imported, everything else is skipped.
type (
	GameStatus    string
	ResultsStatus string
)

const (
	GameStatusPending       GameStatus    = "PENDING"
	GameStatusPlayed        GameStatus    = "PLAYED"
	ResultsStatusConfirmed  ResultsStatus = "CONFIRMED"
	ResultsStatusValidating ResultsStatus = "VALIDATING"
)

// Team is one side of a match.
type Team struct {
	ID         string
	Players    []Player
	TeamResult string
}

// Player is matched to a club profile by UserID, then by Name.
type Player struct {
	UserID string
	Name   string
	Level  float64
}

// SetResult holds one set's games, keyed by team id.
type SetResult struct {
	Name   string
	Scores map[string]int
}

type Tenant struct {
	ID   string
	Name string
}

// playtomicMatchResponse is the JSON body of GET /v1/matches/{id}.
type playtomicMatchResponse struct {
	OwnerID         string                  `json:"owner_id"`
	StartDate       string                  `json:"start_date"`
	EndDate         string                  `json:"end_date"`
	CreatedAt       string                  `json:"created_at"`
	Status          string                  `json:"status"`
	GameStatus      string                  `json:"game_status"`
	Teams           []playtomicTeamResponse `json:"teams"`
	Results         []playtomicResult       `json:"results"`
	ResultsStatus   string                  `json:"results_status"`
	ResourceName    string                  `json:"resource_name"`
	Tenant          playtomicTenant         `json:"tenant"`
	CompetitionType string                  `json:"competition_mode"`
}

type playtomicResult struct {
	Name   string               `json:"name"`
	Scores []playtomicTeamScore `json:"scores"`
}

type playtomicTeamScore struct {
	TeamID string `json:"team_id"`
	Score  int    `json:"score"`
}

type playtomicTenant struct {
	ID   string `json:"tenant_id"`
	Name string `json:"tenant_name"`
}

type playtomicTeamResponse struct {
	TeamID     string                    `json:"team_id"`
	Players    []playtomicPlayerResponse `json:"players"`
	TeamResult *string                   `json:"team_result"`
}

type playtomicPlayerResponse struct {
	UserID     string   `json:"user_id"`
	Name       string   `json:"name"`
	LevelValue *float64 `json:"level_value"`
}
