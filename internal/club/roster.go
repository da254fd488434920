package club

import (
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// GuestID is the sentinel id every guest alias resolves to.
const GuestID = "guest"

// guestNameAliases is the explicit allow-list of legacy free-text guest names.
// Matching is case-insensitive; anything else is treated as a real name.
var guestNameAliases = []string{"gäst", "gästspelare", "guest", "guest player"}

var folder = cases.Fold()

func fold(name string) string {
	return folder.String(strings.TrimSpace(name))
}

// IsGuestAlias reports whether name is one of the known guest aliases.
func IsGuestAlias(name string) bool {
	folded := fold(name)
	for _, alias := range guestNameAliases {
		if folded == fold(alias) {
			return true
		}
	}
	return false
}

type rosterKind string

const (
	rosterIDs   rosterKind = "ids"
	rosterNames rosterKind = "names"
)

// TeamRoster is either a list of player ids or a legacy list of free-text names.
type TeamRoster struct {
	kind   rosterKind
	values []string
}

// IDRoster builds a roster from player ids.
func IDRoster(ids ...string) TeamRoster {
	return TeamRoster{kind: rosterIDs, values: compact(ids)}
}

// NameRoster builds a roster from legacy display names.
func NameRoster(names ...string) TeamRoster {
	return TeamRoster{kind: rosterNames, values: compact(names)}
}

// ParseNameRoster splits a comma-joined legacy roster.
func ParseNameRoster(joined string) TeamRoster {
	return NameRoster(strings.Split(joined, ",")...)
}

func compact(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// IsNames reports whether the roster holds names rather than ids.
func (r TeamRoster) IsNames() bool { return r.kind == rosterNames }

// Values returns a copy of the raw roster entries.
func (r TeamRoster) Values() []string {
	return append([]string(nil), r.values...)
}

// Empty reports whether the roster has no entries.
func (r TeamRoster) Empty() bool { return len(r.values) == 0 }

// Len is the number of roster entries, guests included.
func (r TeamRoster) Len() int { return len(r.values) }

type rosterJSON struct {
	Kind   rosterKind `json:"kind"`
	Values []string   `json:"values"`
}

func (r TeamRoster) MarshalJSON() ([]byte, error) {
	kind := r.kind
	if kind == "" {
		kind = rosterIDs
	}
	values := r.values
	if values == nil {
		values = []string{}
	}
	return json.Marshal(rosterJSON{Kind: kind, Values: values})
}

// UnmarshalJSON accepts the tagged form, a plain id array, or a comma-joined name string.
func (r *TeamRoster) UnmarshalJSON(data []byte) error {
	var tagged rosterJSON
	if err := json.Unmarshal(data, &tagged); err == nil && tagged.Kind != "" {
		switch tagged.Kind {
		case rosterIDs:
			*r = IDRoster(tagged.Values...)
		case rosterNames:
			*r = NameRoster(tagged.Values...)
		default:
			return fmt.Errorf("unknown roster kind %q", tagged.Kind)
		}
		return nil
	}
	var ids []string
	if err := json.Unmarshal(data, &ids); err == nil {
		*r = IDRoster(ids...)
		return nil
	}
	var joined string
	if err := json.Unmarshal(data, &joined); err == nil {
		*r = ParseNameRoster(joined)
		return nil
	}
	return fmt.Errorf("unsupported roster encoding: %s", string(data))
}

// NameIndex maps case-folded display names to profile ids.
type NameIndex struct {
	byName map[string]string
	known  map[string]bool
}

// NewNameIndex builds the index from the profile list. Deactivated profiles are
// included so historical rosters still resolve.
func NewNameIndex(profiles []Profile) *NameIndex {
	idx := &NameIndex{
		byName: make(map[string]string, len(profiles)),
		known:  make(map[string]bool, len(profiles)),
	}
	for _, p := range profiles {
		idx.known[p.ID] = true
		if p.Name != "" {
			if _, exists := idx.byName[fold(p.Name)]; !exists {
				idx.byName[fold(p.Name)] = p.ID
			}
		}
	}
	return idx
}

// Known reports whether id belongs to a profile.
func (idx *NameIndex) Known(id string) bool {
	return idx.known[id]
}

// Resolve maps a roster to ids. Guests and unresolved names come back as GuestID.
func (idx *NameIndex) Resolve(r TeamRoster) []string {
	out := make([]string, 0, len(r.values))
	for _, v := range r.values {
		if r.kind != rosterNames {
			if idx.known[v] {
				out = append(out, v)
			} else {
				out = append(out, GuestID)
			}
			continue
		}
		if IsGuestAlias(v) {
			out = append(out, GuestID)
			continue
		}
		if id, ok := idx.byName[fold(v)]; ok {
			out = append(out, id)
		} else {
			out = append(out, GuestID)
		}
	}
	return out
}

// ResolvedMatch is a match whose rosters have been mapped to profile ids.
type ResolvedMatch struct {
	Match
	// Team1IDs and Team2IDs hold rated players only.
	Team1IDs    []string
	Team2IDs    []string
	Team1Guests int
	Team2Guests int
}

// ResolveMatch resolves both rosters once.
func (idx *NameIndex) ResolveMatch(m Match) ResolvedMatch {
	rm := ResolvedMatch{Match: m}
	for _, id := range idx.Resolve(m.Team1) {
		if id == GuestID {
			rm.Team1Guests++
			continue
		}
		rm.Team1IDs = append(rm.Team1IDs, id)
	}
	for _, id := range idx.Resolve(m.Team2) {
		if id == GuestID {
			rm.Team2Guests++
			continue
		}
		rm.Team2IDs = append(rm.Team2IDs, id)
	}
	return rm
}

// Rateable reports whether the match can move ratings: both sides have a known
// player, the score is decisive and nobody appears twice.
func (rm ResolvedMatch) Rateable() bool {
	return len(rm.Team1IDs) > 0 && len(rm.Team2IDs) > 0 && rm.Outcome() != 0 && !rm.RepeatsPlayer()
}

// RepeatsPlayer reports whether a player id is listed more than once across both sides.
func (rm ResolvedMatch) RepeatsPlayer() bool {
	seen := make(map[string]bool, len(rm.Team1IDs)+len(rm.Team2IDs))
	for _, ids := range [][]string{rm.Team1IDs, rm.Team2IDs} {
		for _, id := range ids {
			if seen[id] {
				return true
			}
			seen[id] = true
		}
	}
	return false
}

// Side returns 1 or 2 when the player is on that side, 0 otherwise.
func (rm ResolvedMatch) Side(playerID string) int {
	for _, id := range rm.Team1IDs {
		if id == playerID {
			return 1
		}
	}
	for _, id := range rm.Team2IDs {
		if id == playerID {
			return 2
		}
	}
	return 0
}
