package toa

import (
	"encoding/json"
	"fmt"
)

// Season identifies an FTC competition year. The set is closed: a season the
// API starts serving must be added here before the client can decode it.
type Season int

const (
	SeasonUnspecified Season = iota
	Season1415
	Season1516
	Season1617
	Season1718
	Season1819
	Season1920
	Season2021
	Season2122
	Season2223
)

type seasonInfo struct {
	key  string
	name string
}

// seasonTable is indexed by Season and must stay in declaration order.
var seasonTable = [...]seasonInfo{
	SeasonUnspecified: {key: "", name: ""},
	Season1415:        {key: "1415", name: "Cascade Effect"},
	Season1516:        {key: "1516", name: "RES-Q"},
	Season1617:        {key: "1617", name: "Velocity Vortex"},
	Season1718:        {key: "1718", name: "Relic Recovery"},
	Season1819:        {key: "1819", name: "Rover Ruckus"},
	Season1920:        {key: "1920", name: "SKYSTONE"},
	Season2021:        {key: "2021", name: "Ultimate Goal"},
	Season2122:        {key: "2122", name: "Freight Frenzy"},
	Season2223:        {key: "2223", name: "POWERPLAY"},
}

// AllSeasons returns every known season, oldest first.
func AllSeasons() []Season {
	out := make([]Season, 0, len(seasonTable)-1)
	for s := Season1415; int(s) < len(seasonTable); s++ {
		out = append(out, s)
	}
	return out
}

// ParseSeason maps a wire key such as "1920" to its Season.
func ParseSeason(key string) (Season, error) {
	if key == "" {
		return SeasonUnspecified, nil
	}
	for i := 1; i < len(seasonTable); i++ {
		if seasonTable[i].key == key {
			return Season(i), nil
		}
	}
	return SeasonUnspecified, fmt.Errorf("%w: %q", ErrUnknownSeason, key)
}

// Valid reports whether s is a known season (SeasonUnspecified is not).
func (s Season) Valid() bool {
	return s > SeasonUnspecified && int(s) < len(seasonTable)
}

// Key returns the path/query segment the API uses for the season.
func (s Season) Key() string {
	if s < 0 || int(s) >= len(seasonTable) {
		return ""
	}
	return seasonTable[s].key
}

// Name returns the game name of the season.
func (s Season) Name() string {
	if s < 0 || int(s) >= len(seasonTable) {
		return ""
	}
	return seasonTable[s].name
}

func (s Season) String() string {
	if s == SeasonUnspecified {
		return "unspecified"
	}
	if !s.Valid() {
		return fmt.Sprintf("Season(%d)", int(s))
	}
	return s.Key()
}

func (s Season) MarshalJSON() ([]byte, error) {
	if s == SeasonUnspecified {
		return []byte("null"), nil
	}
	if !s.Valid() {
		return nil, fmt.Errorf("%w: Season(%d)", ErrUnknownSeason, int(s))
	}
	return json.Marshal(s.Key())
}

func (s *Season) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = SeasonUnspecified
		return nil
	}
	var key string
	if err := json.Unmarshal(data, &key); err != nil {
		return fmt.Errorf("season key: %w", err)
	}
	parsed, err := ParseSeason(key)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
