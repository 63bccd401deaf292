package toa

import (
	"strings"
	"time"
)

// Team is an FTC team as registered with TOA.
type Team struct {
	TeamKey       string `json:"team_key"`
	RegionKey     string `json:"region_key"`
	LeagueKey     string `json:"league_key"`
	TeamNumber    int    `json:"team_number"`
	TeamNameShort string `json:"team_name_short"`
	TeamNameLong  string `json:"team_name_long"`
	RobotName     string `json:"robot_name"`
	LastActive    string `json:"last_active"`
	City          string `json:"city"`
	StateProv     string `json:"state_prov"`
	ZipCode       string `json:"zip_code"`
	Country       string `json:"country"`
	RookieYear    int    `json:"rookie_year"`
	Website       string `json:"website"`
}

// WLT is a team's aggregated win/loss/tie record.
type WLT struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Ties   int `json:"ties"`
}

// Event is a competition (qualifier, league meet, championship...).
type Event struct {
	EventKey              string `json:"event_key"`
	SeasonKey             Season `json:"season_key"`
	RegionKey             string `json:"region_key"`
	LeagueKey             string `json:"league_key"`
	EventCode             string `json:"event_code"`
	EventTypeKey          string `json:"event_type_key"`
	EventRegionNumber     int    `json:"event_region_number"`
	DivisionKey           int    `json:"division_key"`
	DivisionName          string `json:"division_name"`
	EventName             string `json:"event_name"`
	StartDate             string `json:"start_date"`
	EndDate               string `json:"end_date"`
	WeekKey               string `json:"week_key"`
	City                  string `json:"city"`
	StateProv             string `json:"state_prov"`
	Country               string `json:"country"`
	Venue                 string `json:"venue"`
	Website               string `json:"website"`
	TimeZone              string `json:"time_zone"`
	IsPublic              bool   `json:"is_public"`
	ActiveTournamentLevel string `json:"active_tournament_level"`
	AllianceCount         int    `json:"alliance_count"`
	FieldCount            int    `json:"field_count"`
	AdvanceSpots          int    `json:"advance_spots"`
	AdvanceEvent          string `json:"advance_event"`
}

// StartTime parses StartDate.
func (e Event) StartTime() (time.Time, error) {
	return parseAPITime(e.StartDate)
}

// EndTime parses EndDate.
func (e Event) EndTime() (time.Time, error) {
	return parseAPITime(e.EndDate)
}

// Match is a single played or scheduled match with its score breakdown.
type Match struct {
	MatchKey        string             `json:"match_key"`
	EventKey        string             `json:"event_key"`
	TournamentLevel int                `json:"tournament_level"`
	ScheduledTime   string             `json:"scheduled_time"`
	MatchName       string             `json:"match_name"`
	PlayNumber      int                `json:"play_number"`
	FieldNumber     int                `json:"field_number"`
	PrestartTime    string             `json:"prestart_time"`
	MatchStartTime  string             `json:"match_start_time"`
	PrestartCount   int                `json:"prestart_count"`
	CycleTime       int                `json:"cycle_time"`
	RedScore        int                `json:"red_score"`
	BlueScore       int                `json:"blue_score"`
	RedPenalty      int                `json:"red_penalty"`
	BluePenalty     int                `json:"blue_penalty"`
	RedAutoScore    int                `json:"red_auto_score"`
	BlueAutoScore   int                `json:"blue_auto_score"`
	RedTeleScore    int                `json:"red_tele_score"`
	BlueTeleScore   int                `json:"blue_tele_score"`
	RedEndScore     int                `json:"red_end_score"`
	BlueEndScore    int                `json:"blue_end_score"`
	VideoURL        string             `json:"video_url"`
	Participants    []MatchParticipant `json:"participants"`
}

// RedTeams returns the team keys on the red alliance, in station order.
func (m Match) RedTeams() []string {
	return m.allianceTeams(10)
}

// BlueTeams returns the team keys on the blue alliance, in station order.
func (m Match) BlueTeams() []string {
	return m.allianceTeams(20)
}

func (m Match) allianceTeams(base int) []string {
	keys := make([]string, 0, 3)
	for _, p := range m.Participants {
		if p.Station >= base && p.Station < base+10 {
			keys = append(keys, p.TeamKey)
		}
	}
	return keys
}

// MatchParticipant places a team at a station in a match.
// Stations 10-19 are red, 20-29 are blue.
type MatchParticipant struct {
	MatchParticipantKey string `json:"match_participant_key"`
	MatchKey            string `json:"match_key"`
	TeamKey             string `json:"team_key"`
	Station             int    `json:"station"`
	StationStatus       int    `json:"station_status"`
	RefStatus           int    `json:"ref_status"`
	Team                *Team  `json:"team,omitempty"`
}

// EventParticipant registers a team at an event.
type EventParticipant struct {
	EventParticipantKey string `json:"event_participant_key"`
	EventKey            string `json:"event_key"`
	TeamKey             string `json:"team_key"`
	TeamNumber          int    `json:"team_number"`
	IsActive            bool   `json:"is_active"`
	CardStatus          string `json:"card_status"`
	Team                *Team  `json:"team,omitempty"`
}

// Ranking is a team's standing at an event.
type Ranking struct {
	RankKey          string  `json:"rank_key"`
	EventKey         string  `json:"event_key"`
	TeamKey          string  `json:"team_key"`
	Rank             int     `json:"rank"`
	RankChange       int     `json:"rank_change"`
	Wins             int     `json:"wins"`
	Losses           int     `json:"losses"`
	Ties             int     `json:"ties"`
	HighestQualScore int     `json:"highest_qual_score"`
	RankingPoints    float64 `json:"ranking_points"`
	QualifyingPoints float64 `json:"qualifying_points"`
	TieBreakerPoints float64 `json:"tie_breaker_points"`
	Disqualified     int     `json:"disqualified"`
	Played           int     `json:"played"`
	Team             *Team   `json:"team,omitempty"`
}

// AwardRecipient is an award handed out at an event.
type AwardRecipient struct {
	AwardsKey    string `json:"awards_key"`
	EventKey     string `json:"event_key"`
	AwardKey     string `json:"award_key"`
	TeamKey      string `json:"team_key"`
	ReceiverName string `json:"receiver_name"`
	AwardName    string `json:"award_name"`
	AwardRank    int    `json:"award_rank"`
	Team         *Team  `json:"team,omitempty"`
}

// SeasonDetails is the API's own description of a season.
type SeasonDetails struct {
	SeasonKey   Season `json:"season_key"`
	Description string `json:"description"`
	IsActive    bool   `json:"is_active"`
}

// Region groups teams and events geographically.
type Region struct {
	RegionKey   string `json:"region_key"`
	Description string `json:"description"`
}

// League is a league within a region for one season.
type League struct {
	LeagueKey   string `json:"league_key"`
	RegionKey   string `json:"region_key"`
	SeasonKey   Season `json:"season_key"`
	Description string `json:"description"`
}

// EventType classifies events (qualifier, league meet, super-regional...).
type EventType struct {
	EventTypeKey string `json:"event_type_key"`
	Description  string `json:"description"`
}

type versionResponse struct {
	Version string `json:"version"`
}

// errorEnvelope is the body TOA sends alongside most error statuses.
type errorEnvelope struct {
	Code    int    `json:"_code"`
	Message string `json:"_message"`
}

func parseAPITime(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse(dateLayout, raw)
}

const dateLayout = "2006-01-02"
