package testutil

// Canned TOA payloads shared across tests. Field values follow the shapes the
// live API returns.
const (
	VersionJSON = `{"version":"3.7.0"}`

	TeamJSON = `[{
		"team_key": "16405",
		"region_key": "USNYNY",
		"league_key": "USNYNYNYC",
		"team_number": 16405,
		"team_name_short": "Gearheads",
		"team_name_long": "Bronx Science Gearheads",
		"robot_name": "Sprocket",
		"last_active": "2223",
		"city": "Bronx",
		"state_prov": "New York",
		"zip_code": "10468",
		"country": "USA",
		"rookie_year": 2019,
		"website": "https://example.org/gearheads"
	}]`

	WLTJSON = `[{"wins": 42, "losses": 17, "ties": 3}]`

	EventJSON = `[{
		"event_key": "1920-FIM-CMP",
		"season_key": "1920",
		"region_key": "FIM",
		"league_key": null,
		"event_code": "fimcmp",
		"event_type_key": "SCMP",
		"event_region_number": 1,
		"division_key": 0,
		"division_name": null,
		"event_name": "Michigan State Championship",
		"start_date": "2020-03-06T05:00:00.000Z",
		"end_date": "2020-03-07T05:00:00.000Z",
		"week_key": "CMP",
		"city": "Grand Rapids",
		"state_prov": "MI",
		"country": "USA",
		"venue": "DeVos Place",
		"website": "",
		"time_zone": "America/Detroit",
		"is_public": true,
		"active_tournament_level": "0",
		"alliance_count": 4,
		"field_count": 2,
		"advance_spots": 6,
		"advance_event": "1920-CMP-DET"
	}]`

	MatchesJSON = `[{
		"match_key": "1920-FIM-CMP-Q001-1",
		"event_key": "1920-FIM-CMP",
		"tournament_level": 1,
		"scheduled_time": "2020-03-06T14:00:00.000Z",
		"match_name": "Quals 1",
		"play_number": 1,
		"field_number": 2,
		"prestart_time": "2020-03-06T13:58:12.000Z",
		"match_start_time": "2020-03-06T14:01:03.000Z",
		"prestart_count": 1,
		"cycle_time": 420,
		"red_score": 118,
		"blue_score": 97,
		"red_penalty": 0,
		"blue_penalty": 10,
		"red_auto_score": 28,
		"blue_auto_score": 14,
		"red_tele_score": 70,
		"blue_tele_score": 63,
		"red_end_score": 20,
		"blue_end_score": 10,
		"video_url": null,
		"participants": [
			{"match_participant_key": "1920-FIM-CMP-Q001-1-R1", "match_key": "1920-FIM-CMP-Q001-1", "team_key": "16405", "station": 11, "station_status": 1, "ref_status": 0},
			{"match_participant_key": "1920-FIM-CMP-Q001-1-R2", "match_key": "1920-FIM-CMP-Q001-1", "team_key": "8565", "station": 12, "station_status": 1, "ref_status": 0},
			{"match_participant_key": "1920-FIM-CMP-Q001-1-B1", "match_key": "1920-FIM-CMP-Q001-1", "team_key": "731", "station": 21, "station_status": 1, "ref_status": 0},
			{"match_participant_key": "1920-FIM-CMP-Q001-1-B2", "match_key": "1920-FIM-CMP-Q001-1", "team_key": "9794", "station": 22, "station_status": 1, "ref_status": 1}
		]
	}]`

	RankingsJSON = `[
		{"rank_key": "1920-FIM-CMP-R16405", "event_key": "1920-FIM-CMP", "team_key": "16405", "rank": 1, "rank_change": 2, "wins": 5, "losses": 0, "ties": 0, "highest_qual_score": 212, "ranking_points": 10, "qualifying_points": 10, "tie_breaker_points": 412.5, "disqualified": 0, "played": 5,
		 "team": {"team_key": "16405", "team_number": 16405, "team_name_short": "Gearheads"}},
		{"rank_key": "1920-FIM-CMP-R8565", "event_key": "1920-FIM-CMP", "team_key": "8565", "rank": 2, "rank_change": -1, "wins": 4, "losses": 1, "ties": 0, "highest_qual_score": 198, "ranking_points": 8, "qualifying_points": 8, "tie_breaker_points": 380, "disqualified": 0, "played": 5}
	]`

	SeasonsJSON = `[
		{"season_key": "1819", "description": "Rover Ruckus", "is_active": false},
		{"season_key": "1920", "description": "SKYSTONE", "is_active": true}
	]`
)
