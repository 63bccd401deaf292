package toa

import (
	"net/url"
	"strconv"
	"strings"
)

// Path templates, relative to the base URL. The template doubles as the
// endpoint label in logs, metrics and errors.
const (
	pathRoot              = "/"
	pathTeam              = "/team/{team_key}"
	pathTeamWLT           = "/team/{team_key}/wlt"
	pathTeamEvents        = "/team/{team_key}/events/{season_key}"
	pathTeamMatches       = "/team/{team_key}/matches/{season_key}"
	pathTeamResults       = "/team/{team_key}/results/{season_key}"
	pathTeamAwards        = "/team/{team_key}/awards/{season_key}"
	pathEvents            = "/event"
	pathEvent             = "/event/{event_key}"
	pathEventMatches      = "/event/{event_key}/matches"
	pathEventRankings     = "/event/{event_key}/rankings"
	pathEventTeams        = "/event/{event_key}/teams"
	pathEventAwards       = "/event/{event_key}/awards"
	pathMatch             = "/match/{match_key}"
	pathMatchParticipants = "/match/{match_key}/participants"
	pathSeasons           = "/seasons"
	pathRegions           = "/regions"
	pathLeagues           = "/leagues"
	pathEventTypes        = "/event-types"

	querySeasonKey = "season_key"
)

type request struct {
	endpoint string
	path     string
	query    url.Values
}

// route substitutes name/value pairs into template, escaping each value as a
// single path segment.
func route(template string, pairs ...string) request {
	path := template
	if len(pairs) > 0 {
		oldnew := make([]string, 0, len(pairs))
		for i := 0; i+1 < len(pairs); i += 2 {
			oldnew = append(oldnew, "{"+pairs[i]+"}", url.PathEscape(pairs[i+1]))
		}
		path = strings.NewReplacer(oldnew...).Replace(template)
	}
	return request{endpoint: template, path: path}
}

func (r request) withSeasonQuery(season Season) request {
	if season == SeasonUnspecified {
		return r
	}
	r.query = url.Values{querySeasonKey: []string{season.Key()}}
	return r
}

func teamKey(teamNumber int) (string, error) {
	if teamNumber <= 0 {
		return "", invalidArgument("team number must be positive, got %d", teamNumber)
	}
	return strconv.Itoa(teamNumber), nil
}

func requireKey(kind, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", invalidArgument("%s must not be empty", kind)
	}
	return value, nil
}

// requireSeason is for endpoints that embed the season in the path.
func requireSeason(season Season) (string, error) {
	if !season.Valid() {
		return "", invalidArgument("season required, got %s", season)
	}
	return season.Key(), nil
}

// optionalSeason is for endpoints that take the season as a query filter.
func optionalSeason(season Season) error {
	if season == SeasonUnspecified || season.Valid() {
		return nil
	}
	return invalidArgument("unknown season %s", season)
}
