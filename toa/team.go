package toa

import "context"

// Team fetches a team by its FTC team number.
func (c *Client) Team(ctx context.Context, teamNumber int) (Team, error) {
	key, err := teamKey(teamNumber)
	if err != nil {
		return Team{}, err
	}
	return getFirst[Team](ctx, c, route(pathTeam, "team_key", key))
}

// TeamWLT fetches a team's win/loss/tie totals. SeasonUnspecified aggregates
// across every season the API knows about.
func (c *Client) TeamWLT(ctx context.Context, teamNumber int, season Season) (WLT, error) {
	key, err := teamKey(teamNumber)
	if err != nil {
		return WLT{}, err
	}
	if err := optionalSeason(season); err != nil {
		return WLT{}, err
	}
	return getFirst[WLT](ctx, c, route(pathTeamWLT, "team_key", key).withSeasonQuery(season))
}

// TeamEvents lists the events a team attended in a season.
func (c *Client) TeamEvents(ctx context.Context, teamNumber int, season Season) ([]EventParticipant, error) {
	req, err := teamSeasonRoute(pathTeamEvents, teamNumber, season)
	if err != nil {
		return nil, err
	}
	return getJSON[[]EventParticipant](ctx, c, req)
}

// TeamMatches lists a team's match participations in a season.
func (c *Client) TeamMatches(ctx context.Context, teamNumber int, season Season) ([]MatchParticipant, error) {
	req, err := teamSeasonRoute(pathTeamMatches, teamNumber, season)
	if err != nil {
		return nil, err
	}
	return getJSON[[]MatchParticipant](ctx, c, req)
}

// TeamResults lists a team's event rankings in a season.
func (c *Client) TeamResults(ctx context.Context, teamNumber int, season Season) ([]Ranking, error) {
	req, err := teamSeasonRoute(pathTeamResults, teamNumber, season)
	if err != nil {
		return nil, err
	}
	return getJSON[[]Ranking](ctx, c, req)
}

// TeamAwards lists the awards a team won in a season.
func (c *Client) TeamAwards(ctx context.Context, teamNumber int, season Season) ([]AwardRecipient, error) {
	req, err := teamSeasonRoute(pathTeamAwards, teamNumber, season)
	if err != nil {
		return nil, err
	}
	return getJSON[[]AwardRecipient](ctx, c, req)
}

func teamSeasonRoute(template string, teamNumber int, season Season) (request, error) {
	key, err := teamKey(teamNumber)
	if err != nil {
		return request{}, err
	}
	seasonKey, err := requireSeason(season)
	if err != nil {
		return request{}, err
	}
	return route(template, "team_key", key, "season_key", seasonKey), nil
}
