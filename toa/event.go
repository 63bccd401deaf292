package toa

import "context"

// Event fetches a single event by key, e.g. "1920-FIM-CMP".
func (c *Client) Event(ctx context.Context, eventKey string) (Event, error) {
	key, err := requireKey("event key", eventKey)
	if err != nil {
		return Event{}, err
	}
	return getFirst[Event](ctx, c, route(pathEvent, "event_key", key))
}

// Events lists events, optionally filtered to one season.
func (c *Client) Events(ctx context.Context, season Season) ([]Event, error) {
	if err := optionalSeason(season); err != nil {
		return nil, err
	}
	return getJSON[[]Event](ctx, c, route(pathEvents).withSeasonQuery(season))
}

// EventMatches lists every match played at an event.
func (c *Client) EventMatches(ctx context.Context, eventKey string) ([]Match, error) {
	req, err := eventRoute(pathEventMatches, eventKey)
	if err != nil {
		return nil, err
	}
	return getJSON[[]Match](ctx, c, req)
}

// EventRankings lists the current rankings at an event.
func (c *Client) EventRankings(ctx context.Context, eventKey string) ([]Ranking, error) {
	req, err := eventRoute(pathEventRankings, eventKey)
	if err != nil {
		return nil, err
	}
	return getJSON[[]Ranking](ctx, c, req)
}

// EventTeams lists the teams registered at an event.
func (c *Client) EventTeams(ctx context.Context, eventKey string) ([]EventParticipant, error) {
	req, err := eventRoute(pathEventTeams, eventKey)
	if err != nil {
		return nil, err
	}
	return getJSON[[]EventParticipant](ctx, c, req)
}

// EventAwards lists the awards handed out at an event.
func (c *Client) EventAwards(ctx context.Context, eventKey string) ([]AwardRecipient, error) {
	req, err := eventRoute(pathEventAwards, eventKey)
	if err != nil {
		return nil, err
	}
	return getJSON[[]AwardRecipient](ctx, c, req)
}

func eventRoute(template, eventKey string) (request, error) {
	key, err := requireKey("event key", eventKey)
	if err != nil {
		return request{}, err
	}
	return route(template, "event_key", key), nil
}
