package toa

import "context"

// Match fetches a single match by key, e.g. "1920-FIM-CMP-Q001-1".
func (c *Client) Match(ctx context.Context, matchKey string) (Match, error) {
	key, err := requireKey("match key", matchKey)
	if err != nil {
		return Match{}, err
	}
	return getFirst[Match](ctx, c, route(pathMatch, "match_key", key))
}

// MatchParticipants lists the teams and stations in a match.
func (c *Client) MatchParticipants(ctx context.Context, matchKey string) ([]MatchParticipant, error) {
	key, err := requireKey("match key", matchKey)
	if err != nil {
		return nil, err
	}
	return getJSON[[]MatchParticipant](ctx, c, route(pathMatchParticipants, "match_key", key))
}
