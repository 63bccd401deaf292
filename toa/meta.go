package toa

import "context"

// APIVersion returns the version string the API reports at its root.
func (c *Client) APIVersion(ctx context.Context) (string, error) {
	resp, err := getChecked(ctx, c, route(pathRoot), func(v versionResponse) error {
		if v.Version == "" {
			return ErrEmptyResponse
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return resp.Version, nil
}

// Seasons lists the seasons the API serves.
func (c *Client) Seasons(ctx context.Context) ([]SeasonDetails, error) {
	return getJSON[[]SeasonDetails](ctx, c, route(pathSeasons))
}

// Regions lists every region.
func (c *Client) Regions(ctx context.Context) ([]Region, error) {
	return getJSON[[]Region](ctx, c, route(pathRegions))
}

// Leagues lists leagues, optionally filtered to one season.
func (c *Client) Leagues(ctx context.Context, season Season) ([]League, error) {
	if err := optionalSeason(season); err != nil {
		return nil, err
	}
	return getJSON[[]League](ctx, c, route(pathLeagues).withSeasonQuery(season))
}

// EventTypes lists the event type classifications.
func (c *Client) EventTypes(ctx context.Context) ([]EventType, error) {
	return getJSON[[]EventType](ctx, c, route(pathEventTypes))
}
