package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/preston-bernstein/toa-client/internal/retry"
	"github.com/preston-bernstein/toa-client/toa"
)

type command struct {
	args        []string
	summary     string
	needsSeason bool
	run         func(ctx context.Context, a *app, args []string) error
}

func (c command) argUsage() string {
	parts := make([]string, len(c.args))
	for i, arg := range c.args {
		parts[i] = "<" + arg + ">"
	}
	return strings.Join(parts, " ")
}

// commandOrder fixes the help listing order.
var commandOrder = []string{
	"version",
	"team", "wlt", "team-events", "team-matches", "results", "team-awards",
	"event", "events", "matches", "rankings", "event-teams", "event-awards",
	"match", "participants",
	"seasons", "regions", "leagues", "event-types",
	"watch",
}

var commands map[string]command

func init() {
	commands = map[string]command{
		"version": {summary: "API version", run: func(ctx context.Context, a *app, _ []string) error {
			return fetch(ctx, a, a.client.APIVersion)
		}},

		"team": {args: []string{"team_number"}, summary: "team profile", run: teamCommand(func(ctx context.Context, c *toa.Client, n int, _ toa.Season) (any, error) {
			return c.Team(ctx, n)
		})},
		"wlt": {args: []string{"team_number"}, summary: "win/loss/tie record, optionally per season", run: teamCommand(func(ctx context.Context, c *toa.Client, n int, s toa.Season) (any, error) {
			return c.TeamWLT(ctx, n, s)
		})},
		"team-events": {args: []string{"team_number"}, summary: "events a team attended in a season", needsSeason: true, run: teamCommand(func(ctx context.Context, c *toa.Client, n int, s toa.Season) (any, error) {
			return c.TeamEvents(ctx, n, s)
		})},
		"team-matches": {args: []string{"team_number"}, summary: "matches a team played in a season", needsSeason: true, run: teamCommand(func(ctx context.Context, c *toa.Client, n int, s toa.Season) (any, error) {
			return c.TeamMatches(ctx, n, s)
		})},
		"results": {args: []string{"team_number"}, summary: "a team's event rankings in a season", needsSeason: true, run: teamCommand(func(ctx context.Context, c *toa.Client, n int, s toa.Season) (any, error) {
			return c.TeamResults(ctx, n, s)
		})},
		"team-awards": {args: []string{"team_number"}, summary: "awards a team won in a season", needsSeason: true, run: teamCommand(func(ctx context.Context, c *toa.Client, n int, s toa.Season) (any, error) {
			return c.TeamAwards(ctx, n, s)
		})},

		"event": {args: []string{"event_key"}, summary: "event details", run: keyCommand(func(ctx context.Context, c *toa.Client, key string) (any, error) {
			return c.Event(ctx, key)
		})},
		"events": {summary: "all events, optionally per season", run: func(ctx context.Context, a *app, _ []string) error {
			return fetch(ctx, a, func(ctx context.Context) ([]toa.Event, error) {
				return a.client.Events(ctx, a.season)
			})
		}},
		"matches": {args: []string{"event_key"}, summary: "matches played at an event", run: keyCommand(func(ctx context.Context, c *toa.Client, key string) (any, error) {
			return c.EventMatches(ctx, key)
		})},
		"rankings": {args: []string{"event_key"}, summary: "rankings at an event", run: keyCommand(func(ctx context.Context, c *toa.Client, key string) (any, error) {
			return c.EventRankings(ctx, key)
		})},
		"event-teams": {args: []string{"event_key"}, summary: "teams registered for an event", run: keyCommand(func(ctx context.Context, c *toa.Client, key string) (any, error) {
			return c.EventTeams(ctx, key)
		})},
		"event-awards": {args: []string{"event_key"}, summary: "awards given at an event", run: keyCommand(func(ctx context.Context, c *toa.Client, key string) (any, error) {
			return c.EventAwards(ctx, key)
		})},

		"match": {args: []string{"match_key"}, summary: "match details and score breakdown", run: keyCommand(func(ctx context.Context, c *toa.Client, key string) (any, error) {
			return c.Match(ctx, key)
		})},
		"participants": {args: []string{"match_key"}, summary: "teams in a match", run: keyCommand(func(ctx context.Context, c *toa.Client, key string) (any, error) {
			return c.MatchParticipants(ctx, key)
		})},

		"seasons": {summary: "known seasons", run: func(ctx context.Context, a *app, _ []string) error {
			return fetch(ctx, a, a.client.Seasons)
		}},
		"regions": {summary: "regions", run: func(ctx context.Context, a *app, _ []string) error {
			return fetch(ctx, a, a.client.Regions)
		}},
		"leagues": {summary: "leagues, optionally per season", run: func(ctx context.Context, a *app, _ []string) error {
			return fetch(ctx, a, func(ctx context.Context) ([]toa.League, error) {
				return a.client.Leagues(ctx, a.season)
			})
		}},
		"event-types": {summary: "event type codes", run: func(ctx context.Context, a *app, _ []string) error {
			return fetch(ctx, a, a.client.EventTypes)
		}},

		"watch": {args: []string{"event_key"}, summary: "poll event rankings and print changes until interrupted", run: watchCommand},
	}

	for name, cmd := range commands {
		if cmd.needsSeason {
			cmd.run = requireSeasonFlag(name, cmd.run)
			commands[name] = cmd
		}
	}
}

// fetch runs fn under the retry policy and prints its result.
func fetch[T any](ctx context.Context, a *app, fn func(context.Context) (T, error)) error {
	v, err := retry.Do(ctx, a.retryPolicy(), a.retryOptions(a.command), fn)
	if err != nil {
		return err
	}
	return a.print(v)
}

func teamCommand(call func(ctx context.Context, c *toa.Client, teamNumber int, season toa.Season) (any, error)) func(context.Context, *app, []string) error {
	return func(ctx context.Context, a *app, args []string) error {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return usagef("team number must be an integer, got %q", args[0])
		}
		return fetch(ctx, a, func(ctx context.Context) (any, error) {
			return call(ctx, a.client, n, a.season)
		})
	}
}

func keyCommand(call func(ctx context.Context, c *toa.Client, key string) (any, error)) func(context.Context, *app, []string) error {
	return func(ctx context.Context, a *app, args []string) error {
		return fetch(ctx, a, func(ctx context.Context) (any, error) {
			return call(ctx, a.client, args[0])
		})
	}
}

func requireSeasonFlag(name string, next func(context.Context, *app, []string) error) func(context.Context, *app, []string) error {
	return func(ctx context.Context, a *app, args []string) error {
		if a.season == toa.SeasonUnspecified {
			return usagef("%s requires -season", name)
		}
		return next(ctx, a, args)
	}
}

func (a *app) print(v any) error {
	return writeJSON(a.stdout, v, a.compact)
}

func writeJSON(w io.Writer, v any, compact bool) error {
	var (
		out []byte
		err error
	)
	if compact {
		out, err = json.Marshal(v)
	} else {
		out, err = json.MarshalIndent(v, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	out = append(out, '\n')
	_, err = w.Write(out)
	return err
}

func printUsage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(w, "usage: toa [-season 1920] [-compact] <command> [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "commands:")
	for _, name := range commandOrder {
		cmd := commands[name]
		usage := strings.TrimSpace(name + " " + cmd.argUsage())
		fmt.Fprintf(w, "  %-28s %s\n", usage, cmd.summary)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "flags:")
	fs.PrintDefaults()
}
