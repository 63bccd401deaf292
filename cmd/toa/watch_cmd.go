package main

import (
	"context"
	"strings"

	"github.com/preston-bernstein/toa-client/internal/logging"
	"github.com/preston-bernstein/toa-client/internal/retry"
	"github.com/preston-bernstein/toa-client/internal/watch"
	"github.com/preston-bernstein/toa-client/toa"
)

type rankingChange struct {
	EventKey string        `json:"event_key"`
	Changed  []string      `json:"changed"`
	Rankings []toa.Ranking `json:"rankings"`
}

func watchCommand(ctx context.Context, a *app, args []string) error {
	eventKey := strings.TrimSpace(args[0])
	if eventKey == "" {
		return usagef("watch requires an event key")
	}

	fetchRankings := func(ctx context.Context) ([]toa.Ranking, error) {
		return retry.Do(ctx, a.retryPolicy(), a.retryOptions(a.command), func(ctx context.Context) ([]toa.Ranking, error) {
			return a.client.EventRankings(ctx, eventKey)
		})
	}

	w := watch.New(fetchRankings, watch.Options{
		EventKey: eventKey,
		Interval: a.cfg.Watch.Interval,
		Logger:   a.logger,
		Metrics:  a.recorder,
		OnChange: func(rankings []toa.Ranking, changed []string) {
			if err := a.print(changedRows(eventKey, rankings, changed)); err != nil {
				logging.Error(a.logger, "watch output failed", err)
			}
		},
	})

	var srv httpServer
	if a.handler != nil {
		srv = newMetricsServer(a.cfg.Metrics.Port, a.handler, w.Status)
		launchServer("metrics", srv, a.logger)
	}

	w.Start(ctx)
	<-ctx.Done()
	logging.Info(a.logger, "shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := w.Stop(shutdownCtx); err != nil {
		logging.Error(a.logger, "failed to stop watcher", err)
	}
	if srv != nil {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logging.Warn(a.logger, "metrics server shutdown failed", "error", err)
		}
	}
	return nil
}

// changedRows keeps the rankings rows for teams that moved. Teams that
// dropped out of the rankings appear only in Changed.
func changedRows(eventKey string, rankings []toa.Ranking, changed []string) rankingChange {
	keys := make(map[string]struct{}, len(changed))
	for _, k := range changed {
		keys[k] = struct{}{}
	}
	rows := make([]toa.Ranking, 0, len(changed))
	for _, r := range rankings {
		if _, ok := keys[r.TeamKey]; ok {
			rows = append(rows, r)
		}
	}
	return rankingChange{EventKey: eventKey, Changed: changed, Rankings: rows}
}
