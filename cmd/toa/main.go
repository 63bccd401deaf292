// Command toa queries The Orange Alliance API from the command line.
//
// Usage:
//
//	toa [-season 1920] [-compact] <command> [args]
//
// Configuration comes from the environment (and a .env file when present);
// TOA_API_KEY is required.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/preston-bernstein/toa-client/internal/config"
	"github.com/preston-bernstein/toa-client/internal/logging"
	"github.com/preston-bernstein/toa-client/internal/metrics"
	"github.com/preston-bernstein/toa-client/internal/retry"
	"github.com/preston-bernstein/toa-client/toa"
)

const (
	appName    = "toa-client"
	appVersion = "dev"

	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

var metricsSetup = metrics.Setup

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// app holds what every command needs.
type app struct {
	cfg      config.Config
	client   *toa.Client
	logger   *slog.Logger
	recorder *metrics.Recorder
	handler  http.Handler
	command  string
	season   toa.Season
	compact  bool
	stdout   io.Writer
}

type usageError struct {
	msg string
}

func (e usageError) Error() string { return e.msg }

func usagef(format string, args ...any) error {
	return usageError{msg: fmt.Sprintf(format, args...)}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("toa", flag.ContinueOnError)
	fs.SetOutput(stderr)
	seasonKey := fs.String("season", "", "season key filter, e.g. 1920")
	compact := fs.Bool("compact", false, "print single-line JSON")
	fs.Usage = func() { printUsage(stderr, fs) }

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return exitUsage
	}

	season, err := toa.ParseSeason(*seasonKey)
	if err != nil {
		fmt.Fprintf(stderr, "toa: %v\n", err)
		return exitUsage
	}

	name, cmdArgs := fs.Arg(0), fs.Args()[1:]
	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(stderr, "toa: unknown command %q\n", name)
		fs.Usage()
		return exitUsage
	}
	if len(cmdArgs) != len(cmd.args) {
		fmt.Fprintf(stderr, "toa: usage: toa %s %s\n", name, cmd.argUsage())
		return exitUsage
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "toa: config: %v\n", err)
		return exitUsage
	}

	logger := logging.NewLogger(logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: appName,
		Version: appVersion,
		Output:  stderr,
	})
	ctx = logging.WithLogger(ctx, logger)

	recorder, handler, shutdown, err := metricsSetup(ctx, metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	})
	if err != nil {
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", "error", err)
		recorder, handler, shutdown = metrics.NewRecorder(), nil, nil
	}
	if shutdown != nil {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := shutdown(shutdownCtx); err != nil {
				logging.Warn(logger, "metrics shutdown failed", "error", err)
			}
		}()
	}

	a := &app{
		cfg: cfg,
		client: toa.NewClient(toa.Config{
			APIKey:            cfg.TOA.APIKey,
			BaseURL:           cfg.TOA.BaseURL,
			ApplicationOrigin: cfg.TOA.ApplicationOrigin,
			HTTPClient:        &http.Client{Timeout: cfg.TOA.Timeout},
			Logger:            logger,
			Observer:          recorder,
		}),
		logger:   logger,
		recorder: recorder,
		handler:  handler,
		command:  name,
		season:   season,
		compact:  *compact,
		stdout:   stdout,
	}

	if err := cmd.run(ctx, a, cmdArgs); err != nil {
		return report(stderr, err)
	}
	return exitOK
}

// report prints err and maps it to an exit code.
func report(stderr io.Writer, err error) int {
	var uErr usageError
	switch {
	case errors.As(err, &uErr):
		fmt.Fprintf(stderr, "toa: %v\n", err)
		return exitUsage
	case errors.Is(err, toa.ErrInvalidArgument):
		fmt.Fprintf(stderr, "toa: %v\n", err)
		return exitUsage
	case toa.IsNotFound(err):
		fmt.Fprintf(stderr, "toa: not found: %v\n", err)
		return exitError
	default:
		fmt.Fprintf(stderr, "toa: %v\n", err)
		return exitError
	}
}

func (a *app) retryPolicy() retry.Policy {
	return retry.Policy{
		MaxAttempts:     a.cfg.Retry.MaxAttempts,
		InitialInterval: a.cfg.Retry.InitialInterval,
		MaxInterval:     a.cfg.Retry.MaxInterval,
	}
}

func (a *app) retryOptions(endpoint string) retry.Options {
	return retry.Options{Logger: a.logger, Metrics: a.recorder, Endpoint: endpoint}
}
