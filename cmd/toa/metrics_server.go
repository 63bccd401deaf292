package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/preston-bernstein/toa-client/internal/logging"
	"github.com/preston-bernstein/toa-client/internal/watch"
)

const (
	readTimeout  = 10 * time.Second
	writeTimeout = 10 * time.Second
	idleTimeout  = 60 * time.Second
)

// shutdownTimeout remains a var for tests to override.
var shutdownTimeout = 10 * time.Second

// httpServer abstracts the HTTP server implementation for easier testing.
type httpServer interface {
	ListenAndServe() error
	Shutdown(context.Context) error
	Addr() string
	Handler() http.Handler
}

type netHTTPServer struct {
	srv *http.Server
}

func (s netHTTPServer) ListenAndServe() error              { return s.srv.ListenAndServe() }
func (s netHTTPServer) Shutdown(ctx context.Context) error { return s.srv.Shutdown(ctx) }
func (s netHTTPServer) Addr() string                       { return s.srv.Addr }
func (s netHTTPServer) Handler() http.Handler              { return s.srv.Handler }

// newMetricsServer exposes the Prometheus handler and the watcher's health.
func newMetricsServer(port string, metricsHandler http.Handler, status func() watch.Status) httpServer {
	router := mux.NewRouter()
	if metricsHandler != nil {
		router.Handle("/metrics", metricsHandler).Methods(http.MethodGet)
	}
	router.HandleFunc("/healthz", healthHandler(status)).Methods(http.MethodGet)

	return netHTTPServer{srv: &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}}
}

type healthResponse struct {
	Status              string    `json:"status"`
	Cycles              int       `json:"cycles"`
	ConsecutiveFailures int       `json:"consecutive_failures"`
	LastError           string    `json:"last_error,omitempty"`
	LastSuccess         time.Time `json:"last_success"`
	Teams               int       `json:"teams"`
}

func healthHandler(status func() watch.Status) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st := status()
		resp := healthResponse{
			Status:              "ok",
			Cycles:              st.Cycles,
			ConsecutiveFailures: st.ConsecutiveFailures,
			LastError:           st.LastError,
			LastSuccess:         st.LastSuccess,
			Teams:               st.Teams,
		}
		code := http.StatusOK
		if !st.IsReady() {
			resp.Status = "unavailable"
			code = http.StatusServiceUnavailable
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func launchServer(name string, srv httpServer, logger *slog.Logger) {
	go func() {
		logging.Info(logger, "starting "+name+" server", slog.String("addr", srv.Addr()))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Warn(logger, name+" server failed", "error", err)
		}
	}()
}
