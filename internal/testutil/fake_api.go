package testutil

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gorilla/mux"
)

// APIPrefix is the path the fake API is mounted under, mirroring the
// production base URL's "/api" segment.
const APIPrefix = "/api"

// Response is a canned reply served by FakeAPI.
type Response struct {
	Status int
	Body   string
	Header http.Header
}

// RecordedRequest is what FakeAPI saw for one inbound call.
type RecordedRequest struct {
	Method   string
	Path     string
	RawQuery string
	Header   http.Header
}

// FakeAPI is an in-process stand-in for the TOA API. Routes use gorilla/mux
// templates relative to APIPrefix; unmatched paths answer with TOA's 404 envelope.
type FakeAPI struct {
	server *httptest.Server
	router *mux.Router

	mu       sync.Mutex
	requests []RecordedRequest
}

// NewFakeAPI starts a fake API server that is closed when the test ends.
func NewFakeAPI(t *testing.T) *FakeAPI {
	t.Helper()

	root := mux.NewRouter()
	f := &FakeAPI{router: root.PathPrefix(APIPrefix).Subrouter()}
	root.Use(f.record)
	root.NotFoundHandler = f.record(http.HandlerFunc(notFound))

	f.server = httptest.NewServer(root)
	t.Cleanup(f.server.Close)
	return f
}

// URL returns the base URL a client should be configured with.
func (f *FakeAPI) URL() string {
	return f.server.URL + APIPrefix
}

// Close shuts the server down early, e.g. to provoke connection failures.
func (f *FakeAPI) Close() {
	f.server.Close()
}

// Handle serves a fixed status and body for GET requests on path.
func (f *FakeAPI) Handle(path string, status int, body string) {
	f.HandleResponse(path, func(map[string]string) Response {
		return Response{Status: status, Body: body}
	})
}

// HandleResponse serves a response built from the route's mux variables.
func (f *FakeAPI) HandleResponse(path string, fn func(vars map[string]string) Response) {
	f.router.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
		resp := fn(mux.Vars(r))
		for k, values := range resp.Header {
			for _, v := range values {
				w.Header().Add(k, v)
			}
		}
		if w.Header().Get("Content-Type") == "" {
			w.Header().Set("Content-Type", "application/json")
		}
		status := resp.Status
		if status == 0 {
			status = http.StatusOK
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(resp.Body))
	}).Methods(http.MethodGet)
}

// Requests returns a copy of every request seen so far.
func (f *FakeAPI) Requests() []RecordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]RecordedRequest, len(f.requests))
	copy(out, f.requests)
	return out
}

// LastRequest returns the most recent request, failing the test when none arrived.
func (f *FakeAPI) LastRequest(t *testing.T) RecordedRequest {
	t.Helper()
	reqs := f.Requests()
	if len(reqs) == 0 {
		t.Fatal("expected fake API to receive a request")
	}
	return reqs[len(reqs)-1]
}

func (f *FakeAPI) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.requests = append(f.requests, RecordedRequest{
			Method:   r.Method,
			Path:     r.URL.Path,
			RawQuery: r.URL.RawQuery,
			Header:   r.Header.Clone(),
		})
		f.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func notFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	_, _ = fmt.Fprintf(w, `{"_code":404,"_message":"Content not found for %s"}`, r.URL.Path)
}
