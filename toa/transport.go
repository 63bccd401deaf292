package toa

import (
	"bytes"
	"encoding/json"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"
)

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

func resolveHTTPClient(client *http.Client) httpDoer {
	if client != nil {
		return client
	}
	return &http.Client{Timeout: defaultHTTPTimeout}
}

func normalizeBaseURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		raw = defaultBaseURL
	}
	return strings.TrimSuffix(raw, "/")
}

func resolveOrigin(origin string) string {
	if origin = strings.TrimSpace(origin); origin != "" {
		return origin
	}
	return defaultApplicationOrigin
}

// newAPIStatusError drains a bounded prefix of a non-200 body.
func newAPIStatusError(resp *http.Response, endpoint string, now time.Time) *APIStatusError {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
	body := strings.TrimSpace(string(raw))

	statusErr := &APIStatusError{
		StatusCode: resp.StatusCode,
		Endpoint:   endpoint,
		Body:       body,
		RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"), now),
	}

	var envelope errorEnvelope
	if json.Unmarshal(raw, &envelope) == nil && envelope.Message != "" {
		statusErr.Message = envelope.Message
	}
	return statusErr
}

// maxRetryAfter is the largest whole-second duration time.Duration can hold.
const maxRetryAfter = time.Duration(math.MaxInt64/int64(time.Second)) * time.Second

// parseRetryAfter accepts delta-seconds or an HTTP date.
func parseRetryAfter(value string, now time.Time) time.Duration {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}
	if secs, err := strconv.Atoi(value); err == nil {
		if secs <= 0 {
			return 0
		}
		if int64(secs) > int64(maxRetryAfter/time.Second) {
			return maxRetryAfter
		}
		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(value); err == nil {
		if d := at.Sub(now); d > 0 {
			return d
		}
	}
	return 0
}

func snippet(body []byte) string {
	body = bytes.TrimSpace(body)
	if len(body) > bodySnippetLimit {
		return string(body[:bodySnippetLimit]) + "..."
	}
	return string(body)
}
