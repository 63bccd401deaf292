package toa

import "time"

const (
	defaultBaseURL           = "https://theorangealliance.org/api"
	defaultApplicationOrigin = "toa-client"
	defaultHTTPTimeout       = 10 * time.Second

	// errorBodyLimit caps how much of a non-200 body is kept on APIStatusError.
	errorBodyLimit = 4 << 10
	// maxBodyBytes caps successful response bodies.
	maxBodyBytes = 16 << 20
	// bodySnippetLimit caps the body excerpt attached to DeserializationError.
	bodySnippetLimit = 512
)

// Request headers understood by the TOA API.
const (
	HeaderAPIKey            = "X-TOA-Key"
	HeaderApplicationOrigin = "X-Application-Origin"
)
