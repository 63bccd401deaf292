package metrics

// Common metric attribute keys to keep telemetry consistent/searchable.
const (
	AttrEndpoint  = "endpoint"
	AttrStatus    = "status"
	AttrErrorKind = "error_kind"
	AttrEventKey  = "event_key"
)

// Error kinds reported under AttrErrorKind.
const (
	ErrorKindTransport = "transport"
	ErrorKindStatus    = "status"
	ErrorKindDecode    = "decode"
	ErrorKindOther     = "other"
)
