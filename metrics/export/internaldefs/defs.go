package internaldefs

import (
	sessiongate "github.com/davermont/sessiongate"
)

// CounterDef defines a public type used by sessiongate APIs.
//
// CounterDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CounterDef struct {
	ID   sessiongate.MetricID
	Name string
	Help string
}

// HistogramDef defines a public type used by sessiongate APIs.
//
// HistogramDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type HistogramDef struct {
	ID   sessiongate.MetricID
	Name string
	Help string
}

// CounterDefs is an exported constant or variable used by the session service.
var CounterDefs = []CounterDef{
	{ID: sessiongate.MetricSessionIssued, Name: "sessiongate_session_issued_total", Help: "Issued session cookies."},
	{ID: sessiongate.MetricSessionValidated, Name: "sessiongate_session_validated_total", Help: "Successfully validated session reads."},
	{ID: sessiongate.MetricSessionMissing, Name: "sessiongate_session_missing_total", Help: "Session reads with no cookie present."},
	{ID: sessiongate.MetricTokenExpired, Name: "sessiongate_token_expired_total", Help: "Tokens rejected past their expiry."},
	{ID: sessiongate.MetricTokenBadSignature, Name: "sessiongate_token_bad_signature_total", Help: "Tokens rejected for signature mismatch."},
	{ID: sessiongate.MetricTokenMalformed, Name: "sessiongate_token_malformed_total", Help: "Tokens rejected as structurally invalid."},
	{ID: sessiongate.MetricSessionDeleted, Name: "sessiongate_session_deleted_total", Help: "Explicit session deletions (logout)."},
	{ID: sessiongate.MetricDecodeThrottled, Name: "sessiongate_decode_throttled_total", Help: "Session reads denied by the decode-failure throttle."},
}

// HistogramDefs is an exported constant or variable used by the session service.
var HistogramDefs = []HistogramDef{
	{ID: sessiongate.MetricDecodeLatency, Name: "sessiongate_decode_latency_seconds", Help: "Token decode latency histogram."},
}

// HistogramBounds is an exported constant or variable used by the session service.
var HistogramBounds = []string{
	"0.005",
	"0.01",
	"0.025",
	"0.05",
	"0.1",
	"0.25",
	"0.5",
	"+Inf",
}

// HistogramBoundSuffix is an exported constant or variable used by the session service.
var HistogramBoundSuffix = []string{
	"0_005",
	"0_01",
	"0_025",
	"0_05",
	"0_1",
	"0_25",
	"0_5",
	"inf",
}

// NormalizeBuckets widens a raw snapshot slice into the fixed bucket array.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets converts per-bucket counts into cumulative counts.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
