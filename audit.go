package sessiongate

import (
	"io"

	internalaudit "github.com/davermont/sessiongate/internal/audit"
)

// Audit event types emitted by the [Service].
const (
	// EventSessionIssued records a successful CreateSession.
	EventSessionIssued = "session.issued"
	// EventSessionRejected records a GetSession that found a cookie but
	// refused it (expired, forged, malformed, or throttled).
	EventSessionRejected = "session.rejected"
	// EventSessionDeleted records an explicit DeleteSession (logout).
	EventSessionDeleted = "session.deleted"
)

// AuditEvent is a structured audit record emitted by the session service.
type AuditEvent = internalaudit.Event

// AuditSink receives [AuditEvent] values from the service’s audit dispatcher.
type AuditSink = internalaudit.Sink

// NoOpSink is an [AuditSink] that silently discards all events.
type NoOpSink = internalaudit.NoOpSink

// ChannelSink is a buffered channel-based [AuditSink].
type ChannelSink = internalaudit.ChannelSink

// JSONWriterSink is an [AuditSink] that writes JSON-encoded events to an
// [io.Writer].
type JSONWriterSink = internalaudit.JSONWriterSink

// NewChannelSink creates a [ChannelSink] with the given buffer capacity.
func NewChannelSink(buffer int) *ChannelSink {
	return internalaudit.NewChannelSink(buffer)
}

// NewJSONWriterSink creates a [JSONWriterSink] writing one event per line.
func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return internalaudit.NewJSONWriterSink(w)
}
