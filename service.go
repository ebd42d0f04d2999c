package sessiongate

import (
	"context"
	"errors"
	"net/http"
	"time"

	internalaudit "github.com/davermont/sessiongate/internal/audit"
	"github.com/davermont/sessiongate/token"
)

// Service orchestrates the session lifecycle: it builds payloads, delegates
// signing to the token codec, and applies the cookie attribute policy
// against the per-request [CookieStore]. Safe for concurrent use after
// [Builder.Build]; the only shared state is the read-only secret, the
// metrics counters, and the audit dispatcher.
type Service struct {
	config   Config
	codec    *token.Codec
	metrics  *Metrics
	audit    *internalaudit.Dispatcher
	throttle *decodeThrottle
	clock    func() time.Time
}

// CreateSession signs a session token for the given principal and writes it
// under the configured cookie name with httpOnly=true, sameSite=lax, the
// configured path, secure only in production, and an expiry that exactly
// mirrors the token's validity window.
//
// CreateSession may return an error when input validation, dependency calls, or security checks fail.
// CreateSession does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *Service) CreateSession(ctx context.Context, store CookieStore, userID, email string) error {
	if store == nil {
		return errors.New("cookie store required")
	}

	signed, payload, err := s.codec.Encode(userID, email)
	if err != nil {
		return err
	}

	store.Set(s.config.Cookie.Name, signed, Attributes{
		Path:     s.config.Cookie.Path,
		Domain:   s.config.Cookie.Domain,
		Expires:  payload.ExpiresAt,
		HttpOnly: true,
		Secure:   s.config.Environment == EnvProduction,
		SameSite: http.SameSiteLaxMode,
	})

	s.metrics.Inc(MetricSessionIssued)
	s.emit(ctx, AuditEvent{
		EventType: EventSessionIssued,
		UserID:    userID,
		Email:     email,
		IP:        clientIPFromContext(ctx),
		Success:   true,
	})

	return nil
}

// GetSession is the single authority consulted by route protection. It
// returns the verified payload, or nil when the cookie is absent, the token
// is rejected for any reason, or the caller is throttled. It never returns
// an error: "authenticated" is exactly a non-nil result.
func (s *Service) GetSession(ctx context.Context, store CookieStore) *token.Payload {
	if store == nil {
		return nil
	}

	raw, ok := store.Get(s.config.Cookie.Name)
	if !ok {
		s.metrics.Inc(MetricSessionMissing)
		return nil
	}

	ip := clientIPFromContext(ctx)
	if s.throttle != nil {
		if err := s.throttle.Check(ctx, ip); errors.Is(err, errDecodeThrottled) {
			s.metrics.Inc(MetricDecodeThrottled)
			s.emit(ctx, AuditEvent{
				EventType: EventSessionRejected,
				IP:        ip,
				Reason:    "throttled",
			})
			return nil
		}
	}

	start := time.Now()
	result := s.codec.Decode(raw)
	s.metrics.Observe(MetricDecodeLatency, time.Since(start))

	if !result.Valid() {
		s.recordRejection(ctx, ip, result.Status)
		return nil
	}

	if s.throttle != nil {
		_ = s.throttle.Reset(ctx, ip)
	}
	s.metrics.Inc(MetricSessionValidated)

	return result.Payload()
}

// DeleteSession removes the session cookie (logout). Deleting an absent
// cookie is a no-op; the operation is idempotent.
func (s *Service) DeleteSession(ctx context.Context, store CookieStore) {
	if store == nil {
		return
	}

	store.Delete(s.config.Cookie.Name)
	s.metrics.Inc(MetricSessionDeleted)
	s.emit(ctx, AuditEvent{
		EventType: EventSessionDeleted,
		IP:        clientIPFromContext(ctx),
		Success:   true,
	})
}

func (s *Service) recordRejection(ctx context.Context, ip string, status token.Status) {
	var reason string
	switch status {
	case token.StatusExpired:
		s.metrics.Inc(MetricTokenExpired)
		reason = "expired"
	case token.StatusBadSignature:
		s.metrics.Inc(MetricTokenBadSignature)
		reason = "bad_signature"
	default:
		s.metrics.Inc(MetricTokenMalformed)
		reason = "malformed"
	}

	if s.throttle != nil {
		_ = s.throttle.RecordFailure(ctx, ip)
	}

	s.emit(ctx, AuditEvent{
		EventType: EventSessionRejected,
		IP:        ip,
		Reason:    reason,
	})
}

func (s *Service) emit(ctx context.Context, event AuditEvent) {
	if s.audit == nil {
		return
	}
	event.Timestamp = s.clock()
	s.audit.Emit(ctx, event)
}

// MetricsSnapshot returns a point-in-time copy of all counters and the
// decode latency histogram.
func (s *Service) MetricsSnapshot() MetricsSnapshot {
	return s.metrics.Snapshot()
}

// AuditDropped reports audit events discarded due to dispatcher backpressure.
func (s *Service) AuditDropped() uint64 {
	return s.audit.Dropped()
}

// Close drains and stops the audit dispatcher. Idempotent; safe on a
// service built without auditing.
func (s *Service) Close() {
	s.audit.Close()
}
