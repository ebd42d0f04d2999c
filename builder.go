package sessiongate

import (
	"errors"
	"time"

	internalaudit "github.com/davermont/sessiongate/internal/audit"
	"github.com/davermont/sessiongate/token"
	"github.com/redis/go-redis/v9"
)

// Builder defines a public type used by sessiongate APIs.
//
// Builder instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Builder struct {
	config Config
	redis  *redis.Client

	auditSink AuditSink
	clock     func() time.Time

	built bool
}

// New describes the new operation and its observable behavior.
//
// New does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig describes the withconfig operation and its observable behavior.
//
// WithConfig does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithSecret sets the process-wide signing key. Load it once at startup
// from a secure source; rotation is a new-process redeploy, not a live
// code path.
func (b *Builder) WithSecret(secret []byte) *Builder {
	b.config.Token.Secret = cloneBytes(secret)
	return b
}

// WithEnvironment describes the withenvironment operation and its observable behavior.
//
// WithEnvironment does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithEnvironment(env Environment) *Builder {
	b.config.Environment = env
	return b
}

// WithRedis describes the withredis operation and its observable behavior.
//
// WithRedis does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithRedis(client *redis.Client) *Builder {
	b.redis = client
	return b
}

// WithAuditSink describes the withauditsink operation and its observable behavior.
//
// WithAuditSink does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	b.config.Audit.Enabled = true
	return b
}

// WithClock overrides the time source used for issuance, expiry checks,
// and audit timestamps. Intended for tests.
func (b *Builder) WithClock(now func() time.Time) *Builder {
	b.clock = now
	return b
}

// WithMetricsEnabled describes the withmetricsenabled operation and its observable behavior.
//
// WithMetricsEnabled does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// WithLatencyHistograms describes the withlatencyhistograms operation and its observable behavior.
//
// WithLatencyHistograms does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithLatencyHistograms(enabled bool) *Builder {
	b.config.Metrics.EnableLatencyHistograms = enabled
	return b
}

// WithDecodeThrottle describes the withdecodethrottle operation and its observable behavior.
//
// WithDecodeThrottle does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithDecodeThrottle(enabled bool) *Builder {
	b.config.Security.EnableDecodeThrottle = enabled
	return b
}

// Build validates the configuration and assembles the [Service]. A builder
// may be used exactly once.
//
// Build may return an error when input validation, dependency calls, or security checks fail.
func (b *Builder) Build() (*Service, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := cloneConfig(b.config)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.Security.EnableDecodeThrottle && b.redis == nil {
		return nil, errors.New("decode throttle requires redis client")
	}

	clock := b.clock
	if clock == nil {
		clock = time.Now
	}

	codec, err := token.NewCodec(token.Config{
		Secret: cfg.Token.Secret,
		TTL:    cfg.Token.TTL,
		Issuer: cfg.Token.Issuer,
		Now:    clock,
	})
	if err != nil {
		return nil, err
	}

	service := &Service{
		config:  cfg,
		codec:   codec,
		metrics: NewMetrics(cfg.Metrics),
		audit: internalaudit.NewDispatcher(internalaudit.Config{
			Enabled:    cfg.Audit.Enabled,
			BufferSize: cfg.Audit.BufferSize,
			DropIfFull: cfg.Audit.DropIfFull,
		}, b.auditSink),
		clock: clock,
	}

	if cfg.Security.EnableDecodeThrottle {
		service.throttle = newDecodeThrottle(b.redis, cfg.Security)
	}

	b.built = true

	return service, nil
}
