package sessiongate

import (
	"errors"
	"strings"
	"time"
)

// Environment defines a public type used by sessiongate APIs.
//
// Environment instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Environment uint8

const (
	// EnvDevelopment is an exported constant or variable used by the session service.
	EnvDevelopment Environment = iota
	// EnvProduction is an exported constant or variable used by the session service.
	EnvProduction
)

// Config defines a public type used by sessiongate APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	Token       TokenConfig
	Cookie      CookieConfig
	Security    SecurityConfig
	Audit       AuditConfig
	Metrics     MetricsConfig
	Environment Environment
}

/*
====================================
TOKEN CONFIG
====================================
*/

// TokenConfig defines a public type used by sessiongate APIs.
//
// TokenConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type TokenConfig struct {
	Secret []byte        // process-wide HMAC key, loaded once at startup
	TTL    time.Duration // fixed validity window stamped at issuance
	Issuer string        // optional iss claim, verified when set
}

/*
====================================
COOKIE CONFIG
====================================
*/

// CookieConfig defines a public type used by sessiongate APIs.
//
// CookieConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CookieConfig struct {
	Name   string
	Path   string
	Domain string
}

/*
====================================
SECURITY CONFIG
====================================
*/

// SecurityConfig defines a public type used by sessiongate APIs.
//
// SecurityConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type SecurityConfig struct {
	EnableDecodeThrottle bool
	MaxDecodeFailures    int
	DecodeCooldown       time.Duration
}

/*
====================================
AUDIT CONFIG
====================================
*/

// AuditConfig defines a public type used by sessiongate APIs.
//
// AuditConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

/*
====================================
METRICS CONFIG
====================================
*/

// MetricsConfig defines a public type used by sessiongate APIs.
//
// MetricsConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

/*
====================================
DEFAULT CONFIG
====================================
*/

// DefaultConfig returns the configuration applied by [New] before any
// builder overrides. The secret is intentionally absent and must be supplied
// by the caller.
func DefaultConfig() Config {
	return defaultConfig()
}

func defaultConfig() Config {
	return Config{
		Token: TokenConfig{
			TTL: 7 * 24 * time.Hour,
		},
		Cookie: CookieConfig{
			Name: "auth-token",
			Path: "/",
		},
		Security: SecurityConfig{
			EnableDecodeThrottle: false,
			MaxDecodeFailures:    20,
			DecodeCooldown:       time.Minute,
		},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 1024,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled:                 false,
			EnableLatencyHistograms: false,
		},
		Environment: EnvDevelopment,
	}
}

func cloneConfig(cfg Config) Config {
	out := cfg
	out.Token.Secret = cloneBytes(cfg.Token.Secret)
	return out
}

func cloneBytes(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

/*
====================================
VALIDATION
====================================
*/

// Validate describes the validate operation and its observable behavior.
//
// Validate may return an error when input validation, dependency calls, or security checks fail.
// Validate does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Config) Validate() error {
	// Token
	if len(c.Token.Secret) < 32 {
		return errors.New("Token Secret must be at least 32 bytes")
	}
	if c.Token.TTL <= 0 {
		return errors.New("Token TTL must be > 0")
	}

	// Cookie
	if c.Token.Issuer != strings.TrimSpace(c.Token.Issuer) {
		return errors.New("Token Issuer must not have surrounding whitespace")
	}
	if c.Cookie.Name == "" {
		return errors.New("Cookie Name must not be empty")
	}
	if strings.ContainsAny(c.Cookie.Name, " \t;,=") {
		return errors.New("Cookie Name contains invalid characters")
	}
	if !strings.HasPrefix(c.Cookie.Path, "/") {
		return errors.New("Cookie Path must start with '/'")
	}

	// Security
	if c.Security.EnableDecodeThrottle {
		if c.Security.MaxDecodeFailures <= 0 {
			return errors.New("Security MaxDecodeFailures must be > 0 when the decode throttle is enabled")
		}
		if c.Security.DecodeCooldown <= 0 {
			return errors.New("Security DecodeCooldown must be > 0 when the decode throttle is enabled")
		}
	}

	// Audit
	if c.Audit.Enabled && c.Audit.BufferSize <= 0 {
		return errors.New("Audit BufferSize must be > 0 when auditing is enabled")
	}

	switch c.Environment {
	case EnvDevelopment, EnvProduction:
	default:
		return errors.New("unknown Environment")
	}

	return nil
}
