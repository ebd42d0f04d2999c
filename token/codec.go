package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultTTL is the validity window stamped on issued tokens when the
// configuration does not override it.
const DefaultTTL = 7 * 24 * time.Hour

// minSecretLength rejects keys shorter than the HMAC-SHA256 output size.
const minSecretLength = 32

// Status defines a public type used by sessiongate APIs.
//
// Status instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Status uint8

const (
	// StatusValid is an exported constant or variable used by the session service.
	StatusValid Status = iota
	// StatusExpired is an exported constant or variable used by the session service.
	StatusExpired
	// StatusBadSignature is an exported constant or variable used by the session service.
	StatusBadSignature
	// StatusMalformed is an exported constant or variable used by the session service.
	StatusMalformed
)

// Payload is the authenticated claim set carried by a session token.
// Invariant at issuance: ExpiresAt == IssuedAt + Config.TTL, fixed for the
// life of the token. There is no renewal operation.
type Payload struct {
	UserID    string
	Email     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Result is the tagged outcome of [Codec.Decode]. The tag exists for
// internal observability and tests; callers deciding authentication must
// use [Result.Payload], which collapses every non-valid status to nil.
type Result struct {
	Status  Status
	payload *Payload
}

// Valid reports whether the decoded token passed structural, signature,
// and expiry checks.
func (r Result) Valid() bool {
	return r.Status == StatusValid
}

// Payload returns the verified claim set, or nil for any rejection. The
// nil collapse is deliberate: the externally observable outcome must not
// reveal why a credential failed.
func (r Result) Payload() *Payload {
	if r.Status != StatusValid {
		return nil
	}
	return r.payload
}

// Config defines a public type used by sessiongate APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	Secret []byte
	TTL    time.Duration
	Issuer string
	Now    func() time.Time
}

// Codec signs session payloads into compact JWS strings and verifies them
// back. All operations are pure functions of (input, secret, current time);
// a Codec is safe for concurrent use.
type Codec struct {
	config Config
	now    func() time.Time
}

type sessionClaims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// NewCodec describes the newcodec operation and its observable behavior.
//
// NewCodec may return an error when input validation, dependency calls, or security checks fail.
// NewCodec does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewCodec(cfg Config) (*Codec, error) {
	if len(cfg.Secret) < minSecretLength {
		return nil, errors.New("secret must be at least 32 bytes")
	}
	if cfg.TTL < 0 {
		return nil, errors.New("invalid TTL configuration")
	}
	if cfg.TTL == 0 {
		cfg.TTL = DefaultTTL
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	cfg.Secret = append([]byte(nil), cfg.Secret...)

	return &Codec{config: cfg, now: now}, nil
}

// Encode stamps issuedAt = now and expiresAt = now + TTL, signs the claim
// set with HMAC-SHA256, and returns the compact token together with the
// payload it certifies. Each token carries a unique jti.
func (c *Codec) Encode(userID, email string) (string, *Payload, error) {
	if userID == "" {
		return "", nil, errors.New("userID is required")
	}

	issuedAt := c.now()
	expiresAt := issuedAt.Add(c.config.TTL)

	claims := sessionClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ID:        uuid.NewString(),
			Issuer:    c.config.Issuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.config.Secret)
	if err != nil {
		return "", nil, err
	}

	payload := &Payload{
		UserID:    userID,
		Email:     email,
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
	}

	return signed, payload, nil
}

// Decode verifies structure, signature, and expiry, in that order, and
// never panics on arbitrary input. Signature comparison is constant time
// (hmac.Equal inside the verifier).
func (c *Codec) Decode(tokenStr string) Result {
	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.now),
		jwt.WithExpirationRequired(),
	}
	if c.config.Issuer != "" {
		options = append(options, jwt.WithIssuer(c.config.Issuer))
	}

	parser := jwt.NewParser(options...)
	parsed, err := parser.ParseWithClaims(tokenStr, &sessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		return c.config.Secret, nil
	})
	if err != nil {
		return Result{Status: classify(err)}
	}

	claims, ok := parsed.Claims.(*sessionClaims)
	if !ok || !parsed.Valid {
		return Result{Status: StatusMalformed}
	}
	if claims.Subject == "" || claims.IssuedAt == nil || claims.ExpiresAt == nil {
		return Result{Status: StatusMalformed}
	}

	return Result{
		Status: StatusValid,
		payload: &Payload{
			UserID:    claims.Subject,
			Email:     claims.Email,
			IssuedAt:  claims.IssuedAt.Time,
			ExpiresAt: claims.ExpiresAt.Time,
		},
	}
}

func classify(err error) Status {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return StatusExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return StatusBadSignature
	default:
		return StatusMalformed
	}
}
