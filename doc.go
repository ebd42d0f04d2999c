// Package sessiongate issues and verifies stateless, signed session cookies.
//
// A [Service] built through [Builder.Build] is the session-authentication
// boundary of an application: CreateSession binds an authenticated principal
// (user ID + email) into an HMAC-signed, self-expiring token and writes it to
// a [CookieStore] with hardened attributes; GetSession reads the cookie back
// and returns the verified payload, or nil for anything else. There is no
// server-side session table — the signed cookie is the only durable state.
//
// # Architecture boundaries
//
// sessiongate is the public surface. It exposes [Service], [Builder],
// [Config], the [CookieStore] contract, and value types (MetricsSnapshot,
// AuditEvent, etc.). Token encoding lives in the token sub-package; HTTP
// route enforcement lives in the middleware sub-package.
//
// # What this package must NOT do
//
//   - Distinguish expired, forged, and malformed credentials to callers of
//     GetSession. All rejections collapse to nil.
//   - Persist sessions server-side, or renew a token in place. The validity
//     window is fixed at issuance; re-authentication means CreateSession.
//   - Read or write HTTP primitives directly. All cookie I/O goes through
//     the injected [CookieStore].
//
// # Performance contract
//
// GetSession is the hot path. With the decode throttle disabled it performs
// no I/O beyond the cookie store lookup: one HMAC verification and one clock
// comparison, safe for unbounded concurrency against the read-only secret.
package sessiongate
