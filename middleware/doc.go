// Package middleware exposes the HTTP route-protection adapter built on top
// of sessiongate.Service.GetSession.
//
// # Guards
//
//   - [RequireSession] — cookie-based session enforcement with a bypass
//     allow-list for public paths and static assets.
//
// The guard builds a per-request cookie store, consults GetSession, and
// injects the validated payload into the request context.
//
// # Architecture boundaries
//
// This package translates HTTP semantics into Service calls. It does NOT
// implement authentication logic itself — all decisions are delegated to
// GetSession, whose nil result is the only signal it acts on.
//
// # What this package must NOT do
//
//   - Parse or create session tokens directly (delegates to the Service).
//   - Explain to the client why a credential was rejected. Every failure is
//     the same 401 (or redirect).
package middleware
