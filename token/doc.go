// Package token implements the session token codec: an HMAC-SHA256 signed,
// self-expiring compact credential binding a user ID and email to a fixed
// validity window.
//
// # Architecture boundaries
//
// The codec is pure: no I/O, no shared mutable state. The signing secret is
// injected once at construction and never rotated at runtime; key rotation is
// a new-process redeploy.
//
// # What this package must NOT do
//
//   - Touch cookies, HTTP, or any transport. That is the root package's job.
//   - Expose which check rejected a token beyond the internal [Result] tag.
//     [Result.Payload] collapses expired, forged, and malformed uniformly.
//   - Accept tokens signed with any algorithm other than HS256 (including
//     alg=none downgrades).
package token
