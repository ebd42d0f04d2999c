// Package prometheus renders the session service's metric snapshot in
// Prometheus text exposition format, without pulling in the client library:
// the snapshot already carries final counter values, so a small renderer is
// the entire integration.
package prometheus
