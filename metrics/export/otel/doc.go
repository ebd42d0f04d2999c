// Package otel bridges the session service's metric snapshot into
// OpenTelemetry observable instruments. Collection is pull-based: the
// registered callback reads a fresh snapshot on every meter collection.
package otel
