// Package internaldefs holds the shared metric name/help definitions and
// bucket helpers consumed by the prometheus and otel exporters. It exists so
// both exporters render identical series from one source of truth.
package internaldefs
