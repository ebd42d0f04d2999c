// Package audit implements the asynchronous audit event pipeline used by the
// root session service: a buffered dispatcher with optional drop-if-full
// backpressure, plus the built-in sink implementations re-exported at root.
package audit
