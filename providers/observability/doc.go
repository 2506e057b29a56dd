// Package observability defines lightweight tracing and logging interfaces
// consumed throughout the module, plus context helpers for span propagation.
// Components check for a span with [SpanFromContext] and stay silent when no
// provider is installed, so observability is always optional.
package observability
