// Package slogobs provides an observability.Provider backed by the standard
// library's log/slog, suitable for lightweight single-process deployments.
package slogobs
