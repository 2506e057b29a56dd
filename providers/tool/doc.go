// Package tool provides typed, schema-described tools, a concurrency-safe
// catalog keyed by name, and a [Gateway] that dispatches tools while
// normalizing every failure into an [ai.ToolResult] envelope.
package tool
