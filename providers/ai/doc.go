// Package ai defines the provider-agnostic chat-completion contract used by
// the rest of the module: the [Provider] interface, the request/response
// models, and the [ToolResult] envelope that normalizes tool outcomes.
package ai
