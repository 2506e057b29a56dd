// Package session defines the conversation session record, its lifecycle
// stages, and the [Store] interface the conversation manager is injected
// with. Stores can be backed by memory, a cache, or a database without
// changing manager logic.
package session
