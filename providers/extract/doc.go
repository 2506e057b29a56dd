// Package extract implements the LLM-backed draft extraction and edit
// application used by the conversation manager. A single Drafter serves both
// capabilities: turning an initial utterance into a draft, and rewriting an
// existing draft according to a change request.
package extract
