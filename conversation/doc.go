// Package conversation implements the multi-turn drafting/confirmation state
// machine that assembles a calendar event draft from free-form user text,
// asks for explicit confirmation, and invokes the scheduling tool once
// confirmed.
//
// Each session moves through four stages: idle (no draft), drafting (draft
// incomplete or confirmation declined), confirming (draft complete, awaiting
// confirm/deny/edit), and done (tool executed, terminal until reset). All
// field extraction and edit application is delegated to the [Extractor] and
// [Editor] capabilities; tool execution goes through a [ToolInvoker] whose
// failures are data, not errors.
package conversation
