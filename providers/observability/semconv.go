package observability

// Semantic conventions for observability attributes and events. These
// constants keep attribute names consistent across components.

// --- Conversation attributes ---

const (
	// AttrSessionID is the opaque identifier of the conversation session.
	AttrSessionID = "conversation.session_id"

	// AttrStage is the session stage when a turn begins.
	AttrStage = "conversation.stage"

	// AttrNextStage is the session stage after a turn completes.
	AttrNextStage = "conversation.next_stage"

	// AttrDecision is the tri-state confirmation decision for an utterance.
	AttrDecision = "conversation.decision"

	// AttrMissingFields is the comma-joined list of missing required draft fields.
	AttrMissingFields = "conversation.missing_fields"
)

// --- Conversation events ---

const (
	// EventDraftExtracted is recorded when a new draft is produced from free text.
	EventDraftExtracted = "conversation.draft.extracted"

	// EventDraftEdited is recorded when an edit instruction was applied to a draft.
	EventDraftEdited = "conversation.draft.edited"

	// EventSessionReset is recorded when a session is explicitly removed.
	EventSessionReset = "conversation.session.reset"
)

// --- Session store events ---

const (
	// EventSessionCreate is recorded when a store materializes a new session.
	EventSessionCreate = "session.create"

	// EventSessionDelete is recorded when a session record is removed.
	EventSessionDelete = "session.delete"
)

// --- LLM provider attributes ---

const (
	// AttrLLMProvider is the name of the LLM backend (e.g. "groq").
	AttrLLMProvider = "llm.provider"

	// AttrLLMModel is the model identifier.
	AttrLLMModel = "llm.model"

	// AttrLLMFinishReason is the reason the generation finished.
	AttrLLMFinishReason = "llm.finish_reason"
)

// --- Tool execution attributes and events ---

const (
	// AttrToolName is the name of the tool being executed.
	AttrToolName = "tool.name"

	// AttrToolInput is the serialized tool input.
	AttrToolInput = "tool.input"

	// AttrToolOutput is the serialized tool output.
	AttrToolOutput = "tool.output"

	// AttrToolDuration is the execution duration.
	AttrToolDuration = "tool.duration"

	// AttrToolError is the error message if tool execution failed.
	AttrToolError = "tool.error"

	// EventToolExecutionStart marks the beginning of a tool execution.
	EventToolExecutionStart = "tool.execution.start"

	// EventToolExecutionEnd marks the end of a tool execution.
	EventToolExecutionEnd = "tool.execution.end"
)

// --- HTTP attributes ---

const (
	// AttrHTTPMethod is the HTTP request method.
	AttrHTTPMethod = "http.method"

	// AttrHTTPURL is the full request URL.
	AttrHTTPURL = "http.url"

	// AttrHTTPStatusCode is the response status code.
	AttrHTTPStatusCode = "http.status_code"
)
