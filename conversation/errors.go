package conversation

import "errors"

// Collaborator failure sentinels. Implementations of [Extractor] and [Editor]
// wrap these when the model's output cannot be parsed into a draft, so the
// manager can recover locally: the user sees an apology and the session keeps
// its previous state (idle stays idle with no draft persisted; drafting and
// confirming retain the prior valid draft).
var (
	// ErrMalformedExtraction means the extraction collaborator returned
	// output that does not parse as a draft.
	ErrMalformedExtraction = errors.New("extraction returned malformed draft output")

	// ErrMalformedEdit means the edit-application collaborator returned
	// output that does not parse as a draft.
	ErrMalformedEdit = errors.New("edit application returned malformed draft output")
)
