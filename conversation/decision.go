package conversation

import (
	"strings"
	"unicode"
)

// Decision is the tri-state outcome of interpreting an utterance while a
// confirmation is pending.
type Decision int

const (
	// DecisionNeither means the utterance is neither a confirmation nor a
	// refusal and should be treated as an edit instruction.
	DecisionNeither Decision = iota
	// DecisionAffirmative means the user confirmed.
	DecisionAffirmative
	// DecisionNegative means the user declined.
	DecisionNegative
)

// String returns a readable name for the decision, used in span attributes.
func (d Decision) String() string {
	switch d {
	case DecisionAffirmative:
		return "affirmative"
	case DecisionNegative:
		return "negative"
	default:
		return "neither"
	}
}

// The closed token sets for confirmation detection. No token appears in both
// lists, so the decision is unambiguous by construction.
var (
	affirmativeTokens = []string{"y", "yes", "yeah", "yup", "ok", "okay", "confirm", "create", "do it"}
	negativeTokens    = []string{"n", "no", "nah", "cancel", "stop", "abort"}
)

// Detect classifies text as affirmative, negative, or neither. Matching is
// case-insensitive and anchored at the start of the trimmed input, with a
// word boundary after the token: "Yes please" is affirmative, while "noooo"
// and "creative" are neither. Pure function, no state.
func Detect(text string) Decision {
	trimmed := strings.ToLower(strings.TrimSpace(text))

	for _, token := range affirmativeTokens {
		if matchesLeadingToken(trimmed, token) {
			return DecisionAffirmative
		}
	}
	for _, token := range negativeTokens {
		if matchesLeadingToken(trimmed, token) {
			return DecisionNegative
		}
	}
	return DecisionNeither
}

// matchesLeadingToken reports whether text begins with token followed by a
// word boundary (end of input or a non-word rune).
func matchesLeadingToken(text, token string) bool {
	if !strings.HasPrefix(text, token) {
		return false
	}
	rest := text[len(token):]
	if rest == "" {
		return true
	}
	next := []rune(rest)[0]
	return !unicode.IsLetter(next) && !unicode.IsDigit(next) && next != '_'
}
