package conversation

import "testing"

func TestDetect_Affirmative(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"bare yes", "yes"},
		{"uppercase", "YES"},
		{"mixed case with trailing words", "Yes please"},
		{"single letter", "y"},
		{"yeah", "yeah"},
		{"yup", "yup"},
		{"ok", "ok"},
		{"okay with punctuation", "okay!"},
		{"confirm", "confirm"},
		{"create", "create it now"},
		{"do it", "do it"},
		{"leading whitespace", "   yes"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Detect(tc.text); got != DecisionAffirmative {
				t.Errorf("Detect(%q) = %v, want affirmative", tc.text, got)
			}
		})
	}
}

func TestDetect_Negative(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"bare no", "no"},
		{"uppercase", "NO"},
		{"single letter", "n"},
		{"nah", "nah"},
		{"cancel", "cancel that"},
		{"stop", "stop"},
		{"abort", "abort."},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Detect(tc.text); got != DecisionNegative {
				t.Errorf("Detect(%q) = %v, want negative", tc.text, got)
			}
		})
	}
}

// TestDetect_Neither documents the prefix-with-word-boundary semantics:
// tokens extended by word characters do not match.
func TestDetect_Neither(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"elongated no", "noooo"},
		{"creative is not create", "creative title please"},
		{"okra is not ok", "okra salad"},
		{"token in the middle", "I think yes"},
		{"empty", ""},
		{"whitespace only", "   "},
		{"edit instruction", "change title to Standup"},
		{"yesterday is not yes", "yesterday at noon"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Detect(tc.text); got != DecisionNeither {
				t.Errorf("Detect(%q) = %v, want neither", tc.text, got)
			}
		})
	}
}

// TestDetect_TokenListsDisjoint guards the mutual-exclusion property: no
// token may appear in both closed sets.
func TestDetect_TokenListsDisjoint(t *testing.T) {
	seen := make(map[string]bool, len(affirmativeTokens))
	for _, token := range affirmativeTokens {
		seen[token] = true
	}
	for _, token := range negativeTokens {
		if seen[token] {
			t.Errorf("token %q appears in both lists", token)
		}
	}
}
