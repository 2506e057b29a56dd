package parse

import (
	"strings"
	"testing"
)

type person struct {
	Name string `json:"name"`
	Age  int    `json:"age"`
}

func TestJSONAs_ValidJSON(t *testing.T) {
	got, err := JSONAs[person](`{"name":"John","age":30}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != "John" || got.Age != 30 {
		t.Errorf("unexpected result: %+v", got)
	}
}

// TestJSONAs_RepairableJSON verifies that common LLM output defects
// (unquoted keys, single quotes, trailing commas) are repaired before decoding.
func TestJSONAs_RepairableJSON(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unquoted keys and single quotes", `{name: 'John', age: 30}`},
		{"trailing comma", `{"name": "John", "age": 30,}`},
		{"code fence", "```json\n{\"name\": \"John\", \"age\": 30}\n```"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := JSONAs[person](tc.content)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Name != "John" || got.Age != 30 {
				t.Errorf("unexpected result: %+v", got)
			}
		})
	}
}

func TestJSONAs_Unrepairable(t *testing.T) {
	_, err := JSONAs[person](`this is not JSON at all, not even close {{{`)
	if err == nil {
		t.Fatal("expected an error for unrepairable content")
	}
	if !strings.Contains(err.Error(), "failed to unmarshal") {
		t.Errorf("error should mention the unmarshal failure, got: %v", err)
	}
}

func TestJSONAs_Slice(t *testing.T) {
	got, err := JSONAs[[]string](`["a@b.com", "c@d.com"]`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0] != "a@b.com" {
		t.Errorf("unexpected result: %v", got)
	}
}
