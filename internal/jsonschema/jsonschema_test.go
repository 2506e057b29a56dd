package jsonschema

import (
	"testing"
)

type searchInput struct {
	Query      string   `json:"query" jsonschema:"description=The search query,required"`
	NumResults int      `json:"num_results,omitempty" jsonschema:"description=Number of results,default=3"`
	Domains    []string `json:"domains,omitempty"`
	Deep       bool     `json:"deep,omitempty"`
	hidden     string   //nolint:unused // verifies unexported fields are skipped
	Skipped    string   `json:"-"`
}

func TestGenerateJSONSchema_Struct(t *testing.T) {
	schema := GenerateJSONSchema[searchInput]()

	if schema.Type != "object" {
		t.Fatalf("expected object schema, got %q", schema.Type)
	}

	query, ok := schema.Properties["query"]
	if !ok {
		t.Fatal("expected a query property")
	}
	if query.Type != "string" {
		t.Errorf("expected query type string, got %q", query.Type)
	}
	if query.Description != "The search query" {
		t.Errorf("unexpected description: %q", query.Description)
	}

	num, ok := schema.Properties["num_results"]
	if !ok {
		t.Fatal("expected a num_results property")
	}
	if num.Type != "integer" {
		t.Errorf("expected integer, got %q", num.Type)
	}
	if num.Default != "3" {
		t.Errorf("expected default 3, got %v", num.Default)
	}

	domains, ok := schema.Properties["domains"]
	if !ok {
		t.Fatal("expected a domains property")
	}
	if domains.Type != "array" || domains.Items == nil || domains.Items.Type != "string" {
		t.Errorf("unexpected domains schema: %+v", domains)
	}

	if deep := schema.Properties["deep"]; deep == nil || deep.Type != "boolean" {
		t.Errorf("unexpected deep schema: %+v", deep)
	}

	if _, ok := schema.Properties["Skipped"]; ok {
		t.Error("json:\"-\" fields must be skipped")
	}
	if _, ok := schema.Properties["hidden"]; ok {
		t.Error("unexported fields must be skipped")
	}

	if len(schema.Required) != 1 || schema.Required[0] != "query" {
		t.Errorf("expected required=[query], got %v", schema.Required)
	}
}

func TestGenerateJSONSchema_Enum(t *testing.T) {
	type op struct {
		Kind string `json:"kind" jsonschema:"enum=add,enum=remove,required"`
	}

	schema := GenerateJSONSchema[op]()
	kind := schema.Properties["kind"]
	if kind == nil {
		t.Fatal("expected kind property")
	}
	if len(kind.Enum) != 2 || kind.Enum[0] != "add" || kind.Enum[1] != "remove" {
		t.Errorf("unexpected enum: %v", kind.Enum)
	}
}

func TestGenerateJSONSchema_Pointer(t *testing.T) {
	type wrapper struct {
		Note *string `json:"note,omitempty"`
	}

	schema := GenerateJSONSchema[wrapper]()
	note := schema.Properties["note"]
	if note == nil || note.Type != "string" {
		t.Errorf("pointer fields should use their element type, got %+v", note)
	}
}

func TestGenerateJSONSchema_Primitive(t *testing.T) {
	if got := GenerateJSONSchema[float64](); got.Type != "number" {
		t.Errorf("expected number, got %q", got.Type)
	}
	if got := GenerateJSONSchema[[]int](); got.Type != "array" || got.Items.Type != "integer" {
		t.Errorf("unexpected slice schema: %+v", got)
	}
}
