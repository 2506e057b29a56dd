package calendar

import (
	"context"
	"strings"
	"testing"
)

func completeInput() CreateInput {
	return CreateInput{
		Title:     "Team Sync",
		Start:     "2026-09-01T10:00:00Z",
		End:       "2026-09-01T10:30:00Z",
		Attendees: []string{"bob@example.com"},
	}
}

func TestCreate_Success(t *testing.T) {
	out, err := Create(context.Background(), completeInput())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if !strings.HasPrefix(out.ID, "evt_") {
		t.Errorf("ID = %q, want evt_ prefix", out.ID)
	}
	if len(out.ID) != len("evt_")+8 {
		t.Errorf("ID = %q, want 8 random characters after the prefix", out.ID)
	}
	if out.HTMLLink != htmlLinkPrefix+out.ID {
		t.Errorf("HTMLLink = %q", out.HTMLLink)
	}
	if out.Title != "Team Sync" || out.Start != "2026-09-01T10:00:00Z" {
		t.Errorf("output echoes input, got %+v", out)
	}
}

func TestCreate_UniqueIDs(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		out, err := Create(context.Background(), completeInput())
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if seen[out.ID] {
			t.Fatalf("duplicate event id %q", out.ID)
		}
		seen[out.ID] = true
	}
}

func TestCreate_MissingRequiredFields(t *testing.T) {
	tests := []struct {
		name  string
		input CreateInput
	}{
		{"no title", CreateInput{Start: "2026-09-01T10:00:00Z", End: "2026-09-01T11:00:00Z"}},
		{"no start", CreateInput{Title: "Sync", End: "2026-09-01T11:00:00Z"}},
		{"no end", CreateInput{Title: "Sync", Start: "2026-09-01T10:00:00Z"}},
		{"blank title", CreateInput{Title: "   ", Start: "2026-09-01T10:00:00Z", End: "2026-09-01T11:00:00Z"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Create(context.Background(), tc.input)
			if err == nil || !strings.Contains(err.Error(), "missing required fields") {
				t.Errorf("Create() error = %v, want missing-fields error", err)
			}
		})
	}
}

func TestCreate_Defaults(t *testing.T) {
	input := completeInput()
	input.Attendees = nil
	input.Timezone = ""

	out, err := Create(context.Background(), input)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if out.Timezone != "UTC" {
		t.Errorf("Timezone = %q, want UTC default", out.Timezone)
	}
	if out.Attendees == nil || len(out.Attendees) != 0 {
		t.Errorf("Attendees = %v, want empty non-nil slice", out.Attendees)
	}
}

func TestCreate_ICSRendering(t *testing.T) {
	input := completeInput()
	input.Description = "Quarterly planning"

	out, err := Create(context.Background(), input)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	for _, want := range []string{
		"BEGIN:VCALENDAR",
		"BEGIN:VEVENT",
		"SUMMARY:Team Sync",
		"UID:" + out.ID,
		"bob@example.com",
		"END:VEVENT",
		"END:VCALENDAR",
	} {
		if !strings.Contains(out.ICS, want) {
			t.Errorf("ICS missing %q:\n%s", want, out.ICS)
		}
	}
}

func TestNewCreateEventTool_Schema(t *testing.T) {
	createTool := NewCreateEventTool()
	info := createTool.ToolInfo()

	if info.Name != ToolName {
		t.Errorf("Name = %q, want %q", info.Name, ToolName)
	}
	if info.Parameters == nil {
		t.Fatal("Parameters schema is nil")
	}

	required := make(map[string]bool)
	for _, field := range info.Parameters.Required {
		required[field] = true
	}
	for _, field := range []string{"title", "start", "end"} {
		if !required[field] {
			t.Errorf("field %q should be required, got %v", field, info.Parameters.Required)
		}
	}
	if required["attendees"] || required["description"] || required["timezone"] {
		t.Errorf("optional fields marked required: %v", info.Parameters.Required)
	}
}
