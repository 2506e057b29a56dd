package event

import "strings"

// Draft is the in-progress calendar event record assembled across
// conversation turns. Title, Start, and End are required for completion;
// everything else is optional. Field names double as the JSON contract with
// the extraction and edit collaborators and with the scheduling tool.
type Draft struct {
	Title       string   `json:"title" jsonschema:"description=Title of the event,required"`
	Start       string   `json:"start" jsonschema:"description=Start time ISO 8601 (e.g. 2025-08-24T10:00:00Z),required"`
	End         string   `json:"end" jsonschema:"description=End time ISO 8601 (e.g. 2025-08-24T11:00:00Z),required"`
	Attendees   []string `json:"attendees" jsonschema:"description=List of attendee emails"`
	Description string   `json:"description,omitempty" jsonschema:"description=Description or agenda"`
	Timezone    string   `json:"timezone,omitempty" jsonschema:"description=IANA timezone (e.g. UTC or Asia/Kolkata)"`
}

// requiredFields lists the fields that gate completion, in the fixed order
// they are reported to the user.
var requiredFields = []string{"title", "start", "end"}

// MissingFields returns the names of required fields that are absent or
// blank, always in the order title, start, end.
//
// Start/end ordering and timezone consistency are deliberately not checked
// here; the draft is treated as opaque text until the scheduling tool sees it.
func (d Draft) MissingFields() []string {
	missing := make([]string, 0, len(requiredFields))
	for _, field := range requiredFields {
		var value string
		switch field {
		case "title":
			value = d.Title
		case "start":
			value = d.Start
		case "end":
			value = d.End
		}
		if strings.TrimSpace(value) == "" {
			missing = append(missing, field)
		}
	}
	return missing
}

// Complete reports whether every required field is present and non-blank.
func (d Draft) Complete() bool {
	return len(d.MissingFields()) == 0
}

// Summary renders the draft's present fields as a fixed-order bulleted list:
// title, start, end, attendees (or "None"), then description and timezone
// only when set. Pure; used for every user-facing echo of draft state.
func (d Draft) Summary() string {
	attendees := "None"
	if len(d.Attendees) > 0 {
		attendees = strings.Join(d.Attendees, ", ")
	}

	lines := []string{
		"• Title: " + d.Title,
		"• Start: " + d.Start,
		"• End: " + d.End,
		"• Attendees: " + attendees,
	}
	if d.Description != "" {
		lines = append(lines, "• Description: "+d.Description)
	}
	if d.Timezone != "" {
		lines = append(lines, "• Timezone: "+d.Timezone)
	}
	return strings.Join(lines, "\n")
}
