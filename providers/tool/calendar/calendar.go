package calendar

import (
	"context"
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"schedbot/providers/tool"
)

// ToolName is the registered name of the event-creation tool. The real
// Google-backed implementation registers under the same name so the
// conversation layer does not care which backend is active.
const ToolName = "create_calendar_event"

const (
	defaultTimezone = "UTC"
	htmlLinkPrefix  = "https://calendar.google.com/calendar/u/0/r/eventedit/"
)

// CreateInput carries the fields of a confirmed event draft.
type CreateInput struct {
	Title       string   `json:"title" jsonschema:"description=Title of the event,required"`
	Start       string   `json:"start" jsonschema:"description=Start time ISO 8601 (e.g. 2025-08-24T10:00:00Z),required"`
	End         string   `json:"end" jsonschema:"description=End time ISO 8601 (e.g. 2025-08-24T11:00:00Z),required"`
	Attendees   []string `json:"attendees" jsonschema:"description=List of attendee emails"`
	Description string   `json:"description,omitempty" jsonschema:"description=Description/agenda"`
	Timezone    string   `json:"timezone,omitempty" jsonschema:"description=IANA timezone (e.g. UTC or Asia/Kolkata)"`
}

// CreateOutput describes the created event.
type CreateOutput struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Start       string   `json:"start"`
	End         string   `json:"end"`
	Attendees   []string `json:"attendees"`
	Description string   `json:"description"`
	Timezone    string   `json:"timezone"`
	HTMLLink    string   `json:"html_link"`
	ICS         string   `json:"ics"`
}

// NewCreateEventTool creates the simulated calendar-event tool. It fabricates
// an event identifier and edit link without calling any external API, and
// renders the event as an iCalendar document for export.
func NewCreateEventTool() *tool.Tool[CreateInput, CreateOutput] {
	return tool.NewTool[CreateInput, CreateOutput](
		ToolName,
		Create,
		tool.WithDescription("Creates a calendar event from a confirmed draft. Requires title, start and end; attendees, description and timezone are optional. Returns the event id, an edit link and an iCalendar rendering."),
	)
}

// Create validates the required fields and fabricates the created event.
func Create(_ context.Context, input CreateInput) (CreateOutput, error) {
	if strings.TrimSpace(input.Title) == "" ||
		strings.TrimSpace(input.Start) == "" ||
		strings.TrimSpace(input.End) == "" {
		return CreateOutput{}, fmt.Errorf("missing required fields (title/start/end)")
	}

	timezone := input.Timezone
	if timezone == "" {
		timezone = defaultTimezone
	}
	attendees := input.Attendees
	if attendees == nil {
		attendees = []string{}
	}

	eventID := "evt_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:8]

	out := CreateOutput{
		ID:          eventID,
		Title:       input.Title,
		Start:       input.Start,
		End:         input.End,
		Attendees:   attendees,
		Description: input.Description,
		Timezone:    timezone,
		HTMLLink:    htmlLinkPrefix + eventID,
	}

	icsDoc, err := renderICS(out)
	if err != nil {
		return CreateOutput{}, fmt.Errorf("rendering iCalendar document: %w", err)
	}
	out.ICS = icsDoc

	return out, nil
}

// renderICS builds a VCALENDAR with a single VEVENT for the created event.
// Start and end are kept verbatim when they do not parse as RFC 3339 so the
// export never blocks event creation on format trivia.
func renderICS(out CreateOutput) (string, error) {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodRequest)
	cal.SetProductId("-//schedbot//calendar//EN")

	ev := cal.AddEvent(out.ID)
	ev.SetSummary(out.Title)
	ev.SetURL(out.HTMLLink)
	ev.SetDtStampTime(time.Now().UTC())

	if start, err := time.Parse(time.RFC3339, out.Start); err == nil {
		ev.SetStartAt(start)
	} else {
		ev.SetProperty(ics.ComponentPropertyDtStart, out.Start)
	}
	if end, err := time.Parse(time.RFC3339, out.End); err == nil {
		ev.SetEndAt(end)
	} else {
		ev.SetProperty(ics.ComponentPropertyDtEnd, out.End)
	}

	if out.Description != "" {
		ev.SetDescription(out.Description)
	}
	for _, attendee := range out.Attendees {
		ev.AddAttendee(attendee, ics.ParticipationStatusNeedsAction)
	}

	return cal.Serialize(), nil
}
