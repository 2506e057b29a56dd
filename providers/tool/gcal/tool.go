package gcal

import (
	"context"
	"fmt"
	"strings"

	gcalendar "google.golang.org/api/calendar/v3"

	"schedbot/providers/tool"
	"schedbot/providers/tool/calendar"
)

const defaultCalendarID = "primary"

// CreateOutput describes an event created on Google Calendar.
type CreateOutput struct {
	ID       string `json:"id"`
	Status   string `json:"status"`
	HTMLLink string `json:"html_link"`
	Created  string `json:"created"`
}

// NewCreateEventTool wraps the authenticated client as a tool. It registers
// under the same name and input schema as the simulated backend, so the
// conversation layer is oblivious to which one is active.
func NewCreateEventTool(client *Client, calendarID string) *tool.Tool[calendar.CreateInput, CreateOutput] {
	if calendarID == "" {
		calendarID = defaultCalendarID
	}

	return tool.NewTool[calendar.CreateInput, CreateOutput](
		calendar.ToolName,
		func(ctx context.Context, input calendar.CreateInput) (CreateOutput, error) {
			return createEvent(ctx, client, calendarID, input)
		},
		tool.WithDescription("Creates an event on Google Calendar from a confirmed draft. Requires title, start and end; attendees, description and timezone are optional. Returns the server-assigned event id and link."),
	)
}

func createEvent(ctx context.Context, client *Client, calendarID string, input calendar.CreateInput) (CreateOutput, error) {
	if strings.TrimSpace(input.Title) == "" ||
		strings.TrimSpace(input.Start) == "" ||
		strings.TrimSpace(input.End) == "" {
		return CreateOutput{}, fmt.Errorf("missing required fields (title/start/end)")
	}

	created, err := client.InsertEvent(ctx, calendarID, toGoogleEvent(input))
	if err != nil {
		return CreateOutput{}, err
	}

	return CreateOutput{
		ID:       created.Id,
		Status:   created.Status,
		HTMLLink: created.HtmlLink,
		Created:  created.Created,
	}, nil
}

// toGoogleEvent maps a confirmed draft onto the Google Calendar wire type.
// An unset timezone defaults to UTC, matching the simulated backend.
func toGoogleEvent(input calendar.CreateInput) *gcalendar.Event {
	timezone := input.Timezone
	if timezone == "" {
		timezone = "UTC"
	}

	event := &gcalendar.Event{
		Summary:     input.Title,
		Description: input.Description,
		Start:       &gcalendar.EventDateTime{DateTime: input.Start, TimeZone: timezone},
		End:         &gcalendar.EventDateTime{DateTime: input.End, TimeZone: timezone},
	}
	for _, email := range input.Attendees {
		event.Attendees = append(event.Attendees, &gcalendar.EventAttendee{Email: email})
	}
	return event
}
