// Package calendar provides the simulated calendar-event creation tool. It
// validates a confirmed draft, fabricates an event id and edit link, and
// renders the event as an iCalendar document, without talking to any
// external calendar service.
package calendar
