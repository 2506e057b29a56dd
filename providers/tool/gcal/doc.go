// Package gcal provides the Google Calendar backed event-creation tool. It
// exposes the same tool name and input schema as the simulated backend in
// the calendar package, plus the OAuth helpers used by the auth command.
package gcal
