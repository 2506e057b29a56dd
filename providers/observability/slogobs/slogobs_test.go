package slogobs

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"schedbot/providers/observability"
)

func newTestObserver() (*Observer, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return New(WithLogger(logger)), &buf
}

func TestStartSpan_LogsStartAndEnd(t *testing.T) {
	obs, buf := newTestObserver()

	ctx, span := obs.StartSpan(context.Background(), "conversation.turn",
		observability.String("conversation.session_id", "s1"))

	if got := observability.SpanFromContext(ctx); got == nil {
		t.Fatal("span not attached to context")
	}
	span.End()

	out := buf.String()
	if !strings.Contains(out, "conversation.turn") {
		t.Errorf("output missing span name:\n%s", out)
	}
	if !strings.Contains(out, "s1") {
		t.Errorf("output missing span attribute:\n%s", out)
	}
}

func TestSpan_ErrorStatusLogsWarning(t *testing.T) {
	obs, buf := newTestObserver()

	_, span := obs.StartSpan(context.Background(), "tool.invoke")
	span.RecordError(errors.New("boom"))
	span.SetStatus(observability.StatusError, "tool panicked")
	span.End()

	out := buf.String()
	if !strings.Contains(out, "WARN") {
		t.Errorf("span with error status should end as a warning:\n%s", out)
	}
	if !strings.Contains(out, "boom") {
		t.Errorf("output missing recorded error:\n%s", out)
	}
}

func TestLogger_Levels(t *testing.T) {
	obs, buf := newTestObserver()
	ctx := context.Background()

	obs.Debug(ctx, "debug line")
	obs.Info(ctx, "info line", observability.Int("count", 3))
	obs.Warn(ctx, "warn line")
	obs.Error(ctx, "error line")

	out := buf.String()
	for _, want := range []string{"debug line", "info line", "warn line", "error line", "count=3"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
