package cli

import (
	"bytes"
	"log"
	"testing"
)

func TestSetMode_ChangesAndLogsOnce(t *testing.T) {
	app := &App{mode: ModeOffline}
	var buf bytes.Buffer

	old := log.Default().Writer()
	defer log.SetOutput(old)
	log.SetOutput(&buf)

	app.setMode(ModeOnline)
	if app.currentMode() != ModeOnline {
		t.Fatalf("expected mode to be %q, got %q", ModeOnline, app.currentMode())
	}
	if got := buf.String(); got == "" {
		t.Fatalf("expected log output on mode change, got empty")
	}

	buf.Reset()

	app.setMode(ModeOnline)
	if app.currentMode() != ModeOnline {
		t.Fatalf("expected mode to remain %q, got %q", ModeOnline, app.currentMode())
	}
	if got := buf.String(); got != "" {
		t.Fatalf("expected no log output when mode doesn't change, got: %q", got)
	}

	app.setMode(ModeOffline)
	if app.currentMode() != ModeOffline {
		t.Fatalf("expected mode to be %q, got %q", ModeOffline, app.currentMode())
	}
	if got := buf.String(); got == "" {
		t.Fatalf("expected log output on mode change to offline, got empty")
	}
}

func TestGetStatus(t *testing.T) {
	app := &App{mode: ModeOffline}
	if got := app.getStatus(); got != "(offline)" {
		t.Fatalf("expected status %q, got %q", "(offline)", got)
	}
	app.mode = ModeOnline
	if got := app.getStatus(); got != "(online)" {
		t.Fatalf("expected status %q, got %q", "(online)", got)
	}
}
