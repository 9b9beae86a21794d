package events

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/diario/internal/cli"
	"github.com/julianstephens/diario/internal/clock"
	"github.com/julianstephens/diario/internal/diary"
)

func setupTestContext(t *testing.T) (*cli.Context, *bytes.Buffer, func()) {
	t.Helper()
	clk := clock.NewFake(time.Date(2024, time.March, 5, 8, 0, 0, 0, time.Local))
	ctx, err := cli.NewContext(filepath.Join(t.TempDir(), "diario.json"), clk)
	if err != nil {
		t.Fatalf("NewContext failed: %v", err)
	}
	if err := ctx.LoadStore(); err != nil {
		t.Fatalf("LoadStore failed: %v", err)
	}
	out := &bytes.Buffer{}
	ctx.Out = out

	old := cli.Interactive
	cli.Interactive = func() bool { return false }
	return ctx, out, func() { cli.Interactive = old }
}

func TestEventAddCmd(t *testing.T) {
	ctx, out, cleanup := setupTestContext(t)
	defer cleanup()

	cmd := &EventAddCmd{Date: "2024-03-07", Time: "14:00", Title: "Reunião", Description: "sala 2"}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("event add failed: %v", err)
	}

	evs := ctx.Store.GetEvents("2024-3-7")
	if len(evs) != 1 || evs[0].Title != "Reunião" || evs[0].Time != "14:00" || evs[0].Description != "sala 2" {
		t.Errorf("events = %+v", evs)
	}
	if !strings.Contains(out.String(), "Event added") {
		t.Errorf("output = %q", out.String())
	}
}

func TestEventAddCmdDefaultsToToday(t *testing.T) {
	ctx, _, cleanup := setupTestContext(t)
	defer cleanup()

	if err := (&EventAddCmd{Title: "Academia"}).Run(ctx); err != nil {
		t.Fatalf("event add failed: %v", err)
	}
	if len(ctx.Store.GetEvents("2024-3-5")) != 1 {
		t.Error("event not stored under today")
	}
}

func TestEventAddCmdRequiresTitle(t *testing.T) {
	ctx, _, cleanup := setupTestContext(t)
	defer cleanup()

	err := (&EventAddCmd{Time: "10:00"}).Run(ctx)
	if !errors.Is(err, diary.ErrValidation) {
		t.Fatalf("event add without title error = %v, want ErrValidation", err)
	}
	if len(ctx.Store.GetEvents("2024-3-5")) != 0 {
		t.Error("invalid event was stored")
	}
}

func TestEventListCmd(t *testing.T) {
	ctx, out, cleanup := setupTestContext(t)
	defer cleanup()

	if err := (&EventListCmd{}).Run(ctx); err != nil {
		t.Fatalf("event list failed: %v", err)
	}
	if !strings.Contains(out.String(), "No events") {
		t.Errorf("output = %q", out.String())
	}

	(&EventAddCmd{Title: "Hoje"}).Run(ctx)
	(&EventAddCmd{Date: "tomorrow", Title: "Amanhã", Time: "09:00"}).Run(ctx)

	out.Reset()
	if err := (&EventListCmd{All: true}).Run(ctx); err != nil {
		t.Fatalf("event list failed: %v", err)
	}
	got := out.String()
	if strings.Index(got, "2024-3-5") > strings.Index(got, "2024-3-6") || !strings.Contains(got, "09:00 Amanhã") {
		t.Errorf("event list --all output:\n%s", got)
	}
}

func TestEventICSCommands(t *testing.T) {
	ctx, out, cleanup := setupTestContext(t)
	defer cleanup()

	(&EventAddCmd{Date: "2024-03-10", Time: "10:00", Title: "Feira"}).Run(ctx)
	file := filepath.Join(t.TempDir(), "diario.ics")

	if err := (&EventExportICSCmd{File: file}).Run(ctx); err != nil {
		t.Fatalf("export-ics failed: %v", err)
	}
	if !strings.Contains(out.String(), "Exported 1 events") {
		t.Errorf("output = %q", out.String())
	}

	other, otherOut, otherCleanup := setupTestContext(t)
	defer otherCleanup()
	if err := (&EventImportICSCmd{File: file}).Run(other); err != nil {
		t.Fatalf("import-ics failed: %v", err)
	}
	if !strings.Contains(otherOut.String(), "Imported 1 events") {
		t.Errorf("output = %q", otherOut.String())
	}
	if evs := other.Store.GetEvents("2024-3-10"); len(evs) != 1 || evs[0].Time != "10:00" {
		t.Errorf("imported events = %+v", evs)
	}
}

func TestEventAddCmdRefusedWhileEditorOpen(t *testing.T) {
	ctx, _, cleanup := setupTestContext(t)
	defer cleanup()
	old := cli.EditorPID
	cli.EditorPID = func(string) int { return 4242 }
	defer func() { cli.EditorPID = old }()

	err := (&EventAddCmd{Title: "Reunião"}).Run(ctx)
	if !errors.Is(err, cli.ErrEditorOpen) {
		t.Fatalf("event add error = %v, want ErrEditorOpen", err)
	}
	if len(ctx.Store.GetEvents("2024-3-5")) != 0 {
		t.Error("refused event add stored an event")
	}
}
