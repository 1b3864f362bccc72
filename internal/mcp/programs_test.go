// ABOUTME: Tests for the training program MCP tools.
// ABOUTME: Follows a program through the tools and checks day rotation.
package mcp

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/harperreed/gymtrack/internal/prefs"
	"github.com/harperreed/gymtrack/internal/program"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func setupProgramServer(t *testing.T) *Server {
	t.Helper()
	server, _, _ := setupTestServer(t)
	state, err := prefs.OpenInMemory()
	if err != nil {
		t.Fatalf("Failed to open preferences: %v", err)
	}
	t.Cleanup(func() { state.Close() })
	WithPrograms(state)(server)
	return server
}

func TestProgramToolsRequireState(t *testing.T) {
	server, _, _ := setupTestServer(t)
	ctx := context.Background()

	if _, _, err := server.handleListPrograms(ctx, &mcp.CallToolRequest{}, emptyInput{}); !errors.Is(err, errProgramsUnavailable) {
		t.Errorf("list_programs err = %v, want errProgramsUnavailable", err)
	}
	if _, _, err := server.handleStartProgramDay(ctx, &mcp.CallToolRequest{}, startProgramInput{}); !errors.Is(err, errProgramsUnavailable) {
		t.Errorf("start_program_day err = %v, want errProgramsUnavailable", err)
	}
}

func TestProgramThroughTools(t *testing.T) {
	server := setupProgramServer(t)
	ctx := context.Background()
	req := &mcp.CallToolRequest{}

	_, list, err := server.handleListPrograms(ctx, req, emptyInput{})
	if err != nil {
		t.Fatalf("list_programs failed: %v", err)
	}
	if list.Count != 4 {
		t.Errorf("Count = %d, want 4", list.Count)
	}
	for _, p := range list.Programs {
		if p.Following {
			t.Errorf("%s should not be followed yet", p.ID)
		}
	}

	if _, _, err := server.handleStartProgramDay(ctx, req, startProgramInput{}); !errors.Is(err, prefs.ErrNoActiveProgram) {
		t.Errorf("start without a program err = %v, want ErrNoActiveProgram", err)
	}
	if _, _, err := server.handleStartProgramDay(ctx, req, startProgramInput{ProgramID: "couch-to-5k"}); !errors.Is(err, program.ErrUnknownProgram) {
		t.Errorf("unknown program err = %v", err)
	}

	_, out, err := server.handleStartProgramDay(ctx, req, startProgramInput{ProgramID: "ppl-hypertrophy"})
	if err != nil {
		t.Fatalf("start_program_day failed: %v", err)
	}
	if out.Day != "Push Day" || out.Exercises != 6 || len(out.Unmatched) != 0 {
		t.Errorf("started = %+v", out)
	}
	if out.NextDay != "Pull Day (day 2 of 3)" {
		t.Errorf("NextDay = %q", out.NextDay)
	}
	w := server.session.Active()
	if w == nil || w.DisplayName() != "PPL Hypertrophy: Push Day" {
		t.Fatalf("active workout = %+v", w)
	}
	if sets := w.Exercises[0].Sets; len(sets) != 4 || !sets[0].IsWarmup {
		t.Errorf("planned sets = %+v", sets)
	}

	// A workout in progress blocks the next day without moving the program.
	if _, _, err := server.handleStartProgramDay(ctx, req, startProgramInput{}); err == nil {
		t.Error("Expected start during a workout to fail")
	}
	if _, _, err := server.handleDiscardWorkout(ctx, req, emptyInput{}); err != nil {
		t.Fatalf("discard_workout failed: %v", err)
	}

	_, skipped, err := server.handleSkipProgramDay(ctx, req, emptyInput{})
	if err != nil {
		t.Fatalf("skip_program_day failed: %v", err)
	}
	if skipped.Day != "Legs Day" {
		t.Errorf("after skip Day = %q, want Legs Day", skipped.Day)
	}

	_, out, err = server.handleStartProgramDay(ctx, req, startProgramInput{})
	if err != nil {
		t.Fatalf("start_program_day failed: %v", err)
	}
	if out.Day != "Legs Day" || !strings.Contains(out.Message, "Next time: Push Day (day 1 of 3)") {
		t.Errorf("started = %+v", out)
	}

	_, list, _ = server.handleListPrograms(ctx, req, emptyInput{})
	for _, p := range list.Programs {
		if p.ID == "ppl-hypertrophy" && (!p.Following || p.NextDay != "Push Day (day 1 of 3)") {
			t.Errorf("followed program = %+v", p)
		}
	}
}
