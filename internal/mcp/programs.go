// ABOUTME: MCP tools for following built-in training programs.
// ABOUTME: Lists programs and starts or skips the followed program's next day.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/harperreed/gymtrack/internal/program"
	"github.com/harperreed/gymtrack/internal/session"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

var errProgramsUnavailable = errors.New("training programs are not available on this server")

func (s *Server) registerProgramTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_programs",
		Description: "List built-in training programs by coach, with the followed program and its next day",
	}, s.handleListPrograms)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "start_program_day",
		Description: "Start the next day of the followed program as a pre-filled workout; pass program_id to follow a program from day 1",
	}, s.handleStartProgramDay)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "skip_program_day",
		Description: "Move the followed program to its next day without starting a workout",
	}, s.handleSkipProgramDay)
}

type programSummary struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Trainer     string   `json:"trainer"`
	Specialty   string   `json:"specialty"`
	Description string   `json:"description"`
	DaysPerWeek int      `json:"days_per_week"`
	Days        []string `json:"days"`
	Following   bool     `json:"following,omitempty"`
	NextDay     string   `json:"next_day,omitempty"`
}

type programListOutput struct {
	Programs []programSummary `json:"programs"`
	Count    int              `json:"count"`
}

type startProgramInput struct {
	ProgramID string `json:"program_id,omitempty" jsonschema:"Program to follow from its first day; omit to continue the followed program"`
}

type programDayOutput struct {
	ProgramID string   `json:"program_id"`
	Program   string   `json:"program"`
	Day       string   `json:"day"`
	WorkoutID string   `json:"workout_id,omitempty"`
	Exercises int      `json:"exercises,omitempty"`
	Unmatched []string `json:"unmatched,omitempty"`
	NextDay   string   `json:"next_day"`
	Message   string   `json:"message"`
}

func (s *Server) handleListPrograms(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, programListOutput, error) {
	if s.programs == nil {
		return nil, programListOutput{}, errProgramsUnavailable
	}
	trainers, err := program.Trainers()
	if err != nil {
		return nil, programListOutput{}, err
	}
	ap, following, err := s.programs.ActiveProgram()
	if err != nil {
		return nil, programListOutput{}, err
	}

	out := programListOutput{Programs: []programSummary{}}
	for _, t := range trainers {
		for _, p := range t.Programs {
			sum := programSummary{
				ID:          p.ID,
				Name:        p.Name,
				Trainer:     t.Name,
				Specialty:   t.Specialty,
				Description: p.Description,
				DaysPerWeek: p.DaysPerWeek,
			}
			for _, d := range p.Days {
				sum.Days = append(sum.Days, d.Name)
			}
			if following && p.ID == ap.ProgramID {
				sum.Following = true
				sum.NextDay = p.DayLabel(ap.DayIndex)
			}
			out.Programs = append(out.Programs, sum)
		}
	}
	out.Count = len(out.Programs)
	return nil, out, nil
}

func (s *Server) handleStartProgramDay(ctx context.Context, req *mcp.CallToolRequest, input startProgramInput) (*mcp.CallToolResult, programDayOutput, error) {
	if s.programs == nil {
		return nil, programDayOutput{}, errProgramsUnavailable
	}
	if s.session.Active() != nil {
		return nil, programDayOutput{}, fmt.Errorf("failed to start program day: %w", session.ErrWorkoutInProgress)
	}
	if id := strings.TrimSpace(input.ProgramID); id != "" {
		if _, err := program.Follow(s.programs, id); err != nil {
			return nil, programDayOutput{}, err
		}
	}

	started, err := program.StartNext(ctx, s.programs, s.repo, s.session)
	if err != nil {
		return nil, programDayOutput{}, fmt.Errorf("failed to start program day: %w", err)
	}

	p, w := started.Program, started.Workout
	msg := fmt.Sprintf("Started %s with %d exercises (ID: %s). Next time: %s",
		p.DayLabel(started.DayIndex), len(w.Exercises), shortID(w.ID), p.DayLabel(started.NextDay))
	if len(started.Unmatched) > 0 {
		msg += fmt.Sprintf(". Skipped: %s", strings.Join(started.Unmatched, ", "))
	}
	return nil, programDayOutput{
		ProgramID: p.ID,
		Program:   p.Name,
		Day:       p.Day(started.DayIndex).Name,
		WorkoutID: w.ID.String(),
		Exercises: len(w.Exercises),
		Unmatched: started.Unmatched,
		NextDay:   p.DayLabel(started.NextDay),
		Message:   msg,
	}, nil
}

func (s *Server) handleSkipProgramDay(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, programDayOutput, error) {
	if s.programs == nil {
		return nil, programDayOutput{}, errProgramsUnavailable
	}
	p, day, err := program.Skip(s.programs)
	if err != nil {
		return nil, programDayOutput{}, err
	}
	return nil, programDayOutput{
		ProgramID: p.ID,
		Program:   p.Name,
		Day:       p.Day(day).Name,
		NextDay:   p.DayLabel(day),
		Message:   fmt.Sprintf("Next up: %s", p.DayLabel(day)),
	}, nil
}
