// ABOUTME: MCP tool implementations for gymtrack.
// ABOUTME: Exposes the exercise catalog, the active workout, and workout history.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/gymtrack/internal/models"
	"github.com/harperreed/gymtrack/internal/session"
	"github.com/harperreed/gymtrack/internal/stats"
	"github.com/harperreed/gymtrack/internal/storage"
	"github.com/harperreed/gymtrack/internal/suggest"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	// Catalog
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_exercises",
		Description: "List catalog exercises, optionally filtered by muscle, equipment, movement, or name search",
	}, s.handleListExercises)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "create_exercise",
		Description: "Add a custom exercise to the catalog",
	}, s.handleCreateExercise)

	// Active workout
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "start_workout",
		Description: "Start a new empty workout",
	}, s.handleStartWorkout)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "start_suggested_workout",
		Description: "Start a workout pre-filled from a suggestion; exercises not in the catalog are skipped and reported",
	}, s.handleStartSuggestedWorkout)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "active_workout",
		Description: "Show the workout in progress with its exercises, sets, and rest timer",
	}, s.handleActiveWorkout)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_exercise",
		Description: "Add an exercise to the active workout by ID, ID prefix, or exact name",
	}, s.handleAddExercise)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_set",
		Description: "Add an empty set to an exercise in the active workout",
	}, s.handleAddSet)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "complete_set",
		Description: "Record reps and weight for a set, check for a personal record, and start the rest timer",
	}, s.handleCompleteSet)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_set",
		Description: "Delete a set from the active workout",
	}, s.handleDeleteSet)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "remove_exercise",
		Description: "Remove an exercise and its sets from the active workout",
	}, s.handleRemoveExercise)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "complete_workout",
		Description: "Finish the active workout and report its summary",
	}, s.handleCompleteWorkout)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "discard_workout",
		Description: "Delete the active workout without saving it",
	}, s.handleDiscardWorkout)

	// History
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_workouts",
		Description: "List recent completed workouts",
	}, s.handleListWorkouts)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_workout",
		Description: "Get a workout with all its exercises and sets",
	}, s.handleGetWorkout)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "exercise_history",
		Description: "Show past sessions of one exercise with its best personal record",
	}, s.handleExerciseHistory)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "personal_records",
		Description: "List personal records, for one exercise or across all exercises",
	}, s.handlePersonalRecords)

	s.registerProgramTools()
}

// Tool input/output types

type emptyInput struct{}

type simpleOutput struct {
	Message string `json:"message"`
}

type listExercisesInput struct {
	Muscle    string `json:"muscle,omitempty" jsonschema:"Primary muscle group (chest, back, shoulders, biceps, triceps, legs, core, forearms)"`
	Equipment string `json:"equipment,omitempty" jsonschema:"Equipment (barbell, dumbbell, cable, machine, bodyweight)"`
	Movement  string `json:"movement,omitempty" jsonschema:"Movement pattern (push, pull, hinge, squat, carry, lunge, rotation)"`
	Search    string `json:"search,omitempty" jsonschema:"Case-insensitive substring of the exercise name"`
}

type exerciseSummary struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	PrimaryMuscle   string `json:"primary_muscle"`
	Equipment       string `json:"equipment,omitempty"`
	MovementPattern string `json:"movement_pattern,omitempty"`
	IsCustom        bool   `json:"is_custom"`
}

type exerciseListOutput struct {
	Count     int               `json:"count"`
	Exercises []exerciseSummary `json:"exercises"`
}

type createExerciseInput struct {
	Name             string `json:"name" jsonschema:"Exercise name"`
	PrimaryMuscle    string `json:"primary_muscle" jsonschema:"Primary muscle group"`
	Equipment        string `json:"equipment,omitempty" jsonschema:"Equipment used"`
	MovementPattern  string `json:"movement_pattern,omitempty" jsonschema:"Movement pattern"`
	SecondaryMuscles string `json:"secondary_muscles,omitempty" jsonschema:"Comma-separated secondary muscles"`
	Instructions     string `json:"instructions,omitempty" jsonschema:"How to perform the exercise"`
}

type exerciseOutput struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Message string `json:"message"`
}

type startWorkoutInput struct {
	Name string `json:"name,omitempty" jsonschema:"Workout name, e.g. Push Day"`
}

type workoutOutput struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Message string `json:"message"`
}

type startSuggestedInput struct {
	Name      string                      `json:"name" jsonschema:"Workout name"`
	Reasoning string                      `json:"reasoning,omitempty" jsonschema:"Why this workout was suggested"`
	Exercises []suggest.SuggestedExercise `json:"exercises" jsonschema:"Exercises with their planned sets, named as in the catalog"`
}

type suggestedOutput struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Reasoning string   `json:"reasoning"`
	Exercises int      `json:"exercises"`
	Unmatched []string `json:"unmatched,omitempty"`
	Message   string   `json:"message"`
}

type activeWorkoutOutput struct {
	Workout              *models.Workout `json:"workout"`
	ElapsedMinutes       int             `json:"elapsed_minutes"`
	Volume               float64         `json:"volume"`
	RestRemainingSeconds int             `json:"rest_remaining_seconds,omitempty"`
}

type addExerciseInput struct {
	Exercise string `json:"exercise" jsonschema:"Exercise ID, ID prefix, or exact name"`
}

type workoutExerciseOutput struct {
	ID              string `json:"id"`
	Exercise        string `json:"exercise"`
	FirstSetID      string `json:"first_set_id,omitempty"`
	LastPerformance string `json:"last_performance,omitempty"`
	Message         string `json:"message"`
}

type workoutExerciseInput struct {
	WorkoutExerciseID string `json:"workout_exercise_id" jsonschema:"Workout exercise ID or prefix from active_workout"`
}

type setOutput struct {
	ID        string `json:"id"`
	SetNumber int    `json:"set_number"`
	Message   string `json:"message"`
}

type completeSetInput struct {
	SetID    string  `json:"set_id" jsonschema:"Set ID or prefix"`
	Reps     int     `json:"reps" jsonschema:"Repetitions performed"`
	Weight   float64 `json:"weight" jsonschema:"Weight lifted"`
	IsWarmup bool    `json:"is_warmup,omitempty" jsonschema:"Mark as a warmup set; warmups never count toward records or volume"`
}

type completeSetOutput struct {
	ID             string `json:"id"`
	Set            string `json:"set"`
	PersonalRecord bool   `json:"personal_record"`
	RestSeconds    int    `json:"rest_seconds,omitempty"`
	Message        string `json:"message"`
}

type setIDInput struct {
	SetID string `json:"set_id" jsonschema:"Set ID or prefix"`
}

type completeWorkoutInput struct {
	Notes string `json:"notes,omitempty" jsonschema:"Notes to save with the workout"`
}

type workoutSummaryOutput struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	DurationMinutes int     `json:"duration_minutes"`
	Volume          float64 `json:"volume"`
	WorkingSets     int     `json:"working_sets"`
	Message         string  `json:"message"`
}

type listWorkoutsInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"Max results (default 10)"`
}

type workoutListItem struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	StartedAt time.Time `json:"started_at"`
	Duration  string    `json:"duration"`
	Exercises int       `json:"exercises"`
	Volume    float64   `json:"volume"`
}

type workoutListOutput struct {
	Workouts []workoutListItem `json:"workouts"`
}

type getWorkoutInput struct {
	ID string `json:"id" jsonschema:"Workout ID or prefix"`
}

type exerciseHistoryInput struct {
	Exercise string `json:"exercise" jsonschema:"Exercise ID, ID prefix, or exact name"`
	Limit    int    `json:"limit,omitempty" jsonschema:"Max sessions (default 10)"`
}

type exerciseHistoryOutput struct {
	Exercise   string                        `json:"exercise"`
	BestRecord *models.PersonalRecord        `json:"best_record,omitempty"`
	Sessions   []models.ExerciseHistoryEntry `json:"sessions"`
}

type personalRecordsInput struct {
	Exercise string `json:"exercise,omitempty" jsonschema:"Limit to one exercise (ID, ID prefix, or exact name)"`
	Limit    int    `json:"limit,omitempty" jsonschema:"Max results when listing across exercises (default 20)"`
}

type personalRecordsOutput struct {
	Records []*models.PersonalRecord `json:"records"`
}

// Tool handlers

func (s *Server) handleListExercises(ctx context.Context, req *mcp.CallToolRequest, input listExercisesInput) (*mcp.CallToolResult, any, error) {
	var f models.ExerciseFilter
	if input.Muscle != "" {
		m, err := models.ParseMuscleGroup(input.Muscle)
		if err != nil {
			return nil, nil, err
		}
		f.Muscle = &m
	}
	if input.Equipment != "" {
		eq, err := models.ParseEquipment(input.Equipment)
		if err != nil {
			return nil, nil, err
		}
		f.Equipment = &eq
	}
	if input.Movement != "" {
		p, err := models.ParseMovementPattern(input.Movement)
		if err != nil {
			return nil, nil, err
		}
		f.MovementPattern = &p
	}
	f.Search = input.Search

	exercises, err := s.repo.FilterExercises(ctx, f)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list exercises: %w", err)
	}

	if len(exercises) == 0 {
		return nil, map[string]interface{}{"message": "No exercises found."}, nil
	}

	out := exerciseListOutput{Count: len(exercises)}
	for _, e := range exercises {
		out.Exercises = append(out.Exercises, summarizeExercise(e))
	}
	return nil, out, nil
}

func (s *Server) handleCreateExercise(ctx context.Context, req *mcp.CallToolRequest, input createExerciseInput) (*mcp.CallToolResult, exerciseOutput, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, exerciseOutput{}, errors.New("exercise name is required")
	}
	muscle, err := models.ParseMuscleGroup(input.PrimaryMuscle)
	if err != nil {
		return nil, exerciseOutput{}, err
	}

	e := models.NewCustomExercise(name, muscle)
	if input.Equipment != "" {
		eq, err := models.ParseEquipment(input.Equipment)
		if err != nil {
			return nil, exerciseOutput{}, err
		}
		e.WithEquipment(eq)
	}
	if input.MovementPattern != "" {
		p, err := models.ParseMovementPattern(input.MovementPattern)
		if err != nil {
			return nil, exerciseOutput{}, err
		}
		e.WithMovementPattern(p)
	}
	if input.SecondaryMuscles != "" {
		e.WithSecondaryMuscles(input.SecondaryMuscles)
	}
	if input.Instructions != "" {
		e.WithInstructions(input.Instructions)
	}

	created, err := s.repo.CreateCustomExercise(ctx, e)
	if err != nil {
		return nil, exerciseOutput{}, fmt.Errorf("failed to create exercise: %w", err)
	}

	return nil, exerciseOutput{
		ID:      created.ID.String(),
		Name:    created.Name,
		Message: fmt.Sprintf("Created %s (%s) (ID: %s)", created.Name, created.PrimaryMuscle, shortID(created.ID)),
	}, nil
}

func (s *Server) handleStartWorkout(ctx context.Context, req *mcp.CallToolRequest, input startWorkoutInput) (*mcp.CallToolResult, workoutOutput, error) {
	w, err := s.session.Start(ctx, strings.TrimSpace(input.Name))
	if err != nil {
		return nil, workoutOutput{}, fmt.Errorf("failed to start workout: %w", err)
	}

	return nil, workoutOutput{
		ID:      w.ID.String(),
		Name:    w.DisplayName(),
		Message: fmt.Sprintf("Started %s (ID: %s)", w.DisplayName(), shortID(w.ID)),
	}, nil
}

func (s *Server) handleStartSuggestedWorkout(ctx context.Context, req *mcp.CallToolRequest, input startSuggestedInput) (*mcp.CallToolResult, suggestedOutput, error) {
	suggestion := suggest.SuggestedWorkout{
		Name:      input.Name,
		Reasoning: input.Reasoning,
		Exercises: input.Exercises,
	}
	if err := suggestion.Validate(); err != nil {
		return nil, suggestedOutput{}, err
	}

	catalog, err := s.repo.ListExercises(ctx)
	if err != nil {
		return nil, suggestedOutput{}, fmt.Errorf("failed to load catalog: %w", err)
	}
	match := suggest.Match(suggestion.Exercises, catalog)
	if len(match.Matched) == 0 {
		return nil, suggestedOutput{}, fmt.Errorf("none of the suggested exercises are in the catalog: %s",
			strings.Join(match.Unmatched, ", "))
	}

	w, err := s.session.StartWithExercises(ctx, suggestion.Name, match.Plan())
	if err != nil {
		return nil, suggestedOutput{}, fmt.Errorf("failed to start workout: %w", err)
	}

	msg := fmt.Sprintf("Started %s with %d exercises (ID: %s)", w.DisplayName(), len(w.Exercises), shortID(w.ID))
	if len(match.Unmatched) > 0 {
		msg += fmt.Sprintf(". Skipped: %s", strings.Join(match.Unmatched, ", "))
	}
	return nil, suggestedOutput{
		ID:        w.ID.String(),
		Name:      w.DisplayName(),
		Reasoning: suggestion.Reasoning,
		Exercises: len(w.Exercises),
		Unmatched: match.Unmatched,
		Message:   msg,
	}, nil
}

func (s *Server) handleActiveWorkout(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, any, error) {
	w := s.session.Active()
	if w == nil {
		return nil, map[string]interface{}{"message": "No active workout."}, nil
	}
	return nil, s.activeOutput(w), nil
}

func (s *Server) handleAddExercise(ctx context.Context, req *mcp.CallToolRequest, input addExerciseInput) (*mcp.CallToolResult, workoutExerciseOutput, error) {
	e, err := storage.LookupExercise(ctx, s.repo, input.Exercise)
	if err != nil {
		return nil, workoutExerciseOutput{}, fmt.Errorf("failed to find exercise: %w", err)
	}
	if e == nil {
		return nil, workoutExerciseOutput{}, fmt.Errorf("exercise not found: %s", input.Exercise)
	}

	we, err := s.session.AddExercise(ctx, e.ID)
	if err != nil {
		return nil, workoutExerciseOutput{}, fmt.Errorf("failed to add exercise: %w", err)
	}

	out := workoutExerciseOutput{
		ID:       we.ID.String(),
		Exercise: e.Name,
		Message:  fmt.Sprintf("Added %s (ID: %s)", e.Name, shortID(we.ID)),
	}
	if len(we.Sets) > 0 {
		out.FirstSetID = we.Sets[0].ID.String()
	}
	if last, err := s.repo.LastPerformance(ctx, e.ID); err == nil && last != nil {
		out.LastPerformance = stats.FormatSet(*last, s.unit)
		out.Message += fmt.Sprintf(". Last time: %s", out.LastPerformance)
	}
	return nil, out, nil
}

func (s *Server) handleAddSet(ctx context.Context, req *mcp.CallToolRequest, input workoutExerciseInput) (*mcp.CallToolResult, setOutput, error) {
	weID, err := s.resolve(ctx, "workout_exercises", input.WorkoutExerciseID)
	if err != nil {
		return nil, setOutput{}, err
	}

	set, err := s.session.AddSet(ctx, weID)
	if err != nil {
		return nil, setOutput{}, fmt.Errorf("failed to add set: %w", err)
	}

	return nil, setOutput{
		ID:        set.ID.String(),
		SetNumber: set.SetNumber,
		Message:   fmt.Sprintf("Added set %d (ID: %s)", set.SetNumber, shortID(set.ID)),
	}, nil
}

func (s *Server) handleCompleteSet(ctx context.Context, req *mcp.CallToolRequest, input completeSetInput) (*mcp.CallToolResult, completeSetOutput, error) {
	setID, err := s.resolve(ctx, "workout_sets", input.SetID)
	if err != nil {
		return nil, completeSetOutput{}, err
	}

	pr, err := s.session.CompleteSet(ctx, setID, input.Reps, input.Weight, input.IsWarmup)
	if err != nil {
		return nil, completeSetOutput{}, fmt.Errorf("failed to complete set: %w", err)
	}

	done := models.WorkoutSet{Reps: &input.Reps, Weight: &input.Weight, IsWarmup: input.IsWarmup}
	out := completeSetOutput{
		ID:             setID.String(),
		Set:            stats.FormatSet(done, s.unit),
		PersonalRecord: pr != nil,
	}
	out.Message = "Completed " + out.Set
	if input.IsWarmup {
		out.Message += " (warmup)"
	}
	if pr != nil {
		out.Message += ". New personal record!"
	}
	if remaining := s.session.RestRemaining(); remaining > 0 {
		out.RestSeconds = int(remaining.Round(time.Second) / time.Second)
		out.Message += fmt.Sprintf(" Rest %ds.", out.RestSeconds)
	}
	return nil, out, nil
}

func (s *Server) handleDeleteSet(ctx context.Context, req *mcp.CallToolRequest, input setIDInput) (*mcp.CallToolResult, simpleOutput, error) {
	setID, err := s.resolve(ctx, "workout_sets", input.SetID)
	if err != nil {
		return nil, simpleOutput{}, err
	}

	w := s.session.Active()
	if w == nil {
		return nil, simpleOutput{}, session.ErrNoActiveWorkout
	}
	we, set := w.FindSet(setID)
	if set == nil {
		return nil, simpleOutput{}, session.ErrUnknownSet
	}

	if err := s.session.DeleteSet(ctx, we.ID, setID); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to delete set: %w", err)
	}

	return nil, simpleOutput{
		Message: fmt.Sprintf("Deleted set %d of %s", set.SetNumber, we.Name()),
	}, nil
}

func (s *Server) handleRemoveExercise(ctx context.Context, req *mcp.CallToolRequest, input workoutExerciseInput) (*mcp.CallToolResult, simpleOutput, error) {
	weID, err := s.resolve(ctx, "workout_exercises", input.WorkoutExerciseID)
	if err != nil {
		return nil, simpleOutput{}, err
	}

	name := weID.String()[:8]
	if w := s.session.Active(); w != nil {
		if we := w.FindExercise(weID); we != nil {
			name = we.Name()
		}
	}

	if err := s.session.RemoveExercise(ctx, weID); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to remove exercise: %w", err)
	}

	return nil, simpleOutput{
		Message: fmt.Sprintf("Removed %s", name),
	}, nil
}

func (s *Server) handleCompleteWorkout(ctx context.Context, req *mcp.CallToolRequest, input completeWorkoutInput) (*mcp.CallToolResult, workoutSummaryOutput, error) {
	w, err := s.session.Complete(ctx, strings.TrimSpace(input.Notes))
	if err != nil {
		return nil, workoutSummaryOutput{}, fmt.Errorf("failed to complete workout: %w", err)
	}

	sets := w.AllSets()
	out := workoutSummaryOutput{
		ID:          w.ID.String(),
		Name:        w.DisplayName(),
		Volume:      stats.TotalVolume(sets),
		WorkingSets: stats.WorkingSetCount(sets),
	}
	if w.DurationSeconds != nil {
		out.DurationMinutes = *w.DurationSeconds / 60
	}
	out.Message = fmt.Sprintf("Completed %s: %s, %s across %d working sets",
		out.Name, stats.FormatDuration(w.DurationSeconds), stats.FormatVolume(out.Volume, s.unit), out.WorkingSets)
	return nil, out, nil
}

func (s *Server) handleDiscardWorkout(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, simpleOutput, error) {
	w := s.session.Active()
	if err := s.session.Discard(ctx); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to discard workout: %w", err)
	}

	return nil, simpleOutput{
		Message: fmt.Sprintf("Discarded %s", w.DisplayName()),
	}, nil
}

func (s *Server) handleListWorkouts(ctx context.Context, req *mcp.CallToolRequest, input listWorkoutsInput) (*mcp.CallToolResult, any, error) {
	if input.Limit <= 0 {
		input.Limit = 10
	}

	workouts, err := s.repo.RecentWorkouts(ctx, input.Limit)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list workouts: %w", err)
	}

	if len(workouts) == 0 {
		return nil, map[string]interface{}{"message": "No workouts found."}, nil
	}

	var out workoutListOutput
	for _, w := range workouts {
		item := workoutListItem{
			ID:        w.ID.String(),
			Name:      w.DisplayName(),
			StartedAt: w.StartedAt,
			Duration:  stats.FormatDuration(w.DurationSeconds),
		}
		if item.Exercises, err = s.repo.WorkoutExerciseCount(ctx, w.ID); err != nil {
			return nil, nil, fmt.Errorf("failed to count exercises: %w", err)
		}
		if item.Volume, err = s.repo.WorkoutVolume(ctx, w.ID); err != nil {
			return nil, nil, fmt.Errorf("failed to compute volume: %w", err)
		}
		out.Workouts = append(out.Workouts, item)
	}
	return nil, out, nil
}

func (s *Server) handleGetWorkout(ctx context.Context, req *mcp.CallToolRequest, input getWorkoutInput) (*mcp.CallToolResult, any, error) {
	id, err := s.resolve(ctx, "workouts", input.ID)
	if err != nil {
		return nil, nil, err
	}

	w, err := s.repo.GetWorkoutWithDetails(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get workout: %w", err)
	}
	if w == nil {
		return nil, nil, fmt.Errorf("workout not found: %s", input.ID)
	}

	return nil, w, nil
}

func (s *Server) handleExerciseHistory(ctx context.Context, req *mcp.CallToolRequest, input exerciseHistoryInput) (*mcp.CallToolResult, exerciseHistoryOutput, error) {
	e, err := storage.LookupExercise(ctx, s.repo, input.Exercise)
	if err != nil {
		return nil, exerciseHistoryOutput{}, fmt.Errorf("failed to find exercise: %w", err)
	}
	if e == nil {
		return nil, exerciseHistoryOutput{}, fmt.Errorf("exercise not found: %s", input.Exercise)
	}

	history, err := s.repo.ExerciseHistory(ctx, e.ID, input.Limit)
	if err != nil {
		return nil, exerciseHistoryOutput{}, fmt.Errorf("failed to load history: %w", err)
	}
	best, err := s.repo.BestPersonalRecord(ctx, e.ID)
	if err != nil {
		return nil, exerciseHistoryOutput{}, fmt.Errorf("failed to load best record: %w", err)
	}

	out := exerciseHistoryOutput{Exercise: e.Name, BestRecord: best, Sessions: history}
	if out.Sessions == nil {
		out.Sessions = []models.ExerciseHistoryEntry{}
	}
	return nil, out, nil
}

func (s *Server) handlePersonalRecords(ctx context.Context, req *mcp.CallToolRequest, input personalRecordsInput) (*mcp.CallToolResult, personalRecordsOutput, error) {
	var (
		records []*models.PersonalRecord
		err     error
	)
	if input.Exercise != "" {
		e, lookupErr := storage.LookupExercise(ctx, s.repo, input.Exercise)
		if lookupErr != nil {
			return nil, personalRecordsOutput{}, fmt.Errorf("failed to find exercise: %w", lookupErr)
		}
		if e == nil {
			return nil, personalRecordsOutput{}, fmt.Errorf("exercise not found: %s", input.Exercise)
		}
		records, err = s.repo.ListPersonalRecords(ctx, e.ID)
		for _, r := range records {
			r.ExerciseName = e.Name
		}
	} else {
		if input.Limit <= 0 {
			input.Limit = 20
		}
		records, err = s.repo.RecentPersonalRecords(ctx, input.Limit)
	}
	if err != nil {
		return nil, personalRecordsOutput{}, fmt.Errorf("failed to list personal records: %w", err)
	}

	if records == nil {
		records = []*models.PersonalRecord{}
	}
	return nil, personalRecordsOutput{Records: records}, nil
}

// Helpers

// resolve expands an ID or unique prefix from table, failing when nothing matches.
func (s *Server) resolve(ctx context.Context, table, ref string) (uuid.UUID, error) {
	id, err := s.repo.ResolveID(ctx, table, ref)
	if err != nil {
		return uuid.Nil, err
	}
	if id == uuid.Nil {
		return uuid.Nil, fmt.Errorf("not found: %s", ref)
	}
	return id, nil
}

func (s *Server) activeOutput(w *models.Workout) activeWorkoutOutput {
	out := activeWorkoutOutput{
		Workout:        w,
		ElapsedMinutes: int(s.now().Sub(w.StartedAt) / time.Minute),
		Volume:         stats.TotalVolume(w.AllSets()),
	}
	if remaining := s.session.RestRemaining(); remaining > 0 {
		out.RestRemainingSeconds = int(remaining.Round(time.Second) / time.Second)
	}
	return out
}

func summarizeExercise(e *models.Exercise) exerciseSummary {
	out := exerciseSummary{
		ID:            e.ID.String(),
		Name:          e.Name,
		PrimaryMuscle: string(e.PrimaryMuscle),
		IsCustom:      e.IsCustom,
	}
	if e.Equipment != nil {
		out.Equipment = string(*e.Equipment)
	}
	if e.MovementPattern != nil {
		out.MovementPattern = string(*e.MovementPattern)
	}
	return out
}

func shortID(id uuid.UUID) string {
	return id.String()[:8]
}
