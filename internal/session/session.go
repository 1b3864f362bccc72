// ABOUTME: Active workout session state machine.
// ABOUTME: Serializes mutations and re-reads the workout from the store after each one.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/gymtrack/internal/logger"
	"github.com/harperreed/gymtrack/internal/models"
	"github.com/harperreed/gymtrack/internal/stats"
)

//go:generate mockgen -source=$GOFILE -destination=mock_store_test.go -package=session_test

// Store is the slice of storage the session drives.
type Store interface {
	GetExercise(ctx context.Context, id uuid.UUID) (*models.Exercise, error)
	CreateWorkout(ctx context.Context, name string) (*models.Workout, error)
	CreateWorkoutWithExercises(ctx context.Context, name string, plan []models.PlannedExercise) (*models.Workout, error)
	GetWorkoutWithDetails(ctx context.Context, id uuid.UUID) (*models.Workout, error)
	InProgressWorkout(ctx context.Context) (*models.Workout, error)
	CompleteWorkout(ctx context.Context, id uuid.UUID, notes string) (*models.Workout, error)
	DeleteWorkout(ctx context.Context, id uuid.UUID) error
	AddWorkoutExerciseWithSet(ctx context.Context, workoutID, exerciseID uuid.UUID) (*models.WorkoutExercise, error)
	RemoveWorkoutExercise(ctx context.Context, id uuid.UUID) error
	AddSet(ctx context.Context, workoutExerciseID uuid.UUID) (*models.WorkoutSet, error)
	UpdateSet(ctx context.Context, id uuid.UUID, u models.SetUpdate) error
	CompleteSetWithRecord(ctx context.Context, exerciseID, setID uuid.UUID, reps int, weight float64, isWarmup bool) (*models.PersonalRecord, error)
	DeleteSet(ctx context.Context, id uuid.UUID) error
}

var (
	ErrNoActiveWorkout   = errors.New("no active workout")
	ErrWorkoutInProgress = errors.New("a workout is already in progress")
	ErrUnknownExercise   = errors.New("exercise is not part of the active workout")
	ErrUnknownSet        = errors.New("set is not part of the active workout")
	ErrExerciseNotFound  = errors.New("exercise not found")
	ErrInvalidDuration   = errors.New("rest duration must be positive")
)

// State is the session's lifecycle position.
type State int

const (
	NoActiveWorkout State = iota
	InProgress
)

func (s State) String() string {
	if s == InProgress {
		return "in_progress"
	}
	return "no_active_workout"
}

// Session holds at most one in-progress workout. The in-memory copy is always
// the result of the last successful store read.
type Session struct {
	mu    sync.Mutex
	store Store
	now   func() time.Time

	active       *models.Workout
	restDuration time.Duration
	restDeadline time.Time
}

// Option configures a Session.
type Option func(*Session)

// WithRestDuration sets the default rest period started after a working set.
func WithRestDuration(d time.Duration) Option {
	return func(s *Session) {
		if d > 0 {
			s.restDuration = d
		}
	}
}

// WithClock replaces time.Now for the rest timer.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// New creates an idle session over the store.
func New(store Store, opts ...Option) *Session {
	s := &Session{
		store:        store,
		now:          time.Now,
		restDuration: stats.DefaultRestDuration,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State reports whether a workout is in progress.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return NoActiveWorkout
	}
	return InProgress
}

// Active returns a copy of the in-progress workout, or nil.
func (s *Session) Active() *models.Workout {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active.Clone()
}

// Start creates a new workout and makes it active.
func (s *Session) Start(ctx context.Context, name string) (*models.Workout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active != nil {
		return nil, ErrWorkoutInProgress
	}

	w, err := s.store.CreateWorkout(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("start workout: %w", err)
	}
	w.Exercises = []models.WorkoutExercise{}
	s.active = w

	logger.Debug("workout started", "workout_id", w.ID)
	return w.Clone(), nil
}

// StartWithExercises creates a workout pre-filled with planned sets. The
// workout and all its rows are written in one transaction.
func (s *Session) StartWithExercises(ctx context.Context, name string, plan []models.PlannedExercise) (*models.Workout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active != nil {
		return nil, ErrWorkoutInProgress
	}

	w, err := s.store.CreateWorkoutWithExercises(ctx, name, plan)
	if err != nil {
		return nil, fmt.Errorf("start workout with exercises: %w", err)
	}

	detail, err := s.load(ctx, w.ID)
	if err != nil {
		return nil, err
	}
	s.active = detail

	logger.Debug("workout started from plan", "workout_id", w.ID, "exercises", len(plan))
	return detail.Clone(), nil
}

// Resume adopts a workout left in progress in the store. It reports whether
// a workout is now active.
func (s *Session) Resume(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active != nil {
		return true, nil
	}

	w, err := s.store.InProgressWorkout(ctx)
	if err != nil {
		return false, fmt.Errorf("resume workout: %w", err)
	}
	if w == nil {
		return false, nil
	}

	detail, err := s.load(ctx, w.ID)
	if err != nil {
		return false, err
	}
	if detail == nil {
		return false, nil
	}
	s.active = detail

	logger.Debug("workout resumed", "workout_id", w.ID)
	return true, nil
}

// AddExercise appends a catalog exercise to the active workout along with one
// empty set.
func (s *Session) AddExercise(ctx context.Context, exerciseID uuid.UUID) (*models.WorkoutExercise, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == nil {
		return nil, ErrNoActiveWorkout
	}

	ex, err := s.store.GetExercise(ctx, exerciseID)
	if err != nil {
		return nil, fmt.Errorf("add exercise: %w", err)
	}
	if ex == nil {
		return nil, ErrExerciseNotFound
	}

	workoutID := s.active.ID
	we, err := s.store.AddWorkoutExerciseWithSet(ctx, workoutID, exerciseID)
	if err != nil {
		return nil, s.afterFailedWrite(ctx, fmt.Errorf("add exercise: %w", err))
	}

	if err := s.refresh(ctx); err != nil {
		return nil, err
	}

	logger.Debug("exercise added", "workout_id", workoutID, "exercise", ex.Name)
	return s.exerciseCopy(we.ID), nil
}

// RemoveExercise deletes a workout exercise and its sets.
func (s *Session) RemoveExercise(ctx context.Context, workoutExerciseID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == nil {
		return ErrNoActiveWorkout
	}
	if s.active.FindExercise(workoutExerciseID) == nil {
		return ErrUnknownExercise
	}

	if err := s.store.RemoveWorkoutExercise(ctx, workoutExerciseID); err != nil {
		return fmt.Errorf("remove exercise: %w", err)
	}
	return s.refresh(ctx)
}

// AddSet appends an empty set to a workout exercise.
func (s *Session) AddSet(ctx context.Context, workoutExerciseID uuid.UUID) (*models.WorkoutSet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == nil {
		return nil, ErrNoActiveWorkout
	}
	if s.active.FindExercise(workoutExerciseID) == nil {
		return nil, ErrUnknownExercise
	}

	set, err := s.store.AddSet(ctx, workoutExerciseID)
	if err != nil {
		return nil, fmt.Errorf("add set: %w", err)
	}
	if err := s.refresh(ctx); err != nil {
		return nil, err
	}
	return s.setCopy(set.ID), nil
}

// UpdateSet applies a partial update to a set without completing it.
func (s *Session) UpdateSet(ctx context.Context, setID uuid.UUID, u models.SetUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == nil {
		return ErrNoActiveWorkout
	}
	if _, set := s.active.FindSet(setID); set == nil {
		return ErrUnknownSet
	}
	if u.IsEmpty() {
		return nil
	}

	if err := s.store.UpdateSet(ctx, setID, u); err != nil {
		return fmt.Errorf("update set: %w", err)
	}
	return s.refresh(ctx)
}

// CompleteSet records reps and weight for a set and marks it done. A working
// set is checked for a personal record and restarts the rest timer. The
// returned record is nil unless the set set a new best.
func (s *Session) CompleteSet(ctx context.Context, setID uuid.UUID, reps int, weight float64, isWarmup bool) (*models.PersonalRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == nil {
		return nil, ErrNoActiveWorkout
	}
	we, set := s.active.FindSet(setID)
	if set == nil {
		return nil, ErrUnknownSet
	}
	exerciseID := we.ExerciseID

	pr, err := s.store.CompleteSetWithRecord(ctx, exerciseID, setID, reps, weight, isWarmup)
	if err != nil {
		return nil, s.afterFailedWrite(ctx, fmt.Errorf("complete set: %w", err))
	}

	if err := s.refresh(ctx); err != nil {
		return nil, err
	}

	if !isWarmup {
		s.startRestTimer(s.restDuration)
	}
	if pr != nil {
		logger.Info("new personal record", "exercise_id", exerciseID, "weight", weight, "reps", reps)
	}
	return pr, nil
}

// DeleteSet removes a set from a workout exercise. Remaining sets keep their
// numbers.
func (s *Session) DeleteSet(ctx context.Context, workoutExerciseID, setID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == nil {
		return ErrNoActiveWorkout
	}
	we := s.active.FindExercise(workoutExerciseID)
	if we == nil {
		return ErrUnknownExercise
	}
	owner, _ := s.active.FindSet(setID)
	if owner == nil || owner.ID != we.ID {
		return ErrUnknownSet
	}

	if err := s.store.DeleteSet(ctx, setID); err != nil {
		return fmt.Errorf("delete set: %w", err)
	}
	return s.refresh(ctx)
}

// Complete finishes the active workout and returns it fully loaded.
func (s *Session) Complete(ctx context.Context, notes string) (*models.Workout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == nil {
		return nil, ErrNoActiveWorkout
	}
	id := s.active.ID

	w, err := s.store.CompleteWorkout(ctx, id, notes)
	if err != nil {
		return nil, fmt.Errorf("complete workout: %w", err)
	}
	if w == nil {
		s.reset()
		return nil, ErrNoActiveWorkout
	}

	// The workout is finished in the store from here on, so the session
	// ends even if reloading it fails.
	s.reset()
	detail, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		detail = w
	}

	logger.Debug("workout completed", "workout_id", id, "duration_seconds", detail.DurationSeconds)
	return detail, nil
}

// Discard deletes the active workout and everything in it.
func (s *Session) Discard(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == nil {
		return ErrNoActiveWorkout
	}
	id := s.active.ID

	if err := s.store.DeleteWorkout(ctx, id); err != nil {
		return fmt.Errorf("discard workout: %w", err)
	}
	s.reset()

	logger.Debug("workout discarded", "workout_id", id)
	return nil
}

// load reads a workout with its exercises and sets.
func (s *Session) load(ctx context.Context, id uuid.UUID) (*models.Workout, error) {
	w, err := s.store.GetWorkoutWithDetails(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load workout: %w", err)
	}
	return w, nil
}

// refresh replaces the in-memory workout with the stored one. A workout that
// vanished from the store ends the session.
func (s *Session) refresh(ctx context.Context) error {
	w, err := s.load(ctx, s.active.ID)
	if err != nil {
		return err
	}
	if w == nil {
		logger.Warn("active workout missing from store", "workout_id", s.active.ID)
		s.reset()
		return ErrNoActiveWorkout
	}
	s.active = w
	return nil
}

// afterFailedWrite reloads the workout after a store write failed so memory
// shows whatever the store kept. The write error is returned either way.
func (s *Session) afterFailedWrite(ctx context.Context, writeErr error) error {
	if err := s.refresh(ctx); err != nil {
		logger.Warn("reload after failed write", "error", err)
	}
	return writeErr
}

func (s *Session) reset() {
	s.active = nil
	s.restDeadline = time.Time{}
}

func (s *Session) exerciseCopy(workoutExerciseID uuid.UUID) *models.WorkoutExercise {
	return s.active.Clone().FindExercise(workoutExerciseID)
}

func (s *Session) setCopy(setID uuid.UUID) *models.WorkoutSet {
	_, set := s.active.Clone().FindSet(setID)
	return set
}
