// ABOUTME: Workout, WorkoutExercise, and WorkoutSet models for strength training.
// ABOUTME: A workout owns ordered exercises, each of which owns numbered sets.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Workout represents a training session. CompletedAt is nil while in progress.
type Workout struct {
	ID              uuid.UUID         `json:"id"`
	Name            *string           `json:"name,omitempty"`
	Notes           *string           `json:"notes,omitempty"`
	StartedAt       time.Time         `json:"started_at"`
	CompletedAt     *time.Time        `json:"completed_at,omitempty"`
	DurationSeconds *int              `json:"duration_seconds,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	Exercises       []WorkoutExercise `json:"exercises,omitempty"` // Populated by detail queries
}

// NewWorkout creates a new in-progress Workout started at the given time.
func NewWorkout(name string, startedAt time.Time) *Workout {
	w := &Workout{
		ID:        uuid.New(),
		StartedAt: startedAt,
		CreatedAt: startedAt,
	}
	if name != "" {
		w.Name = &name
	}
	return w
}

// WithNotes sets notes on the workout.
func (w *Workout) WithNotes(notes string) *Workout {
	w.Notes = &notes
	return w
}

// IsInProgress reports whether the workout has not been completed.
func (w *Workout) IsInProgress() bool {
	return w.CompletedAt == nil
}

// DisplayName returns the workout name or a generic fallback.
func (w *Workout) DisplayName() string {
	if w.Name == nil || *w.Name == "" {
		return "Workout"
	}
	return *w.Name
}

// AllSets flattens the sets of every exercise in order.
func (w *Workout) AllSets() []WorkoutSet {
	var sets []WorkoutSet
	for _, we := range w.Exercises {
		sets = append(sets, we.Sets...)
	}
	return sets
}

// Clone returns a deep copy so callers cannot mutate shared state.
func (w *Workout) Clone() *Workout {
	if w == nil {
		return nil
	}
	c := *w
	c.Name = clonePtr(w.Name)
	c.Notes = clonePtr(w.Notes)
	c.CompletedAt = clonePtr(w.CompletedAt)
	c.DurationSeconds = clonePtr(w.DurationSeconds)
	if w.Exercises != nil {
		c.Exercises = make([]WorkoutExercise, len(w.Exercises))
		for i, we := range w.Exercises {
			c.Exercises[i] = we
			c.Exercises[i].Notes = clonePtr(we.Notes)
			if we.Exercise != nil {
				ex := *we.Exercise
				c.Exercises[i].Exercise = &ex
			}
			if we.Sets != nil {
				c.Exercises[i].Sets = make([]WorkoutSet, len(we.Sets))
				for j, s := range we.Sets {
					c.Exercises[i].Sets[j] = s
					c.Exercises[i].Sets[j].Reps = clonePtr(s.Reps)
					c.Exercises[i].Sets[j].Weight = clonePtr(s.Weight)
				}
			}
		}
	}
	return &c
}

// FindSet locates a set and its parent exercise within the workout.
func (w *Workout) FindSet(setID uuid.UUID) (*WorkoutExercise, *WorkoutSet) {
	for i := range w.Exercises {
		we := &w.Exercises[i]
		for j := range we.Sets {
			if we.Sets[j].ID == setID {
				return we, &we.Sets[j]
			}
		}
	}
	return nil, nil
}

// FindExercise locates a workout exercise by its ID.
func (w *Workout) FindExercise(workoutExerciseID uuid.UUID) *WorkoutExercise {
	for i := range w.Exercises {
		if w.Exercises[i].ID == workoutExerciseID {
			return &w.Exercises[i]
		}
	}
	return nil
}

// WorkoutExercise is one exercise's inclusion in a workout.
// OrderIndex is assigned at insert and never compacted.
type WorkoutExercise struct {
	ID         uuid.UUID    `json:"id"`
	WorkoutID  uuid.UUID    `json:"workout_id"`
	ExerciseID uuid.UUID    `json:"exercise_id"`
	OrderIndex int          `json:"order_index"`
	Notes      *string      `json:"notes,omitempty"`
	CreatedAt  time.Time    `json:"created_at"`
	Exercise   *Exercise    `json:"exercise,omitempty"` // Populated by detail queries
	Sets       []WorkoutSet `json:"sets,omitempty"`     // Populated by detail queries
}

// Name returns the catalog exercise name if hydrated.
func (we *WorkoutExercise) Name() string {
	if we.Exercise == nil {
		return we.ExerciseID.String()[:8]
	}
	return we.Exercise.Name
}

// WorkoutSet is a single set slot. Reps and Weight are nil until recorded.
type WorkoutSet struct {
	ID                uuid.UUID `json:"id"`
	WorkoutExerciseID uuid.UUID `json:"workout_exercise_id"`
	SetNumber         int       `json:"set_number"`
	Reps              *int      `json:"reps,omitempty"`
	Weight            *float64  `json:"weight,omitempty"`
	IsWarmup          bool      `json:"is_warmup"`
	IsCompleted       bool      `json:"is_completed"`
	CreatedAt         time.Time `json:"created_at"`
}

// IsWorking reports whether the set is a non-warmup set.
func (s WorkoutSet) IsWorking() bool {
	return !s.IsWarmup
}

// Counts reports whether the set contributes to volume and records.
func (s WorkoutSet) Counts() bool {
	return s.IsCompleted && !s.IsWarmup &&
		s.Reps != nil && *s.Reps > 0 &&
		s.Weight != nil && *s.Weight > 0
}

// SetUpdate is a partial update to a set. Nil fields are left unchanged.
type SetUpdate struct {
	Reps        *int
	Weight      *float64
	IsWarmup    *bool
	IsCompleted *bool
}

// IsEmpty reports whether the update changes nothing.
func (u SetUpdate) IsEmpty() bool {
	return u.Reps == nil && u.Weight == nil && u.IsWarmup == nil && u.IsCompleted == nil
}

// PlannedSet is a pre-filled set for a workout created from a plan.
type PlannedSet struct {
	Reps     int     `json:"reps"`
	Weight   float64 `json:"weight"`
	IsWarmup bool    `json:"is_warmup"`
}

// PlannedExercise is an exercise with its planned sets.
type PlannedExercise struct {
	ExerciseID uuid.UUID    `json:"exercise_id"`
	Sets       []PlannedSet `json:"sets"`
}

// ExerciseHistoryEntry is one past workout's sets for a single exercise.
type ExerciseHistoryEntry struct {
	WorkoutID   uuid.UUID    `json:"workout_id"`
	WorkoutName *string      `json:"workout_name,omitempty"`
	StartedAt   time.Time    `json:"started_at"`
	Sets        []WorkoutSet `json:"sets"`
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
