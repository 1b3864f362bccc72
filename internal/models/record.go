// ABOUTME: Personal record model and weight unit preference.
// ABOUTME: Records are append-only; the best is chosen by weight then reps.
package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// PersonalRecord marks a set that beat the previous best for an exercise.
type PersonalRecord struct {
	ID           uuid.UUID  `json:"id"`
	ExerciseID   uuid.UUID  `json:"exercise_id"`
	Weight       float64    `json:"weight"`
	Reps         int        `json:"reps"`
	AchievedAt   time.Time  `json:"achieved_at"`
	WorkoutSetID *uuid.UUID `json:"workout_set_id,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	ExerciseName string     `json:"exercise_name,omitempty"` // Populated by joined queries
}

// NewPersonalRecord creates a record achieved at the given time.
func NewPersonalRecord(exerciseID uuid.UUID, weight float64, reps int, at time.Time) *PersonalRecord {
	return &PersonalRecord{
		ID:         uuid.New(),
		ExerciseID: exerciseID,
		Weight:     weight,
		Reps:       reps,
		AchievedAt: at,
		CreatedAt:  at,
	}
}

// WithWorkoutSet links the record to the set that produced it.
func (pr *PersonalRecord) WithWorkoutSet(setID uuid.UUID) *PersonalRecord {
	pr.WorkoutSetID = &setID
	return pr
}

// WeightUnit is the user's display unit for weights.
type WeightUnit string

const (
	UnitKg  WeightUnit = "kg"
	UnitLbs WeightUnit = "lbs"
)

// ParseWeightUnit parses "kg" or "lbs" (also accepting "lb").
func ParseWeightUnit(s string) (WeightUnit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "kg":
		return UnitKg, nil
	case "lb", "lbs":
		return UnitLbs, nil
	default:
		return "", fmt.Errorf("unknown weight unit: %s", s)
	}
}
