// ABOUTME: Exercise catalog model with muscle, equipment, and movement enums.
// ABOUTME: Seeded library entries and user-created custom exercises share this type.
package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// FoldName reduces an exercise name to the form used for case-insensitive
// comparison. It folds full Unicode, not just ASCII.
func FoldName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// MuscleGroup is the primary muscle an exercise targets.
type MuscleGroup string

const (
	MuscleChest     MuscleGroup = "chest"
	MuscleBack      MuscleGroup = "back"
	MuscleShoulders MuscleGroup = "shoulders"
	MuscleBiceps    MuscleGroup = "biceps"
	MuscleTriceps   MuscleGroup = "triceps"
	MuscleLegs      MuscleGroup = "legs"
	MuscleCore      MuscleGroup = "core"
	MuscleForearms  MuscleGroup = "forearms"
)

// AllMuscleGroups returns muscle groups in display order.
func AllMuscleGroups() []MuscleGroup {
	return []MuscleGroup{
		MuscleChest, MuscleBack, MuscleShoulders, MuscleBiceps,
		MuscleTriceps, MuscleLegs, MuscleCore, MuscleForearms,
	}
}

// IsValid reports whether m is a known muscle group.
func (m MuscleGroup) IsValid() bool {
	for _, v := range AllMuscleGroups() {
		if m == v {
			return true
		}
	}
	return false
}

// ParseMuscleGroup parses a muscle group name case-insensitively.
func ParseMuscleGroup(s string) (MuscleGroup, error) {
	m := MuscleGroup(strings.ToLower(strings.TrimSpace(s)))
	if !m.IsValid() {
		return "", fmt.Errorf("unknown muscle group: %s", s)
	}
	return m, nil
}

// Equipment is the implement an exercise is performed with.
type Equipment string

const (
	EquipmentBarbell    Equipment = "barbell"
	EquipmentDumbbell   Equipment = "dumbbell"
	EquipmentCable      Equipment = "cable"
	EquipmentMachine    Equipment = "machine"
	EquipmentBodyweight Equipment = "bodyweight"
)

// AllEquipment returns equipment types in display order.
func AllEquipment() []Equipment {
	return []Equipment{
		EquipmentBarbell, EquipmentDumbbell, EquipmentCable,
		EquipmentMachine, EquipmentBodyweight,
	}
}

// IsValid reports whether e is a known equipment type.
func (e Equipment) IsValid() bool {
	for _, v := range AllEquipment() {
		if e == v {
			return true
		}
	}
	return false
}

// ParseEquipment parses an equipment name case-insensitively.
func ParseEquipment(s string) (Equipment, error) {
	e := Equipment(strings.ToLower(strings.TrimSpace(s)))
	if !e.IsValid() {
		return "", fmt.Errorf("unknown equipment: %s", s)
	}
	return e, nil
}

// MovementPattern classifies the joint action of an exercise.
type MovementPattern string

const (
	MovementPush     MovementPattern = "push"
	MovementPull     MovementPattern = "pull"
	MovementHinge    MovementPattern = "hinge"
	MovementSquat    MovementPattern = "squat"
	MovementCarry    MovementPattern = "carry"
	MovementLunge    MovementPattern = "lunge"
	MovementRotation MovementPattern = "rotation"
)

// AllMovementPatterns returns movement patterns in display order.
func AllMovementPatterns() []MovementPattern {
	return []MovementPattern{
		MovementPush, MovementPull, MovementHinge, MovementSquat,
		MovementCarry, MovementLunge, MovementRotation,
	}
}

// IsValid reports whether p is a known movement pattern.
func (p MovementPattern) IsValid() bool {
	for _, v := range AllMovementPatterns() {
		if p == v {
			return true
		}
	}
	return false
}

// ParseMovementPattern parses a movement pattern case-insensitively.
func ParseMovementPattern(s string) (MovementPattern, error) {
	p := MovementPattern(strings.ToLower(strings.TrimSpace(s)))
	if !p.IsValid() {
		return "", fmt.Errorf("unknown movement pattern: %s", s)
	}
	return p, nil
}

// Exercise is a catalog entry that can be added to workouts.
type Exercise struct {
	ID               uuid.UUID        `json:"id"`
	Name             string           `json:"name"`
	PrimaryMuscle    MuscleGroup      `json:"primary_muscle"`
	SecondaryMuscles *string          `json:"secondary_muscles,omitempty"`
	Equipment        *Equipment       `json:"equipment,omitempty"`
	MovementPattern  *MovementPattern `json:"movement_pattern,omitempty"`
	Instructions     *string          `json:"instructions,omitempty"`
	IsCustom         bool             `json:"is_custom"`
	CreatedAt        time.Time        `json:"created_at"`
}

// NewCustomExercise creates a user-defined exercise with a generated UUID.
func NewCustomExercise(name string, muscle MuscleGroup) *Exercise {
	return &Exercise{
		ID:            uuid.New(),
		Name:          name,
		PrimaryMuscle: muscle,
		IsCustom:      true,
		CreatedAt:     time.Now(),
	}
}

// WithEquipment sets the equipment.
func (e *Exercise) WithEquipment(eq Equipment) *Exercise {
	e.Equipment = &eq
	return e
}

// WithMovementPattern sets the movement pattern.
func (e *Exercise) WithMovementPattern(p MovementPattern) *Exercise {
	e.MovementPattern = &p
	return e
}

// WithSecondaryMuscles sets the comma-separated secondary muscle list.
func (e *Exercise) WithSecondaryMuscles(muscles string) *Exercise {
	e.SecondaryMuscles = &muscles
	return e
}

// WithInstructions sets how-to text.
func (e *Exercise) WithInstructions(text string) *Exercise {
	e.Instructions = &text
	return e
}

// SecondaryMuscleList splits SecondaryMuscles on commas.
func (e *Exercise) SecondaryMuscleList() []string {
	if e.SecondaryMuscles == nil || *e.SecondaryMuscles == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(*e.SecondaryMuscles, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ExerciseFilter narrows a catalog listing. Nil or empty fields impose no constraint.
type ExerciseFilter struct {
	Muscle          *MuscleGroup
	Equipment       *Equipment
	MovementPattern *MovementPattern
	Search          string
}
