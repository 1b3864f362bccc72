// ABOUTME: Parses workout suggestions produced by an external assistant.
// ABOUTME: Accepts bare or fenced JSON and validates the workout shape.
package suggest

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// DefaultReasoning fills in a suggestion that arrives without one.
const DefaultReasoning = "Workout generated based on your preferences."

// ErrInvalidFormat wraps every rejection from Parse.
var ErrInvalidFormat = errors.New("invalid workout suggestion")

// SuggestedSet is one planned set.
type SuggestedSet struct {
	Reps     int     `json:"reps" yaml:"reps"`
	Weight   float64 `json:"weight" yaml:"weight"`
	IsWarmup bool    `json:"isWarmup" yaml:"isWarmup"`
}

// SuggestedExercise names a catalog exercise and its planned sets.
type SuggestedExercise struct {
	ExerciseName string         `json:"exerciseName" yaml:"exerciseName"`
	Reason       string         `json:"reason,omitempty" yaml:"reason,omitempty"`
	Sets         []SuggestedSet `json:"sets" yaml:"sets"`
}

// SuggestedWorkout is a complete workout proposal.
type SuggestedWorkout struct {
	Name      string              `json:"name"`
	Reasoning string              `json:"reasoning"`
	Exercises []SuggestedExercise `json:"exercises"`
}

// Parse decodes a suggestion, tolerating a surrounding ```json fence.
func Parse(text string) (*SuggestedWorkout, error) {
	body := stripFence(text)
	if body == "" {
		return nil, fmt.Errorf("%w: empty response", ErrInvalidFormat)
	}

	var w SuggestedWorkout
	if err := json.Unmarshal([]byte(body), &w); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	if err := w.Validate(); err != nil {
		return nil, err
	}
	return &w, nil
}

// Validate checks the workout shape and fills in a missing reasoning.
func (w *SuggestedWorkout) Validate() error {
	w.Name = strings.TrimSpace(w.Name)
	if w.Name == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidFormat)
	}
	if len(w.Exercises) == 0 {
		return fmt.Errorf("%w: no exercises", ErrInvalidFormat)
	}
	for i, ex := range w.Exercises {
		if strings.TrimSpace(ex.ExerciseName) == "" {
			return fmt.Errorf("%w: exercise %d has no name", ErrInvalidFormat, i+1)
		}
		if len(ex.Sets) == 0 {
			return fmt.Errorf("%w: %s has no sets", ErrInvalidFormat, ex.ExerciseName)
		}
	}

	if strings.TrimSpace(w.Reasoning) == "" {
		w.Reasoning = DefaultReasoning
	}
	return nil
}

func stripFence(text string) string {
	s := strings.TrimSpace(text)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
