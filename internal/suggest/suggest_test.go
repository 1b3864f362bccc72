// ABOUTME: Tests for suggestion parsing and catalog matching.
// ABOUTME: Covers fenced input, validation failures, and plan conversion.
package suggest

import (
	"testing"

	"github.com/google/uuid"
	"github.com/harperreed/gymtrack/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validSuggestion = `{
  "name": "Upper Push",
  "reasoning": "Chest has not been trained this week.",
  "exercises": [
    {"exerciseName": "Bench Press", "reason": "Main lift", "sets": [
      {"reps": 10, "weight": 40, "isWarmup": true},
      {"reps": 5, "weight": 100, "isWarmup": false}
    ]},
    {"exerciseName": "Cable Fly", "sets": [{"reps": 12, "weight": 15, "isWarmup": false}]}
  ]
}`

func TestParse(t *testing.T) {
	w, err := Parse(validSuggestion)
	require.NoError(t, err)
	assert.Equal(t, "Upper Push", w.Name)
	require.Len(t, w.Exercises, 2)
	assert.True(t, w.Exercises[0].Sets[0].IsWarmup)
	assert.Equal(t, 100.0, w.Exercises[0].Sets[1].Weight)
	assert.Equal(t, "Main lift", w.Exercises[0].Reason)
}

func TestParseFenced(t *testing.T) {
	for _, fence := range []string{"```json\n", "```\n", "```json"} {
		w, err := Parse(fence + validSuggestion + "\n```")
		require.NoError(t, err, "fence %q", fence)
		assert.Equal(t, "Upper Push", w.Name)
	}
}

func TestParseDefaultsReasoning(t *testing.T) {
	w, err := Parse(`{"name":"Legs","exercises":[{"exerciseName":"Squat","sets":[{"reps":5,"weight":100}]}]}`)
	require.NoError(t, err)
	assert.Equal(t, DefaultReasoning, w.Reasoning)
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", "   "},
		{"not json", "here is your workout!"},
		{"missing name", `{"exercises":[{"exerciseName":"Squat","sets":[{"reps":5}]}]}`},
		{"blank name", `{"name":"  ","exercises":[{"exerciseName":"Squat","sets":[{"reps":5}]}]}`},
		{"no exercises", `{"name":"Legs","exercises":[]}`},
		{"exercise without name", `{"name":"Legs","exercises":[{"sets":[{"reps":5}]}]}`},
		{"exercise without sets", `{"name":"Legs","exercises":[{"exerciseName":"Squat","sets":[]}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			assert.ErrorIs(t, err, ErrInvalidFormat)
		})
	}
}

func TestMatch(t *testing.T) {
	bench := &models.Exercise{ID: uuid.New(), Name: "Bench Press"}
	benchDup := &models.Exercise{ID: uuid.New(), Name: "bench press", IsCustom: true}
	fly := &models.Exercise{ID: uuid.New(), Name: "Cable Fly"}
	catalog := []*models.Exercise{bench, benchDup, fly}

	res := Match([]SuggestedExercise{
		{ExerciseName: " BENCH PRESS ", Reason: "main", Sets: []SuggestedSet{{Reps: 5, Weight: 100}}},
		{ExerciseName: "Zercher Squat", Sets: []SuggestedSet{{Reps: 5, Weight: 60}}},
		{ExerciseName: "cable fly", Sets: []SuggestedSet{{Reps: 12, Weight: 15}, {Reps: 12, Weight: 15}}},
	}, catalog)

	require.Len(t, res.Matched, 2)
	assert.Same(t, bench, res.Matched[0].Exercise)
	assert.Equal(t, "main", res.Matched[0].Reason)
	assert.Same(t, fly, res.Matched[1].Exercise)
	assert.Equal(t, []string{"Zercher Squat"}, res.Unmatched)

	plan := res.Plan()
	require.Len(t, plan, 2)
	assert.Equal(t, bench.ID, plan[0].ExerciseID)
	assert.Equal(t, []models.PlannedSet{{Reps: 5, Weight: 100}}, plan[0].Sets)
	assert.Len(t, plan[1].Sets, 2)
}

func TestMatchNothing(t *testing.T) {
	res := Match([]SuggestedExercise{{ExerciseName: "Bench Press"}}, nil)
	assert.Empty(t, res.Matched)
	assert.Empty(t, res.Plan())
	assert.Equal(t, []string{"Bench Press"}, res.Unmatched)
}

func TestValidateTrimsName(t *testing.T) {
	w := &SuggestedWorkout{
		Name:      "  Pull Day ",
		Exercises: []SuggestedExercise{{ExerciseName: "Barbell Row", Sets: []SuggestedSet{{Reps: 8, Weight: 60}}}},
	}
	require.NoError(t, w.Validate())
	assert.Equal(t, "Pull Day", w.Name)
	assert.Equal(t, DefaultReasoning, w.Reasoning)

	assert.ErrorIs(t, (&SuggestedWorkout{Name: "Empty"}).Validate(), ErrInvalidFormat)
}

func TestMatchFoldsNonASCII(t *testing.T) {
	raise := &models.Exercise{ID: uuid.New(), Name: "Élévation Latérale"}
	res := Match([]SuggestedExercise{{ExerciseName: "élévation latérale", Sets: []SuggestedSet{{Reps: 12, Weight: 8}}}},
		[]*models.Exercise{raise})

	require.Len(t, res.Matched, 1)
	assert.Same(t, raise, res.Matched[0].Exercise)
}
