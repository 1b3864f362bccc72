// ABOUTME: Resolves suggested exercise names against the exercise catalog.
// ABOUTME: Produces a plan for starting a pre-filled workout.
package suggest

import (
	"github.com/harperreed/gymtrack/internal/models"
)

// MatchedExercise is a suggestion resolved to a catalog entry.
type MatchedExercise struct {
	Exercise *models.Exercise
	Sets     []SuggestedSet
	Reason   string
}

// MatchResult splits suggestions into resolved and unresolved names.
type MatchResult struct {
	Matched   []MatchedExercise
	Unmatched []string
}

// Match resolves each suggested name case-insensitively against the catalog.
// When the catalog holds duplicate names the first entry wins.
func Match(suggested []SuggestedExercise, catalog []*models.Exercise) MatchResult {
	byName := make(map[string]*models.Exercise, len(catalog))
	for _, e := range catalog {
		key := normalize(e.Name)
		if _, ok := byName[key]; !ok {
			byName[key] = e
		}
	}

	var res MatchResult
	for _, s := range suggested {
		e, ok := byName[normalize(s.ExerciseName)]
		if !ok {
			res.Unmatched = append(res.Unmatched, s.ExerciseName)
			continue
		}
		res.Matched = append(res.Matched, MatchedExercise{
			Exercise: e,
			Sets:     s.Sets,
			Reason:   s.Reason,
		})
	}
	return res
}

// Plan converts the matched exercises into planned rows.
func (r MatchResult) Plan() []models.PlannedExercise {
	plan := make([]models.PlannedExercise, 0, len(r.Matched))
	for _, m := range r.Matched {
		pe := models.PlannedExercise{
			ExerciseID: m.Exercise.ID,
			Sets:       make([]models.PlannedSet, len(m.Sets)),
		}
		for i, s := range m.Sets {
			pe.Sets[i] = models.PlannedSet{Reps: s.Reps, Weight: s.Weight, IsWarmup: s.IsWarmup}
		}
		plan = append(plan, pe)
	}
	return plan
}

func normalize(name string) string {
	return models.FoldName(name)
}
