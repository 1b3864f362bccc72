// ABOUTME: Workout export for a recent time range with a training summary.
// ABOUTME: Supports JSON, YAML, and Markdown export formats.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/harperreed/gymtrack/internal/models"
	"github.com/harperreed/gymtrack/internal/stats"
	"gopkg.in/yaml.v3"
)

// ExportRange selects how far back an export reaches.
type ExportRange string

const (
	Range1Week  ExportRange = "1week"
	Range2Weeks ExportRange = "2weeks"
	Range4Weeks ExportRange = "4weeks"
	Range8Weeks ExportRange = "8weeks"
)

var rangeDays = map[ExportRange]int{
	Range1Week:  7,
	Range2Weeks: 14,
	Range4Weeks: 28,
	Range8Weeks: 56,
}

// ParseExportRange validates a range name.
func ParseExportRange(s string) (ExportRange, error) {
	r := ExportRange(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := rangeDays[r]; !ok {
		return "", fmt.Errorf("unknown export range %q (want 1week, 2weeks, 4weeks, or 8weeks)", s)
	}
	return r, nil
}

// Days returns the number of days covered by the range.
func (r ExportRange) Days() int {
	return rangeDays[r]
}

// ExportData is the full export document.
type ExportData struct {
	ExportedAt time.Time       `json:"exported_at" yaml:"exported_at"`
	Range      string          `json:"range" yaml:"range"`
	Summary    ExportSummary   `json:"summary" yaml:"summary"`
	Workouts   []ExportWorkout `json:"workouts" yaml:"workouts"`
}

// ExportSummary aggregates training over the export period.
type ExportSummary struct {
	PeriodDays           int            `json:"period_days" yaml:"period_days"`
	TotalWorkouts        int            `json:"total_workouts" yaml:"total_workouts"`
	AvgWorkoutsPerWeek   float64        `json:"avg_workouts_per_week" yaml:"avg_workouts_per_week"`
	TotalWorkingSets     int            `json:"total_working_sets" yaml:"total_working_sets"`
	TotalVolume          int            `json:"total_volume" yaml:"total_volume"`
	MuscleGroupFrequency map[string]int `json:"muscle_group_frequency" yaml:"muscle_group_frequency"`
	ExerciseFrequency    map[string]int `json:"exercise_frequency" yaml:"exercise_frequency"`
}

// ExportWorkout is a completed workout with its completed sets.
type ExportWorkout struct {
	Date            time.Time        `json:"date" yaml:"date"`
	Name            *string          `json:"name" yaml:"name,omitempty"`
	Notes           *string          `json:"notes" yaml:"notes,omitempty"`
	DurationMinutes *int             `json:"duration_minutes" yaml:"duration_minutes,omitempty"`
	Exercises       []ExportExercise `json:"exercises" yaml:"exercises"`
}

// ExportExercise is one exercise within an exported workout.
type ExportExercise struct {
	Name             string      `json:"name" yaml:"name"`
	MuscleGroup      string      `json:"muscle_group" yaml:"muscle_group"`
	SecondaryMuscles *string     `json:"secondary_muscles" yaml:"secondary_muscles,omitempty"`
	Equipment        *string     `json:"equipment" yaml:"equipment,omitempty"`
	MovementPattern  *string     `json:"movement_pattern" yaml:"movement_pattern,omitempty"`
	Notes            *string     `json:"notes" yaml:"notes,omitempty"`
	Sets             []ExportSet `json:"sets" yaml:"sets"`
}

// ExportSet is a completed set.
type ExportSet struct {
	SetNumber int      `json:"set_number" yaml:"set_number"`
	Reps      *int     `json:"reps" yaml:"reps,omitempty"`
	Weight    *float64 `json:"weight" yaml:"weight,omitempty"`
	IsWarmup  bool     `json:"is_warmup" yaml:"is_warmup"`
}

// Export gathers completed workouts from the last r days with a summary.
func (d *DB) Export(ctx context.Context, r ExportRange) (*ExportData, error) {
	days := r.Days()
	if days == 0 {
		return nil, fmt.Errorf("export: unknown range %q", r)
	}

	now := d.now()
	workouts, err := d.WorkoutsInDateRange(ctx, now.AddDate(0, 0, -days), now)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}

	return &ExportData{
		ExportedAt: now.UTC(),
		Range:      fmt.Sprintf("Last %d days", days),
		Summary:    BuildSummary(workouts, days),
		Workouts:   formatExportWorkouts(workouts),
	}, nil
}

// BuildSummary computes period statistics over hydrated workouts.
func BuildSummary(workouts []*models.Workout, days int) ExportSummary {
	s := ExportSummary{
		PeriodDays:           days,
		TotalWorkouts:        len(workouts),
		MuscleGroupFrequency: make(map[string]int),
		ExerciseFrequency:    make(map[string]int),
	}

	var volume float64
	for _, w := range workouts {
		for _, we := range w.Exercises {
			if we.Exercise != nil {
				s.MuscleGroupFrequency[string(we.Exercise.PrimaryMuscle)]++
				s.ExerciseFrequency[we.Exercise.Name]++
			}
			s.TotalWorkingSets += stats.WorkingSetCount(we.Sets)
			volume += stats.TotalVolume(we.Sets)
		}
	}

	if days > 0 {
		s.AvgWorkoutsPerWeek = math.Round(float64(len(workouts))/float64(days)*7*10) / 10
	}
	s.TotalVolume = int(math.Round(volume))
	return s
}

func formatExportWorkouts(workouts []*models.Workout) []ExportWorkout {
	out := make([]ExportWorkout, 0, len(workouts))
	for _, w := range workouts {
		ew := ExportWorkout{
			Date:      w.StartedAt,
			Name:      w.Name,
			Notes:     w.Notes,
			Exercises: make([]ExportExercise, 0, len(w.Exercises)),
		}
		if w.DurationSeconds != nil && *w.DurationSeconds > 0 {
			minutes := int(math.Round(float64(*w.DurationSeconds) / 60))
			ew.DurationMinutes = &minutes
		}

		for _, we := range w.Exercises {
			ee := ExportExercise{Notes: we.Notes, Sets: []ExportSet{}}
			if ex := we.Exercise; ex != nil {
				ee.Name = ex.Name
				ee.MuscleGroup = string(ex.PrimaryMuscle)
				ee.SecondaryMuscles = ex.SecondaryMuscles
				ee.Equipment = enumString(ex.Equipment)
				ee.MovementPattern = enumString(ex.MovementPattern)
			}
			for _, s := range we.Sets {
				if !s.IsCompleted {
					continue
				}
				ee.Sets = append(ee.Sets, ExportSet{
					SetNumber: s.SetNumber,
					Reps:      s.Reps,
					Weight:    s.Weight,
					IsWarmup:  s.IsWarmup,
				})
			}
			ew.Exercises = append(ew.Exercises, ee)
		}
		out = append(out, ew)
	}
	return out
}

// ToJSON renders the export as indented JSON.
func (e *ExportData) ToJSON() ([]byte, error) {
	return json.MarshalIndent(e, "", "  ")
}

// ToYAML renders the export as YAML.
func (e *ExportData) ToYAML() ([]byte, error) {
	return yaml.Marshal(e)
}

// ToMarkdown renders the export as a human-readable training log.
func (e *ExportData) ToMarkdown(unit models.WeightUnit) string {
	var sb strings.Builder

	sb.WriteString("# Training Log\n\n")
	sb.WriteString(fmt.Sprintf("*%s, exported %s*\n\n", e.Range, e.ExportedAt.Format("2006-01-02 15:04")))

	s := e.Summary
	sb.WriteString("## Summary\n\n")
	sb.WriteString("| Stat | Value |\n")
	sb.WriteString("|------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Workouts | %d |\n", s.TotalWorkouts))
	sb.WriteString(fmt.Sprintf("| Per week | %.1f |\n", s.AvgWorkoutsPerWeek))
	sb.WriteString(fmt.Sprintf("| Working sets | %d |\n", s.TotalWorkingSets))
	sb.WriteString(fmt.Sprintf("| Volume | %s |\n", stats.FormatVolume(float64(s.TotalVolume), unit)))
	sb.WriteString("\n")

	if len(s.MuscleGroupFrequency) > 0 {
		sb.WriteString("### Muscle groups\n\n")
		for _, k := range sortedByCount(s.MuscleGroupFrequency) {
			sb.WriteString(fmt.Sprintf("- %s: %d\n", k, s.MuscleGroupFrequency[k]))
		}
		sb.WriteString("\n")
	}

	if len(e.Workouts) == 0 {
		sb.WriteString("*No workouts in this period.*\n")
		return sb.String()
	}

	sb.WriteString("## Workouts\n\n")
	for _, w := range e.Workouts {
		name := "Workout"
		if w.Name != nil && *w.Name != "" {
			name = *w.Name
		}
		sb.WriteString(fmt.Sprintf("### %s (%s)\n\n", name, w.Date.Local().Format("Mon Jan 2, 2006")))
		if w.DurationMinutes != nil {
			sb.WriteString(fmt.Sprintf("Duration: %d min\n\n", *w.DurationMinutes))
		}
		if w.Notes != nil && *w.Notes != "" {
			sb.WriteString(fmt.Sprintf("> %s\n\n", *w.Notes))
		}
		for _, ex := range w.Exercises {
			sb.WriteString(fmt.Sprintf("**%s** (%s)\n\n", ex.Name, ex.MuscleGroup))
			if len(ex.Sets) == 0 {
				sb.WriteString("- no completed sets\n\n")
				continue
			}
			for _, set := range ex.Sets {
				line := stats.FormatSet(models.WorkoutSet{Reps: set.Reps, Weight: set.Weight}, unit)
				if set.IsWarmup {
					line += " (warmup)"
				}
				sb.WriteString(fmt.Sprintf("%d. %s\n", set.SetNumber, line))
			}
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

func sortedByCount(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if m[keys[i]] != m[keys[j]] {
			return m[keys[i]] > m[keys[j]]
		}
		return keys[i] < keys[j]
	})
	return keys
}

func enumString[T ~string](v *T) *string {
	if v == nil {
		return nil
	}
	s := string(*v)
	return &s
}
