// ABOUTME: Pure derived statistics over workout sets and records.
// ABOUTME: Volume, personal-record comparison, week boundaries, and display formatting.
package stats

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/harperreed/gymtrack/internal/models"
)

// DefaultRestDuration is the rest timer length used when none is configured.
const DefaultRestDuration = 90 * time.Second

// RestTimerPresets are the quick-pick rest durations.
var RestTimerPresets = []time.Duration{
	30 * time.Second,
	60 * time.Second,
	90 * time.Second,
	120 * time.Second,
	180 * time.Second,
}

// TotalVolume sums reps x weight over completed working sets.
// The result is not rounded.
func TotalVolume(sets []models.WorkoutSet) float64 {
	var total float64
	for _, s := range sets {
		if s.Counts() {
			total += float64(*s.Reps) * *s.Weight
		}
	}
	return total
}

// WorkingSetCount counts completed non-warmup sets.
func WorkingSetCount(sets []models.WorkoutSet) int {
	n := 0
	for _, s := range sets {
		if s.IsCompleted && !s.IsWarmup {
			n++
		}
	}
	return n
}

// QualifiesForRecord reports whether a set can be considered for a personal record.
func QualifiesForRecord(weight float64, reps int) bool {
	return weight > 0 && reps > 0
}

// IsNewPersonalRecord reports whether the candidate beats the best.
// Weight wins first, then reps. Exact ties are not records.
func IsNewPersonalRecord(candWeight float64, candReps int, bestWeight float64, bestReps int) bool {
	return candWeight > bestWeight || (candWeight == bestWeight && candReps > bestReps)
}

// StartOfWeek returns Monday 00:00:00 of the week containing now, in now's location.
func StartOfWeek(now time.Time) time.Time {
	// Sunday is 0; shift so Monday is 0.
	offset := (int(now.Weekday()) + 6) % 7
	y, m, d := now.Date()
	return time.Date(y, m, d-offset, 0, 0, 0, 0, now.Location())
}

// FormatDuration renders seconds as "1h 5m" or "42m". Nil or zero renders "--".
func FormatDuration(seconds *int) string {
	if seconds == nil || *seconds == 0 {
		return "--"
	}
	hours := *seconds / 3600
	minutes := (*seconds % 3600) / 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}

// FormatVolume renders a volume, abbreviating thousands.
func FormatVolume(volume float64, unit models.WeightUnit) string {
	if volume >= 1000 {
		return fmt.Sprintf("%.1fk %s", volume/1000, unit)
	}
	return fmt.Sprintf("%d %s", int(math.Round(volume)), unit)
}

// FormatWeight renders a weight without a trailing ".0".
func FormatWeight(weight float64, unit models.WeightUnit) string {
	return strconv.FormatFloat(weight, 'f', -1, 64) + " " + string(unit)
}

// FormatSet renders a set as "100 kg x 5", with "-" for missing values.
func FormatSet(s models.WorkoutSet, unit models.WeightUnit) string {
	weight := "-"
	if s.Weight != nil {
		weight = FormatWeight(*s.Weight, unit)
	}
	reps := "-"
	if s.Reps != nil {
		reps = strconv.Itoa(*s.Reps)
	}
	return weight + " x " + reps
}
