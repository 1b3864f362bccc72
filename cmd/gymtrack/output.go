// ABOUTME: Shared terminal output helpers for CLI commands.
// ABOUTME: Colored status lines, short IDs, padding, and workout rendering.
package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/harperreed/gymtrack/internal/models"
	"github.com/harperreed/gymtrack/internal/stats"
)

var (
	faint  = color.New(color.Faint)
	bold   = color.New(color.Bold)
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	cyan   = color.New(color.FgCyan)
)

func success(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintln(w, green.Sprintf("✓ "+format, args...))
}

func warn(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintln(w, yellow.Sprintf(format, args...))
}

func shortID(id uuid.UUID) string {
	return faint.Sprint(id.String()[:8])
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

// parseRestDuration accepts Go durations ("90s", "2m") or bare seconds ("90").
func parseRestDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if secs, err := strconv.Atoi(s); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q (use seconds, 90s, or 2m)", s)
	}
	return d, nil
}

func formatCountdown(d time.Duration) string {
	secs := int(d.Round(time.Second) / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// printWorkout renders a workout with numbered exercises and sets, so
// "2.1" addresses the first set of the second exercise.
func printWorkout(w io.Writer, wo *models.Workout, unit models.WeightUnit) {
	for i, we := range wo.Exercises {
		fmt.Fprintf(w, "\n%s %s %s\n", bold.Sprintf("%d.", i+1), bold.Sprint(we.Name()), shortID(we.ID))
		if we.Notes != nil && *we.Notes != "" {
			fmt.Fprintf(w, "   %s\n", faint.Sprint(*we.Notes))
		}
		if len(we.Sets) == 0 {
			fmt.Fprintf(w, "   %s\n", faint.Sprint("no sets"))
		}
		for _, s := range we.Sets {
			mark := faint.Sprint("○")
			if s.IsCompleted {
				mark = green.Sprint("●")
			}
			label := stats.FormatSet(s, unit)
			if s.IsWarmup {
				label += faint.Sprint(" (warmup)")
			}
			fmt.Fprintf(w, "   %s %s %s %s\n", mark, padRight(fmt.Sprintf("%d.%d", i+1, s.SetNumber), 5), label, shortID(s.ID))
		}
	}
}
