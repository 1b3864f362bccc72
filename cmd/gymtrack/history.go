// ABOUTME: CLI commands for completed workouts and personal records.
// ABOUTME: Supports list, show, week, records, and delete subcommands.
package main

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/gymtrack/internal/models"
	"github.com/harperreed/gymtrack/internal/stats"
	"github.com/spf13/cobra"
)

var (
	historyLimit    int
	recordsLimit    int
	recordsExercise string
)

var historyCmd = &cobra.Command{
	Use:     "history",
	Aliases: []string{"h"},
	Short:   "Show completed workouts",
	Long: `Show completed workouts, weekly totals, and personal records.

EXAMPLES:

  gymtrack history                         # Last 10 workouts
  gymtrack history --limit 30
  gymtrack history show abc12345           # One workout in detail
  gymtrack history week                    # Training since Monday
  gymtrack history records                 # Recent personal records
  gymtrack history records --exercise "Back Squat"
  gymtrack history delete abc12345`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		workouts, err := repo.RecentWorkouts(ctx, historyLimit)
		if err != nil {
			return fmt.Errorf("failed to list workouts: %w", err)
		}

		if len(workouts) == 0 {
			fmt.Fprintln(out, "No workouts found.")
			return nil
		}

		for _, w := range workouts {
			volume, err := repo.WorkoutVolume(ctx, w.ID)
			if err != nil {
				return fmt.Errorf("failed to compute volume: %w", err)
			}
			exercises, err := repo.WorkoutExerciseCount(ctx, w.ID)
			if err != nil {
				return fmt.Errorf("failed to count exercises: %w", err)
			}
			fmt.Fprintf(out, "%s %s %s %s %s\n",
				shortID(w.ID),
				faint.Sprint(w.StartedAt.Local().Format("2006-01-02 15:04")),
				padRight(truncate(w.DisplayName(), 20), 20),
				padRight(stats.FormatDuration(w.DurationSeconds), 7),
				faint.Sprintf("%d exercises, %s", exercises, stats.FormatVolume(volume, weightUnit)))
		}
		return nil
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a workout in detail",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		w, err := findWorkout(cmd, args[0])
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "%s %s\n", bold.Sprint(w.DisplayName()), shortID(w.ID))
		fmt.Fprintf(out, "Started: %s\n", w.StartedAt.Local().Format("2006-01-02 15:04"))
		if w.IsInProgress() {
			fmt.Fprintln(out, yellow.Sprint("In progress"))
		} else {
			fmt.Fprintf(out, "Duration: %s\n", stats.FormatDuration(w.DurationSeconds))
		}
		volume, err := repo.WorkoutVolume(ctx, w.ID)
		if err != nil {
			return fmt.Errorf("failed to compute volume: %w", err)
		}
		fmt.Fprintf(out, "Volume: %s\n", stats.FormatVolume(volume, weightUnit))
		if w.Notes != nil && *w.Notes != "" {
			fmt.Fprintf(out, "Notes: %s\n", *w.Notes)
		}
		printWorkout(out, w, weightUnit)
		return nil
	},
}

var historyWeekCmd = &cobra.Command{
	Use:   "week",
	Short: "Show training since Monday",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		workouts, err := repo.WorkoutsThisWeek(ctx)
		if err != nil {
			return fmt.Errorf("failed to list workouts: %w", err)
		}
		volume, err := repo.TotalVolumeThisWeek(ctx)
		if err != nil {
			return fmt.Errorf("failed to compute volume: %w", err)
		}
		freq, err := repo.MuscleGroupFrequency(ctx, stats.StartOfWeek(time.Now()))
		if err != nil {
			return fmt.Errorf("failed to count muscle groups: %w", err)
		}
		total, err := repo.TotalWorkoutCount(ctx)
		if err != nil {
			return fmt.Errorf("failed to count workouts: %w", err)
		}

		fmt.Fprintln(out, bold.Sprint("This week"))
		fmt.Fprintf(out, "Workouts: %d %s\n", len(workouts), faint.Sprintf("(%d all time)", total))
		fmt.Fprintf(out, "Volume:   %s\n", stats.FormatVolume(volume, weightUnit))

		if len(freq) > 0 {
			fmt.Fprintln(out, "\nMuscle groups:")
			muscles := make([]models.MuscleGroup, 0, len(freq))
			for m := range freq {
				muscles = append(muscles, m)
			}
			sort.Slice(muscles, func(i, j int) bool {
				if freq[muscles[i]] != freq[muscles[j]] {
					return freq[muscles[i]] > freq[muscles[j]]
				}
				return muscles[i] < muscles[j]
			})
			for _, m := range muscles {
				fmt.Fprintf(out, "  %s %d\n", padRight(string(m), 10), freq[m])
			}
		}

		for _, w := range workouts {
			fmt.Fprintf(out, "%s %s %s\n",
				shortID(w.ID),
				faint.Sprint(w.StartedAt.Local().Format("Mon 15:04")),
				w.DisplayName())
		}
		return nil
	},
}

var historyRecordsCmd = &cobra.Command{
	Use:     "records",
	Aliases: []string{"prs"},
	Short:   "Show personal records",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		var records []*models.PersonalRecord
		if recordsExercise != "" {
			e, err := findExercise(cmd, recordsExercise)
			if err != nil {
				return err
			}
			records, err = repo.ListPersonalRecords(ctx, e.ID)
			if err != nil {
				return fmt.Errorf("failed to list records: %w", err)
			}
			for _, r := range records {
				r.ExerciseName = e.Name
			}
		} else {
			var err error
			records, err = repo.RecentPersonalRecords(ctx, recordsLimit)
			if err != nil {
				return fmt.Errorf("failed to list records: %w", err)
			}
		}

		if len(records) == 0 {
			fmt.Fprintln(out, "No personal records yet.")
			return nil
		}

		for _, r := range records {
			fmt.Fprintf(out, "%s %s %s x %d\n",
				faint.Sprint(r.AchievedAt.Local().Format("2006-01-02")),
				padRight(truncate(r.ExerciseName, 28), 28),
				stats.FormatWeight(r.Weight, weightUnit),
				r.Reps)
		}
		return nil
	},
}

var historyDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a workout",
	Long: `Delete a workout with all its exercises and sets.

Personal records set during the workout are kept. There is no undo.
Use 'gymtrack workout discard' for the workout in progress.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := findWorkout(cmd, args[0])
		if err != nil {
			return err
		}
		if active := sess.Active(); active != nil && active.ID == w.ID {
			return fmt.Errorf("workout %s is in progress (use: gymtrack workout discard)", w.ID.String()[:8])
		}

		if err := repo.DeleteWorkout(cmd.Context(), w.ID); err != nil {
			return fmt.Errorf("failed to delete workout: %w", err)
		}

		warn(cmd.OutOrStdout(), "✗ Deleted %s", w.DisplayName())
		fmt.Fprintf(cmd.OutOrStdout(), "  %s %s\n", shortID(w.ID), faint.Sprint(w.StartedAt.Local().Format("2006-01-02 15:04")))
		return nil
	},
}

// findWorkout loads a workout with details by ID or ID prefix.
func findWorkout(cmd *cobra.Command, ref string) (*models.Workout, error) {
	id, err := repo.ResolveID(cmd.Context(), "workouts", ref)
	if err != nil {
		return nil, err
	}
	if id == uuid.Nil {
		return nil, fmt.Errorf("workout not found: %s", ref)
	}
	w, err := repo.GetWorkoutWithDetails(cmd.Context(), id)
	if err != nil {
		return nil, fmt.Errorf("failed to get workout: %w", err)
	}
	if w == nil {
		return nil, fmt.Errorf("workout not found: %s", ref)
	}
	return w, nil
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "max number of workouts")
	historyRecordsCmd.Flags().IntVarP(&recordsLimit, "limit", "n", 20, "max number of records")
	historyRecordsCmd.Flags().StringVarP(&recordsExercise, "exercise", "e", "", "records for one exercise")

	historyCmd.AddCommand(historyShowCmd, historyWeekCmd, historyRecordsCmd, historyDeleteCmd)
	rootCmd.AddCommand(historyCmd)
}
