// ABOUTME: CLI commands for the active workout.
// ABOUTME: Start, log sets, manage the rest timer, and finish or discard a workout.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/gymtrack/internal/models"
	"github.com/harperreed/gymtrack/internal/session"
	"github.com/harperreed/gymtrack/internal/stats"
	"github.com/harperreed/gymtrack/internal/suggest"
	"github.com/spf13/cobra"
)

var (
	setWarmup   bool
	finishNotes string
	restWatch   bool
	restClear   bool
	watchTick   = time.Second
)

var workoutCmd = &cobra.Command{
	Use:     "workout",
	Aliases: []string{"w"},
	Short:   "Log the active workout",
	Long: `Log a strength workout set by set.

Only one workout can be in progress. It stays active between commands until
you finish or discard it.

ADDRESSING:

  Exercises are numbered in 'gymtrack workout status'. Refer to an exercise by
  its number, its ID prefix, or its name. Refer to a set as exercise.set
  (2.1 is the first set of the second exercise) or by its ID prefix.

WORKFLOW:

  gymtrack workout start "Leg Day"
  gymtrack workout add "Back Squat"        # adds exercise 1 with one empty set
  gymtrack workout done 1.1 5 140          # 5 reps at 140, starts the rest timer
  gymtrack workout set 1                   # another set for exercise 1
  gymtrack workout done 1.2 5 140
  gymtrack workout rest --watch            # count down the rest period
  gymtrack workout finish --notes "Felt strong"

SUGGESTIONS:

  gymtrack workout suggest plan.json       # start a workout from a JSON suggestion

PROGRAMS:

  gymtrack workout program list            # built-in coach programs
  gymtrack workout program start ppl-hypertrophy`,
}

var workoutStartCmd = &cobra.Command{
	Use:   "start [name]",
	Short: "Start a new workout",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := ""
		if len(args) == 1 {
			name = strings.TrimSpace(args[0])
		}

		w, err := sess.Start(cmd.Context(), name)
		if err != nil {
			if errors.Is(err, session.ErrWorkoutInProgress) {
				return fmt.Errorf("%w (finish or discard it first)", err)
			}
			return fmt.Errorf("failed to start workout: %w", err)
		}

		success(cmd.OutOrStdout(), "Started %s", w.DisplayName())
		fmt.Fprintf(cmd.OutOrStdout(), "  ID: %s\n", shortID(w.ID))
		return nil
	},
}

var workoutAddCmd = &cobra.Command{
	Use:   "add <exercise>",
	Short: "Add an exercise to the workout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		e, err := findExercise(cmd, args[0])
		if err != nil {
			return err
		}

		we, err := sess.AddExercise(ctx, e.ID)
		if err != nil {
			return fmt.Errorf("failed to add exercise: %w", err)
		}

		position := len(sess.Active().Exercises)
		success(out, "Added %s as exercise %d", e.Name, position)
		fmt.Fprintf(out, "  ID: %s\n", shortID(we.ID))

		last, err := repo.LastPerformance(ctx, e.ID)
		if err != nil {
			return fmt.Errorf("failed to load last performance: %w", err)
		}
		if last != nil {
			fmt.Fprintf(out, "  Last time: %s\n", stats.FormatSet(*last, weightUnit))
		}
		return nil
	},
}

var workoutSetCmd = &cobra.Command{
	Use:   "set <exercise>",
	Short: "Add an empty set to an exercise",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := activeWorkout()
		if err != nil {
			return err
		}
		pos, we, err := resolveWorkoutExercise(w, args[0])
		if err != nil {
			return err
		}

		set, err := sess.AddSet(cmd.Context(), we.ID)
		if err != nil {
			return fmt.Errorf("failed to add set: %w", err)
		}

		success(cmd.OutOrStdout(), "Added set %d.%d to %s", pos, set.SetNumber, we.Name())
		return nil
	},
}

var workoutDoneCmd = &cobra.Command{
	Use:   "done <set> <reps> <weight>",
	Short: "Complete a set",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		w, err := activeWorkout()
		if err != nil {
			return err
		}
		pos, we, set, err := resolveSet(w, args[0])
		if err != nil {
			return err
		}
		reps, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid reps: %s", args[1])
		}
		weight, err := strconv.ParseFloat(args[2], 64)
		if err != nil {
			return fmt.Errorf("invalid weight: %s", args[2])
		}

		pr, err := sess.CompleteSet(cmd.Context(), set.ID, reps, weight, setWarmup)
		if err != nil {
			return fmt.Errorf("failed to complete set: %w", err)
		}

		done := models.WorkoutSet{Reps: &reps, Weight: &weight, IsWarmup: setWarmup}
		label := stats.FormatSet(done, weightUnit)
		if setWarmup {
			label += " (warmup)"
		}
		success(out, "%s %d.%d: %s", we.Name(), pos, set.SetNumber, label)
		if pr != nil {
			fmt.Fprintln(out, cyan.Sprint("★ New personal record!"))
		}
		if remaining := sess.RestRemaining(); remaining > 0 {
			fmt.Fprintf(out, "  Rest %s\n", formatCountdown(remaining))
		}
		return nil
	},
}

var workoutRmCmd = &cobra.Command{
	Use:   "rm <exercise>",
	Short: "Remove an exercise and its sets",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := activeWorkout()
		if err != nil {
			return err
		}
		_, we, err := resolveWorkoutExercise(w, args[0])
		if err != nil {
			return err
		}

		if err := sess.RemoveExercise(cmd.Context(), we.ID); err != nil {
			return fmt.Errorf("failed to remove exercise: %w", err)
		}

		warn(cmd.OutOrStdout(), "✗ Removed %s", we.Name())
		return nil
	},
}

var workoutRmSetCmd = &cobra.Command{
	Use:   "rmset <set>",
	Short: "Delete a set",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := activeWorkout()
		if err != nil {
			return err
		}
		pos, we, set, err := resolveSet(w, args[0])
		if err != nil {
			return err
		}

		if err := sess.DeleteSet(cmd.Context(), we.ID, set.ID); err != nil {
			return fmt.Errorf("failed to delete set: %w", err)
		}

		warn(cmd.OutOrStdout(), "✗ Deleted set %d.%d of %s", pos, set.SetNumber, we.Name())
		return nil
	},
}

var workoutFinishCmd = &cobra.Command{
	Use:   "finish",
	Short: "Finish and save the workout",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		w, err := sess.Complete(ctx, strings.TrimSpace(finishNotes))
		if err != nil {
			return fmt.Errorf("failed to finish workout: %w", err)
		}

		sets := w.AllSets()
		success(out, "Finished %s", w.DisplayName())
		fmt.Fprintf(out, "  Duration:     %s\n", stats.FormatDuration(w.DurationSeconds))
		fmt.Fprintf(out, "  Volume:       %s\n", stats.FormatVolume(stats.TotalVolume(sets), weightUnit))
		fmt.Fprintf(out, "  Working sets: %d\n", stats.WorkingSetCount(sets))

		prs, err := workoutRecords(ctx, w)
		if err != nil {
			return err
		}
		if prs > 0 {
			fmt.Fprintln(out, cyan.Sprintf("  ★ %d new personal records", prs))
		}
		return nil
	},
}

var workoutDiscardCmd = &cobra.Command{
	Use:   "discard",
	Short: "Delete the workout without saving",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := activeWorkout()
		if err != nil {
			return err
		}
		if err := sess.Discard(cmd.Context()); err != nil {
			return fmt.Errorf("failed to discard workout: %w", err)
		}

		warn(cmd.OutOrStdout(), "✗ Discarded %s", w.DisplayName())
		return nil
	},
}

var workoutStatusCmd = &cobra.Command{
	Use:     "status",
	Aliases: []string{"st"},
	Short:   "Show the active workout",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		w := sess.Active()
		if w == nil {
			fmt.Fprintln(out, "No active workout.")
			fmt.Fprintln(out, faint.Sprint("Start one with: gymtrack workout start"))
			return nil
		}

		elapsed := int(time.Since(w.StartedAt) / time.Second)
		fmt.Fprintf(out, "%s %s\n", bold.Sprint(w.DisplayName()), shortID(w.ID))
		fmt.Fprintf(out, "Started %s, %s elapsed\n", w.StartedAt.Local().Format("15:04"), stats.FormatDuration(&elapsed))
		fmt.Fprintf(out, "Volume: %s\n", stats.FormatVolume(stats.TotalVolume(w.AllSets()), weightUnit))
		if remaining := sess.RestRemaining(); remaining > 0 {
			fmt.Fprintf(out, "Rest: %s\n", formatCountdown(remaining))
		}
		if len(w.Exercises) == 0 {
			fmt.Fprintln(out, faint.Sprint("\nNo exercises yet. Add one with: gymtrack workout add <exercise>"))
			return nil
		}
		printWorkout(out, w, weightUnit)
		return nil
	},
}

var workoutRestCmd = &cobra.Command{
	Use:   "rest [duration]",
	Short: "Show, start, or clear the rest timer",
	Long: `Show, start, or clear the rest timer.

Completing a working set starts the timer automatically with the default rest
period (see 'gymtrack settings rest'). Passing a duration starts a new timer and
makes that duration the default for the rest of the workout.

EXAMPLES:

  gymtrack workout rest            # time left
  gymtrack workout rest 2m         # start a 2 minute timer
  gymtrack workout rest --watch    # count down until rest is over
  gymtrack workout rest --clear    # stop the timer`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		if restClear {
			sess.ClearRestTimer()
			warn(out, "✗ Rest timer cleared")
			return nil
		}

		if len(args) == 1 {
			d, err := parseRestDuration(args[0])
			if err != nil {
				return err
			}
			if d <= 0 {
				return session.ErrInvalidDuration
			}
			sess.StartRestTimer(d)
			success(out, "Rest timer started: %s", formatCountdown(d))
		}

		if restWatch {
			return watchRest(cmd.Context(), out)
		}

		remaining := sess.RestRemaining()
		if remaining == 0 {
			fmt.Fprintln(out, "No rest timer running.")
			return nil
		}
		fmt.Fprintf(out, "Rest: %s\n", formatCountdown(remaining))
		return nil
	},
}

var workoutSuggestCmd = &cobra.Command{
	Use:   "suggest <file>",
	Short: "Start a workout from a JSON suggestion",
	Long: `Start a workout pre-filled from a JSON suggestion, such as one written by an
AI assistant. Use - to read from stdin. A surrounding markdown code fence is
accepted.

FORMAT:

  {
    "name": "Upper Push",
    "reasoning": "Chest has not been trained this week.",
    "exercises": [
      {"exerciseName": "Barbell Bench Press", "sets": [
        {"reps": 10, "weight": 40, "isWarmup": true},
        {"reps": 5, "weight": 100, "isWarmup": false}
      ]}
    ]
  }

Exercise names must match the catalog (ignoring case). Unknown exercises are
skipped and reported.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		var data []byte
		var err error
		if args[0] == "-" {
			data, err = io.ReadAll(cmd.InOrStdin())
		} else {
			data, err = os.ReadFile(args[0])
		}
		if err != nil {
			return fmt.Errorf("failed to read suggestion: %w", err)
		}

		suggestion, err := suggest.Parse(string(data))
		if err != nil {
			return err
		}
		catalog, err := repo.ListExercises(ctx)
		if err != nil {
			return fmt.Errorf("failed to load catalog: %w", err)
		}
		match := suggest.Match(suggestion.Exercises, catalog)
		if len(match.Matched) == 0 {
			return fmt.Errorf("none of the suggested exercises are in the catalog: %s", strings.Join(match.Unmatched, ", "))
		}

		w, err := sess.StartWithExercises(ctx, suggestion.Name, match.Plan())
		if err != nil {
			return fmt.Errorf("failed to start workout: %w", err)
		}

		success(out, "Started %s with %d exercises", w.DisplayName(), len(w.Exercises))
		fmt.Fprintf(out, "  %s\n", faint.Sprint(suggestion.Reasoning))
		if len(match.Unmatched) > 0 {
			warn(out, "  Skipped (not in catalog): %s", strings.Join(match.Unmatched, ", "))
		}
		printWorkout(out, w, weightUnit)
		return nil
	},
}

func watchRest(ctx context.Context, out io.Writer) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var last time.Duration = -1
	for remaining := range sess.WatchRest(ctx, watchTick) {
		last = remaining
		fmt.Fprintf(out, "\rRest %s ", formatCountdown(remaining))
	}
	fmt.Fprintln(out)
	if last == 0 {
		success(out, "Rest over")
	}
	return nil
}

func activeWorkout() (*models.Workout, error) {
	w := sess.Active()
	if w == nil {
		return nil, fmt.Errorf("%w (start one with: gymtrack workout start)", session.ErrNoActiveWorkout)
	}
	return w, nil
}

// resolveWorkoutExercise finds an exercise in w by 1-based position, ID
// prefix, or name. It returns the position with the exercise.
func resolveWorkoutExercise(w *models.Workout, ref string) (int, *models.WorkoutExercise, error) {
	ref = strings.ToLower(strings.TrimSpace(ref))
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(w.Exercises) {
			return 0, nil, fmt.Errorf("no exercise %d in this workout", n)
		}
		return n, &w.Exercises[n-1], nil
	}

	match := -1
	for i := range w.Exercises {
		if strings.HasPrefix(w.Exercises[i].ID.String(), ref) {
			if match >= 0 {
				return 0, nil, fmt.Errorf("ambiguous prefix %s", ref)
			}
			match = i
		}
	}
	if match < 0 {
		for i := range w.Exercises {
			if strings.ToLower(w.Exercises[i].Name()) == ref {
				match = i
				break
			}
		}
	}
	if match < 0 {
		return 0, nil, fmt.Errorf("exercise %q is not in this workout", ref)
	}
	return match + 1, &w.Exercises[match], nil
}

// resolveSet finds a set in w by "exercise.set" address or ID prefix.
func resolveSet(w *models.Workout, ref string) (int, *models.WorkoutExercise, *models.WorkoutSet, error) {
	ref = strings.ToLower(strings.TrimSpace(ref))
	if ref == "" {
		return 0, nil, nil, errors.New("set is required")
	}
	if exRef, setRef, ok := strings.Cut(ref, "."); ok {
		pos, we, err := resolveWorkoutExercise(w, exRef)
		if err != nil {
			return 0, nil, nil, err
		}
		n, err := strconv.Atoi(setRef)
		if err != nil {
			return 0, nil, nil, fmt.Errorf("invalid set address %q (use exercise.set, e.g. 1.2)", ref)
		}
		for i := range we.Sets {
			if we.Sets[i].SetNumber == n {
				return pos, we, &we.Sets[i], nil
			}
		}
		return 0, nil, nil, fmt.Errorf("no set %d.%d in this workout", pos, n)
	}

	var (
		pos int
		we  *models.WorkoutExercise
		set *models.WorkoutSet
	)
	for i := range w.Exercises {
		for j := range w.Exercises[i].Sets {
			if !strings.HasPrefix(w.Exercises[i].Sets[j].ID.String(), ref) {
				continue
			}
			if set != nil {
				return 0, nil, nil, fmt.Errorf("ambiguous prefix %s", ref)
			}
			pos, we, set = i+1, &w.Exercises[i], &w.Exercises[i].Sets[j]
		}
	}
	if set == nil {
		return 0, nil, nil, fmt.Errorf("set %q is not in this workout", ref)
	}
	return pos, we, set, nil
}

// workoutRecords counts personal records set during w.
func workoutRecords(ctx context.Context, w *models.Workout) (int, error) {
	sets := make(map[uuid.UUID]bool)
	for _, s := range w.AllSets() {
		sets[s.ID] = true
	}
	if len(sets) == 0 {
		return 0, nil
	}

	records, err := repo.RecentPersonalRecords(ctx, len(sets))
	if err != nil {
		return 0, fmt.Errorf("failed to load records: %w", err)
	}
	n := 0
	for _, r := range records {
		if r.WorkoutSetID != nil && sets[*r.WorkoutSetID] {
			n++
		}
	}
	return n, nil
}

func init() {
	workoutDoneCmd.Flags().BoolVarP(&setWarmup, "warmup", "w", false, "mark as a warmup set")
	workoutFinishCmd.Flags().StringVar(&finishNotes, "notes", "", "notes for the workout")
	workoutRestCmd.Flags().BoolVar(&restWatch, "watch", false, "count down until the rest period ends")
	workoutRestCmd.Flags().BoolVar(&restClear, "clear", false, "stop the rest timer")

	workoutCmd.AddCommand(
		workoutStartCmd, workoutAddCmd, workoutSetCmd, workoutDoneCmd,
		workoutRmCmd, workoutRmSetCmd, workoutFinishCmd, workoutDiscardCmd,
		workoutStatusCmd, workoutRestCmd, workoutSuggestCmd,
	)
	rootCmd.AddCommand(workoutCmd)
}
