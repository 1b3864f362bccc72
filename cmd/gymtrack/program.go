// ABOUTME: CLI commands for following a built-in training program.
// ABOUTME: Lists programs and starts each day in rotation as a pre-filled workout.
package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/harperreed/gymtrack/internal/prefs"
	"github.com/harperreed/gymtrack/internal/program"
	"github.com/harperreed/gymtrack/internal/session"
	"github.com/spf13/cobra"
)

var workoutProgramCmd = &cobra.Command{
	Use:     "program",
	Aliases: []string{"prog"},
	Short:   "Follow a built-in training program",
	Long: `Follow a built-in program written by a coach. Each program is a fixed
rotation of days. Starting a day creates a workout pre-filled with its
exercises and planned sets, then moves the program on to the next day.

EXAMPLES:

  gymtrack workout program list
  gymtrack workout program start ppl-hypertrophy   # follow it and start day 1
  gymtrack workout program start                   # start the next day
  gymtrack workout program next                    # skip a day`,
}

var workoutProgramListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List programs",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		trainers, err := program.Trainers()
		if err != nil {
			return err
		}
		ap, following, err := prefStore.ActiveProgram()
		if err != nil {
			return err
		}

		for i, t := range trainers {
			if i > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprintf(out, "%s %s\n", bold.Sprint(t.Name), faint.Sprint(t.Specialty))
			for _, p := range t.Programs {
				line := fmt.Sprintf("  %s %s %s", padRight(p.ID, 16), padRight(p.Name, 22),
					faint.Sprintf("%d days/week", p.DaysPerWeek))
				if following && p.ID == ap.ProgramID {
					line += "  " + green.Sprintf("next: %s", p.DayLabel(ap.DayIndex))
				}
				fmt.Fprintln(out, line)
			}
		}
		return nil
	},
}

var workoutProgramShowCmd = &cobra.Command{
	Use:   "show <program>",
	Short: "Show a program's days and planned sets",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := program.Find(args[0])
		if err != nil {
			return err
		}
		printProgram(cmd.OutOrStdout(), p)
		return nil
	},
}

var workoutProgramStartCmd = &cobra.Command{
	Use:   "start [program]",
	Short: "Start the next day of a program",
	Long: `Start the next day of the program you follow. Naming a program follows it
from its first day. The day only advances once the workout has started.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if sess.State() == session.InProgress {
			return fmt.Errorf("%w (finish or discard it first)", session.ErrWorkoutInProgress)
		}
		if len(args) == 1 {
			p, err := program.Follow(prefStore, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Following %s by %s\n", bold.Sprint(p.Name), p.TrainerName)
		}

		started, err := program.StartNext(cmd.Context(), prefStore, repo, sess)
		if errors.Is(err, prefs.ErrNoActiveProgram) {
			return fmt.Errorf("%w: run 'gymtrack workout program start <program>'", err)
		}
		if err != nil {
			return fmt.Errorf("failed to start program day: %w", err)
		}

		p := started.Program
		success(out, "Started %s", p.DayLabel(started.DayIndex))
		if len(started.Unmatched) > 0 {
			warn(out, "  Skipped (not in catalog): %s", strings.Join(started.Unmatched, ", "))
		}
		printWorkout(out, started.Workout, weightUnit)
		fmt.Fprintf(out, "Next time: %s\n", p.DayLabel(started.NextDay))
		return nil
	},
}

var workoutProgramNextCmd = &cobra.Command{
	Use:   "next",
	Short: "Skip to the program's next day",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, day, err := program.Skip(prefStore)
		if err != nil {
			return err
		}
		success(cmd.OutOrStdout(), "Next up: %s", p.DayLabel(day))
		return nil
	},
}

var workoutProgramClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Stop following a program",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, _, err := program.Current(prefStore)
		if err != nil {
			return err
		}
		if err := prefStore.ClearActiveProgram(); err != nil {
			return err
		}
		success(cmd.OutOrStdout(), "Stopped following %s", p.Name)
		return nil
	},
}

func printProgram(w io.Writer, p *program.Program) {
	fmt.Fprintf(w, "%s by %s\n", bold.Sprint(p.Name), p.TrainerName)
	fmt.Fprintf(w, "%s\n", faint.Sprint(p.Description))
	for i, d := range p.Days {
		fmt.Fprintf(w, "\nDay %d: %s %s\n", i+1, d.Name, faint.Sprintf("(%s)", d.SplitType))
		for _, ex := range d.Exercises {
			sets := make([]string, 0, len(ex.Sets))
			for _, s := range ex.Sets {
				label := fmt.Sprintf("%d@%g", s.Reps, s.Weight)
				if s.IsWarmup {
					label += "w"
				}
				sets = append(sets, label)
			}
			fmt.Fprintf(w, "  %s %s\n", padRight(ex.ExerciseName, 26), faint.Sprint(strings.Join(sets, " ")))
		}
	}
}

func init() {
	workoutProgramCmd.AddCommand(
		workoutProgramListCmd, workoutProgramShowCmd, workoutProgramStartCmd,
		workoutProgramNextCmd, workoutProgramClearCmd,
	)
	workoutCmd.AddCommand(workoutProgramCmd)
}
