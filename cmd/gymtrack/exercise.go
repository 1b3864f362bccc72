// ABOUTME: CLI commands for browsing and extending the exercise catalog.
// ABOUTME: Supports list, search, show, and add subcommands.
package main

import (
	"fmt"
	"strings"

	"github.com/harperreed/gymtrack/internal/models"
	"github.com/harperreed/gymtrack/internal/stats"
	"github.com/harperreed/gymtrack/internal/storage"
	"github.com/spf13/cobra"
)

var (
	exerciseMuscle       string
	exerciseEquipment    string
	exerciseMovement     string
	exerciseSecondary    string
	exerciseInstructions string
)

var exerciseCmd = &cobra.Command{
	Use:     "exercise",
	Aliases: []string{"ex"},
	Short:   "Browse the exercise catalog",
	Long: `Browse the built-in exercise library and add your own exercises.

FILTERS:

  --muscle      chest, back, shoulders, biceps, triceps, legs, core, forearms
  --equipment   barbell, dumbbell, cable, machine, bodyweight
  --movement    push, pull, hinge, squat, carry, lunge, rotation

EXAMPLES:

  gymtrack exercise list --muscle legs --equipment barbell
  gymtrack exercise search "bench"
  gymtrack exercise show "Back Squat"
  gymtrack exercise add "Landmine Press" --muscle shoulders --movement push`,
}

var exerciseListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List exercises",
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := exerciseFilter()
		if err != nil {
			return err
		}
		return printExercises(cmd, f)
	},
}

var exerciseSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search exercises by name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := exerciseFilter()
		if err != nil {
			return err
		}
		f.Search = args[0]
		return printExercises(cmd, f)
	},
}

var exerciseShowCmd = &cobra.Command{
	Use:   "show <name|id>",
	Short: "Show an exercise with its records and last performance",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		e, err := findExercise(cmd, args[0])
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "%s %s\n", bold.Sprint(e.Name), shortID(e.ID))
		fmt.Fprintf(out, "Muscle: %s\n", e.PrimaryMuscle)
		if secondary := e.SecondaryMuscleList(); len(secondary) > 0 {
			fmt.Fprintf(out, "Also works: %s\n", strings.Join(secondary, ", "))
		}
		if e.Equipment != nil {
			fmt.Fprintf(out, "Equipment: %s\n", *e.Equipment)
		}
		if e.MovementPattern != nil {
			fmt.Fprintf(out, "Movement: %s\n", *e.MovementPattern)
		}
		if e.IsCustom {
			fmt.Fprintln(out, faint.Sprint("Custom exercise"))
		}
		if e.Instructions != nil {
			fmt.Fprintf(out, "\n%s\n", *e.Instructions)
		}

		best, err := repo.BestPersonalRecord(ctx, e.ID)
		if err != nil {
			return fmt.Errorf("failed to load records: %w", err)
		}
		if best != nil {
			fmt.Fprintf(out, "\nBest: %s x %d %s\n", stats.FormatWeight(best.Weight, weightUnit), best.Reps,
				faint.Sprint(best.AchievedAt.Local().Format("2006-01-02")))
		}
		last, err := repo.LastPerformance(ctx, e.ID)
		if err != nil {
			return fmt.Errorf("failed to load last performance: %w", err)
		}
		if last != nil {
			fmt.Fprintf(out, "Last: %s\n", stats.FormatSet(*last, weightUnit))
		}
		return nil
	},
}

var exerciseAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a custom exercise",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.TrimSpace(args[0])
		if name == "" {
			return fmt.Errorf("exercise name is required")
		}
		if exerciseMuscle == "" {
			return fmt.Errorf("--muscle is required")
		}
		f, err := exerciseFilter()
		if err != nil {
			return err
		}

		e := models.NewCustomExercise(name, *f.Muscle)
		if f.Equipment != nil {
			e.WithEquipment(*f.Equipment)
		}
		if f.MovementPattern != nil {
			e.WithMovementPattern(*f.MovementPattern)
		}
		if exerciseSecondary != "" {
			e.WithSecondaryMuscles(exerciseSecondary)
		}
		if exerciseInstructions != "" {
			e.WithInstructions(exerciseInstructions)
		}

		created, err := repo.CreateCustomExercise(cmd.Context(), e)
		if err != nil {
			return fmt.Errorf("failed to add exercise: %w", err)
		}

		success(cmd.OutOrStdout(), "Added %s", created.Name)
		fmt.Fprintf(cmd.OutOrStdout(), "  ID: %s\n", shortID(created.ID))
		return nil
	},
}

func exerciseFilter() (models.ExerciseFilter, error) {
	var f models.ExerciseFilter
	if exerciseMuscle != "" {
		m, err := models.ParseMuscleGroup(exerciseMuscle)
		if err != nil {
			return f, err
		}
		f.Muscle = &m
	}
	if exerciseEquipment != "" {
		eq, err := models.ParseEquipment(exerciseEquipment)
		if err != nil {
			return f, err
		}
		f.Equipment = &eq
	}
	if exerciseMovement != "" {
		p, err := models.ParseMovementPattern(exerciseMovement)
		if err != nil {
			return f, err
		}
		f.MovementPattern = &p
	}
	return f, nil
}

func printExercises(cmd *cobra.Command, f models.ExerciseFilter) error {
	exercises, err := repo.FilterExercises(cmd.Context(), f)
	if err != nil {
		return fmt.Errorf("failed to list exercises: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(exercises) == 0 {
		fmt.Fprintln(out, "No exercises found.")
		return nil
	}

	for _, e := range exercises {
		detail := string(e.PrimaryMuscle)
		if e.Equipment != nil {
			detail += "/" + string(*e.Equipment)
		}
		if e.IsCustom {
			detail += " *"
		}
		fmt.Fprintf(out, "%s %s %s\n", shortID(e.ID), padRight(truncate(e.Name, 36), 36), faint.Sprint(detail))
	}
	return nil
}

// findExercise resolves a catalog exercise by name or ID prefix.
func findExercise(cmd *cobra.Command, ref string) (*models.Exercise, error) {
	e, err := storage.LookupExercise(cmd.Context(), repo, ref)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, fmt.Errorf("exercise not found: %s", ref)
	}
	return e, nil
}

func init() {
	for _, c := range []*cobra.Command{exerciseListCmd, exerciseSearchCmd, exerciseAddCmd} {
		c.Flags().StringVarP(&exerciseMuscle, "muscle", "m", "", "primary muscle group")
		c.Flags().StringVarP(&exerciseEquipment, "equipment", "e", "", "equipment")
		c.Flags().StringVar(&exerciseMovement, "movement", "", "movement pattern")
	}
	exerciseAddCmd.Flags().StringVar(&exerciseSecondary, "secondary", "", "comma-separated secondary muscles")
	exerciseAddCmd.Flags().StringVar(&exerciseInstructions, "instructions", "", "how to perform the exercise")

	exerciseCmd.AddCommand(exerciseListCmd, exerciseSearchCmd, exerciseShowCmd, exerciseAddCmd)
	rootCmd.AddCommand(exerciseCmd)
}
