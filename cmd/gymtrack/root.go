// ABOUTME: Root Cobra command for the gymtrack CLI.
// ABOUTME: Opens storage, preferences, and the workout session around every command.
package main

import (
	"fmt"

	"github.com/harperreed/gymtrack/internal/config"
	"github.com/harperreed/gymtrack/internal/logger"
	"github.com/harperreed/gymtrack/internal/models"
	"github.com/harperreed/gymtrack/internal/prefs"
	"github.com/harperreed/gymtrack/internal/session"
	"github.com/harperreed/gymtrack/internal/storage"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
)

var (
	dataDirFlag string
	debugFlag   bool

	appConfig  *config.Config
	repo       storage.Repository
	prefStore  *prefs.Store
	sess       *session.Session
	weightUnit = models.UnitKg
)

var rootCmd = &cobra.Command{
	Use:   "gymtrack",
	Short: "Personal strength training tracker",
	Long: `gymtrack logs strength workouts set by set from the terminal.

QUICK START:

  $ gymtrack workout start "Push Day"         # Begin a workout
  $ gymtrack workout add "Barbell Bench Press" # Add an exercise (one empty set)
  $ gymtrack workout done 1.1 5 100           # Exercise 1, set 1: 5 reps at 100
  $ gymtrack workout set 1                    # Add another set to exercise 1
  $ gymtrack workout status                   # See the workout and rest timer
  $ gymtrack workout finish                   # Save it

The active workout survives between commands: every invocation picks up the
workout still in progress.

CATALOG:

  $ gymtrack exercise list --muscle chest     # Browse the exercise library
  $ gymtrack exercise search row              # Search by name
  $ gymtrack exercise add "Landmine Press" --muscle shoulders

HISTORY:

  $ gymtrack history                          # Recent workouts
  $ gymtrack history week                     # This week's training
  $ gymtrack history records                  # Personal records
  $ gymtrack export markdown --range 4weeks

MCP INTEGRATION:

  Run 'gymtrack mcp' to start the Model Context Protocol server for use with
  Claude Desktop or other MCP-compatible AI assistants.

DATA STORAGE:

  Workouts are stored in SQLite at ~/.local/share/gymtrack/gymtrack.db.
  Override with --data-dir or data_dir in ~/.config/gymtrack/config.json.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip setup for commands that don't touch the data directory
		if cmd.Name() == "help" || cmd.Name() == "skill" {
			return nil
		}
		return setup(cmd)
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return shutdown()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDirFlag, "data-dir", "", "data directory (default: ~/.local/share/gymtrack)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "enable debug logging to stderr")
}

// Execute runs the root command and releases anything a failed command left open.
func Execute() error {
	err := rootCmd.Execute()
	if cerr := shutdown(); cerr != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), "Error:", cerr)
		err = multierr.Append(err, cerr)
	}
	return err
}

func setup(cmd *cobra.Command) error {
	ctx := cmd.Context()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if dataDirFlag != "" {
		cfg.DataDir = dataDirFlag
	}
	appConfig = cfg

	if err := logger.Init(logger.Config{Debug: debugFlag || cfg.Debug, Dir: config.LogDir()}); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}

	repo, err = cfg.OpenStorage()
	if err != nil {
		return err
	}
	if n, err := repo.SeedExercisesIfEmpty(ctx); err != nil {
		return fmt.Errorf("failed to seed exercises: %w", err)
	} else if n > 0 {
		logger.Info("seeded exercise library", "count", n)
	}

	prefStore, err = cfg.OpenPrefs()
	if err != nil {
		return err
	}
	if weightUnit, err = prefStore.Unit(); err != nil {
		return err
	}
	rest, err := prefStore.RestTimerDefault()
	if err != nil {
		return err
	}

	sess = session.New(repo, session.WithRestDuration(rest))
	if _, err := sess.Resume(ctx); err != nil {
		return fmt.Errorf("failed to resume workout: %w", err)
	}

	deadline, ok, err := prefStore.RestDeadline()
	if err != nil {
		return err
	}
	if ok {
		sess.RestoreRestTimer(deadline)
	}
	return nil
}

// shutdown persists the rest timer and closes everything setup opened.
// It is safe to call more than once.
func shutdown() error {
	var err error
	if prefStore != nil && sess != nil {
		if deadline, ok := sess.RestDeadline(); ok {
			err = multierr.Append(err, prefStore.SetRestDeadline(deadline))
		} else {
			err = multierr.Append(err, prefStore.ClearRestDeadline())
		}
	}
	if repo != nil {
		err = multierr.Append(err, repo.Close())
	}
	if prefStore != nil {
		err = multierr.Append(err, prefStore.Close())
	}
	err = multierr.Append(err, logger.Close())

	repo, prefStore, sess = nil, nil, nil
	weightUnit = models.UnitKg
	return err
}
