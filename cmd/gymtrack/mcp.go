// ABOUTME: CLI command for starting the MCP server.
// ABOUTME: Runs a stdio MCP server sharing the CLI's storage and workout session.
package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/gymtrack/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

The server communicates via stdin/stdout and drives the same active workout as
the CLI, so an assistant can log sets while you train.

CLAUDE DESKTOP CONFIGURATION:

  {
    "mcpServers": {
      "gymtrack": {
        "command": "gymtrack",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  list_exercises           Browse the exercise catalog
  create_exercise          Add a custom exercise
  start_workout            Start an empty workout
  start_suggested_workout  Start a pre-filled workout from a suggestion
  active_workout           Show the workout in progress
  add_exercise             Add an exercise to the workout
  add_set                  Add an empty set
  complete_set             Record reps and weight, detect personal records
  delete_set               Delete a set
  remove_exercise          Remove an exercise from the workout
  complete_workout         Finish the workout
  discard_workout          Throw the workout away
  list_workouts            Recent completed workouts
  get_workout              One workout in detail
  exercise_history         Past sessions of one exercise
  personal_records         Personal records
  list_programs            Built-in coach programs and the one being followed
  start_program_day        Start the next day of a program
  skip_program_day         Move a program on without training

AVAILABLE RESOURCES:

  gymtrack://week      This week's workouts, volume, and muscle groups
  gymtrack://records   Recent personal records
  gymtrack://active    The workout in progress`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(repo, sess, mcp.WithUnit(weightUnit), mcp.WithPrograms(prefStore))
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
