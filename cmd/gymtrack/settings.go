// ABOUTME: CLI commands for viewing and changing preferences.
// ABOUTME: Weight unit and default rest period, stored in the preferences database.
package main

import (
	"fmt"

	"github.com/harperreed/gymtrack/internal/config"
	"github.com/harperreed/gymtrack/internal/models"
	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change preferences",
	Long: `Show or change preferences.

EXAMPLES:

  gymtrack settings              # Show all settings
  gymtrack settings unit lbs     # Display weights in pounds
  gymtrack settings rest 2m      # Default rest period after a working set`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		rest, err := prefStore.RestTimerDefault()
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "Unit:      %s\n", weightUnit)
		fmt.Fprintf(out, "Rest:      %s\n", formatCountdown(rest))
		fmt.Fprintf(out, "Data dir:  %s\n", appConfig.GetDataDir())
		fmt.Fprintf(out, "Config:    %s\n", faint.Sprint(config.GetConfigPath()))
		return nil
	},
}

var settingsUnitCmd = &cobra.Command{
	Use:       "unit <kg|lbs>",
	Short:     "Set the weight unit",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"kg", "lbs"},
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := models.ParseWeightUnit(args[0])
		if err != nil {
			return err
		}
		if err := prefStore.SetUnit(u); err != nil {
			return err
		}
		weightUnit = u

		success(cmd.OutOrStdout(), "Weights shown in %s", u)
		return nil
	},
}

var settingsRestCmd = &cobra.Command{
	Use:   "rest <duration>",
	Short: "Set the default rest period",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := parseRestDuration(args[0])
		if err != nil {
			return err
		}
		if err := prefStore.SetRestTimerDefault(d); err != nil {
			return err
		}
		if err := sess.SetRestDuration(d); err != nil {
			return err
		}

		success(cmd.OutOrStdout(), "Rest timer set to %s", formatCountdown(d))
		return nil
	},
}

func init() {
	settingsCmd.AddCommand(settingsUnitCmd, settingsRestCmd)
	rootCmd.AddCommand(settingsCmd)
}
