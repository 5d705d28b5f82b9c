package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/mortar/internal/app"
)

func (c *CLI) newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Build, then rebuild whenever sources change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir, _ := cmd.Flags().GetString("dir")
			jobs, _ := cmd.Flags().GetInt("jobs")
			outputMode, _ := cmd.Flags().GetString("output-mode")
			ci, _ := cmd.Flags().GetBool("ci")

			if ci {
				outputMode = "linear"
			}

			return c.app.Watch(cmd.Context(), dir, app.WatchOptions{
				Jobs:       jobs,
				OutputMode: outputMode,
			})
		},
	}

	cmd.Flags().StringP("output-mode", "o", "auto", "Output mode: auto, tui, or linear")
	cmd.Flags().Bool("ci", false, "Use linear output mode (shorthand for --output-mode=linear)")

	return cmd
}
