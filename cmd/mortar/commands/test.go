package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newTestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "test",
		Short: "Run the built target executable in the foreground",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir, _ := cmd.Flags().GetString("dir")
			return c.app.Test(cmd.Context(), dir)
		},
	}
}
