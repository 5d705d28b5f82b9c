package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Compile stale sources and link the target executable",
		Args:  cobra.NoArgs,
		RunE:  c.runBuild,
	}
}
