// Package commands implements the CLI commands for the mortar build tool.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/mortar/internal/app"
	"go.trai.ch/mortar/internal/build"
)

// CLI represents the command line interface for mortar.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Build(ctx context.Context, dir string, opts app.BuildOptions) error
	Test(ctx context.Context, dir string) error
	Clean(ctx context.Context, dir string) error
	Watch(ctx context.Context, dir string, opts app.WatchOptions) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "mortar",
		Short:         "An incremental build tool for single-directory C++ projects",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	// Add persistent flags
	rootCmd.PersistentFlags().StringP("dir", "C", ".", "Project directory to operate in")
	rootCmd.PersistentFlags().IntP("jobs", "j", 0, "Parallel compile processes (0 = one per CPU)")
	rootCmd.PersistentFlags().Bool("log-json", false, "Log in JSON format")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	// A bare `mortar` builds, like make with no target.
	rootCmd.RunE = c.runBuild

	rootCmd.AddCommand(c.newBuildCmd())
	rootCmd.AddCommand(c.newTestCmd())
	rootCmd.AddCommand(c.newCleanCmd())
	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// runBuild backs both the bare root invocation and the build subcommand.
func (c *CLI) runBuild(cmd *cobra.Command, _ []string) error {
	dir, _ := cmd.Flags().GetString("dir")
	jobs, _ := cmd.Flags().GetInt("jobs")

	return c.app.Build(cmd.Context(), dir, app.BuildOptions{Jobs: jobs})
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

// SetLogHook sets up a PersistentPreRun function that retrieves the log-json
// flag and calls the provided callback with its value.
func (c *CLI) SetLogHook(fn func(jsonMode bool)) {
	c.rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		jsonMode, err := cmd.Flags().GetBool("log-json")
		if err != nil {
			return err
		}
		fn(jsonMode)
		return nil
	}
}
