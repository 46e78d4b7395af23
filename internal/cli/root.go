package cli

import (
	"github.com/spf13/cobra"

	"github.com/ytget/tabplot/internal/logging"
)

type rootFlags struct {
	verbose bool
	debug   bool
}

// NewRootCmd builds the tabplot command tree.
func NewRootCmd(version string) *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "tabplot",
		Short: "Fetch, load and plot whitespace-separated tables",
		Long: `tabplot downloads data files into a local cache, loads them as tables with
named columns and draws the numeric columns in a plot window.

Run without a subcommand to open the desktop window.

Examples:
  # Fetch a file into ./data unless it is already there
  tabplot fetch ./data https://example.com/measurements.txt

  # Print per-column statistics
  tabplot table ./data/measurements.txt --columns name,x,y

  # Plot y against x
  tabplot plot ./data/measurements.txt --columns name,x,y --x x --y y`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			logging.Setup(logging.Options{Verbose: flags.verbose, Debug: flags.debug})
			logging.For("cli").WithField("command", cmd.Name()).Debug("starting")
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			return RunGUI(version)
		},
	}

	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable verbose output")
	cmd.PersistentFlags().BoolVarP(&flags.debug, "debug", "d", false, "enable debug output")

	cmd.AddCommand(
		newFetchCmd(flags),
		newTableCmd(),
		newPlotCmd(),
	)

	return cmd
}

// Execute runs the root command with os.Args.
func Execute(version string) error {
	return NewRootCmd(version).Execute()
}
