package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
	"github.com/spf13/cobra"

	"github.com/ytget/tabplot/internal/plot"
	"github.com/ytget/tabplot/internal/table"
	"github.com/ytget/tabplot/internal/ui"
)

type plotFlags struct {
	columns string
	x       string
	y       []string
}

func newPlotCmd() *cobra.Command {
	flags := &plotFlags{}

	cmd := &cobra.Command{
		Use:   "plot <file>",
		Short: "Load a whitespace-separated file and open a plot window",
		Long: `Loads <file> with the given column names and draws the --y columns against
the --x column in a new window. Use --x index (the default) to plot against the
row number.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			title, series, err := loadSeries(args[0], flags)
			if err != nil {
				return err
			}

			a := newApp()
			a.Settings().SetTheme(ui.NewCompactTheme())

			panel := plot.NewPanel(a, title, series...)
			panel.SetOnClosed(a.Quit)
			a.Run()
			return nil
		},
	}

	cmd.Flags().StringVarP(&flags.columns, "columns", "c", "", "column names, comma or space separated")
	cmd.Flags().StringVar(&flags.x, "x", plot.IndexColumn, "column for the horizontal axis")
	cmd.Flags().StringSliceVar(&flags.y, "y", nil, "columns for the vertical axis (default: last column)")
	_ = cmd.MarkFlagRequired("columns")

	return cmd
}

// openPlot loads path and opens a plot panel for the requested columns.
func openPlot(a fyne.App, path string, flags *plotFlags) (*plot.Panel, error) {
	title, series, err := loadSeries(path, flags)
	if err != nil {
		return nil, err
	}
	return plot.NewPanel(a, title, series...), nil
}

// loadSeries reads path and builds the series and window title for flags.
func loadSeries(path string, flags *plotFlags) (string, []plot.Series, error) {
	t, err := table.Load(path, table.ParseColumnNames(flags.columns))
	if err != nil {
		return "", nil, err
	}

	yCols := flags.y
	if len(yCols) == 0 {
		numeric := t.NumericColumns()
		if len(numeric) == 0 {
			return "", nil, fmt.Errorf("%s has no numeric columns to plot", path)
		}
		yCols = numeric[len(numeric)-1:]
	}

	series, err := plot.SeriesFromTable(t, flags.x, yCols...)
	if err != nil {
		return "", nil, err
	}

	title := fmt.Sprintf("%s: %s vs %s", filepath.Base(path), strings.Join(yCols, ", "), flags.x)
	return title, series, nil
}
