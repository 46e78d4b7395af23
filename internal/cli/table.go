package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"github.com/ytget/tabplot/internal/plot"
	"github.com/ytget/tabplot/internal/table"
)

type tableFlags struct {
	columns string
	rows    int
}

func newTableCmd() *cobra.Command {
	flags := &tableFlags{}

	cmd := &cobra.Command{
		Use:   "table <file>",
		Short: "Load a whitespace-separated file and print column statistics",
		Long: `Loads <file> with the given column names and prints count, mean, standard
deviation, minimum and maximum for every numeric column. The first column is
always read as text. Files ending in .gz are decompressed on the fly.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := table.Load(args[0], table.ParseColumnNames(flags.columns))
			if err != nil {
				fmt.Fprintln(cmd.OutOrStdout(), color.RedString("✗")+" "+err.Error())
				return reported(err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s Loaded %d rows from %s\n", color.GreenString("✓"), t.NumRows(), args[0])
			if flags.rows > 0 {
				renderRows(out, t, flags.rows)
			}
			renderSummary(out, t.Summarize())
			return nil
		},
	}

	cmd.Flags().StringVarP(&flags.columns, "columns", "c", "", "column names, comma or space separated")
	cmd.Flags().IntVarP(&flags.rows, "rows", "n", 0, "also print the first n rows")
	_ = cmd.MarkFlagRequired("columns")

	return cmd
}

func renderRows(w io.Writer, t *table.Table, n int) {
	tbl := newTable(w)
	tbl.Header(toAny(t.Columns)...)
	for i := 0; i < n && i < t.NumRows(); i++ {
		_ = tbl.Append(toAny(t.Row(i))...)
	}
	_ = tbl.Render()
}

func renderSummary(w io.Writer, summaries []table.ColumnSummary) {
	tbl := newTable(w)
	tbl.Header("column", "count", "mean", "stddev", "min", "max")
	for _, s := range summaries {
		_ = tbl.Append(
			s.Name,
			strconv.Itoa(s.Count),
			plot.FormatTick(s.Mean),
			plot.FormatTick(s.StdDev),
			plot.FormatTick(s.Min),
			plot.FormatTick(s.Max),
		)
	}
	_ = tbl.Render()
}

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w,
		tablewriter.WithHeaderAlignment(tw.AlignLeft),
		tablewriter.WithRowAlignment(tw.AlignLeft),
	)
}

func toAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
