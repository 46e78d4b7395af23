package table

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ColumnSummary holds descriptive statistics for one numeric column
type ColumnSummary struct {
	Name   string
	Count  int
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
}

// Summarize computes a ColumnSummary for every numeric column. Columns of an
// empty table report Count 0 and zero statistics.
func (t *Table) Summarize() []ColumnSummary {
	names := t.NumericColumns()
	out := make([]ColumnSummary, 0, len(names))
	for j, name := range names {
		col := make([]float64, len(t.Values))
		for i, row := range t.Values {
			col[i] = row[j]
		}
		s := ColumnSummary{Name: name, Count: len(col)}
		if len(col) > 0 {
			s.Mean = stat.Mean(col, nil)
			s.Min = floats.Min(col)
			s.Max = floats.Max(col)
		}
		if len(col) > 1 {
			s.StdDev = stat.StdDev(col, nil)
		}
		out = append(out, s)
	}
	return out
}
