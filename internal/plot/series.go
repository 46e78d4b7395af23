package plot

import (
	"errors"
	"fmt"

	"github.com/ytget/tabplot/internal/table"
)

// IndexColumn is the pseudo column that plots rows against their position
const IndexColumn = "index"

// ErrNoSeries is returned when no Y column was selected
var ErrNoSeries = errors.New("at least one y column is required")

// Series is one named line of (X, Y) points
type Series struct {
	Name string
	X    []float64
	Y    []float64
}

// Len returns the number of usable points
func (s Series) Len() int {
	if len(s.X) < len(s.Y) {
		return len(s.X)
	}
	return len(s.Y)
}

// SeriesFromTable builds one series per yCol, all sharing xCol as X. xCol may
// be IndexColumn unless the table has a real column of that name.
func SeriesFromTable(t *table.Table, xCol string, yCols ...string) ([]Series, error) {
	if len(yCols) == 0 {
		return nil, ErrNoSeries
	}

	var xs []float64
	if xCol == IndexColumn && t.ColumnIndex(IndexColumn) < 0 {
		xs = make([]float64, t.NumRows())
		for i := range xs {
			xs[i] = float64(i)
		}
	} else {
		var err error
		if xs, err = t.Column(xCol); err != nil {
			return nil, fmt.Errorf("x column: %w", err)
		}
	}

	out := make([]Series, 0, len(yCols))
	for _, name := range yCols {
		ys, err := t.Column(name)
		if err != nil {
			return nil, fmt.Errorf("y column: %w", err)
		}
		out = append(out, Series{Name: name, X: xs, Y: ys})
	}
	return out, nil
}
