package table

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// Scanner limits
const (
	initialLineBuffer = 64 * 1024
	maxLineLength     = 16 * 1024 * 1024
)

// GzipSuffix marks files that Load decompresses on the fly
const GzipSuffix = ".gz"

// Table is a labelled, row-oriented numeric table. Columns[0] names the text
// column stored in Labels; Columns[1:] name the numeric columns stored in Values.
type Table struct {
	Columns []string
	Labels  []string
	Values  [][]float64
}

// Load reads the file at path. Files ending in .gz are decompressed first.
func Load(path string, columns []string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(strings.ToLower(path), GzipSuffix) {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("failed to open gzip stream %s: %w", path, err)
		}
		defer gz.Close()
		r = gz
	}

	t, err := Parse(r, columns)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Parse reads whitespace-separated rows from r. Blank lines are skipped.
func Parse(r io.Reader, columns []string) (*Table, error) {
	if err := validateColumns(columns); err != nil {
		return nil, err
	}

	t := &Table{Columns: append([]string(nil), columns...)}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, initialLineBuffer), maxLineLength)

	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != len(columns) {
			return nil, &ParseError{
				Line: line,
				Err:  fmt.Errorf("%w: got %d, want %d", ErrColumnCount, len(fields), len(columns)),
			}
		}

		values := make([]float64, len(fields)-1)
		for i, tok := range fields[1:] {
			v, err := strconv.ParseFloat(tok, 64)
			if err != nil {
				return nil, &ParseError{Line: line, Column: columns[i+1], Token: tok, Err: err}
			}
			values[i] = v
		}

		t.Labels = append(t.Labels, fields[0])
		t.Values = append(t.Values, values)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read failed after line %d: %w", line, err)
	}
	return t, nil
}

// ParseColumnNames splits a user-entered list such as "name, x y" into names.
func ParseColumnNames(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';' || r == ' ' || r == '\t' || r == '\n'
	})
}

func validateColumns(columns []string) error {
	if len(columns) == 0 {
		return ErrNoColumns
	}
	seen := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		if _, dup := seen[c]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateColumn, c)
		}
		seen[c] = struct{}{}
	}
	return nil
}

// NumRows returns the number of data rows
func (t *Table) NumRows() int {
	return len(t.Labels)
}

// NumCols returns the number of columns including the text column
func (t *Table) NumCols() int {
	return len(t.Columns)
}

// NumericColumns returns the names of all numeric columns
func (t *Table) NumericColumns() []string {
	if len(t.Columns) < 2 {
		return nil
	}
	return append([]string(nil), t.Columns[1:]...)
}

// ColumnIndex returns the position of name in Columns, or -1
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Column returns a copy of the numeric column called name
func (t *Table) Column(name string) ([]float64, error) {
	idx := t.ColumnIndex(name)
	switch {
	case idx < 0:
		return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
	case idx == 0:
		return nil, fmt.Errorf("%w: %q", ErrTextColumn, name)
	}

	out := make([]float64, len(t.Values))
	for i, row := range t.Values {
		out[i] = row[idx-1]
	}
	return out, nil
}

// Row returns row i rendered as strings, label first
func (t *Table) Row(i int) []string {
	out := make([]string, 0, len(t.Columns))
	out = append(out, t.Labels[i])
	for _, v := range t.Values[i] {
		out = append(out, strconv.FormatFloat(v, 'g', -1, 64))
	}
	return out
}
