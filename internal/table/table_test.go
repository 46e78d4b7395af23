package table

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wellFormed = `alpha 1 2.5
beta  -3 4e2
gamma	0.125   7
`

func TestParseWellFormed(t *testing.T) {
	t.Parallel()

	tbl, err := Parse(strings.NewReader(wellFormed), []string{"name", "x", "y"})
	require.NoError(t, err)

	assert.Equal(t, 3, tbl.NumRows())
	assert.Equal(t, 3, tbl.NumCols())
	assert.Equal(t, []string{"name", "x", "y"}, tbl.Columns)
	assert.Equal(t, []string{"alpha", "beta", "gamma"}, tbl.Labels)
	assert.Equal(t, [][]float64{{1, 2.5}, {-3, 400}, {0.125, 7}}, tbl.Values)
	assert.Equal(t, []string{"x", "y"}, tbl.NumericColumns())
}

func TestParseSkipsBlankLines(t *testing.T) {
	t.Parallel()

	tbl, err := Parse(strings.NewReader("\na 1\n   \nb 2\n\n"), []string{"k", "v"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, tbl.Labels)
}

func TestParseOnlyTextColumn(t *testing.T) {
	t.Parallel()

	tbl, err := Parse(strings.NewReader("a\nb\n"), []string{"k"})
	require.NoError(t, err)
	assert.Equal(t, 2, tbl.NumRows())
	assert.Empty(t, tbl.NumericColumns())
	assert.Empty(t, tbl.Summarize())
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		input      string
		columns    []string
		wantErr    error
		wantLine   int
		wantColumn string
		wantToken  string
	}{
		{
			name:       "malformed_number",
			input:      "a 1 2\nb 3 x4\n",
			columns:    []string{"k", "x", "y"},
			wantErr:    strconv.ErrSyntax,
			wantLine:   2,
			wantColumn: "y",
			wantToken:  "x4",
		},
		{
			name:     "too_few_fields",
			input:    "a 1 2\nb 3\n",
			columns:  []string{"k", "x", "y"},
			wantErr:  ErrColumnCount,
			wantLine: 2,
		},
		{
			name:     "too_many_fields",
			input:    "a 1 2 3\n",
			columns:  []string{"k", "x", "y"},
			wantErr:  ErrColumnCount,
			wantLine: 1,
		},
		{
			name:       "line_numbers_count_blank_lines",
			input:      "a 1\n\n\nb one\n",
			columns:    []string{"k", "v"},
			wantErr:    strconv.ErrSyntax,
			wantLine:   4,
			wantColumn: "v",
			wantToken:  "one",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			tbl, err := Parse(strings.NewReader(tc.input), tc.columns)
			require.Error(t, err)
			assert.Nil(t, tbl)
			assert.ErrorIs(t, err, tc.wantErr)

			var perr *ParseError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, tc.wantLine, perr.Line)
			assert.Equal(t, tc.wantColumn, perr.Column)
			assert.Equal(t, tc.wantToken, perr.Token)
		})
	}
}

func TestParseColumnValidation(t *testing.T) {
	t.Parallel()

	_, err := Parse(strings.NewReader("a 1\n"), nil)
	require.ErrorIs(t, err, ErrNoColumns)

	_, err = Parse(strings.NewReader("a 1 2\n"), []string{"k", "x", "x"})
	require.ErrorIs(t, err, ErrDuplicateColumn)
}

func TestColumn(t *testing.T) {
	t.Parallel()

	tbl, err := Parse(strings.NewReader(wellFormed), []string{"name", "x", "y"})
	require.NoError(t, err)

	y, err := tbl.Column("y")
	require.NoError(t, err)
	assert.Equal(t, []float64{2.5, 400, 7}, y)

	y[0] = 99
	assert.Equal(t, 2.5, tbl.Values[0][1], "Column must return a copy")

	_, err = tbl.Column("name")
	require.ErrorIs(t, err, ErrTextColumn)

	_, err = tbl.Column("z")
	require.ErrorIs(t, err, ErrUnknownColumn)
}

func TestRow(t *testing.T) {
	t.Parallel()

	tbl, err := Parse(strings.NewReader(wellFormed), []string{"name", "x", "y"})
	require.NoError(t, err)
	assert.Equal(t, []string{"beta", "-3", "400"}, tbl.Row(1))
}

func TestLoadPlainAndGzip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	plain := filepath.Join(dir, "data.txt")
	require.NoError(t, os.WriteFile(plain, []byte(wellFormed), 0o644))

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(wellFormed))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	zipped := filepath.Join(dir, "data.txt.gz")
	require.NoError(t, os.WriteFile(zipped, buf.Bytes(), 0o644))

	cols := []string{"name", "x", "y"}
	a, err := Load(plain, cols)
	require.NoError(t, err)
	b, err := Load(zipped, cols)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestLoadReportsPath(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bad.txt")
	require.NoError(t, os.WriteFile(path, []byte("a nan? 1\n"), 0o644))

	_, err := Load(path, []string{"k", "x", "y"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)

	var perr *ParseError
	assert.ErrorAs(t, err, &perr)
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "missing.txt"), []string{"k"})
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseColumnNames(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"name", "x", "y"}, ParseColumnNames(" name, x;y "))
	assert.Equal(t, []string{"a", "b"}, ParseColumnNames("a\tb"))
	assert.Empty(t, ParseColumnNames(" , "))
}
