package gridtab_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/bjaus/gridtab"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// decode mirrors how data reaches the converter in practice: through
// encoding/json, where numbers arrive as float64.
func decode(t *testing.T, src string) any {
	t.Helper()
	var data any
	require.NoError(t, json.Unmarshal([]byte(src), &data))
	return data
}

func values(g gridtab.Grid) [][]string {
	out := make([][]string, len(g))
	for i, row := range g {
		out[i] = make([]string, len(row))
		for j, c := range row {
			out[i][j] = c.Value
		}
	}
	return out
}

func TestConvertObjectArray(t *testing.T) {
	t.Parallel()
	var conv gridtab.Converter
	grid, err := conv.Convert(decode(t, `[{"name":"Alice","age":25}]`), true)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"age", "name"}, {"25", "Alice"}}, values(grid))
}

func TestConvertSingleObject(t *testing.T) {
	t.Parallel()
	var conv gridtab.Converter
	grid, err := conv.Convert(decode(t, `{"b":2,"a":1,"c":3}`), true)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a", "b", "c"}, {"1", "2", "3"}}, values(grid))
}

func TestConvertUnionOfKeys(t *testing.T) {
	t.Parallel()
	var conv gridtab.Converter
	grid, err := conv.Convert(decode(t, `[{"a":1},{"b":2},{"a":3,"c":4}]`), true)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"a", "b", "c"},
		{"1", "", ""},
		{"", "2", ""},
		{"3", "", "4"},
	}, values(grid))
}

func TestConvertMixedArrayNonObjectRow(t *testing.T) {
	t.Parallel()
	var conv gridtab.Converter
	grid, err := conv.Convert(decode(t, `[{"a":1},"stray"]`), true)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a"}, {"1"}, {""}}, values(grid))
}

func TestConvert2DArrayPadding(t *testing.T) {
	t.Parallel()
	var conv gridtab.Converter
	// The widest row, not row 0, sets the column count.
	grid, err := conv.Convert(decode(t, `[["h1"],["a","b","c"],["d","e"]]`), true)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"h1", "", ""},
		{"a", "b", "c"},
		{"d", "e", ""},
	}, values(grid))
	for _, row := range grid {
		assert.Len(t, row, 3)
	}
}

func TestConvertScalarArray(t *testing.T) {
	t.Parallel()
	var conv gridtab.Converter
	grid, err := conv.Convert(decode(t, `["h","x","y"]`), true)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"h"}, {"x"}, {"y"}}, values(grid))
}

func TestConvertContainerValues(t *testing.T) {
	t.Parallel()
	var conv gridtab.Converter
	grid, err := conv.ConvertTyped(decode(t, `[{"tags":["a","b"],"meta":{"k":1}}]`))
	require.NoError(t, err)
	assert.Equal(t, `{"k":1}`, grid[1][0].Value)
	assert.Equal(t, gridtab.TypeObject, grid[1][0].Type)
	assert.Equal(t, `["a","b"]`, grid[1][1].Value)
	assert.Equal(t, gridtab.TypeObject, grid[1][1].Type)
}

func TestConvertTyped(t *testing.T) {
	t.Parallel()
	var conv gridtab.Converter
	grid, err := conv.ConvertTyped(decode(t, `[{"site":"https://example.com","count":3,"when":"2024-01-15","ok":true}]`))
	require.NoError(t, err)
	byName := map[string]gridtab.Cell{}
	for i, name := range grid.Header() {
		byName[name] = grid[1][i]
	}
	assert.Equal(t, gridtab.TypeInteger, byName["count"].Type)
	assert.Equal(t, gridtab.TypeBoolean, byName["ok"].Type)
	assert.Equal(t, gridtab.TypeURL, byName["site"].Type)
	assert.Equal(t, gridtab.TypeDate, byName["when"].Type)
}

func TestConvertTypedHeaderAlwaysString(t *testing.T) {
	t.Parallel()
	var conv gridtab.Converter
	// Header cells keep the string tag even when they look like dates.
	grid, err := conv.ConvertTyped(decode(t, `[["2024-01-15","$100"],["2024-02-20","$200"]]`))
	require.NoError(t, err)
	for _, c := range grid[0] {
		assert.Equal(t, gridtab.TypeString, c.Type)
	}
	assert.Equal(t, gridtab.TypeDate, grid[1][0].Type)
	assert.Equal(t, gridtab.TypeCurrency, grid[1][1].Type)
}

func TestConvertStripHeader(t *testing.T) {
	t.Parallel()
	var conv gridtab.Converter
	grid, err := conv.Convert(decode(t, `[{"a":1},{"a":2}]`), false)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"1"}, {"2"}}, values(grid))
}

func TestConvertStripHeader2DWarns(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	conv := gridtab.Converter{Logger: slog.New(slog.NewTextHandler(&buf, nil))}
	grid, err := conv.Convert(decode(t, `[["a","b"],["1","2"]]`), false)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"1", "2"}}, values(grid))
	assert.Contains(t, buf.String(), "cannot verify")
}

func TestConvertErrors(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		input any
		want  error
	}{
		"nil":            {input: nil, want: gridtab.ErrInput},
		"empty array":    {input: []any{}, want: gridtab.ErrInput},
		"empty object":   {input: map[string]any{}, want: gridtab.ErrInput},
		"scalar string":  {input: "hello", want: gridtab.ErrInput},
		"scalar number":  {input: 42, want: gridtab.ErrInput},
		"scalar boolean": {input: true, want: gridtab.ErrInput},
	}
	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			var conv gridtab.Converter
			_, err := conv.Convert(tt.input, true)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestConvertRowLimit(t *testing.T) {
	t.Parallel()
	conv := gridtab.Converter{MaxRows: 2}
	_, err := conv.Convert(decode(t, `[{"a":1},{"a":2},{"a":3}]`), true)
	assert.ErrorIs(t, err, gridtab.ErrTooManyRows)

	// At the limit exactly, conversion succeeds.
	grid, err := conv.Convert(decode(t, `[{"a":1},{"a":2}]`), true)
	require.NoError(t, err)
	assert.Len(t, grid, 3)
}

func TestConvertTruncatesLongValues(t *testing.T) {
	t.Parallel()
	long := make([]byte, 2000)
	for i := range long {
		long[i] = 'x'
	}
	var conv gridtab.Converter
	grid, err := conv.ConvertTyped([]any{map[string]any{"v": string(long)}})
	require.NoError(t, err)
	got := grid[1][0].Value
	assert.LessOrEqual(t, len(got), 1000)
	assert.Contains(t, got, "...")
}

func TestConvertDoesNotMutateInput(t *testing.T) {
	t.Parallel()
	input := []any{map[string]any{"a": "x"}}
	var conv gridtab.Converter
	_, err := conv.Convert(input, true)
	require.NoError(t, err)
	assert.Equal(t, []any{map[string]any{"a": "x"}}, input)
}

func TestGridHelpers(t *testing.T) {
	t.Parallel()
	var conv gridtab.Converter
	grid, err := conv.Convert(decode(t, `[{"a":1,"b":2}]`), true)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, grid.Header())

	clone := grid.Clone()
	clone[1][0].Value = "changed"
	assert.Equal(t, "1", grid[1][0].Value)

	assert.Nil(t, gridtab.Grid(nil).Header())
	assert.Nil(t, gridtab.Grid(nil).Clone())
}
