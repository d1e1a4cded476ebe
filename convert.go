package gridtab

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
)

// Default resource ceilings. Callers bound work through these; nothing in
// the package does I/O or blocks.
const (
	DefaultMaxRows        = 10000
	DefaultMaxInputLength = 1000
)

// Converter normalizes a JSON-like value (object, array of objects, 2D
// array, or array of scalars) into a uniform header+rows [Grid]. The zero
// value is ready to use with default limits.
type Converter struct {
	// MaxRows caps the number of data rows. Exceeding it fails with
	// [ErrTooManyRows]; input is never silently truncated. 0 means
	// [DefaultMaxRows].
	MaxRows int
	// MaxValueLength caps each cell value's display width before type
	// classification. 0 means [DefaultMaxInputLength].
	MaxValueLength int
	// Classifier used by [Converter.ConvertTyped]. Nil means the shared
	// default.
	Classifier *Classifier
	// Logger receives soft warnings. Nil means slog.Default().
	Logger *slog.Logger
}

// Convert normalizes data into a grid with untagged data cells; a later
// [Renderer.Render] classifies them per cell when auto-formatting is on.
// With includeHeader=false the header row is stripped: for object sources
// the synthesized header is certain, but for raw 2D arrays row 0 may be
// data, so the strip is logged as a warning.
func (c Converter) Convert(data any, includeHeader bool) (Grid, error) {
	grid, err := c.convert(data, false)
	if err != nil {
		return nil, err
	}
	if !includeHeader {
		grid = c.stripHeader(grid, data)
	}
	return grid, nil
}

// ConvertTyped normalizes data and tags every non-header cell via the
// classifier. Header cells are always [TypeString] regardless of content.
func (c Converter) ConvertTyped(data any) (Grid, error) {
	return c.convert(data, true)
}

func (c Converter) convert(data any, typed bool) (Grid, error) {
	switch v := data.(type) {
	case nil:
		return nil, fmt.Errorf("%w: input is null", ErrInput)
	case map[string]any:
		if len(v) == 0 {
			return nil, fmt.Errorf("%w: object has no keys", ErrInput)
		}
		return c.fromObjects([]map[string]any{v}, typed)
	case []any:
		if len(v) == 0 {
			return nil, fmt.Errorf("%w: array is empty", ErrInput)
		}
		if objects, ok := asObjectArray(v); ok {
			return c.fromObjects(objects, typed)
		}
		return c.fromRows(v, typed)
	default:
		return nil, fmt.Errorf("%w: unsupported top-level type %T", ErrInput, data)
	}
}

// asObjectArray reports whether the array should take the object-array
// path: any member being an object makes the whole array one. Non-object
// members become all-empty rows.
func asObjectArray(items []any) ([]map[string]any, bool) {
	found := false
	objects := make([]map[string]any, len(items))
	for i, item := range items {
		if m, ok := item.(map[string]any); ok {
			objects[i] = m
			found = true
		}
	}
	return objects, found
}

func (c Converter) fromObjects(objects []map[string]any, typed bool) (Grid, error) {
	if err := c.checkRows(len(objects)); err != nil {
		return nil, err
	}
	keys := map[string]struct{}{}
	for _, obj := range objects {
		for k := range obj {
			keys[k] = struct{}{}
		}
	}
	header := make([]string, 0, len(keys))
	for k := range keys {
		header = append(header, k)
	}
	sort.Strings(header)

	grid := make(Grid, 0, len(objects)+1)
	grid = append(grid, c.headerRow(header))
	for _, obj := range objects {
		row := make(Row, len(header))
		for i, k := range header {
			if obj == nil {
				row[i] = c.cell("", typed)
				continue
			}
			v, ok := obj[k]
			if !ok {
				row[i] = c.cell("", typed)
				continue
			}
			row[i] = c.valueCell(v, typed)
		}
		grid = append(grid, row)
	}
	return grid, nil
}

// fromRows handles 2D arrays and arrays of scalars. Row 0 is used as-is as
// the header; every row is padded to the widest observed row, which is not
// necessarily row 0's own length.
func (c Converter) fromRows(items []any, typed bool) (Grid, error) {
	if err := c.checkRows(len(items) - 1); err != nil {
		return nil, err
	}
	rows := make([][]any, len(items))
	width := 0
	for i, item := range items {
		if cells, ok := item.([]any); ok {
			rows[i] = cells
		} else {
			rows[i] = []any{item}
		}
		if len(rows[i]) > width {
			width = len(rows[i])
		}
	}

	grid := make(Grid, len(rows))
	for i, cells := range rows {
		row := make(Row, width)
		for j := range row {
			switch {
			case j >= len(cells):
				row[j] = c.cell("", typed && i > 0)
			case i == 0:
				row[j] = Cell{Value: c.truncate(formatValue(cells[j])), Type: TypeString}
			default:
				row[j] = c.valueCell(cells[j], typed)
			}
		}
		grid[i] = row
	}
	return grid, nil
}

func (c Converter) headerRow(names []string) Row {
	row := make(Row, len(names))
	for i, name := range names {
		row[i] = Cell{Value: c.truncate(name), Type: TypeString}
	}
	return row
}

// valueCell stringifies one raw value, truncates it, and optionally tags
// it. Truncation happens before classification so pattern cost is bounded.
func (c Converter) valueCell(v any, typed bool) Cell {
	s := c.truncate(formatValue(v))
	cell := Cell{Value: s}
	if typed {
		switch v.(type) {
		case string:
			cell.Type = c.classifier().Classify(s)
		default:
			cell.Type = c.classifier().Classify(v)
		}
	}
	return cell
}

func (c Converter) cell(s string, typed bool) Cell {
	var tag TypeTag
	if typed {
		tag = c.classifier().Classify(s)
	}
	return Cell{Value: s, Type: tag}
}

func (c Converter) stripHeader(grid Grid, data any) Grid {
	if len(grid) == 0 {
		return grid
	}
	if _, raw := rawRows(data); raw {
		c.logger().Warn("stripping first row of 2D array input; cannot verify it is a header")
	}
	return grid[1:]
}

// rawRows reports whether data took the 2D-array path (no object members),
// where header-ness of row 0 is unverifiable.
func rawRows(data any) ([]any, bool) {
	items, ok := data.([]any)
	if !ok {
		return nil, false
	}
	if _, obj := asObjectArray(items); obj {
		return nil, false
	}
	return items, true
}

func (c Converter) checkRows(n int) error {
	limit := c.MaxRows
	if limit <= 0 {
		limit = DefaultMaxRows
	}
	if n > limit {
		return fmt.Errorf("%w: %d rows, limit %d", ErrTooManyRows, n, limit)
	}
	return nil
}

func (c Converter) classifier() *Classifier {
	if c.Classifier != nil {
		return c.Classifier
	}
	return std
}

func (c Converter) logger() *slog.Logger { return logOrDefault(c.Logger) }

func (c Converter) truncate(s string) string {
	return truncateValue(s, c.MaxValueLength)
}

// formatValue renders a raw JSON value as a cell string. Containers are
// serialized as compact JSON; whole float64 values print without a
// trailing ".0" so JSON integers round-trip cleanly.
func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case map[string]any, []any:
		data, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(data)
	default:
		return fmt.Sprintf("%v", val)
	}
}
