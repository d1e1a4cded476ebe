package gridtab

import (
	"errors"
	"log/slog"
)

// Sentinel errors for programmatic error handling.
var (
	ErrInput          = errors.New("invalid input")
	ErrTooManyRows    = errors.New("row limit exceeded")
	ErrColumnNotFound = errors.New("column not found")
	ErrInvalidOrder   = errors.New("invalid column order")
	ErrWidthCount     = errors.New("width count mismatch")
	ErrInvalidWidth   = errors.New("invalid width")
	ErrInvalidOption  = errors.New("invalid option")
)

// TypeTag is the semantic classification attached to a cell.
type TypeTag string

const (
	TypeString     TypeTag = "string"
	TypeInteger    TypeTag = "integer"
	TypeFloat      TypeTag = "float"
	TypeNumber     TypeTag = "number"
	TypeBoolean    TypeTag = "boolean"
	TypeNull       TypeTag = "null"
	TypeDate       TypeTag = "date"
	TypeURL        TypeTag = "url"
	TypeEmail      TypeTag = "email"
	TypePhone      TypeTag = "phone"
	TypeCurrency   TypeTag = "currency"
	TypePercentage TypeTag = "percentage"
	TypeIP         TypeTag = "ip"
	TypeObject     TypeTag = "object"
	TypeUnknown    TypeTag = "unknown"
)

// Cell is one table cell: its string value and semantic type.
type Cell struct {
	Value string
	Type  TypeTag
}

// Row is an ordered sequence of cells. After conversion every row has
// exactly as many cells as the header row.
type Row []Cell

// Grid is a header-plus-data matrix of cells. Row 0 is the header by
// convention; header cells always carry [TypeString].
type Grid []Row

// WidthMap maps visible column names to CSS width tokens ("60%", "120px",
// "2em", "1rem", or "auto").
type WidthMap map[string]string

// Header returns the values of row 0, or nil for an empty grid.
func (g Grid) Header() []string {
	if len(g) == 0 {
		return nil
	}
	out := make([]string, len(g[0]))
	for i, c := range g[0] {
		out[i] = c.Value
	}
	return out
}

// Clone returns a deep copy of the grid. Transforms in this package never
// mutate their input; Clone is for callers that want the same guarantee.
func (g Grid) Clone() Grid {
	if g == nil {
		return nil
	}
	out := make(Grid, len(g))
	for i, row := range g {
		out[i] = make(Row, len(row))
		copy(out[i], row)
	}
	return out
}

// Table runs the full pipeline: convert → customize → render. The returned
// grid contains escaped, type-formatted cell fragments ready for a table
// builder such as [WriteHTML].
func Table(data any, opts Options) (Grid, WidthMap, error) {
	if err := opts.Validate(); err != nil {
		return nil, nil, err
	}
	conv := Converter{MaxRows: opts.MaxRows, MaxValueLength: opts.MaxInputLength, Logger: opts.Logger}
	grid, err := conv.ConvertTyped(data)
	if err != nil {
		return nil, nil, err
	}
	spec := ColumnSpec{
		Columns: string(opts.Columns),
		Order:   string(opts.ColumnOrder),
		Widths:  opts.ColumnWidths,
		Logger:  opts.Logger,
	}
	grid, widths, err := spec.Apply(grid)
	if err != nil {
		return nil, nil, err
	}
	r := Renderer{Options: opts.renderOptions(), Logger: opts.Logger}
	return r.Render(grid), widths, nil
}

func logOrDefault(l *slog.Logger) *slog.Logger {
	if l != nil {
		return l
	}
	return slog.Default()
}
