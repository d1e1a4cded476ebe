package gridtab

import (
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
)

// ColumnSpec filters, reorders, and assigns widths to the columns of a
// normalized grid. All three directives are optional comma-separated
// strings; the zero value selects every column in original order.
type ColumnSpec struct {
	// Columns selects columns. Each token is an exact header name, a
	// case-insensitive alias, or a prefix wildcard ("name*"). Unmatched
	// exact tokens fail with [ErrColumnNotFound]; unmatched wildcards
	// contribute nothing.
	Columns string
	// Order is an explicit prefix of the final column order. Selected
	// columns it does not mention follow in their original relative order.
	// A name outside the selected set fails with [ErrInvalidOrder].
	Order string
	// Widths assigns one CSS width token ("60%", "120px", "2em", "1rem",
	// "auto") per final column. A count mismatch fails with
	// [ErrWidthCount]; a malformed token with [ErrInvalidWidth].
	Widths string
	// Logger receives soft warnings. Nil means slog.Default().
	Logger *slog.Logger
}

var widthToken = regexp.MustCompile(`^(\d+)(%|px|em|rem)$`)

// Apply projects the grid onto the selected columns and returns the new
// grid together with the width map. The input grid is never mutated; rows
// shorter than the header are right-padded before projection.
func (s ColumnSpec) Apply(g Grid) (Grid, WidthMap, error) {
	if len(g) == 0 {
		return nil, nil, fmt.Errorf("%w: grid has no header row", ErrInput)
	}
	header := g.Header()

	selected, err := s.selectColumns(header)
	if err != nil {
		return nil, nil, err
	}
	selected, err = s.orderColumns(header, selected)
	if err != nil {
		return nil, nil, err
	}
	widths, err := s.parseWidths(header, selected)
	if err != nil {
		return nil, nil, err
	}

	out := make(Grid, len(g))
	for i, row := range g {
		projected := make(Row, len(selected))
		for j, idx := range selected {
			if idx < len(row) {
				projected[j] = row[idx]
			} else {
				projected[j] = Cell{Type: TypeString}
			}
		}
		out[i] = projected
	}
	return out, widths, nil
}

// Customize applies a one-off column spec to a grid.
func Customize(g Grid, columns, order, widths string) (Grid, WidthMap, error) {
	return ColumnSpec{Columns: columns, Order: order, Widths: widths}.Apply(g)
}

// selectColumns resolves the selection directive to header indexes,
// de-duplicated in first-seen order.
func (s ColumnSpec) selectColumns(header []string) ([]int, error) {
	if strings.TrimSpace(s.Columns) == "" {
		all := make([]int, len(header))
		for i := range header {
			all[i] = i
		}
		return all, nil
	}

	exact := make(map[string]int, len(header))
	alias := make(map[string]int, len(header))
	for i, name := range header {
		if _, ok := exact[name]; !ok {
			exact[name] = i
		}
		low := strings.ToLower(name)
		if _, ok := alias[low]; !ok {
			alias[low] = i
		}
	}

	var selected []int
	seen := make(map[int]bool)
	add := func(idx int) {
		if !seen[idx] {
			seen[idx] = true
			selected = append(selected, idx)
		}
	}

	for _, token := range splitTokens(s.Columns) {
		if prefix, ok := strings.CutSuffix(token, "*"); ok {
			prefix = strings.ToLower(prefix)
			for i, name := range header {
				if strings.HasPrefix(strings.ToLower(name), prefix) {
					add(i)
				}
			}
			continue // an unmatched wildcard contributes zero columns
		}
		if idx, ok := exact[token]; ok {
			add(idx)
			continue
		}
		if idx, ok := alias[strings.ToLower(token)]; ok {
			add(idx)
			continue
		}
		return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, token)
	}
	return selected, nil
}

// orderColumns moves the columns named in the order directive to the
// front; the rest keep their original relative order.
func (s ColumnSpec) orderColumns(header []string, selected []int) ([]int, error) {
	if strings.TrimSpace(s.Order) == "" {
		return selected, nil
	}

	byName := make(map[string]int, len(selected))
	for _, idx := range selected {
		name := strings.ToLower(header[idx])
		if _, ok := byName[name]; !ok {
			byName[name] = idx
		}
	}

	var ordered []int
	placed := make(map[int]bool)
	for _, token := range splitTokens(s.Order) {
		idx, ok := byName[strings.ToLower(token)]
		if !ok {
			return nil, fmt.Errorf("%w: %q is not a selected column", ErrInvalidOrder, token)
		}
		if !placed[idx] {
			placed[idx] = true
			ordered = append(ordered, idx)
		}
	}
	for _, idx := range selected {
		if !placed[idx] {
			ordered = append(ordered, idx)
		}
	}
	return ordered, nil
}

// parseWidths validates the width directive against the final column set.
// A percentage total above 100 is a soft warning, never a failure.
func (s ColumnSpec) parseWidths(header []string, selected []int) (WidthMap, error) {
	if strings.TrimSpace(s.Widths) == "" {
		return WidthMap{}, nil
	}
	tokens := splitTokens(s.Widths)
	if len(tokens) != len(selected) {
		return nil, fmt.Errorf("%w: %d widths for %d columns", ErrWidthCount, len(tokens), len(selected))
	}

	widths := make(WidthMap, len(tokens))
	total := 0
	for i, token := range tokens {
		if token != "auto" {
			m := widthToken.FindStringSubmatch(token)
			if m == nil {
				return nil, fmt.Errorf("%w: %q (want N%%, Npx, Nem, Nrem, or auto)", ErrInvalidWidth, token)
			}
			if m[2] == "%" {
				n, _ := strconv.Atoi(m[1])
				total += n
			}
		}
		widths[header[selected[i]]] = token
	}
	if total > 100 {
		logOrDefault(s.Logger).Warn("column width percentages exceed 100", "total", total)
	}
	return widths, nil
}

func splitTokens(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
