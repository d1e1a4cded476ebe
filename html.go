package gridtab

import (
	"fmt"
	"io"
)

// WriteHTML emits a complete <table> for a rendered grid. Data cells are
// embedded verbatim: they are trusted fragments produced by
// [Renderer.Render], whose escape routine already ran. Header text is
// escaped here. When widths has entries a <colgroup> sets column widths.
func WriteHTML(w io.Writer, g Grid, widths WidthMap) error {
	if len(g) == 0 {
		return fmt.Errorf("%w: grid has no rows", ErrInput)
	}

	if _, err := fmt.Fprintln(w, `<table class="data-table sortable">`); err != nil {
		return err
	}

	header := g.Header()
	if len(widths) > 0 {
		if _, err := fmt.Fprintln(w, "  <colgroup>"); err != nil {
			return err
		}
		for _, name := range header {
			width, ok := widths[name]
			if !ok || width == "auto" {
				if _, err := fmt.Fprintln(w, "    <col>"); err != nil {
					return err
				}
				continue
			}
			if _, err := fmt.Fprintf(w, "    <col style=\"width: %s\">\n", escapeHTML(width)); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, "  </colgroup>"); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(w, "  <thead>"); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, "    <tr>"); err != nil {
		return err
	}
	for _, name := range header {
		if _, err := fmt.Fprintf(w, "      <th>%s</th>\n", escapeHTML(name)); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, "    </tr>"); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, "  </thead>"); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(w, "  <tbody>"); err != nil {
		return err
	}
	for _, row := range g[1:] {
		if _, err := fmt.Fprintln(w, "    <tr>"); err != nil {
			return err
		}
		for _, cell := range row {
			if _, err := fmt.Fprintf(w, "      <td%s>%s</td>\n", cellClass(cell.Type), cell.Value); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, "    </tr>"); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, "  </tbody>"); err != nil {
		return err
	}

	_, err := fmt.Fprintln(w, "</table>")
	return err
}

// cellClass gives stylesheets a stable per-type hook.
func cellClass(tag TypeTag) string {
	if tag == "" || tag == TypeString {
		return ""
	}
	return fmt.Sprintf(` class="cell-%s"`, tag)
}
