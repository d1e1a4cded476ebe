package gridtab

import (
	"fmt"
	"log/slog"
	"math"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// BooleanStyle selects how boolean cells render.
type BooleanStyle string

const (
	BoolSymbols BooleanStyle = "symbols" // ✓ / ✗
	BoolBadge   BooleanStyle = "badge"   // <span class="badge ...">
	BoolText    BooleanStyle = "text"    // Yes / No
)

// DateFormat selects how date cells render.
type DateFormat string

const (
	DateLocalized DateFormat = "localized" // January 15, 2024
	DateShort     DateFormat = "short"     // 01/15/2024
	DateISO       DateFormat = "iso"       // pass-through
)

// NumberFormat selects how numeric cells render.
type NumberFormat string

const (
	NumberFormatted  NumberFormat = "formatted"  // grouped, 2-decimal when fractional
	NumberScientific NumberFormat = "scientific" // exponential for extreme magnitudes
	NumberRaw        NumberFormat = "raw"        // pass-through
)

// FormatMode is a per-call override of auto-formatting.
type FormatMode string

const (
	ModeRaw      FormatMode = "raw"      // escape only, no type formatting
	ModeMinimal  FormatMode = "minimal"  // force auto-formatting on
	ModeEnhanced FormatMode = "enhanced" // force auto-formatting on
)

// RenderOptions configures a [Renderer]. The zero value is not useful;
// start from [DefaultRenderOptions].
type RenderOptions struct {
	BooleanStyle   BooleanStyle
	DateFormat     DateFormat
	NumberFormat   NumberFormat
	URLTarget      string
	AutoFormat     bool
	MaxInputLength int
}

// DefaultRenderOptions returns the documented defaults.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		BooleanStyle:   BoolSymbols,
		DateFormat:     DateLocalized,
		NumberFormat:   NumberFormatted,
		URLTarget:      "_blank",
		AutoFormat:     true,
		MaxInputLength: DefaultMaxInputLength,
	}
}

// Validate checks every enum field.
func (o RenderOptions) Validate() error {
	switch o.BooleanStyle {
	case "", BoolSymbols, BoolBadge, BoolText:
	default:
		return fmt.Errorf("%w: boolean style %q", ErrInvalidOption, o.BooleanStyle)
	}
	switch o.DateFormat {
	case "", DateLocalized, DateShort, DateISO:
	default:
		return fmt.Errorf("%w: date format %q", ErrInvalidOption, o.DateFormat)
	}
	switch o.NumberFormat {
	case "", NumberFormatted, NumberScientific, NumberRaw:
	default:
		return fmt.Errorf("%w: number format %q", ErrInvalidOption, o.NumberFormat)
	}
	if o.MaxInputLength < 0 {
		return fmt.Errorf("%w: max input length %d", ErrInvalidOption, o.MaxInputLength)
	}
	return nil
}

// Renderer converts a (possibly type-tagged) grid into a grid of safely
// escaped, type-specific HTML fragments. It never fails: a cell whose
// type-specific rendering panics degrades to escaped text, and the full
// grid is always returned.
type Renderer struct {
	Options    RenderOptions
	Classifier *Classifier // nil means the shared default
	Logger     *slog.Logger
}

// schemes rejected before anchor construction. Everything outside
// http/https falls back to escaped text anyway; these are the ones worth
// naming because they carry script or filesystem reach.
var blockedSchemes = map[string]bool{
	"javascript": true,
	"data":       true,
	"vbscript":   true,
	"file":       true,
	"ftp":        true,
}

var truthyWords = map[string]bool{
	"true": true, "yes": true, "on": true, "1": true,
	"enabled": true, "active": true,
}

// english groups digits the way the surrounding system's tables expect.
var english = message.NewPrinter(language.English)

// Render renders every data cell of g; the header row passes through
// verbatim. A new grid is returned and g is left untouched.
func (r Renderer) Render(g Grid) Grid { return r.RenderMode(g, "") }

// RenderMode renders with a per-call format override: [ModeRaw] disables
// auto-formatting for this call only, [ModeMinimal] and [ModeEnhanced]
// force it on. Any other value uses the configured options.
func (r Renderer) RenderMode(g Grid, mode FormatMode) Grid {
	opts := r.options()
	switch mode {
	case ModeRaw:
		opts.AutoFormat = false
	case ModeMinimal, ModeEnhanced:
		opts.AutoFormat = true
	}

	out := make(Grid, len(g))
	for i, row := range g {
		rendered := make(Row, len(row))
		for j, cell := range row {
			if i == 0 {
				rendered[j] = cell
				continue
			}
			rendered[j] = Cell{Value: r.renderCell(cell, opts), Type: cell.Type}
		}
		out[i] = rendered
	}
	return out
}

// renderCell formats one data cell. Every path terminates through
// escapeHTML, including the recover fallback.
func (r Renderer) renderCell(cell Cell, opts RenderOptions) (out string) {
	raw := truncateValue(cell.Value, opts.MaxInputLength)

	defer func() {
		if rec := recover(); rec != nil {
			logOrDefault(r.Logger).Warn("cell rendering degraded to escaped text", "reason", fmt.Sprint(rec))
			out = escapeHTML(raw)
		}
	}()

	if !opts.AutoFormat {
		return escapeHTML(raw)
	}

	tag := cell.Type
	if tag == "" || tag == TypeUnknown {
		tag = r.classifier().Classify(raw)
	}

	switch tag {
	case TypeURL:
		return r.renderURL(raw, opts)
	case TypeEmail:
		return fmt.Sprintf(`<a href="mailto:%s">%s</a>`, escapeHTML(raw), escapeHTML(raw))
	case TypeBoolean:
		return renderBool(raw, opts.BooleanStyle)
	case TypeDate:
		return renderDate(raw, opts.DateFormat)
	case TypeNumber, TypeInteger, TypeFloat:
		return renderNumber(raw, opts.NumberFormat)
	case TypeCurrency:
		return fmt.Sprintf(`<span class="currency">%s</span>`, escapeHTML(raw))
	case TypePhone:
		return fmt.Sprintf(`<span class="phone">%s</span>`, escapeHTML(raw))
	case TypeIP:
		return fmt.Sprintf(`<code>%s</code>`, escapeHTML(raw))
	default:
		return escapeHTML(raw)
	}
}

// renderURL wraps raw in an anchor when the scheme is plain http/https.
// Anything else, including the blocklist, degrades to escaped text.
func (r Renderer) renderURL(raw string, opts RenderOptions) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return escapeHTML(raw)
	}
	scheme := strings.ToLower(u.Scheme)
	if blockedSchemes[scheme] || (scheme != "http" && scheme != "https") {
		return escapeHTML(raw)
	}
	target := opts.URLTarget
	if target == "" {
		target = "_blank"
	}
	return fmt.Sprintf(`<a href="%s" target="%s" rel="noopener noreferrer">%s</a>`,
		escapeHTML(raw), escapeHTML(target), escapeHTML(raw))
}

func renderBool(raw string, style BooleanStyle) string {
	truthy := truthyWords[strings.ToLower(strings.TrimSpace(raw))]
	switch style {
	case BoolBadge:
		if truthy {
			return `<span class="badge badge-success">Yes</span>`
		}
		return `<span class="badge badge-secondary">No</span>`
	case BoolText:
		if truthy {
			return "Yes"
		}
		return "No"
	default:
		if truthy {
			return "✓"
		}
		return "✗"
	}
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"01-02-2006",
	"1-2-2006",
}

// renderDate reparses the value against the classification layouts and
// reformats it. An unparseable value falls back to escaped original.
func renderDate(raw string, format DateFormat) string {
	s := strings.TrimSpace(raw)
	if format == DateISO {
		return escapeHTML(raw)
	}
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		if format == DateShort {
			return escapeHTML(t.Format("01/02/2006"))
		}
		return escapeHTML(t.Format("January 2, 2006"))
	}
	return escapeHTML(raw)
}

// renderNumber strips grouping separators, reparses, and formats.
// Magnitudes beyond 1e15 are forced to scientific notation in every mode
// except raw.
func renderNumber(raw string, format NumberFormat) string {
	if format == NumberRaw {
		return escapeHTML(raw)
	}
	x, err := numericValue(raw)
	if err != nil {
		return escapeHTML(raw)
	}
	abs := math.Abs(x)
	scientific := abs > 1e15
	if format == NumberScientific && (abs >= 1e6 || (abs > 0 && abs < 1e-3)) {
		scientific = true
	}
	if scientific {
		return escapeHTML(fmt.Sprintf("%.2e", x))
	}
	if x == math.Trunc(x) {
		return escapeHTML(english.Sprintf("%d", int64(x)))
	}
	return escapeHTML(english.Sprintf("%.2f", x))
}

// entity matches an already-encoded HTML entity at the start of the
// input, so escaping is idempotent: "&amp;" stays "&amp;".
var entity = regexp.MustCompile(`^&(?:[a-zA-Z][a-zA-Z0-9]{1,31}|#[0-9]{1,7}|#[xX][0-9a-fA-F]{1,6});`)

// escapeHTML is the shared last line of defense. It encodes & < > " ' as
// entities without re-encoding entities already present.
func escapeHTML(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '&':
			if m := entity.FindString(s[i:]); m != "" {
				b.WriteString(m)
				i += len(m) - 1
			} else {
				b.WriteString("&amp;")
			}
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '"':
			b.WriteString("&#34;")
		case '\'':
			b.WriteString("&#39;")
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// truncateValue bounds a raw value's display width before classification
// and rendering, appending "..." when it is cut.
func truncateValue(s string, max int) string {
	if max <= 0 {
		max = DefaultMaxInputLength
	}
	if runewidth.StringWidth(s) <= max {
		return s
	}
	return runewidth.Truncate(s, max, "...")
}

func (r Renderer) options() RenderOptions {
	opts := r.Options
	if opts == (RenderOptions{}) {
		return DefaultRenderOptions()
	}
	return opts
}

func (r Renderer) classifier() *Classifier {
	if r.Classifier != nil {
		return r.Classifier
	}
	return std
}
