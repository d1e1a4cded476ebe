// Package gridtab transforms heterogeneous tabular input — JSON object
// arrays, 2D arrays, or single objects — into a column-customized,
// type-annotated grid of safely escaped HTML cell fragments.
//
// The pipeline has three stages, each usable on its own:
//
//   - [Converter] normalizes any JSON-like shape into a header+rows [Grid],
//     optionally tagging every cell with a semantic [TypeTag] via the
//     [Classifier].
//   - [ColumnSpec] selects, reorders, and assigns CSS widths to columns.
//   - [Renderer] converts cells into type-specific, injection-safe HTML
//     fragments (anchors for URLs and emails, badges or symbols for
//     booleans, grouped or scientific numbers, reformatted dates).
//
// [Table] runs all three in one call, and [WriteHTML] turns the result
// into a complete <table> element:
//
//	grid, widths, err := gridtab.Table(data, gridtab.Options{
//		Columns:      "name,email,act*",
//		ColumnWidths: "40%,40%,20%",
//	})
//	if err != nil {
//		return err
//	}
//	gridtab.WriteHTML(os.Stdout, grid, widths)
//
// # Type classification
//
// [Classify] maps one raw value to a tag by ordered pattern matching:
// null, native booleans and numbers, then URL, email, IP, boolean words,
// currency, date, percentage, generic number, and phone, falling back to
// string. Currency, date, and percentage are checked before the generic
// number pattern so "$100" and "50%" keep their specific tags; IP is
// checked before phone because dotted digit runs satisfy loose phone
// heuristics. Patterns are compiled once; a [Classifier] is immutable and
// safe to share.
//
// # Safety
//
// Every rendering path terminates in one shared escape routine covering
// & < > " '. The routine never re-encodes existing entities, so escaping
// is idempotent. Anchor generation accepts only http and https URLs;
// javascript:, data:, vbscript:, file:, and ftp: degrade to escaped text.
// A cell whose type-specific rendering fails degrades to escaped text
// instead of aborting the grid. Raw values are truncated to a display
// width budget before any pattern runs.
//
// # Errors
//
// Structural problems abort the whole operation: a malformed grid would
// corrupt every downstream column, so no partial result is returned.
// Sentinels for errors.Is matching:
//
//   - [ErrInput] — null, empty, or unsupported input shape
//   - [ErrTooManyRows] — row count over the configured ceiling
//   - [ErrColumnNotFound], [ErrInvalidOrder] — unknown column reference
//   - [ErrWidthCount], [ErrInvalidWidth] — width directive problems
//   - [ErrInvalidOption] — bad enum or limit in [Options]
//
// Rendering, in contrast, never aborts on a single bad cell.
//
// All components are pure functions over immutable configuration: no
// locks, no I/O, no shared mutable state. Concurrent use needs no
// coordination.
package gridtab
