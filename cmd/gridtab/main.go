// Command gridtab reads a JSON document on stdin and writes an HTML table
// on stdout.
//
//	curl -s https://api.example.com/users | gridtab --columns "name,email" --widths "60%,40%"
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/bjaus/gridtab"
)

// Exit codes follow Unix conventions: 0=success, 1=general, 2=usage.
const (
	exitSuccess = 0
	exitGeneral = 1
	exitUsage   = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	flags := pflag.NewFlagSet("gridtab", pflag.ContinueOnError)
	flags.SetOutput(stderr)

	optionsFile := flags.String("options", "", "YAML/JSON option document (flags override it)")
	columns := flags.String("columns", "", "comma-separated column selection (exact, alias, or prefix*)")
	order := flags.String("order", "", "comma-separated explicit prefix of the final column order")
	widths := flags.String("widths", "", "comma-separated CSS widths, one per final column")
	boolStyle := flags.String("boolean-style", "", "boolean rendering: symbols, badge, or text")
	dateFormat := flags.String("date-format", "", "date rendering: localized, short, or iso")
	numberFormat := flags.String("number-format", "", "number rendering: formatted, scientific, or raw")
	urlTarget := flags.String("url-target", "", "anchor target attribute (default _blank)")
	raw := flags.Bool("raw", false, "disable type-aware formatting; escape only")
	maxRows := flags.Int("max-rows", 0, "row ceiling (default 10000)")

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitSuccess
		}
		return exitUsage
	}

	opts := gridtab.Options{}
	if *optionsFile != "" {
		data, err := os.ReadFile(*optionsFile)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return exitUsage
		}
		opts, err = gridtab.ParseOptions(data)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return exitUsage
		}
	}
	if *columns != "" {
		opts.Columns = gridtab.CommaList(*columns)
	}
	if *order != "" {
		opts.ColumnOrder = gridtab.CommaList(*order)
	}
	if *widths != "" {
		opts.ColumnWidths = *widths
	}
	if *boolStyle != "" {
		opts.BooleanStyle = gridtab.BooleanStyle(*boolStyle)
	}
	if *dateFormat != "" {
		opts.DateFormat = gridtab.DateFormat(*dateFormat)
	}
	if *numberFormat != "" {
		opts.NumberFormat = gridtab.NumberFormat(*numberFormat)
	}
	if *urlTarget != "" {
		opts.URLTarget = *urlTarget
	}
	if *raw {
		opts.NoAutoFormat = true
	}
	if *maxRows > 0 {
		opts.MaxRows = *maxRows
	}

	var data any
	if err := json.NewDecoder(stdin).Decode(&data); err != nil {
		fmt.Fprintf(stderr, "reading stdin: %v\n", err)
		return exitGeneral
	}

	grid, widthMap, err := gridtab.Table(data, opts)
	if err != nil {
		fmt.Fprintln(stderr, err)
		if errors.Is(err, gridtab.ErrInvalidOption) {
			return exitUsage
		}
		return exitGeneral
	}

	if err := gridtab.WriteHTML(stdout, grid, widthMap); err != nil {
		fmt.Fprintln(stderr, err)
		return exitGeneral
	}
	return exitSuccess
}
