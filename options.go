package gridtab

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"

	"gopkg.in/yaml.v3"
)

// CommaList is a comma-separated directive that also decodes from a YAML
// sequence, so option documents can write either
//
//	columns: name, age
//
// or
//
//	columns: [name, age]
type CommaList string

// UnmarshalYAML accepts a scalar string or a sequence of strings.
func (l *CommaList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*l = CommaList(node.Value)
		return nil
	case yaml.SequenceNode:
		parts := make([]string, len(node.Content))
		for i, item := range node.Content {
			parts[i] = item.Value
		}
		*l = CommaList(strings.Join(parts, ","))
		return nil
	default:
		return fmt.Errorf("%w: expected string or sequence", ErrInvalidOption)
	}
}

// Options is the full configuration surface of the pipeline. The zero
// value means "all defaults": every column, no reordering, symbol
// booleans, localized dates, grouped numbers.
type Options struct {
	Columns      CommaList    `yaml:"columns"`
	ColumnOrder  CommaList    `yaml:"column-order"`
	ColumnWidths string       `yaml:"column-widths"`
	BooleanStyle BooleanStyle `yaml:"boolean-style"`
	DateFormat   DateFormat   `yaml:"date-format"`
	NumberFormat NumberFormat `yaml:"number-format"`
	URLTarget    string       `yaml:"url-target"`
	// NoAutoFormat inverts the autoFormat default so the zero value keeps
	// formatting on.
	NoAutoFormat   bool `yaml:"no-auto-format"`
	MaxInputLength int  `yaml:"max-input-length"`
	MaxRows        int  `yaml:"max-rows"`

	// Logger receives soft warnings from every stage. Nil means
	// slog.Default().
	Logger *slog.Logger `yaml:"-"`
}

// Validate checks every enum and limit field.
func (o Options) Validate() error {
	if err := o.renderOptions().Validate(); err != nil {
		return err
	}
	if o.MaxRows < 0 {
		return fmt.Errorf("%w: max rows %d", ErrInvalidOption, o.MaxRows)
	}
	return nil
}

func (o Options) renderOptions() RenderOptions {
	opts := DefaultRenderOptions()
	if o.BooleanStyle != "" {
		opts.BooleanStyle = o.BooleanStyle
	}
	if o.DateFormat != "" {
		opts.DateFormat = o.DateFormat
	}
	if o.NumberFormat != "" {
		opts.NumberFormat = o.NumberFormat
	}
	if o.URLTarget != "" {
		opts.URLTarget = o.URLTarget
	}
	if o.MaxInputLength > 0 {
		opts.MaxInputLength = o.MaxInputLength
	}
	opts.AutoFormat = !o.NoAutoFormat
	return opts
}

// ParseOptions decodes an option document. YAML and JSON both work (JSON
// is a YAML subset). Unknown fields and invalid enum values are rejected.
func ParseOptions(data []byte) (Options, error) {
	var opts Options
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&opts); err != nil {
		return Options{}, fmt.Errorf("%w: %s", ErrInvalidOption, err)
	}
	if err := opts.Validate(); err != nil {
		return Options{}, err
	}
	return opts, nil
}
