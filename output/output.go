// Package output holds the list output formats and terminal styles shared
// by the binary and test lists.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Kind is the output format kind.
type Kind int

const (
	Human Kind = iota
	JSON
	JSONPretty
)

// Format selects how a list is written.
type Format struct {
	Kind Kind
	// Only used by Human
	Verbose bool
}

// ParseFormat parses "human", "json" or "json-pretty".
func ParseFormat(s string, verbose bool) (Format, error) {
	switch s {
	case "", "human":
		return Format{Kind: Human, Verbose: verbose}, nil
	case "json":
		return Format{Kind: JSON}, nil
	case "json-pretty":
		return Format{Kind: JSONPretty}, nil
	}
	return Format{}, fmt.Errorf("unknown output format %q (expected human, json or json-pretty)", s)
}

// IsSerializable returns true for the JSON formats.
func (f Format) IsSerializable() bool {
	return f.Kind == JSON || f.Kind == JSONPretty
}

// ShouldColorize resolves a "auto", "always" or "never" color choice for w.
func ShouldColorize(choice string, w io.Writer) (bool, error) {
	switch choice {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "", "auto":
		f, ok := w.(*os.File)
		return ok && isatty.IsTerminal(f.Fd()), nil
	}
	return false, fmt.Errorf("unknown color choice %q (expected auto, always or never)", choice)
}

// Styles colorizes parts of the human output. The zero value prints plain
// text.
type Styles struct {
	BinaryID   *color.Color
	TestName   *color.Color
	ModulePath *color.Color
	Field      *color.Color
}

// NewStyles returns colorized styles if colorize is set, plain ones
// otherwise.
func NewStyles(colorize bool) Styles {
	if !colorize {
		return Styles{}
	}
	s := Styles{
		BinaryID:   color.New(color.FgMagenta, color.Bold),
		TestName:   color.New(color.FgBlue, color.Bold),
		ModulePath: color.New(color.FgCyan),
		Field:      color.New(color.FgYellow, color.Bold),
	}
	// fatih/color turns itself off when stdout isn't a terminal, but we
	// may be writing elsewhere and the caller already decided.
	for _, c := range []*color.Color{s.BinaryID, s.TestName, s.ModulePath, s.Field} {
		c.EnableColor()
	}
	return s
}

// Paint renders s in c, or as is for a nil c.
func Paint(c *color.Color, s string) string {
	if c == nil {
		return s
	}
	return c.Sprint(s)
}

// FormatTestName renders a test name with its module path (everything up to the
// last "::") styled separately from the final component.
func (s Styles) FormatTestName(name string) string {
	idx := strings.LastIndex(name, "::")
	if idx < 0 {
		return Paint(s.TestName, name)
	}
	return Paint(s.ModulePath, name[:idx+2]) + Paint(s.TestName, name[idx+2:])
}
