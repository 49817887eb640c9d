package format

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// IndentStyle is the width of one indent level in spaces, or Tabs.
type IndentStyle int

const (
	Spaces2 IndentStyle = 2
	Spaces4 IndentStyle = 4
	Tabs    IndentStyle = -1
)

// ErrInvalidIndentStyle is returned when parsing an unknown indent style.
var ErrInvalidIndentStyle = errors.New("invalid indent style")

type (
	// FormatterOptions controls formatting behavior
	FormatterOptions struct {
		// IndentStyle is the indentation used per level
		IndentStyle IndentStyle
		// Braces emits "{" and "}" lines around blocks
		Braces bool
		// Strict reports unbalanced block operations instead of ignoring them
		Strict bool
		// Logger receives debug messages about ignored block operations.
		// slog.Default() is used when nil.
		Logger *slog.Logger
	}
)

// Defaults are the standard formatting options: 2 spaces, braces, lenient.
var Defaults = FormatterOptions{
	IndentStyle: Spaces2,
	Braces:      true,
}

// ParseIndentStyle parses "2", "4", "spaces2", "spaces4" or "tabs".
func ParseIndentStyle(s string) (IndentStyle, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "2", "spaces2":
		return Spaces2, nil
	case "4", "spaces4":
		return Spaces4, nil
	case "tab", "tabs":
		return Tabs, nil
	default:
		return 0, errors.Wrapf(ErrInvalidIndentStyle, "%q", s)
	}
}

// String returns the textual form accepted by ParseIndentStyle.
func (s IndentStyle) String() string {
	if s == Tabs {
		return "tabs"
	}
	return strconv.Itoa(int(s))
}

// MarshalText implements encoding.TextMarshaler.
func (s IndentStyle) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *IndentStyle) UnmarshalText(text []byte) error {
	style, err := ParseIndentStyle(string(text))
	if err != nil {
		return err
	}

	*s = style
	return nil
}

// indent returns the text for the given number of levels.
func (s IndentStyle) indent(level int) string {
	if level <= 0 {
		return ""
	}
	if s == Tabs {
		return strings.Repeat("\t", level)
	}
	return strings.Repeat(" ", level*int(s))
}
