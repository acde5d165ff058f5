package ui

import (
	"os"
	"strings"

	"github.com/arthur-debert/dotsync/pkg/errors"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Format selects how command results are rendered
type Format int

const (
	// FormatAuto picks terminal or text output based on where stdout goes
	FormatAuto Format = iota
	// FormatTerminal renders styled terminal output
	FormatTerminal
	// FormatText renders plain text without any styling
	FormatText
	// FormatJSON renders machine-readable JSON
	FormatJSON
)

// String returns the string representation of the format
func (f Format) String() string {
	switch f {
	case FormatAuto:
		return "auto"
	case FormatTerminal:
		return "term"
	case FormatText:
		return "text"
	case FormatJSON:
		return "json"
	default:
		return "unknown"
	}
}

// ParseFormat parses a string into a Format value. The empty string
// means auto-detection.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "auto", "":
		return FormatAuto, nil
	case "term", "terminal":
		return FormatTerminal, nil
	case "text", "plain":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	default:
		return FormatAuto, errors.Newf(errors.ErrInvalidInput,
			"unknown output format: %q (want auto, term, text, or json)", s)
	}
}

// DetectFormat resolves FormatAuto for the given output file. Styled
// output is only used on a color-capable terminal; pipes, redirects,
// NO_COLOR, and dumb terminals all get plain text.
func DetectFormat(output *os.File) Format {
	if os.Getenv("NO_COLOR") != "" {
		return FormatText
	}

	if !isatty.IsTerminal(output.Fd()) && !isatty.IsCygwinTerminal(output.Fd()) {
		return FormatText
	}

	if termenv.ColorProfile() == termenv.Ascii {
		return FormatText
	}

	return FormatTerminal
}
