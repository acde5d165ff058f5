// Package ui renders command results in terminal, plain-text, and JSON
// formats behind a single Renderer interface. Commands build their
// results and hand them over; nothing below this package writes to the
// user directly.
package ui

import (
	"io"
	"os"

	"github.com/arthur-debert/dotsync/pkg/errors"
	"github.com/arthur-debert/dotsync/pkg/ui/json"
	"github.com/arthur-debert/dotsync/pkg/ui/terminal"
	"github.com/arthur-debert/dotsync/pkg/ui/text"
)

// Renderer is the common interface for all output renderers.
type Renderer interface {
	// RenderResult renders a command result (a run report, a bundle
	// listing, a single bundle)
	RenderResult(result interface{}) error

	// RenderError renders an error
	RenderError(err error) error

	// RenderMessage renders a standalone message line
	RenderMessage(msg string) error
}

// NewRenderer creates a renderer for the given format. FormatAuto is
// resolved from the output's terminal capabilities when the output is
// a file, and falls back to styled output otherwise.
func NewRenderer(format Format, output io.Writer) (Renderer, error) {
	switch format {
	case FormatAuto:
		if file, ok := output.(*os.File); ok {
			return NewRenderer(DetectFormat(file), output)
		}
		return NewRenderer(FormatTerminal, output)
	case FormatTerminal:
		return terminal.New(output), nil
	case FormatText:
		return text.New(output), nil
	case FormatJSON:
		return json.New(output), nil
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown output format: %d", format)
	}
}
