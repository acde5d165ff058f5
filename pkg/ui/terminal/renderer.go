// Package terminal provides rich terminal output with colors and styling
package terminal

import (
	"fmt"
	"io"

	"github.com/arthur-debert/dotsync/pkg/bundles"
	"github.com/arthur-debert/dotsync/pkg/types"
	"github.com/arthur-debert/dotsync/pkg/ui/styles"
	"github.com/charmbracelet/lipgloss"
)

// Renderer provides styled terminal output
type Renderer struct {
	output io.Writer
}

// New creates a new terminal renderer
func New(output io.Writer) *Renderer {
	return &Renderer{output: output}
}

// RenderResult renders a command result with terminal styling
func (r *Renderer) RenderResult(result interface{}) error {
	switch v := result.(type) {
	case *types.Report:
		return r.renderReport(v)
	case []bundles.Bundle:
		return r.renderBundleList(v)
	case *bundles.Bundle:
		return r.renderBundle(v)
	default:
		_, err := fmt.Fprintf(r.output, "%+v\n", result)
		return err
	}
}

// renderReport prints one line per action with a styled op column. The
// op styles carry a fixed width, so the detail column lines up the same
// way it does in plain text output.
func (r *Renderer) renderReport(report *types.Report) error {
	for _, a := range report.Actions {
		op := opStyle(a.Op).Render(string(a.Op))
		if _, err := fmt.Fprintf(r.output, "%s %s\n", op, a.Detail()); err != nil {
			return err
		}
	}
	return nil
}

// opStyle maps an op to its column style. Conflict handling comes
// before the mutation check because backup and remove are both.
func opStyle(op types.Op) lipgloss.Style {
	switch {
	case op == types.OpRoot:
		return styles.GetStyle("Header")
	case op == types.OpSkip, op == types.OpBackup, op == types.OpRemove:
		return styles.GetStyle("Conflict")
	case op.Mutating():
		return styles.GetStyle("Mutation")
	default:
		return styles.GetStyle("Neutral")
	}
}

func (r *Renderer) renderBundleList(list []bundles.Bundle) error {
	name := styles.GetStyle("Name")
	for _, b := range list {
		line := name.Render(b.Name)
		if b.Meta.Description != "" {
			line += " " + b.Meta.Description
		}
		if _, err := fmt.Fprintln(r.output, line); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) renderBundle(b *bundles.Bundle) error {
	if _, err := fmt.Fprintln(r.output, styles.GetStyle("Bold").Render(b.Title())); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(r.output, styles.GetStyle("Muted").Render(b.Path)); err != nil {
		return err
	}
	if b.Body == "" {
		return nil
	}
	if _, err := fmt.Fprintln(r.output); err != nil {
		return err
	}
	_, err := fmt.Fprint(r.output, renderMarkdown(b.Body))
	return err
}

// RenderError renders an error with error styling
func (r *Renderer) RenderError(err error) error {
	msg := styles.GetStyle("Error").Render(fmt.Sprintf("Error: %v", err))
	_, werr := fmt.Fprintln(r.output, msg)
	return werr
}

// RenderMessage renders a standalone message with notice styling
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, styles.GetStyle("Notice").Render(msg))
	return err
}
