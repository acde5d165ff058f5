// Package text provides plain text output without any styling
package text

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/dotsync/pkg/bundles"
	"github.com/arthur-debert/dotsync/pkg/types"
)

// Renderer provides plain text output without colors or styling
type Renderer struct {
	output io.Writer
}

// New creates a new text renderer
func New(output io.Writer) *Renderer {
	return &Renderer{output: output}
}

// RenderResult renders a command result as plain text
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

// renderReport prints one line per action, op column first
func (r *Renderer) renderReport(report *types.Report) error {
	for _, a := range report.Actions {
		if _, err := fmt.Fprintf(r.output, "%-8s %s\n", a.Op, a.Detail()); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) renderBundleList(list []bundles.Bundle) error {
	for _, b := range list {
		line := b.Name
		if b.Meta.Description != "" {
			line = fmt.Sprintf("%-20s %s", b.Name, b.Meta.Description)
		}
		if _, err := fmt.Fprintln(r.output, line); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) renderBundle(b *bundles.Bundle) error {
	if _, err := fmt.Fprintln(r.output, b.Title()); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(r.output, b.Path); err != nil {
		return err
	}
	if b.Body == "" {
		return nil
	}
	if _, err := fmt.Fprintln(r.output); err != nil {
		return err
	}
	_, err := fmt.Fprintln(r.output, strings.TrimRight(b.Body, "\n"))
	return err
}

// RenderError renders an error as plain text
func (r *Renderer) RenderError(err error) error {
	_, werr := fmt.Fprintf(r.output, "Error: %v\n", err)
	return werr
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}
