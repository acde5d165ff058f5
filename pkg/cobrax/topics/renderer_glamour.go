package topics

import (
	"github.com/charmbracelet/glamour"
)

// GlamourRenderer renders markdown topics with glamour. Rendering
// failures fall back to the raw content.
type GlamourRenderer struct {
	// Style is a glamour style name ("dark", "light", "notty") or a
	// path to a style file. Empty or "auto" picks from the terminal.
	Style string
	// Width wraps output at the given column. Zero lets glamour
	// detect the terminal width.
	Width int
}

// NewGlamourRenderer creates a markdown renderer with automatic style
// and width detection.
func NewGlamourRenderer() *GlamourRenderer {
	return &GlamourRenderer{Style: "auto"}
}

// Render converts markdown to styled terminal output. Content in any
// other format passes through untouched.
func (r *GlamourRenderer) Render(content string, format string) string {
	if format != ".md" {
		return content
	}

	var options []glamour.TermRendererOption
	if r.Style != "" && r.Style != "auto" {
		options = append(options, glamour.WithStylePath(r.Style))
	} else {
		options = append(options, glamour.WithAutoStyle())
	}
	if r.Width > 0 {
		options = append(options, glamour.WithWordWrap(r.Width))
	}

	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return content
	}
	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}
