package terminal

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// renderMarkdown converts markdown to styled terminal output. Any
// renderer failure falls back to the raw content, so a broken theme
// never hides a bundle's text.
func renderMarkdown(content string) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
	)
	if err != nil {
		return ensureTrailingNewline(content)
	}

	rendered, err := renderer.Render(content)
	if err != nil {
		return ensureTrailingNewline(content)
	}

	return rendered
}

func ensureTrailingNewline(s string) string {
	if strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}
