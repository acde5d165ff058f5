package topics

// Renderer formats topic content for terminal display.
type Renderer interface {
	// Render returns the formatted form of content. The format hint
	// is the topic file's extension, e.g. ".md".
	Render(content string, format string) string
}

// PlainRenderer returns topic content unchanged.
type PlainRenderer struct{}

// Render returns the content as-is.
func (r *PlainRenderer) Render(content string, format string) string {
	return content
}
