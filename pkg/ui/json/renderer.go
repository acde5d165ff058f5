// Package json provides machine-readable JSON output
package json

import (
	"encoding/json"
	"io"

	"github.com/arthur-debert/dotsync/pkg/errors"
)

// Renderer provides JSON output for machine consumption
type Renderer struct {
	output  io.Writer
	encoder *json.Encoder
}

// New creates a new JSON renderer
func New(output io.Writer) *Renderer {
	encoder := json.NewEncoder(output)
	encoder.SetIndent("", "  ")
	return &Renderer{
		output:  output,
		encoder: encoder,
	}
}

// RenderResult renders a command result as JSON
func (r *Renderer) RenderResult(result interface{}) error {
	return r.encoder.Encode(result)
}

// RenderError renders an error as JSON, with the error code when one
// is attached
func (r *Renderer) RenderError(err error) error {
	errorObj := map[string]string{
		"error": err.Error(),
	}
	if code := errors.GetErrorCode(err); code != errors.ErrUnknown {
		errorObj["code"] = string(code)
	}
	return r.encoder.Encode(errorObj)
}

// RenderMessage renders a simple message as JSON
func (r *Renderer) RenderMessage(msg string) error {
	messageObj := map[string]string{
		"message": msg,
	}
	return r.encoder.Encode(messageObj)
}
