package ui_test

import (
	"os"
	"testing"

	"github.com/arthur-debert/dotsync/pkg/errors"
	"github.com/arthur-debert/dotsync/pkg/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatString(t *testing.T) {
	tests := []struct {
		format   ui.Format
		expected string
	}{
		{ui.FormatAuto, "auto"},
		{ui.FormatTerminal, "term"},
		{ui.FormatText, "text"},
		{ui.FormatJSON, "json"},
		{ui.Format(999), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.format.String())
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected ui.Format
		wantErr  bool
	}{
		{name: "auto", input: "auto", expected: ui.FormatAuto},
		{name: "empty means auto", input: "", expected: ui.FormatAuto},
		{name: "term", input: "term", expected: ui.FormatTerminal},
		{name: "terminal alias", input: "terminal", expected: ui.FormatTerminal},
		{name: "text", input: "text", expected: ui.FormatText},
		{name: "plain alias", input: "plain", expected: ui.FormatText},
		{name: "json", input: "json", expected: ui.FormatJSON},
		{name: "case insensitive", input: "JSON", expected: ui.FormatJSON},
		{name: "unknown", input: "yaml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			format, err := ui.ParseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, format)
		})
	}
}

func TestDetectFormat(t *testing.T) {
	devNull, err := os.Open(os.DevNull)
	require.NoError(t, err)
	defer func() { _ = devNull.Close() }()

	t.Run("NO_COLOR forces text", func(t *testing.T) {
		t.Setenv("NO_COLOR", "1")
		assert.Equal(t, ui.FormatText, ui.DetectFormat(devNull))
	})

	t.Run("non-terminal output is text", func(t *testing.T) {
		t.Setenv("NO_COLOR", "")
		assert.Equal(t, ui.FormatText, ui.DetectFormat(devNull))
	})
}
