package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"clean", "Happy", "Happy"},
		{"keeps unicode", "Café del Mar ☕", "Café del Mar ☕"},
		{"strips newline", "Bad\nTitle", "BadTitle"},
		{"strips escape", "A\x1b[31mB", "A[31mB"},
		{"keeps tab", "a\tb", "a\tb"},
		{"nbsp to space", "a\u00a0b", "a b"},
		{"invalid utf8", "a\xffb", "ab"},
		{"delete char", "a\x7fb", "ab"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.input))
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxWidth int
		want     string
	}{
		{"no truncation needed", "hello", 10, "hello"},
		{"exact fit", "hello", 5, "hello"},
		{"truncation with ellipsis", "hello world", 8, "hello..."},
		{"very short max width", "hello", 3, "..."},
		{"empty string", "", 10, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Truncate(tt.input, tt.maxWidth))
		})
	}
}

func TestTruncateEllipsis(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxWidth int
		want     string
	}{
		{"fits", "Happy", 10, "Happy"},
		{"truncated", "Bohemian Rhapsody", 9, "Bohemian…"},
		{"wide characters", "日本語の歌", 5, "日本…"},
		{"multibyte not split", "Café Tacvba", 4, "Caf…"},
		{"zero width", "Happy", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateEllipsis(tt.input, tt.maxWidth)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPad(t *testing.T) {
	assert.Equal(t, "ab   ", Pad("ab", 5))
	assert.Equal(t, "日本 ", Pad("日本", 5))
	assert.Equal(t, "abcdef", Pad("abcdef", 3), "longer input is left untouched")
}

func TestRow(t *testing.T) {
	assert.Equal(t, "left    right", Row("left", "right", 13))
	assert.Equal(t, "left right", Row("left", "right", 4), "keeps one space minimum")
}
