//nolint:goconst // test cases intentionally repeat strings for readability
package errmsg

import (
	"errors"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpPredict,
			err:      nil,
			expected: "",
		},
		{
			name:     "formats error with operation",
			op:       OpPredict,
			err:      errors.New("service returned 500"),
			expected: "Failed to analyze mood: service returned 500",
		},
		{
			name:     "resolve operation",
			op:       OpResolve,
			err:      errors.New("no audio source found"),
			expected: "Failed to find audio: no audio source found",
		},
		{
			name:     "health operation",
			op:       OpHealth,
			err:      errors.New("connection refused"),
			expected: "Failed to reach mood service: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Format(tt.op, tt.err)
			if result != tt.expected {
				t.Errorf("Format() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestFormatWith(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		context  string
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpPlaybackStart,
			context:  "Happy",
			err:      nil,
			expected: "",
		},
		{
			name:     "formats error with context",
			op:       OpPlaybackStart,
			context:  "Happy",
			err:      errors.New("no playable source"),
			expected: "Failed to play song 'Happy': no playable source",
		},
		{
			name:     "empty context falls back to Format",
			op:       OpLikeToggle,
			context:  "",
			err:      errors.New("database is locked"),
			expected: "Failed to update likes: database is locked",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatWith(tt.op, tt.context, tt.err)
			if result != tt.expected {
				t.Errorf("FormatWith() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestPlaybackOp(t *testing.T) {
	tests := []struct {
		name string
		want Op
	}{
		{"resolve", OpResolve},
		{"play", OpPlaybackStart},
		{"seek", OpPlaybackSeek},
		{"", OpPlaybackStart},
	}
	for _, tt := range tests {
		if got := PlaybackOp(tt.name); got != tt.want {
			t.Errorf("PlaybackOp(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}
