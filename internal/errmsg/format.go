// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Prediction service
	OpPredict Op = "analyze mood"
	OpHealth  Op = "reach mood service"

	// Playback operations
	OpResolve       Op = "find audio"
	OpPlaybackStart Op = "play song"
	OpPlaybackSeek  Op = "seek"

	// Likes
	OpLikeToggle Op = "update likes"
	OpLikesLoad  Op = "load likes"

	// Preferences
	OpVolumeLoad Op = "load volume"

	// Initialization
	OpInitialize Op = "initialize application"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}

// PlaybackOp maps a playback error operation name to its Op.
func PlaybackOp(name string) Op {
	switch name {
	case "resolve":
		return OpResolve
	case "seek":
		return OpPlaybackSeek
	default:
		return OpPlaybackStart
	}
}
