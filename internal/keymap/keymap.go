// Package keymap defines key bindings for the application.
package keymap

// Binding describes a single key binding.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string // "global", "input", "results", "playback"
}

// All contains all key bindings, in help order.
var All = []Binding{
	// Global
	{ActionQuit, []string{"ctrl+c"}, "Quit application", "global"},
	{ActionSwitchFocus, []string{"tab"}, "Switch focus", "global"},
	{ActionHelp, []string{"?"}, "Show help", "global"},

	// Mood input
	{ActionAnalyze, []string{"enter"}, "Analyze mood", "input"},
	{ActionToggleModel, []string{"ctrl+t"}, "Toggle simple/advanced model", "input"},

	// Results
	{ActionQuit, []string{"q"}, "Quit application", "results"},
	{ActionMoveUp, []string{"k", "up"}, "Move up", "results"},
	{ActionMoveDown, []string{"j", "down"}, "Move down", "results"},
	{ActionJumpStart, []string{"g", "home"}, "First song", "results"},
	{ActionJumpEnd, []string{"G", "end"}, "Last song", "results"},
	{ActionSelect, []string{"enter"}, "Play song (again to pause)", "results"},
	{ActionToggleLike, []string{"l"}, "Like/unlike song", "results"},
	{ActionShowLikes, []string{"L"}, "Show liked songs", "results"},

	// Playback
	{ActionPlayPause, []string{" "}, "Play/pause", "playback"},
	{ActionSeekBack, []string{"left", "h"}, "Seek back", "playback"},
	{ActionSeekForward, []string{"right"}, "Seek forward", "playback"},
	{ActionSeekPercent, []string{"0", "1", "2", "3", "4", "5", "6", "7", "8", "9"}, "Jump to 0%-90%", "playback"},
	{ActionVolumeUp, []string{"+", "="}, "Volume up", "playback"},
	{ActionVolumeDown, []string{"-"}, "Volume down", "playback"},
	{ActionClosePlayer, []string{"x"}, "Close player", "playback"},
}

// ByContext returns key bindings filtered by context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, kb := range All {
		if kb.Context == context {
			result = append(result, kb)
		}
	}
	return result
}

// ForContexts returns the bindings of the given contexts, earlier contexts
// first. A key bound in an earlier context shadows later ones in a Resolver.
func ForContexts(contexts ...string) []Binding {
	var result []Binding
	for i := len(contexts) - 1; i >= 0; i-- {
		result = append(result, ByContext(contexts[i])...)
	}
	return result
}
