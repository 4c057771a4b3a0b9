// Package keymap defines key bindings and action dispatch for the application.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit        Action = "quit"
	ActionSwitchFocus Action = "switch_focus"
	ActionHelp        Action = "help"

	// Mood input
	ActionAnalyze     Action = "analyze"
	ActionToggleModel Action = "toggle_model"

	// Result list
	ActionMoveUp     Action = "move_up"
	ActionMoveDown   Action = "move_down"
	ActionJumpStart  Action = "jump_start"
	ActionJumpEnd    Action = "jump_end"
	ActionSelect     Action = "select"      // enter - play/toggle the song
	ActionToggleLike Action = "toggle_like" // l
	ActionShowLikes  Action = "show_likes"  // L

	// Playback actions
	ActionPlayPause   Action = "play_pause"
	ActionSeekForward Action = "seek_forward"
	ActionSeekBack    Action = "seek_back"
	ActionSeekPercent Action = "seek_percent" // 0-9 jump to 0%..90%
	ActionVolumeUp    Action = "volume_up"
	ActionVolumeDown  Action = "volume_down"
	ActionClosePlayer Action = "close_player"
)
