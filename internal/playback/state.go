// internal/playback/state.go
package playback

// State represents the playback state of the session.
type State int

const (
	StateIdle State = iota
	StateResolving
	StatePlaying
	StatePaused
	StateErrored
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateResolving:
		return "Resolving"
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	case StateErrored:
		return "Errored"
	default:
		return "Unknown"
	}
}

// IsActive returns true if a source is loaded (playing or paused).
func (s State) IsActive() bool {
	return s == StatePlaying || s == StatePaused
}

// SourceKind records which audio origin is loaded.
type SourceKind int

const (
	SourceNone SourceKind = iota
	SourceResolved
	SourceFallback
)

// String returns the source name.
func (k SourceKind) String() string {
	switch k {
	case SourceNone:
		return "None"
	case SourceResolved:
		return "Resolved"
	case SourceFallback:
		return "Fallback"
	default:
		return "Unknown"
	}
}
