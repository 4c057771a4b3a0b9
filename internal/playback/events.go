package playback

import (
	"time"

	"github.com/llehouerou/moodtune/internal/moodapi"
)

// Session is the single live playback session.
type Session struct {
	ID       string // correlates log lines of one session
	Song     *moodapi.Song
	State    State
	Source   SourceKind
	Position time.Duration
	Duration time.Duration // 0 while unknown
	Ended    bool          // paused because playback completed
	Err      error         // set in StateErrored
}

// Snapshot is a copy of the coordinator's observable state.
type Snapshot struct {
	Session
	Volume float64
}

// Progress returns the position as a fraction of the duration, 0 while unknown.
func (s Session) Progress() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return min(float64(s.Position)/float64(s.Duration), 1)
}

// IsActiveSong reports whether song is the session's song.
func (s Session) IsActiveSong(song moodapi.Song) bool {
	return s.Song != nil && s.Song.Title == song.Title
}

// ErrorEvent is emitted when a session ends in StateErrored.
type ErrorEvent struct {
	Operation string // "resolve" or "play"
	Song      moodapi.Song
	Source    SourceKind // origin of the last attempt
	Err       error
}
