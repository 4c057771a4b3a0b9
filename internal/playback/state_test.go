// internal/playback/state_test.go
package playback

import (
	"testing"
	"time"

	"github.com/llehouerou/moodtune/internal/moodapi"
)

func TestState_String(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateIdle, "Idle"},
		{StateResolving, "Resolving"},
		{StatePlaying, "Playing"},
		{StatePaused, "Paused"},
		{StateErrored, "Errored"},
		{State(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}

func TestState_IsActive(t *testing.T) {
	tests := []struct {
		state State
		want  bool
	}{
		{StateIdle, false},
		{StateResolving, false},
		{StatePlaying, true},
		{StatePaused, true},
		{StateErrored, false},
	}
	for _, tt := range tests {
		if got := tt.state.IsActive(); got != tt.want {
			t.Errorf("%v.IsActive() = %v, want %v", tt.state, got, tt.want)
		}
	}
}

func TestSourceKind_String(t *testing.T) {
	tests := []struct {
		kind SourceKind
		want string
	}{
		{SourceNone, "None"},
		{SourceResolved, "Resolved"},
		{SourceFallback, "Fallback"},
		{SourceKind(42), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestSession_Progress(t *testing.T) {
	tests := []struct {
		name string
		s    Session
		want float64
	}{
		{"unknown duration", Session{Position: 5 * time.Second}, 0},
		{"half", Session{Position: 15 * time.Second, Duration: 30 * time.Second}, 0.5},
		{"end", Session{Position: 30 * time.Second, Duration: 30 * time.Second}, 1},
		{"overshoot clamps", Session{Position: 40 * time.Second, Duration: 30 * time.Second}, 1},
	}
	for _, tt := range tests {
		if got := tt.s.Progress(); got != tt.want {
			t.Errorf("%s: Progress() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestSession_IsActiveSong(t *testing.T) {
	song := moodapi.Song{Title: "Happy", Artist: "Pharrell Williams"}

	if (Session{}).IsActiveSong(song) {
		t.Error("idle session has no active song")
	}
	s := Session{Song: &song}
	if !s.IsActiveSong(moodapi.Song{Title: "Happy"}) {
		t.Error("title is the song key")
	}
	if s.IsActiveSong(moodapi.Song{Title: "Hello", Artist: "Pharrell Williams"}) {
		t.Error("different title must not match")
	}
}
