package playerbar

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/moodtune/internal/icons"
	"github.com/llehouerou/moodtune/internal/moodapi"
	"github.com/llehouerou/moodtune/internal/playback"
)

func snapshot(state playback.State, source playback.SourceKind) playback.Snapshot {
	return playback.Snapshot{
		Session: playback.Session{
			ID:       "s1",
			Song:     &moodapi.Song{Title: "Happy", Artist: "Pharrell Williams"},
			State:    state,
			Source:   source,
			Position: 83 * time.Second,
			Duration: 238 * time.Second,
		},
		Volume: 0.8,
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "0:00"},
		{83 * time.Second, "1:23"},
		{59*time.Second + 999*time.Millisecond, "0:59"},
		{61 * time.Minute, "61:00"},
		{-5 * time.Second, "0:00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDuration(tt.in), "FormatDuration(%v)", tt.in)
	}
}

func TestHeight(t *testing.T) {
	assert.Equal(t, 3, Height(ModeCompact))
	assert.Equal(t, 6, Height(ModeExpanded))
}

func TestNewState_Idle(t *testing.T) {
	s := NewState(playback.Snapshot{Volume: 0.5}, ModeCompact)
	assert.False(t, s.Visible())
	assert.InDelta(t, 0.5, s.Volume, 1e-9)
	assert.Empty(t, Render(s, 80))
}

func TestNewState_CopiesSession(t *testing.T) {
	snap := snapshot(playback.StatePaused, playback.SourceResolved)
	snap.Ended = true

	s := NewState(snap, ModeExpanded)
	assert.Equal(t, playback.StatePaused, s.Status)
	assert.Equal(t, playback.SourceResolved, s.Source)
	assert.True(t, s.Ended)
	assert.Equal(t, "Happy", s.Title)
	assert.Equal(t, "Pharrell Williams", s.Artist)
	assert.Equal(t, 83*time.Second, s.Position)
	assert.Equal(t, 238*time.Second, s.Duration)
	assert.Equal(t, ModeExpanded, s.DisplayMode)
}

func TestRender_CompactPlaying(t *testing.T) {
	icons.Init("none")
	out := Render(NewState(snapshot(playback.StatePlaying, playback.SourceResolved), ModeCompact), 80)

	assert.Equal(t, 3, lipgloss.Height(out))
	assert.Equal(t, 80, lipgloss.Width(out))
	assert.Contains(t, out, "Happy")
	assert.Contains(t, out, "Pharrell Williams")
	assert.Contains(t, out, "1:23 / 3:58")
	assert.Contains(t, out, "vol  80%")
	assert.Contains(t, out, "━")
	assert.NotContains(t, out, "[preview]")
}

func TestRender_CompactFallbackBadge(t *testing.T) {
	icons.Init("none")
	out := Render(NewState(snapshot(playback.StatePaused, playback.SourceFallback), ModeCompact), 100)

	assert.Contains(t, out, "Pharrell Williams · [preview]")
	assert.Contains(t, out, "||")
}

func TestRender_CompactResolving(t *testing.T) {
	icons.Init("none")
	snap := snapshot(playback.StateResolving, playback.SourceNone)
	snap.Position, snap.Duration = 0, 0

	out := Render(NewState(snap, ModeCompact), 80)
	assert.Contains(t, out, "Happy")
	assert.Contains(t, out, "... finding audio")
	assert.NotContains(t, out, "0:00 / 0:00")
}

func TestRender_CompactErrored(t *testing.T) {
	icons.Init("none")
	snap := snapshot(playback.StateErrored, playback.SourceNone)
	snap.Err = errors.New("no playable source")

	out := Render(NewState(snap, ModeCompact), 80)
	assert.Contains(t, out, "! no playable source")
}

func TestRender_CompactTruncatesLongTitle(t *testing.T) {
	snap := snapshot(playback.StatePlaying, playback.SourceResolved)
	snap.Song = &moodapi.Song{Title: strings.Repeat("Very Long Title ", 10), Artist: "Someone"}

	out := Render(NewState(snap, ModeCompact), 80)
	assert.Equal(t, 3, lipgloss.Height(out), "stays on one content line")
	assert.Contains(t, out, "…")
}

func TestRender_Expanded(t *testing.T) {
	icons.Init("none")
	out := Render(NewState(snapshot(playback.StatePlaying, playback.SourceFallback), ModeExpanded), 80)

	require.Equal(t, Height(ModeExpanded), lipgloss.Height(out))
	assert.Contains(t, out, "Happy")
	assert.Contains(t, out, "Pharrell Williams · [preview] preview clip")
	assert.Contains(t, out, "1:23")
	assert.Contains(t, out, "3:58")
	assert.Contains(t, out, "▓")
	assert.Contains(t, out, "vol  80%")
}

func TestRender_ExpandedFallsBackWhenNarrow(t *testing.T) {
	icons.Init("none")
	out := Render(NewState(snapshot(playback.StatePlaying, playback.SourceResolved), ModeExpanded), 41)
	assert.Equal(t, Height(ModeCompact), lipgloss.Height(out))
	assert.Equal(t, 41, lipgloss.Width(out))
	assert.Contains(t, out, "1:23 / 3:58")
	assert.NotContains(t, out, "vol", "volume is dropped on narrow terminals")
}

func TestRender_ExpandedEnded(t *testing.T) {
	snap := snapshot(playback.StatePaused, playback.SourceResolved)
	snap.Ended = true
	snap.Position = snap.Duration

	out := Render(NewState(snap, ModeExpanded), 80)
	assert.Contains(t, out, "full track (ended)")
	assert.Contains(t, out, "3:58  ")
}

func TestFilledCells(t *testing.T) {
	assert.Equal(t, 0, filledCells(time.Second, 0, 10), "unknown duration")
	assert.Equal(t, 5, filledCells(time.Second, 2*time.Second, 10))
	assert.Equal(t, 10, filledCells(3*time.Second, 2*time.Second, 10), "clamped")
	assert.Equal(t, 0, filledCells(-time.Second, 2*time.Second, 10), "clamped")
}

func TestRenderProgressBar_Narrow(t *testing.T) {
	got := RenderProgressBar(83*time.Second, 238*time.Second, 10, ">")
	assert.Equal(t, ">  1:23 / 3:58", got)
}
