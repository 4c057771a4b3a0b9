// Package playerbar renders the playback coordinator's session as a bar at
// the bottom of the screen.
package playerbar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/moodtune/internal/icons"
	"github.com/llehouerou/moodtune/internal/playback"
	"github.com/llehouerou/moodtune/internal/ui"
	"github.com/llehouerou/moodtune/internal/ui/render"
)

// DisplayMode controls the player bar appearance.
type DisplayMode int

const (
	ModeCompact  DisplayMode = iota // Single-line view
	ModeExpanded                    // Title, artist, progress and volume on separate rows
)

// State holds everything needed to render the player bar.
type State struct {
	Status      playback.State
	Source      playback.SourceKind
	Ended       bool
	Title       string
	Artist      string
	Position    time.Duration
	Duration    time.Duration
	Volume      float64
	Err         error
	DisplayMode DisplayMode
}

// Height returns the total height of the player bar for the given mode.
func Height(mode DisplayMode) int {
	if mode == ModeExpanded {
		return contentRows + ui.BorderHeight
	}
	return 1 + ui.BorderHeight
}

// NewState constructs a State from a coordinator snapshot.
// Returns an empty State when no song is active.
func NewState(snap playback.Snapshot, mode DisplayMode) State {
	if snap.Song == nil || snap.State == playback.StateIdle {
		return State{Volume: snap.Volume, DisplayMode: mode}
	}
	return State{
		Status:      snap.State,
		Source:      snap.Source,
		Ended:       snap.Ended,
		Title:       snap.Song.Title,
		Artist:      snap.Song.Artist,
		Position:    snap.Position,
		Duration:    snap.Duration,
		Volume:      snap.Volume,
		Err:         snap.Err,
		DisplayMode: mode,
	}
}

// Visible reports whether the bar has anything to show.
func (s State) Visible() bool {
	return s.Status != playback.StateIdle
}

// Render returns the player bar string for the given width.
// Returns empty string when idle.
func Render(s State, width int) string {
	if !s.Visible() {
		return ""
	}

	if s.DisplayMode == ModeExpanded && width-2 >= ui.MinExpandedWidth {
		return RenderExpanded(s, width)
	}

	return renderCompact(s, width)
}

func renderCompact(s State, width int) string {
	// Calculate available width (subtract border and padding)
	innerWidth := max(width-6, 0)

	title := s.Title
	if title == "" {
		title = "Unknown song"
	}

	var infoParts []string
	if s.Artist != "" {
		infoParts = append(infoParts, s.Artist)
	}
	if s.Source == playback.SourceFallback {
		infoParts = append(infoParts, icons.Preview())
	}
	info := strings.Join(infoParts, " · ")

	// Right-hand side: status and transport, or the reason there is none
	var right string
	var rightWidth int
	if s.Status.IsActive() {
		timeStr := fmt.Sprintf("%s / %s", FormatDuration(s.Position), FormatDuration(s.Duration))
		right = progressTimeStyle().Render(timeStr)
		rightWidth = lipgloss.Width(timeStr)
		if innerWidth >= minVolumeWidth {
			volStr := volumeText(s.Volume)
			right += separator + progressTimeStyle().Render(volStr)
			rightWidth += sepWidth + lipgloss.Width(volStr)
		}
	} else {
		msg := render.TruncateEllipsis(statusText(s), max(innerWidth/2, 10))
		right = statusStyle(s).Render(msg)
		rightWidth = lipgloss.Width(msg)
	}

	// Reserve minimum space for the progress bar while active
	barSpace := 0
	if s.Status.IsActive() {
		barSpace = lipgloss.Width(statusIcon(s)+"  ") + ui.MinProgressBarWidth + sepWidth
	}
	availableForContent := innerWidth - rightWidth - sepWidth - barSpace

	titleWidth := lipgloss.Width(title)
	infoWidth := lipgloss.Width(info)

	var styledTitle, styledInfo string
	var usedContentWidth int

	switch {
	case titleWidth+sepWidth+infoWidth <= availableForContent:
		styledTitle = titleStyle().Render(render.Sanitize(title))
		styledInfo = artistStyle().Render(render.Sanitize(info))
		usedContentWidth = titleWidth + sepWidth + infoWidth
	case titleWidth+sepWidth < availableForContent && info != "":
		maxInfo := availableForContent - titleWidth - sepWidth
		styledTitle = titleStyle().Render(render.Sanitize(title))
		styledInfo = artistStyle().Render(render.TruncateEllipsis(info, maxInfo))
		usedContentWidth = titleWidth + sepWidth + maxInfo
	default:
		maxTitle := max(availableForContent, 10)
		truncated := render.TruncateEllipsis(title, maxTitle)
		styledTitle = titleStyle().Render(truncated)
		usedContentWidth = lipgloss.Width(truncated)
	}

	var content strings.Builder
	content.WriteString(styledTitle)
	if styledInfo != "" {
		content.WriteString(separator)
		content.WriteString(styledInfo)
	}
	if s.Status.IsActive() {
		statusWidth := lipgloss.Width(statusIcon(s) + "  ")
		barWidth := max(innerWidth-usedContentWidth-rightWidth-statusWidth-sepWidth*2, ui.MinProgressBarWidth)
		content.WriteString(separator)
		content.WriteString(statusStyle(s).Render(statusIcon(s)))
		content.WriteString("  ")
		content.WriteString(renderLineBar(s.Position, s.Duration, barWidth))
	}
	content.WriteString(separator)
	content.WriteString(right)

	return barStyle().Padding(0, 2).Width(width - 2).Render(content.String())
}

const (
	separator = "   "

	// minVolumeWidth is the inner width below which the compact bar drops
	// the volume readout.
	minVolumeWidth = 60
)

var sepWidth = lipgloss.Width(separator)

// renderLineBar renders the thin compact progress bar: ━━━━───.
func renderLineBar(position, duration time.Duration, width int) string {
	filled := filledCells(position, duration, width)
	return progressBarFilled().Render(strings.Repeat("━", filled)) +
		progressBarEmpty().Render(strings.Repeat("─", width-filled))
}

func filledCells(position, duration time.Duration, width int) int {
	if duration <= 0 || width <= 0 {
		return 0
	}
	ratio := float64(position) / float64(duration)
	return min(max(int(float64(width)*ratio), 0), width)
}

func statusIcon(s State) string {
	switch s.Status {
	case playback.StatePlaying:
		return icons.Play()
	case playback.StatePaused:
		return icons.Pause()
	case playback.StateResolving:
		return icons.Loading()
	case playback.StateErrored:
		return icons.Failed()
	case playback.StateIdle:
	}
	return ""
}

// statusText describes a session that has no transport to show.
func statusText(s State) string {
	switch s.Status {
	case playback.StateResolving:
		return icons.Loading() + " finding audio"
	case playback.StateErrored:
		msg := "no playable source"
		if s.Err != nil {
			msg = s.Err.Error()
		}
		return icons.Failed() + " " + msg
	case playback.StateIdle, playback.StatePlaying, playback.StatePaused:
	}
	return ""
}

func volumeText(volume float64) string {
	return fmt.Sprintf("%s %3d%%", icons.Volume(volume), int(volume*100+0.5))
}

// FormatDuration formats d as m:ss. Negative durations render as 0:00.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%d:%02d", m, s)
}
