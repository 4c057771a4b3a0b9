package playerbar

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/moodtune/internal/icons"
	"github.com/llehouerou/moodtune/internal/playback"
	"github.com/llehouerou/moodtune/internal/ui/render"
)

const contentRows = 4 // Must match Height(ModeExpanded) - 2 for borders

// RenderExpanded renders the expanded player view:
//
//	Title
//	Artist · full track
//	▶  1:23  ▓▓▓▓▓░░░░░  4:56
//	vol  80%
func RenderExpanded(s State, width int) string {
	innerWidth := max(width-6, 0)

	title := s.Title
	if title == "" {
		title = "Unknown song"
	}
	artist := s.Artist
	if artist == "" {
		artist = "Unknown artist"
	}

	lines := make([]string, 0, contentRows)
	lines = append(lines,
		titleStyle().Render(render.TruncateEllipsis(title, innerWidth)),
		sourceLine(s, artist, innerWidth),
	)

	if s.Status.IsActive() {
		lines = append(lines,
			RenderProgressBar(s.Position, s.Duration, innerWidth, statusStyle(s).Render(statusIcon(s))),
			progressTimeStyle().Render(volumeText(s.Volume)),
		)
	} else {
		lines = append(lines, statusStyle(s).Render(render.TruncateEllipsis(statusText(s), innerWidth)))
	}

	for len(lines) < contentRows {
		lines = append(lines, "")
	}

	return barStyle().Padding(0, 2).Width(width - 2).Render(strings.Join(lines, "\n"))
}

func sourceLine(s State, artist string, width int) string {
	var badge string
	switch s.Source {
	case playback.SourceResolved:
		badge = "full track"
	case playback.SourceFallback:
		badge = icons.Preview() + " preview clip"
	case playback.SourceNone:
	}
	if s.Ended {
		badge = strings.TrimSpace(badge + " (ended)")
	}
	if badge == "" {
		return artistStyle().Render(render.TruncateEllipsis(artist, width))
	}
	artistWidth := max(width-lipgloss.Width(" · "+badge), 10)
	return artistStyle().Render(render.TruncateEllipsis(artist, artistWidth)) +
		artistStyle().Render(" · ") + badgeStyle().Render(badge)
}
