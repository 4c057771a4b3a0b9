package playerbar

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/moodtune/internal/playback"
	"github.com/llehouerou/moodtune/internal/ui/styles"
)

func barStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.T().Border)
}

func titleStyle() lipgloss.Style {
	return styles.T().S().Title
}

func artistStyle() lipgloss.Style {
	return styles.T().S().Muted
}

func badgeStyle() lipgloss.Style {
	return styles.T().S().Badge
}

func progressBarFilled() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(styles.T().Primary)
}

func progressBarEmpty() lipgloss.Style {
	return styles.T().S().Subtle
}

func progressTimeStyle() lipgloss.Style {
	return styles.T().S().Muted
}

func statusStyle(s State) lipgloss.Style {
	switch s.Status {
	case playback.StateResolving:
		return styles.T().S().Warning
	case playback.StateErrored:
		return styles.T().S().Error
	case playback.StatePlaying:
		return styles.T().S().Success
	case playback.StateIdle, playback.StatePaused:
	}
	return styles.T().S().Muted
}
