// Package headerbar renders the single-line application header.
package headerbar

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/moodtune/internal/ui/render"
	"github.com/llehouerou/moodtune/internal/ui/styles"
)

// Height is the fixed height of the header bar (single line).
const Height = 1

// Tab identifies the list shown in the result panel.
type Tab int

const (
	TabRecommendations Tab = iota
	TabLikes
)

// Service is the reachability of the prediction service.
type Service int

const (
	ServiceChecking Service = iota
	ServiceUp
	ServiceDown
)

// tab represents a header bar tab.
type tab struct {
	name string
	tab  Tab
}

var tabs = []tab{
	{"Recommendations", TabRecommendations},
	{"Liked", TabLikes},
}

// State is what the header shows.
type State struct {
	Active     Tab
	Model      string // prediction model
	Service    Service
	ServiceMsg string
}

// Render returns the header bar string for the given width.
func Render(s State, width int) string {
	if width < 20 {
		return ""
	}
	t := styles.T()

	activeStyle := lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
	inactiveStyle := t.S().Muted
	separator := t.S().Subtle.Render(" │ ")

	parts := make([]string, 0, len(tabs))
	for _, tb := range tabs {
		if tb.tab == s.Active {
			parts = append(parts, activeStyle.Render(tb.name))
		} else {
			parts = append(parts, inactiveStyle.Render(tb.name))
		}
	}

	left := lipgloss.NewStyle().Bold(true).Foreground(t.Primary).Render("MoodTune") +
		separator + strings.Join(parts, separator) +
		separator + inactiveStyle.Render(s.Model)

	serviceStyle := t.S().Muted
	switch s.Service {
	case ServiceUp:
		serviceStyle = t.S().Success
	case ServiceDown:
		serviceStyle = t.S().Error
	case ServiceChecking:
	}
	avail := max(width-lipgloss.Width(left)-1, 0)
	right := serviceStyle.Render(render.TruncateEllipsis(s.ServiceMsg, avail))

	return render.Row(left, right, width)
}
