package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/moodtune/internal/keymap"
	"github.com/llehouerou/moodtune/internal/playback"
	"github.com/llehouerou/moodtune/internal/ui"
	"github.com/llehouerou/moodtune/internal/ui/headerbar"
	"github.com/llehouerou/moodtune/internal/ui/playerbar"
	"github.com/llehouerou/moodtune/internal/ui/render"
	"github.com/llehouerou/moodtune/internal/ui/styles"
)

const (
	inputHeight    = 1 + ui.BorderHeight
	moodHeight     = 2
	statusHeight   = 1
	expandedMinRow = 30 // terminal rows needed for the expanded player bar
)

func (m Model) playerVisible() bool {
	return m.Snapshot.State != playback.StateIdle
}

func (m Model) playerMode() playerbar.DisplayMode {
	if m.Height >= expandedMinRow {
		return playerbar.ModeExpanded
	}
	return playerbar.ModeCompact
}

// relayout recomputes component sizes after a resize or when the player bar
// appears or disappears.
func (m *Model) relayout() {
	m.input.Width = max(m.Width-ui.BorderWidth-lipgloss.Width(m.input.Prompt)-1, 1)

	used := headerbar.Height + inputHeight + statusHeight
	if m.Prediction != nil {
		used += moodHeight
	}
	if m.playerVisible() {
		used += playerbar.Height(m.playerMode())
	}
	m.results.Resize(m.Width, max(m.Height-used, ui.BorderHeight+1))
	m.help.Resize(m.Width, m.Height)
}

// View renders the application UI.
func (m Model) View() string {
	if m.Width == 0 {
		return ""
	}
	if m.ShowHelp {
		return m.help.View()
	}

	sections := []string{
		m.renderHeader(),
		styles.PanelStyle(m.Focus == FocusInput).Width(m.Width - 2).Render(m.input.View()),
	}
	if m.Prediction != nil {
		sections = append(sections, m.renderMood())
	}
	sections = append(sections, m.results.View())
	if m.playerVisible() {
		state := playerbar.NewState(m.Snapshot, m.playerMode())
		sections = append(sections, playerbar.Render(state, m.Width))
	}
	sections = append(sections, m.renderStatus())

	return strings.Join(sections, "\n")
}

func (m Model) renderHeader() string {
	hs := headerbar.State{
		Active:     headerbar.TabRecommendations,
		Model:      m.predictModel,
		Service:    headerbar.ServiceChecking,
		ServiceMsg: m.ServiceMsg,
	}
	if m.ListMode == ListLikes {
		hs.Active = headerbar.TabLikes
	}
	switch {
	case m.serviceErr:
		hs.Service = headerbar.ServiceDown
	case m.serviceOK:
		hs.Service = headerbar.ServiceUp
	}
	return headerbar.Render(hs, m.Width)
}

func (m Model) renderMood() string {
	p := m.Prediction
	t := styles.T()

	barWidth := max(min(m.Width/3, 30), 5)
	line1 := styles.MoodTitle(p.Mood) + "  " +
		styles.ConfidenceBar(p.Mood, p.Confidence, barWidth) +
		t.S().Muted.Render(fmt.Sprintf(" %3.0f%%", p.Confidence*100))

	var parts []string
	if len(p.Genres) > 0 {
		parts = append(parts, t.S().Badge.Render(strings.Join(p.Genres, " · ")))
	}
	if p.PlaylistLink != "" {
		parts = append(parts, t.S().Subtle.Render(p.PlaylistLink))
	}
	line2 := render.TruncateEllipsis(strings.Join(parts, "   "), m.Width)
	if len(parts) == 0 {
		line2 = t.S().Subtle.Render("no genre tags")
	}

	return line1 + "\n" + line2
}

func (m Model) renderStatus() string {
	t := styles.T()
	switch {
	case m.Analyzing:
		return m.spinner.View() + t.S().Muted.Render(" Analyzing mood...")
	case m.ErrorMsg != "":
		return t.S().Error.Render(render.TruncateEllipsis(m.ErrorMsg, m.Width))
	}

	var hint string
	if m.Focus == FocusInput {
		hint = m.inputKeys.Hint(keymap.ActionAnalyze, keymap.ActionToggleModel, keymap.ActionSwitchFocus, keymap.ActionQuit)
	} else {
		hint = m.resultsKeys.Hint(keymap.ActionSelect, keymap.ActionPlayPause, keymap.ActionSeekForward,
			keymap.ActionToggleLike, keymap.ActionShowLikes, keymap.ActionHelp, keymap.ActionQuit)
	}
	return t.S().Subtle.Render(render.TruncateEllipsis(hint, m.Width))
}
