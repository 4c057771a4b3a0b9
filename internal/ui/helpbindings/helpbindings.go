// Package helpbindings renders the scrollable key binding screen.
package helpbindings

import (
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/moodtune/internal/keymap"
	"github.com/llehouerou/moodtune/internal/ui"
	"github.com/llehouerou/moodtune/internal/ui/styles"
)

// categoryOrder defines the display order of binding categories.
var categoryOrder = []string{
	"global",
	"input",
	"results",
	"playback",
}

// categoryLabels maps context names to display labels.
var categoryLabels = map[string]string{
	"global":   "Global",
	"input":    "Mood Input",
	"results":  "Song List",
	"playback": "Playback",
}

// chromeHeight is the title, the footer and the blank lines around them.
const chromeHeight = 4

// Model holds the state of the help screen.
type Model struct {
	ui.Panel
	bindings     []keymap.Binding
	scrollOffset int
}

// New creates a new help bindings model.
func New() Model {
	return Model{}
}

// SetContexts sets which binding contexts to display and scrolls to the top.
func (m *Model) SetContexts(contexts []string) {
	m.bindings = nil
	for _, ctx := range categoryOrder {
		if slices.Contains(contexts, ctx) {
			m.bindings = append(m.bindings, keymap.ByContext(ctx)...)
		}
	}
	m.scrollOffset = 0
}

// Scroll handles a scroll key and reports whether key was one.
func (m *Model) Scroll(key string) bool {
	switch key {
	case "j", "down":
		if m.scrollOffset < m.maxScroll() {
			m.scrollOffset++
		}
	case "k", "up":
		if m.scrollOffset > 0 {
			m.scrollOffset--
		}
	default:
		return false
	}
	return true
}

// View renders the help screen.
func (m Model) View() string {
	if m.Hidden() {
		return ""
	}
	t := styles.T()

	lines := strings.Split(m.buildContent(), "\n")
	start := min(m.scrollOffset, len(lines))
	end := min(start+m.visibleHeight(), len(lines))

	var b strings.Builder
	b.WriteString(t.S().Title.Render("Key bindings"))
	b.WriteString("\n\n")
	b.WriteString(strings.Join(lines[start:end], "\n"))
	b.WriteString("\n\n")
	b.WriteString(t.S().Subtle.Render(m.buildFooter()))
	return b.String()
}

func (m Model) buildContent() string {
	t := styles.T()
	keyStyle := lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
	headerStyle := lipgloss.NewStyle().Foreground(t.Secondary).Bold(true)

	// Find max key width for alignment
	maxKeyWidth := 0
	for _, b := range m.bindings {
		maxKeyWidth = max(maxKeyWidth, lipgloss.Width(keyLabel(b)))
	}

	var sb strings.Builder
	currentContext := ""
	for _, b := range m.bindings {
		if b.Context != currentContext {
			if currentContext != "" {
				sb.WriteString("\n")
			}
			label := categoryLabels[b.Context]
			if label == "" {
				label = b.Context
			}
			sb.WriteString(headerStyle.Render(label))
			sb.WriteString("\n")
			sb.WriteString(t.S().Subtle.Render(strings.Repeat("─", maxKeyWidth+15)))
			sb.WriteString("\n")
			currentContext = b.Context
		}

		label := keyLabel(b)
		sb.WriteString(keyStyle.Render(label + strings.Repeat(" ", maxKeyWidth-lipgloss.Width(label))))
		sb.WriteString("  ")
		sb.WriteString(t.S().Muted.Render(b.Description))
		sb.WriteString("\n")
	}

	return strings.TrimSuffix(sb.String(), "\n")
}

func keyLabel(b keymap.Binding) string {
	keys := make([]string, len(b.Keys))
	for i, k := range b.Keys {
		keys[i] = keymap.DisplayKey(k)
	}
	return strings.Join(keys, ", ")
}

func (m Model) buildFooter() string {
	if m.maxScroll() == 0 {
		return "any key to close"
	}
	return "j/k scroll · any other key to close"
}

func (m Model) visibleHeight() int {
	return max(m.Height()-chromeHeight, 3)
}

func (m Model) totalLines() int {
	return strings.Count(m.buildContent(), "\n") + 1
}

func (m Model) maxScroll() int {
	return max(m.totalLines()-m.visibleHeight(), 0)
}
