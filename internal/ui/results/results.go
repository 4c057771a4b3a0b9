// Package results renders a scrollable list of songs: the recommendations of
// a mood analysis or the liked songs.
package results

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/moodtune/internal/icons"
	"github.com/llehouerou/moodtune/internal/moodapi"
	"github.com/llehouerou/moodtune/internal/playback"
	"github.com/llehouerou/moodtune/internal/ui"
	"github.com/llehouerou/moodtune/internal/ui/render"
	"github.com/llehouerou/moodtune/internal/ui/styles"
)

// Item is one row of the list.
type Item struct {
	Song  moodapi.Song
	Liked bool
	Note  string // dimmed text after the artist, e.g. when a song was liked
}

// Model is the song list component.
type Model struct {
	ui.Panel
	title  string
	items  []Item
	cursor cursor

	// Active song, as last reported by the coordinator.
	active      string
	activeState playback.State
}

// New creates an empty list.
func New() Model {
	return Model{cursor: cursor{margin: ui.ScrollMargin}}
}

// SetItems replaces the list content and resets the cursor.
func (m *Model) SetItems(title string, items []Item) {
	m.title = title
	m.items = items
	m.cursor.jumpStart()
}

// Title returns the list header.
func (m Model) Title() string {
	return m.title
}

// Items returns the list content.
func (m Model) Items() []Item {
	return m.items
}

// Len returns the number of rows.
func (m Model) Len() int {
	return len(m.items)
}

// Selected returns the item under the cursor.
func (m Model) Selected() (Item, bool) {
	if len(m.items) == 0 {
		return Item{}, false
	}
	return m.items[m.cursor.pos], true
}

// Cursor returns the selected row index.
func (m Model) Cursor() int {
	return m.cursor.pos
}

// Move moves the cursor by delta rows.
func (m *Model) Move(delta int) {
	m.cursor.move(delta, len(m.items), m.listHeight())
}

// JumpStart selects the first row.
func (m *Model) JumpStart() {
	m.cursor.jumpStart()
}

// JumpEnd selects the last row.
func (m *Model) JumpEnd() {
	m.cursor.jumpEnd(len(m.items), m.listHeight())
}

// SetActive marks the coordinator's active song.
func (m *Model) SetActive(snap playback.Snapshot) {
	m.active = ""
	m.activeState = snap.State
	if snap.Song != nil {
		m.active = snap.Song.Title
	}
}

// SetLiked updates the liked flag of every row showing song.
func (m *Model) SetLiked(song moodapi.Song, liked bool) {
	for i := range m.items {
		if m.items[i].Song.Title == song.Title && m.items[i].Song.Artist == song.Artist {
			m.items[i].Liked = liked
		}
	}
}

func (m Model) listHeight() int {
	_, h := m.Inner()
	return max(h-1, 0) // minus header
}

// View renders the list inside a bordered panel.
func (m Model) View() string {
	inner, _ := m.Inner()
	if inner == 0 {
		return ""
	}
	height := m.listHeight()

	lines := make([]string, 0, height+1)
	lines = append(lines, styles.T().S().Title.Render(render.TruncateEllipsis(m.title, inner)))

	start, end := m.cursor.visibleRange(len(m.items), height)
	for i := start; i < end; i++ {
		lines = append(lines, m.renderRow(i, inner))
	}
	if len(m.items) == 0 {
		lines = append(lines, styles.T().S().Subtle.Render("No songs"))
	}
	for len(lines) < height+1 {
		lines = append(lines, "")
	}

	return styles.PanelStyle(m.IsFocused()).
		Width(inner).
		Render(strings.Join(lines[:height+1], "\n"))
}

func (m Model) renderRow(i, width int) string {
	item := m.items[i]
	isActive := m.active != "" && item.Song.Title == m.active

	marker := "  "
	if isActive {
		marker = m.activeMarker() + " "
	}

	right := ""
	if item.Liked {
		right = " " + icons.Favorite()
	}

	text := item.Song.Title
	if item.Song.Artist != "" {
		text += " · " + item.Song.Artist
	}
	if item.Note != "" {
		text += " · " + item.Note
	}
	avail := max(width-lipgloss.Width(marker)-lipgloss.Width(right)-1, 1)
	row := render.Row(marker+render.TruncateEllipsis(text, avail), right, width)

	switch {
	case i == m.cursor.pos && m.IsFocused():
		return styles.T().S().Cursor.Render(row)
	case isActive:
		return styles.T().S().Playing.Render(row)
	}
	return styles.T().S().Base.Render(row)
}

func (m Model) activeMarker() string {
	switch m.activeState {
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
	return " "
}
