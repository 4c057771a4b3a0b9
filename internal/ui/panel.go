// Package ui holds the layout shared by the TUI components.
package ui

const (
	// BorderHeight and BorderWidth are what a rounded panel border takes.
	BorderHeight = 2
	BorderWidth  = 2

	// ScrollMargin is the rows kept visible past the cursor.
	ScrollMargin = 2

	MinProgressBarWidth = 5
	MinExpandedWidth    = 40 // narrowest player bar that still expands
)

// Panel is the outer box the layout hands a component: its size and whether
// it has keyboard focus. Components embed it.
type Panel struct {
	width, height int
	focused       bool
}

// Resize records the size assigned by the layout, border included.
func (p *Panel) Resize(width, height int) {
	p.width = max(width, 0)
	p.height = max(height, 0)
}

func (p *Panel) SetFocused(focused bool) { p.focused = focused }

func (p Panel) IsFocused() bool { return p.focused }

func (p Panel) Width() int { return p.width }

func (p Panel) Height() int { return p.height }

// Hidden reports whether the panel has not been laid out yet.
func (p Panel) Hidden() bool {
	return p.width == 0 || p.height == 0
}

// Inner is the content area inside the border, never negative.
func (p Panel) Inner() (width, height int) {
	return max(p.width-BorderWidth, 0), max(p.height-BorderHeight, 0)
}
