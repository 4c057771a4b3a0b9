package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"
)

type gradient struct {
	from, to lipgloss.Color
}

// moodGradients keys are the labels the prediction service returns.
var moodGradients = map[string]gradient{
	"happy":     {"#fde047", "#f97316"},
	"joy":       {"#fde047", "#f97316"},
	"sad":       {"#60a5fa", "#6366f1"},
	"sadness":   {"#60a5fa", "#6366f1"},
	"angry":     {"#f87171", "#b91c1c"},
	"anger":     {"#f87171", "#b91c1c"},
	"calm":      {"#5eead4", "#22c55e"},
	"relaxed":   {"#5eead4", "#22c55e"},
	"energetic": {"#f472b6", "#a855f7"},
	"romantic":  {"#fb7185", "#e879f9"},
	"love":      {"#fb7185", "#e879f9"},
	"anxious":   {"#fcd34d", "#a3a3a3"},
	"fear":      {"#fcd34d", "#a3a3a3"},
}

func moodGradient(mood string) gradient {
	if g, ok := moodGradients[strings.ToLower(strings.TrimSpace(mood))]; ok {
		return g
	}
	return gradient{T().Primary, T().Secondary}
}

// shade is the color of cell i out of span, blended in HCL. Endpoints that
// are not #rrggbb disable blending.
func (g gradient) shade(i, span int) lipgloss.Color {
	from, errFrom := colorful.Hex(string(g.from))
	to, errTo := colorful.Hex(string(g.to))
	switch {
	case errFrom != nil || errTo != nil || span < 2 || i <= 0:
		return g.from
	case i >= span-1:
		return g.to
	}
	t := float64(i) / float64(span-1)
	return lipgloss.Color(from.BlendHcl(to, t).Clamped().Hex())
}

// paint colors each grapheme of text by its cell offset within span.
func (g gradient) paint(text string, span int, base lipgloss.Style) string {
	var b strings.Builder
	gr := uniseg.NewGraphemes(text)
	for i := 0; gr.Next(); i++ {
		b.WriteString(base.Foreground(g.shade(i, span)).Render(gr.Str()))
	}
	return b.String()
}

// MoodColors returns the gradient endpoints for a mood label.
// Unknown moods use the theme accent colors.
func MoodColors(mood string) (from, to lipgloss.Color) {
	g := moodGradient(mood)
	return g.from, g.to
}

// MoodTitle renders a mood label in bold with its gradient.
func MoodTitle(mood string) string {
	title := strings.ToUpper(mood)
	return moodGradient(mood).paint(title, uniseg.GraphemeClusterCount(title), lipgloss.NewStyle().Bold(true))
}

// ConfidenceBar renders a width-cell bar filled to confidence (0..1). The
// gradient spans the whole width, so a low confidence only reaches the
// mood's first color.
func ConfidenceBar(mood string, confidence float64, width int) string {
	if width <= 0 {
		return ""
	}
	filled := min(max(int(confidence*float64(width)+0.5), 0), width)
	return moodGradient(mood).paint(strings.Repeat("█", filled), width, lipgloss.NewStyle()) +
		T().S().Subtle.Render(strings.Repeat("░", width-filled))
}
