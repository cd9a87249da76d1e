package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// painter renders styled segments onto a single background color. Every
// space is painted too, otherwise the ANSI reset after a segment leaves an
// unpainted gap.
type painter struct {
	bg    lipgloss.Color
	space string
}

func newPainter(bgColor string) painter {
	bg := lipgloss.Color(bgColor)
	return painter{bg: bg, space: lipgloss.NewStyle().Background(bg).Render(" ")}
}

// text renders s in style over the painter's background.
func (p painter) text(s string, style lipgloss.Style) string {
	if s == "" {
		return ""
	}
	style = style.Background(p.bg)
	if !strings.Contains(s, " ") {
		return style.Render(s)
	}
	words := strings.Split(s, " ")
	for i, w := range words {
		if w != "" {
			words[i] = style.Render(w)
		}
	}
	return strings.Join(words, p.space)
}

// gap returns n painted spaces.
func (p painter) gap(n int) string {
	if n == 1 {
		return p.space
	}
	return strings.Repeat(p.space, max(n, 0))
}

// join concatenates rendered segments separated by n painted spaces.
func (p painter) join(segments []string, n int) string {
	return strings.Join(segments, p.gap(n))
}

// pair renders "key<sep>value" as used by the command bar and detail labels.
func (p painter) pair(key, sep, value string, keyStyle, valueStyle lipgloss.Style) string {
	return p.text(key, keyStyle) + p.text(sep, lipgloss.NewStyle()) + p.text(value, valueStyle)
}

// fill pads content with the background color out to width.
func (p painter) fill(content string, width int) string {
	return lipgloss.NewStyle().Background(p.bg).Width(width).Render(content)
}
