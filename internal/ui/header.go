package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/petdesk/internal/pets"
	"github.com/five82/petdesk/internal/state"
)

// renderHeader renders the status bar with the storefront statistics.
func (m Model) renderHeader() string {
	// Header uses Surface background
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := newPainter(m.theme.Surface)

	parts := []string{bg.text("petdesk", styles.Logo)}

	switch {
	case m.snapshot.Source == state.SourceNone:
		parts = append(parts, bg.text("Connecting...", styles.WarningText.Bold(true)))
	case m.snapshot.Offline:
		parts = append(parts, bg.text("● OFFLINE", styles.DangerText))
	default:
		parts = append(parts, bg.text("● ONLINE", styles.SuccessText))
	}

	parts = append(parts, m.buildStatsContent(styles, bg))

	if label := sourceLabel(m.snapshot.Source); label != "" && m.width >= LayoutCompactWidth {
		parts = append(parts,
			bg.text("Source:", styles.MutedText)+bg.gap(1)+bg.text(label, styles.InfoText))
	}

	if !m.snapshot.LastUpdated.IsZero() {
		parts = append(parts, bg.text(m.snapshot.LastUpdated.Format("15:04:05"), styles.MutedText))
	}

	return styles.Header.Width(m.width).Render(bg.join(parts, 2))
}

// buildStatsContent renders the counters for the visible subset.
func (m Model) buildStatsContent(styles Styles, bg painter) string {
	dot := bg.gap(1) + bg.text("•", styles.FaintText) + bg.gap(1)
	stat := func(value, label string, style lipgloss.Style) string {
		return bg.text(value, style) + bg.gap(1) + bg.text(label, styles.MutedText)
	}

	dogStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.TypeColors[pets.TypeDog]))
	catStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.TypeColors[pets.TypeCat]))

	return stat(fmt.Sprintf("%d", m.stats.Dogs), "Dogs", dogStyle) + dot +
		stat(fmt.Sprintf("%d", m.stats.Cats), "Cats", catStyle) + dot +
		stat(fmt.Sprintf("%d", m.stats.Total), "Total", styles.Text.Bold(true)) + dot +
		stat(pets.FormatPrice(m.stats.Value), "Value", styles.WarningText)
}

func sourceLabel(src state.Source) string {
	switch src {
	case state.SourceBackend:
		return "backend"
	case state.SourceSamples:
		return "sample data"
	case state.SourceLocal:
		return "local storage"
	default:
		return ""
	}
}

// renderCommandBar renders the command hints bar.
func (m Model) renderCommandBar() string {
	// Command bar uses Surface background
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := newPainter(m.theme.Surface)

	if m.mode == modeSearch {
		return styles.Header.Width(m.width).Render(
			bg.text("Search", styles.AccentText.Bold(true)) + bg.gap(1) + m.search.View())
	}

	type cmd struct{ key, desc string }
	var commands []cmd

	switch m.currentView {
	case ViewLogs:
		commands = []cmd{
			{"j/k", "Scroll"},
			{"g/G", "Top/Bottom"},
			{"l", "Pets"},
			{"esc", "Back"},
			{"?", "More"},
		}
	default: // ViewPets
		commands = []cmd{
			{"/", "Search"},
			{"a", "Add"},
			{"d", "Delete"},
			{"r", "Reload"},
			{"S", "Samples"},
			{"j/k", "Navigate"},
			{"l", "Log"},
			{"?", "More"},
		}
	}

	segments := make([]string, 0, len(commands)+2)
	for _, c := range commands {
		segments = append(segments,
			bg.pair(c.key, ":", c.desc, styles.AccentText, styles.MutedText))
	}

	// Show the active search query
	if m.currentView == ViewPets && m.query != "" {
		segments = append(segments, bg.text("/"+truncate(m.query, 18), styles.AccentText))
	}

	// Add theme indicator
	segments = append(segments,
		bg.pair("T", ":", m.theme.Name, styles.AccentText, styles.FaintText))

	return styles.Header.Width(m.width).Render(bg.join(segments, 2))
}

// renderNotices renders the active notices on a single line, colored by kind.
func (m Model) renderNotices() string {
	styles := m.theme.Styles().WithBackground(m.theme.Background)
	bg := newPainter(m.theme.Background)

	var parts []string
	for _, n := range m.snapshot.Notices {
		switch n.Kind {
		case state.NoticeLoading:
			parts = append(parts, bg.text("… "+n.Message, styles.InfoText))
		case state.NoticeError:
			parts = append(parts, bg.text("✗ "+n.Message, styles.DangerText))
		case state.NoticeSuccess:
			parts = append(parts, bg.text("✓ "+n.Message, styles.SuccessText))
		}
	}
	if m.errorMsg != "" {
		parts = append(parts, bg.text("! "+truncate(m.errorMsg, 80), styles.WarningText.Bold(true)))
	}

	return bg.fill(bg.join(parts, 3), m.width)
}
