package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/petdesk/internal/pets"
)

// renderPets renders the pets view with split layout (list + detail).
func (m Model) renderPets() string {
	styles := m.theme.Styles()
	contentHeight := m.contentHeight()

	if len(m.snapshot.Pets) == 0 {
		return m.renderEmptyState(styles, contentHeight)
	}

	// Extra wide (>= 160): 30% list, 70% detail
	// Default: 40% list, 60% detail
	var listWidth int
	if m.width >= LayoutExtraWideWidth {
		listWidth = m.width * 30 / 100
	} else {
		listWidth = m.width * 40 / 100
	}
	detailWidth := m.width - listWidth

	// === List Pane ===
	listBg := m.theme.FocusBg
	listContent := m.renderPetList(listWidth-2, contentHeight-2, listBg)
	listPane := m.renderTitledBox(m.listTitle(), listContent, listWidth, contentHeight, true)

	// === Detail Pane ===
	detailBg := m.theme.SurfaceAlt
	var detailContent string
	if p := m.selectedPet(); p != nil {
		detailContent = m.renderDetailContent(*p, detailWidth-4, detailBg)
	} else {
		detailContent = lipgloss.NewStyle().
			Foreground(lipgloss.Color(m.theme.Muted)).
			Background(lipgloss.Color(detailBg)).
			Render("Select a pet")
	}
	detailPane := m.renderTitledBox("Details", detailContent, detailWidth, contentHeight, false)

	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

// renderEmptyState is shown when the collection itself is empty.
func (m Model) renderEmptyState(styles Styles, height int) string {
	msg := lipgloss.JoinVertical(lipgloss.Center,
		styles.Text.Bold(true).Render("No pets in store yet."),
		"",
		styles.MutedText.Render("Press ")+styles.AccentText.Render("S")+
			styles.MutedText.Render(" to load sample pets or ")+
			styles.AccentText.Render("a")+styles.MutedText.Render(" to add one"),
	)
	return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center, msg)
}

// listTitle returns the plain text title for the list pane.
func (m Model) listTitle() string {
	if m.query != "" {
		return fmt.Sprintf("Pets (%d of %d)", len(m.visible), len(m.snapshot.Pets))
	}
	return fmt.Sprintf("Pets (%d)", len(m.visible))
}

// renderPetList renders the visible pets as styled rows, scrolled so the
// selected row stays on screen.
func (m Model) renderPetList(width, height int, bgColor string) string {
	if len(m.visible) == 0 {
		msg := fmt.Sprintf("No pets match %q", m.query)
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color(m.theme.Muted)).
			Background(lipgloss.Color(bgColor)).
			Render(truncate(msg, width))
	}

	start := 0
	if height > 0 && m.selectedRow >= height {
		start = m.selectedRow - height + 1
	}
	end := len(m.visible)
	if height > 0 {
		end = min(end, start+height)
	}

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		p := m.visible[i]
		rowBg := bgColor
		selected := i == m.selectedRow
		if selected {
			rowBg = m.theme.SelectionBg
		}
		content := m.formatPetRowContent(p, width, rowBg, selected)
		lines = append(lines, lipgloss.NewStyle().
			Background(lipgloss.Color(rowBg)).
			Width(width).
			Render(content))
	}

	return strings.Join(lines, "\n")
}

// formatPetRowContent formats a pet row with inline colors.
// Format: "#ID Name · TYPE $price"
// When selected is true, uses SelectionText color for all text to ensure contrast.
func (m Model) formatPetRowContent(p pets.Pet, width int, bgColor string, selected bool) string {
	bg := newPainter(bgColor)

	idStr := fmt.Sprintf("#%d", p.ID)
	typeStr := strings.ToUpper(string(p.Type))
	priceStr := pets.FormatPrice(p.Price)
	if m.snapshot.IsPending(p.ID) {
		priceStr += " …"
	}

	separatorLen := 3 // " · "
	nameWidth := max(width-len(idStr)-len(typeStr)-len(priceStr)-separatorLen-3, 6)

	var idStyle, nameStyle, sepStyle, typeStyle, priceStyle lipgloss.Style
	if selected {
		selText := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.SelectionText))
		idStyle = selText
		nameStyle = selText.Bold(true)
		sepStyle = selText
		typeStyle = selText
		priceStyle = selText
	} else {
		styles := m.theme.Styles()
		idStyle = styles.MutedText
		nameStyle = styles.Text
		sepStyle = styles.FaintText
		typeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(m.colorForType(p.Type)))
		priceStyle = styles.WarningText
	}

	return bg.text(idStr, idStyle) + bg.gap(1) +
		bg.text(truncate(p.Name, nameWidth), nameStyle) +
		bg.text(" · ", sepStyle) +
		bg.text(typeStr, typeStyle) + bg.gap(1) +
		bg.text(priceStr, priceStyle)
}

// colorForType returns the theme color for a pet type.
func (m Model) colorForType(t pets.Type) string {
	if color, ok := m.theme.TypeColors[t]; ok {
		return color
	}
	return m.theme.Text
}

// renderTitledBox renders content in a box with the title embedded in the top border.
// Frame style: ┌─── Title ───┐
// When focused is true, uses BorderFocus color and FocusBg background.
func (m Model) renderTitledBox(title, content string, width, height int, focused bool) string {
	var borderColorStr, bgColorStr string
	if focused {
		borderColorStr = m.theme.BorderFocus
		bgColorStr = m.theme.FocusBg
	} else {
		borderColorStr = m.theme.Border
		bgColorStr = m.theme.SurfaceAlt
	}
	bg := newPainter(bgColorStr)
	borderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(borderColorStr))
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.Text))

	// Build the top border with embedded title
	innerWidth := max(width-2, 0) // Account for left and right border chars
	title = truncate(title, max(innerWidth-4, 1))
	titleLen := len([]rune(title))
	leftPad := max((innerWidth-titleLen-2)/2, 0) // -2 for spaces around title
	rightPad := max(innerWidth-titleLen-2-leftPad, 0)

	topBorder := bg.text("┌", borderStyle) +
		bg.text(strings.Repeat("─", leftPad), borderStyle) +
		bg.text(" "+title+" ", titleStyle) +
		bg.text(strings.Repeat("─", rightPad), borderStyle) +
		bg.text("┐", borderStyle)

	bottomBorder := bg.text("└", borderStyle) +
		bg.text(strings.Repeat("─", innerWidth), borderStyle) +
		bg.text("┘", borderStyle)

	contentStyle := lipgloss.NewStyle().Width(innerWidth).MaxWidth(innerWidth).Background(lipgloss.Color(bgColorStr))

	contentLines := strings.Split(content, "\n")
	boxHeight := height - 2 // -2 for top and bottom borders

	paddedLines := make([]string, 0, max(boxHeight, 0))
	for i := 0; i < boxHeight; i++ {
		var line string
		if i < len(contentLines) {
			line = contentLines[i]
		}
		paddedLines = append(paddedLines,
			bg.text("│", borderStyle)+
				contentStyle.Render(line)+
				bg.text("│", borderStyle))
	}

	return topBorder + "\n" + strings.Join(paddedLines, "\n") + "\n" + bottomBorder
}
