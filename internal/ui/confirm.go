package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const deletePrompt = "Are you sure you want to delete this pet?"

// handleConfirmKey answers the delete confirmation.
func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Yes):
		id := m.confirmID
		m.mode = modeBrowse
		m.confirmID = 0
		if m.coll == nil || id == 0 {
			return m, nil
		}
		m.errorMsg = ""
		return m, deleteCmd(m.ctx, m.coll, id)

	case key.Matches(msg, m.keys.No):
		m.mode = modeBrowse
		m.confirmID = 0
	}
	return m, nil
}

// renderConfirm renders the delete confirmation modal.
func (m Model) renderConfirm() string {
	styles := m.theme.Styles()

	name := fmt.Sprintf("#%d", m.confirmID)
	for _, p := range m.snapshot.Pets {
		if p.ID == m.confirmID {
			name = fmt.Sprintf("%s (#%d)", p.Name, p.ID)
			break
		}
	}

	var b strings.Builder
	b.WriteString(styles.DangerText.Render("Delete " + truncate(name, 40)))
	b.WriteString("\n\n")
	b.WriteString(styles.Text.Render(deletePrompt))
	b.WriteString("\n\n")
	b.WriteString(styles.AccentText.Render("y") + styles.MutedText.Render(" delete   ") +
		styles.AccentText.Render("n") + styles.MutedText.Render(" cancel"))

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Danger)).
		Padding(1, 2)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		modal.Render(b.String()),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}
