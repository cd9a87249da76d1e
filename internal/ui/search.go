package ui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

func newSearchInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "name, type or description"
	ti.Prompt = "/"
	ti.CharLimit = 64
	return ti
}

// startSearch focuses the search input, keeping any existing query.
func (m *Model) startSearch() tea.Cmd {
	m.mode = modeSearch
	m.search.SetValue(m.query)
	m.search.CursorEnd()
	return m.search.Focus()
}

// clearSearch drops the query and shows the full collection again.
func (m *Model) clearSearch() {
	m.query = ""
	m.search.SetValue("")
	m.search.Blur()
	m.mode = modeBrowse
	m.selectedRow = 0
	m.sync()
}

// handleSearchKey filters the list as the query changes. Enter keeps the
// query, esc clears it.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.clearSearch()
		return m, nil
	case "enter":
		m.search.Blur()
		m.mode = modeBrowse
		return m, nil
	case "up", "down":
		// Let the list move while typing.
		return m.handlePetsKey(msg)
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != m.query {
		m.query = m.search.Value()
		m.selectedRow = 0
		m.sync()
	}
	return m, cmd
}
