package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/petdesk/internal/logtail"
)

func readLogsCmd(path string) tea.Cmd {
	return func() tea.Msg {
		if path == "" {
			return logLinesMsg{}
		}
		lines, err := logtail.Read(path, LogLineLimit)
		return logLinesMsg{lines: lines, err: err}
	}
}

func (m *Model) initLogViewport() {
	m.logViewport = viewport.New(max(m.width-4, 1), max(m.contentHeight()-2, 1))
	m.logViewport.Style = lipgloss.NewStyle()
}

// updateLogViewport resizes the viewport and re-renders its content.
func (m *Model) updateLogViewport() {
	if m.logViewport.Width == 0 {
		m.initLogViewport()
	}

	// Box inner = content height - 2 (top and bottom borders)
	m.logViewport.Width = max(m.width-4, 1)
	m.logViewport.Height = max(m.contentHeight()-2, 1)
	m.logViewport.Style = lipgloss.NewStyle().Background(lipgloss.Color(m.theme.FocusBg))

	atBottom := m.logViewport.AtBottom()
	m.logViewport.SetContent(m.renderLogContent())
	if atBottom {
		m.logViewport.GotoBottom()
	}
}

// handleLogLines stores a fresh tail of the log file.
func (m *Model) handleLogLines(msg logLinesMsg) {
	if msg.err != nil {
		m.errorMsg = "read log: " + msg.err.Error()
		return
	}
	m.logLines = msg.lines
	m.updateLogViewport()
}

// renderLogs renders the log view.
func (m Model) renderLogs() string {
	return m.renderTitledBox(m.logTitle(), m.logViewport.View(), m.width, m.contentHeight(), true)
}

func (m Model) logTitle() string {
	if m.logPath == "" {
		return "Activity Log"
	}
	return "Activity Log " + truncateMiddle(m.logPath, 48)
}

// renderLogContent colorizes the buffered lines by level.
func (m *Model) renderLogContent() string {
	styles := m.theme.Styles().WithBackground(m.theme.FocusBg)
	bg := newPainter(m.theme.FocusBg)

	if len(m.logLines) == 0 {
		if m.logPath == "" {
			return bg.text("Logging is not configured", styles.MutedText)
		}
		return bg.text("Nothing logged yet", styles.MutedText)
	}

	width := m.logViewport.Width
	var b strings.Builder
	for i, entry := range logtail.ParseAll(m.logLines) {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(m.colorizeEntry(entry, width, styles, bg))
	}
	return b.String()
}

// colorizeEntry renders one parsed log line.
func (m *Model) colorizeEntry(e logtail.Entry, width int, styles Styles, bg painter) string {
	if e.Level == "" {
		return bg.text(truncate(e.Raw, width), styles.Text)
	}

	ts := e.Time
	if idx := strings.Index(ts, "T"); idx >= 0 && len(ts) >= idx+9 {
		ts = ts[idx+1 : idx+9]
	}

	parts := []string{
		bg.text(ts, styles.FaintText),
		bg.text(padRight(e.Level, 5), m.getLevelStyle(e.Level, styles)),
		bg.text(e.Message, styles.Text),
	}
	line := bg.join(parts, 1)
	if e.Fields != "" {
		remaining := width - len(ts) - 5 - len([]rune(e.Message)) - 3
		if remaining > 8 {
			line += bg.gap(1) + bg.text(truncate(e.Fields, remaining), styles.MutedText)
		}
	}
	return line
}

// getLevelStyle returns the style for a log level.
func (m *Model) getLevelStyle(level string, styles Styles) lipgloss.Style {
	switch level {
	case "INFO":
		return styles.SuccessText
	case "WARN":
		return styles.WarningText
	case "ERROR":
		return styles.DangerText
	case "DEBUG":
		return styles.InfoText
	default:
		return styles.Text
	}
}

// handleLogsKey scrolls the log viewport.
func (m Model) handleLogsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "g", "home":
		m.logViewport.GotoTop()
		return m, nil
	case "G", "end":
		m.logViewport.GotoBottom()
		return m, nil
	}

	var cmd tea.Cmd
	m.logViewport, cmd = m.logViewport.Update(msg)
	return m, cmd
}
