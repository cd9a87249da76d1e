package ui

import (
	"fmt"
	"strings"

	"github.com/five82/petdesk/internal/pets"
)

// renderDetailContent renders the detail pane for p.
func (m Model) renderDetailContent(p pets.Pet, width int, bgColor string) string {
	styles := m.theme.Styles().WithBackground(bgColor)
	bg := newPainter(bgColor)

	label := func(s string) string {
		return bg.text(padRight(s, 8), styles.MutedText)
	}

	var lines []string

	lines = append(lines,
		bg.text(truncate(p.Name, width), styles.Text.Bold(true)),
		m.theme.Styles().TypeBadge(p.Type).Render(strings.ToUpper(string(p.Type))),
		"",
		label("Price")+bg.text(pets.FormatPrice(p.Price), styles.WarningText),
		label("ID")+bg.text(fmt.Sprintf("#%d", p.ID), styles.Text),
		label("Image")+bg.text(truncateMiddle(pets.ResolveImage(p, m.origin), max(width-8, 10)), styles.InfoText),
	)

	if m.snapshot.IsPending(p.ID) {
		lines = append(lines, label("Status")+bg.text("Deleting...", styles.WarningText))
	}

	lines = append(lines, "", bg.text("Description", styles.AccentText.Bold(true)))
	if p.Description == "" {
		lines = append(lines, bg.text("No description available", styles.FaintText))
	} else {
		for _, line := range wrap(p.Description, width) {
			lines = append(lines, bg.text(line, styles.Text))
		}
	}

	return strings.Join(lines, "\n")
}
