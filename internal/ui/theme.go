package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/petdesk/internal/pets"
)

// Theme is a named palette for the storefront screens.
type Theme struct {
	Name string

	Background string // notice line and modal backdrop
	Surface    string // header and command bar
	SurfaceAlt string // detail pane
	FocusBg    string // pet list and log pane

	SelectionBg   string
	SelectionText string

	Border      string
	BorderFocus string

	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string // prices and the logo
	Danger  string
	Info    string

	// TypeColors tints the type column, badges and the header counters.
	TypeColors map[pets.Type]string
}

// Styles holds the text styles built from a Theme.
type Styles struct {
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style
	InfoText    lipgloss.Style

	Header lipgloss.Style
	Logo   lipgloss.Style

	typeColors map[pets.Type]string
	badgeText  string
	badgeBlank string
}

// Styles returns the lipgloss styles for t.
func (t Theme) Styles() Styles {
	fg := func(c string) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
	}
	return Styles{
		Text:        fg(t.Text),
		MutedText:   fg(t.Muted),
		FaintText:   fg(t.Faint),
		AccentText:  fg(t.Accent),
		SuccessText: fg(t.Success).Bold(true),
		WarningText: fg(t.Warning),
		DangerText:  fg(t.Danger).Bold(true),
		InfoText:    fg(t.Info),

		Header: fg(t.Text).Background(lipgloss.Color(t.Surface)).Padding(0, 1),
		Logo:   fg(t.Warning).Bold(true),

		typeColors: t.TypeColors,
		badgeText:  t.Background,
		badgeBlank: t.Muted,
	}
}

// TypeBadge returns the badge style for a pet type. Unknown types use the
// muted color.
func (s Styles) TypeBadge(t pets.Type) lipgloss.Style {
	color, ok := s.typeColors[t]
	if !ok || color == "" {
		color = s.badgeBlank
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.badgeText)).
		Background(lipgloss.Color(color)).
		Padding(0, 1)
}

// WithBackground returns a copy of s with every style painted on bgColor.
func (s Styles) WithBackground(bgColor string) Styles {
	bg := lipgloss.Color(bgColor)
	out := s
	for _, st := range []*lipgloss.Style{
		&out.Text, &out.MutedText, &out.FaintText, &out.AccentText,
		&out.SuccessText, &out.WarningText, &out.DangerText, &out.InfoText,
		&out.Header, &out.Logo,
	} {
		*st = st.Background(bg)
	}
	return out
}

var themeOrder = []string{"Nightfox", "Kanagawa", "Slate"}

var themes = map[string]Theme{
	"Nightfox": nightfoxTheme(),
	"Kanagawa": kanagawaTheme(),
	"Slate":    slateTheme(),
}

// GetTheme returns the named theme, or Nightfox when the name is unknown.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return nightfoxTheme()
}

// NextTheme returns the theme after current in the T cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// ThemeNames returns the theme names in cycle order.
func ThemeNames() []string {
	return append([]string(nil), themeOrder...)
}

// https://github.com/EdenEast/nightfox.nvim
func nightfoxTheme() Theme {
	return Theme{
		Name:       "Nightfox",
		Background: "#131a24", Surface: "#192330", SurfaceAlt: "#212e3f", FocusBg: "#29394f",
		SelectionBg: "#2b3b51", SelectionText: "#cdcecf",
		Border: "#39506d", BorderFocus: "#719cd6",
		Text: "#cdcecf", Muted: "#738091", Faint: "#71839b", Accent: "#719cd6",
		Success: "#81b29a", Warning: "#dbc074", Danger: "#c94f6d", Info: "#63cdcf",
		TypeColors: map[pets.Type]string{
			pets.TypeDog:    "#719cd6",
			pets.TypeCat:    "#f4a261",
			pets.TypeBird:   "#dbc074",
			pets.TypeRabbit: "#9d79d6",
			pets.TypeFish:   "#63cdcf",
			pets.TypeOther:  "#738091",
		},
	}
}

// https://github.com/rebelot/kanagawa.nvim
func kanagawaTheme() Theme {
	return Theme{
		Name:       "Kanagawa",
		Background: "#16161D", Surface: "#1F1F28", SurfaceAlt: "#2A2A37", FocusBg: "#2A2A37",
		SelectionBg: "#2D4F67", SelectionText: "#DCD7BA",
		Border: "#54546D", BorderFocus: "#7E9CD8",
		Text: "#DCD7BA", Muted: "#C8C093", Faint: "#727169", Accent: "#7E9CD8",
		Success: "#98BB6C", Warning: "#E6C384", Danger: "#E46876", Info: "#7FB4CA",
		TypeColors: map[pets.Type]string{
			pets.TypeDog:    "#7E9CD8",
			pets.TypeCat:    "#FFA066",
			pets.TypeBird:   "#E6C384",
			pets.TypeRabbit: "#957FB8",
			pets.TypeFish:   "#7FB4CA",
			pets.TypeOther:  "#727169",
		},
	}
}

// Tailwind slate and sky.
func slateTheme() Theme {
	return Theme{
		Name:       "Slate",
		Background: "#020617", Surface: "#0f172a", SurfaceAlt: "#1e293b", FocusBg: "#283548",
		SelectionBg: "#0284c7", SelectionText: "#f8fafc",
		Border: "#334155", BorderFocus: "#38bdf8",
		Text: "#f1f5f9", Muted: "#94a3b8", Faint: "#64748b", Accent: "#38bdf8",
		Success: "#22c55e", Warning: "#f59e0b", Danger: "#ef4444", Info: "#06b6d4",
		TypeColors: map[pets.Type]string{
			pets.TypeDog:    "#38bdf8",
			pets.TypeCat:    "#f59e0b",
			pets.TypeBird:   "#facc15",
			pets.TypeRabbit: "#a78bfa",
			pets.TypeFish:   "#06b6d4",
			pets.TypeOther:  "#64748b",
		},
	}
}
