package ui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestPainter_KeepsSpacing(t *testing.T) {
	p := newPainter("#000000")
	style := lipgloss.NewStyle()

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"single word", p.text("Buddy", style), "Buddy"},
		{"double space", p.text("Buddy  dog", style), "Buddy  dog"},
		{"empty", p.text("", style), ""},
		{"gap", p.gap(3), "   "},
		{"join", p.join([]string{"a", "b", "c"}, 2), "a  b  c"},
		{"pair", p.pair("a", ":", "Add", style, style), "a:Add"},
	}
	for _, tt := range tests {
		if got := plain(tt.got); got != tt.want {
			t.Fatalf("%s = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestPainter_FillPadsToWidth(t *testing.T) {
	p := newPainter("#000000")
	if got := lipgloss.Width(p.fill("ok", 10)); got != 10 {
		t.Fatalf("fill width = %d, want 10", got)
	}
}
