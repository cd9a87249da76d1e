package ui

import (
	"strings"
	"testing"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		limit int
		want  string
	}{
		{"Buddy", 10, "Buddy"},
		{"  Buddy  ", 5, "Buddy"},
		{"Whiskers the Great", 10, "Whisker..."},
		{"abcdef", 3, "abc"},
		{"abc", 0, "abc"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.limit); got != tt.want {
			t.Fatalf("truncate(%q, %d) = %q, want %q", tt.in, tt.limit, got, tt.want)
		}
	}
}

func TestTruncateMiddle_KeepsLastSegment(t *testing.T) {
	in := "http://localhost:8000/uploads/3f2a9c1e_rex.png"
	got := truncateMiddle(in, 40)
	if n := len([]rune(got)); n != 40 {
		t.Fatalf("len = %d, want 40 (%q)", n, got)
	}
	if !strings.HasPrefix(got, "http://") || !strings.HasSuffix(got, "…/3f2a9c1e_rex.png") {
		t.Fatalf("truncateMiddle = %q, want scheme and file name kept", got)
	}
	if got := truncateMiddle("short", 40); got != "short" {
		t.Fatalf("truncateMiddle(short) = %q, want unchanged", got)
	}
}

func TestWrap(t *testing.T) {
	got := wrap("Friendly golden retriever who loves to play fetch", 16)
	want := []string{"Friendly golden", "retriever who", "loves to play", "fetch"}
	if len(got) != len(want) {
		t.Fatalf("wrap = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("wrap[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if got := wrap("   ", 10); got != nil {
		t.Fatalf("wrap(blank) = %q, want nil", got)
	}
}

func TestPadRight(t *testing.T) {
	if got := padRight("ab", 4); got != "ab  " {
		t.Fatalf("padRight = %q, want %q", got, "ab  ")
	}
	if got := padRight("abcdef", 4); got != "abcdef" {
		t.Fatalf("padRight = %q, want unchanged", got)
	}
}
