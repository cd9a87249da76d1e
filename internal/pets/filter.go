package pets

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Filter returns the pets whose name, type, or description contains query,
// ignoring case. A blank query returns a copy of list.
func Filter(list []Pet, query string) []Pet {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return Clone(list)
	}
	out := make([]Pet, 0, len(list))
	for _, p := range list {
		if matches(p, q) {
			out = append(out, p)
		}
	}
	return out
}

func matches(p Pet, q string) bool {
	return strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(string(p.Type)), q) ||
		strings.Contains(strings.ToLower(p.Description), q)
}

// Stats aggregates a subset of pets.
type Stats struct {
	Dogs  int
	Cats  int
	Total int
	Value decimal.Decimal
}

// Summarize computes Stats over list.
func Summarize(list []Pet) Stats {
	stats := Stats{Total: len(list), Value: decimal.Zero}
	for _, p := range list {
		switch p.Type {
		case TypeDog:
			stats.Dogs++
		case TypeCat:
			stats.Cats++
		}
		if p.Price.IsPositive() {
			stats.Value = stats.Value.Add(p.Price)
		}
	}
	return stats
}

// FormatPrice renders an amount the way the storefront shows it ("$250").
func FormatPrice(d decimal.Decimal) string {
	return "$" + d.String()
}
