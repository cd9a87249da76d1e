package pets

import "strings"

var defaultImages = map[Type]string{
	TypeDog:    "https://images.unsplash.com/photo-1552053831-71594a27632d?w=400&h=300&fit=crop",
	TypeCat:    "https://images.unsplash.com/photo-1514888286974-6d03bde4ba4?w=400&h=300&fit=crop",
	TypeBird:   "https://images.unsplash.com/photo-1519003722824-194d4455a60e?w=400&h=300&fit=crop",
	TypeRabbit: "https://images.unsplash.com/photo-1556838803-cc94986cb631?w=400&h=300&fit=crop",
	TypeFish:   "https://images.unsplash.com/photo-1544551763-46a013bb70d5?w=400&h=300&fit=crop",
	TypeOther:  "https://images.unsplash.com/photo-1550684376-efcbd6e3f031?w=400&h=300&fit=crop",
}

// DefaultImage returns the stock image for a category.
func DefaultImage(t Type) string {
	if img, ok := defaultImages[t]; ok {
		return img
	}
	return defaultImages[TypeOther]
}

// ResolveImage returns the URL a renderer should display for p. Absolute
// paths are resolved against origin; empty images use the type default.
func ResolveImage(p Pet, origin string) string {
	raw := strings.TrimSpace(p.ImageURL)
	if raw == "" {
		raw = DefaultImage(p.Type)
	}
	switch {
	case strings.HasPrefix(raw, "http"):
		return raw
	case strings.HasPrefix(raw, "/"):
		return strings.TrimRight(origin, "/") + raw
	default:
		return raw
	}
}
