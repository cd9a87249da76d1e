package pets

import "github.com/shopspring/decimal"

// Samples returns the demonstration dataset shown when the backend cannot be
// reached. Every call returns a fresh slice.
func Samples() []Pet {
	return NormalizeAll([]Pet{
		{
			ID:          1,
			Name:        "Buddy",
			Type:        TypeDog,
			Price:       decimal.NewFromInt(250),
			Description: "Friendly golden retriever who loves playing fetch",
			ImageURL:    "/static/images/Fluffydog.jpeg",
		},
		{
			ID:          2,
			Name:        "Whiskers",
			Type:        TypeCat,
			Price:       decimal.NewFromInt(150),
			Description: "Playful ginger cat, great with children",
			ImageURL:    "/static/images/Gingercat.jpeg",
		},
		{
			ID:          3,
			Name:        "Max",
			Type:        TypeDog,
			Price:       decimal.NewFromInt(300),
			Description: "Energetic husky dog, needs active family",
			ImageURL:    "/static/images/Huskydog.jpeg",
		},
		{
			ID:          4,
			Name:        "Tweety",
			Type:        TypeBird,
			Price:       decimal.NewFromInt(75),
			Description: "Colorful parakeet that loves to sing",
			ImageURL:    DefaultImage(TypeBird),
		},
		{
			ID:          5,
			Name:        "Hopper",
			Type:        TypeRabbit,
			Price:       decimal.NewFromInt(60),
			Description: "Fluffy bunny, very gentle and calm",
			ImageURL:    DefaultImage(TypeRabbit),
		},
	})
}
