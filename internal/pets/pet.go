package pets

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Type is the category of an adoptable animal.
type Type string

const (
	TypeDog    Type = "dog"
	TypeCat    Type = "cat"
	TypeBird   Type = "bird"
	TypeRabbit Type = "rabbit"
	TypeFish   Type = "fish"
	TypeOther  Type = "other"
)

// Types lists every known category in display order.
var Types = []Type{TypeDog, TypeCat, TypeBird, TypeRabbit, TypeFish, TypeOther}

// Valid reports whether t is one of the known categories.
func (t Type) Valid() bool {
	for _, known := range Types {
		if t == known {
			return true
		}
	}
	return false
}

// ParseType maps free text onto a known category. Unknown values become TypeOther.
func ParseType(value string) Type {
	t := Type(strings.ToLower(strings.TrimSpace(value)))
	if t.Valid() {
		return t
	}
	return TypeOther
}

const unnamed = "Unnamed"

// Pet is one adoptable animal as seen by every data source.
type Pet struct {
	ID          int64
	Name        string
	Type        Type
	Price       decimal.Decimal
	Description string
	ImageURL    string
}

type wirePet struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Type        string          `json:"type"`
	Price       json.RawMessage `json:"price"`
	Description string          `json:"description"`
	ImageURL    string          `json:"image_url"`
}

// UnmarshalJSON decodes the backend/local-store shape. Prices may arrive as
// numbers or strings; anything non-numeric decodes as zero.
func (p *Pet) UnmarshalJSON(data []byte) error {
	var raw wirePet
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*p = Normalize(Pet{
		ID:          raw.ID,
		Name:        raw.Name,
		Type:        Type(raw.Type),
		Price:       parseRawPrice(raw.Price),
		Description: raw.Description,
		ImageURL:    raw.ImageURL,
	})
	return nil
}

// MarshalJSON writes the same shape UnmarshalJSON reads, with price as a number.
func (p Pet) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID          int64       `json:"id"`
		Name        string      `json:"name"`
		Type        Type        `json:"type"`
		Price       json.Number `json:"price"`
		Description string      `json:"description"`
		ImageURL    string      `json:"image_url"`
	}{
		ID:          p.ID,
		Name:        p.Name,
		Type:        p.Type,
		Price:       json.Number(p.Price.String()),
		Description: p.Description,
		ImageURL:    p.ImageURL,
	})
}

// Normalize applies the schema rules shared by API, local, and sample pets.
func Normalize(p Pet) Pet {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		p.Name = unnamed
	}
	p.Type = ParseType(string(p.Type))
	if p.Price.IsNegative() {
		p.Price = decimal.Zero
	}
	p.Description = strings.TrimSpace(p.Description)
	p.ImageURL = strings.TrimSpace(p.ImageURL)
	return p
}

// NormalizeAll returns a normalized copy of list. The result is never nil.
func NormalizeAll(list []Pet) []Pet {
	out := make([]Pet, 0, len(list))
	for _, p := range list {
		out = append(out, Normalize(p))
	}
	return out
}

// Clone returns an independent copy of list, preserving nil.
func Clone(list []Pet) []Pet {
	if list == nil {
		return nil
	}
	dup := make([]Pet, len(list))
	copy(dup, list)
	return dup
}

// ParsePrice converts typed input into a price. Non-numeric and negative
// values become zero.
func ParsePrice(value string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}

func parseRawPrice(raw json.RawMessage) decimal.Decimal {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return decimal.Zero
	}
	if trimmed[0] == '"' {
		s, err := strconv.Unquote(string(trimmed))
		if err != nil {
			return decimal.Zero
		}
		return ParsePrice(s)
	}
	return ParsePrice(string(trimmed))
}

// Upload is an image file attached to a create request.
type Upload struct {
	Filename string
	Content  []byte
}

// Input is the form payload used to create a pet.
type Input struct {
	Name        string
	Type        string
	Price       string
	Description string
	ImageURL    string
	Image       *Upload
}

// ValidationError reports a form field that cannot be submitted.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// Validate checks the form before it is handed to the collection.
func (in Input) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return &ValidationError{Field: "name", Reason: "cannot be empty"}
	}
	if !Type(strings.ToLower(strings.TrimSpace(in.Type))).Valid() {
		return &ValidationError{Field: "type", Reason: fmt.Sprintf("must be one of %s", typeList())}
	}
	price, err := decimal.NewFromString(strings.TrimSpace(in.Price))
	if err != nil {
		return &ValidationError{Field: "price", Reason: "must be a number"}
	}
	if price.IsNegative() {
		return &ValidationError{Field: "price", Reason: "cannot be negative"}
	}
	return nil
}

// Pet builds the pet this input describes under id. A missing image URL
// falls back to the default image for the type.
func (in Input) Pet(id int64) Pet {
	p := Normalize(Pet{
		ID:          id,
		Name:        in.Name,
		Type:        Type(in.Type),
		Price:       ParsePrice(in.Price),
		Description: in.Description,
		ImageURL:    in.ImageURL,
	})
	if p.ImageURL == "" {
		p.ImageURL = DefaultImage(p.Type)
	}
	return p
}

func typeList() string {
	names := make([]string, len(Types))
	for i, t := range Types {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}
