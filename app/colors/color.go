// Package colors stores the colours of the demo application.
//
// A Store holds colours keyed by slug. Three implementations share the
// same semantics: MemoryStore for development and tests, PostgresStore on
// pgx, and S3Store keeping one JSON object per colour.
package colors

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// ErrNotFound is returned when no colour has the requested slug.
	ErrNotFound = errors.New("colors: not found")

	// ErrExists is returned when a colour with the same slug is stored.
	ErrExists = errors.New("colors: slug already exists")

	// ErrInvalidSlug is returned when a name yields an empty slug.
	ErrInvalidSlug = errors.New("colors: name has no slug characters")
)

// Color is a named colour.
type Color struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Hex       string    `json:"hex"`
	CreatedAt time.Time `json:"createdAt"`
}

// Store persists colours. Implementations are safe for concurrent use.
type Store interface {
	// List returns every colour ordered by name.
	List(ctx context.Context) ([]Color, error)

	// Get returns the colour with the given slug or ErrNotFound.
	Get(ctx context.Context, slug string) (Color, error)

	// Create stores c, or returns ErrExists when its slug is taken.
	Create(ctx context.Context, c Color) error

	// Delete removes the colour with the given slug or returns ErrNotFound.
	Delete(ctx context.Context, slug string) error
}

// New builds a colour from user input. The name is title-cased, the slug
// derived from it and the hex value normalised to lower-case "#rrggbb".
func New(name, hex string, now time.Time) (Color, error) {
	name = strings.Join(strings.Fields(name), " ")
	slug := Slugify(name)
	if slug == "" {
		return Color{}, ErrInvalidSlug
	}

	return Color{
		ID:        uuid.New(),
		Name:      cases.Title(language.English).String(name),
		Slug:      slug,
		Hex:       NormalizeHex(hex),
		CreatedAt: now.UTC(),
	}, nil
}

// Slugify folds accents, lower-cases and joins words with dashes, so
// "Bleu Céleste" becomes "bleu-celeste". The result matches the slug
// converter of the route table.
func Slugify(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	folded = cases.Lower(language.English).String(folded)

	var sb strings.Builder
	dash := false
	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if dash && sb.Len() > 0 {
				sb.WriteByte('-')
			}
			dash = false
			sb.WriteRune(r)
		default:
			dash = true
		}
	}
	return sb.String()
}

// NormalizeHex lower-cases a hex colour, adds the leading '#' and expands
// the three-digit form.
func NormalizeHex(hex string) string {
	hex = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(hex), "#"))
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	return "#" + hex
}

// Defaults returns the colours the demo starts with.
func Defaults(now time.Time) []Color {
	var out []Color
	for _, d := range []struct{ name, hex string }{
		{"Red", "#ff0000"},
		{"Green", "#00ff00"},
		{"Blue", "#0000ff"},
		{"Rebecca Purple", "#663399"},
	} {
		c, _ := New(d.name, d.hex, now)
		out = append(out, c)
	}
	return out
}

// Seed creates the default colours that are not stored yet.
func Seed(ctx context.Context, s Store, now time.Time) error {
	for _, c := range Defaults(now) {
		if err := s.Create(ctx, c); err != nil && !errors.Is(err, ErrExists) {
			return err
		}
	}
	return nil
}
