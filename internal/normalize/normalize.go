// Package normalize canonicalizes free-text nakshatra, rasi and body names.
package normalize

import (
	"slices"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dshills/porutham/internal/schema"
)

// Key strips every non-letter rune from s and lowercases the rest, so
// "Purva Phalguni", "purva_phalguni" and "PURVAPHALGUNI" share one key.
func Key(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) {
			sb.WriteRune(unicode.ToLower(r))
		}
	}
	return sb.String()
}

var canonicalBodies = func() map[string]schema.Body {
	m := make(map[string]schema.Body, len(schema.Bodies))
	for _, b := range schema.Bodies {
		m[strings.ToLower(string(b))] = b
	}
	return m
}()

// Body resolves a free-text planet name to its canonical form. Names outside
// the nine canonical bodies are returned title-cased instead of rejected;
// IsCanonicalBody tells the two apart.
func Body(s string) schema.Body {
	s = strings.TrimSpace(s)
	if b, ok := canonicalBodies[strings.ToLower(s)]; ok {
		return b
	}
	return schema.Body(cases.Title(language.Und).String(s))
}

// IsCanonicalBody reports whether b is one of the nine canonical bodies.
func IsCanonicalBody(b schema.Body) bool {
	c, ok := canonicalBodies[strings.ToLower(string(b))]
	return ok && c == b
}

// DashaLord resolves the leading token of a dasha description such as
// "Saturn (till 2026)" to a body. It returns false for empty text or a token
// that is not a canonical body.
func DashaLord(dasha string) (schema.Body, bool) {
	fields := strings.Fields(dasha)
	if len(fields) == 0 {
		return "", false
	}
	b := Body(fields[0])
	return b, IsCanonicalBody(b)
}

// ExtraBodies returns the non-canonical keys of m in sorted order.
func ExtraBodies(m schema.HouseMap) []schema.Body {
	var out []schema.Body
	for b := range m {
		if !IsCanonicalBody(b) {
			out = append(out, b)
		}
	}
	slices.Sort(out)
	return out
}
