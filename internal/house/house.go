// Package house re-projects lagna-relative house maps onto other reference
// bodies. Views "from Moon" or "from Venus" are always derived here, never
// stored on a chart.
package house

import (
	"errors"
	"fmt"
	"slices"

	"github.com/dshills/porutham/internal/schema"
)

// ErrMissingReferenceBody is returned when the reference body for a
// re-projection is absent from the house map.
var ErrMissingReferenceBody = errors.New("house: missing reference body")

// Derive computes, for every body P in fromLagna,
//
//	house_from_ref(P) = ((house_from_lagna(P) - house_from_lagna(ref)) mod 12) + 1
//
// The reference body itself always lands in house 1.
func Derive(fromLagna schema.HouseMap, ref schema.Body) (schema.HouseMap, error) {
	refHouse, ok := fromLagna[ref]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingReferenceBody, ref)
	}
	out := make(schema.HouseMap, len(fromLagna))
	for body, h := range fromLagna {
		out[body] = Mod(h-refHouse, 12) + 1
	}
	return out, nil
}

// Mod returns a mod n in [0, n), also for negative a.
func Mod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}

// Occupants returns the bodies of m that sit in any of houses, sorted by
// name. A nil filter keeps every body.
func Occupants(m schema.HouseMap, keep func(schema.Body) bool, houses ...int) []schema.Body {
	var out []schema.Body
	for body, h := range m {
		if keep != nil && !keep(body) {
			continue
		}
		if slices.Contains(houses, h) {
			out = append(out, body)
		}
	}
	slices.Sort(out)
	return out
}

// Valid reports whether h is a house number.
func Valid(h int) bool {
	return h >= 1 && h <= 12
}
