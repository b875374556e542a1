// Package pairfactor computes the two pair factors that sit beside the
// poruthams: papasamya (papa-point balance) and Manglik (Kuja dosha).
package pairfactor

import (
	"fmt"
	"slices"
	"strings"

	"github.com/dshills/porutham/internal/house"
	"github.com/dshills/porutham/internal/refdata"
	"github.com/dshills/porutham/internal/schema"
)

// viewpoint is a reference from which papa points are counted.
type viewpoint struct {
	name string
	ref  schema.Body // empty for lagna
}

var viewpoints = []viewpoint{
	{name: "Lagna"},
	{name: "Moon", ref: schema.Moon},
	{name: "Venus", ref: schema.Venus},
}

// PapaPoints counts, over the papa bodies and the Lagna/Moon/Venus
// viewpoints, how many (body, viewpoint) placements fall in a papam house.
// The result is in 0..12 for the four-body default set. It fails with
// house.ErrMissingReferenceBody when Moon or Venus is absent.
func PapaPoints(t *refdata.Tables, c schema.Chart) (int, string, error) {
	th := t.Thresholds()
	views := make([]schema.HouseMap, len(viewpoints))
	for i, v := range viewpoints {
		if v.ref == "" {
			views[i] = c.Houses
			continue
		}
		m, err := house.Derive(c.Houses, v.ref)
		if err != nil {
			return 0, "", fmt.Errorf("pairfactor: papasamya for %s: %w", displayName(c), err)
		}
		views[i] = m
	}

	var sb strings.Builder
	total := 0
	for _, body := range th.PapaBodies {
		fmt.Fprintf(&sb, "  %-7s", body)
		for i, v := range viewpoints {
			h, ok := views[i][body]
			if !ok {
				fmt.Fprintf(&sb, " %s=-", v.name)
				continue
			}
			mark := ""
			if slices.Contains(th.PapamHouses, h) {
				total++
				mark = "*"
			}
			fmt.Fprintf(&sb, " %s=%d%s", v.name, h, mark)
		}
		sb.WriteString("\n")
	}
	fmt.Fprintf(&sb, "  total=%d", total)
	return total, sb.String(), nil
}

// Papasamya compares the papa totals of both charts.
func Papasamya(t *refdata.Tables, girl, boy schema.Chart) (schema.PapasamyaResult, error) {
	g, gTrace, err := PapaPoints(t, girl)
	if err != nil {
		return schema.PapasamyaResult{}, err
	}
	b, bTrace, err := PapaPoints(t, boy)
	if err != nil {
		return schema.PapasamyaResult{}, err
	}
	diff := g - b
	if diff < 0 {
		diff = -diff
	}
	tier := PapaTier(diff)

	var verdict string
	switch tier {
	case schema.PapaBalanced:
		verdict = "Excellent (Thulya Papam, perfectly balanced)"
	case schema.PapaAcceptable:
		verdict = "Acceptable (within Kerala limit)"
	default:
		verdict = "Not acceptable (Papasamya difference too high)"
	}

	trace := fmt.Sprintf(
		"Papam houses %v counted from Lagna, Moon and Venus (* = papam).\nGirl %s:\n%s\nBoy %s:\n%s\nDifference |%d - %d| = %d → %s",
		t.Thresholds().PapamHouses, displayName(girl), gTrace, displayName(boy), bTrace, g, b, diff, tier)

	return schema.PapasamyaResult{
		GirlTotal:  g,
		BoyTotal:   b,
		Difference: diff,
		Tier:       tier,
		Verdict:    verdict,
		Trace:      trace,
	}, nil
}

// PapaTier bands a papasamya difference: 0 balanced, up to 2 acceptable,
// anything higher not acceptable.
func PapaTier(diff int) schema.PapaTier {
	switch {
	case diff == 0:
		return schema.PapaBalanced
	case diff <= 2:
		return schema.PapaAcceptable
	default:
		return schema.PapaNotAcceptable
	}
}

// IsManglik reports whether Mars sits in a Manglik house from lagna.
func IsManglik(t *refdata.Tables, c schema.Chart) bool {
	h, ok := c.Houses[schema.Mars]
	return ok && slices.Contains(t.Thresholds().ManglikHouses, h)
}

// Manglik compares the Kuja dosha flags of both charts.
func Manglik(t *refdata.Tables, girl, boy schema.Chart) schema.ManglikResult {
	g := IsManglik(t, girl)
	b := IsManglik(t, boy)

	var verdict string
	switch {
	case g && b:
		verdict = "Kuja dosha check: both charts have Manglik-type placement, so the dosha is balanced/cancelled in Kerala logic."
	case g:
		verdict = "Kuja dosha check: girl has Manglik placement, boy does not. Needs more detailed individual analysis or remedial handling."
	case b:
		verdict = "Kuja dosha check: boy has Manglik placement, girl does not. Needs more detailed individual analysis or remedial handling."
	default:
		verdict = "Kuja dosha check: neither chart is Manglik, no Kuja dosha issue."
	}
	return schema.ManglikResult{GirlManglik: g, BoyManglik: b, Verdict: verdict}
}

func displayName(c schema.Chart) string {
	if c.Name == "" {
		return "(unnamed)"
	}
	return c.Name
}
