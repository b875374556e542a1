// Package individual scores one chart's career, wealth and life outlook.
//
// Each domain starts at a neutral 5.0 and applies an ordered list of additive
// rules over the lagna house map, the navamsa map (career only) and the
// current dasha lord. The total is clamped to [3.5, 9.0], rounded to one
// decimal and mapped to a label band. Only the nine canonical bodies are
// consulted.
package individual

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/dshills/porutham/internal/house"
	"github.com/dshills/porutham/internal/normalize"
	"github.com/dshills/porutham/internal/schema"
)

const (
	baseline = 5.0
	floor    = 3.5
	ceiling  = 9.0
)

var (
	benefics = []schema.Body{schema.Jupiter, schema.Venus, schema.Moon, schema.Mercury}
	malefics = []schema.Body{schema.Saturn, schema.Mars, schema.Sun, schema.Rahu, schema.Ketu}
)

func isBenefic(b schema.Body) bool { return slices.Contains(benefics, b) }
func isMalefic(b schema.Body) bool { return slices.Contains(malefics, b) }
func isOther(b schema.Body) bool   { return !isBenefic(b) }

func oneOf(bodies ...schema.Body) func(schema.Body) bool {
	return func(b schema.Body) bool { return slices.Contains(bodies, b) }
}

// view is the part of a chart the rules read.
type view struct {
	houses   schema.HouseMap
	navamsa  schema.HouseMap
	lord     schema.Body
	hasLord  bool
	lordHome int // 0 when the lord is not placed
}

func newView(c schema.Chart) view {
	v := view{
		houses:  canonical(c.Houses),
		navamsa: canonical(c.Navamsa),
	}
	v.lord, v.hasLord = normalize.DashaLord(c.CurrentDasha)
	if v.hasLord {
		v.lordHome = v.houses[v.lord]
	}
	return v
}

func canonical(m schema.HouseMap) schema.HouseMap {
	out := make(schema.HouseMap, len(m))
	for b, h := range m {
		if normalize.IsCanonicalBody(b) {
			out[b] = h
		}
	}
	return out
}

// rule is one additive adjustment. apply returns the delta and the bodies
// that triggered it.
type rule struct {
	desc  string
	apply func(v view) (float64, []schema.Body)
}

// per adds weight for every body of m matching keep in houses.
func per(weight float64, keep func(schema.Body) bool, houses ...int) func(schema.HouseMap) (float64, []schema.Body) {
	return func(m schema.HouseMap) (float64, []schema.Body) {
		bs := house.Occupants(m, keep, houses...)
		return weight * float64(len(bs)), bs
	}
}

func onLagna(f func(schema.HouseMap) (float64, []schema.Body)) func(view) (float64, []schema.Body) {
	return func(v view) (float64, []schema.Body) { return f(v.houses) }
}

// lordIn adds weight when the dasha lord sits in one of houses.
func lordIn(weight float64, houses ...int) func(view) (float64, []schema.Body) {
	return func(v view) (float64, []schema.Body) {
		if v.hasLord && slices.Contains(houses, v.lordHome) {
			return weight, []schema.Body{v.lord}
		}
		return 0, nil
	}
}

// lordIs adds weight when the dasha lord is one of bodies.
func lordIs(weight float64, bodies ...schema.Body) func(view) (float64, []schema.Body) {
	return func(v view) (float64, []schema.Body) {
		if v.hasLord && slices.Contains(bodies, v.lord) {
			return weight, []schema.Body{v.lord}
		}
		return 0, nil
	}
}

var careerRules = []rule{
	{"benefics in kendras (1,4,7,10): +0.4 each", onLagna(per(0.4, isBenefic, 1, 4, 7, 10))},
	{"malefics in 1st or 10th: -0.3 each", onLagna(per(-0.3, isMalefic, 1, 10))},
	{"benefics in 10th: +0.7 each", onLagna(per(0.7, isBenefic, 10))},
	{"other bodies in 10th: +0.4 each", onLagna(per(0.4, isOther, 10))},
	{"navamsa bodies in 10th: +0.4 each", func(v view) (float64, []schema.Body) { return per(0.4, nil, 10)(v.navamsa) }},
	{"dasha lord in kendra/trikona (1,4,5,7,9,10): +0.5", lordIn(0.5, 1, 4, 5, 7, 9, 10)},
	{"dasha lord in dusthana (6,8,12): -0.7", lordIn(-0.7, 6, 8, 12)},
	{"Saturn/Rahu in 8th or 12th: -0.6 each", onLagna(per(-0.6, oneOf(schema.Saturn, schema.Rahu), 8, 12))},
}

var wealthRules = []rule{
	{"benefics in dhana houses (2,5,9,11): +0.5 each", onLagna(per(0.5, isBenefic, 2, 5, 9, 11))},
	{"Moon in 2nd or 11th: +0.4", onLagna(per(0.4, oneOf(schema.Moon), 2, 11))},
	{"Venus/Jupiter/Moon in strong houses (1,2,4,5,7,9,10,11): +0.3 each",
		onLagna(per(0.3, oneOf(schema.Venus, schema.Jupiter, schema.Moon), 1, 2, 4, 5, 7, 9, 10, 11))},
	{"malefics in 2nd or 11th: -0.4 each", onLagna(per(-0.4, isMalefic, 2, 11))},
	{"dasha lord is Venus/Jupiter/Moon: +0.3", lordIs(0.3, schema.Venus, schema.Jupiter, schema.Moon)},
	{"dasha lord in dusthana (6,8,12): -0.5", lordIn(-0.5, 6, 8, 12)},
	{"Saturn/Rahu in 8th: -0.5 each", onLagna(per(-0.5, oneOf(schema.Saturn, schema.Rahu), 8))},
}

var lifeRules = []rule{
	{"benefics in lagna: +0.6 each", onLagna(per(0.6, isBenefic, 1))},
	{"malefics in lagna: +0.1 each", onLagna(per(0.1, isMalefic, 1))},
	{"Jupiter/Venus in kendras/trikonas (1,4,5,7,9,10): +0.6 each",
		onLagna(per(0.6, oneOf(schema.Jupiter, schema.Venus), 1, 4, 5, 7, 9, 10))},
	{"malefics in dusthana (6,8,12): -0.5 each", onLagna(per(-0.5, isMalefic, 6, 8, 12))},
	{"dasha lord Jupiter/Venus: +0.4", lordIs(0.4, schema.Jupiter, schema.Venus)},
	{"dasha lord Moon: +0.2 when Moon is not in 6/8/12, else -0.2", moonDasha},
	{"dasha lord Saturn: -0.3", lordIs(-0.3, schema.Saturn)},
}

func moonDasha(v view) (float64, []schema.Body) {
	if !v.hasLord || v.lord != schema.Moon {
		return 0, nil
	}
	h, ok := v.houses[schema.Moon]
	if ok && !slices.Contains([]int{6, 8, 12}, h) {
		return 0.2, []schema.Body{schema.Moon}
	}
	return -0.2, []schema.Body{schema.Moon}
}

type band struct {
	min   float64
	label string
}

var careerBands = []band{
	{8, "Strong career potential (good long-term growth)"},
	{6, "Good/steady career potential"},
	{4, "Average, requires effort and right choices"},
	{math.Inf(-1), "Challenging career pattern"},
}

var wealthBands = []band{
	{7.5, "Exceptional / very strong wealth potential"},
	{6.0, "Strong wealth potential"},
	{4.5, "Good financial potential over time"},
	{3.0, "Average, finances depend heavily on choices"},
	{math.Inf(-1), "Financial pattern requires care"},
}

var lifeBands = []band{
	{8, "Overall life pattern looks strong with good growth potential."},
	{6, "Overall life pattern is good, with normal ups and downs."},
	{4, "Mixed life pattern, some good areas, some lessons."},
	{math.Inf(-1), "Challenging life pattern, needs conscious effort."},
}

// Label returns the band label for a domain score.
func Label(d schema.Domain, score float64) string {
	var bands []band
	switch d {
	case schema.DomainCareer:
		bands = careerBands
	case schema.DomainWealth:
		bands = wealthBands
	default:
		bands = lifeBands
	}
	for _, b := range bands {
		if score >= b.min {
			return b.label
		}
	}
	return ""
}

// Analyze scores all three domains for c.
func Analyze(c schema.Chart) schema.IndividualAnalysis {
	v := newView(c)
	out := schema.IndividualAnalysis{
		Name:   c.Name,
		Career: score(schema.DomainCareer, careerRules, v),
		Wealth: score(schema.DomainWealth, wealthRules, v),
		Life:   score(schema.DomainLife, lifeRules, v),
	}
	if v.hasLord {
		out.DashaLord = string(v.lord)
	}
	return out
}

func score(d schema.Domain, rules []rule, v view) schema.DomainScore {
	var sb strings.Builder
	lord := "Unknown"
	if v.hasLord {
		lord = string(v.lord)
		if v.lordHome > 0 {
			lord = fmt.Sprintf("%s (house %d)", v.lord, v.lordHome)
		}
	}
	fmt.Fprintf(&sb, "dasha lord: %s\n", lord)
	fmt.Fprintf(&sb, "base %.1f\n", baseline)

	total := baseline
	for _, r := range rules {
		delta, bodies := r.apply(v)
		if delta == 0 {
			continue
		}
		total += delta
		fmt.Fprintf(&sb, "%+.1f %s %v\n", delta, r.desc, bodies)
	}
	final := round1(max(floor, min(ceiling, total)))
	label := Label(d, final)
	fmt.Fprintf(&sb, "raw %.2f, clamped to [%.1f, %.1f] → %.1f\n→ %s", total, floor, ceiling, final, label)

	return schema.DomainScore{
		Domain: d,
		Score:  final,
		Label:  label,
		Trace:  sb.String(),
	}
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
