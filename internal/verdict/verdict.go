// Package verdict provides the deterministic aggregation of porutham results
// and pair factors into a bounded score, a banded verdict and a narrative.
package verdict

import (
	"fmt"
	"strings"

	"github.com/dshills/porutham/internal/porutham"
	"github.com/dshills/porutham/internal/schema"
)

// Inputs is everything the aggregator reads.
type Inputs struct {
	Poruthams []schema.Classification
	Papasamya schema.PapasamyaResult
	Manglik   schema.ManglikResult
}

// Maximum points per component. The three maxima sum to 10.
const (
	maxPorutham = 6.0
	maxFactor   = 2.0
)

// PoruthamPoints averages the status grades and scales the mean to 0..6.
// An empty list scores as the neutral grade.
func PoruthamPoints(cs []schema.Classification) float64 {
	if len(cs) == 0 {
		return schema.StatusNeutral.Grade() * maxPorutham
	}
	var sum float64
	for _, c := range cs {
		sum += c.Status.Grade()
	}
	return sum / float64(len(cs)) * maxPorutham
}

// PapasamyaPoints maps a papa-point difference to 0.2..2.0.
func PapasamyaPoints(diff int) float64 {
	switch {
	case diff == 0:
		return maxFactor
	case diff <= 2:
		return 1.5
	case diff <= 4:
		return 0.7
	default:
		return 0.2
	}
}

// ManglikPoints gives full points when both or neither chart is Manglik.
func ManglikPoints(m schema.ManglikResult) float64 {
	if m.Balanced() {
		return maxFactor
	}
	return 1.0
}

// Cap is one override rule: when Applies holds, the score may not exceed
// Limit. Every predicate reads the raw inputs, never the running score.
type Cap struct {
	Name    string
	Limit   float64
	Applies func(in Inputs) bool
}

var caps = []Cap{
	{Name: "rajju_dosha", Limit: 4.5, Applies: RajjuDosha},
	{Name: "papasamya_difference", Limit: 5.0, Applies: HighPapasamya},
	{Name: "manglik_unbalanced", Limit: 6.0, Applies: func(in Inputs) bool { return !in.Manglik.Balanced() }},
	{Name: "vedha", Limit: 5.5, Applies: VedhaObstruction},
}

// Caps returns the override rules in the order they are reported.
func Caps() []Cap {
	out := make([]Cap, len(caps))
	copy(out, caps)
	return out
}

// RajjuDosha reports whether the Rajju classification is Bad.
func RajjuDosha(in Inputs) bool {
	return statusOf(in, schema.RuleRajju) == schema.StatusBad
}

// VedhaObstruction reports whether the Vedha classification is Bad.
func VedhaObstruction(in Inputs) bool {
	return statusOf(in, schema.RuleVedha) == schema.StatusBad
}

// HighPapasamya reports a papasamya difference beyond the acceptable limit.
func HighPapasamya(in Inputs) bool {
	return in.Papasamya.Difference > 2
}

func statusOf(in Inputs, rule schema.Rule) schema.Status {
	c, ok := porutham.Find(in.Poruthams, rule)
	if !ok {
		return schema.StatusUnknown
	}
	return c.Status
}

// ComputeScore sums the component points, applies every matching cap by
// minimum and clamps the result to [0, 10]. The score is not rounded.
func ComputeScore(in Inputs) (float64, schema.ScoreBreakdown) {
	b := schema.ScoreBreakdown{
		Porutham:  PoruthamPoints(in.Poruthams),
		Papasamya: PapasamyaPoints(in.Papasamya.Difference),
		Manglik:   ManglikPoints(in.Manglik),
		Caps:      []schema.AppliedCap{},
	}
	b.Base = b.Porutham + b.Papasamya + b.Manglik

	score := b.Base
	for _, c := range caps {
		if !c.Applies(in) {
			continue
		}
		b.Caps = append(b.Caps, schema.AppliedCap{Name: c.Name, Limit: c.Limit})
		score = min(score, c.Limit)
	}
	return max(0, min(10, score)), b
}

// VerdictOrdinal returns the numeric ordinal for a verdict, used to compare
// severity order. EXCELLENT=0, GOOD=1, AVERAGE=2, WEAK=3, OBSTRUCTED=4,
// BORDERLINE=5, NOT_RECOMMENDED=6.
// Used by --fail-on comparison: exit 2 if VerdictOrdinal(actual) >= VerdictOrdinal(threshold).
func VerdictOrdinal(v schema.Verdict) int {
	switch v {
	case schema.VerdictExcellent:
		return 0
	case schema.VerdictGood:
		return 1
	case schema.VerdictAverage:
		return 2
	case schema.VerdictWeak:
		return 3
	case schema.VerdictObstructed:
		return 4
	case schema.VerdictBorderline:
		return 5
	case schema.VerdictNotRecommended:
		return 6
	default:
		return -1
	}
}

// ParseVerdict resolves a verdict name case-insensitively.
func ParseVerdict(s string) (schema.Verdict, bool) {
	v := schema.Verdict(strings.ToUpper(strings.TrimSpace(s)))
	return v, VerdictOrdinal(v) >= 0
}

// DetermineVerdict applies the verdict rules.
//
// Rules (in order of precedence):
//  1. Rajju dosha → NOT_RECOMMENDED
//  2. Papasamya difference above 2 → BORDERLINE
//  3. Vedha obstruction → OBSTRUCTED
//  4. Otherwise band on score: ≥8.5 EXCELLENT, ≥7.0 GOOD, ≥5.5 AVERAGE, else WEAK
func DetermineVerdict(in Inputs, score float64) schema.Verdict {
	switch {
	case RajjuDosha(in):
		return schema.VerdictNotRecommended
	case HighPapasamya(in):
		return schema.VerdictBorderline
	case VedhaObstruction(in):
		return schema.VerdictObstructed
	case score >= 8.5:
		return schema.VerdictExcellent
	case score >= 7.0:
		return schema.VerdictGood
	case score >= 5.5:
		return schema.VerdictAverage
	default:
		return schema.VerdictWeak
	}
}

// Flag names carried on a match report.
const (
	FlagRajjuDosha        = "RAJJU_DOSHA"
	FlagVedha             = "VEDHA"
	FlagPapasamyaHigh     = "PAPASAMYA_HIGH"
	FlagManglikUnbalanced = "MANGLIK_UNBALANCED"
)

// Flags lists the cautionary conditions present in the inputs.
func Flags(in Inputs) []string {
	flags := []string{}
	if RajjuDosha(in) {
		flags = append(flags, FlagRajjuDosha)
	}
	if VedhaObstruction(in) {
		flags = append(flags, FlagVedha)
	}
	if HighPapasamya(in) {
		flags = append(flags, FlagPapasamyaHigh)
	}
	if !in.Manglik.Balanced() {
		flags = append(flags, FlagManglikUnbalanced)
	}
	return flags
}

var verdictText = map[schema.Verdict]string{
	schema.VerdictNotRecommended: "Traditional verdict: NOT RECOMMENDED as a marriage match due to Rajju dosha, even though the computed score is shown for transparency.",
	schema.VerdictBorderline:     "Traditional verdict: Borderline, often rejected in strict Kerala matching because of high Papasamya difference, even if other poruthams are supportive.",
	schema.VerdictObstructed:     "Verdict: Match has an obstruction (Vedha); many astrologers will be cautious and may accept only if other factors and individual charts are very strong.",
	schema.VerdictExcellent:      "Verdict: Excellent and safe match with strong overall compatibility.",
	schema.VerdictGood:           "Verdict: Good and generally safe match with solid long-term potential.",
	schema.VerdictAverage:        "Verdict: Average, workable match; depends on mutual understanding and maturity.",
	schema.VerdictWeak:           "Verdict: Weak match with noticeable astrological challenges; proceed only with caution.",
}

// Narrative composes the per-flag lines and the final verdict text.
func Narrative(in Inputs, score float64, v schema.Verdict) string {
	var lines []string
	lines = append(lines, fmt.Sprintf("Astro score (with Kerala caps) ≈ %.1f/10.", score))

	switch statusOf(in, schema.RuleRajju) {
	case schema.StatusBad:
		lines = append(lines, "• Rajju: Rajju dosha is present (both stars fall in the same Rajju group). In strict Kerala matching this is a serious NO for marriage, even if other poruthams look good.")
	case schema.StatusSafe:
		lines = append(lines, "• Rajju: SAFE. Bride and groom fall in different Rajju groups, so there is no Rajju dosha.")
	default:
		lines = append(lines, "• Rajju: could not be evaluated from the rajju table (status Unknown).")
	}

	switch statusOf(in, schema.RuleVedha) {
	case schema.StatusBad:
		lines = append(lines, "• Vedha: the stars form a Vedha pair (obstruction). This is a significant caution factor.")
	case schema.StatusGood:
		lines = append(lines, "• Vedha: SAFE. No obstructing Vedha pair between the nakshatras.")
	}

	d := in.Papasamya.Difference
	switch {
	case d == 0:
		lines = append(lines, fmt.Sprintf("• Papasamya: Thulya Papam (difference %d), perfectly balanced papa points.", d))
	case d <= 2:
		lines = append(lines, fmt.Sprintf("• Papasamya: Acceptable (difference %d), within the Kerala limit.", d))
	default:
		lines = append(lines, fmt.Sprintf("• Papasamya: High difference (%d), which many Kerala astrologers treat as not acceptable unless there are strong mitigating factors.", d))
	}

	m := in.Manglik
	switch {
	case m.GirlManglik && m.BoyManglik:
		lines = append(lines, "• Kuja dosha (Manglik): both are Manglik, so the dosha tends to balance in the pair.")
	case !m.GirlManglik && !m.BoyManglik:
		lines = append(lines, "• Kuja dosha (Manglik): neither chart is Manglik; no Kuja dosha issue.")
	default:
		who := "boy"
		if m.GirlManglik {
			who = "girl"
		}
		lines = append(lines, fmt.Sprintf("• Kuja dosha (Manglik): only the %s is Manglik. This is a sensitive mismatch; remedies or detailed personal analysis are recommended.", who))
	}

	lines = append(lines, "", verdictText[v])
	return strings.Join(lines, "\n")
}
