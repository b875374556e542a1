package porutham

import (
	"fmt"
	"slices"

	"github.com/dshills/porutham/internal/schema"
)

// Dina (Tara) counts from the girl's star to the boy's star, inclusive, and
// reduces the count to the 9-tara cycle.
func (e *Evaluator) Dina(girl, boy schema.Chart) schema.Classification {
	g, b, err := e.nakshatraPair(girl, boy)
	if err != nil {
		return unknown(schema.RuleDina,
			"Dina (Tara) porutham shows health and day-to-day harmony; it could not be computed because a nakshatra index could not be determined.",
			err.Error(),
			"Dina counts forward from girl's star to boy's star (inclusive) and reduces the count to the 9-tara cycle.")
	}
	th := e.t.Thresholds()

	g0, b0 := g.Index-1, b.Index-1
	steps := mod27(g0, b0)
	count := steps + 1
	tara := count % 9
	if tara == 0 {
		tara = 9
	}
	taraName := th.TaraNames[tara-1]

	var status schema.Status
	var tone string
	switch {
	case slices.Contains(th.GoodTaras, tara):
		status = schema.StatusGood
		tone = "an auspicious tara indicating good compatibility, ease and prosperity"
	case slices.Contains(th.BadTaras, tara):
		status = schema.StatusBad
		tone = "an inauspicious tara that may bring obstacles or challenges"
	default:
		status = schema.StatusAverage
		tone = "a neutral tara (Janma), neither particularly auspicious nor inauspicious"
	}

	summary := fmt.Sprintf(
		"Dina (Tara) porutham shows health, daily comfort and general harmony. Count from girl to boy is %d, which reduces to Tara %d (%s): %s.",
		count, tara, taraName, tone)
	detail := fmt.Sprintf(
		"Girl nakshatra: %s (index %d). Boy nakshatra: %s (index %d). Steps (%d - %d) mod 27 = %d; count = %d; tara = %d mod 9 = %d (%s).",
		girl.Nakshatra, g.Index, boy.Nakshatra, b.Index, b0, g0, steps, count, count, tara, taraName)
	trace := fmt.Sprintf(
		"G0 = %d, B0 = %d\nsteps = (B0 - G0) mod 27 = %d\ncount = steps + 1 = %d\ntara = count mod 9 (0 → 9) = %d (%s)\ngood taras %v, bad taras %v, otherwise neutral\n→ %s",
		g0, b0, steps, count, tara, taraName, th.GoodTaras, th.BadTaras, status)
	return classify(schema.RuleDina, status, summary, detail, trace)
}

// StreeDheergha requires the boy's star to lie far enough ahead of the
// girl's, counting forward and excluding the girl's own star.
func (e *Evaluator) StreeDheergha(girl, boy schema.Chart) schema.Classification {
	g, b, err := e.nakshatraPair(girl, boy)
	if err != nil {
		return unknown(schema.RuleStreeDheergha,
			"Stree Dheergha could not be computed because a nakshatra index could not be determined.",
			err.Error(), "")
	}
	minDist := e.t.Thresholds().StreeDheerghaMin
	distance := mod27(g.Index-1, b.Index-1)

	var status schema.Status
	var summary string
	switch {
	case distance == 0:
		status = schema.StatusBad
		summary = fmt.Sprintf("Stree Dheergha: both have the same nakshatra (distance 0), failing the minimum of %d stars.", minDist)
	case distance >= minDist:
		status = schema.StatusGood
		summary = fmt.Sprintf("Stree Dheergha is present (distance from girl to boy is %d stars, at least %d), indicating emotional protection and longevity for the woman.", distance, minDist)
	default:
		status = schema.StatusBad
		summary = fmt.Sprintf("Stree Dheergha is not present (distance from girl to boy is only %d stars, below %d).", distance, minDist)
	}
	detail := fmt.Sprintf("Girl nakshatra: %s (index %d). Boy nakshatra: %s (index %d). Forward distance, excluding the girl's star: %d.",
		girl.Nakshatra, g.Index, boy.Nakshatra, b.Index, distance)
	trace := fmt.Sprintf("distance = (%d - %d) mod 27 = %d\nrule: distance ≥ %d → Good, otherwise Bad\n→ %s",
		b.Index-1, g.Index-1, distance, minDist, status)
	return classify(schema.RuleStreeDheergha, status, summary, detail, trace)
}

// Mahendra counts inclusively from the girl's star and passes on a fixed set
// of counts.
func (e *Evaluator) Mahendra(girl, boy schema.Chart) schema.Classification {
	g, b, err := e.nakshatraPair(girl, boy)
	if err != nil {
		return unknown(schema.RuleMahendra,
			"Mahendra porutham could not be computed because a nakshatra index could not be determined.",
			err.Error(), "")
	}
	counts := e.t.Thresholds().MahendraCounts
	steps := mod27(g.Index-1, b.Index-1)
	count := steps + 1

	status := schema.StatusBad
	summary := fmt.Sprintf("Mahendra porutham is not present (count = %d). Not a rejection factor if other poruthams are healthy.", count)
	if slices.Contains(counts, count) {
		status = schema.StatusGood
		summary = fmt.Sprintf("Mahendra porutham is present (count = %d), supporting prosperity and protection.", count)
	}
	detail := fmt.Sprintf("Girl nakshatra: %s (index %d). Boy nakshatra: %s (index %d). Count from girl (girl = 1): %d. Good counts: %v.",
		girl.Nakshatra, g.Index, boy.Nakshatra, b.Index, count, counts)
	trace := fmt.Sprintf("steps = (%d - %d) mod 27 = %d\ncount = steps + 1 = %d\n→ %s", b.Index-1, g.Index-1, steps, count, status)
	return classify(schema.RuleMahendra, status, summary, detail, trace)
}

// Rajju flags both stars falling in the same body-region group.
func (e *Evaluator) Rajju(girl, boy schema.Chart) schema.Classification {
	g, b, err := e.nakshatraPair(girl, boy)
	if err != nil {
		return unknown(schema.RuleRajju,
			"Rajju porutham is about the safety and longevity of marriage; it could not be evaluated from the rajju table.",
			err.Error(),
			"Each nakshatra belongs to one of Siro, Kanta, Nabhi, Kati or Pada; the same group for both is rajju dosha.")
	}
	gg, _ := e.t.RajjuGroup(g.Rajju)
	bg, _ := e.t.RajjuGroup(b.Rajju)

	status := schema.StatusSafe
	summary := fmt.Sprintf("Rajju porutham is about the structural safety of marriage. Girl and boy belong to different rajju groups (%s vs %s), so Rajju is SAFE.", gg.Name, bg.Name)
	if gg.Name == bg.Name {
		status = schema.StatusBad
		summary = fmt.Sprintf("Rajju porutham is about the structural safety of marriage. Both stars fall in the same rajju group (%s), indicating rajju dosha.", gg.Name)
	}
	detail := fmt.Sprintf("Girl nakshatra %s → %s rajju (%s). Boy nakshatra %s → %s rajju (%s).",
		girl.Nakshatra, gg.Name, gg.Region, boy.Nakshatra, bg.Name, bg.Region)
	trace := fmt.Sprintf("girl group = %s, boy group = %s\nsame group → Bad (dosha), different → SAFE\n→ %s", gg.Name, bg.Name, status)
	return classify(schema.RuleRajju, status, summary, detail, trace)
}

// Vedha flags a fixed obstruction pair, checked in both directions.
func (e *Evaluator) Vedha(girl, boy schema.Chart) schema.Classification {
	g, b, err := e.nakshatraPair(girl, boy)
	if err != nil {
		return unknown(schema.RuleVedha,
			"Vedha porutham could not be computed because a nakshatra is not in the vedha table.",
			err.Error(), "")
	}
	partner, _ := e.t.Nakshatra(g.Vedha)

	status := schema.StatusGood
	summary := fmt.Sprintf("Vedha porutham: %s and %s do not form a vedha pair; no obstruction.", girl.Nakshatra, boy.Nakshatra)
	if HasVedha(g.Key, g.Vedha, b.Key, b.Vedha) {
		status = schema.StatusBad
		summary = fmt.Sprintf("Vedha porutham: %s and %s form a vedha (obstruction) pair, a significant caution.", girl.Nakshatra, boy.Nakshatra)
	}
	detail := fmt.Sprintf("Girl nakshatra: %s. Boy nakshatra: %s. %s's vedha partner is %s.",
		girl.Nakshatra, boy.Nakshatra, girl.Nakshatra, partner.Name)
	trace := fmt.Sprintf("girl %s → partner %s\nboy %s → partner %s\n→ %s", g.Key, g.Vedha, b.Key, b.Vedha, status)
	return classify(schema.RuleVedha, status, summary, detail, trace)
}

// HasVedha reports whether either star names the other as its partner.
func HasVedha(a, aPartner, b, bPartner string) bool {
	return aPartner == b || bPartner == a
}
