package porutham

import (
	"fmt"

	"github.com/dshills/porutham/internal/schema"
)

// Gana looks up the (girl gana, boy gana) cell of the gana matrix.
func (e *Evaluator) Gana(girl, boy schema.Chart) schema.Classification {
	g, b, err := e.nakshatraPair(girl, boy)
	if err != nil {
		return unknown(schema.RuleGana,
			"Gana porutham compares temperament groups (Deva, Manushya, Rakshasa); it could not be computed from the gana table.",
			err.Error(),
			"Each nakshatra must map to Deva, Manushya or Rakshasa.")
	}
	status, ok := e.t.Gana(g.Gana, b.Gana)
	if !ok {
		return unknown(schema.RuleGana,
			"Gana porutham could not be computed because the gana matrix has no matching cell.",
			fmt.Sprintf("Girl gana: %s. Boy gana: %s.", g.Gana, b.Gana),
			"")
	}

	var tone string
	switch status {
	case schema.StatusExcellent:
		tone = "excellent harmony and understanding"
	case schema.StatusGood:
		tone = "good compatibility and harmony"
	case schema.StatusOK:
		tone = "acceptable, though it may require understanding and adjustment"
	case schema.StatusAcceptable:
		tone = "acceptable for marriage, depending on other factors"
	default:
		tone = "likely temperamental differences; generally not recommended"
	}
	summary := fmt.Sprintf("Gana porutham: girl's %s gana with boy's %s gana is %s: %s.", g.Gana, b.Gana, status, tone)
	detail := fmt.Sprintf("Girl nakshatra %s → %s gana. Boy nakshatra %s → %s gana.",
		girl.Nakshatra, g.Gana, boy.Nakshatra, b.Gana)
	trace := fmt.Sprintf("matrix[girl %s][boy %s] = %s", g.Gana, b.Gana, status)
	return classify(schema.RuleGana, status, summary, detail, trace)
}

// Yoni compares the animal-nature groups: the same group is very good, an
// inimical pair is bad, anything else is neutral. The rule is symmetric.
func (e *Evaluator) Yoni(girl, boy schema.Chart) schema.Classification {
	g, b, err := e.nakshatraPair(girl, boy)
	if err != nil {
		return unknown(schema.RuleYoni,
			"Yoni porutham shows instinctive compatibility; it could not be computed because a nakshatra is missing from the yoni table.",
			err.Error(), "")
	}
	gy, _ := e.t.Yoni(g.Yoni)
	by, _ := e.t.Yoni(b.Yoni)

	var status schema.Status
	var relation string
	switch {
	case gy.Key == by.Key:
		status, relation = schema.StatusVeryGood, "the same yoni; instincts are very well aligned"
	case gy.Enemy == by.Key || by.Enemy == gy.Key:
		status, relation = schema.StatusBad, "an inimical yoni pair; strong friction in instincts"
	default:
		status, relation = schema.StatusNeutral, "neither the same nor enemies; neutral"
	}
	summary := fmt.Sprintf("Yoni porutham shows instinctive and physical compatibility. This pair is %s.", relation)
	detail := fmt.Sprintf("Girl nakshatra %s → %s yoni (%s), enemy %s. Boy nakshatra %s → %s yoni (%s), enemy %s.",
		girl.Nakshatra, gy.Name, gy.Animal, gy.Enemy, boy.Nakshatra, by.Name, by.Animal, by.Enemy)
	trace := fmt.Sprintf("same yoni: %t\ngirl's enemy is boy's yoni: %t\nboy's enemy is girl's yoni: %t\n→ %s",
		gy.Key == by.Key, gy.Enemy == by.Key, by.Enemy == gy.Key, status)
	return classify(schema.RuleYoni, status, summary, detail, trace)
}
