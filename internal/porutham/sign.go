package porutham

import (
	"fmt"
	"slices"

	"github.com/dshills/porutham/internal/refdata"
	"github.com/dshills/porutham/internal/schema"
)

// Rasi measures the forward distance from the girl's moon sign to the boy's.
// The same sign counts as a full circle (12).
func (e *Evaluator) Rasi(girl, boy schema.Chart) schema.Classification {
	g, gok := e.t.Rasi(girl.Rasi)
	b, bok := e.t.Rasi(boy.Rasi)
	if !gok || !bok {
		return unknown(schema.RuleRasi,
			"Rasi porutham could not be computed because one of the moon signs is not recognized.",
			fmt.Sprintf("Girl rasi: %s (%s). Boy rasi: %s (%s).",
				girl.Rasi, e.t.RasiKey(girl.Rasi), boy.Rasi, e.t.RasiKey(boy.Rasi)),
			"")
	}
	favorable := e.t.Thresholds().FavorableRasiDistances
	distance := RasiDistance(g.Index, b.Index)

	status := schema.StatusBad
	summary := fmt.Sprintf(
		"Rasi porutham checks emotional compatibility via the moon signs. Distance from girl's rasi to boy's rasi is %d, which is unfavorable and may indicate tension or ego clashes.",
		distance)
	if slices.Contains(favorable, distance) {
		status = schema.StatusGood
		summary = fmt.Sprintf(
			"Rasi porutham checks emotional compatibility via the moon signs. Distance from girl's rasi to boy's rasi is %d, which is favorable: friendship, mutual support and domestic harmony.",
			distance)
	}
	detail := fmt.Sprintf("Girl rasi: %s (index %d). Boy rasi: %s (index %d). Forward distance: %d. Favorable distances: %v.",
		girl.Rasi, g.Index, boy.Rasi, b.Index, distance, favorable)
	trace := fmt.Sprintf("distance = ((%d - %d) mod 12) + 1, same sign → 12\n= %d\n→ %s", b.Index, g.Index, distance, status)
	return classify(schema.RuleRasi, status, summary, detail, trace)
}

// RasiDistance is the inclusive forward count from sign g to sign b
// (1-based indices), with the same sign counted as 12.
func RasiDistance(g, b int) int {
	if g == b {
		return 12
	}
	return ((b-g)%12+12)%12 + 1
}

// RasiAdhipathi compares the natural relationship between the lords of both
// moon signs, in both directions.
func (e *Evaluator) RasiAdhipathi(girl, boy schema.Chart) schema.Classification {
	g, gok := e.t.Rasi(girl.Rasi)
	b, bok := e.t.Rasi(boy.Rasi)
	if !gok || !bok {
		return unknown(schema.RuleRasiAdhipathi,
			"Moon sign lords could not be determined from the rasi table.",
			fmt.Sprintf("Girl rasi: %s. Boy rasi: %s.", girl.Rasi, boy.Rasi),
			"")
	}
	gToB := e.t.Relation(g.Lord, b.Lord)
	bToG := e.t.Relation(b.Lord, g.Lord)
	status, relation := LordRelation(gToB, bToG)

	summary := fmt.Sprintf(
		"Rasi Adhipathi porutham checks the natural friendship between the lords of the moon signs. %s and %s: %s.",
		g.Lord, b.Lord, relation)
	detail := fmt.Sprintf("Girl rasi %s → lord %s. Boy rasi %s → lord %s. %s treats %s as %s; %s treats %s as %s.",
		girl.Rasi, g.Lord, boy.Rasi, b.Lord, g.Lord, b.Lord, gToB, b.Lord, g.Lord, bToG)
	trace := fmt.Sprintf("girl lord %s → %s\nboy lord %s → %s\ncombined %s\n→ %s", g.Lord, gToB, b.Lord, bToG, relation, status)
	return classify(schema.RuleRasiAdhipathi, status, summary, detail, trace)
}

// LordRelation combines the two directional views into a status and a
// relation label. Mixed pairs are order-insensitive.
func LordRelation(gToB, bToG refdata.Relation) (schema.Status, string) {
	has := func(r refdata.Relation) bool { return gToB == r || bToG == r }
	switch {
	case gToB == refdata.RelationSame:
		return schema.StatusVeryGood, "same lord"
	case gToB == refdata.RelationFriend && bToG == refdata.RelationFriend:
		return schema.StatusVeryGood, "friend-friend"
	case has(refdata.RelationFriend) && has(refdata.RelationNeutral):
		return schema.StatusGood, "friend-neutral"
	case gToB == refdata.RelationNeutral && bToG == refdata.RelationNeutral:
		return schema.StatusGood, "neutral-neutral"
	case has(refdata.RelationNeutral) && has(refdata.RelationEnemy):
		return schema.StatusAverage, "neutral-enemy"
	case has(refdata.RelationFriend) && has(refdata.RelationEnemy):
		return schema.StatusAverage, "friend-enemy (mixed)"
	default:
		return schema.StatusBad, "enemy-enemy"
	}
}

// Vasya looks up sign-to-sign attraction in the vasya matrix.
func (e *Evaluator) Vasya(girl, boy schema.Chart) schema.Classification {
	g, gok := e.t.Rasi(girl.Rasi)
	b, bok := e.t.Rasi(boy.Rasi)
	if !gok || !bok {
		return unknown(schema.RuleVasya,
			"Vasya porutham could not be computed because a rasi could not be determined.",
			fmt.Sprintf("Girl rasi: %s. Boy rasi: %s.", girl.Rasi, boy.Rasi),
			"")
	}
	status, _ := e.t.Vasya(g.Index, b.Index)

	var tone string
	switch status {
	case schema.StatusGood:
		tone = "a good combination: natural attraction and willingness to adjust"
	case schema.StatusOK:
		tone = "an acceptable combination that may require some adjustment"
	default:
		tone = "an unfavorable combination, with possible lack of mutual attraction"
	}
	summary := fmt.Sprintf("Vasya porutham: girl's %s and boy's %s form %s.", girl.Rasi, boy.Rasi, tone)
	detail := fmt.Sprintf("Girl rasi: %s. Boy rasi: %s. Vasya compatibility: %s.", girl.Rasi, boy.Rasi, status)
	trace := fmt.Sprintf("matrix[%s][%s] = %s", g.Key, b.Key, status)
	return classify(schema.RuleVasya, status, summary, detail, trace)
}
