// Package porutham implements the ten pairwise compatibility checks. Every
// check is a pure function of the two charts and the reference tables; none
// of them returns an error. Inputs that cannot be resolved against the
// tables degrade to schema.StatusUnknown with a diagnostic detail.
package porutham

import (
	"github.com/dshills/porutham/internal/refdata"
	"github.com/dshills/porutham/internal/schema"
)

// Evaluator runs porutham checks against one set of reference tables.
type Evaluator struct {
	t *refdata.Tables
}

// New returns an Evaluator bound to t.
func New(t *refdata.Tables) *Evaluator {
	return &Evaluator{t: t}
}

// Func is the shape shared by every check.
type Func func(girl, boy schema.Chart) schema.Classification

// Checks returns the checks in evaluation order.
func (e *Evaluator) Checks() []Func {
	return []Func{
		e.Dina,
		e.Gana,
		e.Yoni,
		e.Rasi,
		e.RasiAdhipathi,
		e.StreeDheergha,
		e.Vasya,
		e.Mahendra,
		e.Rajju,
		e.Vedha,
	}
}

// All evaluates every porutham in the order Dina, Gana, Yoni, Rasi,
// Rasi Adhipathi, Stree Dheergha, Vasya, Mahendra, Rajju, Vedha.
func (e *Evaluator) All(girl, boy schema.Chart) []schema.Classification {
	checks := e.Checks()
	out := make([]schema.Classification, 0, len(checks))
	for _, check := range checks {
		out = append(out, check(girl, boy))
	}
	return out
}

// Find returns the classification for rule, if present.
func Find(cs []schema.Classification, rule schema.Rule) (schema.Classification, bool) {
	for _, c := range cs {
		if c.Rule == rule {
			return c, true
		}
	}
	return schema.Classification{}, false
}

func classify(rule schema.Rule, status schema.Status, summary, detail, trace string) schema.Classification {
	return schema.Classification{
		Rule:    rule,
		Status:  status,
		Grade:   status.Grade(),
		Summary: summary,
		Detail:  detail,
		Trace:   trace,
	}
}

func unknown(rule schema.Rule, summary, detail, trace string) schema.Classification {
	return classify(rule, schema.StatusUnknown, summary, detail, trace)
}

// mod27 returns the forward step count from g to b on the 27-star wheel.
func mod27(g, b int) int {
	return ((b-g)%27 + 27) % 27
}

// nakshatraPair resolves both nakshatras or returns the first error.
func (e *Evaluator) nakshatraPair(girl, boy schema.Chart) (refdata.Nakshatra, refdata.Nakshatra, error) {
	g, err := e.t.Nakshatra(girl.Nakshatra)
	if err != nil {
		return refdata.Nakshatra{}, refdata.Nakshatra{}, err
	}
	b, err := e.t.Nakshatra(boy.Nakshatra)
	if err != nil {
		return refdata.Nakshatra{}, refdata.Nakshatra{}, err
	}
	return g, b, nil
}
