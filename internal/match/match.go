// Package match runs the full pipeline for one chart pair: the ten
// poruthams, the two pair factors, the aggregate score and verdict, and the
// individual analysis of both charts.
package match

import (
	"fmt"

	"github.com/dshills/porutham/internal/individual"
	"github.com/dshills/porutham/internal/pairfactor"
	"github.com/dshills/porutham/internal/porutham"
	"github.com/dshills/porutham/internal/refdata"
	"github.com/dshills/porutham/internal/schema"
	"github.com/dshills/porutham/internal/verdict"
)

// Tool is the name recorded on every report.
const Tool = "porutham"

// Evaluate computes the aggregate match result. It fails only when a chart
// lacks Moon or Venus (house.ErrMissingReferenceBody).
func Evaluate(t *refdata.Tables, girl, boy schema.Chart) (*schema.MatchReport, error) {
	pap, err := pairfactor.Papasamya(t, girl, boy)
	if err != nil {
		return nil, fmt.Errorf("match: %w", err)
	}
	in := verdict.Inputs{
		Poruthams: porutham.New(t).All(girl, boy),
		Papasamya: pap,
		Manglik:   pairfactor.Manglik(t, girl, boy),
	}
	score, breakdown := verdict.ComputeScore(in)
	v := verdict.DetermineVerdict(in, score)

	return &schema.MatchReport{
		Girl:      girl.Name,
		Boy:       boy.Name,
		Poruthams: in.Poruthams,
		Papasamya: in.Papasamya,
		Manglik:   in.Manglik,
		Score:     score,
		Breakdown: breakdown,
		Verdict:   v,
		Flags:     verdict.Flags(in),
		Narrative: verdict.Narrative(in, score, v),
	}, nil
}

// Options describes the run recorded in the report's input section.
type Options struct {
	Version   string
	ChartFile string
}

// Run evaluates the pair and analyzes both charts into a complete report.
func Run(t *refdata.Tables, girl, boy schema.Chart, opts Options) (*schema.Report, error) {
	m, err := Evaluate(t, girl, boy)
	if err != nil {
		return nil, err
	}
	return &schema.Report{
		Tool:    Tool,
		Version: opts.Version,
		Input: schema.Input{
			ChartFile: opts.ChartFile,
			Tables:    t.Source(),
		},
		Match: *m,
		Girl:  individual.Analyze(girl),
		Boy:   individual.Analyze(boy),
	}, nil
}
