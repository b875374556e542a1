package render

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/porutham/internal/schema"
)

func sampleReport() *schema.Report {
	return &schema.Report{
		Tool:    "porutham",
		Version: "0.1.0",
		Input: schema.Input{
			ChartFile: "pair.json",
			Tables:    "embedded",
		},
		Match: schema.MatchReport{
			Girl: "Anjali",
			Boy:  "Arjun",
			Poruthams: []schema.Classification{
				{Rule: schema.RuleDina, Status: schema.StatusGood, Grade: 0.85, Summary: "Tara 4 (Kshema)"},
				{Rule: schema.RuleRajju, Status: schema.StatusSafe, Grade: 0.8, Summary: "different groups"},
				{Rule: schema.RuleVedha, Status: schema.StatusBad, Grade: 0.2, Summary: "vedha pair"},
			},
			Papasamya: schema.PapasamyaResult{
				GirlTotal: 5, BoyTotal: 4, Difference: 1,
				Tier: schema.PapaAcceptable, Verdict: "Acceptable (within Kerala limit)",
			},
			Manglik: schema.ManglikResult{
				GirlManglik: true,
				Verdict:     "Kuja dosha check: girl has Manglik placement, boy does not.",
			},
			Score: 5.5,
			Breakdown: schema.ScoreBreakdown{
				Porutham: 3.7, Papasamya: 1.5, Manglik: 1.0, Base: 6.2,
				Caps: []schema.AppliedCap{{Name: "vedha", Limit: 5.5}},
			},
			Verdict:   schema.VerdictObstructed,
			Flags:     []string{"VEDHA", "MANGLIK_UNBALANCED"},
			Narrative: "Astro score (with Kerala caps) ≈ 5.5/10.\n• Vedha: obstruction.\n\nVerdict: Match has an obstruction (Vedha).",
		},
		Girl: schema.IndividualAnalysis{
			Name:      "Anjali",
			DashaLord: "Venus",
			Career:    schema.DomainScore{Domain: schema.DomainCareer, Score: 6.4, Label: "Good/steady career potential"},
			Wealth:    schema.DomainScore{Domain: schema.DomainWealth, Score: 7.6, Label: "Exceptional / very strong wealth potential"},
			Life:      schema.DomainScore{Domain: schema.DomainLife, Score: 6.1, Label: "Overall life pattern is good, with normal ups and downs."},
		},
		Boy: schema.IndividualAnalysis{
			Name:   "Arjun",
			Career: schema.DomainScore{Domain: schema.DomainCareer, Score: 3.5, Label: "Challenging career pattern"},
		},
	}
}

func TestRenderJSON_RoundTrip(t *testing.T) {
	report := sampleReport()
	b, err := RenderJSON(report)
	if err != nil {
		t.Fatalf("RenderJSON error: %v", err)
	}
	var got schema.Report
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("json.Unmarshal error: %v", err)
	}
	if diff := cmp.Diff(*report, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderJSON_PrettyPrinted(t *testing.T) {
	b, err := RenderJSON(sampleReport())
	if err != nil {
		t.Fatalf("RenderJSON error: %v", err)
	}
	s := string(b)
	if !strings.Contains(s, "\n") {
		t.Error("expected newlines in pretty-printed JSON output")
	}
	if !strings.Contains(s, `  "match"`) {
		t.Error("expected indented match key in JSON output")
	}
	if !strings.Contains(s, `"girl_analysis"`) {
		t.Error("expected girl_analysis key in JSON output")
	}
}

func TestRenderMarkdown_ContainsAllRules(t *testing.T) {
	md := RenderMarkdown(sampleReport())
	for _, rule := range []string{"Dina", "Rajju", "Vedha"} {
		if !strings.Contains(md, "| "+rule+" |") {
			t.Errorf("markdown table missing rule %q", rule)
		}
	}
}

func TestRenderMarkdown_Summary(t *testing.T) {
	md := RenderMarkdown(sampleReport())
	for _, want := range []string{
		"Anjali & Arjun",
		"**Verdict:** OBSTRUCTED",
		"**Score:** 5.5/10",
		"capped at 5.5 (vedha)",
		"**Flags:** VEDHA, MANGLIK_UNBALANCED",
		"difference 1 (ACCEPTABLE)",
		"**Manglik:** girl yes, boy no.",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
}

func TestRenderMarkdown_Individual(t *testing.T) {
	md := RenderMarkdown(sampleReport())
	if !strings.Contains(md, "| Anjali | Venus | 6.4 Good/steady career potential |") {
		t.Error("markdown missing girl's individual row")
	}
	if !strings.Contains(md, "| Arjun | - | 3.5 Challenging career pattern |") {
		t.Error("markdown missing boy's individual row with placeholder dasha")
	}
}

func TestRenderMarkdown_Narrative(t *testing.T) {
	md := RenderMarkdown(sampleReport())
	if !strings.Contains(md, "• Vedha: obstruction.  \n") {
		t.Error("narrative lines should end with a markdown line break")
	}
	if !strings.Contains(md, "Verdict: Match has an obstruction (Vedha).") {
		t.Error("markdown missing final verdict text")
	}
}

func TestRenderMarkdown_Escaping(t *testing.T) {
	report := sampleReport()
	report.Match.Poruthams[0].Summary = "before|after\nnext"
	md := RenderMarkdown(report)
	if !strings.Contains(md, `before\|after next`) {
		t.Error("pipe or newline in summary not escaped in markdown table")
	}
}

func TestRenderMarkdown_NoFlags(t *testing.T) {
	report := sampleReport()
	report.Match.Flags = nil
	if strings.Contains(RenderMarkdown(report), "**Flags:**") {
		t.Error("markdown should not contain a flags line when there are none")
	}
}

func TestRenderJSON_NilReport(t *testing.T) {
	_, err := RenderJSON(nil)
	if err == nil {
		t.Error("expected error for nil report, got nil")
	}
}

func TestRenderMarkdown_NilReport(t *testing.T) {
	if got := RenderMarkdown(nil); got != "" {
		t.Errorf("expected empty string for nil report, got %q", got)
	}
}

func TestMdEscape(t *testing.T) {
	cases := []struct{ in, want string }{
		{"no pipes", "no pipes"},
		{"a|b", `a\|b`},
		{"a|b|c", `a\|b\|c`},
		{"line\r\nbreak", "line break"},
		{"", ""},
	}
	for _, c := range cases {
		got := mdEscape(c.in)
		if got != c.want {
			t.Errorf("mdEscape(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestRenderAnalysisMarkdown(t *testing.T) {
	r := sampleReport()
	r.Girl.Career.Trace = "Base 6.0\nFinal 6.4"
	md := RenderAnalysisMarkdown([]schema.IndividualAnalysis{r.Girl, r.Boy})
	for _, want := range []string{
		"| Anjali | Venus | 6.4 Good/steady career potential |",
		"### Anjali",
		"**career:** 6.4, Good/steady career potential",
		"- Base 6.0\n- Final 6.4\n",
		"### Arjun",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("analysis markdown missing %q", want)
		}
	}
}

func TestRenderAnalysisJSON(t *testing.T) {
	r := sampleReport()
	want := []schema.IndividualAnalysis{r.Girl, r.Boy}
	b, err := RenderAnalysisJSON(want)
	if err != nil {
		t.Fatalf("RenderAnalysisJSON error: %v", err)
	}
	var got []schema.IndividualAnalysis
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("json.Unmarshal error: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}

	empty, err := RenderAnalysisJSON(nil)
	if err != nil || string(empty) != "[]" {
		t.Errorf("RenderAnalysisJSON(nil) = %q, %v; want []", empty, err)
	}
}
