package individual

import (
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/porutham/internal/schema"
)

func sampleChart() schema.Chart {
	return schema.Chart{
		Name:         "Sample",
		CurrentDasha: "Jupiter (till 2030)",
		Houses: schema.HouseMap{
			schema.Sun:     10,
			schema.Moon:    4,
			schema.Mars:    3,
			schema.Mercury: 10,
			schema.Jupiter: 1,
			schema.Venus:   11,
			schema.Saturn:  8,
			schema.Rahu:    12,
			schema.Ketu:    6,
		},
		Navamsa: schema.HouseMap{
			schema.Sun:   10,
			schema.Venus: 10,
			schema.Moon:  2,
		},
	}
}

func TestAnalyze(t *testing.T) {
	got := Analyze(sampleChart())
	cases := []struct {
		d     schema.DomainScore
		score float64
		label string
	}{
		{got.Career, 7.1, "Good/steady career potential"},
		{got.Wealth, 6.2, "Strong wealth potential"},
		{got.Life, 5.1, "Mixed life pattern, some good areas, some lessons."},
	}
	for _, c := range cases {
		if c.d.Score != c.score {
			t.Errorf("%s score = %v, want %v\n%s", c.d.Domain, c.d.Score, c.score, c.d.Trace)
		}
		if c.d.Label != c.label {
			t.Errorf("%s label = %q, want %q", c.d.Domain, c.d.Label, c.label)
		}
	}
	if got.DashaLord != "Jupiter" {
		t.Errorf("DashaLord = %q, want Jupiter", got.DashaLord)
	}
	if !strings.Contains(got.Career.Trace, "dasha lord: Jupiter (house 1)") {
		t.Errorf("career trace missing dasha lord line:\n%s", got.Career.Trace)
	}
}

func TestAnalyze_Clamped(t *testing.T) {
	weak := schema.Chart{
		CurrentDasha: "Saturn",
		Houses: schema.HouseMap{
			schema.Sun:    6,
			schema.Mars:   8,
			schema.Saturn: 8,
			schema.Rahu:   12,
			schema.Ketu:   6,
		},
	}
	got := Analyze(weak)
	if got.Career.Score != 3.5 || got.Career.Label != "Challenging career pattern" {
		t.Errorf("career = %v %q, want 3.5 Challenging", got.Career.Score, got.Career.Label)
	}
	if got.Wealth.Score != 4.0 || got.Wealth.Label != "Average, finances depend heavily on choices" {
		t.Errorf("wealth = %v %q, want 4.0 Average", got.Wealth.Score, got.Wealth.Label)
	}
	if got.Life.Score != 3.5 || got.Life.Label != "Challenging life pattern, needs conscious effort." {
		t.Errorf("life = %v %q, want 3.5 Challenging", got.Life.Score, got.Life.Label)
	}

	strong := schema.Chart{
		Houses: schema.HouseMap{
			schema.Jupiter: 10,
			schema.Venus:   10,
			schema.Moon:    10,
			schema.Mercury: 10,
		},
		Navamsa: schema.HouseMap{},
	}
	for _, b := range schema.Bodies {
		strong.Navamsa[b] = 10
	}
	if got := Analyze(strong).Career.Score; got != 9.0 {
		t.Errorf("strong career = %v, want 9.0", got)
	}
}

func TestAnalyze_MoonDasha(t *testing.T) {
	cases := []struct {
		moon int
		want float64
	}{
		{4, 5.2},
		{8, 4.8},
	}
	for _, c := range cases {
		ch := schema.Chart{
			CurrentDasha: "Moon",
			Houses:       schema.HouseMap{schema.Moon: c.moon},
		}
		if got := Analyze(ch).Life.Score; got != c.want {
			t.Errorf("Moon dasha with Moon in %d: life = %v, want %v", c.moon, got, c.want)
		}
	}
}

func TestAnalyze_IgnoresExtraBodies(t *testing.T) {
	base := Analyze(sampleChart())
	extra := sampleChart()
	extra.Houses["Uranus"] = 10
	extra.Houses["Neptune"] = 1
	extra.Navamsa["Pluto"] = 10
	got := Analyze(extra)
	for _, pair := range [][2]schema.DomainScore{
		{base.Career, got.Career},
		{base.Wealth, got.Wealth},
		{base.Life, got.Life},
	} {
		if pair[0].Score != pair[1].Score {
			t.Errorf("%s changed with extra bodies: %v → %v", pair[0].Domain, pair[0].Score, pair[1].Score)
		}
	}
}

func TestAnalyze_UnknownDasha(t *testing.T) {
	ch := sampleChart()
	ch.CurrentDasha = "Pluto"
	got := Analyze(ch)
	if got.DashaLord != "" {
		t.Errorf("DashaLord = %q, want empty", got.DashaLord)
	}
	if got.Career.Score != 6.6 {
		t.Errorf("career without dasha = %v, want 6.6", got.Career.Score)
	}
}

func TestAnalyze_Bounds(t *testing.T) {
	r := rand.New(rand.NewSource(17))
	lords := append([]schema.Body{""}, schema.Bodies...)
	for i := 0; i < 1000; i++ {
		ch := schema.Chart{
			Houses:       schema.HouseMap{},
			Navamsa:      schema.HouseMap{},
			CurrentDasha: string(lords[r.Intn(len(lords))]),
		}
		for _, b := range schema.Bodies {
			ch.Houses[b] = r.Intn(12) + 1
			ch.Navamsa[b] = r.Intn(12) + 1
		}
		a := Analyze(ch)
		for _, d := range []schema.DomainScore{a.Career, a.Wealth, a.Life} {
			if d.Score < 3.5 || d.Score > 9.0 {
				t.Fatalf("%s score %v outside [3.5, 9.0]", d.Domain, d.Score)
			}
			if x := d.Score * 10; math.Abs(x-math.Round(x)) > 1e-9 {
				t.Fatalf("%s score %v not rounded to one decimal", d.Domain, d.Score)
			}
			if d.Label != Label(d.Domain, d.Score) {
				t.Fatalf("%s label %q does not match band for %v", d.Domain, d.Label, d.Score)
			}
		}
	}
}

func TestLabel(t *testing.T) {
	cases := []struct {
		d     schema.Domain
		score float64
		want  string
	}{
		{schema.DomainCareer, 8.0, "Strong career potential (good long-term growth)"},
		{schema.DomainCareer, 7.9, "Good/steady career potential"},
		{schema.DomainCareer, 4.0, "Average, requires effort and right choices"},
		{schema.DomainCareer, 3.9, "Challenging career pattern"},
		{schema.DomainWealth, 7.5, "Exceptional / very strong wealth potential"},
		{schema.DomainWealth, 6.0, "Strong wealth potential"},
		{schema.DomainWealth, 4.5, "Good financial potential over time"},
		{schema.DomainWealth, 3.5, "Average, finances depend heavily on choices"},
		{schema.DomainWealth, 2.9, "Financial pattern requires care"},
		{schema.DomainLife, 9.0, "Overall life pattern looks strong with good growth potential."},
		{schema.DomainLife, 6.0, "Overall life pattern is good, with normal ups and downs."},
	}
	for _, c := range cases {
		if got := Label(c.d, c.score); got != c.want {
			t.Errorf("Label(%s, %v) = %q, want %q", c.d, c.score, got, c.want)
		}
	}
}

func TestRulesAreOrdered(t *testing.T) {
	var got []string
	for _, r := range careerRules {
		got = append(got, r.desc)
	}
	want := []string{
		"benefics in kendras (1,4,7,10): +0.4 each",
		"malefics in 1st or 10th: -0.3 each",
		"benefics in 10th: +0.7 each",
		"other bodies in 10th: +0.4 each",
		"navamsa bodies in 10th: +0.4 each",
		"dasha lord in kendra/trikona (1,4,5,7,9,10): +0.5",
		"dasha lord in dusthana (6,8,12): -0.7",
		"Saturn/Rahu in 8th or 12th: -0.6 each",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("career rules mismatch (-want +got):\n%s", diff)
	}
}
