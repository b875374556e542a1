package schema_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/dshills/porutham/internal/schema"
)

func TestStatus_Grade(t *testing.T) {
	cases := []struct {
		status schema.Status
		want   float64
	}{
		{schema.StatusExcellent, 0.6},
		{schema.StatusVeryGood, 1.0},
		{schema.StatusGood, 0.85},
		{schema.StatusSafe, 0.8},
		{schema.StatusAcceptable, 0.8},
		{schema.StatusOK, 0.6},
		{schema.StatusNeutral, 0.6},
		{schema.StatusAverage, 0.6},
		{schema.StatusUnknown, 0.5},
		{schema.StatusNotPreferred, 0.6},
		{schema.StatusBad, 0.2},
		{schema.Status("Splendid"), 0.5},
	}
	for _, c := range cases {
		if got := c.status.Grade(); got != c.want {
			t.Errorf("%q.Grade() = %v, want %v", c.status, got, c.want)
		}
	}
}

// keywordGrade grades free status text by ordered keyword priority.
func keywordGrade(text string) float64 {
	s := strings.ToLower(text)
	has := func(words ...string) bool {
		for _, w := range words {
			if strings.Contains(s, w) {
				return true
			}
		}
		return false
	}
	switch {
	case has("very good"):
		return 1.0
	case has("good"):
		return 0.85
	case has("safe", "acceptable"):
		return 0.8
	case has("neutral", "average", "weak"):
		return 0.6
	case has("not present", "unknown"):
		return 0.5
	case has("bad", "enemy", "not acceptable"):
		return 0.2
	default:
		return 0.6
	}
}

func TestStatus_GradeMatchesKeywordRule(t *testing.T) {
	for _, s := range []schema.Status{
		schema.StatusExcellent, schema.StatusVeryGood, schema.StatusGood, schema.StatusSafe,
		schema.StatusAcceptable, schema.StatusOK, schema.StatusNeutral, schema.StatusAverage,
		schema.StatusNotPreferred, schema.StatusBad, schema.StatusUnknown,
	} {
		if got, want := s.Grade(), keywordGrade(string(s)); got != want {
			t.Errorf("%q.Grade() = %v, keyword rule gives %v", s, got, want)
		}
	}
}

func TestStatus_Valid(t *testing.T) {
	if !schema.StatusSafe.Valid() || !schema.StatusUnknown.Valid() {
		t.Error("declared statuses should be valid")
	}
	if schema.Status("Safe").Valid() {
		t.Error("status matching is case-sensitive; \"Safe\" should be invalid")
	}
}

func TestManglikResult_Balanced(t *testing.T) {
	cases := []struct {
		girl, boy bool
		want      bool
	}{
		{false, false, true},
		{true, true, true},
		{true, false, false},
		{false, true, false},
	}
	for _, c := range cases {
		m := schema.ManglikResult{GirlManglik: c.girl, BoyManglik: c.boy}
		if got := m.Balanced(); got != c.want {
			t.Errorf("Balanced(%v, %v) = %v, want %v", c.girl, c.boy, got, c.want)
		}
	}
}

func TestRules_Order(t *testing.T) {
	want := []schema.Rule{
		"Dina", "Gana", "Yoni", "Rasi", "Rasi Adhipathi",
		"Stree Dheergha", "Vasya", "Mahendra", "Rajju", "Vedha",
	}
	if diff := cmp.Diff(want, schema.Rules); diff != "" {
		t.Errorf("Rules mismatch (-want +got):\n%s", diff)
	}
}

func TestChart_DecodeJSONAndYAML(t *testing.T) {
	want := schema.Chart{
		Name:          "Anjali",
		Rasi:          "Mesha",
		Nakshatra:     "Ashwini",
		NakshatraPada: 2,
		CurrentDasha:  "Venus",
		Houses:        schema.HouseMap{schema.Moon: 1, schema.Venus: 4},
		Navamsa:       schema.HouseMap{schema.Moon: 7},
	}
	jsonDoc := `{"name":"Anjali","rasi":"Mesha","nakshatra":"Ashwini","nakshatra_pada":2,
		"current_dasha":"Venus","planets_from_lagna":{"Moon":1,"Venus":4},
		"navamsa_planets_from_lagna":{"Moon":7}}`
	var fromJSON schema.Chart
	if err := json.Unmarshal([]byte(jsonDoc), &fromJSON); err != nil {
		t.Fatalf("json.Unmarshal: %v", err)
	}
	if diff := cmp.Diff(want, fromJSON); diff != "" {
		t.Errorf("JSON decode mismatch (-want +got):\n%s", diff)
	}

	yamlDoc := strings.Join([]string{
		"name: Anjali",
		"rasi: Mesha",
		"nakshatra: Ashwini",
		"nakshatra_pada: 2",
		"current_dasha: Venus",
		"planets_from_lagna: {Moon: 1, Venus: 4}",
		"navamsa_planets_from_lagna: {Moon: 7}",
	}, "\n")
	var fromYAML schema.Chart
	if err := yaml.Unmarshal([]byte(yamlDoc), &fromYAML); err != nil {
		t.Fatalf("yaml.Unmarshal: %v", err)
	}
	if diff := cmp.Diff(want, fromYAML); diff != "" {
		t.Errorf("YAML decode mismatch (-want +got):\n%s", diff)
	}
}

func TestReport_JSONKeys(t *testing.T) {
	r := schema.Report{
		Tool: "porutham",
		Match: schema.MatchReport{
			Verdict:   schema.VerdictGood,
			Flags:     []string{},
			Breakdown: schema.ScoreBreakdown{Caps: []schema.AppliedCap{}},
		},
	}
	b, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("json.Marshal: %v", err)
	}
	s := string(b)
	for _, key := range []string{`"girl_analysis"`, `"boy_analysis"`, `"poruthams"`, `"caps":[]`, `"flags":[]`, `"verdict":"GOOD"`} {
		if !strings.Contains(s, key) {
			t.Errorf("JSON missing %s: %s", key, s)
		}
	}
	if strings.Contains(s, `"trace"`) {
		t.Error("empty traces should be omitted")
	}
}
