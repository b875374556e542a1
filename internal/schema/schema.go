// Package schema defines all canonical data types for chart input and the
// porutham match output format.
package schema

// Body is a canonical planet (graha) name used as a house-map key.
type Body string

const (
	Sun     Body = "Sun"
	Moon    Body = "Moon"
	Mars    Body = "Mars"
	Mercury Body = "Mercury"
	Jupiter Body = "Jupiter"
	Venus   Body = "Venus"
	Saturn  Body = "Saturn"
	Rahu    Body = "Rahu"
	Ketu    Body = "Ketu"
)

// Bodies lists the nine canonical bodies in traditional order.
var Bodies = []Body{Sun, Moon, Mars, Mercury, Jupiter, Venus, Saturn, Rahu, Ketu}

// HouseMap maps a body to the house (1..12) it occupies.
type HouseMap map[Body]int

// Chart is one person's birth-chart record. Name, DOB, TOB and Place are
// carried through untouched; the engine never interprets them.
type Chart struct {
	Name          string   `json:"name" yaml:"name"`
	DOB           string   `json:"dob" yaml:"dob"`
	TOB           string   `json:"tob" yaml:"tob"`
	Place         string   `json:"place" yaml:"place"`
	Rasi          string   `json:"rasi" yaml:"rasi"`
	Nakshatra     string   `json:"nakshatra" yaml:"nakshatra"`
	NakshatraPada int      `json:"nakshatra_pada" yaml:"nakshatra_pada"`
	Lagna         string   `json:"lagna" yaml:"lagna"`
	CurrentDasha  string   `json:"current_dasha" yaml:"current_dasha"`
	Houses        HouseMap `json:"planets_from_lagna" yaml:"planets_from_lagna"`
	Navamsa       HouseMap `json:"navamsa_planets_from_lagna" yaml:"navamsa_planets_from_lagna"`
}

// Rule names one porutham check.
type Rule string

const (
	RuleDina          Rule = "Dina"
	RuleGana          Rule = "Gana"
	RuleYoni          Rule = "Yoni"
	RuleRasi          Rule = "Rasi"
	RuleRasiAdhipathi Rule = "Rasi Adhipathi"
	RuleStreeDheergha Rule = "Stree Dheergha"
	RuleVasya         Rule = "Vasya"
	RuleMahendra      Rule = "Mahendra"
	RuleRajju         Rule = "Rajju"
	RuleVedha         Rule = "Vedha"
)

// Rules lists every porutham in evaluation order.
var Rules = []Rule{
	RuleDina, RuleGana, RuleYoni, RuleRasi, RuleRasiAdhipathi,
	RuleStreeDheergha, RuleVasya, RuleMahendra, RuleRajju, RuleVedha,
}

// Status is the classification outcome of a porutham. The set is closed;
// each variant carries a fixed grade (see Grade).
type Status string

const (
	StatusExcellent    Status = "Excellent"
	StatusVeryGood     Status = "Very Good"
	StatusGood         Status = "Good"
	StatusSafe         Status = "SAFE"
	StatusAcceptable   Status = "Acceptable"
	StatusOK           Status = "OK"
	StatusNeutral      Status = "Neutral"
	StatusAverage      Status = "Average"
	StatusNotPreferred Status = "Not Preferred"
	StatusBad          Status = "Bad"
	StatusUnknown      Status = "Unknown"
)

// Grade returns the numeric quality in [0, 1] attached to the status.
// Excellent and Not Preferred carry no grading keyword and take the neutral
// 0.6. Values outside the closed set grade as Unknown.
func (s Status) Grade() float64 {
	switch s {
	case StatusVeryGood:
		return 1.0
	case StatusGood:
		return 0.85
	case StatusSafe, StatusAcceptable:
		return 0.8
	case StatusExcellent, StatusOK, StatusNeutral, StatusAverage, StatusNotPreferred:
		return 0.6
	case StatusBad:
		return 0.2
	default:
		return 0.5
	}
}

// Valid reports whether s is one of the declared status constants.
func (s Status) Valid() bool {
	switch s {
	case StatusExcellent, StatusVeryGood, StatusGood, StatusSafe, StatusAcceptable,
		StatusOK, StatusNeutral, StatusAverage, StatusNotPreferred, StatusBad, StatusUnknown:
		return true
	}
	return false
}

// Classification is the result of one porutham evaluation.
type Classification struct {
	Rule    Rule    `json:"rule"`
	Status  Status  `json:"status"`
	Grade   float64 `json:"grade"`
	Summary string  `json:"summary"`
	Detail  string  `json:"detail"`
	Trace   string  `json:"trace,omitempty"`
}

// PapaTier is the papasamya verdict tier for a pair.
type PapaTier string

const (
	PapaBalanced      PapaTier = "BALANCED"
	PapaAcceptable    PapaTier = "ACCEPTABLE"
	PapaNotAcceptable PapaTier = "NOT_ACCEPTABLE"
)

// PapasamyaResult holds per-side papa totals and their balance.
type PapasamyaResult struct {
	GirlTotal  int      `json:"girl_total"`
	BoyTotal   int      `json:"boy_total"`
	Difference int      `json:"difference"`
	Tier       PapaTier `json:"tier"`
	Verdict    string   `json:"verdict"`
	Trace      string   `json:"trace,omitempty"`
}

// ManglikResult holds the Kuja dosha flag of each side.
type ManglikResult struct {
	GirlManglik bool   `json:"girl_manglik"`
	BoyManglik  bool   `json:"boy_manglik"`
	Verdict     string `json:"verdict"`
}

// Balanced reports whether both sides carry the same Manglik flag.
func (m ManglikResult) Balanced() bool {
	return m.GirlManglik == m.BoyManglik
}

// Verdict is the final banded match verdict.
type Verdict string

const (
	VerdictExcellent      Verdict = "EXCELLENT"
	VerdictGood           Verdict = "GOOD"
	VerdictAverage        Verdict = "AVERAGE"
	VerdictWeak           Verdict = "WEAK"
	VerdictObstructed     Verdict = "OBSTRUCTED"
	VerdictBorderline     Verdict = "BORDERLINE"
	VerdictNotRecommended Verdict = "NOT_RECOMMENDED"
)

// AppliedCap records one override cap that limited the score.
type AppliedCap struct {
	Name  string  `json:"name"`
	Limit float64 `json:"limit"`
}

// ScoreBreakdown shows how the final score was assembled.
type ScoreBreakdown struct {
	Porutham  float64      `json:"porutham"`
	Papasamya float64      `json:"papasamya"`
	Manglik   float64      `json:"manglik"`
	Base      float64      `json:"base"`
	Caps      []AppliedCap `json:"caps"`
}

// MatchReport is the aggregate result for one chart pair.
type MatchReport struct {
	Girl      string           `json:"girl"`
	Boy       string           `json:"boy"`
	Poruthams []Classification `json:"poruthams"`
	Papasamya PapasamyaResult  `json:"papasamya"`
	Manglik   ManglikResult    `json:"manglik"`
	Score     float64          `json:"score"`
	Breakdown ScoreBreakdown   `json:"breakdown"`
	Verdict   Verdict          `json:"verdict"`
	Flags     []string         `json:"flags"`
	Narrative string           `json:"narrative"`
}

// Domain names an individual life area.
type Domain string

const (
	DomainCareer Domain = "career"
	DomainWealth Domain = "wealth"
	DomainLife   Domain = "life"
)

// DomainScore is one individual score with its band label.
type DomainScore struct {
	Domain Domain  `json:"domain"`
	Score  float64 `json:"score"`
	Label  string  `json:"label"`
	Trace  string  `json:"trace,omitempty"`
}

// IndividualAnalysis holds the three domain scores of one chart.
type IndividualAnalysis struct {
	Name      string      `json:"name"`
	DashaLord string      `json:"dasha_lord"`
	Career    DomainScore `json:"career"`
	Wealth    DomainScore `json:"wealth"`
	Life      DomainScore `json:"life"`
}

// Report is the top-level output document.
type Report struct {
	Tool    string             `json:"tool"`
	Version string             `json:"version"`
	Input   Input              `json:"input"`
	Match   MatchReport        `json:"match"`
	Girl    IndividualAnalysis `json:"girl_analysis"`
	Boy     IndividualAnalysis `json:"boy_analysis"`
}

// Input records the parameters used for this run.
type Input struct {
	ChartFile string `json:"chart_file,omitempty"`
	Tables    string `json:"tables"`
}
