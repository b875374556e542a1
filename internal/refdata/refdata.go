// Package refdata holds the immutable reference tables consulted by every
// porutham evaluator: the nakshatra and rasi orders with their aliases,
// yoni/gana/rajju/vedha assignments, rasi lordship, the body friendship
// graph, the gana and vasya matrices, and the fixed threshold sets.
//
// Tables are built once (Default parses the embedded tables.yaml) and are
// never mutated afterwards, so one *Tables may be shared by any number of
// concurrent evaluations. Tests may build substitute tables with Load.
package refdata

import (
	_ "embed"
	"fmt"
	"os"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/dshills/porutham/internal/normalize"
	"github.com/dshills/porutham/internal/schema"
)

//go:embed tables.yaml
var tablesYAML []byte

// Gana temperament groups.
const (
	GanaDeva     = "Deva"
	GanaManushya = "Manushya"
	GanaRakshasa = "Rakshasa"
)

// Nakshatra is one of the 27 birth stars with its table assignments.
type Nakshatra struct {
	Index int    // 1..27
	Key   string // normalized canonical key
	Name  string
	Gana  string
	Yoni  string // yoni key
	Rajju string // rajju group name
	Vedha string // key of the obstruction partner
}

// Rasi is one of the 12 signs.
type Rasi struct {
	Index int // 1..12
	Key   string
	Name  string
	Lord  schema.Body
}

// Yoni is an animal-nature group and the group it is inimical to.
type Yoni struct {
	Key    string
	Name   string
	Animal string
	Enemy  string
}

// RajjuGroup is a body-region grouping of nakshatras.
type RajjuGroup struct {
	Name   string
	Region string
}

// Relation is how one body naturally views another.
type Relation string

const (
	RelationSame    Relation = "same"
	RelationFriend  Relation = "friend"
	RelationNeutral Relation = "neutral"
	RelationEnemy   Relation = "enemy"
)

// Thresholds are the fixed classification sets used by the evaluators and
// pair factors.
type Thresholds struct {
	TaraNames              []string
	GoodTaras              []int
	BadTaras               []int
	FavorableRasiDistances []int
	MahendraCounts         []int
	StreeDheerghaMin       int
	PapaBodies             []schema.Body
	PapamHouses            []int
	ManglikHouses          []int
}

func (t Thresholds) clone() Thresholds {
	return Thresholds{
		TaraNames:              slices.Clone(t.TaraNames),
		GoodTaras:              slices.Clone(t.GoodTaras),
		BadTaras:               slices.Clone(t.BadTaras),
		FavorableRasiDistances: slices.Clone(t.FavorableRasiDistances),
		MahendraCounts:         slices.Clone(t.MahendraCounts),
		StreeDheerghaMin:       t.StreeDheerghaMin,
		PapaBodies:             slices.Clone(t.PapaBodies),
		PapamHouses:            slices.Clone(t.PapamHouses),
		ManglikHouses:          slices.Clone(t.ManglikHouses),
	}
}

type friendship struct {
	friends  []schema.Body
	neutrals []schema.Body
	enemies  []schema.Body
}

// Tables is the parsed, validated reference data.
type Tables struct {
	nakshatras  []Nakshatra
	nakIndex    map[string]int
	nakAliases  map[string]string
	rasis       []Rasi
	rasiIndex   map[string]int
	rasiAliases map[string]string
	yonis       map[string]Yoni
	rajju       []RajjuGroup
	friendships map[schema.Body]friendship
	gana        map[string]map[string]schema.Status
	vasya       [][]schema.Status
	thresholds  Thresholds
	source      string
	raw         []byte
}

var (
	defaultOnce   sync.Once
	defaultTables *Tables
)

// Default returns the tables parsed from the embedded tables.yaml. The
// embedded document is validated by tests, so a parse failure is a build
// defect and panics.
func Default() *Tables {
	defaultOnce.Do(func() {
		t, err := Load(tablesYAML)
		if err != nil {
			panic(fmt.Sprintf("load embedded tables.yaml: %v", err))
		}
		t.source = "embedded"
		defaultTables = t
	})
	return defaultTables
}

// LoadFile reads and validates a substitute tables document.
func LoadFile(path string) (*Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("refdata: read %s: %w", path, err)
	}
	t, err := Load(data)
	if err != nil {
		return nil, err
	}
	t.source = path
	return t, nil
}

// Source names where the tables came from ("embedded" or a file path).
func (t *Tables) Source() string {
	if t.source == "" {
		return "inline"
	}
	return t.source
}

// Raw returns a copy of the YAML document the tables were parsed from.
func (t *Tables) Raw() []byte {
	return slices.Clone(t.raw)
}

// Thresholds returns a copy of the threshold sets.
func (t *Tables) Thresholds() Thresholds {
	return t.thresholds.clone()
}

// Nakshatras returns the 27 nakshatras in canonical order.
func (t *Tables) Nakshatras() []Nakshatra {
	return slices.Clone(t.nakshatras)
}

// NakshatraKey resolves a free-text name to its canonical key, applying the
// alias table. It returns the normalized key unchanged when no entry matches.
func (t *Tables) NakshatraKey(name string) string {
	key := normalize.Key(name)
	if _, ok := t.nakIndex[key]; ok {
		return key
	}
	if canon, ok := t.nakAliases[key]; ok {
		return canon
	}
	return key
}

// NakshatraIndex returns the 1-based position (1..27) of the named
// nakshatra, or an *UnrecognizedNakshatraError.
func (t *Tables) NakshatraIndex(name string) (int, error) {
	key := t.NakshatraKey(name)
	idx, ok := t.nakIndex[key]
	if !ok {
		return 0, &UnrecognizedNakshatraError{Raw: name, Key: key}
	}
	return idx, nil
}

// Nakshatra returns the full record for a free-text nakshatra name.
func (t *Tables) Nakshatra(name string) (Nakshatra, error) {
	idx, err := t.NakshatraIndex(name)
	if err != nil {
		return Nakshatra{}, err
	}
	return t.nakshatras[idx-1], nil
}

// RasiKey resolves a free-text sign name to its canonical key. Unknown names
// come back normalized but unmapped so that downstream lookups can report
// their own Unknown status.
func (t *Tables) RasiKey(name string) string {
	key := normalize.Key(name)
	if _, ok := t.rasiIndex[key]; ok {
		return key
	}
	if canon, ok := t.rasiAliases[key]; ok {
		return canon
	}
	return key
}

// Rasi returns the record for a free-text sign name.
func (t *Tables) Rasi(name string) (Rasi, bool) {
	idx, ok := t.rasiIndex[t.RasiKey(name)]
	if !ok {
		return Rasi{}, false
	}
	return t.rasis[idx-1], true
}

// Rasis returns the 12 signs in canonical order.
func (t *Tables) Rasis() []Rasi {
	return slices.Clone(t.rasis)
}

// Yoni returns the yoni group for key.
func (t *Tables) Yoni(key string) (Yoni, bool) {
	y, ok := t.yonis[key]
	return y, ok
}

// RajjuGroup returns the rajju group called name.
func (t *Tables) RajjuGroup(name string) (RajjuGroup, bool) {
	for _, g := range t.rajju {
		if g.Name == name {
			return g, true
		}
	}
	return RajjuGroup{}, false
}

// Relation reports how from views to. A body missing from the friendship
// graph views every other body as neutral.
func (t *Tables) Relation(from, to schema.Body) Relation {
	if from == to {
		return RelationSame
	}
	f := t.friendships[from]
	switch {
	case slices.Contains(f.friends, to):
		return RelationFriend
	case slices.Contains(f.enemies, to):
		return RelationEnemy
	default:
		return RelationNeutral
	}
}

// Gana returns the gana-matrix cell for the (girl, boy) gana pair.
func (t *Tables) Gana(girl, boy string) (schema.Status, bool) {
	s, ok := t.gana[girl][boy]
	return s, ok
}

// Vasya returns the vasya-matrix cell for 1-based (girl, boy) rasi indices.
func (t *Tables) Vasya(girl, boy int) (schema.Status, bool) {
	if girl < 1 || girl > len(t.vasya) || boy < 1 || boy > len(t.vasya[girl-1]) {
		return schema.StatusUnknown, false
	}
	return t.vasya[girl-1][boy-1], true
}

// UnrecognizedNakshatraError reports a nakshatra name that resolves to no
// canonical entry.
type UnrecognizedNakshatraError struct {
	Raw string
	Key string
}

func (e *UnrecognizedNakshatraError) Error() string {
	return fmt.Sprintf("nakshatra %q not recognized (normalized %q)", e.Raw, e.Key)
}

// Document is the YAML layout of a tables file.
type Document struct {
	Nakshatras []struct {
		Key   string `yaml:"key"`
		Name  string `yaml:"name"`
		Gana  string `yaml:"gana"`
		Yoni  string `yaml:"yoni"`
		Rajju string `yaml:"rajju"`
		Vedha string `yaml:"vedha"`
	} `yaml:"nakshatras"`
	NakshatraAliases map[string]string `yaml:"nakshatra_aliases"`
	Rasis            []struct {
		Key  string `yaml:"key"`
		Name string `yaml:"name"`
		Lord string `yaml:"lord"`
	} `yaml:"rasis"`
	RasiAliases map[string]string `yaml:"rasi_aliases"`
	Yonis       []struct {
		Key    string `yaml:"key"`
		Name   string `yaml:"name"`
		Animal string `yaml:"animal"`
		Enemy  string `yaml:"enemy"`
	} `yaml:"yonis"`
	Rajju []struct {
		Name   string `yaml:"name"`
		Region string `yaml:"region"`
	} `yaml:"rajju"`
	Friendships map[string]struct {
		Friends  []string `yaml:"friends"`
		Neutrals []string `yaml:"neutrals"`
		Enemies  []string `yaml:"enemies"`
	} `yaml:"friendships"`
	GanaMatrix map[string]map[string]string `yaml:"gana_matrix"`
	Vasya      map[string][]string          `yaml:"vasya"`
	Thresholds struct {
		TaraNames              []string `yaml:"tara_names"`
		GoodTaras              []int    `yaml:"good_taras"`
		BadTaras               []int    `yaml:"bad_taras"`
		FavorableRasiDistances []int    `yaml:"favorable_rasi_distances"`
		MahendraCounts         []int    `yaml:"mahendra_counts"`
		StreeDheerghaMin       int      `yaml:"stree_dheergha_min"`
		PapaBodies             []string `yaml:"papa_bodies"`
		PapamHouses            []int    `yaml:"papam_houses"`
		ManglikHouses          []int    `yaml:"manglik_houses"`
	} `yaml:"thresholds"`
}

// Load parses and validates a tables document.
func Load(data []byte) (*Tables, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("refdata: parse: %w", err)
	}
	t, err := build(&doc)
	if err != nil {
		return nil, fmt.Errorf("refdata: %w", err)
	}
	t.raw = slices.Clone(data)
	return t, nil
}
