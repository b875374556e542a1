package refdata

import (
	"fmt"
	"slices"

	"github.com/dshills/porutham/internal/normalize"
	"github.com/dshills/porutham/internal/schema"
)

const (
	nakshatraCount = 27
	rasiCount      = 12
	taraCount      = 9
)

var ganas = []string{GanaDeva, GanaManushya, GanaRakshasa}

// build converts a parsed document into Tables, rejecting anything an
// evaluator could not rely on.
func build(doc *Document) (*Tables, error) {
	t := &Tables{
		nakIndex:    make(map[string]int, nakshatraCount),
		nakAliases:  make(map[string]string, len(doc.NakshatraAliases)),
		rasiIndex:   make(map[string]int, rasiCount),
		rasiAliases: make(map[string]string, len(doc.RasiAliases)),
		yonis:       make(map[string]Yoni, len(doc.Yonis)),
		friendships: make(map[schema.Body]friendship, len(doc.Friendships)),
		gana:        make(map[string]map[string]schema.Status, len(ganas)),
	}

	for _, y := range doc.Yonis {
		if _, dup := t.yonis[y.Key]; dup {
			return nil, fmt.Errorf("yoni %q listed twice", y.Key)
		}
		t.yonis[y.Key] = Yoni{Key: y.Key, Name: y.Name, Animal: y.Animal, Enemy: y.Enemy}
	}
	for _, y := range t.yonis {
		if _, ok := t.yonis[y.Enemy]; !ok {
			return nil, fmt.Errorf("yoni %q: unknown enemy %q", y.Key, y.Enemy)
		}
	}

	for _, r := range doc.Rajju {
		t.rajju = append(t.rajju, RajjuGroup{Name: r.Name, Region: r.Region})
	}

	if len(doc.Nakshatras) != nakshatraCount {
		return nil, fmt.Errorf("want %d nakshatras, got %d", nakshatraCount, len(doc.Nakshatras))
	}
	for i, n := range doc.Nakshatras {
		if n.Key != normalize.Key(n.Key) {
			return nil, fmt.Errorf("nakshatra %q: key is not normalized", n.Key)
		}
		if _, dup := t.nakIndex[n.Key]; dup {
			return nil, fmt.Errorf("nakshatra %q listed twice", n.Key)
		}
		if !slices.Contains(ganas, n.Gana) {
			return nil, fmt.Errorf("nakshatra %q: unknown gana %q", n.Key, n.Gana)
		}
		if _, ok := t.yonis[n.Yoni]; !ok {
			return nil, fmt.Errorf("nakshatra %q: unknown yoni %q", n.Key, n.Yoni)
		}
		if _, ok := t.RajjuGroup(n.Rajju); !ok {
			return nil, fmt.Errorf("nakshatra %q: unknown rajju %q", n.Key, n.Rajju)
		}
		t.nakIndex[n.Key] = i + 1
		t.nakshatras = append(t.nakshatras, Nakshatra{
			Index: i + 1,
			Key:   n.Key,
			Name:  n.Name,
			Gana:  n.Gana,
			Yoni:  n.Yoni,
			Rajju: n.Rajju,
			Vedha: n.Vedha,
		})
	}
	for _, n := range t.nakshatras {
		if _, ok := t.nakIndex[n.Vedha]; !ok {
			return nil, fmt.Errorf("nakshatra %q: unknown vedha partner %q", n.Key, n.Vedha)
		}
	}
	for alias, canon := range doc.NakshatraAliases {
		if _, ok := t.nakIndex[canon]; !ok {
			return nil, fmt.Errorf("nakshatra alias %q: unknown target %q", alias, canon)
		}
		t.nakAliases[normalize.Key(alias)] = canon
	}

	if len(doc.Rasis) != rasiCount {
		return nil, fmt.Errorf("want %d rasis, got %d", rasiCount, len(doc.Rasis))
	}
	for i, r := range doc.Rasis {
		if r.Key != normalize.Key(r.Key) {
			return nil, fmt.Errorf("rasi %q: key is not normalized", r.Key)
		}
		if _, dup := t.rasiIndex[r.Key]; dup {
			return nil, fmt.Errorf("rasi %q listed twice", r.Key)
		}
		lord := normalize.Body(r.Lord)
		if !normalize.IsCanonicalBody(lord) {
			return nil, fmt.Errorf("rasi %q: unknown lord %q", r.Key, r.Lord)
		}
		t.rasiIndex[r.Key] = i + 1
		t.rasis = append(t.rasis, Rasi{Index: i + 1, Key: r.Key, Name: r.Name, Lord: lord})
	}
	for alias, canon := range doc.RasiAliases {
		if _, ok := t.rasiIndex[canon]; !ok {
			return nil, fmt.Errorf("rasi alias %q: unknown target %q", alias, canon)
		}
		t.rasiAliases[normalize.Key(alias)] = canon
	}

	for name, f := range doc.Friendships {
		body := normalize.Body(name)
		if !normalize.IsCanonicalBody(body) {
			return nil, fmt.Errorf("friendships: unknown body %q", name)
		}
		var fs friendship
		var err error
		if fs.friends, err = bodies(f.Friends); err != nil {
			return nil, fmt.Errorf("friendships %s: %w", name, err)
		}
		if fs.neutrals, err = bodies(f.Neutrals); err != nil {
			return nil, fmt.Errorf("friendships %s: %w", name, err)
		}
		if fs.enemies, err = bodies(f.Enemies); err != nil {
			return nil, fmt.Errorf("friendships %s: %w", name, err)
		}
		t.friendships[body] = fs
	}

	for _, g := range ganas {
		row, ok := doc.GanaMatrix[g]
		if !ok {
			return nil, fmt.Errorf("gana matrix: missing row %q", g)
		}
		t.gana[g] = make(map[string]schema.Status, len(ganas))
		for _, b := range ganas {
			cell, ok := row[b]
			if !ok {
				return nil, fmt.Errorf("gana matrix: missing cell %s/%s", g, b)
			}
			s := schema.Status(cell)
			if !s.Valid() || s == schema.StatusUnknown {
				return nil, fmt.Errorf("gana matrix %s/%s: invalid status %q", g, b, cell)
			}
			t.gana[g][b] = s
		}
	}

	t.vasya = make([][]schema.Status, rasiCount)
	for _, r := range t.rasis {
		row, ok := doc.Vasya[r.Key]
		if !ok {
			return nil, fmt.Errorf("vasya: missing row %q", r.Key)
		}
		if len(row) != rasiCount {
			return nil, fmt.Errorf("vasya %s: want %d cells, got %d", r.Key, rasiCount, len(row))
		}
		cells := make([]schema.Status, rasiCount)
		for j, c := range row {
			s := schema.Status(c)
			if s != schema.StatusGood && s != schema.StatusOK && s != schema.StatusBad {
				return nil, fmt.Errorf("vasya %s[%d]: invalid status %q", r.Key, j+1, c)
			}
			cells[j] = s
		}
		t.vasya[r.Index-1] = cells
	}

	th := doc.Thresholds
	if len(th.TaraNames) != taraCount {
		return nil, fmt.Errorf("thresholds: want %d tara names, got %d", taraCount, len(th.TaraNames))
	}
	papaBodies, err := bodies(th.PapaBodies)
	if err != nil {
		return nil, fmt.Errorf("thresholds papa_bodies: %w", err)
	}
	for _, set := range [][]int{th.PapamHouses, th.ManglikHouses, th.FavorableRasiDistances} {
		for _, h := range set {
			if h < 1 || h > 12 {
				return nil, fmt.Errorf("thresholds: house %d out of range 1..12", h)
			}
		}
	}
	t.thresholds = Thresholds{
		TaraNames:              th.TaraNames,
		GoodTaras:              th.GoodTaras,
		BadTaras:               th.BadTaras,
		FavorableRasiDistances: th.FavorableRasiDistances,
		MahendraCounts:         th.MahendraCounts,
		StreeDheerghaMin:       th.StreeDheerghaMin,
		PapaBodies:             papaBodies,
		PapamHouses:            th.PapamHouses,
		ManglikHouses:          th.ManglikHouses,
	}

	return t, nil
}

func bodies(names []string) ([]schema.Body, error) {
	out := make([]schema.Body, 0, len(names))
	for _, n := range names {
		b := normalize.Body(n)
		if !normalize.IsCanonicalBody(b) {
			return nil, fmt.Errorf("unknown body %q", n)
		}
		out = append(out, b)
	}
	return out, nil
}
