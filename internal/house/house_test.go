package house

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/porutham/internal/schema"
)

func TestDerive(t *testing.T) {
	fromLagna := schema.HouseMap{
		schema.Sun:   10,
		schema.Moon:  4,
		schema.Mars:  3,
		schema.Venus: 12,
	}
	got, err := Derive(fromLagna, schema.Moon)
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}
	want := schema.HouseMap{
		schema.Sun:   7,
		schema.Moon:  1,
		schema.Mars:  12,
		schema.Venus: 9,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Derive from Moon mismatch (-want +got):\n%s", diff)
	}
}

func TestDerive_AllPairs(t *testing.T) {
	for ref := 1; ref <= 12; ref++ {
		for p := 1; p <= 12; p++ {
			m, err := Derive(schema.HouseMap{schema.Moon: ref, schema.Sun: p}, schema.Moon)
			if err != nil {
				t.Fatal(err)
			}
			if m[schema.Moon] != 1 {
				t.Errorf("ref %d: reference landed in house %d, want 1", ref, m[schema.Moon])
			}
			if h := m[schema.Sun]; !Valid(h) {
				t.Errorf("ref %d, body %d: derived house %d outside 1..12", ref, p, h)
			}
		}
	}
}

func TestDerive_MissingReference(t *testing.T) {
	_, err := Derive(schema.HouseMap{schema.Sun: 1}, schema.Venus)
	if !errors.Is(err, ErrMissingReferenceBody) {
		t.Errorf("Derive without Venus error = %v, want ErrMissingReferenceBody", err)
	}
}

func TestMod(t *testing.T) {
	cases := []struct{ a, n, want int }{
		{5, 12, 5},
		{12, 12, 0},
		{-1, 12, 11},
		{-13, 12, 11},
		{-3, 27, 24},
	}
	for _, c := range cases {
		if got := Mod(c.a, c.n); got != c.want {
			t.Errorf("Mod(%d, %d) = %d, want %d", c.a, c.n, got, c.want)
		}
	}
}

func TestOccupants(t *testing.T) {
	m := schema.HouseMap{
		schema.Venus:   10,
		schema.Jupiter: 10,
		schema.Saturn:  10,
		schema.Moon:    4,
	}
	all := Occupants(m, nil, 10)
	if diff := cmp.Diff([]schema.Body{schema.Jupiter, schema.Saturn, schema.Venus}, all); diff != "" {
		t.Errorf("Occupants(10) mismatch (-want +got):\n%s", diff)
	}
	benefic := func(b schema.Body) bool { return b != schema.Saturn }
	got := Occupants(m, benefic, 4, 10)
	if diff := cmp.Diff([]schema.Body{schema.Jupiter, schema.Moon, schema.Venus}, got); diff != "" {
		t.Errorf("Occupants(benefic, 4, 10) mismatch (-want +got):\n%s", diff)
	}
}
