// Package chartfile loads a girl/boy chart pair from a JSON or YAML file and
// validates it into the shape the engine expects.
package chartfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dshills/porutham/internal/house"
	"github.com/dshills/porutham/internal/normalize"
	"github.com/dshills/porutham/internal/schema"
)

var (
	// ErrMissingRequiredBody is returned when a chart's lagna house map
	// lacks Moon or Venus.
	ErrMissingRequiredBody = errors.New("chartfile: missing required body")
	// ErrInvalidChart is returned for any other malformed chart record.
	ErrInvalidChart = errors.New("chartfile: invalid chart")
)

// Format selects the decoder.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFor picks the decoder from a file extension; anything other than
// .yaml or .yml is read as JSON.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Pair is the top-level input document.
type Pair struct {
	Girl *schema.Chart `json:"girl" yaml:"girl"`
	Boy  *schema.Chart `json:"boy" yaml:"boy"`
}

// Load reads and validates the pair at path.
func Load(path string) (girl, boy schema.Chart, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return schema.Chart{}, schema.Chart{}, fmt.Errorf("chartfile: read %s: %w", path, err)
	}
	return Parse(data, FormatFor(path))
}

// Parse decodes and validates a pair document.
func Parse(data []byte, format Format) (girl, boy schema.Chart, err error) {
	var p Pair
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &p)
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		err = dec.Decode(&p)
	}
	if err != nil {
		return schema.Chart{}, schema.Chart{}, fmt.Errorf("chartfile: decode %s: %w", format, err)
	}
	if p.Girl == nil || p.Boy == nil {
		return schema.Chart{}, schema.Chart{}, fmt.Errorf("%w: document needs both \"girl\" and \"boy\"", ErrInvalidChart)
	}
	if girl, err = Normalize(*p.Girl); err != nil {
		return schema.Chart{}, schema.Chart{}, err
	}
	if boy, err = Normalize(*p.Boy); err != nil {
		return schema.Chart{}, schema.Chart{}, err
	}
	return girl, boy, nil
}

// Normalize canonicalizes body keys and checks house ranges, the presence of
// Moon and Venus, and the pada, which is required.
func Normalize(c schema.Chart) (schema.Chart, error) {
	who := c.Name
	if who == "" {
		who = "Unknown"
	}
	var err error
	if c.Houses, err = normalizeHouses(c.Houses); err != nil {
		return schema.Chart{}, fmt.Errorf("planets_from_lagna for %s: %w", who, err)
	}
	if c.Navamsa, err = normalizeHouses(c.Navamsa); err != nil {
		return schema.Chart{}, fmt.Errorf("navamsa_planets_from_lagna for %s: %w", who, err)
	}
	for _, b := range []schema.Body{schema.Moon, schema.Venus} {
		if _, ok := c.Houses[b]; !ok {
			return schema.Chart{}, fmt.Errorf("%w: planets_from_lagna for %s must include %s", ErrMissingRequiredBody, who, b)
		}
	}
	if c.NakshatraPada < 1 || c.NakshatraPada > 4 {
		return schema.Chart{}, fmt.Errorf("%w: nakshatra_pada for %s must be 1..4, got %d", ErrInvalidChart, who, c.NakshatraPada)
	}
	return c, nil
}

func normalizeHouses(m schema.HouseMap) (schema.HouseMap, error) {
	out := make(schema.HouseMap, len(m))
	for raw, h := range m {
		b := normalize.Body(string(raw))
		if b == "" {
			return nil, fmt.Errorf("%w: empty body name", ErrInvalidChart)
		}
		if _, dup := out[b]; dup {
			return nil, fmt.Errorf("%w: body %s listed twice", ErrInvalidChart, b)
		}
		if !house.Valid(h) {
			return nil, fmt.Errorf("%w: %s in house %d, want 1..12", ErrInvalidChart, b, h)
		}
		out[b] = h
	}
	return out, nil
}
