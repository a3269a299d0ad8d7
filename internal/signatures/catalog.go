// Package signatures holds the embedded catalog of byte signatures used to
// find SMU headers, chipset records and the plain-text AGESA string.
//
// The catalog is parsed and compiled once. A pattern that fails to compile
// is a defect in the catalog, not in the scanned image, and is reported as a
// *CatalogError.
package signatures

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/am5tools/smucheck/internal/pattern"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Kind tells CPUs and APUs apart.
type Kind string

const (
	KindCPU Kind = "CPU"
	KindAPU Kind = "APU"
)

// Probe is a masked byte sequence. A zero mask byte ignores that position.
type Probe struct {
	Sequence []byte
	Mask     []byte
}

// Family describes one SMU generation.
type Family struct {
	// Name is used in fallback messages, e.g. "Raphael"
	Name string
	// Label is the display name in the SMU table, e.g. "Raphael/X"
	Label string
	// Series is the model-number series, e.g. "7xx0"
	Series string
	Kind   Kind
	// Header locates the SMU entry; Bias moves each match onto the entry start
	Header *pattern.Pattern
	Bias   int
	// CPUID probes are checked only when Header finds nothing
	CPUID []Probe
}

// Chipset describes the chipset firmware record marker.
type Chipset struct {
	Marker     *pattern.Pattern
	MaxEntries int
}

// AgesaText describes the plain-text AGESA marker found in older images.
type AgesaText struct {
	Marker    *pattern.Pattern
	Bias      int
	MaxLength int
}

// Catalog is the compiled, read-only signature set.
type Catalog struct {
	Families  []*Family
	Chipset   Chipset
	AgesaText AgesaText

	index map[string]*Family
}

type probeYAML struct {
	Sequence string `yaml:"sequence"`
	Mask     string `yaml:"mask"`
}

type familyYAML struct {
	Name   string      `yaml:"name"`
	Label  string      `yaml:"label"`
	Series string      `yaml:"series"`
	Kind   Kind        `yaml:"kind"`
	Header string      `yaml:"header"`
	Bias   int         `yaml:"bias"`
	CPUID  []probeYAML `yaml:"cpuid"`
}

type catalogYAMLDoc struct {
	Families []familyYAML `yaml:"families"`
	Chipset  struct {
		Marker     string `yaml:"marker"`
		MaxEntries int    `yaml:"max_entries"`
	} `yaml:"chipset"`
	AgesaText struct {
		Marker    string `yaml:"marker"`
		Bias      int    `yaml:"bias"`
		MaxLength int    `yaml:"max_length"`
	} `yaml:"agesa_text"`
}

var (
	globalCatalog     *Catalog
	globalCatalogOnce sync.Once
	globalCatalogErr  error
)

// Load returns the embedded catalog. It is parsed on first use only.
func Load() (*Catalog, error) {
	globalCatalogOnce.Do(func() {
		globalCatalog, globalCatalogErr = Parse(catalogYAML)
	})
	return globalCatalog, globalCatalogErr
}

// Parse compiles a catalog document.
func Parse(doc []byte) (*Catalog, error) {
	var raw catalogYAMLDoc
	if err := yaml.Unmarshal(doc, &raw); err != nil {
		return nil, &CatalogError{Field: "document", Err: err}
	}

	c := &Catalog{index: make(map[string]*Family, len(raw.Families))}

	for _, fy := range raw.Families {
		fam, err := compileFamily(fy)
		if err != nil {
			return nil, err
		}
		if _, dup := c.index[fam.Name]; dup {
			return nil, &CatalogError{Entry: fam.Name, Field: "name", Err: fmt.Errorf("duplicate family")}
		}
		c.Families = append(c.Families, fam)
		c.index[fam.Name] = fam
	}

	marker, err := pattern.Parse(raw.Chipset.Marker)
	if err != nil {
		return nil, &CatalogError{Entry: "chipset", Field: "marker", Err: err}
	}
	c.Chipset = Chipset{Marker: marker, MaxEntries: raw.Chipset.MaxEntries}
	if c.Chipset.MaxEntries < 1 {
		c.Chipset.MaxEntries = 2
	}

	marker, err = pattern.Parse(raw.AgesaText.Marker)
	if err != nil {
		return nil, &CatalogError{Entry: "agesa_text", Field: "marker", Err: err}
	}
	c.AgesaText = AgesaText{Marker: marker, Bias: raw.AgesaText.Bias, MaxLength: raw.AgesaText.MaxLength}
	if c.AgesaText.MaxLength < 1 {
		c.AgesaText.MaxLength = 255
	}

	return c, nil
}

func compileFamily(fy familyYAML) (*Family, error) {
	if fy.Name == "" {
		return nil, &CatalogError{Field: "name", Err: fmt.Errorf("family without a name")}
	}
	if fy.Kind != KindCPU && fy.Kind != KindAPU {
		return nil, &CatalogError{Entry: fy.Name, Field: "kind", Err: fmt.Errorf("unknown kind %q", fy.Kind)}
	}

	header, err := pattern.Parse(fy.Header)
	if err != nil {
		return nil, &CatalogError{Entry: fy.Name, Field: "header", Err: err}
	}

	fam := &Family{
		Name:   fy.Name,
		Label:  fy.Label,
		Series: fy.Series,
		Kind:   fy.Kind,
		Header: header,
		Bias:   fy.Bias,
	}
	if fam.Label == "" {
		fam.Label = fy.Name
	}

	for i, py := range fy.CPUID {
		seq, err := pattern.ParseHex(py.Sequence)
		if err != nil {
			return nil, &CatalogError{Entry: fy.Name, Field: fmt.Sprintf("cpuid[%d].sequence", i), Err: err}
		}
		mask, err := pattern.ParseHex(py.Mask)
		if err != nil {
			return nil, &CatalogError{Entry: fy.Name, Field: fmt.Sprintf("cpuid[%d].mask", i), Err: err}
		}
		if len(seq) == 0 || len(seq) != len(mask) {
			return nil, &CatalogError{
				Entry: fy.Name,
				Field: fmt.Sprintf("cpuid[%d]", i),
				Err:   fmt.Errorf("sequence and mask lengths differ (%d vs %d)", len(seq), len(mask)),
			}
		}
		fam.CPUID = append(fam.CPUID, Probe{Sequence: seq, Mask: mask})
	}

	return fam, nil
}

// Get returns the family with the given name.
func (c *Catalog) Get(name string) (*Family, bool) {
	f, ok := c.index[name]
	return f, ok
}

// Count returns the number of families.
func (c *Catalog) Count() int {
	return len(c.Families)
}

// HasCPUID reports whether any of the family's CPUID probes occurs in data.
func (f *Family) HasCPUID(data []byte) bool {
	for _, p := range f.CPUID {
		if pattern.ContainsMasked(data, p.Sequence, p.Mask) {
			return true
		}
	}
	return false
}

// String returns e.g. "Raphael/X 7xx0 CPU".
func (f *Family) String() string {
	return fmt.Sprintf("%s %s %s", f.Label, f.Series, f.Kind)
}
