package signatures

import (
	"errors"
	"testing"

	"github.com/am5tools/smucheck/internal/pattern"
)

func TestLoad(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if c.Count() != 3 {
		t.Fatalf("expected 3 families, got %d", c.Count())
	}

	c2, err := Load()
	if err != nil {
		t.Fatalf("second Load failed: %v", err)
	}
	if c != c2 {
		t.Error("expected Load to return the same instance")
	}
}

func TestFamilies(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	tests := []struct {
		name       string
		label      string
		series     string
		kind       Kind
		bias       int
		headerLen  int
		firstProbe []byte
	}{
		{"Raphael", "Raphael/X", "7xx0", KindCPU, -0x62, 30, []byte{0x12, 0x60, 0x0A, 0x05, 0x80}},
		{"Phoenix", "Phoenix/2", "8xx0", KindAPU, -0x48, 27, []byte{0x52, 0x70, 0x0A, 0x05, 0x80}},
		{"Granite Ridge", "Granite Ridge", "9xx0", KindCPU, -0x62, 30, []byte{0x40, 0x40, 0x0B, 0x15, 0x80}},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, ok := c.Get(tt.name)
			if !ok {
				t.Fatalf("family %q not found", tt.name)
			}
			if c.Families[i] != f {
				t.Errorf("family %q out of catalog order", tt.name)
			}
			if f.Label != tt.label || f.Series != tt.series || f.Kind != tt.kind {
				t.Errorf("got %s, want %s %s %s", f, tt.label, tt.series, tt.kind)
			}
			if f.Bias != tt.bias {
				t.Errorf("bias = %d, want %d", f.Bias, tt.bias)
			}
			if f.Header.Len() != tt.headerLen {
				t.Errorf("header length = %d, want %d", f.Header.Len(), tt.headerLen)
			}
			if len(f.CPUID) != 2 {
				t.Fatalf("expected 2 CPUID probes, got %d", len(f.CPUID))
			}
			if string(f.CPUID[0].Sequence) != string(tt.firstProbe) {
				t.Errorf("first probe = % X", f.CPUID[0].Sequence)
			}
			if f.CPUID[0].Mask[3] != 0x00 {
				t.Error("expected stepping byte to be masked out")
			}
		})
	}

	if _, ok := c.Get("Zen 1"); ok {
		t.Error("expected unknown family lookup to fail")
	}
}

func TestChipsetAndAgesaText(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if c.Chipset.Marker.String() != "5F 50 54 5F" {
		t.Errorf("chipset marker = %q", c.Chipset.Marker)
	}
	if c.Chipset.MaxEntries != 2 {
		t.Errorf("chipset max entries = %d", c.Chipset.MaxEntries)
	}
	if c.AgesaText.Bias != 0xD || c.AgesaText.MaxLength != 255 {
		t.Errorf("agesa text = %+v", c.AgesaText)
	}
}

func TestHasCPUID(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	f, _ := c.Get("Raphael")

	tests := []struct {
		name string
		data []byte
		want bool
	}{
		{"exact", []byte{0x00, 0x12, 0x60, 0x0A, 0x05, 0x80, 0x00}, true},
		{"masked stepping", []byte{0x13, 0x60, 0x0A, 0xEE, 0x80}, true},
		{"wrong family", []byte{0x52, 0x70, 0x0A, 0x05, 0x80}, false},
		{"too short", []byte{0x12, 0x60}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.HasCPUID(tt.data); got != tt.want {
				t.Errorf("HasCPUID() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantPat bool
	}{
		{
			name: "bad header token",
			doc: `families:
  - {name: X, kind: CPU, header: "54 ZZ 00"}
chipset: {marker: "5F"}
agesa_text: {marker: "3D"}`,
			wantPat: true,
		},
		{
			name: "all wildcard header",
			doc: `families:
  - {name: X, kind: CPU, header: "? ? ?"}
chipset: {marker: "5F"}
agesa_text: {marker: "3D"}`,
			wantPat: true,
		},
		{
			name: "unknown kind",
			doc: `families:
  - {name: X, kind: GPU, header: "54"}
chipset: {marker: "5F"}
agesa_text: {marker: "3D"}`,
		},
		{
			name: "mask length mismatch",
			doc: `families:
  - name: X
    kind: APU
    header: "54"
    cpuid: [{sequence: "12 60", mask: "FF"}]
chipset: {marker: "5F"}
agesa_text: {marker: "3D"}`,
		},
		{
			name: "duplicate family",
			doc: `families:
  - {name: X, kind: CPU, header: "54"}
  - {name: X, kind: CPU, header: "55"}
chipset: {marker: "5F"}
agesa_text: {marker: "3D"}`,
		},
		{
			name:    "missing chipset marker",
			doc:     `agesa_text: {marker: "3D"}`,
			wantPat: true,
		},
		{
			name: "not yaml",
			doc:  "families: [",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			if err == nil {
				t.Fatal("expected error")
			}
			var ce *CatalogError
			if !errors.As(err, &ce) {
				t.Fatalf("expected *CatalogError, got %T", err)
			}
			var pe *pattern.Error
			if got := errors.As(err, &pe); got != tt.wantPat {
				t.Errorf("errors.As(*pattern.Error) = %v, want %v", got, tt.wantPat)
			}
		})
	}
}

func TestParseDefaults(t *testing.T) {
	c, err := Parse([]byte(`families:
  - {name: Solo, kind: CPU, header: "54 ? 00"}
chipset: {marker: "5F 50"}
agesa_text: {marker: "3D 9B"}`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	f, _ := c.Get("Solo")
	if f.Label != "Solo" {
		t.Errorf("label should default to name, got %q", f.Label)
	}
	if c.Chipset.MaxEntries != 2 || c.AgesaText.MaxLength != 255 {
		t.Errorf("defaults not applied: %+v %+v", c.Chipset, c.AgesaText)
	}
}
