package ui

import (
	"strings"
	"testing"

	"github.com/am5tools/smucheck/internal/scan"
	"github.com/am5tools/smucheck/internal/signatures"
	"github.com/am5tools/smucheck/internal/smu"
	"github.com/am5tools/smucheck/internal/uefiinfo"
)

func family(t *testing.T, name string) *signatures.Family {
	t.Helper()
	cat, err := signatures.Load()
	if err != nil {
		t.Fatalf("signatures.Load() error = %v", err)
	}
	f, ok := cat.Get(name)
	if !ok {
		t.Fatalf("family %q not in catalog", name)
	}
	return f
}

// Test fixture: a report with one Raphael entry and one chipset record
func getSampleReport(t *testing.T) *scan.Report {
	return &scan.Report{
		ImageName: "B650E-Taichi-3.10.AS05",
		ImageSize: 32 * 1024 * 1024,
		Info: &uefiinfo.Info{
			Vendor:    "ASRock",
			Board:     "B650E Taichi",
			AGESA:     "ComboAM5PI 1.2.0.3",
			Version:   "3.10",
			BuildDate: "24.12.2024",
		},
		Chipsets: []smu.ChipsetEntry{
			{Offset: 0x8000, Length: 0x2C000, Date: "2023.11.07", Version: "01.02.1A", Firmware: "FWPT21A"},
		},
		Families: []smu.FamilyResult{
			{
				Family: family(t, "Raphael"),
				Status: smu.StatusFound,
				Entries: []smu.Entry{
					{Offset: 0x1000, Length: 0x3F000, Version: [4]byte{0x00, 0x4F, 0x54, 0x00}},
				},
			},
			{Family: family(t, "Phoenix"), Status: smu.StatusCPUIDOnly, Entries: []smu.Entry{}},
			{Family: family(t, "Granite Ridge"), Status: smu.StatusNotFound, Entries: []smu.Entry{}},
		},
	}
}

func TestFormatKB(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0"},
		{511, "0"},
		{512, "1"},
		{1536, "2"},
		{0x2C000, "176"},
		{32 * 1024 * 1024, "32,768"},
	}

	for _, tt := range tests {
		if got := FormatKB(tt.bytes); got != tt.want {
			t.Errorf("FormatKB(%d) = %q, want %q", tt.bytes, got, tt.want)
		}
	}
}

func TestEntryLine(t *testing.T) {
	rep := getSampleReport(t)
	got := EntryLine(rep.Families[0], rep.Families[0].Entries[0])
	want := "   0.84.79.0     (252 KB)   Raphael/X      7xx0 CPU   [00001000-00040000]"
	if got != want {
		t.Errorf("EntryLine() =\n%q\nwant\n%q", got, want)
	}
}

func TestChipsetLine(t *testing.T) {
	rep := getSampleReport(t)
	got := ChipsetLine(rep.Chipsets[0])
	want := "        Chipset Info:   01.02.1A | FWPT21A | 2023.11.07 | (176 KB)"
	if got != want {
		t.Errorf("ChipsetLine() =\n%q\nwant\n%q", got, want)
	}
}

func TestRenderReport(t *testing.T) {
	out := RenderReport(getSampleReport(t), 75)

	expectedParts := []string{
		"U E F I   I N F O",
		"ASRock",
		"B650E Taichi",
		"AGESA ComboAM5PI 1.2.0.3",
		"UEFI Version",
		"3.10",
		"24.12.2024",
		"32,768 KB",
		"Chipset Info:   01.02.1A",
		"S Y S T E M    M A N A G E M E N T    U N I T    [ S M U ]",
		"Raphael/X      7xx0 CPU",
		"Found Phoenix CPUID but SMU detection failed",
		"   Program update may be necessary",
		"Couldn't find any Granite Ridge SMU or CPUID - CPU may not be supported",
		"Credits to RaINi, Reous and PatrickSchur",
	}
	for _, part := range expectedParts {
		if !strings.Contains(out, part) {
			t.Errorf("RenderReport() missing expected part: %s", part)
		}
	}

	// Sections keep their order
	order := []string{"U E F I", "Chipset Info", "S Y S T E M", "Raphael/X", "Phoenix", "Granite Ridge", "Credits"}
	last := -1
	for _, part := range order {
		idx := strings.Index(out, part)
		if idx <= last {
			t.Errorf("%q is out of order", part)
		}
		last = idx
	}

	// One separator between each pair of families
	if got := strings.Count(out, "   ─ ─ ─"); got != 2 {
		t.Errorf("family separators = %d, want 2", got)
	}
}

func TestRenderReportCentersHeader(t *testing.T) {
	out := RenderReport(getSampleReport(t), 75)
	for _, line := range strings.Split(out, "\n") {
		if strings.TrimSpace(line) == "ASRock" {
			if !strings.HasPrefix(line, strings.Repeat(" ", (73-6)/2)+"ASRock") {
				t.Errorf("vendor line not centered: %q", line)
			}
			return
		}
	}
	t.Error("vendor line not found")
}

func TestRenderReportWithoutMetadata(t *testing.T) {
	rep := getSampleReport(t)
	rep.Info = nil
	rep.Chipsets = nil
	rep.AgesaText = "ComboAM5PI 1.0.0.7"

	out := RenderReport(rep, 0)

	if strings.Contains(out, "UEFI Version") {
		t.Error("version row shown without metadata")
	}
	if strings.Contains(out, "Chipset Info") {
		t.Error("chipset block shown without records")
	}
	if !strings.Contains(out, "AGESA: ComboAM5PI 1.0.0.7") {
		t.Error("plain AGESA text missing")
	}
	if !strings.Contains(out, "B650E-Taichi-3.10.AS05") {
		t.Error("image name missing")
	}
}

func TestRenderReportHidesVersionRow(t *testing.T) {
	rep := getSampleReport(t)
	rep.Info.Version = ""

	if out := RenderReport(rep, 75); strings.Contains(out, "UEFI Version") {
		t.Error("version row shown without a version word")
	}
}

func TestCenter(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"ab", 6, "  ab"},
		{"abc", 6, " abc"},
		{"toolongtext", 4, "toolongtext"},
		{"", 4, "  "},
	}
	for _, tt := range tests {
		if got := center(tt.in, tt.width); got != tt.want {
			t.Errorf("center(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}
