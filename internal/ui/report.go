package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/am5tools/smucheck/internal/scan"
	"github.com/am5tools/smucheck/internal/smu"
)

// Banner texts.
const (
	uefiBanner    = "U E F I   I N F O"
	smuBanner     = "S Y S T E M    M A N A G E M E N T    U N I T    [ S M U ]"
	smuTableTitle = "    Version        Size        CPU/APU  Family               Offset"
	uefiRowTitle  = "        UEFI Version            Build Date              File Size"
	creditsLine   = "Credits to RaINi, Reous and PatrickSchur"
)

// FormatKB renders a byte count as rounded kibibytes with thousands
// separators, without the unit.
func FormatKB(n int64) string {
	return humanize.Comma(int64(math.Round(float64(n) / 1024)))
}

// RenderReport lays out a scan report the way the checker always printed it:
// the UEFI block, chipset records, then the SMU table per family.
func RenderReport(rep *scan.Report, width int) string {
	if width <= 0 {
		width = ReportWidth
	}

	var lines []string
	add := func(s ...string) { lines = append(lines, s...) }
	divider := RenderHorizontalDivider(width, "─", DimColor)

	add(BannerStyle.Width(width).Render(uefiBanner))
	add(renderUEFI(rep, width)...)

	if len(rep.Chipsets) > 0 {
		add(divider)
		for _, c := range rep.Chipsets {
			add(LabelStyle.Render(ChipsetLine(c)))
		}
	}

	add("")
	add(BannerStyle.Width(width).Render(smuBanner))
	add(TableHeaderStyle.Width(width).Render(smuTableTitle))

	sep := familySeparator(width)
	for i, f := range rep.Families {
		if i > 0 {
			add(sep)
		}
		if len(f.Entries) == 0 {
			for _, l := range strings.Split(f.Message(), "\n") {
				add(DimStyle.Render("   " + l))
			}
			continue
		}
		for _, e := range f.Entries {
			add(EntryStyle.Render(EntryLine(f, e)))
		}
	}

	add("")
	add(CreditsStyle.Width(width).Render(creditsLine))

	return strings.Join(lines, "\n")
}

func renderUEFI(rep *scan.Report, width int) []string {
	var lines []string
	info := rep.Info

	if info == nil {
		lines = append(lines, VendorStyle.Render(center(rep.ImageName, width-2)))
		if rep.AgesaText != "" {
			lines = append(lines, AgesaStyle.Render("   AGESA: "+rep.AgesaText))
		}
		return lines
	}

	lines = append(lines,
		VendorStyle.Render(center(info.Vendor, width-2)),
		BoardStyle.Render(center(info.Board, width-2)),
	)
	switch {
	case info.AGESA != "":
		lines = append(lines, AgesaStyle.Render(center("AGESA "+info.AGESA, width-2)))
	case rep.AgesaText != "":
		lines = append(lines, AgesaStyle.Render(center("AGESA "+rep.AgesaText, width-2)))
	}
	lines = append(lines, RenderHorizontalDivider(width, "─", DimColor))

	if info.HasVersion() {
		lines = append(lines,
			LabelStyle.Render(uefiRowTitle),
			fmt.Sprintf("        %-21s   %-21s   %s KB ", info.Version, info.BuildDate, FormatKB(int64(rep.ImageSize))),
		)
	}
	return lines
}

// EntryLine formats one row of the SMU table.
func EntryLine(f smu.FamilyResult, e smu.Entry) string {
	return fmt.Sprintf("   %-11s   (%3s KB)   %-15s%s %s   %s",
		e.VersionString(), FormatKB(int64(e.Length)),
		f.Family.Label, f.Family.Series, f.Family.Kind, e.Range())
}

// ChipsetLine formats one chipset record.
func ChipsetLine(c smu.ChipsetEntry) string {
	return fmt.Sprintf("        Chipset Info:   %s | %s | %s | (%s KB)",
		c.Version, c.Firmware, c.Date, FormatKB(int64(c.Length)))
}

func familySeparator(width int) string {
	n := (width - 5) / 2
	if n < 1 {
		n = 1
	}
	return DimStyle.Render("   " + strings.TrimSpace(strings.Repeat("─ ", n)))
}

// center left-pads s so it sits in the middle of width columns.
func center(s string, width int) string {
	pad := (width - len([]rune(s))) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat(" ", pad) + s
}
