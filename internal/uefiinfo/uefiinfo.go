// Package uefiinfo turns the raw fields pulled from a firmware image into
// the values shown to the user: a normalized build date and a UEFI version
// that some vendors only publish in the download's file name.
package uefiinfo

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/am5tools/smucheck/internal/extract"
)

// NotAvailable is shown for values that could not be determined.
const NotAvailable = "N/A"

// usLayouts are the month-first layouts AMI build dates come in.
var usLayouts = []string{
	"1/2/2006",
	"1-2-2006",
	"1.2.2006",
	"1/2/2006 15:04:05",
	"1/2/2006 3:04 PM",
}

var (
	nonDigits       = regexp.MustCompile(`\D+`)
	fileNameVersion = regexp.MustCompile(`(?i)\d+\.\d+(?:\.\d+)?(?:\.[A-Z]{2}\d{2})?`)
)

// versionFromFileNameVendors publish the real UEFI version only in the file
// name; the embedded AMI version is a placeholder.
var versionFromFileNameVendors = []string{"asrock", "nzxt"}

// Info is the user-facing UEFI summary of an image.
type Info struct {
	Vendor string
	Board  string
	// AGESA is the bare version, without the "AGESA " prefix
	AGESA string
	// Version is empty when the image carries no AMI version word
	Version   string
	BuildDate string
}

// HasVersion reports whether the version row should be shown.
func (i Info) HasVersion() bool {
	return i.Version != ""
}

// FromResult builds an Info from extracted metadata. fileName is the image
// or archive entry name.
func FromResult(res extract.Result, fileName string) Info {
	info := Info{
		Vendor:    res.Vendor(),
		Board:     res.Board(),
		AGESA:     res.AGESA,
		BuildDate: BuildDate(res.DateWord),
	}

	if res.VersionWord != "" {
		info.Version = res.VersionWord
		if UsesFileNameVersion(info.Vendor) {
			info.Version = VersionFromFileName(fileName)
			if info.Version == "" {
				info.Version = NotAvailable
			}
		}
	}
	return info
}

// UsesFileNameVersion reports whether vendor is one whose version must be
// taken from the file name.
func UsesFileNameVersion(vendor string) bool {
	lower := strings.ToLower(vendor)
	for _, v := range versionFromFileNameVendors {
		if strings.Contains(lower, v) {
			return true
		}
	}
	return false
}

// BuildDate normalizes an AMI date word and hides the 2012 placeholder some
// boards ship with.
func BuildDate(word string) string {
	d := NormalizeDate(word)
	if strings.Contains(d, "2012") {
		return NotAvailable
	}
	return d
}

// NormalizeDate converts a month-first date to dd.MM.yyyy. When no known
// layout fits, the first three digit groups are read as month, day and year,
// and swapped if that is the only valid reading. Anything else gives "N/A".
func NormalizeDate(input string) string {
	input = strings.TrimSpace(input)
	if input == "" {
		return NotAvailable
	}

	for _, layout := range usLayouts {
		if t, err := time.Parse(layout, input); err == nil {
			return t.Format("02.01.2006")
		}
	}

	parts := make([]string, 0, 3)
	for _, p := range nonDigits.Split(input, -1) {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) < 3 {
		return NotAvailable
	}

	month, err1 := strconv.Atoi(parts[0])
	day, err2 := strconv.Atoi(parts[1])
	year, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return NotAvailable
	}
	if year < 100 {
		if year <= 50 {
			year += 2000
		} else {
			year += 1900
		}
	}

	switch {
	case day >= 1 && day <= 31 && month >= 1 && month <= 12:
		return fmt.Sprintf("%02d.%02d.%04d", day, month, year)
	case month >= 1 && month <= 31 && day >= 1 && day <= 12:
		return fmt.Sprintf("%02d.%02d.%04d", month, day, year)
	}
	return NotAvailable
}

// VersionFromFileName returns the last version-like token in the file name
// without its extension, e.g. "3.20" for "B650M-PG-Riptide-3.20.AS01".
// It returns "" when there is none.
func VersionFromFileName(name string) string {
	if name == "" {
		return ""
	}
	base := filepath.Base(name)
	base = strings.TrimSuffix(base, filepath.Ext(base))

	matches := fileNameVersion.FindAllString(base, -1)
	if len(matches) == 0 {
		return ""
	}
	return matches[len(matches)-1]
}
