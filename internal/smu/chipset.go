package smu

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/am5tools/smucheck/internal/logging"
	"github.com/am5tools/smucheck/internal/pattern"
	"github.com/am5tools/smucheck/internal/signatures"
)

const (
	chipsetLengthBack = 0x94
	chipsetDate       = 0x8C
	chipsetVersion    = 0x8F
	chipsetTag        = 0x93
	chipsetTagLen     = 5
	chipsetSpan       = chipsetTag + chipsetTagLen
)

// ChipsetEntry is one decoded chipset firmware record.
type ChipsetEntry struct {
	// Offset is the marker position
	Offset int
	// Length is the record size in bytes
	Length int32
	// Date is "20YY.MM.DD"
	Date string
	// Version is "AA.BB.CC"
	Version string
	// Firmware is "FW" followed by the 5-character tag
	Firmware string
}

// ScanChipset decodes up to c.MaxEntries chipset records. Markers whose
// record would leave the image are skipped and do not count.
func ScanChipset(image []byte, c signatures.Chipset) ([]ChipsetEntry, error) {
	entries := []ChipsetEntry{}
	if len(image) < c.Marker.Len() {
		return entries, nil
	}

	offsets, err := pattern.Search(image, c.Marker, 0)
	if err != nil {
		return entries, fmt.Errorf("search chipset marker: %w", err)
	}
	logging.LogMatches("chipset", offsets)

	for _, p := range offsets {
		if p-chipsetLengthBack < 0 || p+chipsetSpan > len(image) {
			continue
		}
		b := image[p:]
		entries = append(entries, ChipsetEntry{
			Offset:   p,
			Length:   int32(binary.LittleEndian.Uint32(image[p-chipsetLengthBack:])),
			Date:     fmt.Sprintf("20%02X.%02X.%02X", b[chipsetDate], b[chipsetDate+1], b[chipsetDate+2]),
			Version:  fmt.Sprintf("%02X.%02X.%02X", b[chipsetVersion], b[chipsetVersion+1], b[chipsetVersion+2]),
			Firmware: "FW" + pattern.ASCII(b[chipsetTag:chipsetTag+chipsetTagLen]),
		})
		if len(entries) >= c.MaxEntries {
			break
		}
	}
	return entries, nil
}

// FindAgesaText returns the plain-text AGESA string that older images carry
// after a fixed marker. Only the first marker is used. The string ends at the
// first NUL or after a.MaxLength bytes.
func FindAgesaText(image []byte, a signatures.AgesaText) (string, bool, error) {
	if len(image) < a.Marker.Len() {
		return "", false, nil
	}

	offsets, err := pattern.Search(image, a.Marker, a.Bias)
	if err != nil {
		return "", false, fmt.Errorf("search AGESA marker: %w", err)
	}
	if len(offsets) == 0 {
		return "", false, nil
	}

	start := offsets[0]
	if start < 0 || start >= len(image) {
		return "", false, nil
	}
	raw := image[start:min(start+a.MaxLength, len(image))]
	if i := bytes.IndexByte(raw, 0x00); i >= 0 {
		raw = raw[:i]
	}

	s := pattern.ASCII(raw)
	return s, s != "", nil
}
