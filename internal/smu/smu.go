// Package smu decodes SMU firmware entries and chipset records located by the
// signature catalog.
//
// SMU entry layout, relative to the entry start:
//
//	0x60..0x63  version bytes, printed as b63.b62.b61.b60
//	0x6C        int32 LE length of the entry
//
// Chipset record layout, relative to the "_PT_" marker P:
//
//	-0x94       int32 LE record length
//	0x8C..0x8E  BCD date YY MM DD
//	0x8F..0x91  BCD version AA BB CC
//	0x93..0x97  ASCII firmware tag
package smu

import (
	"encoding/binary"
	"fmt"

	"github.com/am5tools/smucheck/internal/logging"
	"github.com/am5tools/smucheck/internal/pattern"
	"github.com/am5tools/smucheck/internal/signatures"
)

const (
	versionOffset = 0x60
	lengthOffset  = 0x6C
	// entrySpan is how many bytes of an entry must be inside the image.
	entrySpan = lengthOffset + 4
)

// DetectionStatus is the outcome of scanning one family.
type DetectionStatus int

const (
	// StatusNotFound means neither a header nor a CPUID probe matched.
	StatusNotFound DetectionStatus = iota
	// StatusCPUIDOnly means the CPUID is present but no header was found.
	StatusCPUIDOnly
	// StatusFound means at least one SMU entry was decoded.
	StatusFound
)

func (s DetectionStatus) String() string {
	switch s {
	case StatusFound:
		return "found"
	case StatusCPUIDOnly:
		return "cpuid-only"
	default:
		return "not-found"
	}
}

// Entry is one decoded SMU firmware entry.
type Entry struct {
	// Offset is the entry start in the image
	Offset int
	// Length is the entry size in bytes
	Length int32
	// Version holds the raw bytes at Offset+0x60..0x63
	Version [4]byte
}

// VersionString formats the version as "85.65.00.0" style text.
func (e Entry) VersionString() string {
	v := e.Version
	return fmt.Sprintf("%d.%02d.%02d.%d", v[3], v[2], v[1], v[0])
}

// End returns the offset just past the entry.
func (e Entry) End() int64 {
	return int64(e.Offset) + int64(e.Length)
}

// Range returns the entry bounds as "[0000ABCD-0001ABCD]".
func (e Entry) Range() string {
	return fmt.Sprintf("[%08X-%08X]", e.Offset, e.End())
}

// FamilyResult holds the scan outcome for one family.
type FamilyResult struct {
	Family  *signatures.Family
	Entries []Entry
	Status  DetectionStatus
}

// Message returns the explanation shown when no entry was decoded.
func (r FamilyResult) Message() string {
	switch r.Status {
	case StatusCPUIDOnly:
		return fmt.Sprintf("Found %s CPUID but SMU detection failed\nProgram update may be necessary", r.Family.Name)
	case StatusNotFound:
		return fmt.Sprintf("Couldn't find any %s SMU or CPUID - %s may not be supported", r.Family.Name, r.Family.Kind)
	default:
		return ""
	}
}

// ScanFamily finds and decodes every SMU entry of f in image. Matches whose
// entry would extend past either end of the image are dropped. With no
// entries the CPUID probes decide between StatusCPUIDOnly and
// StatusNotFound.
func ScanFamily(image []byte, f *signatures.Family) (FamilyResult, error) {
	res := FamilyResult{Family: f, Entries: []Entry{}}

	if len(image) >= f.Header.Len() {
		offsets, err := pattern.Search(image, f.Header, f.Bias)
		if err != nil {
			return res, fmt.Errorf("search %s header: %w", f.Name, err)
		}
		logging.LogMatches(f.Name, offsets)

		for _, off := range offsets {
			e, ok := decodeEntry(image, off)
			if !ok {
				logging.Debug("SMU match outside image, skipped")
				continue
			}
			res.Entries = append(res.Entries, e)
		}
	}

	switch {
	case len(res.Entries) > 0:
		res.Status = StatusFound
	case f.HasCPUID(image):
		res.Status = StatusCPUIDOnly
	default:
		res.Status = StatusNotFound
	}
	return res, nil
}

func decodeEntry(image []byte, off int) (Entry, bool) {
	if off < 0 || off+entrySpan > len(image) {
		return Entry{}, false
	}
	e := Entry{
		Offset: off,
		Length: int32(binary.LittleEndian.Uint32(image[off+lengthOffset:])),
	}
	copy(e.Version[:], image[off+versionOffset:off+versionOffset+4])
	logging.LogRawBytes("SMU entry header", image[off+versionOffset:off+entrySpan])
	return e, true
}
