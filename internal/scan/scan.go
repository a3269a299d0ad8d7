// Package scan runs every check against one firmware image and collects the
// outcome in a Report.
//
// A scan is sequential: load the image, decode the compressed metadata
// block, read the plain-text AGESA marker, decode chipset records, then look
// for each SMU family in catalog order.
package scan

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/am5tools/smucheck/internal/config"
	"github.com/am5tools/smucheck/internal/image"
	"github.com/am5tools/smucheck/internal/logging"
	"github.com/am5tools/smucheck/internal/metadata"
	"github.com/am5tools/smucheck/internal/signatures"
	"github.com/am5tools/smucheck/internal/smu"
	"github.com/am5tools/smucheck/internal/uefiinfo"
)

// Step numbers reported to a StepFunc.
const (
	StepLoad = iota + 1
	StepMetadata
	StepChipset
	StepSMU
)

// StepNames are the display names of the scan steps, indexed by step-1.
var StepNames = []string{
	"Load image",
	"Decode firmware metadata",
	"Search chipset records",
	"Search SMU signatures",
}

// StepFunc receives progress. done is false when a step starts and true when
// it ends; detail is a short note such as a match count.
type StepFunc func(step int, name string, done bool, detail string)

// Report is the outcome of scanning one image.
type Report struct {
	ImageName string
	ImagePath string
	ImageSize int
	// Info is nil when the image has no metadata block
	Info *uefiinfo.Info
	// AgesaText is the plain-text AGESA string, if the image has one
	AgesaText string
	Chipsets  []smu.ChipsetEntry
	Families  []smu.FamilyResult
}

// Found reports whether any family produced at least one SMU entry.
func (r *Report) Found() bool {
	for _, f := range r.Families {
		if f.Status == smu.StatusFound {
			return true
		}
	}
	return false
}

// Scanner runs scans with a fixed catalog and configuration.
type Scanner struct {
	catalog *signatures.Catalog
	locator *metadata.Locator
	chipset signatures.Chipset
	log     *zap.Logger
}

// New returns a Scanner. A nil cfg means defaults.
func New(cat *signatures.Catalog, cfg *config.Config) *Scanner {
	if cfg == nil {
		cfg = config.Default()
	}
	log := logging.GetLogger()

	chipset := cat.Chipset
	if cfg.Scan.MaxChipsetEntries > 0 {
		chipset.MaxEntries = cfg.Scan.MaxChipsetEntries
	}

	return &Scanner{
		catalog: cat,
		locator: metadata.NewLocator(
			metadata.WithCandidateOffsets(cfg.Scan.CandidateOffsets...),
			metadata.WithReadChunkSize(cfg.Scan.ReadChunkSize),
			metadata.WithDecodeBufferSize(cfg.Scan.DecodeBufferSize),
			metadata.WithLogger(log),
		),
		chipset: chipset,
		log:     log,
	}
}

// ScanFile loads the image at path and scans it.
func (s *Scanner) ScanFile(ctx context.Context, path string, onStep StepFunc) (*Report, error) {
	onStep = orNop(onStep)

	onStep(StepLoad, StepNames[StepLoad-1], false, "")
	img, err := image.Load(ctx, path)
	if err != nil {
		return nil, err
	}
	onStep(StepLoad, StepNames[StepLoad-1], true, img.Name)

	return s.scan(ctx, img, onStep)
}

// ScanImage scans an image that is already in memory.
func (s *Scanner) ScanImage(ctx context.Context, img *image.Image, onStep StepFunc) (*Report, error) {
	onStep = orNop(onStep)
	onStep(StepLoad, StepNames[StepLoad-1], true, img.Name)
	return s.scan(ctx, img, onStep)
}

func (s *Scanner) scan(ctx context.Context, img *image.Image, onStep StepFunc) (*Report, error) {
	rep := &Report{
		ImageName: img.Name,
		ImagePath: img.Path,
		ImageSize: img.Size(),
		Chipsets:  []smu.ChipsetEntry{},
		Families:  make([]smu.FamilyResult, 0, s.catalog.Count()),
	}
	s.log.Debug("Scanning image", zap.String("name", img.Name), zap.Int("size", img.Size()))

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	onStep(StepMetadata, StepNames[StepMetadata-1], false, "")
	if res, ok := s.locator.Locate(img.Data); ok {
		info := uefiinfo.FromResult(res, img.Name)
		rep.Info = &info
	}
	text, ok, err := smu.FindAgesaText(img.Data, s.catalog.AgesaText)
	if err != nil {
		return nil, err
	}
	if ok {
		rep.AgesaText = text
	}
	onStep(StepMetadata, StepNames[StepMetadata-1], true, metadataDetail(rep))

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	onStep(StepChipset, StepNames[StepChipset-1], false, "")
	rep.Chipsets, err = smu.ScanChipset(img.Data, s.chipset)
	if err != nil {
		return nil, err
	}
	onStep(StepChipset, StepNames[StepChipset-1], true, fmt.Sprintf("%d found", len(rep.Chipsets)))

	onStep(StepSMU, StepNames[StepSMU-1], false, "")
	entries := 0
	for _, f := range s.catalog.Families {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		res, err := smu.ScanFamily(img.Data, f)
		if err != nil {
			return nil, err
		}
		s.log.Debug("Family scanned",
			zap.String("family", f.Name),
			zap.Stringer("status", res.Status),
			zap.Int("entries", len(res.Entries)),
		)
		entries += len(res.Entries)
		rep.Families = append(rep.Families, res)
	}
	onStep(StepSMU, StepNames[StepSMU-1], true, fmt.Sprintf("%d entries", entries))

	return rep, nil
}

func metadataDetail(rep *Report) string {
	switch {
	case rep.Info != nil && rep.Info.AGESA != "":
		return "AGESA " + rep.Info.AGESA
	case rep.AgesaText != "":
		return rep.AgesaText
	case rep.Info != nil:
		return "no AGESA string"
	default:
		return "not found"
	}
}

func orNop(f StepFunc) StepFunc {
	if f == nil {
		return func(int, string, bool, string) {}
	}
	return f
}
