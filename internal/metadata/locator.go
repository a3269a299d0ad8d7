// Package metadata finds the compressed firmware metadata block in an image
// and runs the extractor over its decompressed contents.
//
// The block is tagged with a fixed GUID. The LZMA-alone payload starts a
// short, board-dependent distance after it, so a list of candidate offsets is
// tried in order until one decodes.
package metadata

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/linuxboot/fiano/pkg/guid"
	"go.uber.org/zap"

	"github.com/am5tools/smucheck/internal/extract"
	"github.com/am5tools/smucheck/internal/logging"
	"github.com/am5tools/smucheck/internal/pattern"
	"github.com/am5tools/smucheck/internal/segment"
)

const (
	// MinImageSize is the smallest image that can hold a metadata block.
	MinImageSize = 32

	DefaultReadChunkSize    = 4096
	DefaultDecodeBufferSize = 8192
)

// BlockGUID tags the metadata block.
var BlockGUID = guid.MustParse("9E21FD93-9C72-4C15-8C4B-E77F1DB2D792")

// DefaultCandidateOffsets are the distances from the GUID to the LZMA header.
var DefaultCandidateOffsets = []int{0x30, 0x3C}

// Locator finds and decodes the metadata block.
type Locator struct {
	offsets    []int
	readChunk  int
	decodeBuf  int
	decompress Decompressor
	log        *zap.Logger
}

// Option configures a Locator.
type Option func(*Locator)

// WithCandidateOffsets replaces the GUID-relative payload offsets.
func WithCandidateOffsets(offsets ...int) Option {
	return func(l *Locator) {
		if len(offsets) > 0 {
			l.offsets = append([]int(nil), offsets...)
		}
	}
}

// WithReadChunkSize caps each read from the compressed source.
func WithReadChunkSize(n int) Option {
	return func(l *Locator) {
		if n > 0 {
			l.readChunk = n
		}
	}
}

// WithDecodeBufferSize sets the decompressed feed size.
func WithDecodeBufferSize(n int) Option {
	return func(l *Locator) {
		if n > 0 {
			l.decodeBuf = n
		}
	}
}

// WithDecompressor replaces the LZMA decoder.
func WithDecompressor(d Decompressor) Option {
	return func(l *Locator) {
		if d != nil {
			l.decompress = d
		}
	}
}

// WithLogger sets the logger. The global logger is used otherwise.
func WithLogger(log *zap.Logger) Option {
	return func(l *Locator) {
		if log != nil {
			l.log = log
		}
	}
}

// NewLocator returns a Locator with defaults overridden by opts.
func NewLocator(opts ...Option) *Locator {
	l := &Locator{
		offsets:    DefaultCandidateOffsets,
		readChunk:  DefaultReadChunkSize,
		decodeBuf:  DefaultDecodeBufferSize,
		decompress: LZMA,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.log == nil {
		l.log = logging.GetLogger()
	}
	return l
}

// FindGUID returns the offset of the first BlockGUID occurrence.
func (l *Locator) FindGUID(image []byte) (int, bool) {
	if len(image) < MinImageSize {
		return -1, false
	}
	pos := pattern.IndexOf(image, BlockGUID[:])
	return pos, pos >= 0
}

// Locate returns the extracted metadata. ok is false when the image has no
// block, or when no candidate yields any field. Candidate failures are
// logged, not returned.
func (l *Locator) Locate(image []byte) (extract.Result, bool) {
	base, found := l.FindGUID(image)
	if !found {
		l.log.Debug("Metadata GUID not found", zap.Int("image_size", len(image)))
		return extract.Result{}, false
	}
	l.log.Debug("Metadata GUID found", zap.String("offset", fmt.Sprintf("0x%X", base)))

	var failures *multierror.Error
	for _, off := range l.offsets {
		start := base + off
		if start < 0 || len(image)-start < HeaderSize {
			continue
		}

		res, finished, err := l.tryCandidate(image, start)
		logging.LogCandidate(start, err)
		if err != nil {
			failures = multierror.Append(failures, fmt.Errorf("candidate 0x%X: %w", start, err))
			continue
		}
		if finished || !res.Empty() {
			l.log.Debug("Metadata extracted",
				zap.String("offset", fmt.Sprintf("0x%X", start)),
				zap.Bool("complete", finished),
			)
			return res, true
		}
	}

	if err := failures.ErrorOrNil(); err != nil {
		l.log.Debug("No metadata candidate decoded", zap.Error(err))
	}
	return extract.Result{}, false
}

func (l *Locator) tryCandidate(image []byte, start int) (extract.Result, bool, error) {
	src, err := segment.NewReader(image, start, -1, l.readChunk)
	if err != nil {
		return extract.Result{}, false, err
	}

	h, err := ReadHeader(src)
	if err != nil {
		return extract.Result{}, false, err
	}

	stream, err := l.decompress(h.Props[:], src, h.Size)
	if err != nil {
		return extract.Result{}, false, err
	}

	return extract.Run(stream, l.decodeBuf)
}
