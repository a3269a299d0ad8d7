// Package segment provides a read-only, seekable view over part of an
// in-memory firmware image.
//
// The view hands out data in chunks of at most ChunkSize bytes per Read, so a
// consumer such as a decompressor never pulls more of the image than it asks
// for in one step.
package segment

import (
	"errors"
	"fmt"
	"io"
)

// DefaultChunkSize is the per-Read cap used when none is given.
const DefaultChunkSize = 16384

var (
	// ErrSeekOutOfRange is returned when a seek lands outside the segment.
	ErrSeekOutOfRange = errors.New("seek out of range")

	// ErrInvalidStart is returned when the segment start is outside the data.
	ErrInvalidStart = errors.New("segment start out of range")
)

// Reader is a cursor over data[start:end].
type Reader struct {
	data  []byte
	start int
	end   int
	pos   int
	chunk int
}

var (
	_ io.Reader = (*Reader)(nil)
	_ io.Seeker = (*Reader)(nil)
)

// NewReader returns a reader over data[start:start+length].
// A negative length means "up to the end of data"; a length past the end is
// clamped. A chunkSize below 1 is raised to 1.
func NewReader(data []byte, start, length, chunkSize int) (*Reader, error) {
	if start < 0 || start > len(data) {
		return nil, fmt.Errorf("%w: %d (data length %d)", ErrInvalidStart, start, len(data))
	}

	end := len(data)
	if length >= 0 && length < len(data)-start {
		end = start + length
	}

	return &Reader{
		data:  data,
		start: start,
		end:   end,
		pos:   start,
		chunk: max(chunkSize, 1),
	}, nil
}

// Read copies at most min(len(p), remaining, chunk size) bytes.
// At the end of the segment it returns 0, io.EOF.
func (r *Reader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if r.pos >= r.end {
		return 0, io.EOF
	}

	n := min(len(p), r.end-r.pos, r.chunk)
	copy(p, r.data[r.pos:r.pos+n])
	r.pos += n
	return n, nil
}

// Seek moves the cursor relative to the segment. The resulting position must
// lie within [0, Size()].
func (r *Reader) Seek(offset int64, whence int) (int64, error) {
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = int64(r.start) + offset
	case io.SeekCurrent:
		abs = int64(r.pos) + offset
	case io.SeekEnd:
		abs = int64(r.end) + offset
	default:
		return 0, fmt.Errorf("segment: invalid whence %d", whence)
	}

	if abs < int64(r.start) || abs > int64(r.end) {
		return 0, ErrSeekOutOfRange
	}
	r.pos = int(abs)
	return abs - int64(r.start), nil
}

// Len returns the number of unread bytes.
func (r *Reader) Len() int {
	return r.end - r.pos
}

// Size returns the segment length.
func (r *Reader) Size() int {
	return r.end - r.start
}

// ChunkSize returns the per-Read cap.
func (r *Reader) ChunkSize() int {
	return r.chunk
}
