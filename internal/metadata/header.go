package metadata

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/ulikunitz/xz/lzma"
)

const (
	// PropsSize is the number of LZMA property bytes in the header.
	PropsSize = 5
	// HeaderSize is PropsSize plus the 8-byte uncompressed size.
	HeaderSize = PropsSize + 8

	// UnknownSize marks a stream whose uncompressed size is not recorded.
	UnknownSize int64 = -1
)

// ErrShortHeader is returned when fewer than HeaderSize bytes are available.
var ErrShortHeader = errors.New("short LZMA header")

// Header is the LZMA-alone stream header.
type Header struct {
	Props [PropsSize]byte
	// Size is the uncompressed size, or UnknownSize.
	Size int64
}

// ReadHeader consumes the 13 header bytes from r.
// An all-0xFF size field, or one above math.MaxInt64, decodes as UnknownSize.
func ReadHeader(r io.Reader) (Header, error) {
	var raw [HeaderSize]byte
	if _, err := io.ReadFull(r, raw[:]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return Header{}, ErrShortHeader
		}
		return Header{}, fmt.Errorf("read LZMA header: %w", err)
	}

	var h Header
	copy(h.Props[:], raw[:PropsSize])

	size := binary.LittleEndian.Uint64(raw[PropsSize:])
	if size > math.MaxInt64 {
		h.Size = UnknownSize
	} else {
		h.Size = int64(size)
	}
	return h, nil
}

// Bytes encodes the header back into its 13-byte form.
func (h Header) Bytes() []byte {
	raw := make([]byte, HeaderSize)
	copy(raw, h.Props[:])
	if h.Size < 0 {
		binary.LittleEndian.PutUint64(raw[PropsSize:], math.MaxUint64)
	} else {
		binary.LittleEndian.PutUint64(raw[PropsSize:], uint64(h.Size))
	}
	return raw
}

// Decompressor turns a compressed stream into a plain one. props holds the
// five property bytes and size the expected output length or UnknownSize.
type Decompressor func(props []byte, src io.Reader, size int64) (io.Reader, error)

// LZMA is the default Decompressor for LZMA-alone payloads.
func LZMA(props []byte, src io.Reader, size int64) (io.Reader, error) {
	if len(props) != PropsSize {
		return nil, fmt.Errorf("lzma: want %d property bytes, got %d", PropsSize, len(props))
	}

	var h Header
	copy(h.Props[:], props)
	h.Size = size

	r, err := lzma.NewReader(io.MultiReader(bytes.NewReader(h.Bytes()), src))
	if err != nil {
		return nil, fmt.Errorf("lzma: %w", err)
	}
	return r, nil
}
