// Package extract pulls the AGESA version, the AMI version/date pair and the
// board name words out of a decompressed firmware metadata stream.
//
// Three recognizers run side by side over the same bytes. Each one waits for
// its own marker, then splits the following data on NUL bytes:
//
//   - AGESA: marker "AGESA!V9", keeps the first non-empty field and freezes
//     it on the second terminator
//   - AMI: marker "American Megatrends ", keeps a window of the last two
//     words and freezes it on a double NUL
//   - Name: marker 01 02 03 04 05 09 06 ? 00 0A 00, freezes the word list
//     once it holds two words
//
// The stream is never materialized. An Extractor reports when all three
// recognizers have finished so the caller can stop decompressing.
package extract

import (
	"errors"
	"io"

	"github.com/am5tools/smucheck/internal/pattern"
)

// DefaultBufferSize is the read size Run uses when none is given.
const DefaultBufferSize = 8192

// nameWordCount is how many words the name recognizer waits for.
const nameWordCount = 2

// Markers for the three recognizers.
var (
	AGESAMarker = pattern.Literal([]byte("AGESA!V9"))
	AMIMarker   = pattern.Literal([]byte("American Megatrends "))
	NameMarker  = pattern.MustParse("01 02 03 04 05 09 06 ? 00 0A 00")
)

// Result holds the fields frozen by the recognizers. Empty strings and a nil
// slice mean the field was not found.
type Result struct {
	// AGESA is the AGESA version string, e.g. "ComboAM5PI 1.2.0.3"
	AGESA string
	// VersionWord is the second-to-last word before the AMI double NUL
	VersionWord string
	// DateWord is the last word before the AMI double NUL
	DateWord string
	// NameWords are the words after the name marker (vendor, board)
	NameWords []string
}

// Empty reports whether no field was found.
func (r Result) Empty() bool {
	return r.AGESA == "" && r.VersionWord == "" && r.DateWord == "" && len(r.NameWords) == 0
}

// Vendor returns the first name word, if any.
func (r Result) Vendor() string {
	if len(r.NameWords) > 0 {
		return r.NameWords[0]
	}
	return ""
}

// Board returns the second name word, if any.
func (r Result) Board() string {
	if len(r.NameWords) > 1 {
		return r.NameWords[1]
	}
	return ""
}

// Extractor multiplexes the three recognizers over one byte stream.
// It is single-use: create a new one per stream.
type Extractor struct {
	agesa  markerField
	ami    trailingWords
	name   leadingWords
	result Result
	fed    int64
}

// New returns a fresh extractor.
func New() *Extractor {
	return &Extractor{
		agesa: newMarkerField(AGESAMarker),
		ami:   newTrailingWords(AMIMarker),
		name:  newLeadingWords(NameMarker, nameWordCount),
	}
}

// Feed dispatches p byte by byte. It stops right after the byte that
// completes the last recognizer and returns how many bytes it consumed.
func (e *Extractor) Feed(p []byte) (n int, finished bool) {
	if e.Done() {
		return 0, true
	}

	for i, b := range p {
		if e.agesa.phase != done {
			e.agesa.advance(b, &e.result)
		}
		if e.ami.phase != done {
			e.ami.advance(b, &e.result)
		}
		if e.name.phase != done {
			e.name.advance(b, &e.result)
		}

		if e.Done() {
			e.fed += int64(i + 1)
			return i + 1, true
		}
	}

	e.fed += int64(len(p))
	return len(p), false
}

// Done reports whether all three recognizers have finished.
func (e *Extractor) Done() bool {
	return e.agesa.phase == done && e.ami.phase == done && e.name.phase == done
}

// Consumed returns the total number of bytes fed so far.
func (e *Extractor) Consumed() int64 {
	return e.fed
}

// Result returns the fields frozen so far.
func (e *Extractor) Result() Result {
	return e.result
}

// Run feeds r into a fresh extractor in chunks of bufSize bytes until all
// recognizers finish or r is exhausted. No read is issued once the extractor
// is done. Read errors other than io.EOF are returned with the partial result.
func Run(r io.Reader, bufSize int) (Result, bool, error) {
	if bufSize < 1 {
		bufSize = DefaultBufferSize
	}

	e := New()
	buf := make([]byte, bufSize)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			if _, finished := e.Feed(buf[:n]); finished {
				return e.Result(), true, nil
			}
		}
		if errors.Is(err, io.EOF) {
			return e.Result(), false, nil
		}
		if err != nil {
			return e.Result(), false, err
		}
	}
}
