package extract

import "github.com/am5tools/smucheck/internal/pattern"

// initialWordCap is the starting capacity of a word buffer; append doubles it.
const initialWordCap = 64

type phase int

const (
	seeking phase = iota
	collecting
	done
)

// trigger tracks how much of a marker has been seen so far. On a mismatch it
// restarts at 1 if the byte opens the marker, else at 0.
type trigger struct {
	marker *pattern.Pattern
	pos    int
}

// step feeds one byte and reports whether the marker just completed.
func (t *trigger) step(b byte) bool {
	switch {
	case t.marker.MatchesAt(t.pos, b):
		t.pos++
	case t.marker.MatchesAt(0, b):
		t.pos = 1
	default:
		t.pos = 0
	}

	if t.pos == t.marker.Len() {
		t.pos = 0
		return true
	}
	return false
}

// markerField captures the first non-empty field after its marker and
// freezes it on the second NUL terminator.
type markerField struct {
	trig   trigger
	phase  phase
	fields int
	cur    []byte
	value  []byte
}

func newMarkerField(marker *pattern.Pattern) markerField {
	return markerField{
		trig: trigger{marker: marker},
		cur:  make([]byte, 0, initialWordCap),
	}
}

func (r *markerField) advance(b byte, res *Result) {
	switch r.phase {
	case seeking:
		if r.trig.step(b) {
			r.phase = collecting
			r.fields = 0
			r.cur = r.cur[:0]
		}
	case collecting:
		if b != 0x00 {
			if r.fields <= 1 {
				r.cur = append(r.cur, b)
			}
			return
		}
		if r.value == nil && len(r.cur) > 0 {
			r.value = append([]byte(nil), r.cur...)
		}
		if r.fields == 1 {
			res.AGESA = pattern.ASCII(r.value)
			r.phase = done
		}
		r.fields++
		r.cur = r.cur[:0]
	}
}

// trailingWords keeps the last two words after its marker and freezes them
// once a run of two NUL bytes is seen.
type trailingWords struct {
	trig    trigger
	phase   phase
	zeroRun int
	cur     []byte
	last1   string
	last2   string
}

func newTrailingWords(marker *pattern.Pattern) trailingWords {
	return trailingWords{
		trig: trigger{marker: marker},
		cur:  make([]byte, 0, initialWordCap),
	}
}

func (r *trailingWords) advance(b byte, res *Result) {
	switch r.phase {
	case seeking:
		if r.trig.step(b) {
			r.phase = collecting
			r.zeroRun = 0
			r.cur = r.cur[:0]
			r.last1, r.last2 = "", ""
		}
	case collecting:
		if b != 0x00 {
			r.zeroRun = 0
			r.cur = append(r.cur, b)
			return
		}
		r.zeroRun++
		if len(r.cur) > 0 {
			r.last2, r.last1 = r.last1, pattern.ASCII(r.cur)
			r.cur = r.cur[:0]
		}
		if r.zeroRun >= 2 {
			res.VersionWord = r.last2
			res.DateWord = r.last1
			r.phase = done
		}
	}
}

// leadingWords collects NUL terminated words after its marker and freezes
// the list once it holds want entries.
type leadingWords struct {
	trig  trigger
	phase phase
	want  int
	cur   []byte
	words []string
}

func newLeadingWords(marker *pattern.Pattern, want int) leadingWords {
	return leadingWords{
		trig: trigger{marker: marker},
		want: want,
		cur:  make([]byte, 0, initialWordCap),
	}
}

func (r *leadingWords) advance(b byte, res *Result) {
	switch r.phase {
	case seeking:
		if r.trig.step(b) {
			r.phase = collecting
			r.cur = r.cur[:0]
			r.words = r.words[:0]
		}
	case collecting:
		if b != 0x00 {
			r.cur = append(r.cur, b)
			return
		}
		if len(r.cur) > 0 {
			r.words = append(r.words, pattern.ASCII(r.cur))
			r.cur = r.cur[:0]
		}
		if len(r.words) >= r.want {
			res.NameWords = append([]string(nil), r.words...)
			r.phase = done
		}
	}
}
