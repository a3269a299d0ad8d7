package pattern

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantLen int
		wantErr error
	}{
		{name: "concrete bytes", text: "5F 50 54 5F", wantLen: 4},
		{name: "wildcards", text: "54 ? 00 ?? 08", wantLen: 5},
		{name: "lowercase hex", text: "4c 0a", wantLen: 2},
		{name: "extra whitespace", text: "  01   02\t03 ", wantLen: 3},
		{name: "empty", text: "", wantErr: ErrEmptyInput},
		{name: "blank", text: "   ", wantErr: ErrEmptyInput},
		{name: "bad token", text: "01 ZZ 03", wantErr: ErrPatternParse},
		{name: "token too wide", text: "01 123", wantErr: ErrPatternParse},
		{name: "all wildcards", text: "? ? ?", wantErr: ErrPatternParse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Parse(tt.text)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				var perr *Error
				assert.True(t, errors.As(err, &perr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantLen, p.Len())
		})
	}
}

func TestPatternString(t *testing.T) {
	p, err := New([]Token{{Value: 0x54}, {Wildcard: true}, {Value: 0x0A}})
	require.NoError(t, err)
	assert.Equal(t, "54 ? 0A", p.String())

	parsed := MustParse("54 ?? 0a")
	assert.Equal(t, "54 ?? 0a", parsed.String())
	assert.True(t, parsed.MatchesAt(1, 0xEE))
	assert.False(t, parsed.MatchesAt(0, 0x55))
}

func TestMustParsePanics(t *testing.T) {
	assert.Panics(t, func() { MustParse("??") })
}

func TestSkipTableEntriesArePositive(t *testing.T) {
	patterns := []string{
		"AA",
		"AA BB",
		"AA ?",
		"? AA",
		"54 ? 00 00 00 00 00 00 00 ? ? ? ? 00 00 00 00 00 00 00 00 00 00 00 00 00 08 00 01 00",
		"01 00 00 00 02 00 00 00 00 00 04 00 ? ? ? 00 ? 10 01 81 00 00 00 00 ? ? 4C",
	}
	for _, text := range patterns {
		table := skipTable(MustParse(text))
		for v, s := range table {
			if s < 1 {
				t.Fatalf("pattern %q: skip[%#02x] = %d, want >= 1", text, v, s)
			}
		}
	}
}

func TestSearchOverlapping(t *testing.T) {
	got, err := SearchString([]byte{0xAA, 0xAA, 0xAA}, "AA AA", 0)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, got)
}

func TestSearchBias(t *testing.T) {
	data := []byte{0x00, 0x5F, 0x50, 0x54, 0x5F, 0x00, 0x5F, 0x50, 0x54, 0x5F}
	got, err := SearchString(data, "5F 50 54 5F", -1)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 5}, got)
}

func TestSearchNoMatch(t *testing.T) {
	got, err := SearchString(bytes.Repeat([]byte{0x11}, 64), "22 ? 33", 0)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSearchErrors(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		text    string
		wantErr error
	}{
		{name: "empty buffer", data: nil, text: "AA", wantErr: ErrEmptyInput},
		{name: "empty pattern", data: []byte{1, 2, 3}, text: "", wantErr: ErrEmptyInput},
		{name: "pattern longer than data", data: []byte{0xAA}, text: "AA AA", wantErr: ErrPatternTooLarge},
		{name: "unparseable", data: []byte{1, 2, 3}, text: "G1", wantErr: ErrPatternParse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SearchString(tt.data, tt.text, 0)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	_, err := Search([]byte{1}, nil, 0)
	assert.ErrorIs(t, err, ErrEmptyInput)
}

// Every concrete position matching must be enough, whatever sits under the
// wildcards and wherever the occurrence lands.
func TestSearchFindsWildcardOccurrences(t *testing.T) {
	patterns := []string{
		"54 ? 00 00 00 00 00 00 00 ? ? ? ? 00 00 00 00 00 00 00 00 00 00 00 00 00 08 00 01 00",
		"01 00 00 00 02 00 00 00 00 00 04 00 ? ? ? 00 ? 10 01 81 00 00 00 00 ? ? 4C",
		"? 4C",
		"4C ?",
		"AA ? ? BB",
	}
	fills := []byte{0x00, 0x4C, 0x54, 0xFF, 0x08}

	for _, text := range patterns {
		p := MustParse(text)
		for _, fill := range fills {
			for _, pos := range []int{0, 1, 7, 63, 100} {
				data := bytes.Repeat([]byte{0x33}, pos+p.Len()+17)
				for i := 0; i < p.Len(); i++ {
					tok := p.Token(i)
					if tok.Wildcard {
						data[pos+i] = fill
					} else {
						data[pos+i] = tok.Value
					}
				}

				got, err := Search(data, p, -0x62)
				require.NoError(t, err)
				assert.Contains(t, got, pos-0x62, "pattern %q fill %#02x pos %d", text, fill, pos)
			}
		}
	}
}

func TestSearchMatchesBruteForce(t *testing.T) {
	data := []byte("xxABxABCABxxABAB?ABCABAB")
	patterns := []string{"41 42", "41 ? 41", "42 41 42", "? 42 43", "41 42 ? ? 41"}

	for _, text := range patterns {
		p := MustParse(text)
		var want []int
		for i := 0; i+p.Len() <= len(data); i++ {
			ok := true
			for j := 0; j < p.Len(); j++ {
				if !p.MatchesAt(j, data[i+j]) {
					ok = false
					break
				}
			}
			if ok {
				want = append(want, i)
			}
		}

		got, err := Search(data, p, 0)
		require.NoError(t, err)
		if want == nil {
			assert.Empty(t, got, text)
		} else {
			assert.Equal(t, want, got, text)
		}
	}
}

func TestIndexOf(t *testing.T) {
	needle := []byte{0x93, 0xFD, 0x21, 0x9E, 0x72, 0x9C, 0x15, 0x4C, 0x8C, 0x4B, 0xE7, 0x7F, 0x1D, 0xB2, 0xD7, 0x92}

	data := make([]byte, 4096)
	copy(data[1000:], needle)
	copy(data[3000:], needle)

	assert.Equal(t, 1000, IndexOf(data, needle))
	assert.Equal(t, IndexOf(data, needle), IndexOf(data, needle), "repeated lookups agree")
	assert.Equal(t, -1, IndexOf(data[:1010], needle))
	assert.Equal(t, -1, IndexOf(needle[:4], needle))
	assert.Equal(t, 0, IndexOf(data, nil))
	assert.Equal(t, 2, IndexOf([]byte("abcabd"), []byte("cab")))
}

func TestASCII(t *testing.T) {
	assert.Equal(t, "ASRock", ASCII([]byte("ASRock")))
	assert.Equal(t, "B?50?", ASCII([]byte{'B', 0xC3, '5', '0', 0xFF}))
	assert.Equal(t, "", ASCII(nil))
}
