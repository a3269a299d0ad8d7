package pattern

// skipTable builds the Horspool shift table for p.
//
// Only the tail after the last wildcard carries usable byte information: a
// wildcard matches every value, so no shift may carry it past the byte under
// the window's last position. Every entry is at least 1.
func skipTable(p *Pattern) [256]int {
	var table [256]int
	lastIndex := len(p.tokens) - 1

	lastWildcard := 0
	for i := lastIndex; i >= 0; i-- {
		if p.tokens[i].Wildcard {
			lastWildcard = i
			break
		}
	}

	diff := lastIndex - lastWildcard
	if diff == 0 {
		diff = 1
	}
	for i := range table {
		table[i] = diff
	}

	for i := lastIndex - diff; i < lastIndex; i++ {
		if i < 0 || p.tokens[i].Wildcard {
			continue
		}
		table[p.tokens[i].Value] = lastIndex - i
	}

	return table
}

// Search returns every offset in data where p matches, plus bias, in
// ascending order. Overlapping matches are all reported.
func Search(data []byte, p *Pattern, bias int) ([]int, error) {
	if len(data) == 0 || p == nil || len(p.tokens) == 0 {
		return nil, &Error{Err: ErrEmptyInput}
	}
	if len(data) < len(p.tokens) {
		return nil, &Error{Pattern: p.String(), Err: ErrPatternTooLarge}
	}

	last := len(p.tokens) - 1
	skip := skipTable(p)
	matches := make([]int, 0)

	for i := 0; i <= len(data)-len(p.tokens); i += max(skip[data[i+last]], 1) {
		j := last
		for ; j >= 0; j-- {
			t := p.tokens[j]
			if !t.Wildcard && data[i+j] != t.Value {
				break
			}
		}
		if j < 0 {
			matches = append(matches, i+bias)
		}
	}

	return matches, nil
}

// SearchString parses text and runs Search.
func SearchString(data []byte, text string, bias int) ([]int, error) {
	if len(data) == 0 || text == "" {
		return nil, &Error{Pattern: text, Err: ErrEmptyInput}
	}
	p, err := Parse(text)
	if err != nil {
		return nil, err
	}
	return Search(data, p, bias)
}

// IndexOf returns the first offset of needle in data, or -1.
func IndexOf(data, needle []byte) int {
	n, m := len(data), len(needle)
	if m == 0 {
		return 0
	}
	if n < m {
		return -1
	}

	var shift [256]int
	for i := range shift {
		shift[i] = m
	}
	for i := 0; i < m-1; i++ {
		shift[needle[i]] = m - 1 - i
	}

	lastByte := needle[m-1]
	for pos := 0; pos <= n-m; pos += shift[data[pos+m-1]] {
		if data[pos+m-1] != lastByte {
			continue
		}
		j := m - 2
		for j >= 0 && data[pos+j] == needle[j] {
			j--
		}
		if j < 0 {
			return pos
		}
	}
	return -1
}
