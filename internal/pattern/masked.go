package pattern

// ContainsMasked reports whether data contains seq, ignoring every position
// whose mask byte is 0x00. Invalid input (empty, length mismatch, data
// shorter than seq) is reported as no match.
func ContainsMasked(data, seq, mask []byte) bool {
	if len(seq) == 0 || len(seq) != len(mask) || len(data) < len(seq) {
		return false
	}

	for i := 0; i <= len(data)-len(seq); i++ {
		match := true
		for j := range seq {
			if mask[j] == 0x00 {
				continue
			}
			if data[i+j] != seq[j] {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}
