// Package pattern implements the byte signature matchers used to find SMU
// headers, chipset records and GUID markers inside firmware images.
//
// # Pattern Syntax
//
// A pattern is a whitespace separated list of hex bytes. A token made only of
// question marks ("?" or "??") is a wildcard and matches any byte value:
//
//	p, err := pattern.Parse("54 ? 00 00 ? ? 08 00 01 00")
//
// A pattern must contain at least one concrete byte.
//
// # Matchers
//
//   - Search: Horspool search adapted for wildcards, returns every match
//     (overlapping ones included) in ascending order, shifted by a bias
//   - IndexOf: plain Horspool, first occurrence of a fully concrete needle
//   - ContainsMasked: brute force containment check with a byte mask, used
//     as a best-effort CPUID heuristic
//
// Search reports caller mistakes (empty input, unparseable pattern, pattern
// longer than the buffer) as *Error values. A buffer with no occurrence is not
// an error: the result is simply empty.
package pattern
