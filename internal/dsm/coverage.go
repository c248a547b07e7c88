package dsm

// coverage.go defines the bit vector produced by RunCoverage (§4.4): one
// bool per instruction index, set whenever that instruction is dispatched.

import "strings"

// Coverage records which instructions were dispatched during a run.
type Coverage []bool

// String renders a compact one-character-per-instruction summary: '#' for
// a covered instruction, '.' for one never reached.
func (c Coverage) String() string {
	var b strings.Builder

	b.Grow(len(c))

	for _, hit := range c {
		if hit {
			b.WriteByte('#')
		} else {
			b.WriteByte('.')
		}
	}

	return b.String()
}

// Count returns the number of covered instructions.
func (c Coverage) Count() int {
	n := 0

	for _, hit := range c {
		if hit {
			n++
		}
	}

	return n
}

// Complete reports whether every instruction was covered.
func (c Coverage) Complete() bool {
	return c.Count() == len(c)
}
