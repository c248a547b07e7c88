package dsm

import (
	"testing"
)

// NewTestHarness wraps t with a few convenience constructors shared by the
// package's table-driven tests.
func NewTestHarness(t *testing.T) *testHarness {
	return &testHarness{T: t}
}

type testHarness struct {
	*testing.T
}

// MustParse parses source, failing the test immediately if it is invalid.
func (t *testHarness) MustParse(source string) *Program {
	t.Helper()

	p, err := Parse(source)
	if err != nil {
		t.Fatalf("parse %q: %s", source, err)
	}

	return p
}

// MustMachine builds a Machine for p with baseline, failing the test
// immediately on error.
func (t *testHarness) MustMachine(p *Program, baseline map[string]string) *Machine {
	t.Helper()

	m, err := NewMachine(p, baseline)
	if err != nil {
		t.Fatalf("new machine: %s", err)
	}

	return m
}
