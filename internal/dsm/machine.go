package dsm

// machine.go defines Machine, the mutable execution instance bound to a
// single Program (specification §3 "Machine" and §6 "Host API"). A Machine
// owns its operand stack, its value arena, and two parallel variable
// banks — current and baseline — and is intended to be constructed once
// and Reset and Run many times.

import (
	"fmt"

	"github.com/cockroachdb/apd/v3"

	"github.com/dsmlang/dsm/internal/log"
)

// StackSize is the maximum operand stack depth.
const StackSize = 32

// DefaultInstructionLimit is the per-run instruction budget a Machine uses
// unless overridden.
const DefaultInstructionLimit = 10000

// Machine is a mutable execution instance bound to one Program.
type Machine struct {
	program *Program

	current  []*cell
	baseline []*cell

	stack      [StackSize]*cell
	stackUsed  int

	heap arena

	// InstructionLimit bounds the number of ticks a single Run or
	// RunCoverage may execute. Zero means the very first instruction
	// already exceeds the limit.
	InstructionLimit int

	// RandomSource supplies values for the Lr opcode. It is resolved
	// lazily: whichever value is set here at the first Lr of a run is
	// used for the remainder of that run.
	RandomSource RandomSource

	randomResolved bool
	randomActive   RandomSource

	log *log.Logger
}

// NewMachine constructs a Machine bound to p, with initial variable values
// taken from baseline (unset variables default to zero). Unknown names in
// baseline fail with *KeyError; unparsable values fail with *ValueError.
func NewMachine(p *Program, baseline map[string]string) (*Machine, error) {
	m := &Machine{
		program:          p,
		InstructionLimit: DefaultInstructionLimit,
		log:              log.DefaultLogger(),
	}

	n := len(p.variableNames)
	m.current = make([]*cell, n)
	m.baseline = make([]*cell, n)

	for i := range m.current {
		m.current[i] = internedZero
		m.baseline[i] = internedZero
	}

	for name, value := range baseline {
		slot, ok := p.variableIndex[name]
		if !ok {
			return nil, &KeyError{Name: name}
		}

		c, err := m.cellFromString(value)
		if err != nil {
			return nil, err
		}

		m.current[slot] = c
		m.baseline[slot] = c
	}

	return m, nil
}

// Program returns the Machine's bound Program.
func (m *Machine) Program() *Program { return m.program }

// Get returns the canonical decimal string form of a variable's current
// value.
func (m *Machine) Get(name string) (string, error) {
	slot, ok := m.program.variableIndex[name]
	if !ok {
		return "", &KeyError{Name: name}
	}

	return m.current[slot].String(), nil
}

// Set assigns a variable's current value. value may be a bool (mapped to
// 1/0), any Go integer type, *apd.Decimal, or a decimal-parsable string.
func (m *Machine) Set(name string, value any) error {
	slot, ok := m.program.variableIndex[name]
	if !ok {
		return &KeyError{Name: name}
	}

	c, err := m.cellFromValue(value)
	if err != nil {
		return err
	}

	m.current[slot] = c

	return nil
}

// Reset restores every current variable slot to its baseline value, then
// applies overrides (by the same rules as Set).
func (m *Machine) Reset(overrides map[string]string) error {
	copy(m.current, m.baseline)

	for name, value := range overrides {
		if err := m.Set(name, value); err != nil {
			return err
		}
	}

	return nil
}

// cellFromValue converts a host value into a cell, allocating from the
// Machine's arena when the value is not a small interned integer.
func (m *Machine) cellFromValue(value any) (*cell, error) {
	switch v := value.(type) {
	case bool:
		if v {
			return internedOne, nil
		}

		return internedZero, nil
	case string:
		return m.cellFromString(v)
	case *apd.Decimal:
		return m.cellFromDecimal(v)
	case int:
		return m.cellFromInt64(int64(v))
	case int8:
		return m.cellFromInt64(int64(v))
	case int16:
		return m.cellFromInt64(int64(v))
	case int32:
		return m.cellFromInt64(int64(v))
	case int64:
		return m.cellFromInt64(v)
	case uint:
		return m.cellFromInt64(int64(v))
	case uint8:
		return m.cellFromInt64(int64(v))
	case uint16:
		return m.cellFromInt64(int64(v))
	case uint32:
		return m.cellFromInt64(int64(v))
	case uint64:
		return m.cellFromInt64(int64(v))
	default:
		return nil, &ValueError{Value: fmt.Sprintf("%v", value)}
	}
}

func (m *Machine) cellFromInt64(v int64) (*cell, error) {
	if v >= -9 && v <= 9 {
		return internedDigit(int(v)), nil
	}

	c, err := m.alloc()
	if err != nil {
		return nil, err
	}

	c.setInt64(v)

	return c, nil
}

func (m *Machine) cellFromDecimal(d *apd.Decimal) (*cell, error) {
	if d.Form != apd.Finite {
		return nil, &ValueError{Value: d.String()}
	}

	if i, err := d.Int64(); err == nil && i >= -9 && i <= 9 {
		return internedDigit(int(i)), nil
	}

	c, err := m.alloc()
	if err != nil {
		return nil, err
	}

	c.setDecimal(d)
	DecimalContext.Reduce(&c.dec, &c.dec) //nolint:errcheck // reducing an already-finite value cannot fail
	c.invalidate()
	c.syncFastPath()

	return c, nil
}

func (m *Machine) cellFromString(s string) (*cell, error) {
	d, _, err := DecimalContext.NewFromString(s)
	if err != nil {
		return nil, &ValueError{Value: s}
	}

	return m.cellFromDecimal(d)
}
