package dsm

// ops.go implements the arithmetic and comparison opcode bodies: the
// algebraic short-circuits and fast-path shortcuts of specification §4.3,
// falling back to cockroachdb/apd's decimal128-context operations when no
// shortcut applies. Every non-short-circuit result is reduced before it is
// returned, keeping canonical string form stable (§3, §4.3 "Result
// reduction").

import "github.com/cockroachdb/apd/v3"

func (m *Machine) negate(a *cell) (*cell, error) {
	if a.fastOK {
		v := -int64(a.fast)
		if v >= -9 && v <= 9 {
			return internedDigit(int(v)), nil
		}

		c, err := m.alloc(a)
		if err != nil {
			return nil, err
		}

		c.setInt64(v)

		return c, nil
	}

	c, err := m.alloc(a)
	if err != nil {
		return nil, err
	}

	c.dec.Neg(&a.dec)
	c.invalidate()
	DecimalContext.Reduce(&c.dec, &c.dec) //nolint:errcheck // negation of a finite value cannot fail
	c.syncFastPath()

	return c, nil
}

func (m *Machine) absolute(a *cell) (*cell, error) {
	if a.sign() >= 0 {
		return a, nil
	}

	return m.negate(a)
}

func (m *Machine) add(a, b *cell) (*cell, error) {
	if a.IsZero() {
		return b, nil
	}

	if b.IsZero() {
		return a, nil
	}

	if a.fastOK && b.fastOK {
		sum := int64(a.fast) + int64(b.fast)
		if c, ok := m.tryFastResult(sum, a, b); ok {
			return c, nil
		}
	}

	c, err := m.alloc(a, b)
	if err != nil {
		return nil, err
	}

	if _, err := DecimalContext.Add(&c.dec, &a.dec, &b.dec); err != nil {
		return nil, &ExecutionError{Kind: KindDecimalRange}
	}

	return m.reduced(c), nil
}

func (m *Machine) sub(a, b *cell) (*cell, error) {
	if b.IsZero() {
		return a, nil
	}

	if sameValue(a, b) {
		return internedZero, nil
	}

	if a.IsZero() {
		return m.negate(b)
	}

	if a.fastOK && b.fastOK {
		diff := int64(a.fast) - int64(b.fast)
		if c, ok := m.tryFastResult(diff, a, b); ok {
			return c, nil
		}
	}

	c, err := m.alloc(a, b)
	if err != nil {
		return nil, err
	}

	if _, err := DecimalContext.Sub(&c.dec, &a.dec, &b.dec); err != nil {
		return nil, &ExecutionError{Kind: KindDecimalRange}
	}

	return m.reduced(c), nil
}

func (m *Machine) mul(a, b *cell) (*cell, error) {
	if a.IsZero() || b.IsZero() {
		return internedZero, nil
	}

	if isOneCell(a) {
		return b, nil
	}

	if isOneCell(b) {
		return a, nil
	}

	if a.fastOK && b.fastOK {
		prod := int64(a.fast) * int64(b.fast)
		if c, ok := m.tryFastResult(prod, a, b); ok {
			return c, nil
		}
	}

	c, err := m.alloc(a, b)
	if err != nil {
		return nil, err
	}

	if _, err := DecimalContext.Mul(&c.dec, &a.dec, &b.dec); err != nil {
		return nil, &ExecutionError{Kind: KindDecimalRange}
	}

	return m.reduced(c), nil
}

func (m *Machine) div(a, b *cell) (*cell, error) {
	if b.IsZero() {
		return nil, &ExecutionError{Kind: KindDivisionByZero}
	}

	if sameValue(a, b) {
		return internedOne, nil
	}

	if isOneCell(b) {
		return a, nil
	}

	if a.IsZero() {
		return internedZero, nil
	}

	c, err := m.alloc(a, b)
	if err != nil {
		return nil, err
	}

	if _, err := DecimalContext.Quo(&c.dec, &a.dec, &b.dec); err != nil {
		return nil, &ExecutionError{Kind: KindDecimalRange}
	}

	return m.reduced(c), nil
}

func (m *Machine) pow(a, b *cell) (*cell, error) {
	if isOneCell(b) {
		return a, nil
	}

	if b.IsZero() {
		if a.IsZero() {
			return internedZero, nil
		}

		return internedOne, nil
	}

	if isOneCell(a) {
		return internedOne, nil
	}

	if a.IsZero() {
		if b.sign() < 0 {
			return nil, &ExecutionError{Kind: KindIllegal}
		}

		return internedZero, nil
	}

	if isTwoCell(b) {
		return m.mul(a, a)
	}

	c, err := m.alloc(a, b)
	if err != nil {
		return nil, err
	}

	if _, err := DecimalContext.Pow(&c.dec, &a.dec, &b.dec); err != nil {
		return nil, &ExecutionError{Kind: KindIllegal}
	}

	return m.reduced(c), nil
}

func (m *Machine) min(a, b *cell) (*cell, error) {
	if compareCells(a, b) < 0 {
		return a, nil
	}

	return b, nil
}

func (m *Machine) max(a, b *cell) (*cell, error) {
	if compareCells(a, b) > 0 {
		return a, nil
	}

	return b, nil
}

// roundMode selects which of Ceiling/Floor/Round is applied.
type roundMode int

const (
	roundCeiling roundMode = iota
	roundFloor
	roundNearest
)

func (m *Machine) round(a *cell, mode roundMode) (*cell, error) {
	if a.isInteger() {
		return a, nil
	}

	ctx := *DecimalContext

	switch mode {
	case roundCeiling:
		ctx.Rounding = apd.RoundCeiling
	case roundFloor:
		ctx.Rounding = apd.RoundFloor
	default:
		ctx.Rounding = apd.RoundHalfEven
	}

	c, err := m.alloc(a)
	if err != nil {
		return nil, err
	}

	if _, err := ctx.RoundToIntegralValue(&c.dec, &a.dec); err != nil {
		return nil, &ExecutionError{Kind: KindIllegal}
	}

	return m.reduced(c), nil
}

// tryFastResult attempts to record a fast-path-only result, allocating an
// arena cell (or returning an interned digit) only when the exact integer
// result fits a signed 32-bit range. It reports ok=false when the result must
// instead be computed on the decimal path, e.g. because it overflows the
// fast-path range.
func (m *Machine) tryFastResult(v int64, roots ...*cell) (*cell, bool) {
	if v < minFastPath || v > maxFastPath {
		return nil, false
	}

	if v >= -9 && v <= 9 {
		return internedDigit(int(v)), true
	}

	c, err := m.alloc(roots...)
	if err != nil {
		// Surface the allocation failure through the normal decimal path
		// instead of swallowing it; the caller re-attempts via apd, which
		// will hit the same exhausted arena and return the same error.
		return nil, false
	}

	c.setInt64(v)

	return c, true
}

const (
	minFastPath = -(1 << 31)
	maxFastPath = (1 << 31) - 1
)

// reduced strips trailing decimal zeros from c's payload, synchronizes its
// fast-path side channel, and returns c. Every non-short-circuit arithmetic
// result passes through here before being pushed.
func (m *Machine) reduced(c *cell) *cell {
	DecimalContext.Reduce(&c.dec, &c.dec) //nolint:errcheck // reducing a value this context just computed cannot fail
	c.invalidate()
	c.syncFastPath()

	return c
}
