package dsm

// value.go defines the decimal value cell: the fundamental datum operated
// on by the machine. Every cell carries a decimal payload (backed by
// cockroachdb/apd, the decimal128-style arbitrary-precision library), an
// optional fast-path 32-bit integer side channel, a mark bit used by the
// collector, and a lazily-computed cached string form.

import (
	"math"
	"strings"

	"github.com/cockroachdb/apd/v3"
)

// DecimalContext is the rounding and precision context applied to every
// arithmetic result: 34 significant digits, round-half-even, matching the
// decimal128 general decimal arithmetic specification.
var DecimalContext = apd.BaseContext.WithPrecision(34)

// cell is a single decimal value cell. A cell is owned by exactly one of:
// the global interned-digit table, a Program's constant table, or a
// Machine's arena. Stack slots and variable slots are non-owning pointers
// into one of those three owners.
type cell struct {
	dec    apd.Decimal
	fastOK bool
	fast   int32
	marked bool
	cached bool
	str    string

	// next links a free cell into a Machine's free list. It is only
	// meaningful while the cell is unreferenced by any live root.
	next *cell
}

func (c *cell) invalidate() {
	c.cached = false
	c.str = ""
}

// setInt64 stores an integer value, maintaining the fast-path side channel
// whenever the value is representable in a signed 32-bit range.
func (c *cell) setInt64(v int64) {
	c.dec.SetInt64(v)
	c.invalidate()

	if v >= math.MinInt32 && v <= math.MaxInt32 {
		c.fastOK = true
		c.fast = int32(v)
	} else {
		c.fastOK = false
	}
}

// setDecimal copies a decimal value into the cell and synchronizes the
// fast-path side channel.
func (c *cell) setDecimal(d *apd.Decimal) {
	c.dec.Set(d)
	c.invalidate()
	c.syncFastPath()
}

// syncFastPath recomputes the fast-path side channel from the decimal
// payload. It is called after any operation that computes the decimal path
// directly, so that subsequent fast-path short-circuits remain available.
func (c *cell) syncFastPath() {
	if c.dec.Form != apd.Finite {
		c.fastOK = false
		return
	}

	i, err := c.dec.Int64()
	if err == nil && i >= math.MinInt32 && i <= math.MaxInt32 {
		c.fastOK = true
		c.fast = int32(i)
	} else {
		c.fastOK = false
	}
}

// IsZero reports whether the cell's value is any numeric zero
// representation, using the fast path when available.
func (c *cell) IsZero() bool {
	if c.fastOK {
		return c.fast == 0
	}

	return c.dec.IsZero()
}

// isInteger reports whether the value is integral. Because every live
// decimal result has had trailing zeros reduced (see DecimalContext.Reduce
// calls throughout ops.go), a non-fast-path cell with a negative exponent
// necessarily carries a nonzero fractional digit.
func (c *cell) isInteger() bool {
	return c.fastOK || c.dec.Exponent >= 0
}

// sign returns -1, 0, or 1.
func (c *cell) sign() int {
	if c.fastOK {
		switch {
		case c.fast < 0:
			return -1
		case c.fast > 0:
			return 1
		default:
			return 0
		}
	}

	return c.dec.Sign()
}

func (c *cell) String() string {
	if !c.cached {
		c.str = canonicalString(&c.dec)
		c.cached = true
	}

	return c.str
}

// canonicalString renders a decimal in the minimal reduced form required by
// the variable string-form contract: no scientific notation, no trailing
// fractional zeros, a bare "0" for zero, and integers printed with no
// decimal point.
func canonicalString(d *apd.Decimal) string {
	if d.Sign() == 0 {
		return "0"
	}

	digits := d.Coeff.String()
	exp := int(d.Exponent)

	var out string

	switch {
	case exp >= 0:
		out = digits + strings.Repeat("0", exp)
	default:
		point := len(digits) + exp
		if point <= 0 {
			out = "0." + strings.Repeat("0", -point) + digits
		} else {
			out = digits[:point] + "." + digits[point:]
		}

		if strings.Contains(out, ".") {
			out = strings.TrimRight(out, "0")
			out = strings.TrimSuffix(out, ".")
		}
	}

	if out == "" {
		out = "0"
	}

	if d.Negative && out != "0" {
		out = "-" + out
	}

	return out
}

// compareCells compares two cells by numeric value, short-circuiting
// through the fast path when both operands carry one.
func compareCells(a, b *cell) int {
	if a.fastOK && b.fastOK {
		switch {
		case a.fast < b.fast:
			return -1
		case a.fast > b.fast:
			return 1
		default:
			return 0
		}
	}

	return a.dec.Cmp(&b.dec)
}

// sameValue reports "obvious" equality: identical cell identity, or both
// operands fast-path integers with equal value. This is intentionally
// narrower than numeric equality; see the a/a=1 short-circuit discussion
// in the package doc.
func sameValue(a, b *cell) bool {
	if a == b {
		return true
	}

	return a.fastOK && b.fastOK && a.fast == b.fast
}

// The 19 interned digit cells, -9..+9, indexed by value+9. They are
// process-global, read-only, and always considered marked so the
// collector never reclaims or writes to them.
var internedDigits [19]*cell

func init() {
	for v := -9; v <= 9; v++ {
		c := &cell{marked: true}
		c.setInt64(int64(v))
		c.String() // fill the string cache now, so later reads never write it
		internedDigits[v+9] = c
	}
}

// internedDigit returns the canonical cell for v, which must be in
// [-9, 9].
func internedDigit(v int) *cell {
	return internedDigits[v+9]
}

// internedZero and internedOne are used pervasively enough to deserve
// names.
var (
	internedZero = internedDigit(0)
	internedOne  = internedDigit(1)
	internedTwo  = internedDigit(2)
)

func isOneCell(c *cell) bool {
	if c.fastOK {
		return c.fast == 1
	}

	return c.dec.Cmp(&internedOne.dec) == 0
}

func isTwoCell(c *cell) bool {
	if c.fastOK {
		return c.fast == 2
	}

	return c.dec.Cmp(&internedTwo.dec) == 0
}
