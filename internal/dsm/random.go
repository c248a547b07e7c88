package dsm

// random.go specifies the RandomSource collaborator named, but not
// implemented, by the external-interfaces section of the specification
// this package builds on. The VM itself never generates randomness; it
// only consumes whatever iterator a host attaches to Machine.RandomSource,
// resolving it lazily and exactly once per run (the first Lr opcode locks
// in whichever source was configured at that moment).

import (
	"crypto/rand"
	"math/big"
	"strconv"

	"github.com/cockroachdb/apd/v3"
)

// RandomSource produces the decimal values consumed by the Lr opcode.
// Next returns ok=false when the source is exhausted or has failed; the
// machine turns that into an Execution(Random) error.
type RandomSource interface {
	Next() (value *apd.Decimal, ok bool)
}

// SliceSource is a deterministic RandomSource that replays a fixed
// sequence of decimals. It exists primarily so tests can drive the Lr
// opcode without depending on an entropy source.
type SliceSource struct {
	values []apd.Decimal
	pos    int
}

// NewSliceSource builds a SliceSource over a copy of values.
func NewSliceSource(values ...apd.Decimal) *SliceSource {
	cp := make([]apd.Decimal, len(values))
	copy(cp, values)

	return &SliceSource{values: cp}
}

func (s *SliceSource) Next() (*apd.Decimal, bool) {
	if s.pos >= len(s.values) {
		return nil, false
	}

	d := &s.values[s.pos]
	s.pos++

	return d, true
}

// CryptoSource produces uniform decimals in [0, 1) backed by crypto/rand,
// for hosts that want working randomness without authoring their own
// iterator. Digits controls the number of decimal digits of precision
// generated per value; zero selects a default of 18.
type CryptoSource struct {
	Digits int
}

func (c *CryptoSource) Next() (*apd.Decimal, bool) {
	digits := c.Digits
	if digits <= 0 {
		digits = 18
	}

	limit := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(digits)), nil)

	n, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return nil, false
	}

	// n may exceed int64 when digits > 18, so the coefficient goes through
	// its decimal text rather than n.Int64().
	d, _, err := apd.NewFromString(n.String() + "E-" + strconv.Itoa(digits))
	if err != nil {
		return nil, false
	}

	return d, true
}
