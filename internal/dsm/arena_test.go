package dsm

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func manyVars(n int) string {
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("v%d", i)
	}

	return strings.Join(names, "|")
}

func TestArenaExhaustionWhenEverythingIsRooted(t *testing.T) {
	t.Parallel()

	th := NewTestHarness(t)
	p := th.MustParse(manyVars(ArenaSize+2) + ";;Xx")
	m := th.MustMachine(p, nil)

	var lastErr error

	for i := 0; i < ArenaSize+2; i++ {
		// 10+i keeps every value outside the interned -9..9 range, so
		// each Set allocates a fresh arena cell, and storing it in the
		// current bank keeps it rooted for the rest of the loop.
		lastErr = m.Set(fmt.Sprintf("v%d", i), 10+i)
		if lastErr != nil {
			break
		}
	}

	if !errors.Is(lastErr, ErrOutOfSpace) {
		t.Fatalf("want ErrOutOfSpace once every cell is rooted, got %v", lastErr)
	}
}

func TestArenaReclaimsUnrootedCells(t *testing.T) {
	t.Parallel()

	th := NewTestHarness(t)
	p := th.MustParse("v;;Xx")
	m := th.MustMachine(p, nil)

	// Overwriting the same variable repeatedly produces garbage (the
	// previous cell becomes unrooted) well past ArenaSize, which must
	// not exhaust the arena.
	for i := 0; i < ArenaSize*4; i++ {
		if err := m.Set("v", 10+i%50); err != nil {
			t.Fatalf("set at iteration %d: %s", i, err)
		}
	}
}
