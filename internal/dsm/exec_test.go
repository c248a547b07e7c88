package dsm

import (
	"context"
	"errors"
	"testing"
)

func TestRunMinimal(t *testing.T) {
	t.Parallel()

	th := NewTestHarness(t)
	p := th.MustParse(";;Xx")
	m := th.MustMachine(p, nil)

	executed, err := m.Run()
	if err != nil {
		t.Fatalf("run: %s", err)
	}

	if executed != 1 {
		t.Errorf("executed: want 1, got %d", executed)
	}
}

func TestRunArithmetic(t *testing.T) {
	t.Parallel()

	th := NewTestHarness(t)
	p := th.MustParse("x|y;1|2;Lv0CpMlLc0MlSt1Xx")
	m := th.MustMachine(p, map[string]string{"x": "3.14"})

	if _, err := m.Run(); err != nil {
		t.Fatalf("run: %s", err)
	}

	y, err := m.Get("y")
	if err != nil {
		t.Fatalf("get y: %s", err)
	}

	if y != "9.8596" {
		t.Errorf("y: want 9.8596, got %s", y)
	}
}

func TestRunDivisionByZero(t *testing.T) {
	t.Parallel()

	th := NewTestHarness(t)
	// Lo then Lz pushes the dividend (1) before the divisor (0); Dv pops
	// b (divisor) then a (dividend), per the documented "pop b, pop a"
	// convention, so this computes 1/0 and fails as intended.
	p := th.MustParse(";;LoLzDvXx")
	m := th.MustMachine(p, nil)

	_, err := m.Run()

	var ee *ExecutionError
	if !errors.As(err, &ee) {
		t.Fatalf("want *ExecutionError, got %v", err)
	}

	if ee.Opcode != "Dv" {
		t.Errorf("opcode: want Dv, got %s", ee.Opcode)
	}

	if !errors.Is(err, ErrDivisionByZero) {
		t.Errorf("want ErrDivisionByZero, got %v", err)
	}
}

func TestRunOutOfBounds(t *testing.T) {
	t.Parallel()

	th := NewTestHarness(t)
	p := th.MustParse("p;;Lv0Lz")
	m := th.MustMachine(p, nil)

	_, err := m.Run()
	if !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("want ErrOutOfBounds, got %v", err)
	}
}

func TestRunInstructionLimit(t *testing.T) {
	t.Parallel()

	th := NewTestHarness(t)
	p := th.MustParse(";;LzPpLzPpLzPpXx")
	m := th.MustMachine(p, nil)
	m.InstructionLimit = 3

	executed, err := m.Run()

	var ile *InstructionLimitExceededError
	if !errors.As(err, &ile) {
		t.Fatalf("want *InstructionLimitExceededError, got %v", err)
	}

	if executed != 3 {
		t.Errorf("executed: want 3, got %d", executed)
	}
}

func TestRunStackOverflow(t *testing.T) {
	t.Parallel()

	th := NewTestHarness(t)

	source := "p;;" + repeatOp("Lz", StackSize+1)
	p := th.MustParse(source)
	m := th.MustMachine(p, nil)
	m.InstructionLimit = StackSize + 1

	_, err := m.Run()
	if !errors.Is(err, ErrStackOverflow) {
		t.Errorf("want ErrStackOverflow, got %v", err)
	}
}

func TestRunStackUnderflowCaughtPreDispatch(t *testing.T) {
	t.Parallel()

	th := NewTestHarness(t)
	p := th.MustParse(";;Ng")
	m := th.MustMachine(p, nil)

	_, err := m.Run()
	if !errors.Is(err, ErrStackUnderflow) {
		t.Errorf("want ErrStackUnderflow, got %v", err)
	}
}

func TestResetRestoresBaseline(t *testing.T) {
	t.Parallel()

	th := NewTestHarness(t)
	p := th.MustParse("x;;Lv0Xx")
	m := th.MustMachine(p, map[string]string{"x": "5"})

	if err := m.Set("x", 99); err != nil {
		t.Fatalf("set: %s", err)
	}

	if err := m.Reset(nil); err != nil {
		t.Fatalf("reset: %s", err)
	}

	x, err := m.Get("x")
	if err != nil || x != "5" {
		t.Errorf("x after reset: got %q, err %v", x, err)
	}
}

func TestRunCoverage(t *testing.T) {
	t.Parallel()

	th := NewTestHarness(t)
	p := th.MustParse(";;LzJz3LoXx")
	m := th.MustMachine(p, nil)

	cov, err := m.RunCoverage()
	if err != nil {
		t.Fatalf("run: %s", err)
	}

	if cov.Complete() {
		t.Errorf("expected incomplete coverage, the Lo at index 2 is skipped")
	}

	if cov.Count() != 3 {
		t.Errorf("count: want 3, got %d", cov.Count())
	}
}

func TestLoadRandomResolvedOncePerRun(t *testing.T) {
	t.Parallel()

	th := NewTestHarness(t)
	p := th.MustParse("x;;LrSt0Xx")
	m := th.MustMachine(p, nil)

	d1 := mustDecimal(t, "7")
	d2 := mustDecimal(t, "8")
	m.RandomSource = NewSliceSource(*d1, *d2)

	if _, err := m.Run(); err != nil {
		t.Fatalf("run: %s", err)
	}

	if x, err := m.Get("x"); err != nil || x != "7" {
		t.Errorf("x after first run: want 7, got %q, err %v", x, err)
	}

	// Each run resolves RandomSource afresh at its first Lr, so the next
	// run draws from the newly assigned source, not the 8 left in the old one.
	m.RandomSource = NewSliceSource(*mustDecimal(t, "9"))

	if _, err := m.Run(); err != nil {
		t.Fatalf("second run: %s", err)
	}

	if x, err := m.Get("x"); err != nil || x != "9" {
		t.Errorf("x after second run: want 9, got %q, err %v", x, err)
	}
}

func TestRunContextCancelled(t *testing.T) {
	t.Parallel()

	th := NewTestHarness(t)
	p := th.MustParse(";;Xx")
	m := th.MustMachine(p, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := m.RunContext(ctx)
	if !errors.Is(err, ErrCancelled) {
		t.Errorf("want ErrCancelled, got %v", err)
	}
}

func repeatOp(op string, n int) string {
	out := make([]byte, 0, len(op)*n)
	for i := 0; i < n; i++ {
		out = append(out, op...)
	}

	return string(out)
}
