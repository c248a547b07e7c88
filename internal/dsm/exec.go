package dsm

// exec.go is the interpreter: the tick loop, its pre-dispatch checks, and
// the per-opcode handler table (specification §4.3, §4.4). Execution is
// strictly sequential, non-suspending, and never recovers internally — any
// failure aborts the run, clears the stack, and is returned to the caller
// (§7).

import "context"

// exitPC is the sentinel next-program-counter value returned by the Exit
// handler.
const exitPC = -1

// handler executes one opcode. It returns the next program counter (or
// exitPC to terminate normally) and an error, which — if non-nil — is
// filled in with Instruction and Opcode by the caller before being
// returned from Run/RunCoverage.
type handler func(m *Machine, param uint16, pc int) (next int, err error)

var handlers [opcodeCount]handler

func init() {
	handlers[OpExit] = func(m *Machine, _ uint16, _ int) (int, error) { return exitPC, nil }

	handlers[OpJump] = func(m *Machine, param uint16, _ int) (int, error) {
		return int(param), nil
	}

	handlers[OpJumpIfNonZero] = func(m *Machine, param uint16, pc int) (int, error) {
		a, err := m.pop()
		if err != nil {
			return 0, err
		}

		if !a.IsZero() {
			return int(param), nil
		}

		return pc + 1, nil
	}

	handlers[OpJumpIfZero] = func(m *Machine, param uint16, pc int) (int, error) {
		a, err := m.pop()
		if err != nil {
			return 0, err
		}

		if a.IsZero() {
			return int(param), nil
		}

		return pc + 1, nil
	}

	handlers[OpLoadConstant] = func(m *Machine, param uint16, pc int) (int, error) {
		if int(param) >= len(m.program.constants) {
			return 0, &ExecutionError{Kind: KindInvalidParameter}
		}

		if err := m.push(m.program.constants[param]); err != nil {
			return 0, err
		}

		return pc + 1, nil
	}

	handlers[OpLoadVariable] = func(m *Machine, param uint16, pc int) (int, error) {
		if int(param) >= len(m.current) {
			return 0, &ExecutionError{Kind: KindInvalidParameter}
		}

		if err := m.push(m.current[param]); err != nil {
			return 0, err
		}

		return pc + 1, nil
	}

	handlers[OpLoadRandom] = opLoadRandom

	handlers[OpLoadZero] = func(m *Machine, _ uint16, pc int) (int, error) {
		if err := m.push(internedZero); err != nil {
			return 0, err
		}

		return pc + 1, nil
	}

	handlers[OpLoadOne] = func(m *Machine, _ uint16, pc int) (int, error) {
		if err := m.push(internedOne); err != nil {
			return 0, err
		}

		return pc + 1, nil
	}

	handlers[OpSetVariable] = func(m *Machine, param uint16, pc int) (int, error) {
		if int(param) >= len(m.current) {
			return 0, &ExecutionError{Kind: KindInvalidParameter}
		}

		a, err := m.pop()
		if err != nil {
			return 0, err
		}

		m.current[param] = a

		return pc + 1, nil
	}

	handlers[OpCopy] = func(m *Machine, _ uint16, pc int) (int, error) {
		a, err := m.peek()
		if err != nil {
			return 0, err
		}

		if err := m.push(a); err != nil {
			return 0, err
		}

		return pc + 1, nil
	}

	handlers[OpPop] = func(m *Machine, _ uint16, pc int) (int, error) {
		if _, err := m.pop(); err != nil {
			return 0, err
		}

		return pc + 1, nil
	}

	handlers[OpNot] = unary(func(m *Machine, a *cell) (*cell, error) {
		if a.IsZero() {
			return internedOne, nil
		}

		return internedZero, nil
	})

	handlers[OpNegate] = unary((*Machine).negate)
	handlers[OpAbsolute] = unary((*Machine).absolute)
	handlers[OpCeiling] = unary(func(m *Machine, a *cell) (*cell, error) { return m.round(a, roundCeiling) })
	handlers[OpFloor] = unary(func(m *Machine, a *cell) (*cell, error) { return m.round(a, roundFloor) })
	handlers[OpRound] = unary(func(m *Machine, a *cell) (*cell, error) { return m.round(a, roundNearest) })

	handlers[OpEqual] = compare(func(c int) bool { return c == 0 })
	handlers[OpNotEqual] = compare(func(c int) bool { return c != 0 })
	handlers[OpGreaterThan] = compare(func(c int) bool { return c > 0 })
	handlers[OpGreaterOrEqual] = compare(func(c int) bool { return c >= 0 })

	handlers[OpAdd] = binary((*Machine).add)
	handlers[OpSub] = binary((*Machine).sub)
	handlers[OpMul] = binary((*Machine).mul)
	handlers[OpDiv] = binary((*Machine).div)
	handlers[OpPow] = binary((*Machine).pow)
	handlers[OpMin] = binary((*Machine).min)
	handlers[OpMax] = binary((*Machine).max)
}

// unary adapts a pop-one/push-one transform into a handler.
func unary(f func(m *Machine, a *cell) (*cell, error)) handler {
	return func(m *Machine, _ uint16, pc int) (int, error) {
		a, err := m.pop()
		if err != nil {
			return 0, err
		}

		r, err := f(m, a)
		if err != nil {
			return 0, err
		}

		if err := m.push(r); err != nil {
			return 0, err
		}

		return pc + 1, nil
	}
}

// binary adapts a pop-two/push-one transform into a handler. Operands are
// popped b-then-a, matching "pop b, pop a" throughout §4.3.
func binary(f func(m *Machine, a, b *cell) (*cell, error)) handler {
	return func(m *Machine, _ uint16, pc int) (int, error) {
		b, err := m.pop()
		if err != nil {
			return 0, err
		}

		a, err := m.pop()
		if err != nil {
			return 0, err
		}

		r, err := f(m, a, b)
		if err != nil {
			return 0, err
		}

		if err := m.push(r); err != nil {
			return 0, err
		}

		return pc + 1, nil
	}
}

// compare adapts a Cmp-result predicate into a handler.
func compare(pred func(cmp int) bool) handler {
	return binary(func(m *Machine, a, b *cell) (*cell, error) {
		if pred(compareCells(a, b)) {
			return internedOne, nil
		}

		return internedZero, nil
	})
}

func opLoadRandom(m *Machine, _ uint16, pc int) (int, error) {
	if !m.randomResolved {
		m.randomResolved = true
		m.randomActive = m.RandomSource
	}

	if m.randomActive == nil {
		return 0, &ExecutionError{Kind: KindRandom}
	}

	d, ok := m.randomActive.Next()
	if !ok {
		return 0, &ExecutionError{Kind: KindRandom}
	}

	c, err := m.cellFromDecimal(d)
	if err != nil {
		return 0, err
	}

	if err := m.push(c); err != nil {
		return 0, err
	}

	return pc + 1, nil
}

// push appends a value to the operand stack, failing with StackOverflow
// past StackSize.
func (m *Machine) push(c *cell) error {
	if m.stackUsed >= StackSize {
		return &ExecutionError{Kind: KindStackOverflow}
	}

	m.stack[m.stackUsed] = c
	m.stackUsed++

	return nil
}

// pop removes and returns the top of the operand stack, failing with
// StackUnderflow when empty. Pre-dispatch operand checks make this
// practically unreachable from Run; the check stays defensive.
func (m *Machine) pop() (*cell, error) {
	if m.stackUsed == 0 {
		return nil, &ExecutionError{Kind: KindStackUnderflow}
	}

	m.stackUsed--
	c := m.stack[m.stackUsed]
	m.stack[m.stackUsed] = nil

	return c, nil
}

// peek returns the top of the operand stack without removing it.
func (m *Machine) peek() (*cell, error) {
	if m.stackUsed == 0 {
		return nil, &ExecutionError{Kind: KindStackUnderflow}
	}

	return m.stack[m.stackUsed-1], nil
}

// Run executes the Machine's Program from the first instruction until
// Exit, an error, or the instruction limit is reached. It returns the
// number of instructions dispatched.
func (m *Machine) Run() (int, error) {
	return m.run(nil)
}

// RunCoverage behaves like Run but additionally returns a Coverage bit
// vector recording every instruction dispatched. On failure the vector is
// discarded (nil) along with the error.
func (m *Machine) RunCoverage() (Coverage, error) {
	cov := make(Coverage, len(m.program.instructions))

	_, err := m.run(cov)
	if err != nil {
		return nil, err
	}

	return cov, nil
}

// RunContext behaves like Run, additionally checking ctx once per tick
// alongside the instruction-limit check, never mid-opcode. A cancelled or
// expired ctx aborts the run with an *ExecutionError of KindCancelled,
// layered on top of, not replacing, the instruction-limit check.
func (m *Machine) RunContext(ctx context.Context) (int, error) {
	return m.run(nil, ctx)
}

func (m *Machine) run(cov Coverage, ctx ...context.Context) (int, error) {
	prog := m.program

	m.stackUsed = 0
	m.randomResolved = false
	m.randomActive = nil

	var runCtx context.Context
	if len(ctx) > 0 {
		runCtx = ctx[0]
	}

	pc := 0
	executed := 0

	defer func() { m.stackUsed = 0 }()

	for {
		if runCtx != nil {
			select {
			case <-runCtx.Done():
				return executed, &ExecutionError{Instruction: pc, Kind: KindCancelled}
			default:
			}
		}

		if pc < 0 || pc >= len(prog.instructions) {
			err := &ExecutionError{Instruction: pc, Kind: KindOutOfBounds}
			m.log.Debug("pc out of bounds", "pc", pc, "count", len(prog.instructions))

			return executed, err
		}

		inst := prog.instructions[pc]
		entry := opcodeTable[inst.Op]

		if executed >= m.InstructionLimit {
			base := ExecutionError{Instruction: pc, Opcode: entry.mnemonic, Kind: KindInstructionLimit}

			return executed, &InstructionLimitExceededError{ExecutionError: base}
		}

		if m.stackUsed < entry.pops {
			return executed, &ExecutionError{Instruction: pc, Opcode: entry.mnemonic, Kind: KindStackUnderflow}
		}

		executed++

		if cov != nil {
			cov[pc] = true
		}

		next, err := handlers[inst.Op](m, inst.Param, pc)
		if err != nil {
			if ee, ok := err.(*ExecutionError); ok { //nolint:errorlint // constructing the concrete error inline
				ee.Instruction = pc
				ee.Opcode = entry.mnemonic
			}

			m.log.Debug("execution error", "pc", pc, "op", entry.mnemonic, "err", err)

			return executed, err
		}

		m.log.Debug("executed", "pc", pc, "op", entry.mnemonic)

		if next == exitPC {
			return executed, nil
		}

		pc = next
	}
}
