package dsm

// arena.go implements the fixed-size value allocator and its mark-and-sweep
// collector (specification §4.2). A Machine's arena is a 256-cell pool:
// cells are handed out from an uninitialized-on-demand bump pointer until
// exhausted, then recycled from a free list, then reclaimed by a sweep that
// roots on the operand stack, both variable banks, and the opcode handler's
// own transient operands.

// ArenaSize is the number of transient decimal cells a Machine may have
// live at any instant.
const ArenaSize = 256

type arena struct {
	cells     [ArenaSize]cell
	allocated int
	freeList  *cell
}

// alloc returns a ready-to-populate cell, running a mark-and-sweep
// collection if the arena is exhausted and the free list is empty. roots
// are additional cells the caller still needs alive across this
// allocation — typically operands already popped from the stack — passed
// so a sweep triggered mid-opcode does not reclaim them.
func (m *Machine) alloc(roots ...*cell) (*cell, error) {
	a := &m.heap

	if a.allocated < ArenaSize {
		c := &a.cells[a.allocated]
		a.allocated++
		*c = cell{}

		return c, nil
	}

	if a.freeList == nil {
		m.gc(roots...)
	}

	if a.freeList == nil {
		return nil, &ExecutionError{Kind: KindOutOfSpace}
	}

	c := a.freeList
	a.freeList = c.next
	c.next = nil
	c.invalidate()

	return c, nil
}

// gc runs one mark-and-sweep pass over the arena.
func (m *Machine) gc(roots ...*cell) {
	a := &m.heap

	// Interned digits and Program constants are permanently marked and
	// shared, so only cells not yet marked are written.
	mark := func(c *cell) {
		if c != nil && !c.marked {
			c.marked = true
		}
	}

	for i := 0; i < m.stackUsed; i++ {
		mark(m.stack[i])
	}

	for _, c := range m.current {
		mark(c)
	}

	for _, c := range m.baseline {
		mark(c)
	}

	for _, r := range roots {
		mark(r)
	}

	a.freeList = nil

	for i := 0; i < a.allocated; i++ {
		c := &a.cells[i]

		if c.marked {
			c.marked = false
		} else {
			c.next = a.freeList
			a.freeList = c
		}
	}
}
