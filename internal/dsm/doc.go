// Package dsm implements the Decimal Stack Machine: a small,
// non-Turing-complete virtual machine that executes DSMAL, a compact
// textual bytecode operating on arbitrary-precision decimals.
//
// A Program is an immutable, shareable compilation of one DSMAL string,
// produced once by [Parse]. A Machine is a mutable execution instance
// bound to exactly one Program; it owns its operand stack, a fixed-size
// arena of decimal value cells, and two parallel variable banks (current
// and baseline). Machines are meant to be constructed once per Program and
// [Machine.Run] or [Machine.RunCoverage] many times, [Machine.Reset]
// between runs.
//
// # Resource bounds
//
// Every Machine enforces the same fixed resource bounds, independent of
// program size: an operand stack depth of [StackSize], an arena of
// [ArenaSize] live decimal cells reclaimed by a mark-and-sweep collector,
// and a per-run instruction budget ([Machine.InstructionLimit], default
// [DefaultInstructionLimit]). Exceeding any of them aborts the run with an
// *ExecutionError rather than growing unboundedly.
//
// # What this package does not do
//
// The front-end compiler that lexes and parses the surface flowchart
// language and emits DSMAL, and the source-map utility that maps
// instruction indices back to source lines, are external collaborators.
// This package consumes DSMAL text and, via [SourceMap], a line map
// produced elsewhere; it does not produce either.
//
// # a/a = 1
//
// The Div opcode's algebraic identity a/a=1 only fires on "obvious"
// equality — identical cell identity, or both operands fast-path integers
// with equal value — never on a general decimal comparison. Two decimals
// that compare equal but were computed by different paths still go
// through [DecimalContext.Quo], so that exceptional inputs (e.g. one of
// them secretly out of range for the other's representation) are not
// masked by the shortcut.
package dsm
