package dsm

// opcode.go defines the fixed opcode table: the 29 two-letter DSMAL
// mnemonics, whether each takes a parameter, and how many values each pops
// and pushes. This table is the single source of truth consulted by both
// the parser (program.go) and the interpreter (exec.go).

// Opcode identifies one DSMAL instruction.
type Opcode uint8

// Opcode constants, one per row of the mnemonic table in the specification.
const (
	OpExit Opcode = iota
	OpJump
	OpJumpIfNonZero
	OpJumpIfZero
	OpLoadConstant
	OpLoadVariable
	OpLoadRandom
	OpLoadZero
	OpLoadOne
	OpSetVariable
	OpCopy
	OpPop
	OpNot
	OpNegate
	OpAbsolute
	OpCeiling
	OpFloor
	OpRound
	OpEqual
	OpNotEqual
	OpGreaterThan
	OpGreaterOrEqual
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpPow
	OpMin
	OpMax

	opcodeCount
)

//go:generate stringer -type=Opcode

type opcodeEntry struct {
	mnemonic string
	hasParam bool
	pops     int
	pushes   int
}

var opcodeTable = [opcodeCount]opcodeEntry{
	OpExit:           {"Xx", false, 0, 0},
	OpJump:           {"Ju", true, 0, 0},
	OpJumpIfNonZero:  {"Jn", true, 1, 0},
	OpJumpIfZero:     {"Jz", true, 1, 0},
	OpLoadConstant:   {"Lc", true, 0, 1},
	OpLoadVariable:   {"Lv", true, 0, 1},
	OpLoadRandom:     {"Lr", false, 0, 1},
	OpLoadZero:       {"Lz", false, 0, 1},
	OpLoadOne:        {"Lo", false, 0, 1},
	OpSetVariable:    {"St", true, 1, 0},
	OpCopy:           {"Cp", false, 1, 2},
	OpPop:            {"Pp", false, 1, 0},
	OpNot:            {"Nt", false, 1, 1},
	OpNegate:         {"Ng", false, 1, 1},
	OpAbsolute:       {"Ab", false, 1, 1},
	OpCeiling:        {"Cl", false, 1, 1},
	OpFloor:          {"Fl", false, 1, 1},
	OpRound:          {"Rd", false, 1, 1},
	OpEqual:          {"Eq", false, 2, 1},
	OpNotEqual:       {"Ne", false, 2, 1},
	OpGreaterThan:    {"Gt", false, 2, 1},
	OpGreaterOrEqual: {"Ge", false, 2, 1},
	OpAdd:            {"Ad", false, 2, 1},
	OpSub:            {"Sb", false, 2, 1},
	OpMul:            {"Ml", false, 2, 1},
	OpDiv:            {"Dv", false, 2, 1},
	OpPow:            {"Pw", false, 2, 1},
	OpMin:            {"Mn", false, 2, 1},
	OpMax:            {"Mx", false, 2, 1},
}

// mnemonicTable maps a two-letter mnemonic back to its Opcode, built once
// from opcodeTable.
var mnemonicTable map[string]Opcode

func init() {
	mnemonicTable = make(map[string]Opcode, opcodeCount)
	for op, entry := range opcodeTable {
		mnemonicTable[entry.mnemonic] = Opcode(op)
	}
}

// instruction is a single decoded DSMAL instruction.
type instruction struct {
	Op    Opcode
	Param uint16
}

func (i instruction) String() string {
	entry := opcodeTable[i.Op]
	if !entry.hasParam {
		return entry.mnemonic
	}

	return entry.mnemonic + itoa(uint32(i.Param))
}

func itoa(v uint32) string {
	if v == 0 {
		return "0"
	}

	var buf [10]byte

	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}

	return string(buf[i:])
}
