package dsm

// program.go implements the DSMAL parser and the immutable Program it
// builds (specification §4.1). A Program is VARS;CONSTS;CODE parsed once
// and shared read-only by every Machine bound to it.

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/apd/v3"
)

// MaxTableSize bounds the variable, constant, and instruction tables; a
// uint16 slot or parameter cannot address more than this many entries.
const MaxTableSize = 65535

// Program is an immutable, shareable compiled representation of one DSMAL
// string.
type Program struct {
	source string

	variableNames []string
	variableIndex map[string]uint16

	constants []*cell

	instructions []instruction
}

// Parse compiles a DSMAL string into a Program. It is the only place
// InvalidProgram is raised.
func Parse(source string) (*Program, error) {
	if strings.Count(source, ";") != 2 {
		return nil, invalidProgramf("expected exactly two semicolons, found %d", strings.Count(source, ";"))
	}

	parts := strings.SplitN(source, ";", 3)
	varsPart, constsPart, codePart := parts[0], parts[1], parts[2]

	names, index, err := parseVars(varsPart)
	if err != nil {
		return nil, err
	}

	constants, err := parseConsts(constsPart)
	if err != nil {
		return nil, err
	}

	instructions, err := parseCode(codePart, len(names), len(constants))
	if err != nil {
		return nil, err
	}

	return &Program{
		source:        source,
		variableNames: names,
		variableIndex: index,
		constants:     constants,
		instructions:  instructions,
	}, nil
}

func parseVars(section string) ([]string, map[string]uint16, error) {
	if section == "" {
		return nil, map[string]uint16{}, nil
	}

	parts := strings.Split(section, "|")
	if len(parts) > MaxTableSize {
		return nil, nil, invalidProgramf("too many variables: %d", len(parts))
	}

	names := make([]string, 0, len(parts))
	index := make(map[string]uint16, len(parts))

	for _, name := range parts {
		if name == "" {
			return nil, nil, invalidProgramf("empty variable name")
		}

		if _, dup := index[name]; dup {
			return nil, nil, invalidProgramf("duplicate variable name %q", name)
		}

		index[name] = uint16(len(names))
		names = append(names, name)
	}

	return names, index, nil
}

func parseConsts(section string) ([]*cell, error) {
	if section == "" {
		return nil, nil
	}

	parts := strings.Split(section, "|")
	if len(parts) > MaxTableSize {
		return nil, invalidProgramf("too many constants: %d", len(parts))
	}

	constants := make([]*cell, 0, len(parts))

	for _, lit := range parts {
		c, err := parseConstLiteral(lit)
		if err != nil {
			return nil, err
		}

		constants = append(constants, c)
	}

	return constants, nil
}

func parseConstLiteral(lit string) (*cell, error) {
	if lit == "" {
		return nil, invalidProgramf("empty constant literal")
	}

	if strings.ContainsAny(lit, "eE") {
		return nil, invalidProgramf("constant %q uses scientific notation, which is not permitted", lit)
	}

	d, _, err := DecimalContext.NewFromString(lit)
	if err != nil {
		return nil, invalidProgramf("constant %q: %s", lit, err)
	}

	if d.Form != apd.Finite {
		return nil, invalidProgramf("constant %q is not a finite decimal", lit)
	}

	c := &cell{marked: true}
	c.setDecimal(d)
	DecimalContext.Reduce(&c.dec, &c.dec) //nolint:errcheck // Reduce on a freshly parsed finite value cannot fail
	c.invalidate()
	c.syncFastPath()
	c.String() // fill the string cache now, so later reads never write it

	return c, nil
}

// parseCode decodes the concatenated instruction stream. numVars and
// numConsts bound the Lv/St and Lc parameters respectively; jump
// parameters are accepted unchecked, per §4.1.
func parseCode(code string, numVars, numConsts int) ([]instruction, error) {
	if code == "" {
		return nil, invalidProgramf("program has no instructions")
	}

	var instructions []instruction

	pos := 0
	for pos < len(code) {
		if len(instructions) >= MaxTableSize {
			return nil, invalidProgramf("too many instructions")
		}

		if !isUpper(code[pos]) {
			return nil, invalidProgramf("expected opcode at offset %d", pos)
		}

		if pos+1 >= len(code) || !isLower(code[pos+1]) {
			return nil, invalidProgramf("incomplete opcode at offset %d", pos)
		}

		mnemonic := code[pos : pos+2]

		op, ok := mnemonicTable[mnemonic]
		if !ok {
			return nil, invalidProgramf("unknown opcode %q at offset %d", mnemonic, pos)
		}

		pos += 2

		entry := opcodeTable[op]

		var param uint16

		if entry.hasParam {
			start := pos
			for pos < len(code) && isDigit(code[pos]) {
				pos++
			}

			if pos == start {
				return nil, invalidProgramf("opcode %s at offset %d requires a numeric parameter", mnemonic, start-2)
			}

			n, err := strconv.ParseUint(code[start:pos], 10, 32)
			if err != nil || n > MaxTableSize {
				return nil, invalidProgramf("opcode %s parameter %q out of range", mnemonic, code[start:pos])
			}

			param = uint16(n)

			switch op {
			case OpLoadConstant:
				if int(param) >= numConsts {
					return nil, invalidProgramf("Lc%d references unknown constant (have %d)", param, numConsts)
				}
			case OpLoadVariable, OpSetVariable:
				if int(param) >= numVars {
					return nil, invalidProgramf("%s%d references unknown variable (have %d)", mnemonic, param, numVars)
				}
			}
		}

		instructions = append(instructions, instruction{Op: op, Param: param})
	}

	return instructions, nil
}

func isUpper(b byte) bool { return b >= 'A' && b <= 'Z' }
func isLower(b byte) bool { return b >= 'a' && b <= 'z' }
func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// Serialize returns the original DSMAL source text. Because Program
// retains its source verbatim, this trivially round-trips through Parse.
func (p *Program) Serialize() string { return p.source }

// VariableNames returns the Program's declared variable names, in
// declaration order.
func (p *Program) VariableNames() []string {
	names := make([]string, len(p.variableNames))
	copy(names, p.variableNames)

	return names
}

// ConstantCount returns the number of parsed constants.
func (p *Program) ConstantCount() int { return len(p.constants) }

// Constant returns the canonical string form of the constant at index i.
func (p *Program) Constant(i int) (string, error) {
	if i < 0 || i >= len(p.constants) {
		return "", &IndexError{Index: i, Bound: len(p.constants)}
	}

	return p.constants[i].String(), nil
}

// InstructionCount returns the number of decoded instructions.
func (p *Program) InstructionCount() int { return len(p.instructions) }

// Instruction returns the mnemonic text of the instruction at index i, as
// it would appear in the CODE section.
func (p *Program) Instruction(i int) (string, error) {
	if i < 0 || i >= len(p.instructions) {
		return "", &IndexError{Index: i, Bound: len(p.instructions)}
	}

	return p.instructions[i].String(), nil
}

// MarshalText implements encoding.TextMarshaler over the DSMAL source,
// letting a Program compose with JSON/YAML-based host configuration
// without a bespoke wire format.
func (p *Program) MarshalText() ([]byte, error) {
	return []byte(p.source), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Program) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}

	*p = *parsed

	return nil
}
