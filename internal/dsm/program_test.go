package dsm

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	t.Run("minimal", func(t *testing.T) {
		t.Parallel()

		th := NewTestHarness(t)
		p := th.MustParse(";;Xx")

		if p.InstructionCount() != 1 {
			t.Errorf("instructions: want 1, got %d", p.InstructionCount())
		}

		if n := len(p.VariableNames()); n != 0 {
			t.Errorf("variables: want 0, got %d", n)
		}
	})

	t.Run("vars and consts", func(t *testing.T) {
		t.Parallel()

		th := NewTestHarness(t)
		p := th.MustParse("x|y;1|2;Lv0CpMlLc0MlSt1Xx")

		names := p.VariableNames()
		if len(names) != 2 || names[0] != "x" || names[1] != "y" {
			t.Errorf("variable names: got %v", names)
		}

		if p.ConstantCount() != 2 {
			t.Errorf("constants: want 2, got %d", p.ConstantCount())
		}

		c0, err := p.Constant(0)
		if err != nil || c0 != "1" {
			t.Errorf("constant 0: got %q, err %v", c0, err)
		}
	})

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		source := "x|y;1|2;Lv0CpMlLc0MlSt1Xx"
		th := NewTestHarness(t)
		p := th.MustParse(source)

		if p.Serialize() != source {
			t.Errorf("serialize: got %q, want %q", p.Serialize(), source)
		}

		var p2 Program
		if err := p2.UnmarshalText([]byte(source)); err != nil {
			t.Fatalf("unmarshal: %s", err)
		}

		if p2.Serialize() != source {
			t.Errorf("unmarshal round trip: got %q, want %q", p2.Serialize(), source)
		}

		text, err := p.MarshalText()
		if err != nil || string(text) != source {
			t.Errorf("marshal: got %q, err %v", text, err)
		}
	})

	t.Run("wrong semicolon count", func(t *testing.T) {
		t.Parallel()

		for _, source := range []string{"no semicolons", "one;semicolon", "too;many;semi;colons"} {
			if _, err := Parse(source); !errors.Is(err, ErrInvalidProgram) {
				t.Errorf("Parse(%q): want ErrInvalidProgram, got %v", source, err)
			}
		}
	})

	t.Run("scientific notation rejected", func(t *testing.T) {
		t.Parallel()

		if _, err := Parse(";1e10;Xx"); !errors.Is(err, ErrInvalidProgram) {
			t.Errorf("want ErrInvalidProgram, got %v", err)
		}
	})

	t.Run("duplicate variable name", func(t *testing.T) {
		t.Parallel()

		if _, err := Parse("x|x;;Xx"); !errors.Is(err, ErrInvalidProgram) {
			t.Errorf("want ErrInvalidProgram, got %v", err)
		}
	})

	t.Run("out of range constant reference caught at parse time", func(t *testing.T) {
		t.Parallel()

		if _, err := Parse(";1;Lc5Xx"); !errors.Is(err, ErrInvalidProgram) {
			t.Errorf("want ErrInvalidProgram, got %v", err)
		}
	})

	t.Run("jump target not validated at parse time", func(t *testing.T) {
		t.Parallel()

		th := NewTestHarness(t)
		th.MustParse(";;Ju99")
	})

	t.Run("unknown opcode", func(t *testing.T) {
		t.Parallel()

		if _, err := Parse(";;Zz"); !errors.Is(err, ErrInvalidProgram) {
			t.Errorf("want ErrInvalidProgram, got %v", err)
		}
	})
}

func TestProgramIndexErrors(t *testing.T) {
	t.Parallel()

	th := NewTestHarness(t)
	p := th.MustParse(";;Xx")

	if _, err := p.Constant(0); !errors.As(err, new(*IndexError)) {
		t.Errorf("constant: want IndexError, got %v", err)
	}

	if _, err := p.Instruction(5); !errors.As(err, new(*IndexError)) {
		t.Errorf("instruction: want IndexError, got %v", err)
	}
}
