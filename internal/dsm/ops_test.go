package dsm

import (
	"errors"
	"testing"
)

func evalTop(t *testing.T, vars, consts, code string, baseline map[string]string) string {
	t.Helper()

	th := NewTestHarness(t)
	p := th.MustParse(vars + ";" + consts + ";" + code + "St0Xx")
	m := th.MustMachine(p, baseline)

	if _, err := m.Run(); err != nil {
		t.Fatalf("run %q: %s", code, err)
	}

	v, err := m.Get(p.VariableNames()[0])
	if err != nil {
		t.Fatalf("get: %s", err)
	}

	return v
}

func TestDivIdentityAOverA(t *testing.T) {
	t.Parallel()

	// Same interned cell on both sides of Dv takes the a/a=1 shortcut.
	got := evalTop(t, "r", "", "LoCpDv", nil)
	if got != "1" {
		t.Errorf("1/1: want 1, got %s", got)
	}

	got = evalTop(t, "r", "5", "Lc0CpDv", nil)
	if got != "1" {
		t.Errorf("5/5: want 1, got %s", got)
	}
}

func TestDivByOneReturnsOperand(t *testing.T) {
	t.Parallel()

	got := evalTop(t, "r", "7", "Lc0LoDv", nil)
	if got != "7" {
		t.Errorf("7/1: want 7, got %s", got)
	}
}

func TestDivZeroNumerator(t *testing.T) {
	t.Parallel()

	got := evalTop(t, "r", "9", "LzLc0Dv", nil)
	if got != "0" {
		t.Errorf("0/9: want 0, got %s", got)
	}
}

func TestMinMaxOfEqualOperands(t *testing.T) {
	t.Parallel()

	got := evalTop(t, "r", "3", "Lc0Lc0Mn", nil)
	if got != "3" {
		t.Errorf("min(3,3): want 3, got %s", got)
	}

	got = evalTop(t, "r", "3", "Lc0Lc0Mx", nil)
	if got != "3" {
		t.Errorf("max(3,3): want 3, got %s", got)
	}
}

func TestPowEdgeCases(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		code string
		want string
	}{
		{"zero to zero", "LzLzPw", "0"},
		{"any to first power", "Lc0LoPw", "5"},
		{"one to any power", "LoLc0Pw", "1"},
		{"zero to positive power", "LzLc0Pw", "0"},
		{"square via two shortcut", "Lc0LzLoAdLoAdPw", "25"},
	}

	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			got := evalTop(t, "r", "5", c.code, nil)
			if got != c.want {
				t.Errorf("%s: want %s, got %s", c.name, c.want, got)
			}
		})
	}
}

func TestPowZeroToNegativeIsIllegal(t *testing.T) {
	t.Parallel()

	th := NewTestHarness(t)
	p := th.MustParse(";;LzLoNgPw")
	m := th.MustMachine(p, nil)

	_, err := m.Run()
	if !errors.Is(err, ErrIllegal) {
		t.Fatalf("want ErrIllegal for 0 ^ negative, got %v", err)
	}
}

func TestRoundingModes(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		op   string
		want string
	}{
		{"ceiling", "Cl", "2"},
		{"floor", "Fl", "1"},
		{"round", "Rd", "2"},
	}

	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			got := evalTop(t, "r", "1.5", "Lc0"+c.op, nil)
			if got != c.want {
				t.Errorf("%s(1.5): want %s, got %s", c.op, c.want, got)
			}
		})
	}
}

func TestComparisons(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		code string
		want string
	}{
		{"eq true", "Lc0Lc0Eq", "1"},
		{"eq false", "Lc0Lc1Eq", "0"},
		{"ne true", "Lc0Lc1Ne", "1"},
		{"gt true", "Lc1Lc0Gt", "1"},
		{"ge equal", "Lc0Lc0Ge", "1"},
	}

	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			got := evalTop(t, "r", "3|5", c.code, nil)
			if got != c.want {
				t.Errorf("%s: want %s, got %s", c.name, c.want, got)
			}
		})
	}
}
