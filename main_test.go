package main_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/dsmlang/dsm/internal/cli"
	"github.com/dsmlang/dsm/internal/cli/cmd"
	"github.com/dsmlang/dsm/internal/log"
)

type testHarness struct {
	*testing.T
}

func (h testHarness) writeProgram(source string) string {
	path := filepath.Join(h.TempDir(), "program.dsmal")

	if err := os.WriteFile(path, []byte(source), 0o600); err != nil {
		h.Fatalf("write program: %s", err)
	}

	return path
}

// TestMain exercises the CLI end to end: dispatch `run` on a program that
// divides by zero and check that the command exits with status 1.
func TestMain(tt *testing.T) {
	t := testHarness{tt}
	log.LogLevel.Set(log.Error)

	// Lo then Lz pushes the dividend (1) before the divisor (0); Dv pops
	// the divisor then the dividend, so this computes 1/0 and fails.
	path := t.writeProgram("y;;LoLzDvXx")

	commands := []cli.Command{cmd.Run(), cmd.Cover(), cmd.Disasm(), cmd.Vars()}

	result := cli.New(context.Background()).
		WithLogger(os.Stderr).
		WithCommands(commands).
		WithHelp(cmd.Help(commands)).
		Execute([]string{"run", path})

	if result != 1 {
		t.Fatalf("run: want exit 1 (division by zero), got %d", result)
	}
}

func TestMainRunAndInspect(tt *testing.T) {
	t := testHarness{tt}
	log.LogLevel.Set(log.Error)

	path := t.writeProgram("x|y;1|2;Lv0CpMlLc0MlSt1Xx")

	commands := []cli.Command{cmd.Run(), cmd.Vars()}
	c := cli.New(context.Background()).
		WithLogger(os.Stderr).
		WithCommands(commands).
		WithHelp(cmd.Help(commands))

	if result := c.Execute([]string{"run", "-var", "x=3.14", path}); result != 0 {
		t.Fatalf("run: want exit 0, got %d", result)
	}

	if result := c.Execute([]string{"vars", "-var", "x=3.14", path}); result != 0 {
		t.Fatalf("vars: want exit 0, got %d", result)
	}
}
