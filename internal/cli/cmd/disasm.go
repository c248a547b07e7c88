package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/dsmlang/dsm/internal/cli"
	"github.com/dsmlang/dsm/internal/dsm"
	"github.com/dsmlang/dsm/internal/log"
)

type disasm struct {
	fs *cli.FlagSet
}

var _ cli.Command = (*disasm)(nil)

// Disasm builds the `fmt` command: parse a DSMAL file and print its
// variables, constants, and instructions one per line. The output is a
// listing, not DSMAL text.
func Disasm() *disasm {
	return &disasm{fs: flag.NewFlagSet("fmt", flag.ExitOnError)}
}

func (*disasm) Description() string { return "parse and list a DSMAL program" }

func (c *disasm) FlagSet() *cli.FlagSet { return c.fs }

func (*disasm) Usage(out io.Writer) error {
	_, err := fmt.Fprintln(out, "fmt <file>")
	return err
}

func (c *disasm) Run(_ context.Context, args []string, out io.Writer, logger *log.Logger) int {
	if len(args) != 1 {
		c.Usage(out) //nolint:errcheck // best-effort usage on misuse

		return 2
	}

	source, err := os.ReadFile(args[0])
	if err != nil {
		logger.Error("read program", "err", err)
		return 1
	}

	prog, err := dsm.Parse(string(source))
	if err != nil {
		logger.Error("parse program", "err", err)
		return 1
	}

	fmt.Fprintln(out, "variables:")

	for i, name := range prog.VariableNames() {
		fmt.Fprintf(out, "  %d: %s\n", i, name)
	}

	fmt.Fprintln(out, "constants:")

	for i := 0; i < prog.ConstantCount(); i++ {
		v, err := prog.Constant(i)
		if err != nil {
			logger.Error("constant", "index", i, "err", err)
			return 1
		}

		fmt.Fprintf(out, "  %d: %s\n", i, v)
	}

	fmt.Fprintln(out, "code:")

	for i := 0; i < prog.InstructionCount(); i++ {
		inst, err := prog.Instruction(i)
		if err != nil {
			logger.Error("instruction", "index", i, "err", err)
			return 1
		}

		fmt.Fprintf(out, "  %4d: %s\n", i, inst)
	}

	return 0
}
