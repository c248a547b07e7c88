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

type vars struct {
	fs   *cli.FlagSet
	base stringListFlag
}

var _ cli.Command = (*vars)(nil)

// Vars builds the `vars` command: construct a Machine with the given
// baseline and print the resulting current bindings, without
// running any instructions. Useful for checking a baseline parses before
// spending a run on it.
func Vars() *vars {
	c := &vars{fs: flag.NewFlagSet("vars", flag.ExitOnError)}
	c.fs.Var(&c.base, "var", "name=value baseline override, may be repeated")

	return c
}

func (*vars) Description() string { return "show a program's variables and baseline values" }

func (c *vars) FlagSet() *cli.FlagSet { return c.fs }

func (*vars) Usage(out io.Writer) error {
	_, err := fmt.Fprintln(out, "vars [-var name=value]... <file>")
	return err
}

func (c *vars) Run(_ context.Context, args []string, out io.Writer, logger *log.Logger) int {
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

	baseline, err := c.base.asMap()
	if err != nil {
		logger.Error("parse -var", "err", err)
		return 2
	}

	m, err := dsm.NewMachine(prog, baseline)
	if err != nil {
		logger.Error("create machine", "err", err)
		return 1
	}

	for _, name := range prog.VariableNames() {
		value, err := m.Get(name)
		if err != nil {
			logger.Error("get", "name", name, "err", err)
			return 1
		}

		fmt.Fprintf(out, "%s = %s\n", name, value)
	}

	return 0
}
