package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dsmlang/dsm/internal/cli"
	"github.com/dsmlang/dsm/internal/dsm"
	"github.com/dsmlang/dsm/internal/log"
)

type run struct {
	fs *cli.FlagSet

	limit   int
	timeout time.Duration
	vars    stringListFlag
}

var _ cli.Command = (*run)(nil)

// Run builds the `run` command: parse a DSMAL file, execute it once, and
// report the resulting variable bindings or the error that aborted it.
func Run() *run {
	c := &run{fs: flag.NewFlagSet("run", flag.ExitOnError)}

	c.fs.IntVar(&c.limit, "limit", dsm.DefaultInstructionLimit, "instruction budget for the run")
	c.fs.DurationVar(&c.timeout, "timeout", 0, "wall-clock timeout, 0 disables it")
	c.fs.Var(&c.vars, "var", "name=value baseline override, may be repeated")

	return c
}

func (*run) Description() string { return "execute a DSMAL program" }

func (c *run) FlagSet() *cli.FlagSet { return c.fs }

func (*run) Usage(out io.Writer) error {
	_, err := fmt.Fprintln(out, "run [-limit N] [-timeout D] [-var name=value]... <file>")
	return err
}

func (c *run) Run(ctx context.Context, args []string, out io.Writer, logger *log.Logger) int {
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

	baseline, err := c.vars.asMap()
	if err != nil {
		logger.Error("parse -var", "err", err)
		return 2
	}

	m, err := dsm.NewMachine(prog, baseline)
	if err != nil {
		logger.Error("create machine", "err", err)
		return 1
	}

	m.InstructionLimit = c.limit

	if c.timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	executed, err := m.RunContext(ctx)
	if err != nil {
		logger.Error("run", "instructions", executed, "err", err)
		return 1
	}

	fmt.Fprintf(out, "instructions executed: %d\n", executed)

	for _, name := range prog.VariableNames() {
		value, err := m.Get(name)
		if err != nil {
			continue
		}

		fmt.Fprintf(out, "%s = %s\n", name, value)
	}

	return 0
}
