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

type cover struct {
	fs *cli.FlagSet

	limit     int
	vars      stringListFlag
	sourceMap string
}

var _ cli.Command = (*cover)(nil)

// Cover builds the `cover` command: run a DSMAL program once and report
// which instructions were dispatched.
func Cover() *cover {
	c := &cover{fs: flag.NewFlagSet("cover", flag.ExitOnError)}

	c.fs.IntVar(&c.limit, "limit", dsm.DefaultInstructionLimit, "instruction budget for the run")
	c.fs.Var(&c.vars, "var", "name=value baseline override, may be repeated")
	c.fs.StringVar(&c.sourceMap, "sourcemap", "", "optional source-map file, one source line per instruction")

	return c
}

func (*cover) Description() string { return "report instruction coverage for a run" }

func (c *cover) FlagSet() *cli.FlagSet { return c.fs }

func (*cover) Usage(out io.Writer) error {
	_, err := fmt.Fprintln(out, "cover [-limit N] [-var name=value]... [-sourcemap file] <file>")
	return err
}

func (c *cover) Run(_ context.Context, args []string, out io.Writer, logger *log.Logger) int {
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

	var smap *dsm.SourceMap

	if c.sourceMap != "" {
		f, err := os.Open(c.sourceMap)
		if err != nil {
			logger.Error("open sourcemap", "err", err)
			return 1
		}
		defer f.Close() //nolint:errcheck // read-only, nothing to flush

		smap, err = dsm.ParseSourceMap(f)
		if err != nil {
			logger.Error("parse sourcemap", "err", err)
			return 1
		}
	}

	cov, err := m.RunCoverage()
	if err != nil {
		logger.Error("run", "err", err)
		return 1
	}

	fmt.Fprintf(out, "%s\n", cov)
	fmt.Fprintf(out, "%d/%d instructions covered\n", cov.Count(), prog.InstructionCount())

	if smap != nil {
		for i, hit := range cov {
			if !hit {
				fmt.Fprintf(out, "uncovered: instruction %d (line %d)\n", i, smap.Line(i))
			}
		}
	}

	return 0
}
