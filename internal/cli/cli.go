// Package cli contains the command-line interface shared by every DSM
// sub-command.
package cli

import (
	"context"
	"flag"
	"io"
	"os"

	"github.com/dsmlang/dsm/internal/log"
)

// Command represents a sub-command. Each has its own flags and an action
// to perform.
type Command interface {
	// FlagSet returns the options the command accepts.
	FlagSet() *flag.FlagSet

	// Description returns a brief, one-line description of the command.
	Description() string

	// Usage prints detailed command documentation.
	Usage(out io.Writer) error

	// Run executes the command. Output should be written to out. It
	// returns a process exit code.
	Run(ctx context.Context, args []string, out io.Writer, logger *log.Logger) int
}

// Commander runs a single sub-command chosen from argv[0].
type Commander struct {
	ctx context.Context
	log *log.Logger

	help     Command
	commands []Command
}

// New creates a Commander bound to ctx.
func New(ctx context.Context) *Commander {
	return &Commander{ctx: ctx}
}

// Execute finds and runs the sub-command named by args[0], or the help
// command if args is empty or names no known sub-command.
func (cli *Commander) Execute(args []string) int {
	if len(args) == 0 {
		cli.help.Run(cli.ctx, nil, os.Stdout, cli.log)
		return 1
	}

	found := cli.help

	for _, cmd := range cli.commands {
		if args[0] == cmd.FlagSet().Name() {
			found = cmd
		}
	}

	fs := found.FlagSet()
	args = args[1:]

	if err := fs.Parse(args); err != nil {
		cli.log.Error("parse error", "err", err)
		return 1
	}

	return found.Run(cli.ctx, fs.Args(), os.Stdout, cli.log)
}

// WithCommands registers the sub-commands the Commander can dispatch to.
func (cli *Commander) WithCommands(cmds []Command) *Commander {
	cli.commands = append([]Command(nil), cmds...)
	return cli
}

// WithHelp configures the fallback help command.
func (cli *Commander) WithHelp(cmd Command) *Commander {
	cli.help = cmd
	return cli
}

// WithLogger configures the logger used by the CLI and its commands. Logs
// go to stderr, leaving stdout for program output.
func (cli *Commander) WithLogger(_ *os.File) *Commander {
	logger := log.NewFormattedLogger(os.Stderr)
	cli.log = logger
	log.SetDefault(logger)

	return cli
}

// Type aliases from the standard library, so commands never need to
// import flag directly.
type (
	Flag    = flag.Flag
	FlagSet = flag.FlagSet
)
