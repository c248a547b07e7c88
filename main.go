// Command dsm is the command-line interface to the Decimal Stack Machine.
package main

import (
	"context"
	"os"

	"github.com/dsmlang/dsm/internal/cli"
	"github.com/dsmlang/dsm/internal/cli/cmd"
)

var (
	commands = []cli.Command{
		cmd.Run(),
		cmd.Cover(),
		cmd.Disasm(),
		cmd.Vars(),
	}
)

// Entry point.
func main() {
	result :=
		cli.New(context.Background()).
			WithLogger(os.Stderr).
			WithCommands(commands).
			WithHelp(cmd.Help(commands)).
			Execute(os.Args[1:])

	os.Exit(result)
}
