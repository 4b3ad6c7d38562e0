// Command fk keeps a ledger of incomes and expenses.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path"

	"github.com/finkeeper/finkeeper/cmd"
	"github.com/google/subcommands"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "help")
	commander.Register(commander.FlagsCommand(), "help")
	commander.Register(commander.CommandsCommand(), "help")
	cmd.Register(commander)

	// when invoked by the shell for completion, complete and exit.
	cmd.Completion().Complete(commander.Name())

	flag.Parse()
	if flag.NArg() == 0 {
		// without subcommand, start the interactive shell.
		flag.CommandLine.Parse(append(os.Args[1:], "shell"))
	}

	if name := flag.Arg(0); !cmd.IsCommand(name) {
		c, err := cmd.Settings()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error in configuration: %v\n", err)
			os.Exit(int(subcommands.ExitUsageError))
		}
		if found, code := cmd.RunExtension(name, flag.Args()[1:], c); found {
			os.Exit(code)
		}
	}
	os.Exit(int(commander.Execute(context.Background())))
}
