package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/finkeeper/finkeeper"
	"github.com/finkeeper/finkeeper/date"
	"github.com/google/subcommands"
)

type rmCmd struct {
	view viewFlags
}

func (*rmCmd) Name() string     { return "rm" }
func (*rmCmd) Synopsis() string { return "remove a record by its ID in a listing" }
func (*rmCmd) Usage() string {
	return `fk rm [<list flags>] <id>

  Removes the record displayed with <id> by 'fk list' given the same flags.
  An id of -1 does nothing.
`
}

func (c *rmCmd) SetFlags(f *flag.FlagSet) { c.view.SetFlags(f) }

func (c *rmCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: exactly one record id is required")
		return subcommands.ExitUsageError
	}
	id, err := strconv.Atoi(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing id: %v\n", err)
		return subcommands.ExitUsageError
	}

	s, _, status := openSession()
	if status != subcommands.ExitSuccess {
		return status
	}
	if err := c.view.apply(s, date.Today()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	view := s.View()
	err = s.RemoveAt(id)
	switch {
	case errors.Is(err, finkeeper.ErrCancelled):
		fmt.Println("Nothing removed")
		return subcommands.ExitSuccess
	case errors.Is(err, finkeeper.ErrIndexOutOfRange):
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	case err != nil:
		fmt.Fprintf(os.Stderr, "Error removing record: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Removed %v from %s\n", view.At(id), s.Path())
	return subcommands.ExitSuccess
}
