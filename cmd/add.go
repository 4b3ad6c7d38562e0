package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/finkeeper/finkeeper"
	"github.com/finkeeper/finkeeper/date"
	"github.com/google/subcommands"
)

// addCmd adds an income, or an expense, to the ledger.
type addCmd struct {
	expense bool
	date    string
	reason  string
}

func (c *addCmd) Name() string {
	if c.expense {
		return "expense"
	}
	return "income"
}

func (c *addCmd) Synopsis() string { return "add an " + c.Name() + " to the ledger" }
func (c *addCmd) Usage() string {
	return fmt.Sprintf(`fk %s [-d <date>] [-r <reason>] <amount>

  Adds an %s to the ledger. The amount is typed without sign.
`, c.Name(), c.Name())
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "today", "Date of the record, like 7.3.2024, 2024-03-07, yesterday or -3d")
	f.StringVar(&c.reason, "r", "", "Reason of the record")
}

func (c *addCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: exactly one amount is required")
		return subcommands.ExitUsageError
	}
	amount, err := finkeeper.ParseAmount(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing amount: %v\n", err)
		return subcommands.ExitUsageError
	}
	if amount.IsNegative() {
		fmt.Fprintln(os.Stderr, "Error: type the amount without sign")
		return subcommands.ExitUsageError
	}
	on, err := date.Parse(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	s, _, status := openSession()
	if status != subcommands.ExitSuccess {
		return status
	}

	r := finkeeper.NewIncome(on, c.reason, amount)
	if c.expense {
		r = finkeeper.NewExpense(on, c.reason, amount)
	}
	if err := s.AddRecord(r); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving ledger %q: %v\n", s.Path(), err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Added %v to %s\n", r, s.Path())
	return subcommands.ExitSuccess
}
