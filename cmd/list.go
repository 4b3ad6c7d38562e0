package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/finkeeper/finkeeper/date"
	"github.com/finkeeper/finkeeper/renderer"
	"github.com/google/subcommands"
)

type listCmd struct {
	view  viewFlags
	noIDs bool
	title string
}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "display the ledger records" }
func (*listCmd) Usage() string {
	return `fk list [-sort <order>] [-from <date>] [-to <date>] [-min <amount>] [-max <amount>] [-p <period>] [-income|-expense]

  Displays the records, most recent first, with their ID, and the balance.
`
}

func (c *listCmd) SetFlags(f *flag.FlagSet) {
	c.view.SetFlags(f)
	f.BoolVar(&c.noIDs, "no-ids", false, "Hide the ID column")
	f.StringVar(&c.title, "title", "", "Title of the listing")
}

func (c *listCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, cfg, status := openSession()
	if status != subcommands.ExitSuccess {
		return status
	}
	if err := c.view.apply(s, date.Today()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	ledger := renderer.NewLedger(s.View(), renderer.Options{
		Title:     c.title,
		Currency:  cfg.Currency,
		ShowIDs:   !c.noIDs,
		Breakdown: true,
		Filters:   s.Filters(),
	})
	printMarkdown(renderer.RenderLedger(ledger))
	return subcommands.ExitSuccess
}
