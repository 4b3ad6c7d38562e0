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

type totalCmd struct {
	view  viewFlags
	plain bool
}

func (*totalCmd) Name() string     { return "total" }
func (*totalCmd) Synopsis() string { return "display the balance of the records" }
func (*totalCmd) Usage() string {
	return `fk total [<list flags>] [-plain]

  Displays the sum of the selected records amounts.
`
}

func (c *totalCmd) SetFlags(f *flag.FlagSet) {
	c.view.SetFlags(f)
	f.BoolVar(&c.plain, "plain", false, "Print only the number, for scripts")
}

func (c *totalCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, cfg, status := openSession()
	if status != subcommands.ExitSuccess {
		return status
	}
	if err := c.view.apply(s, date.Today()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	if c.plain {
		fmt.Println(s.Total().String())
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.RenderTotal(renderer.NewLedger(s.View(), renderer.Options{Currency: cfg.Currency})))
	return subcommands.ExitSuccess
}
