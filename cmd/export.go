package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/PaesslerAG/jsonpath"
	"github.com/finkeeper/finkeeper"
	"github.com/finkeeper/finkeeper/date"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

type exportCmd struct {
	view  viewFlags
	query string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "print the records as JSON" }
func (*exportCmd) Usage() string {
	return `fk export [<list flags>] [-q <jsonpath>]

  Prints the selected records, the filters and the total as JSON.
  With -q, prints only the result of the JSONPath query, like
  '$.records[?(@.reason=="rent")].amount'.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	c.view.SetFlags(f)
	f.StringVar(&c.query, "q", "", "JSONPath query applied to the export")
}

func (c *exportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, _, status := openSession()
	if status != subcommands.ExitSuccess {
		return status
	}
	if err := c.view.apply(s, date.Today()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if err := writeExport(os.Stdout, s, c.query); err != nil {
		fmt.Fprintf(os.Stderr, "Error exporting: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

type exportRecord struct {
	Date   date.Date       `json:"date"`
	Reason string          `json:"reason"`
	Amount decimal.Decimal `json:"amount"`
}

// export is the JSON document printed by the export command.
type export struct {
	Order   string            `json:"order"`
	Filters finkeeper.Filters `json:"filters,omitempty"`
	Records []exportRecord    `json:"records"`
	Total   decimal.Decimal   `json:"total"`
}

func newExport(s *finkeeper.Session) export {
	view := s.View()
	e := export{
		Order:   s.Order().String(),
		Filters: s.Filters(),
		Records: []exportRecord{},
		Total:   view.TotalAmount(),
	}
	for _, r := range view.All() {
		e.Records = append(e.Records, exportRecord{Date: r.Date(), Reason: r.Reason(), Amount: r.Amount()})
	}
	return e
}

// writeExport writes the session view as indented JSON, reduced by query if not empty.
func writeExport(w io.Writer, s *finkeeper.Session, query string) error {
	var v any = newExport(s)
	if query != "" {
		// jsonpath works on generic values only.
		data, err := json.Marshal(v)
		if err != nil {
			return err
		}
		var jobj any
		if err := json.Unmarshal(data, &jobj); err != nil {
			return err
		}
		if v, err = jsonpath.Get(query, jobj); err != nil {
			return fmt.Errorf("query %q: %w", query, err)
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
