package cmd

import (
	"errors"
	"flag"
	"fmt"

	"github.com/finkeeper/finkeeper"
	"github.com/finkeeper/finkeeper/date"
)

// viewFlags select and order the records shown by a subcommand.
type viewFlags struct {
	sort     string
	from, to string
	min, max string
	period   string
	income   bool
	expense  bool
}

func (v *viewFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&v.sort, "sort", "", "Sort order: date, -date, amount or -amount. Defaults to -date")
	f.StringVar(&v.from, "from", "", "Only records on or after this date")
	f.StringVar(&v.to, "to", "", "Only records on or before this date")
	f.StringVar(&v.min, "min", "", "Lowest amount, widened by one unit: -min 10 also accepts 9.50")
	f.StringVar(&v.max, "max", "", "Highest amount, widened by one unit: -max 10 also accepts 10.50")
	f.StringVar(&v.period, "p", "", "Only records of the current day, week, month, quarter or year")
	f.BoolVar(&v.income, "income", false, "Only incomes")
	f.BoolVar(&v.expense, "expense", false, "Only expenses")
}

// filters returns the filter chain described by the flags.
func (v *viewFlags) filters(today date.Date) (finkeeper.Filters, error) {
	var chain finkeeper.Filters
	if v.income && v.expense {
		return nil, errors.New("-income and -expense are exclusive")
	}
	if v.period != "" {
		p, err := date.ParsePeriod(v.period)
		if err != nil {
			return nil, err
		}
		chain = append(chain, finkeeper.DateFilter(date.NewRange(today, p).Exclusive()))
	}
	if v.from != "" || v.to != "" {
		f, err := finkeeper.ParseDateFilter(v.from, v.to)
		if err != nil {
			return nil, fmt.Errorf("invalid date range: %w", err)
		}
		chain = append(chain, f)
	}
	if v.min != "" || v.max != "" {
		f, err := finkeeper.ParseAmountFilter(v.min, v.max)
		if err != nil {
			return nil, fmt.Errorf("invalid amount range: %w", err)
		}
		chain = append(chain, f)
	}
	if v.income {
		chain = append(chain, finkeeper.IncomeOnly())
	}
	if v.expense {
		chain = append(chain, finkeeper.ExpenseOnly())
	}
	return chain, nil
}

// apply sorts and filters the session view.
func (v *viewFlags) apply(s *finkeeper.Session, today date.Date) error {
	order, err := finkeeper.ParseSortOrder(v.sort)
	if err != nil {
		return err
	}
	chain, err := v.filters(today)
	if err != nil {
		return err
	}
	if order != finkeeper.Unsorted {
		s.Sort(order)
	}
	for _, f := range chain {
		s.ApplyFilter(f)
	}
	return nil
}
