package finkeeper

import (
	"errors"
	"fmt"
	"strings"

	"github.com/finkeeper/finkeeper/date"
	"github.com/shopspring/decimal"
)

// FilterKind tags the criterion a Filter applies.
type FilterKind string

const (
	DateRange   FilterKind = "date"
	AmountRange FilterKind = "amount"
)

// Filter selects records whose date or amount lies strictly between two bounds.
//
// Bounds are exclusive. An inclusive selection is obtained by widening the
// bounds by one day or one currency unit, see ParseDateFilter and
// ParseAmountFilter.
type Filter struct {
	Kind FilterKind `json:"kind"`

	// DateRange: After < date < Before.
	After  date.Date `json:"after,omitzero"`
	Before date.Date `json:"before,omitzero"`

	// AmountRange: Above < amount < Below, a nil bound is unbounded.
	Above *decimal.Decimal `json:"above,omitempty"`
	Below *decimal.Decimal `json:"below,omitempty"`
}

// DateFilter returns a filter matching after < date < before.
func DateFilter(after, before date.Date) Filter {
	return Filter{Kind: DateRange, After: after, Before: before}
}

// AmountFilter returns a filter matching above < amount < below.
// A nil bound is unbounded.
func AmountFilter(above, below *decimal.Decimal) Filter {
	return Filter{Kind: AmountRange, Above: above, Below: below}
}

// IncomeOnly matches strictly positive amounts.
func IncomeOnly() Filter { return AmountFilter(ptr(decimal.Zero), nil) }

// ExpenseOnly matches strictly negative amounts.
func ExpenseOnly() Filter { return AmountFilter(nil, ptr(decimal.Zero)) }

// Match reports whether r lies within the filter bounds.
func (f Filter) Match(r Record) bool {
	switch f.Kind {
	case DateRange:
		return r.date.After(f.After) && r.date.Before(f.Before)
	case AmountRange:
		if f.Above != nil && !r.amount.GreaterThan(*f.Above) {
			return false
		}
		if f.Below != nil && !r.amount.LessThan(*f.Below) {
			return false
		}
		return true
	default:
		return false
	}
}

func (f Filter) String() string {
	switch f.Kind {
	case DateRange:
		return fmt.Sprintf("%s < date < %s", bound(f.After, date.Min), bound(f.Before, date.Max))
	case AmountRange:
		return fmt.Sprintf("%s < amount < %s", amountBound(f.Above, "-inf"), amountBound(f.Below, "+inf"))
	default:
		return fmt.Sprintf("unknown filter %q", string(f.Kind))
	}
}

func bound(d, open date.Date) string {
	if d == open {
		return "*"
	}
	return d.String()
}

func amountBound(d *decimal.Decimal, open string) string {
	if d == nil {
		return open
	}
	return d.String()
}

// Filters is a chain of filters combined with a logical AND.
type Filters []Filter

// Match reports whether r is matched by every filter of the chain.
// An empty chain matches everything.
func (fs Filters) Match(r Record) bool {
	for _, f := range fs {
		if !f.Match(r) {
			return false
		}
	}
	return true
}

// ParseDateFilter builds a filter from user typed inclusive bounds.
// An empty bound is open. Typed bounds are widened by one day so that the
// exclusive filter includes them.
func ParseDateFilter(from, to string) (Filter, error) {
	after, before := date.Min, date.Max
	if from = strings.TrimSpace(from); from != "" {
		d, err := date.Parse(from)
		if err != nil {
			return Filter{}, fmt.Errorf("invalid lower bound: %w", err)
		}
		after = d.Add(-1)
	}
	if to = strings.TrimSpace(to); to != "" {
		d, err := date.Parse(to)
		if err != nil {
			return Filter{}, fmt.Errorf("invalid upper bound: %w", err)
		}
		before = d.Add(1)
	}
	return DateFilter(after, before), nil
}

// ParseAmountFilter builds a filter from user typed inclusive bounds.
// An empty bound is open. Typed bounds are widened by one currency unit.
func ParseAmountFilter(from, to string) (Filter, error) {
	above, err := parseBound(from, decimal.NewFromInt(-1))
	if err != nil {
		return Filter{}, fmt.Errorf("invalid lower bound: %w", err)
	}
	below, err := parseBound(to, decimal.NewFromInt(1))
	if err != nil {
		return Filter{}, fmt.Errorf("invalid upper bound: %w", err)
	}
	return AmountFilter(above, below), nil
}

func parseBound(s string, widen decimal.Decimal) (*decimal.Decimal, error) {
	d, err := ParseAmount(s)
	if errors.Is(err, ErrEmptyInput) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return ptr(d.Add(widen)), nil
}

func ptr[T any](v T) *T { return &v }
