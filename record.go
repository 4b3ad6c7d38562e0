package finkeeper

import (
	"errors"
	"fmt"
	"strings"

	"github.com/finkeeper/finkeeper/date"
	"github.com/shopspring/decimal"
)

// Record is a single dated income or expense entry.
//
// The amount is signed: positive for an income, negative for an expense.
type Record struct {
	date   date.Date
	reason string
	amount decimal.Decimal
}

// NewRecord creates a record.
func NewRecord(on date.Date, reason string, amount decimal.Decimal) Record {
	return Record{date: on, reason: reason, amount: amount}
}

// NewIncome creates a record for an income, the amount is stored as typed.
func NewIncome(on date.Date, reason string, amount decimal.Decimal) Record {
	return NewRecord(on, reason, amount)
}

// NewExpense creates a record for an expense, the amount is stored negated.
func NewExpense(on date.Date, reason string, amount decimal.Decimal) Record {
	return NewRecord(on, reason, amount.Neg())
}

func (r Record) Date() date.Date         { return r.date }
func (r Record) Reason() string          { return r.reason }
func (r Record) Amount() decimal.Decimal { return r.amount }

func (r *Record) SetDate(on date.Date)             { r.date = on }
func (r *Record) SetReason(reason string)          { r.reason = reason }
func (r *Record) SetAmount(amount decimal.Decimal) { r.amount = amount }

// IsIncome reports whether the record is an income, zero amounts are neither.
func (r Record) IsIncome() bool { return r.amount.IsPositive() }

// IsExpense reports whether the record is an expense.
func (r Record) IsExpense() bool { return r.amount.IsNegative() }

// Equal reports whether both records hold the same values.
// Amounts are compared numerically so 1.5 equals 1.50.
func (r Record) Equal(x Record) bool {
	return r.date == x.date && r.reason == x.reason && r.amount.Equal(x.amount)
}

func (r Record) String() string {
	return fmt.Sprintf("%s %q %s", r.date, r.reason, r.amount)
}

// ErrEmptyInput is returned when parsing an empty value.
var ErrEmptyInput = errors.New("empty input")

// ParseAmount parses a decimal amount. Both "12.5" and "12,5" are accepted.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrEmptyInput
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", "."))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return d, nil
}
