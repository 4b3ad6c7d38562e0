package finkeeper

import (
	"errors"
	"iter"
	"slices"

	"github.com/shopspring/decimal"
)

// ErrRecordNotFound is returned when removing a record that is not in the collection.
var ErrRecordNotFound = errors.New("record not found")

// Matcher selects records.
type Matcher interface {
	Match(r Record) bool
}

// Records is an ordered collection of records.
//
// The order is the one of the last sort, new records are appended at the end.
// Duplicates are allowed and are distinct entries.
type Records struct {
	items []Record
}

// NewRecords creates a collection holding the given records, in order.
func NewRecords(records ...Record) *Records {
	return &Records{items: slices.Clone(records)}
}

// Len returns the number of records.
func (rs *Records) Len() int { return len(rs.items) }

// At returns the i-th record. It panics if i is out of range.
func (rs *Records) At(i int) Record { return rs.items[i] }

// All returns an iterator over the records and their position.
func (rs *Records) All() iter.Seq2[int, Record] {
	return func(yield func(int, Record) bool) {
		for i, r := range rs.items {
			if !yield(i, r) {
				return
			}
		}
	}
}

// Clone returns an independent copy of the collection.
func (rs *Records) Clone() *Records { return NewRecords(rs.items...) }

// Add appends records at the end.
func (rs *Records) Add(records ...Record) {
	rs.items = append(rs.items, records...)
}

// Remove removes the first record equal to r.
func (rs *Records) Remove(r Record) error {
	i := slices.IndexFunc(rs.items, r.Equal)
	if i < 0 {
		return ErrRecordNotFound
	}
	rs.items = slices.Delete(rs.items, i, i+1)
	return nil
}

// SortByDate sorts records by date. The sort is stable, meaning records on the
// same day maintain their relative order.
func (rs *Records) SortByDate(desc bool) {
	slices.SortStableFunc(rs.items, func(a, b Record) int {
		if desc {
			return b.date.Compare(a.date)
		}
		return a.date.Compare(b.date)
	})
}

// SortByAmount sorts records by signed amount. The sort is stable.
func (rs *Records) SortByAmount(desc bool) {
	slices.SortStableFunc(rs.items, func(a, b Record) int {
		if desc {
			return b.amount.Cmp(a.amount)
		}
		return a.amount.Cmp(b.amount)
	})
}

// Filter keeps only the records matched by m, in their current order.
// Discarded records are lost.
func (rs *Records) Filter(m Matcher) {
	rs.items = slices.DeleteFunc(rs.items, func(r Record) bool { return !m.Match(r) })
}

// TotalAmount returns the exact sum of all amounts.
func (rs *Records) TotalAmount() decimal.Decimal {
	return rs.sum(func(Record) bool { return true })
}

// Income returns the sum of positive amounts.
func (rs *Records) Income() decimal.Decimal { return rs.sum(Record.IsIncome) }

// Expenses returns the sum of negative amounts, as a negative number.
func (rs *Records) Expenses() decimal.Decimal { return rs.sum(Record.IsExpense) }

func (rs *Records) sum(accept func(Record) bool) decimal.Decimal {
	total := decimal.Zero
	for _, r := range rs.items {
		if accept(r) {
			total = total.Add(r.amount)
		}
	}
	return total
}
