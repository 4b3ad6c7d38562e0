package finkeeper

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// ErrCancelled is returned when the user cancels a removal with index -1.
	ErrCancelled = errors.New("cancelled")
	// ErrIndexOutOfRange is returned for an index outside of the current view.
	ErrIndexOutOfRange = errors.New("index out of range")
)

// CancelIndex is the index used to cancel a removal.
const CancelIndex = -1

// SortOrder is the order the records are displayed in.
type SortOrder int

const (
	Unsorted SortOrder = iota
	DateAsc
	DateDesc
	AmountAsc
	AmountDesc
)

func (o SortOrder) String() string {
	switch o {
	case DateAsc:
		return "date"
	case DateDesc:
		return "-date"
	case AmountAsc:
		return "amount"
	case AmountDesc:
		return "-amount"
	default:
		return "unsorted"
	}
}

// ParseSortOrder parses "date", "amount", prefixed with "-" for a descending order.
func ParseSortOrder(s string) (SortOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "unsorted":
		return Unsorted, nil
	case "date":
		return DateAsc, nil
	case "-date":
		return DateDesc, nil
	case "amount":
		return AmountAsc, nil
	case "-amount":
		return AmountDesc, nil
	default:
		return Unsorted, fmt.Errorf("unknown sort order %q, want date, -date, amount or -amount", s)
	}
}

// Apply sorts rs in this order.
func (o SortOrder) Apply(rs *Records) {
	switch o {
	case DateAsc:
		rs.SortByDate(false)
	case DateDesc:
		rs.SortByDate(true)
	case AmountAsc:
		rs.SortByAmount(false)
	case AmountDesc:
		rs.SortByAmount(true)
	}
}

// Session holds the ledger of a user during an interactive session.
//
// The ledger records are the only ones persisted. What the user sees is a
// view of them: the same records, in the same order, reduced by the active
// filters. Filters can only be stacked or cleared all at once.
//
// Mutations (add, remove) are saved immediately, sorting and filtering are
// not saved.
type Session struct {
	path    string
	records *Records
	filters Filters
	order   SortOrder
}

// OpenSession loads the ledger saved at path and sorts it by date, most recent first.
func OpenSession(path string) *Session {
	s := NewSession(path, LoadRecords(path))
	s.Sort(DateDesc)
	slog.Debug("session opened", "path", path, "records", s.records.Len())
	return s
}

// NewSession creates a session over rs, saved to path.
func NewSession(path string, rs *Records) *Session {
	return &Session{path: path, records: rs}
}

// Path returns the data file of the session.
func (s *Session) Path() string { return s.path }

// Records returns a copy of all the records of the ledger.
func (s *Session) Records() *Records { return s.records.Clone() }

// View returns the records as currently displayed: sorted and filtered.
func (s *Session) View() *Records {
	v := s.records.Clone()
	v.Filter(s.filters)
	return v
}

// Total returns the total amount of the displayed records.
func (s *Session) Total() decimal.Decimal { return s.View().TotalAmount() }

// Order returns the current sort order.
func (s *Session) Order() SortOrder { return s.order }

// Filters returns the active filters.
func (s *Session) Filters() Filters { return slices.Clone(s.filters) }

// Filtered reports whether any filter is active.
func (s *Session) Filtered() bool { return len(s.filters) > 0 }

// AddRecord appends r to the ledger and saves it.
// On save error, the record is kept in memory.
func (s *Session) AddRecord(r Record) error {
	s.records.Add(r)
	slog.Debug("record added", "record", r)
	return s.Save()
}

// RemoveAt removes the record displayed at index i and saves the ledger.
func (s *Session) RemoveAt(i int) error {
	if i == CancelIndex {
		return ErrCancelled
	}
	view := s.View()
	if i < 0 || i >= view.Len() {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, i, view.Len())
	}
	r := view.At(i)
	if err := s.records.Remove(r); err != nil {
		return fmt.Errorf("could not remove %v: %w", r, err)
	}
	slog.Debug("record removed", "record", r)
	return s.Save()
}

// Sort changes the order of the records.
func (s *Session) Sort(order SortOrder) {
	s.order = order
	order.Apply(s.records)
}

// ApplyFilter narrows the view with f, on top of the active filters.
func (s *Session) ApplyFilter(f Filter) {
	s.filters = append(s.filters, f)
}

// ClearFilters removes all filters.
func (s *Session) ClearFilters() { s.filters = nil }

// Save writes the ledger to the data file.
func (s *Session) Save() error {
	if err := SaveRecords(s.path, s.records); err != nil {
		return err
	}
	slog.Debug("ledger saved", "path", s.path, "records", s.records.Len())
	return nil
}

// Close saves the ledger a last time.
func (s *Session) Close() error { return s.Save() }
