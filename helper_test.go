package finkeeper

import (
	"testing"

	"github.com/finkeeper/finkeeper/date"
	"github.com/shopspring/decimal"
)

// rec is a helper for test to create records from const.
func rec(on, reason, amount string) Record {
	return NewRecord(date.MustParse(on), reason, decimal.RequireFromString(amount))
}

// reasons lists the reasons of rs, in order.
func reasons(rs *Records) []string {
	var out []string
	for _, r := range rs.All() {
		out = append(out, r.Reason())
	}
	return out
}

// sample returns the ledger used across tests.
func sample() *Records {
	return NewRecords(
		rec("2024-01-10", "salary", "1000.00"),
		rec("2024-01-15", "rent", "-500.00"),
		rec("2024-01-20", "groceries", "-45.30"),
	)
}

// mustFilter fails the test if building a filter failed.
// Use as mustFilter(t)(ParseDateFilter(from, to)).
func mustFilter(t *testing.T) func(Filter, error) Filter {
	t.Helper()
	return func(f Filter, err error) Filter {
		t.Helper()
		if err != nil {
			t.Fatalf("unexpected filter error: %v", err)
		}
		return f
	}
}
