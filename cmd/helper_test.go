package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/finkeeper/finkeeper"
	"github.com/finkeeper/finkeeper/date"
	"github.com/shopspring/decimal"
)

func rec(on, reason, amount string) finkeeper.Record {
	return finkeeper.NewRecord(date.MustParse(on), reason, decimal.RequireFromString(amount))
}

func sample() *finkeeper.Records {
	return finkeeper.NewRecords(
		rec("2024-01-10", "salary", "1000.00"),
		rec("2024-01-15", "rent", "-500.00"),
		rec("2024-01-20", "groceries", "-45.30"),
	)
}

func reasons(rs *finkeeper.Records) []string {
	var out []string
	for _, r := range rs.All() {
		out = append(out, r.Reason())
	}
	return out
}

// sampleFile saves the sample ledger in a temporary data file.
func sampleFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), finkeeper.DefaultDataFile)
	if err := finkeeper.SaveRecords(path, sample()); err != nil {
		t.Fatal(err)
	}
	return path
}

// unsetEnv removes the configuration variables for the duration of the test.
func unsetEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvDataFile, EnvCurrency, EnvLogLevel} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}
