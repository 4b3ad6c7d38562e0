package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/finkeeper/finkeeper"
	"github.com/finkeeper/finkeeper/date"
	"github.com/google/go-cmp/cmp"
)

// runShell runs a shell over the sample ledger with the given input,
// with today being 2024-03-07.
func runShell(t *testing.T, input string) (*finkeeper.Session, string) {
	t.Helper()
	s := finkeeper.OpenSession(sampleFile(t))
	var out bytes.Buffer
	sh := NewShell(s, strings.NewReader(input), &out)
	sh.Currency = "USD"
	sh.Today = func() date.Date { return date.MustParse("2024-03-07") }
	if err := sh.Run(); err != nil {
		t.Fatalf("Run() error: %v\noutput:\n%s", err, out.String())
	}
	return s, out.String()
}

func TestShell_AddIncome(t *testing.T) {
	s, _ := runShell(t, "1\n1\nbonus\n200\n0\n")

	saved := finkeeper.LoadRecords(s.Path())
	if saved.Len() != 4 {
		t.Fatalf("saved %d records, want 4", saved.Len())
	}
	if got, want := saved.At(3), rec("2024-03-07", "bonus", "200"); !got.Equal(want) {
		t.Errorf("added %v, want %v", got, want)
	}
}

func TestShell_AddExpenseReprompts(t *testing.T) {
	s, out := runShell(t, "2\nnot a date\n2\ncoffee\nabc\n-3\n3,50\n0\n")

	saved := finkeeper.LoadRecords(s.Path())
	if got, want := saved.At(saved.Len()-1), rec("2024-03-06", "coffee", "-3.50"); !got.Equal(want) {
		t.Errorf("added %v, want %v", got, want)
	}
	if !strings.Contains(out, "Type the amount without sign.") {
		t.Errorf("a signed amount should be refused:\n%s", out)
	}
}

func TestShell_AddDottedDate(t *testing.T) {
	s, _ := runShell(t, "1\n29.2.2024\ngift\n10\n0\n")
	if got := s.Records().At(3).Date(); got != date.MustParse("2024-02-29") {
		t.Errorf("added on %v, want 2024-02-29", got)
	}
}

func TestShell_RemoveThroughFilter(t *testing.T) {
	// the view is groceries, rent once filtered, 7 is out of range.
	s, out := runShell(t, "5\n4\n3\n7\n0\n0\n")

	if !strings.Contains(out, "There is no record 7.") {
		t.Errorf("an out of range ID should be reported:\n%s", out)
	}
	if diff := cmp.Diff([]string{"rent", "salary"}, reasons(finkeeper.LoadRecords(s.Path()))); diff != "" {
		t.Errorf("saved records mismatch (-want +got):\n%s", diff)
	}
}

func TestShell_CancelRemove(t *testing.T) {
	s, _ := runShell(t, "3\n-1\n0\n")
	if got := finkeeper.LoadRecords(s.Path()).Len(); got != 3 {
		t.Errorf("saved %d records, want 3", got)
	}
}

func TestShell_Sort(t *testing.T) {
	s, out := runShell(t, "4\n9\n3\n0\n")

	if !strings.Contains(out, "Unknown sort 9.") {
		t.Errorf("an unknown sort should be reported:\n%s", out)
	}
	if s.Order() != finkeeper.AmountDesc {
		t.Errorf("Order() = %v, want %v", s.Order(), finkeeper.AmountDesc)
	}
	if diff := cmp.Diff([]string{"salary", "groceries", "rent"}, reasons(s.View())); diff != "" {
		t.Errorf("View() mismatch (-want +got):\n%s", diff)
	}
}

func TestShell_Filters(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"back", "5\n-1\n0\n", []string{"groceries", "rent", "salary"}},
		{"date range", "5\n1\n15.1.2024\n\n0\n", []string{"groceries", "rent"}},
		{"amount range reprompts", "5\n2\nten\n\n0\n\n0\n", []string{"salary"}},
		{"incomes", "5\n3\n0\n", []string{"salary"}},
		{"stacked", "5\n4\n5\n2\n\n-100\n0\n", []string{"rent"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := runShell(t, tt.input)
			if diff := cmp.Diff(tt.want, reasons(s.View())); diff != "" {
				t.Errorf("View() mismatch (-want +got):\n%s", diff)
			}
			// filters are never saved.
			if got := finkeeper.LoadRecords(s.Path()).Len(); got != 3 {
				t.Errorf("saved %d records, want 3", got)
			}
		})
	}
}

func TestShell_ClearFilters(t *testing.T) {
	s, out := runShell(t, "6\n5\n3\n6\n0\n")

	if !strings.Contains(out, "Unknown command 6.") {
		t.Errorf("clear filters should not be available without filter:\n%s", out)
	}
	if !strings.Contains(out, "6: clear filters") {
		t.Errorf("clear filters should be listed once filtered:\n%s", out)
	}
	if s.Filtered() || s.View().Len() != 3 {
		t.Errorf("6 should clear the filters, got %v", reasons(s.View()))
	}
}

func TestShell_NotANumber(t *testing.T) {
	_, out := runShell(t, "x\n0\n")
	if !strings.Contains(out, `"x" is not a number.`) {
		t.Errorf("a non numeric command should be reported:\n%s", out)
	}
}

func TestShell_ShowsLedger(t *testing.T) {
	_, out := runShell(t, "0\n")
	for _, want := range []string{"groceries", "**Balance:** $454.70", "0: save and exit"} {
		if !strings.Contains(out, want) {
			t.Errorf("output is missing %q:\n%s", want, out)
		}
	}
}

func TestShell_EndOfInputSaves(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new_data")
	sh := NewShell(finkeeper.NewSession(path, sample()), strings.NewReader("1\n1\n"), &bytes.Buffer{})
	if err := sh.Run(); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if got := finkeeper.LoadRecords(path).Len(); got != 3 {
		t.Errorf("saved %d records, want 3", got)
	}
}

func TestShell_SaveError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "data")
	var out bytes.Buffer
	sh := NewShell(finkeeper.NewSession(path, sample()), strings.NewReader("1\n1\nbonus\n1\n0\n"), &out)

	if err := sh.Run(); err == nil {
		t.Errorf("Run() should report the final save error")
	}
	if !strings.Contains(out.String(), "Could not save the ledger") {
		t.Errorf("the save error should be reported:\n%s", out.String())
	}
	if sh.session.Records().Len() != 4 {
		t.Errorf("the record should be kept in memory")
	}
}

func TestShell_LongReasonReprompts(t *testing.T) {
	long := strings.Repeat("x", 70000)
	s, out := runShell(t, "1\n1\n"+long+"\nbook\n10\n1\n1\nshort\n5\n0\n")

	if !strings.Contains(out, "The reason is too long (70000 bytes, at most 65535).") {
		t.Errorf("a reason too long to be saved should be refused:\n%s", out)
	}
	saved := finkeeper.LoadRecords(s.Path())
	var got []string
	for _, r := range saved.All() {
		if r.Date() == date.MustParse("2024-03-07") {
			got = append(got, r.Reason())
		}
	}
	if diff := cmp.Diff([]string{"book", "short"}, got); diff != "" {
		t.Errorf("added records mismatch (-want +got):\n%s", diff)
	}
}

func TestShell_LongCommandReprompts(t *testing.T) {
	_, out := runShell(t, strings.Repeat("9", 70000)+"\n0\n")
	if !strings.Contains(out, "is not a number.") {
		t.Errorf("an over-long command should be refused:\n%s", out)
	}
}

func TestShell_ReasonIsKeptAsTyped(t *testing.T) {
	s, _ := runShell(t, "1\n1\n  two  spaces \r\n3\n0")
	if got, want := s.Records().At(3).Reason(), "  two  spaces "; got != want {
		t.Errorf("reason = %q, want %q", got, want)
	}
}
