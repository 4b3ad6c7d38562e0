package renderer

import (
	"strings"
	"testing"

	"github.com/finkeeper/finkeeper"
	"github.com/finkeeper/finkeeper/date"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

func sample() *finkeeper.Records {
	rec := func(on, reason, amount string) finkeeper.Record {
		return finkeeper.NewRecord(date.MustParse(on), reason, decimal.RequireFromString(amount))
	}
	return finkeeper.NewRecords(
		rec("2024-01-10", "salary", "1000.00"),
		rec("2024-01-15", "rent", "-500.00"),
		rec("2024-01-20", "groceries", "-45.30"),
	)
}

// tableRows parses markdown and returns the text of each table body cell, row by row.
func tableRows(t *testing.T, md string) [][]string {
	t.Helper()
	src := []byte(md)
	root := goldmark.New(goldmark.WithExtensions(extension.Table)).Parser().Parse(text.NewReader(src))

	var rows [][]string
	err := ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if row, ok := n.(*east.TableRow); ok {
			var cells []string
			for c := row.FirstChild(); c != nil; c = c.NextSibling() {
				cells = append(cells, string(c.Text(src)))
			}
			rows = append(rows, cells)
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		t.Fatalf("walking markdown: %v", err)
	}
	return rows
}

func TestRenderLedger_Table(t *testing.T) {
	md := RenderLedger(NewLedger(sample(), Options{Currency: "USD", ShowIDs: true}))

	want := [][]string{
		{"0", "2024-01-10", "salary", "$1,000.00"},
		{"1", "2024-01-15", "rent", "-$500.00"},
		{"2", "2024-01-20", "groceries", "-$45.30"},
	}
	if diff := cmp.Diff(want, tableRows(t, md)); diff != "" {
		t.Errorf("RenderLedger() table mismatch (-want +got):\n%s\nmarkdown:\n%s", diff, md)
	}
	if !strings.Contains(md, "**Balance:** $454.70") {
		t.Errorf("RenderLedger() is missing the balance:\n%s", md)
	}
	if strings.Contains(md, "deficit") {
		t.Errorf("a positive balance is not a deficit:\n%s", md)
	}
}

func TestRenderLedger_WithoutIDs(t *testing.T) {
	md := RenderLedger(NewLedger(sample(), Options{Currency: "USD"}))
	rows := tableRows(t, md)
	if len(rows) != 3 || len(rows[0]) != 3 {
		t.Errorf("RenderLedger() without IDs should have 3 rows of 3 cells, got %v", rows)
	}
}

func TestRenderLedger_Empty(t *testing.T) {
	md := RenderLedger(NewLedger(finkeeper.NewRecords(), Options{Currency: "EUR"}))
	if !strings.Contains(md, "_No records._") {
		t.Errorf("RenderLedger() of an empty ledger:\n%s", md)
	}
	if rows := tableRows(t, md); len(rows) != 0 {
		t.Errorf("RenderLedger() of an empty ledger has a table: %v", rows)
	}
}

func TestRenderLedger_FiltersAndBreakdown(t *testing.T) {
	rs := sample()
	rs.Filter(finkeeper.ExpenseOnly())
	md := RenderLedger(NewLedger(rs, Options{
		Title:     "Expenses",
		Currency:  "USD",
		Breakdown: true,
		Filters:   finkeeper.Filters{finkeeper.ExpenseOnly()},
	}))

	for _, want := range []string{
		"# Expenses",
		"- `-inf < amount < 0`",
		"Income: $0.00, expenses: -$545.30",
		"**Balance:** -$545.30 _(deficit)_",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("RenderLedger() is missing %q:\n%s", want, md)
		}
	}
}

func TestRenderTotal(t *testing.T) {
	got := RenderTotal(NewLedger(sample(), Options{Currency: "USD"}))
	if want := "**Balance:** $454.70\n"; got != want {
		t.Errorf("RenderTotal() = %q, want %q", got, want)
	}
}

func TestAmount(t *testing.T) {
	tests := []struct {
		amount   string
		currency string
		want     string
	}{
		{"1234.5", "USD", "$1,234.50"},
		{"-0.004", "USD", "$0.00"},
		{"-0.005", "USD", "-$0.01"},
		{"12.5", "", "12.50"},
		{"12.5", "XXX-not-a-currency", "12.50 XXX-not-a-currency"},
		{"123456789012345678901234567890", "USD", "123456789012345678901234567890.00 USD"},
	}
	for _, tt := range tests {
		t.Run(tt.amount+tt.currency, func(t *testing.T) {
			if got := Amount(decimal.RequireFromString(tt.amount), tt.currency); got != tt.want {
				t.Errorf("Amount(%s, %q) = %q, want %q", tt.amount, tt.currency, got, tt.want)
			}
		})
	}
}

func TestCell(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"a|b\tc\nd", `a\|b c d`},
		{`back\slash`, `back\\slash`},
		{"_sale_", `\_sale\_`},
		{"**x**", `\*\*x\*\*`},
		{"`code`", "\\`code\\`"},
	}
	for _, tt := range tests {
		if got := cell(tt.in); got != tt.want {
			t.Errorf("cell(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRenderLedger_ReasonIsLiteral(t *testing.T) {
	rs := finkeeper.NewRecords(finkeeper.NewRecord(date.MustParse("2024-01-10"), "_sale_ **x** `y`", decimal.NewFromInt(5)))
	src := []byte(RenderLedger(NewLedger(rs, Options{Currency: "USD"})))
	root := goldmark.New(goldmark.WithExtensions(extension.Table)).Parser().Parse(text.NewReader(src))

	// the balance line is bold, only the table must be free of markup.
	var rows int
	ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if _, ok := n.(*east.Table); !ok {
			return ast.WalkContinue, nil
		}
		ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
			if !entering {
				return ast.WalkContinue, nil
			}
			switch c.(type) {
			case *east.TableRow:
				rows++
			case *ast.Emphasis, *ast.CodeSpan:
				t.Errorf("reason rendered as %s:\n%s", c.Kind(), src)
			}
			return ast.WalkContinue, nil
		})
		return ast.WalkSkipChildren, nil
	})
	if rows != 1 {
		t.Errorf("got %d table rows, want 1:\n%s", rows, src)
	}
}
