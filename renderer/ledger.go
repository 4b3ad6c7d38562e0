package renderer

import (
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/finkeeper/finkeeper"
	"github.com/shopspring/decimal"
)

// Ledger is the data rendered by RenderLedger.
type Ledger struct {
	Title     string
	ShowIDs   bool
	Rows      []Row
	Filters   []string
	Breakdown bool // show income and expenses sub-totals

	Total    string
	Negative bool
	Income   string
	Expenses string
}

// Row is a single record of the ledger table.
type Row struct {
	ID       int
	Date     string
	Reason   string
	Amount   string
	Negative bool
}

// Options controls what NewLedger includes.
type Options struct {
	Title     string
	Currency  string // ISO 4217 code
	ShowIDs   bool
	Breakdown bool
	Filters   finkeeper.Filters
}

// NewLedger prepares records for rendering.
func NewLedger(rs *finkeeper.Records, opts Options) *Ledger {
	l := &Ledger{
		Title:     opts.Title,
		ShowIDs:   opts.ShowIDs,
		Breakdown: opts.Breakdown,
	}
	if l.Title == "" {
		l.Title = "Ledger"
	}
	for i, r := range rs.All() {
		l.Rows = append(l.Rows, Row{
			ID:       i,
			Date:     r.Date().String(),
			Reason:   r.Reason(),
			Amount:   Amount(r.Amount(), opts.Currency),
			Negative: r.IsExpense(),
		})
	}
	for _, f := range opts.Filters {
		l.Filters = append(l.Filters, f.String())
	}

	total := rs.TotalAmount()
	l.Total = Amount(total, opts.Currency)
	l.Negative = total.IsNegative()
	l.Income = Amount(rs.Income(), opts.Currency)
	l.Expenses = Amount(rs.Expenses(), opts.Currency)
	return l
}

// maxMinor is the largest amount, in minor units, go-money can format.
var maxMinor = decimal.NewFromInt(1<<63 - 1)

// Amount formats d in the given currency, like "-1 234,50 Kč" for CZK.
// Unknown currencies and amounts too large for go-money are printed as plain
// numbers followed by the currency code.
func Amount(d decimal.Decimal, currency string) string {
	cur := money.GetCurrency(currency)
	if cur == nil {
		return plain(d, 2, currency)
	}
	minor := d.Round(int32(cur.Fraction)).Shift(int32(cur.Fraction))
	if minor.Abs().GreaterThan(maxMinor) {
		return plain(d, int32(cur.Fraction), currency)
	}
	return cur.Formatter().Format(minor.IntPart())
}

func plain(d decimal.Decimal, places int32, currency string) string {
	if currency == "" {
		return d.StringFixed(places)
	}
	return fmt.Sprintf("%s %s", d.StringFixed(places), currency)
}
