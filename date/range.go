package date

// Range represents an inclusive range of dates.
type Range struct{ From, To Date }

// NewRange returns the range of the period containing d.
func NewRange(d Date, period Period) Range {
	return Range{From: d.StartOf(period), To: d.EndOf(period)}
}

// Contains return true date is included in the range (boundaries included)
func (r Range) Contains(date Date) bool { return !date.Before(r.From) && !date.After(r.To) }

// Exclusive returns the bounds (after, before) such that after < d < before
// holds exactly for the dates d contained in r.
func (r Range) Exclusive() (after, before Date) { return r.From.Add(-1), r.To.Add(1) }

func (r Range) String() string { return r.From.String() + ".." + r.To.String() }
