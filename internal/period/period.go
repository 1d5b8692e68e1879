package period

import (
	"time"
)

// DateLayout is the wire format for calendar dates in the export and on the
// command line.
const DateLayout = "2006-01-02"

// Period is a half-open date interval [Start, End) covering exactly one
// calendar month. Start is the first day of the month and End is the first
// day of the following month, both at UTC midnight.
type Period struct {
	Start time.Time
	End   time.Time
}

// PriorMonth returns the calendar month immediately before the month
// containing asOf. Only the year and month of asOf matter: any day in
// September 2025 yields [2025-08-01, 2025-09-01).
func PriorMonth(asOf time.Time) Period {
	end := time.Date(asOf.Year(), asOf.Month(), 1, 0, 0, 0, 0, time.UTC)
	start := time.Date(asOf.Year(), asOf.Month()-1, 1, 0, 0, 0, 0, time.UTC)

	return Period{Start: start, End: end}
}

// Contains reports whether d falls inside the interval. End is exclusive: a
// transaction dated on End belongs to the next period.
func (p Period) Contains(d time.Time) bool {
	return !d.Before(p.Start) && d.Before(p.End)
}

// LastDay returns the final calendar day of the period, used when the closed
// range is shown to people.
func (p Period) LastDay() time.Time {
	return p.End.AddDate(0, 0, -1)
}

func (p Period) String() string {
	return p.Start.Format(DateLayout) + " to " + p.LastDay().Format(DateLayout)
}
