package fiscal

import (
	"fmt"
	"time"

	"github.com/pantry/backend/internal/domain/shared"
)

// DefaultCutoverDay is the day of month on which a new fiscal period
// begins. The operation reconciles from the 26th of one month to the
// 25th of the next, so the "2024-02" period runs 2024-01-26 through
// 2024-02-25.
const DefaultCutoverDay = 26

// Period is one fiscal accounting window. Start is the cutover day at
// 00:00:00 and End is the day before the next cutover at 23:59:59,
// both in the calendar's location. Label is the year-month of End.
type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Label string    `json:"label"`
}

// Contains reports whether t falls inside the period, inclusive
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && !t.After(p.End)
}

// Calendar maps calendar dates to fiscal periods. The location is
// injected so boundary computation stays reproducible across
// deployments; it is never read from the host environment implicitly.
type Calendar struct {
	cutoverDay int
	loc        *time.Location
}

// NewCalendar creates a calendar with the given cutover day and location.
// The cutover day must leave a full day-(cutover-1) end in every month,
// so it is restricted to 2..28.
func NewCalendar(cutoverDay int, loc *time.Location) (Calendar, error) {
	if cutoverDay < 2 || cutoverDay > 28 {
		return Calendar{}, shared.NewDomainError("INVALID_CUTOVER",
			fmt.Sprintf("cutover day must be between 2 and 28, got %d", cutoverDay))
	}
	if loc == nil {
		loc = time.UTC
	}
	return Calendar{cutoverDay: cutoverDay, loc: loc}, nil
}

// MustNewCalendar is NewCalendar that panics on invalid configuration
func MustNewCalendar(cutoverDay int, loc *time.Location) Calendar {
	c, err := NewCalendar(cutoverDay, loc)
	if err != nil {
		panic(err)
	}
	return c
}

// ResolvePeriod returns the fiscal period owning the given date.
// Dates on or after the cutover day belong to the period ending in the
// following month; earlier dates belong to the period ending in the
// date's own month.
func (c Calendar) ResolvePeriod(d time.Time) Period {
	local := d.In(c.loc)
	year, month, day := local.Date()

	endMonth := month
	if day >= c.cutoverDay {
		endMonth = month + 1
	}
	return c.periodEndingIn(year, endMonth)
}

// PreviousPeriod returns the period immediately preceding p, shifting
// both endpoints back one calendar month. The cutover-day invariant
// holds across month-length and year boundaries because time.Date
// normalizes out-of-range months.
func (c Calendar) PreviousPeriod(p Period) Period {
	endYear, endMonth, _ := p.End.In(c.loc).Date()
	return c.periodEndingIn(endYear, endMonth-1)
}

// NextPeriod returns the period immediately following p
func (c Calendar) NextPeriod(p Period) Period {
	endYear, endMonth, _ := p.End.In(c.loc).Date()
	return c.periodEndingIn(endYear, endMonth+1)
}

// Location returns the calendar's time location
func (c Calendar) Location() *time.Location {
	return c.loc
}

// periodEndingIn builds the period whose end falls in the given
// year-month. The month may be out of range; time.Date normalizes it.
func (c Calendar) periodEndingIn(year int, month time.Month) Period {
	start := time.Date(year, month-1, c.cutoverDay, 0, 0, 0, 0, c.loc)
	end := time.Date(year, month, c.cutoverDay-1, 23, 59, 59, 0, c.loc)
	return Period{
		Start: start,
		End:   end,
		Label: end.Format("2006-01"),
	}
}
