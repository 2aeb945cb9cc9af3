package core

import "time"

// Window is a closed time range: both endpoints are inclusive, matching the
// BETWEEN semantics of the expense queries. End sits on the last representable
// millisecond of the range so that boundary records are never dropped.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the window, endpoints included.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// WindowFor returns the calendar window of the given period around ref,
// computed in ref's location.
func WindowFor(period Period, ref time.Time) (Window, error) {
	switch period {
	case PeriodDaily:
		return DayWindow(ref), nil
	case PeriodWeekly:
		return WeekWindow(ref), nil
	case PeriodMonthly:
		return MonthWindow(ref), nil
	}
	return Window{}, ErrInvalidPeriod
}

// DayWindow spans midnight to 23:59:59.999 of ref's calendar day.
func DayWindow(ref time.Time) Window {
	start := dayStart(ref)
	return Window{Start: start, End: windowEnd(start.AddDate(0, 0, 1))}
}

// WeekWindow spans Sunday 00:00:00.000 through Saturday 23:59:59.999 of the
// week containing ref. Weeks start on Sunday regardless of locale.
func WeekWindow(ref time.Time) Window {
	start := dayStart(ref).AddDate(0, 0, -int(ref.Weekday()))
	return Window{Start: start, End: windowEnd(start.AddDate(0, 0, 7))}
}

// MonthWindow spans the first through the last day of ref's calendar month.
func MonthWindow(ref time.Time) Window {
	start := monthStart(ref)
	return Window{Start: start, End: windowEnd(start.AddDate(0, 1, 0))}
}

// PreviousMonthWindow spans the calendar month before ref's, used for
// month-over-month comparisons.
func PreviousMonthWindow(ref time.Time) Window {
	start := monthStart(ref)
	return Window{Start: start.AddDate(0, -1, 0), End: windowEnd(start)}
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// windowEnd turns the exclusive start of the next window into the inclusive
// end of this one.
func windowEnd(nextStart time.Time) time.Time {
	return nextStart.Add(-time.Millisecond)
}
