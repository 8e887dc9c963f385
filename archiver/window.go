package archiver

import "time"

// Window is the half-open time interval [Start, End) that defines
// which messages belong to one archival run.
type Window struct {
	Start time.Time
	End   time.Time
}

// PreviousMonth returns the window covering the calendar month before
// now, in the given timezone.
func PreviousMonth(now time.Time, loc *time.Location) Window {
	now = now.In(loc)
	firstOfCurrent := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
	return Window{
		Start: firstOfCurrent.AddDate(0, -1, 0),
		End:   firstOfCurrent,
	}
}

// MonthOf returns the window covering the calendar month containing t,
// in the given timezone.
func MonthOf(t time.Time, loc *time.Location) Window {
	t = t.In(loc)
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, loc)
	return Window{
		Start: start,
		End:   start.AddDate(0, 1, 0),
	}
}

// Contains reports whether ts falls inside the window. The start is
// inclusive, the end exclusive.
func (w Window) Contains(ts time.Time) bool {
	return !ts.Before(w.Start) && ts.Before(w.End)
}

// Label returns the archived month as YYYY-MM.
func (w Window) Label() string {
	return w.Start.Format("2006-01")
}

// Month returns the first instant of the archived month.
func (w Window) Month() time.Time {
	return w.Start
}
