package service

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

// DefaultReportMonths is the trailing window used when no start date is given
const DefaultReportMonths = 6

const dateLayout = "2006-01-02"

// ErrInvalidWindow is returned for unparseable or inverted report windows
var ErrInvalidWindow = errors.New("invalid report window")

// ReportWindow is the caller's requested time window. Nil bounds take defaults.
type ReportWindow struct {
	Start  *time.Time
	End    *time.Time
	Months int
}

// ParseReportWindow builds a window from raw query values. Dates may be
// YYYY-MM-DD (interpreted in loc) or RFC 3339. A date-only end covers the whole
// day. A missing, non-numeric or non-positive months value falls back to the default.
func ParseReportWindow(startRaw, endRaw, monthsRaw string, loc *time.Location) (ReportWindow, error) {
	w := ReportWindow{Months: DefaultReportMonths}
	if n, err := strconv.Atoi(monthsRaw); err == nil && n > 0 {
		w.Months = n
	}

	if startRaw != "" {
		start, _, err := parseDate(startRaw, loc)
		if err != nil {
			return ReportWindow{}, fmt.Errorf("%w: startDate %q", ErrInvalidWindow, startRaw)
		}
		w.Start = &start
	}
	if endRaw != "" {
		end, dateOnly, err := parseDate(endRaw, loc)
		if err != nil {
			return ReportWindow{}, fmt.Errorf("%w: endDate %q", ErrInvalidWindow, endRaw)
		}
		if dateOnly {
			end = end.AddDate(0, 0, 1).Add(-time.Nanosecond)
		}
		w.End = &end
	}
	if w.Start != nil && w.End != nil && w.Start.After(*w.End) {
		return ReportWindow{}, fmt.Errorf("%w: startDate after endDate", ErrInvalidWindow)
	}
	return w, nil
}

// resolve returns the effective [start, end] bounds relative to now
func (w ReportWindow) resolve(now time.Time) (time.Time, time.Time, error) {
	end := now
	if w.End != nil {
		end = *w.End
	}
	months := w.Months
	if months <= 0 {
		months = DefaultReportMonths
	}
	start := subMonths(end, months)
	if w.Start != nil {
		start = *w.Start
	}
	if start.After(end) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: start %s after end %s",
			ErrInvalidWindow, start.Format(dateLayout), end.Format(dateLayout))
	}
	return start, end, nil
}

func parseDate(raw string, loc *time.Location) (time.Time, bool, error) {
	if t, err := time.ParseInLocation(dateLayout, raw, loc); err == nil {
		return t, true, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, false, err
	}
	return t, false, nil
}

// subMonths moves t back n calendar months, clamping to the last day of the
// target month (Aug 31 minus 6 months is Feb 28/29).
func subMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m-time.Month(n), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	lastDay := first.AddDate(0, 1, -1).Day()
	if d > lastDay {
		d = lastDay
	}
	return first.AddDate(0, 0, d-1)
}
