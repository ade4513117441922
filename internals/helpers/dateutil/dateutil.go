// file: internals/helpers/dateutil/dateutil.go
package dateutil

import (
	"fmt"
	"strings"
	"time"
)

const (
	DateLayout = "2006-01-02"
	ClockLayout = "15:04"
)

/* =========================
   Date-only values
========================= */

// DateOnly drops the clock part and anchors the value at UTC midnight, so
// date columns compare consistently regardless of the driver.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func Today() time.Time { return DateOnly(time.Now()) }

func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	return DateOnly(t), nil
}

func FormatDate(t time.Time) string { return t.Format(DateLayout) }

// ISOWeekday returns Monday=1 .. Sunday=7.
func ISOWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

/* =========================
   Clock times (HH:mm)
========================= */

// ParseClock validates an HH:mm string and returns minutes since midnight.
func ParseClock(s string) (int, error) {
	t, err := time.Parse(ClockLayout, strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid time %q (want HH:mm)", s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatClock renders minutes since midnight as HH:mm.
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

/* =========================
   DateRange
========================= */

// DateRange is a closed interval over calendar dates; End == nil means the
// range is open-ended. This one type carries the "active on date" predicate
// for enrollments and schedule versions alike, instead of null-checks spread
// across call sites.
type DateRange struct {
	Start time.Time
	End   *time.Time
}

// ContainsDate reports Start <= d && (End == nil || End >= d).
func (r DateRange) ContainsDate(d time.Time) bool {
	d = DateOnly(d)
	if DateOnly(r.Start).After(d) {
		return false
	}
	if r.End == nil {
		return true
	}
	return !DateOnly(*r.End).Before(d)
}

// Intersects reports whether the range overlaps the closed window [from, to].
func (r DateRange) Intersects(from, to time.Time) bool {
	from, to = DateOnly(from), DateOnly(to)
	if DateOnly(r.Start).After(to) {
		return false
	}
	if r.End == nil {
		return true
	}
	return !DateOnly(*r.End).Before(from)
}

// ClampTo narrows the window [from, to] to the part covered by the range.
// ok is false when nothing remains.
func (r DateRange) ClampTo(from, to time.Time) (lo, hi time.Time, ok bool) {
	lo, hi = DateOnly(from), DateOnly(to)
	if s := DateOnly(r.Start); s.After(lo) {
		lo = s
	}
	if r.End != nil {
		if e := DateOnly(*r.End); e.Before(hi) {
			hi = e
		}
	}
	return lo, hi, !lo.After(hi)
}
