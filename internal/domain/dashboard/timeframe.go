// Package dashboard resolves the dashboard's timeframe selector to the
// reference date used to filter statistics.
package dashboard

import (
	"fmt"
	"time"
)

// Timeframe is a symbolic period picked in the dashboard header.
type Timeframe string

const (
	TimeframeToday     Timeframe = "today"
	TimeframeYesterday Timeframe = "yesterday"
	TimeframeThisWeek  Timeframe = "this_week"
	TimeframeLastWeek  Timeframe = "last_week"
	TimeframeThisMonth Timeframe = "this_month"
	TimeframeLastMonth Timeframe = "last_month"
	TimeframeCustom    Timeframe = "custom"
	TimeframeAllTime   Timeframe = "all_time"
)

// Timeframes lists every selection in display order.
var Timeframes = []Timeframe{
	TimeframeToday,
	TimeframeYesterday,
	TimeframeThisWeek,
	TimeframeLastWeek,
	TimeframeThisMonth,
	TimeframeLastMonth,
	TimeframeAllTime,
	TimeframeCustom,
}

var timeframeLabels = map[Timeframe]string{
	TimeframeToday:     "Today",
	TimeframeYesterday: "Yesterday",
	TimeframeThisWeek:  "This Week",
	TimeframeLastWeek:  "Last Week",
	TimeframeThisMonth: "This Month",
	TimeframeLastMonth: "Last Month",
	TimeframeCustom:    "Custom Date",
	TimeframeAllTime:   "All Time",
}

func ParseTimeframe(s string) (Timeframe, error) {
	tf := Timeframe(s)
	if !tf.IsValid() {
		return "", fmt.Errorf("invalid timeframe %q", s)
	}
	return tf, nil
}

func (t Timeframe) IsValid() bool {
	_, ok := timeframeLabels[t]
	return ok
}

func (t Timeframe) String() string {
	return string(t)
}

// Label is the fixed display name. Custom selections are labelled by their
// date through Selection.Label.
func (t Timeframe) Label() string {
	return timeframeLabels[t]
}

// Resolve maps a selection to its reference date. changed is false for
// this_week, this_month, custom and all_time: the caller keeps the date it
// already holds. Calendar arithmetic uses now's location.
func Resolve(t Timeframe, now time.Time) (date time.Time, changed bool) {
	switch t {
	case TimeframeToday:
		return now, true
	case TimeframeYesterday:
		return now.AddDate(0, 0, -1), true
	case TimeframeLastWeek:
		return now.AddDate(0, 0, -7), true
	case TimeframeLastMonth:
		return subMonths(now, 1), true
	default:
		return time.Time{}, false
	}
}

// subMonths moves t back n calendar months, clamping the day to the end of
// the target month (Mar 31 -> Feb 28) instead of overflowing into the next.
func subMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m-time.Month(n), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	if last := daysIn(first.Year(), first.Month(), t.Location()); d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysIn(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}
