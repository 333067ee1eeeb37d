package dashboard

import "time"

const customDateLayout = "January 2, 2006"

// Selection is the state the dashboard header holds: the picked timeframe
// and the date it currently resolves to. The zero Date means no date.
type Selection struct {
	Timeframe Timeframe
	Date      time.Time
}

// NewSelection starts on today.
func NewSelection(now time.Time) Selection {
	return Selection{Timeframe: TimeframeToday, Date: now}
}

// Select switches to tf. When tf does not resolve to a new date the
// previous date is kept.
func (s Selection) Select(tf Timeframe, now time.Time) Selection {
	next := Selection{Timeframe: tf, Date: s.Date}
	if date, changed := Resolve(tf, now); changed {
		next.Date = date
	}
	return next
}

// PickDate sets an explicit calendar date. Picking any day other than
// today switches the selection to custom.
func (s Selection) PickDate(date, now time.Time) Selection {
	next := Selection{Timeframe: s.Timeframe, Date: date}
	if !sameDay(date, now) {
		next.Timeframe = TimeframeCustom
	}
	return next
}

func (s Selection) Label() string {
	if s.Timeframe == TimeframeCustom {
		if s.Date.IsZero() {
			return TimeframeCustom.Label()
		}
		return s.Date.Format(customDateLayout)
	}
	return s.Timeframe.Label()
}

func sameDay(a, b time.Time) bool {
	a = a.In(b.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
