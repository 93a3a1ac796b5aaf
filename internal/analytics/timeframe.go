package analytics

import (
	"fmt"
	"time"
)

// Timeframe is a relative date-window token used to restrict trades before
// aggregation.
type Timeframe string

const (
	TimeframeDay   Timeframe = "day"
	TimeframeWeek  Timeframe = "week"
	TimeframeMonth Timeframe = "month"
	TimeframeYear  Timeframe = "year"
	TimeframeAll   Timeframe = "all"
)

// ParseTimeframe validates a timeframe token.
func ParseTimeframe(s string) (Timeframe, error) {
	switch Timeframe(s) {
	case TimeframeDay, TimeframeWeek, TimeframeMonth, TimeframeYear, TimeframeAll:
		return Timeframe(s), nil
	}
	return "", fmt.Errorf("unknown timeframe %q (want day, week, month, year or all)", s)
}

// Window returns the start of the timeframe's window ending at now. The
// second return value is false for TimeframeAll, which applies no filter.
func (tf Timeframe) Window(now time.Time) (time.Time, bool) {
	switch tf {
	case TimeframeDay:
		return now.AddDate(0, 0, -1), true
	case TimeframeWeek:
		return now.AddDate(0, 0, -7), true
	case TimeframeMonth:
		return now.AddDate(0, 0, -30), true
	case TimeframeYear:
		return now.AddDate(0, 0, -365), true
	default:
		return time.Time{}, false
	}
}
