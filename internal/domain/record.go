package domain

import (
	"fmt"
	"strconv"
)

// Meridiem is the AM/PM designator of a clock-of-day value.
// @Description Half-day designator: AM or PM.
type Meridiem string

const (
	MeridiemAM Meridiem = "AM"
	MeridiemPM Meridiem = "PM"
)

// ClockTime is a clock-of-day value without a date component. Sleep and
// wake times carry no date because a bedtime is ambiguous across midnight;
// duration is supplied independently and never derived from the pair.
type ClockTime struct {
	Hour     int      // 1-12, as written
	Minute   int      // 0-59
	Meridiem Meridiem
}

// Hour24 returns the hour on a 24-hour clock (12:xx AM -> 0, 12:xx PM -> 12).
func (c ClockTime) Hour24() int {
	h := c.Hour % 12
	if c.Meridiem == MeridiemPM {
		h += 12
	}
	return h
}

// DecimalHours returns the clock value as hours after midnight, face value,
// with no day-boundary correction (11:30 PM is 23.5 even if it reads as a
// "late" wake time).
func (c ClockTime) DecimalHours() float64 {
	return float64(c.Hour24()) + float64(c.Minute)/60
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%d:%02d %s", c.Hour, c.Minute, c.Meridiem)
}

// SleepRecord is one normalized night of sleep, independent of the input
// shape it was parsed from.
// @Description One normalized night: date label, bedtime, wake time, duration.
type SleepRecord struct {
	// Date label as captured from the input (or resolved from "Last night")
	Date string `json:"date" example:"Jul 03"`
	// Bedtime as displayed, clock-of-day with AM/PM
	SleepTime string `json:"sleep_time" example:"11:15 PM"`
	// Wake time as displayed, clock-of-day with AM/PM
	WakeTime string `json:"wake_time" example:"6:45 AM"`
	// Recorded duration in hours, independently supplied
	DurationHours float64 `json:"duration_hours" example:"7.5"`

	// Parsed clock values; nil when the display string did not parse.
	// A nil clock disables time-of-day heuristics for this record only.
	SleepClock *ClockTime `json:"-"`
	WakeClock  *ClockTime `json:"-"`
}

// FormatHours renders a duration value the way record lines display it:
// shortest decimal form that round-trips (7.5 -> "7.5", 8 -> "8").
func FormatHours(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
