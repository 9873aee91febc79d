// Package format renders times and durations for command feedback.
package format

import (
	"strconv"
	"strings"
	"time"
)

// TicksPerSecond is the world simulation rate.
const TicksPerSecond = 20

// Layout holds Go time layouts derived from the display_date and
// display_time settings.
type Layout struct {
	date      string
	dateShort string
	time      string
	timeFull  string
}

// DefaultLayout is "Jan 02" dates and 24-hour times.
func DefaultLayout() Layout {
	return NewLayout("", "")
}

// NewLayout builds a Layout. displayDate is a preset (mm/dd/yyyy,
// yyyy-mm-dd, dd/mm/yyyy) or a custom Go layout; displayTime is 12h or 24h.
func NewLayout(displayDate, displayTime string) Layout {
	if displayDate == "" {
		displayDate = "Jan 02"
	}

	l := Layout{time: "15:04", timeFull: "15:04:05"}
	if displayTime == "12h" {
		l.time, l.timeFull = "3:04 PM", "3:04:05 PM"
	}

	switch displayDate {
	case "mm/dd/yyyy":
		l.date, l.dateShort = "01/02/2006", "01/02"
	case "yyyy-mm-dd":
		l.date, l.dateShort = "2006-01-02", "01-02"
	case "dd/mm/yyyy":
		l.date, l.dateShort = "02/01/2006", "02/01"
	default:
		l.date, l.dateShort = displayDate, shortDate(displayDate)
	}
	return l
}

// shortDate strips year patterns from a custom layout.
func shortDate(layout string) string {
	short := layout
	for _, year := range []string{"2006", "/06", "-06", " 06"} {
		short = strings.ReplaceAll(short, year, "")
	}
	short = strings.Trim(strings.TrimSpace(short), "/-")
	if short == "" {
		return "Jan 02"
	}
	return short
}

// DateTime formats a time with both date and time.
// Example output: "23/01/2024 15:04" or "01/23/2024 3:04 PM"
func (l Layout) DateTime(t time.Time) string {
	return l.Date(t) + " " + l.Time(t)
}

// DateTimeShort formats a time with short date and time (no year).
// Example output: "23/01 15:04" or "Jan 23 3:04 PM"
func (l Layout) DateTimeShort(t time.Time) string {
	return l.DateShort(t) + " " + l.Time(t)
}

// Date formats only the date portion.
func (l Layout) Date(t time.Time) string { return t.Format(l.date) }

// DateShort formats the date without year.
func (l Layout) DateShort(t time.Time) string { return t.Format(l.dateShort) }

// Time formats only the time portion.
func (l Layout) Time(t time.Time) string { return t.Format(l.time) }

// TimeFull formats time with seconds.
func (l Layout) TimeFull(t time.Time) string { return t.Format(l.timeFull) }

// Full formats with full date and time with seconds.
// Example output: "23/01/2024 15:04:05"
func (l Layout) Full(t time.Time) string {
	return l.Date(t) + " " + l.TimeFull(t)
}

// Ticks renders a duration in ticks the way effect listings show it:
// "600ticks", or "infinite" for a negative duration.
func Ticks(n int) string {
	if n < 0 {
		return "infinite"
	}
	return strconv.Itoa(n) + "ticks"
}

// TicksDuration converts ticks to wall-clock time.
func TicksDuration(n int) time.Duration {
	return time.Duration(n) * time.Second / TicksPerSecond
}
