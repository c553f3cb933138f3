// Package schedule evaluates the café's business-hours window. Every
// function here is pure: callers supply the current time, which keeps the
// midnight-rollover cases testable without stubbing the clock.
package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"
)

const minutesPerDay = 24 * 60

// ParseClock converts a loosely formatted time-of-day string into minutes
// since midnight. Accepted shapes: "H:MM", "HH:MM", digits split by ':' or
// whitespace, and an optional case-insensitive AM/PM marker anywhere in the
// string. Returns ok=false when the input cannot be read as a clock time.
func ParseClock(raw string) (int, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}

	var pm, am bool
	upper := strings.ToUpper(s)
	if i := strings.Index(upper, "PM"); i >= 0 {
		pm = true
		s = s[:i] + s[i+2:]
	} else if i := strings.Index(upper, "AM"); i >= 0 {
		am = true
		s = s[:i] + s[i+2:]
	}

	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == ':' || unicode.IsSpace(r)
	})
	if len(parts) == 0 {
		return 0, false
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, false
	}

	minute := 0
	if len(parts) > 1 {
		minute, err = strconv.Atoi(parts[1])
		if err != nil || minute < 0 || minute > 59 {
			return 0, false
		}
	}

	if pm && hour < 12 {
		hour += 12
	}
	if am && hour == 12 {
		hour = 0
	}

	return hour*60 + minute, true
}

// Open reports whether nowMinutes falls inside the configured window.
//
// A missing or unreadable boundary defaults to open: a configuration gap
// must never block sales. A close time of 00:00 means "open until the end
// of today" rather than an overnight window, and any other close time at or
// before the open time wraps past midnight.
func Open(openTime, closeTime string, nowMinutes int) bool {
	start, ok := ParseClock(openTime)
	if !ok {
		return true
	}
	end, ok := ParseClock(closeTime)
	if !ok {
		return true
	}

	if end == 0 {
		end = minutesPerDay
	}

	if end > start {
		return nowMinutes >= start && nowMinutes < end
	}

	// Overnight window: after opening today or before closing tomorrow.
	return nowMinutes >= start || nowMinutes < end
}

// MinutesOfDay projects a wall-clock instant onto minutes since midnight.
func MinutesOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// FormatClock12 renders a stored time string in 12-hour display form, e.g.
// "10 AM" or "9:30 PM". Unreadable input is returned unchanged so a garbage
// setting degrades to showing itself rather than an error.
func FormatClock12(raw string) string {
	minutes, ok := ParseClock(raw)
	if !ok {
		return strings.TrimSpace(raw)
	}

	hour := minutes / 60
	minute := minutes % 60

	marker := "AM"
	if hour >= 12 {
		marker = "PM"
	}
	h12 := hour % 12
	if h12 == 0 {
		h12 = 12
	}

	if minute == 0 {
		return fmt.Sprintf("%d %s", h12, marker)
	}
	return fmt.Sprintf("%d:%02d %s", h12, minute, marker)
}
