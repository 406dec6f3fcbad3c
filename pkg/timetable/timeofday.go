package timetable

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const MinutesPerDay = 1440

var timeOfDayPattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})\s*([AaPp][Mm])?$`)
var nonDigits = regexp.MustCompile(`\D`)

// ParseTime converts a human entered time of day ("10:26AM", "10:26 pm",
// "23:28") into minutes since midnight.
//
// Values that do not match the strict grammar but still look like "H:MM..."
// are read leniently: the hour must be numeric and any non-digits are
// stripped from the minute part, which drops any AM/PM marker.
func ParseTime(s string) (int, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0, fmt.Errorf("%w: empty value", ErrMalformedTime)
	}

	match := timeOfDayPattern.FindStringSubmatch(trimmed)
	if match == nil {
		return parseLenientTime(trimmed)
	}

	hour, _ := strconv.Atoi(match[1])
	minute, _ := strconv.Atoi(match[2])

	if minute > 59 {
		return 0, fmt.Errorf("%w: minute out of range in %q", ErrMalformedTime, s)
	}

	if match[3] != "" {
		if hour < 1 || hour > 12 {
			return 0, fmt.Errorf("%w: 12-hour value out of range in %q", ErrMalformedTime, s)
		}

		switch strings.ToLower(match[3]) {
		case "am":
			if hour == 12 {
				hour = 0
			}
		case "pm":
			if hour != 12 {
				hour += 12
			}
		}
	} else if hour > 23 {
		return 0, fmt.Errorf("%w: hour out of range in %q", ErrMalformedTime, s)
	}

	return hour*60 + minute, nil
}

func parseLenientTime(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 {
		return 0, fmt.Errorf("%w: no colon in %q", ErrMalformedTime, s)
	}

	hour, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, fmt.Errorf("%w: non-numeric hour in %q", ErrMalformedTime, s)
	}

	minuteDigits := nonDigits.ReplaceAllString(parts[1], "")
	if minuteDigits == "" {
		return 0, fmt.Errorf("%w: non-numeric minute in %q", ErrMalformedTime, s)
	}
	minute, err := strconv.Atoi(minuteDigits)
	if err != nil {
		return 0, fmt.Errorf("%w: non-numeric minute in %q", ErrMalformedTime, s)
	}

	if hour < 0 || hour > 23 || minute > 59 {
		return 0, fmt.Errorf("%w: value out of range in %q", ErrMalformedTime, s)
	}

	return hour*60 + minute, nil
}

// MinutesOrZero is the fail-soft form of ParseTime used for rendering: a
// malformed value is treated as midnight.
func MinutesOrZero(s string) int {
	minutes, err := ParseTime(s)
	if err != nil {
		return 0
	}

	return minutes
}

// FormatClock renders minutes since midnight as HH:MM, wrapping at a day
func FormatClock(minutes int) string {
	minutes = ((minutes % MinutesPerDay) + MinutesPerDay) % MinutesPerDay

	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
