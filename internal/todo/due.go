package todo

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// DueLayout is the display layout for due dates (Month-DD-YYYY-HH-MM).
	DueLayout = "January-02-2006-15-04"
	// RecordTimeLayout is the persisted ISO-8601 layout. It carries no
	// offset; values are interpreted in the local time zone.
	RecordTimeLayout = "2006-01-02T15:04:05.999999999"
)

// FormatDue formats t as Month-DD-YYYY-HH-MM.
func FormatDue(t time.Time) string {
	return t.Format(DueLayout)
}

// ParseRecordTime parses a persisted due date. Besides RecordTimeLayout it
// accepts minute precision and RFC 3339 with an offset, which is converted
// to local wall-clock time.
func ParseRecordTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{RecordTimeLayout, "2006-01-02T15:04"} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(time.Local), nil
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q (want %s): %w", s, RecordTimeLayout, ErrInvalidInput)
}

// To24Hour converts a 12-hour clock hour (1-12) and meridiem to 0-23.
// The meridiem is case-insensitive and may contain dots ("p.m.").
func To24Hour(hour int, meridiem string) (int, error) {
	if hour < 1 || hour > 12 {
		return 0, fmt.Errorf("hour %d is not between 1 and 12: %w", hour, ErrInvalidInput)
	}
	switch normalizeMeridiem(meridiem) {
	case "am":
		if hour == 12 {
			return 0, nil
		}
		return hour, nil
	case "pm":
		if hour == 12 {
			return 12, nil
		}
		return hour + 12, nil
	default:
		return 0, fmt.Errorf("%q is not AM or PM: %w", meridiem, ErrInvalidInput)
	}
}

// IsMeridiem reports whether s reads as AM or PM.
func IsMeridiem(s string) bool {
	m := normalizeMeridiem(s)
	return m == "am" || m == "pm"
}

func normalizeMeridiem(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, ".", "")
	return strings.ReplaceAll(s, " ", "")
}

// ParseDue parses a user-entered due date in the local time zone.
//
// Accepted forms, with '-', ' ', ':' or ',' as separators:
//
//	October-21-2026-17-30
//	Oct-21-2026-05-30-PM
//	10 21 2026 5:30 pm
func ParseDue(input string) (time.Time, error) {
	fields := strings.FieldsFunc(input, func(r rune) bool {
		return r == '-' || r == ' ' || r == ':' || r == ','
	})
	if len(fields) != 5 && len(fields) != 6 {
		return time.Time{}, fmt.Errorf("due date %q: want Month-DD-YYYY-HH-MM with optional AM/PM: %w", input, ErrInvalidInput)
	}

	month, err := ParseMonth(fields[0])
	if err != nil {
		return time.Time{}, err
	}
	var nums [4]int
	names := [4]string{"day", "year", "hour", "minute"}
	for i := range nums {
		n, err := strconv.Atoi(fields[i+1])
		if err != nil {
			return time.Time{}, fmt.Errorf("%s %q is not a number: %w", names[i], fields[i+1], ErrInvalidInput)
		}
		nums[i] = n
	}
	day, year, hour, minute := nums[0], nums[1], nums[2], nums[3]

	if len(fields) == 6 {
		hour, err = To24Hour(hour, fields[5])
		if err != nil {
			return time.Time{}, err
		}
	}
	return DueDate(year, month, day, hour, minute)
}

// DueDate builds a local due date, rejecting values time.Date would
// silently normalize (February 30, minute 75).
func DueDate(year int, month time.Month, day, hour, minute int) (time.Time, error) {
	if hour < 0 || hour > 23 {
		return time.Time{}, fmt.Errorf("hour %d is not between 0 and 23: %w", hour, ErrInvalidInput)
	}
	if minute < 0 || minute > 59 {
		return time.Time{}, fmt.Errorf("minute %d is not between 0 and 59: %w", minute, ErrInvalidInput)
	}
	if year < 1 || year > 9999 {
		return time.Time{}, fmt.Errorf("year %d is out of range: %w", year, ErrInvalidInput)
	}
	t := time.Date(year, month, day, hour, minute, 0, 0, time.Local)
	if t.Year() != year || t.Month() != month || t.Day() != day {
		return time.Time{}, fmt.Errorf("%s %d, %d is not a calendar date: %w", month, day, year, ErrInvalidInput)
	}
	return t, nil
}

// ParseMonth accepts a month name, its three-letter abbreviation, or 1-12.
func ParseMonth(s string) (time.Month, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		if n < 1 || n > 12 {
			return 0, fmt.Errorf("month %d is not between 1 and 12: %w", n, ErrInvalidInput)
		}
		return time.Month(n), nil
	}
	lower := strings.ToLower(s)
	for m := time.January; m <= time.December; m++ {
		name := strings.ToLower(m.String())
		if lower == name || (len(lower) == 3 && strings.HasPrefix(name, lower)) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown month %q: %w", s, ErrInvalidInput)
}
