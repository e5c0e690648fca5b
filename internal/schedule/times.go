package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Normalize converts a GTFS service-day time (HH:MM:SS, hour possibly 24
// or more for visits past midnight) into a 0-23h wall clock time plus a
// day offset. "25:10:00" becomes ("01:10:00", 1).
func Normalize(value string) (string, int, error) {
	hourField, rest, ok := strings.Cut(value, ":")
	if !ok {
		return "", 0, fmt.Errorf("malformed time %q", value)
	}
	hour, err := strconv.Atoi(hourField)
	if err != nil || hour < 0 {
		return "", 0, fmt.Errorf("malformed time %q", value)
	}
	if hour < 24 {
		return value, 0, nil
	}
	return fmt.Sprintf("%02d:%s", hour-24, rest), 1, nil
}

// combine anchors a normalized HH:MM:SS time of day to the given calendar
// date, shifted forward by dayOffset days for times that crossed midnight.
func combine(day time.Time, value string, dayOffset int) (time.Time, error) {
	fields := strings.Split(value, ":")
	if len(fields) != 3 {
		return time.Time{}, fmt.Errorf("malformed time %q", value)
	}
	var hms [3]int
	for i, field := range fields {
		n, err := strconv.Atoi(field)
		if err != nil || n < 0 {
			return time.Time{}, fmt.Errorf("malformed time %q", value)
		}
		hms[i] = n
	}
	if hms[0] > 23 || hms[1] > 59 || hms[2] > 59 {
		return time.Time{}, fmt.Errorf("time %q out of range", value)
	}
	return time.Date(day.Year(), day.Month(), day.Day()+dayOffset,
		hms[0], hms[1], hms[2], 0, day.Location()), nil
}
