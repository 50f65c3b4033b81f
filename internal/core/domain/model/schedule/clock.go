package schedule

import (
	"fmt"
	"strconv"
	"strings"

	"storefront/internal/pkg/errs"
)

const minutesPerDay = 24 * 60

// ParseMinuteOfDay converts "HH:MM" into minutes since midnight.
// "24:00" is accepted as the end of the day.
func ParseMinuteOfDay(s string) (int, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || len(hh) == 0 || len(hh) > 2 || len(mm) != 2 {
		return 0, errs.NewValueIsInvalidErrorWithCause("time", fmt.Errorf("%q is not in HH:MM format", s))
	}

	hours, err := strconv.Atoi(hh)
	if err != nil || hours < 0 {
		return 0, errs.NewValueIsInvalidErrorWithCause("time", fmt.Errorf("%q has an invalid hour", s))
	}
	minutes, err := strconv.Atoi(mm)
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, errs.NewValueIsInvalidErrorWithCause("time", fmt.Errorf("%q has an invalid minute", s))
	}

	total := hours*60 + minutes
	if total > minutesPerDay {
		return 0, errs.NewValueIsOutOfRangeError("time", s, "00:00", "24:00")
	}
	return total, nil
}

// inRange reports whether minute lies in [opens, closes]. Both bounds are raw
// "HH:MM" strings.
func inRange(minute int, opens, closes string) (bool, error) {
	from, err := ParseMinuteOfDay(opens)
	if err != nil {
		return false, err
	}
	to, err := ParseMinuteOfDay(closes)
	if err != nil {
		return false, err
	}
	return from <= minute && minute <= to, nil
}
