package schedule

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"storefront/internal/pkg/errs"
)

// ErrMixedScheduleFormats is returned when a payload mixes weekly and legacy day records.
var ErrMixedScheduleFormats = errors.New("schedule mixes weekly and legacy formats")

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ParseWeekday maps an English weekday name (any case) to time.Weekday.
func ParseWeekday(name string) (time.Weekday, error) {
	day, ok := weekdayNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, errs.NewValueIsInvalidErrorWithCause("weekday", fmt.Errorf("%q is not a weekday", name))
	}
	return day, nil
}

type dayProbe struct {
	IsOpen    *bool    `json:"isOpen"`
	Periods   []Period `json:"periods"`
	Enabled   *bool    `json:"enabled"`
	OpenTime  *string  `json:"openTime"`
	CloseTime *string  `json:"closeTime"`
}

func (p dayProbe) isWeekly() bool {
	return p.IsOpen != nil || p.Periods != nil
}

func (p dayProbe) isLegacy() bool {
	return p.Enabled != nil || p.OpenTime != nil || p.CloseTime != nil
}

// ParseSpec decodes a stored schedule in either format, keyed by weekday name.
// An empty or null payload yields a nil Spec.
func ParseSpec(data []byte) (Spec, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	var raw map[string]dayProbe
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("schedule", err)
	}
	if len(raw) == 0 {
		return nil, nil
	}

	weekly := WeeklySpec{}
	legacy := LegacySpec{}
	for name, entry := range raw {
		day, err := ParseWeekday(name)
		if err != nil {
			return nil, err
		}

		switch {
		case entry.isWeekly() && entry.isLegacy():
			return nil, ErrMixedScheduleFormats
		case entry.isWeekly():
			weekly[day] = Day{IsOpen: deref(entry.IsOpen), Periods: entry.Periods}
		case entry.isLegacy():
			legacy[day] = LegacyDay{
				Enabled:   deref(entry.Enabled),
				OpenTime:  deref(entry.OpenTime),
				CloseTime: deref(entry.CloseTime),
			}
		default:
			// An empty day record is closed in either format.
			weekly[day] = Day{}
		}
	}

	if len(legacy) > 0 {
		for day, cfg := range weekly {
			if cfg.IsOpen || len(cfg.Periods) > 0 {
				return nil, ErrMixedScheduleFormats
			}
			legacy[day] = LegacyDay{}
		}
		return legacy, nil
	}
	return weekly, nil
}

// MarshalSpec encodes a Spec back into its stored weekday-name keyed form.
func MarshalSpec(spec Spec) ([]byte, error) {
	switch s := spec.(type) {
	case nil:
		return []byte("null"), nil
	case WeeklySpec:
		return json.Marshal(byName(s))
	case LegacySpec:
		return json.Marshal(byName(s))
	default:
		return nil, errs.NewValueIsInvalidErrorWithCause("schedule", fmt.Errorf("unsupported spec %T", spec))
	}
}

func byName[V any](m map[time.Weekday]V) map[string]V {
	out := make(map[string]V, len(m))
	for day, v := range m {
		out[strings.ToLower(day.String())] = v
	}
	return out
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
