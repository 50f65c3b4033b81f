package schedule

import (
	"time"
)

// Spec is a store's opening-hours configuration.
type Spec interface {
	// IsEmpty reports whether no weekday is configured at all.
	IsEmpty() bool
	// OpenAt evaluates the configuration for a weekday and minute of day.
	// It returns an error when the configuration for that day is malformed.
	OpenAt(day time.Weekday, minute int) (bool, error)
}

// Period is one opening window of a day, as "HH:MM" strings.
type Period struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

// Day is the weekly-format configuration of one weekday.
type Day struct {
	IsOpen  bool     `json:"isOpen"`
	Periods []Period `json:"periods"`
}

// WeeklySpec is the per-weekday periods format. Missing weekdays are closed.
type WeeklySpec map[time.Weekday]Day

func (s WeeklySpec) IsEmpty() bool {
	return len(s) == 0
}

// OpenAt is true when the day is open and any of its periods contains minute.
func (s WeeklySpec) OpenAt(day time.Weekday, minute int) (bool, error) {
	cfg, ok := s[day]
	if !ok || !cfg.IsOpen || len(cfg.Periods) == 0 {
		return false, nil
	}

	for _, p := range cfg.Periods {
		open, err := inRange(minute, p.Open, p.Close)
		if err != nil {
			return false, err
		}
		if open {
			return true, nil
		}
	}
	return false, nil
}

// LegacyDay is the legacy single-window configuration of one weekday.
type LegacyDay struct {
	Enabled   bool   `json:"enabled"`
	OpenTime  string `json:"openTime"`
	CloseTime string `json:"closeTime"`
}

// LegacySpec is the older enabled/openTime/closeTime format. Missing weekdays are closed.
type LegacySpec map[time.Weekday]LegacyDay

func (s LegacySpec) IsEmpty() bool {
	return len(s) == 0
}

func (s LegacySpec) OpenAt(day time.Weekday, minute int) (bool, error) {
	cfg, ok := s[day]
	if !ok || !cfg.Enabled {
		return false, nil
	}
	return inRange(minute, cfg.OpenTime, cfg.CloseTime)
}
