package schedule

import (
	"context"
	"log/slog"
	"time"
)

// Evaluator answers whether a store accepts orders at an instant.
type Evaluator struct {
	logger *slog.Logger
}

// NewEvaluator creates an Evaluator that reports malformed schedules to logger.
func NewEvaluator(logger *slog.Logger) Evaluator {
	return Evaluator{logger: logger.With("component", "schedule_evaluator")}
}

// IsOpen reports whether the store is open at now, read as store-local wall-clock
// time. It never fails: disabled business hours, a missing schedule and malformed
// data all yield true.
func (e Evaluator) IsOpen(spec Spec, now time.Time, businessHoursEnabled bool) bool {
	if !businessHoursEnabled {
		return true
	}
	if spec == nil || spec.IsEmpty() {
		return true
	}

	minute := now.Hour()*60 + now.Minute()
	open, err := spec.OpenAt(now.Weekday(), minute)
	if err != nil {
		e.logger.WarnContext(context.Background(), "Malformed schedule, treating store as open",
			"weekday", now.Weekday().String(),
			"minute", minute,
			"error", err,
		)
		return true
	}
	return open
}
